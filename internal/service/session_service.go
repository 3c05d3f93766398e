package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ceo-diagnostic-be/internal/dto"
	"ceo-diagnostic-be/internal/entity"
	"ceo-diagnostic-be/internal/pkg/logger"
	"ceo-diagnostic-be/internal/pkg/mailer"
	"ceo-diagnostic-be/internal/pkg/webhook"
	"ceo-diagnostic-be/internal/repository/contract"
	"ceo-diagnostic-be/internal/repository/memory"
	"ceo-diagnostic-be/pkg/calc"
	"ceo-diagnostic-be/pkg/events"
	"ceo-diagnostic-be/pkg/wizard"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrUnknownCategory   = errors.New("unknown category id")
	ErrUnknownField      = errors.New("unknown calculator field")
	ErrMissingROIFields  = errors.New("required calculator fields are missing")
	ErrAlreadySubmitting = errors.New("submission already in progress")
)

const gatewayTimeout = 15 * time.Second

type ISessionService interface {
	GetCatalog() *dto.CatalogResponse
	StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionStateResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionStateResponse, error)
	UpdateScore(ctx context.Context, id string, req *dto.UpdateScoreRequest) (*dto.SessionStateResponse, error)
	UpdateROIInput(ctx context.Context, id string, req *dto.UpdateROIRequest) (*dto.SessionStateResponse, error)
	AdvanceToROI(ctx context.Context, id string) (*dto.SessionStateResponse, error)
	SubmitResults(ctx context.Context, id string, req *dto.SubmitRequest) (*dto.SessionStateResponse, error)
}

type sessionService struct {
	catalog  []wizard.Category
	sessions *memory.WizardRepository
	repo     contract.DiagnosticSessionRepository
	hook     *webhook.Client
	mail     mailer.IEmailService
	pubSub   *gochannel.GoChannel
	topic    string
	logger   logger.ILogger
}

// NewSessionService wires the wizard controller. repo and mail may be
// nil: the wizard then runs in demo mode, keeping state in memory only
// and skipping the follow-up email. Both gateways are best-effort by
// contract; their failures never surface to the visitor.
func NewSessionService(
	catalog []wizard.Category,
	sessions *memory.WizardRepository,
	repo contract.DiagnosticSessionRepository,
	hook *webhook.Client,
	mail mailer.IEmailService,
	pubSub *gochannel.GoChannel,
	topic string,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		catalog:  catalog,
		sessions: sessions,
		repo:     repo,
		hook:     hook,
		mail:     mail,
		pubSub:   pubSub,
		topic:    topic,
		logger:   log,
	}
}

func (s *sessionService) GetCatalog() *dto.CatalogResponse {
	return &dto.CatalogResponse{
		Categories: s.catalog,
		MaxScore:   len(s.catalog) * 10,
	}
}

func (s *sessionService) StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionStateResponse, error) {
	id := uuid.New()
	session := wizard.NewSession(id.String(), s.catalog)

	if err := session.Start(wizard.Identity{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}); err != nil {
		return nil, err
	}

	// Best-effort row creation. On failure the locally generated id
	// keeps serving as the session identifier and the wizard proceeds.
	if s.repo != nil {
		record := &entity.DiagnosticSession{
			Id:        id,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		}
		if err := s.repo.Create(ctx, record); err != nil {
			s.logger.Warn("SessionService", "Failed to create session row, continuing locally", map[string]interface{}{
				"session_id": id.String(),
				"error":      err.Error(),
			})
		}
	}

	s.sessions.Save(session)
	s.publish(events.NewSessionStarted(session.ID, req.Email))

	return s.buildState(session), nil
}

func (s *sessionService) GetSession(ctx context.Context, id string) (*dto.SessionStateResponse, error) {
	session, found := s.sessions.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	return s.buildState(session), nil
}

func (s *sessionService) UpdateScore(ctx context.Context, id string, req *dto.UpdateScoreRequest) (*dto.SessionStateResponse, error) {
	session, found := s.sessions.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}

	ok := session.UpdateScoreEntry(req.CategoryID, wizard.ScoreUpdate{
		Description: req.Description,
		Score:       req.Score,
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, req.CategoryID)
	}

	s.sessions.Save(session)
	return s.buildState(session), nil
}

func (s *sessionService) UpdateROIInput(ctx context.Context, id string, req *dto.UpdateROIRequest) (*dto.SessionStateResponse, error) {
	session, found := s.sessions.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}

	// One endpoint covers both calculators; the field name decides
	// which model's raw value is replaced.
	if !session.UpdateROIInput(req.Field, req.Value) && !session.UpdateLaunchInput(req.Field, req.Value) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, req.Field)
	}

	s.sessions.Save(session)
	return s.buildState(session), nil
}

func (s *sessionService) AdvanceToROI(ctx context.Context, id string) (*dto.SessionStateResponse, error) {
	session, found := s.sessions.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}

	if err := session.AdvanceToROI(); err != nil {
		return nil, err
	}

	// Mid-wizard checkpoint so an abandoned ROI step still leaves the
	// framework answers server-side. Best-effort.
	if s.repo != nil {
		if sessionID, err := uuid.Parse(session.ID); err == nil {
			records := scoreRecords(session.Scores)
			if err := s.repo.UpdateFrameworkData(ctx, sessionID, records, calc.TotalScore(session.Scores)); err != nil {
				s.logger.Warn("SessionService", "Framework checkpoint failed", map[string]interface{}{
					"session_id": session.ID,
					"error":      err.Error(),
				})
			}
		}
	}

	s.sessions.Save(session)
	return s.buildState(session), nil
}

// SubmitResults runs the finalize sequence. The visitor reaches the
// results stage once this returns, whatever the backends did.
func (s *sessionService) SubmitResults(ctx context.Context, id string, req *dto.SubmitRequest) (*dto.SessionStateResponse, error) {
	session, found := s.sessions.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	if session.Stage != wizard.StageROI {
		return nil, wizard.ErrInvalidTransition
	}
	if session.Submitting {
		return nil, ErrAlreadySubmitting
	}

	model := entity.ROIModel(req.Model)
	if missing := missingFields(session, model); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingROIFields, missing)
	}

	session.BeginSubmit()
	// covers the error returns; EndSubmit is idempotent
	defer session.EndSubmit()

	snapshot, payload, err := s.buildSnapshot(session, model)
	if err != nil {
		return nil, err
	}

	persisted := s.persist(ctx, session.ID, snapshot)
	s.notify(session, snapshot, payload)
	webhookConfigured := s.hook != nil && s.hook.Configured()
	s.publish(events.NewSessionCompleted(session.ID, session.User.Email, snapshot.TotalScore, persisted, webhookConfigured))

	if err := session.Finish(); err != nil {
		return nil, err
	}

	// clear the in-flight flag before the state is rendered and saved
	session.EndSubmit()
	s.sessions.Save(session)

	return s.buildState(session), nil
}

// persist writes the completion snapshot. Backend errors are logged
// and absorbed; a dropped write is an accepted loss.
func (s *sessionService) persist(ctx context.Context, id string, snapshot *entity.CompletionRecord) bool {
	if s.repo == nil {
		s.logger.Info("SessionService", "No database configured, skipping persistence", map[string]interface{}{
			"session_id": id,
		})
		return false
	}
	sessionID, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn("SessionService", "Session id is not persistable", map[string]interface{}{"session_id": id})
		return false
	}
	if err := s.repo.Complete(ctx, sessionID, snapshot); err != nil {
		s.logger.Error("SessionService", "Failed to persist completed session", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
		return false
	}
	return true
}

// notify fires the webhook and the follow-up email in the background.
// Neither outcome is observed by the caller.
func (s *sessionService) notify(session *wizard.Session, snapshot *entity.CompletionRecord, payload webhook.Payload) {
	sessionID := session.ID

	if s.hook != nil && s.hook.Configured() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
			defer cancel()
			if err := s.hook.Send(ctx, payload); err != nil {
				s.logger.Warn("SessionService", "Webhook delivery failed", map[string]interface{}{
					"session_id": sessionID,
					"error":      err.Error(),
				})
				s.publish(events.NewWebhookFailed(sessionID, err.Error()))
				return
			}
			s.publish(events.NewWebhookDelivered(sessionID))
		}()
	}

	if s.mail != nil {
		user := session.User
		totalScore := snapshot.TotalScore
		maxScore := session.MaxScore()
		go func() {
			title := calc.Interpret(totalScore).Title
			if err := s.mail.SendResultsSummary(user.Email, user.FirstName, totalScore, maxScore, title); err != nil {
				s.logger.Warn("SessionService", "Results email failed", map[string]interface{}{
					"session_id": sessionID,
					"error":      err.Error(),
				})
			}
		}()
	}
}

func (s *sessionService) buildSnapshot(session *wizard.Session, model entity.ROIModel) (*entity.CompletionRecord, webhook.Payload, error) {
	records := scoreRecords(session.Scores)
	totalScore := calc.TotalScore(session.Scores)

	var (
		inputsJSON  []byte
		outputsJSON []byte
		inputsMap   map[string]float64
		err         error
	)

	switch model {
	case entity.ROIModelLaunch:
		in := calc.ParseLaunchInputs(session.Launch, totalScore, session.MaxScore())
		out := calc.Launch(in)
		if inputsJSON, err = json.Marshal(in); err != nil {
			return nil, webhook.Payload{}, err
		}
		if outputsJSON, err = json.Marshal(out); err != nil {
			return nil, webhook.Payload{}, err
		}
		inputsMap = map[string]float64{
			"revenue_goal_2026":   in.RevenueGoal,
			"founder_clients":     in.FounderClients,
			"founder_price":       in.FounderPrice,
			"unstoppable_clients": in.UnstoppableClients,
			"unstoppable_price":   in.UnstoppablePrice,
			"num_launches":        in.NumLaunches,
		}
	default:
		in := calc.ParseSimpleInputs(session.ROI)
		out := calc.Simple(in)
		if inputsJSON, err = json.Marshal(in); err != nil {
			return nil, webhook.Payload{}, err
		}
		if outputsJSON, err = json.Marshal(out); err != nil {
			return nil, webhook.Payload{}, err
		}
		inputsMap = map[string]float64{
			"offer_price":        in.OfferPrice,
			"clients_per_month":  in.ClientsPerMonth,
			"close_rate":         in.CloseRate,
			"revenue_goal":       in.RevenueGoal,
			"months_to_goal":     in.MonthsToGoal,
			"program_investment": in.ProgramInvestment,
		}
	}

	snapshot := &entity.CompletionRecord{
		FrameworkData: records,
		TotalScore:    totalScore,
		ROIModel:      model,
		ROIInputs:     inputsJSON,
		ROIOutputs:    outputsJSON,
	}

	scores := make([]int, 0, len(session.Scores))
	descriptions := make([]webhook.CategoryResult, 0, len(session.Scores))
	for _, entry := range session.Scores {
		scores = append(scores, entry.Score)
		descriptions = append(descriptions, webhook.CategoryResult{
			Category:    entry.Category,
			Description: entry.Description,
			Score:       entry.Score,
		})
	}

	payload := webhook.Payload{
		FirstName:             session.User.FirstName,
		LastName:              session.User.LastName,
		Email:                 session.User.Email,
		FrameworkScores:       scores,
		FrameworkDescriptions: descriptions,
		TotalScore:            totalScore,
		ROIInputs:             inputsMap,
		ROIOutputs:            outputsJSON,
	}

	return snapshot, payload, nil
}

func (s *sessionService) buildState(session *wizard.Session) *dto.SessionStateResponse {
	totalScore := calc.TotalScore(session.Scores)
	return &dto.SessionStateResponse{
		ID:           session.ID,
		Stage:        session.Stage,
		User:         session.User,
		Scores:       session.Scores,
		ROIInputs:    session.ROI,
		LaunchInputs: session.Launch,
		Submitting:   session.Submitting,
		Derived: dto.DerivedOutputs{
			TotalScore:     totalScore,
			MaxScore:       session.MaxScore(),
			AllScored:      session.AllScored(),
			Interpretation: calc.Interpret(totalScore),
			Simple:         calc.Simple(calc.ParseSimpleInputs(session.ROI)),
			Launch:         calc.Launch(calc.ParseLaunchInputs(session.Launch, totalScore, session.MaxScore())),
		},
	}
}

func (s *sessionService) publish(event events.Event) {
	if s.pubSub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":        event.EventType(),
		"payload":     event.Payload(),
		"occurred_at": event.Timestamp(),
	})
	if err != nil {
		return
	}
	if err := s.pubSub.Publish(s.topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Warn("SessionService", "Event publish failed", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func scoreRecords(entries []wizard.ScoreEntry) []entity.ScoreRecord {
	records := make([]entity.ScoreRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entity.ScoreRecord{
			CategoryID:  entry.CategoryID,
			Category:    entry.Category,
			Description: entry.Description,
			Score:       entry.Score,
		})
	}
	return records
}

// missingFields lists the calculator fields still empty for the chosen
// model. Only presence is checked; unparseable input coerces to zero
// downstream. Close rate and months-to-goal refine the simple model
// but are not required for it.
func missingFields(session *wizard.Session, model entity.ROIModel) []string {
	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if model == entity.ROIModelLaunch {
		require("revenue_goal_2026", session.Launch.RevenueGoal2026)
		require("founder_clients", session.Launch.FounderClients)
		require("founder_price", session.Launch.FounderPrice)
		require("unstoppable_clients", session.Launch.UnstoppableClients)
		require("unstoppable_price", session.Launch.UnstoppablePrice)
		require("num_launches", session.Launch.NumLaunches)
		return missing
	}

	require("offer_price", session.ROI.OfferPrice)
	require("clients_per_month", session.ROI.ClientsPerMonth)
	require("revenue_goal", session.ROI.RevenueGoal)
	require("program_investment", session.ROI.ProgramInvestment)
	return missing
}
