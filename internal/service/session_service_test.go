package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ceo-diagnostic-be/internal/constant"
	"ceo-diagnostic-be/internal/dto"
	"ceo-diagnostic-be/internal/entity"
	"ceo-diagnostic-be/internal/pkg/webhook"
	"ceo-diagnostic-be/internal/repository/memory"
	"ceo-diagnostic-be/internal/repository/specification"
	"ceo-diagnostic-be/pkg/wizard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// fakeSessionRepository records calls and fails on demand.
type fakeSessionRepository struct {
	mu sync.Mutex

	failAll bool

	created    []*entity.DiagnosticSession
	checkpoint map[uuid.UUID][]entity.ScoreRecord
	completed  map[uuid.UUID]*entity.CompletionRecord
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{
		checkpoint: map[uuid.UUID][]entity.ScoreRecord{},
		completed:  map[uuid.UUID]*entity.CompletionRecord{},
	}
}

func (r *fakeSessionRepository) Create(ctx context.Context, session *entity.DiagnosticSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.New("database unavailable")
	}
	r.created = append(r.created, session)
	return nil
}

func (r *fakeSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DiagnosticSession, error) {
	return nil, nil
}

func (r *fakeSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DiagnosticSession, error) {
	return nil, nil
}

func (r *fakeSessionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeSessionRepository) UpdateFrameworkData(ctx context.Context, id uuid.UUID, data []entity.ScoreRecord, totalScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.New("database unavailable")
	}
	r.checkpoint[id] = data
	return nil
}

func (r *fakeSessionRepository) Complete(ctx context.Context, id uuid.UUID, record *entity.CompletionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.New("database unavailable")
	}
	r.completed[id] = record
	return nil
}

func (r *fakeSessionRepository) AverageTotalScore(ctx context.Context) (float64, error) {
	return 0, nil
}

func newTestService(repo *fakeSessionRepository, hook *webhook.Client) ISessionService {
	return NewSessionService(
		constant.FrameworkCategories,
		memory.NewWizardRepository(),
		repo,
		hook,
		nil,
		nil,
		"diagnostic.events",
		noopLogger{},
	)
}

func startSession(t *testing.T, svc ISessionService) *dto.SessionStateResponse {
	t.Helper()
	state, err := svc.StartSession(context.Background(), &dto.StartSessionRequest{
		FirstName: "Dana",
		LastName:  "Reed",
		Email:     "dana@example.com",
	})
	require.NoError(t, err)
	return state
}

func scoreEverything(t *testing.T, svc ISessionService, id string, score int) {
	t.Helper()
	for _, cat := range constant.FrameworkCategories {
		_, err := svc.UpdateScore(context.Background(), id, &dto.UpdateScoreRequest{
			CategoryID: cat.ID,
			Score:      &score,
		})
		require.NoError(t, err)
	}
}

func fillSimpleInputs(t *testing.T, svc ISessionService, id string) {
	t.Helper()
	fields := map[string]string{
		"offer_price":        "5000",
		"clients_per_month":  "4",
		"close_rate":         "25",
		"revenue_goal":       "500000",
		"months_to_goal":     "12",
		"program_investment": "30000",
	}
	for field, value := range fields {
		_, err := svc.UpdateROIInput(context.Background(), id, &dto.UpdateROIRequest{Field: field, Value: value})
		require.NoError(t, err)
	}
}

func TestStartSessionSeedsCatalog(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := newTestService(repo, webhook.NewClient("", time.Second))

	state := startSession(t, svc)

	assert.Equal(t, wizard.StageFramework, state.Stage)
	assert.Len(t, state.Scores, len(constant.FrameworkCategories))
	assert.Equal(t, "Dana", state.User.FirstName)
	assert.False(t, state.Derived.AllScored)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "dana@example.com", repo.created[0].Email)
	_, err := uuid.Parse(state.ID)
	assert.NoError(t, err)
}

func TestStartSessionSurvivesRepositoryFailure(t *testing.T) {
	repo := newFakeSessionRepository()
	repo.failAll = true
	svc := newTestService(repo, webhook.NewClient("", time.Second))

	state := startSession(t, svc)

	assert.Equal(t, wizard.StageFramework, state.Stage)
	assert.NotEmpty(t, state.ID)

	// Session id keeps working against the in-memory store.
	got, err := svc.GetSession(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, state.ID, got.ID)
}

func TestUpdateScoreUnknownCategory(t *testing.T) {
	svc := newTestService(newFakeSessionRepository(), webhook.NewClient("", time.Second))
	state := startSession(t, svc)

	score := 7
	_, err := svc.UpdateScore(context.Background(), state.ID, &dto.UpdateScoreRequest{
		CategoryID: "does-not-exist",
		Score:      &score,
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	// The session is untouched.
	got, err := svc.GetSession(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Derived.TotalScore)
}

func TestUpdateScoreUnknownSession(t *testing.T) {
	svc := newTestService(newFakeSessionRepository(), webhook.NewClient("", time.Second))
	score := 5
	_, err := svc.UpdateScore(context.Background(), uuid.NewString(), &dto.UpdateScoreRequest{
		CategoryID: constant.FrameworkCategories[0].ID,
		Score:      &score,
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateROIInputRoutesBothModels(t *testing.T) {
	svc := newTestService(newFakeSessionRepository(), webhook.NewClient("", time.Second))
	state := startSession(t, svc)

	got, err := svc.UpdateROIInput(context.Background(), state.ID, &dto.UpdateROIRequest{Field: "offer_price", Value: "2500"})
	require.NoError(t, err)
	assert.Equal(t, "2500", got.ROIInputs.OfferPrice)

	got, err = svc.UpdateROIInput(context.Background(), state.ID, &dto.UpdateROIRequest{Field: "founder_price", Value: "500"})
	require.NoError(t, err)
	assert.Equal(t, "500", got.LaunchInputs.FounderPrice)

	_, err = svc.UpdateROIInput(context.Background(), state.ID, &dto.UpdateROIRequest{Field: "nope", Value: "1"})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestAdvanceBlockedUntilAllScored(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := newTestService(repo, webhook.NewClient("", time.Second))
	state := startSession(t, svc)

	// Score all but the last category.
	score := 8
	for _, cat := range constant.FrameworkCategories[:len(constant.FrameworkCategories)-1] {
		_, err := svc.UpdateScore(context.Background(), state.ID, &dto.UpdateScoreRequest{CategoryID: cat.ID, Score: &score})
		require.NoError(t, err)
	}

	_, err := svc.AdvanceToROI(context.Background(), state.ID)
	assert.ErrorIs(t, err, wizard.ErrScoresIncomplete)

	got, err := svc.GetSession(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StageFramework, got.Stage)

	last := constant.FrameworkCategories[len(constant.FrameworkCategories)-1]
	_, err = svc.UpdateScore(context.Background(), state.ID, &dto.UpdateScoreRequest{CategoryID: last.ID, Score: &score})
	require.NoError(t, err)

	got, err = svc.AdvanceToROI(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StageROI, got.Stage)
}

func TestAdvanceWritesFrameworkCheckpoint(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := newTestService(repo, webhook.NewClient("", time.Second))
	state := startSession(t, svc)
	scoreEverything(t, svc, state.ID, 8)

	_, err := svc.AdvanceToROI(context.Background(), state.ID)
	require.NoError(t, err)

	id := uuid.MustParse(state.ID)
	records, ok := repo.checkpoint[id]
	require.True(t, ok)
	assert.Len(t, records, len(constant.FrameworkCategories))
	assert.Equal(t, 8, records[0].Score)
}

func TestSubmitRequiresROIStage(t *testing.T) {
	svc := newTestService(newFakeSessionRepository(), webhook.NewClient("", time.Second))
	state := startSession(t, svc)

	_, err := svc.SubmitResults(context.Background(), state.ID, &dto.SubmitRequest{Model: "simple"})
	assert.ErrorIs(t, err, wizard.ErrInvalidTransition)
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	svc := newTestService(newFakeSessionRepository(), webhook.NewClient("", time.Second))
	state := startSession(t, svc)
	scoreEverything(t, svc, state.ID, 8)
	_, err := svc.AdvanceToROI(context.Background(), state.ID)
	require.NoError(t, err)

	_, err = svc.SubmitResults(context.Background(), state.ID, &dto.SubmitRequest{Model: "simple"})
	assert.ErrorIs(t, err, ErrMissingROIFields)

	got, err := svc.GetSession(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StageROI, got.Stage)
	assert.False(t, got.Submitting)
}

func TestSubmitSimpleModelOptionalFieldsMayStayBlank(t *testing.T) {
	svc := newTestService(newFakeSessionRepository(), webhook.NewClient("", time.Second))
	state := startSession(t, svc)
	scoreEverything(t, svc, state.ID, 8)
	_, err := svc.AdvanceToROI(context.Background(), state.ID)
	require.NoError(t, err)

	// close_rate and months_to_goal only refine the projection
	fields := map[string]string{
		"offer_price":        "5000",
		"clients_per_month":  "4",
		"revenue_goal":       "500000",
		"program_investment": "30000",
	}
	for field, value := range fields {
		_, err := svc.UpdateROIInput(context.Background(), state.ID, &dto.UpdateROIRequest{Field: field, Value: value})
		require.NoError(t, err)
	}

	got, err := svc.SubmitResults(context.Background(), state.ID, &dto.SubmitRequest{Model: "simple"})
	require.NoError(t, err)
	assert.Equal(t, wizard.StageResults, got.Stage)
}

func TestSubmitSimpleModelRequiresProgramInvestment(t *testing.T) {
	svc := newTestService(newFakeSessionRepository(), webhook.NewClient("", time.Second))
	state := startSession(t, svc)
	scoreEverything(t, svc, state.ID, 8)
	_, err := svc.AdvanceToROI(context.Background(), state.ID)
	require.NoError(t, err)

	fields := map[string]string{
		"offer_price":       "5000",
		"clients_per_month": "4",
		"revenue_goal":      "500000",
	}
	for field, value := range fields {
		_, err := svc.UpdateROIInput(context.Background(), state.ID, &dto.UpdateROIRequest{Field: field, Value: value})
		require.NoError(t, err)
	}

	_, err = svc.SubmitResults(context.Background(), state.ID, &dto.SubmitRequest{Model: "simple"})
	assert.ErrorIs(t, err, ErrMissingROIFields)
	assert.ErrorContains(t, err, "program_investment")
}

func TestSubmitPersistsSnapshotAndDeliversWebhook(t *testing.T) {
	var (
		hookMu   sync.Mutex
		payloads []webhook.Payload
	)
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p webhook.Payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		hookMu.Lock()
		payloads = append(payloads, p)
		hookMu.Unlock()
		close(done)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	repo := newFakeSessionRepository()
	svc := newTestService(repo, webhook.NewClient(server.URL, 2*time.Second))
	state := startSession(t, svc)
	scoreEverything(t, svc, state.ID, 8)
	_, err := svc.AdvanceToROI(context.Background(), state.ID)
	require.NoError(t, err)
	fillSimpleInputs(t, svc, state.ID)

	got, err := svc.SubmitResults(context.Background(), state.ID, &dto.SubmitRequest{Model: "simple"})
	require.NoError(t, err)
	assert.Equal(t, wizard.StageResults, got.Stage)
	assert.False(t, got.Submitting)

	id := uuid.MustParse(state.ID)
	record, ok := repo.completed[id]
	require.True(t, ok)
	assert.Equal(t, entity.ROIModelSimple, record.ROIModel)
	assert.Equal(t, 72, record.TotalScore)
	assert.Len(t, record.FrameworkData, len(constant.FrameworkCategories))

	var outputs map[string]interface{}
	require.NoError(t, json.Unmarshal(record.ROIOutputs, &outputs))
	assert.Equal(t, 20000.0, outputs["monthly_revenue"])

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("webhook was not delivered")
	}

	hookMu.Lock()
	defer hookMu.Unlock()
	require.Len(t, payloads, 1)
	assert.Equal(t, "dana@example.com", payloads[0].Email)
	assert.Equal(t, 72, payloads[0].TotalScore)
	assert.Len(t, payloads[0].FrameworkScores, len(constant.FrameworkCategories))
	assert.Equal(t, 5000.0, payloads[0].ROIInputs["offer_price"])
	assert.NotEmpty(t, payloads[0].Timestamp)
}

func TestSubmitLaunchModelUsesScoreForCapacity(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := newTestService(repo, webhook.NewClient("", time.Second))
	state := startSession(t, svc)
	scoreEverything(t, svc, state.ID, 8)
	_, err := svc.AdvanceToROI(context.Background(), state.ID)
	require.NoError(t, err)

	fields := map[string]string{
		"revenue_goal_2026":   "150000",
		"founder_clients":     "10",
		"founder_price":       "500",
		"unstoppable_clients": "5",
		"unstoppable_price":   "5000",
		"num_launches":        "3",
	}
	for field, value := range fields {
		_, err := svc.UpdateROIInput(context.Background(), state.ID, &dto.UpdateROIRequest{Field: field, Value: value})
		require.NoError(t, err)
	}

	got, err := svc.SubmitResults(context.Background(), state.ID, &dto.SubmitRequest{Model: "launch"})
	require.NoError(t, err)
	assert.Equal(t, wizard.StageResults, got.Stage)

	record := repo.completed[uuid.MustParse(state.ID)]
	require.NotNil(t, record)
	assert.Equal(t, entity.ROIModelLaunch, record.ROIModel)

	var outputs map[string]interface{}
	require.NoError(t, json.Unmarshal(record.ROIOutputs, &outputs))
	assert.Equal(t, 90000.0, outputs["projected_annual_revenue"])
	assert.Equal(t, 80.0, outputs["execution_capacity"])
}

// Finalize with every backend broken must still land the visitor on
// the results view.
func TestSubmitReachesResultsWhenGatewaysFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	repo := newFakeSessionRepository()
	svc := newTestService(repo, webhook.NewClient(server.URL, time.Second))
	state := startSession(t, svc)
	scoreEverything(t, svc, state.ID, 6)
	_, err := svc.AdvanceToROI(context.Background(), state.ID)
	require.NoError(t, err)
	fillSimpleInputs(t, svc, state.ID)

	repo.failAll = true

	got, err := svc.SubmitResults(context.Background(), state.ID, &dto.SubmitRequest{Model: "simple"})
	require.NoError(t, err)
	assert.Equal(t, wizard.StageResults, got.Stage)
	assert.False(t, got.Submitting)

	// The completed state keeps serving from memory.
	again, err := svc.GetSession(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StageResults, again.Stage)
	assert.True(t, again.Derived.Simple.IsCalculated)
}

func TestSubmitWithoutDatabaseRunsDemoMode(t *testing.T) {
	svc := NewSessionService(
		constant.FrameworkCategories,
		memory.NewWizardRepository(),
		nil,
		webhook.NewClient("", time.Second),
		nil,
		nil,
		"diagnostic.events",
		noopLogger{},
	)
	state := startSession(t, svc)
	scoreEverything(t, svc, state.ID, 9)
	_, err := svc.AdvanceToROI(context.Background(), state.ID)
	require.NoError(t, err)
	fillSimpleInputs(t, svc, state.ID)

	got, err := svc.SubmitResults(context.Background(), state.ID, &dto.SubmitRequest{Model: "simple"})
	require.NoError(t, err)
	assert.Equal(t, wizard.StageResults, got.Stage)
}
