package service

import (
	"context"
	"encoding/json"

	"ceo-diagnostic-be/internal/dto"
	"ceo-diagnostic-be/internal/entity"
	"ceo-diagnostic-be/internal/repository/contract"
	"ceo-diagnostic-be/internal/repository/specification"

	"github.com/google/uuid"
)

type IAdminService interface {
	ListSessions(ctx context.Context, query dto.AdminListQuery) ([]dto.AdminSessionSummary, int64, error)
	GetSession(ctx context.Context, id uuid.UUID) (*dto.AdminSessionDetail, error)
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

type adminService struct {
	repo contract.DiagnosticSessionRepository
}

func NewAdminService(repo contract.DiagnosticSessionRepository) IAdminService {
	return &adminService{repo: repo}
}

func (s *adminService) ListSessions(ctx context.Context, query dto.AdminListQuery) ([]dto.AdminSessionSummary, int64, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	specs := []specification.Specification{}
	if query.CompletedOnly {
		specs = append(specs, specification.Completed{})
	}
	if query.Email != "" {
		specs = append(specs, specification.ByEmail{Email: query.Email})
	}
	if query.Model != "" {
		specs = append(specs, specification.Filter("roi_model", query.Model))
	}

	total, err := s.repo.Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	sessions, err := s.repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]dto.AdminSessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, toSummary(session))
	}
	return summaries, total, nil
}

func (s *adminService) GetSession(ctx context.Context, id uuid.UUID) (*dto.AdminSessionDetail, error) {
	session, err := s.repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	frameworkData, err := json.Marshal(session.FrameworkData)
	if err != nil {
		return nil, err
	}

	return &dto.AdminSessionDetail{
		AdminSessionSummary: toSummary(session),
		FrameworkData:       frameworkData,
		ROIInputs:           session.ROIInputs,
		ROIOutputs:          session.ROIOutputs,
	}, nil
}

func (s *adminService) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.Count(ctx, specification.Completed{})
	if err != nil {
		return nil, err
	}
	abandoned, err := s.repo.Count(ctx, specification.Incomplete{})
	if err != nil {
		return nil, err
	}
	average, err := s.repo.AverageTotalScore(ctx)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}

	return &dto.AdminStatsResponse{
		TotalSessions:     total,
		CompletedSessions: completed,
		AbandonedSessions: abandoned,
		CompletionRate:    rate,
		AverageScore:      average,
	}, nil
}

func toSummary(session *entity.DiagnosticSession) dto.AdminSessionSummary {
	return dto.AdminSessionSummary{
		Id:          session.Id,
		FirstName:   session.FirstName,
		LastName:    session.LastName,
		Email:       session.Email,
		TotalScore:  session.TotalScore,
		ROIModel:    string(session.ROIModel),
		CompletedAt: session.CompletedAt,
		CreatedAt:   session.CreatedAt,
	}
}
