package contract

import (
	"context"

	"ceo-diagnostic-be/internal/entity"
	"ceo-diagnostic-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DiagnosticSessionRepository interface {
	Create(ctx context.Context, session *entity.DiagnosticSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DiagnosticSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DiagnosticSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateFrameworkData is the mid-wizard checkpoint written when the
	// visitor leaves the framework stage.
	UpdateFrameworkData(ctx context.Context, id uuid.UUID, data []entity.ScoreRecord, totalScore int) error

	// Complete stores the finalize snapshot and stamps completed_at.
	Complete(ctx context.Context, id uuid.UUID, record *entity.CompletionRecord) error

	// Stats
	AverageTotalScore(ctx context.Context) (float64, error)
}
