package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ceo-diagnostic-be/internal/entity"
	"ceo-diagnostic-be/internal/mapper"
	"ceo-diagnostic-be/internal/model"
	"ceo-diagnostic-be/internal/repository/contract"
	"ceo-diagnostic-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewDiagnosticSessionRepository(db *gorm.DB) contract.DiagnosticSessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.DiagnosticSession) error {
	modelSession := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(modelSession).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(modelSession)
	return nil
}

func (r *SessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DiagnosticSession, error) {
	var modelSession model.DiagnosticSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelSession).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelSession), nil
}

func (r *SessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DiagnosticSession, error) {
	var modelSessions []*model.DiagnosticSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelSessions).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelSessions), nil
}

func (r *SessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DiagnosticSession{}), specs...)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SessionRepositoryImpl) UpdateFrameworkData(ctx context.Context, id uuid.UUID, data []entity.ScoreRecord, totalScore int) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.DiagnosticSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"framework_data": datatypes.JSON(blob),
			"total_score":    totalScore,
		}).Error
}

func (r *SessionRepositoryImpl) Complete(ctx context.Context, id uuid.UUID, record *entity.CompletionRecord) error {
	blob, err := json.Marshal(record.FrameworkData)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&model.DiagnosticSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"framework_data": datatypes.JSON(blob),
			"total_score":    record.TotalScore,
			"roi_model":      string(record.ROIModel),
			"roi_inputs":     datatypes.JSON(record.ROIInputs),
			"roi_outputs":    datatypes.JSON(record.ROIOutputs),
			"completed_at":   now,
		}).Error
}

func (r *SessionRepositoryImpl) AverageTotalScore(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&model.DiagnosticSession{}).
		Where("completed_at IS NOT NULL").
		Select("AVG(total_score)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
