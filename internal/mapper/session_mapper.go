package mapper

import (
	"encoding/json"

	"ceo-diagnostic-be/internal/entity"
	"ceo-diagnostic-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.DiagnosticSession) *entity.DiagnosticSession {
	if s == nil {
		return nil
	}
	var frameworkData []entity.ScoreRecord
	if len(s.FrameworkData) > 0 {
		// A corrupt blob degrades to an empty list rather than failing
		// the read; the row's scalar columns stay usable.
		_ = json.Unmarshal(s.FrameworkData, &frameworkData)
	}
	return &entity.DiagnosticSession{
		Id:            s.Id,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Email:         s.Email,
		FrameworkData: frameworkData,
		TotalScore:    s.TotalScore,
		ROIModel:      entity.ROIModel(s.ROIModel),
		ROIInputs:     json.RawMessage(s.ROIInputs),
		ROIOutputs:    json.RawMessage(s.ROIOutputs),
		CompletedAt:   s.CompletedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.DiagnosticSession) *model.DiagnosticSession {
	if s == nil {
		return nil
	}
	frameworkData, _ := json.Marshal(s.FrameworkData)
	return &model.DiagnosticSession{
		Id:            s.Id,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Email:         s.Email,
		FrameworkData: datatypes.JSON(frameworkData),
		TotalScore:    s.TotalScore,
		ROIModel:      string(s.ROIModel),
		ROIInputs:     datatypes.JSON(s.ROIInputs),
		ROIOutputs:    datatypes.JSON(s.ROIOutputs),
		CompletedAt:   s.CompletedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *SessionMapper) ToEntities(models []*model.DiagnosticSession) []*entity.DiagnosticSession {
	entities := make([]*entity.DiagnosticSession, 0, len(models))
	for _, s := range models {
		entities = append(entities, m.ToEntity(s))
	}
	return entities
}
