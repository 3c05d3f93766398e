package dto

import (
	"ceo-diagnostic-be/pkg/calc"
	"ceo-diagnostic-be/pkg/wizard"
)

type StartSessionRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

type UpdateScoreRequest struct {
	CategoryID  string  `json:"category_id" validate:"required"`
	Description *string `json:"description"`
	Score       *int    `json:"score" validate:"omitempty,min=0,max=10"`
}

// UpdateROIRequest replaces one raw calculator field. Field names are
// the snake_case keys of either ROI model; the value is stored exactly
// as entered.
type UpdateROIRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type SubmitRequest struct {
	Model string `json:"model" validate:"required,oneof=simple launch"`
}

// DerivedOutputs is recomputed from the session on every read and never
// stored alongside it.
type DerivedOutputs struct {
	TotalScore     int                 `json:"total_score"`
	MaxScore       int                 `json:"max_score"`
	AllScored      bool                `json:"all_scored"`
	Interpretation calc.Interpretation `json:"interpretation"`
	Simple         calc.SimpleOutputs  `json:"simple"`
	Launch         calc.LaunchOutputs  `json:"launch"`
}

type SessionStateResponse struct {
	ID           string              `json:"id"`
	Stage        wizard.Stage        `json:"stage"`
	User         wizard.Identity     `json:"user"`
	Scores       []wizard.ScoreEntry `json:"scores"`
	ROIInputs    wizard.ROIInputs    `json:"roi_inputs"`
	LaunchInputs wizard.LaunchInputs `json:"launch_inputs"`
	Submitting   bool                `json:"submitting"`
	Derived      DerivedOutputs      `json:"derived"`
}

type CatalogResponse struct {
	Categories []wizard.Category `json:"categories"`
	MaxScore   int               `json:"max_score"`
}
