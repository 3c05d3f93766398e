package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AdminListQuery carries the parsed query string of the session list
// endpoint.
type AdminListQuery struct {
	Page          int
	Limit         int
	CompletedOnly bool
	Email         string
	Model         string
}

type AdminSessionSummary struct {
	Id          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	TotalScore  int        `json:"total_score"`
	ROIModel    string     `json:"roi_model,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AdminSessionDetail struct {
	AdminSessionSummary
	FrameworkData json.RawMessage `json:"framework_data"`
	ROIInputs     json.RawMessage `json:"roi_inputs"`
	ROIOutputs    json.RawMessage `json:"roi_outputs"`
}

type AdminStatsResponse struct {
	TotalSessions     int64   `json:"total_sessions"`
	CompletedSessions int64   `json:"completed_sessions"`
	AbandonedSessions int64   `json:"abandoned_sessions"`
	CompletionRate    float64 `json:"completion_rate"`
	AverageScore      float64 `json:"average_score"`
}
