package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ROIModel string

const (
	ROIModelSimple ROIModel = "simple"
	ROIModelLaunch ROIModel = "launch"
)

// ScoreRecord is one persisted category rating.
type ScoreRecord struct {
	CategoryID  string `json:"category_id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

// DiagnosticSession is the durable record of one wizard run. A row is
// created at gate submission with empty diagnostic data and filled in
// at finalize. ROIInputs/ROIOutputs are stored as raw JSON because
// their shape depends on which ROI model the run used.
type DiagnosticSession struct {
	Id            uuid.UUID
	FirstName     string
	LastName      string
	Email         string
	FrameworkData []ScoreRecord
	TotalScore    int
	ROIModel      ROIModel
	ROIInputs     json.RawMessage
	ROIOutputs    json.RawMessage
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CompletionRecord is the immutable snapshot written at finalize.
type CompletionRecord struct {
	FrameworkData []ScoreRecord
	TotalScore    int
	ROIModel      ROIModel
	ROIInputs     json.RawMessage
	ROIOutputs    json.RawMessage
}
