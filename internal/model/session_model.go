package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DiagnosticSession struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName     string         `gorm:"type:varchar(255);not null"`
	LastName      string         `gorm:"type:varchar(255);not null"`
	Email         string         `gorm:"type:varchar(255);not null;index"`
	FrameworkData datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	TotalScore    int            `gorm:"default:0"`
	ROIModel      string         `gorm:"type:varchar(20)"`
	ROIInputs     datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	ROIOutputs    datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CompletedAt   *time.Time     `gorm:"index"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (DiagnosticSession) TableName() string {
	return "diagnostic_sessions"
}
