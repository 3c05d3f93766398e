package specification

import "gorm.io/gorm"

// ByEmail filters sessions by the participant's email.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// Completed keeps only sessions that reached the results stage.
type Completed struct{}

func (s Completed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("completed_at IS NOT NULL")
}

// Incomplete keeps sessions that entered the gate but never finalized.
type Incomplete struct{}

func (s Incomplete) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("completed_at IS NULL")
}
