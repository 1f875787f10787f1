package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewReport is the archived outcome of a completed interview.
type InterviewReport struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID     string    `gorm:"type:text;not null" json:"session_id"`
	CandidateName string    `gorm:"type:text" json:"candidate_name"`
	JobRole       string    `gorm:"type:text" json:"job_role"`
	Exchanges     int       `gorm:"type:int" json:"exchanges"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InterviewReport) TableName() string {
	return "interview_reports"
}
