package models

import (
	"time"

	"gorm.io/gorm"
)

// Call task statuses
const (
	CallTaskStatusScheduled = "scheduled"
	CallTaskStatusCompleted = "completed"
	CallTaskStatusCanceled  = "canceled"
)

// CallTask is a manual-call work item produced by a call step.
type CallTask struct {
	gorm.Model
	ContactID    uint `gorm:"not null;index" json:"contact_id"`
	SequenceID   uint `gorm:"not null;index" json:"sequence_id"`
	EnrollmentID uint `gorm:"not null;index" json:"enrollment_id"`

	Objective string `gorm:"not null" json:"objective"`
	Script    string `gorm:"type:text" json:"script"`

	Status      string     `gorm:"not null;default:'scheduled'" json:"status"`
	ScheduledAt time.Time  `gorm:"not null" json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
