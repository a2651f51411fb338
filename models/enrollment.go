package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusPaused    = "paused"
)

// Enrollment is a contact's running instance of a sequence. While active,
// NextSendAt is set and CurrentStep references an existing step (or one
// past the end, meaning the sequence is about to complete). Only the
// engine advances it; the webhook ingest may pause it.
type Enrollment struct {
	gorm.Model
	ContactID  uint `gorm:"not null;index" json:"contact_id"`
	SequenceID uint `gorm:"not null;index" json:"sequence_id"`

	CurrentStep int        `gorm:"not null;default:1" json:"current_step"`
	Status      string     `gorm:"not null;default:'active';index" json:"status"`
	NextSendAt  *time.Time `gorm:"index" json:"next_send_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relations
	Contact  Contact  `json:"contact,omitempty"`
	Sequence Sequence `json:"sequence,omitempty"`
}
