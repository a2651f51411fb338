package models

import (
	"time"

	"gorm.io/gorm"
)

// Engagement types. CallScheduled is a dedicated kind for call steps
// rather than overloading email_sent.
const (
	EngagementEmailSent     = "email_sent"
	EngagementEmailOpened   = "email_opened"
	EngagementEmailClicked  = "email_clicked"
	EngagementEmailReplied  = "email_replied"
	EngagementEmailBounced  = "email_bounced"
	EngagementCallScheduled = "call_scheduled"
)

// EngagementMetadata is the JSON payload attached to an engagement row.
// StepNumber is the join key between engagement history and a step;
// engagements carry no direct step foreign key.
type EngagementMetadata struct {
	StepNumber int    `json:"step_number"`
	StepType   string `json:"step_type,omitempty"`
	Subject    string `json:"subject,omitempty"`

	SmartleadLeadID     string `json:"smartlead_lead_id,omitempty"`
	SmartleadCampaignID string `json:"smartlead_campaign_id,omitempty"`

	CallObjective string `json:"call_objective,omitempty"`

	// Raw webhook fields worth keeping for debugging
	Event     string `json:"event,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Engagement is an immutable record of one interaction event. Created by
// the step dispatcher (sent/scheduled) and by the webhook ingest
// (opened/clicked/replied/bounced); never mutated or deleted.
type Engagement struct {
	gorm.Model
	ContactID    uint `gorm:"not null;index" json:"contact_id"`
	SequenceID   uint `gorm:"not null;index" json:"sequence_id"`
	EnrollmentID uint `gorm:"not null;index" json:"enrollment_id"`

	EngagementType string             `gorm:"not null" json:"engagement_type"`
	Metadata       EngagementMetadata `gorm:"type:jsonb;serializer:json" json:"metadata"`
	EngagedAt      time.Time          `gorm:"not null" json:"engaged_at"`
}

// FilterEngagementsByStep returns the engagements whose metadata step
// number matches the given step. The filter runs in code because the
// step number lives inside the JSON payload, not in a column.
func FilterEngagementsByStep(engagements []Engagement, stepNumber int) []Engagement {
	var out []Engagement
	for _, e := range engagements {
		if e.Metadata.StepNumber == stepNumber {
			out = append(out, e)
		}
	}
	return out
}
