package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Step types
const (
	StepTypeEmail = "email"
	StepTypeCall  = "call"
)

// Sequence represents an ordered outreach sequence a contact can be
// enrolled into. Immutable from the engine's perspective.
type Sequence struct {
	gorm.Model
	UserID uint `gorm:"not null;index" json:"user_id"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Campaign on the Smartlead side that actually delivers email steps
	SmartleadCampaignID string `json:"smartlead_campaign_id"`

	// Relations
	Steps []SequenceStep `gorm:"foreignKey:SequenceID" json:"steps,omitempty"`
}

// SequenceStep is one unit of outreach within a sequence, keyed by
// step number. Email and call fields are mutually exclusive; use
// NewEmailStep / NewCallStep so the exclusivity holds at construction.
type SequenceStep struct {
	gorm.Model
	SequenceID uint `gorm:"not null;index" json:"sequence_id"`

	StepNumber int    `gorm:"not null" json:"step_number"`
	StepType   string `gorm:"not null" json:"step_type"` // email, call

	// Email fields
	Subject string `json:"subject"`
	Body    string `gorm:"type:text" json:"body"`

	// Call fields
	CallObjective string `json:"call_objective"`
	CallScript    string `gorm:"type:text" json:"call_script"`

	// Delay applied from the moment this step becomes due, to compute
	// the due time of the step that follows the previous one
	DelayDays  int `gorm:"default:0" json:"delay_days"`
	DelayHours int `gorm:"default:0" json:"delay_hours"`

	// Entry conditions gated on the previous step's engagement
	ConditionPreviousOpened  bool `gorm:"default:false" json:"condition_previous_opened"`
	ConditionPreviousClicked bool `gorm:"default:false" json:"condition_previous_clicked"`
	ConditionNotReplied      bool `gorm:"default:false" json:"condition_not_replied"`
}

// StepPayload is the type-specific content of a step.
type StepPayload interface {
	stepPayload()
}

// EmailPayload is the rendered-template input of an email step.
type EmailPayload struct {
	Subject string
	Body    string
}

// CallPayload is the call-task input of a call step.
type CallPayload struct {
	Objective string
	Script    string
}

func (EmailPayload) stepPayload() {}
func (CallPayload) stepPayload()  {}

// NewEmailStep builds an email step with the call fields guaranteed empty.
func NewEmailStep(number int, p EmailPayload, delayDays, delayHours int) SequenceStep {
	return SequenceStep{
		StepNumber: number,
		StepType:   StepTypeEmail,
		Subject:    p.Subject,
		Body:       p.Body,
		DelayDays:  delayDays,
		DelayHours: delayHours,
	}
}

// NewCallStep builds a call step with the email fields guaranteed empty.
func NewCallStep(number int, p CallPayload, delayDays, delayHours int) SequenceStep {
	return SequenceStep{
		StepNumber:    number,
		StepType:      StepTypeCall,
		CallObjective: p.Objective,
		CallScript:    p.Script,
		DelayDays:     delayDays,
		DelayHours:    delayHours,
	}
}

// Payload returns the typed payload for the step's declared type.
func (s *SequenceStep) Payload() (StepPayload, error) {
	switch s.StepType {
	case StepTypeEmail:
		return EmailPayload{Subject: s.Subject, Body: s.Body}, nil
	case StepTypeCall:
		return CallPayload{Objective: s.CallObjective, Script: s.CallScript}, nil
	default:
		return nil, fmt.Errorf("unknown step type %q", s.StepType)
	}
}

// HasConditions reports whether any entry condition is declared.
func (s *SequenceStep) HasConditions() bool {
	return s.ConditionPreviousOpened || s.ConditionPreviousClicked || s.ConditionNotReplied
}

// BeforeSave keeps the email/call field exclusivity honest even for rows
// built without the constructors.
func (s *SequenceStep) BeforeSave(tx *gorm.DB) error {
	switch s.StepType {
	case StepTypeEmail:
		if s.CallObjective != "" || s.CallScript != "" {
			return fmt.Errorf("email step %d carries call fields", s.StepNumber)
		}
	case StepTypeCall:
		if s.Subject != "" || s.Body != "" {
			return fmt.Errorf("call step %d carries email fields", s.StepNumber)
		}
	default:
		return fmt.Errorf("unknown step type %q", s.StepType)
	}
	if s.StepNumber < 1 {
		return fmt.Errorf("step number must be >= 1, got %d", s.StepNumber)
	}
	return nil
}

// StepByNumber finds a step in the sequence by its step number.
func (s *Sequence) StepByNumber(number int) *SequenceStep {
	for i := range s.Steps {
		if s.Steps[i].StepNumber == number {
			return &s.Steps[i]
		}
	}
	return nil
}
