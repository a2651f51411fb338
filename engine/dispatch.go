package engine

import (
	"context"
	"fmt"

	"github.com/badoux/checkmail"

	"outreachly/models"
	"outreachly/smartlead"
	"outreachly/utils"
)

// dispatch performs the type-specific side effect of a step and records
// the matching engagement. A failure here leaves the enrollment
// untouched so it comes due again next cycle; there is no rollback of
// the provider call if the engagement insert fails afterwards.
func (e *Executor) dispatch(ctx context.Context, enrollment *models.Enrollment, step *models.SequenceStep, creds *models.SmartleadCredentials) error {
	payload, err := step.Payload()
	if err != nil {
		return fmt.Errorf("step %d: %w", step.StepNumber, err)
	}

	switch p := payload.(type) {
	case models.EmailPayload:
		return e.dispatchEmail(ctx, enrollment, step, p, creds)
	case models.CallPayload:
		return e.dispatchCall(ctx, enrollment, step, p)
	default:
		return fmt.Errorf("step %d: unhandled payload %T", step.StepNumber, payload)
	}
}

func (e *Executor) dispatchEmail(ctx context.Context, enrollment *models.Enrollment, step *models.SequenceStep, payload models.EmailPayload, creds *models.SmartleadCredentials) error {
	contact := &enrollment.Contact
	campaignID := enrollment.Sequence.SmartleadCampaignID
	if campaignID == "" {
		return fmt.Errorf("sequence %d: %w", enrollment.SequenceID, ErrMissingCampaignID)
	}
	if err := checkmail.ValidateFormat(contact.Email); err != nil {
		return fmt.Errorf("contact %d (%s): %w", contact.ID, contact.Email, ErrInvalidContactEmail)
	}

	// The delivered body lives in the provider campaign templates; the
	// rendered subject is what we keep on the engagement record.
	subject := utils.ReplaceVariables(payload.Subject, contact)

	e.logger.WithFields(map[string]interface{}{
		"enrollment_id": enrollment.ID,
		"step":          step.StepNumber,
		"email":         contact.Email,
	}).Info("Registering contact on campaign")

	client := e.provider(creds.APIKey)
	leadID, err := client.AddLeadToCampaign(ctx, campaignID, smartlead.Lead{
		Email:       contact.Email,
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		CompanyName: contact.Company,
	})
	if err != nil {
		return &ProviderError{Err: err}
	}

	return e.store.AppendEngagement(ctx, &models.Engagement{
		ContactID:      contact.ID,
		SequenceID:     enrollment.SequenceID,
		EnrollmentID:   enrollment.ID,
		EngagementType: models.EngagementEmailSent,
		EngagedAt:      e.now(),
		Metadata: models.EngagementMetadata{
			StepNumber:          step.StepNumber,
			Subject:             subject,
			SmartleadLeadID:     leadID,
			SmartleadCampaignID: campaignID,
		},
	})
}

func (e *Executor) dispatchCall(ctx context.Context, enrollment *models.Enrollment, step *models.SequenceStep, payload models.CallPayload) error {
	e.logger.WithFields(map[string]interface{}{
		"enrollment_id": enrollment.ID,
		"step":          step.StepNumber,
		"email":         enrollment.Contact.Email,
	}).Info("Creating call task")

	task := &models.CallTask{
		ContactID:    enrollment.ContactID,
		SequenceID:   enrollment.SequenceID,
		EnrollmentID: enrollment.ID,
		Objective:    payload.Objective,
		Script:       payload.Script,
		Status:       models.CallTaskStatusScheduled,
		ScheduledAt:  e.now(),
	}
	if err := e.store.CreateCallTask(ctx, task); err != nil {
		return err
	}

	return e.store.AppendEngagement(ctx, &models.Engagement{
		ContactID:      enrollment.ContactID,
		SequenceID:     enrollment.SequenceID,
		EnrollmentID:   enrollment.ID,
		EngagementType: models.EngagementCallScheduled,
		EngagedAt:      e.now(),
		Metadata: models.EngagementMetadata{
			StepNumber:    step.StepNumber,
			StepType:      models.StepTypeCall,
			CallObjective: payload.Objective,
		},
	})
}
