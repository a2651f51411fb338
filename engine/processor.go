package engine

import (
	"context"
	"fmt"

	"outreachly/models"
)

// ProcessEnrollment advances one enrollment by one turn: resolve
// credentials and the current step, evaluate entry conditions, dispatch
// the step's action when they hold, then move to the next step or
// complete the sequence. A skipped step consumes a turn exactly like an
// executed one. On error the enrollment is left unmodified and stays
// due for the next sweep.
func (e *Executor) ProcessEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	log := e.logger.WithFields(map[string]interface{}{
		"enrollment_id": enrollment.ID,
		"sequence_id":   enrollment.SequenceID,
		"step":          enrollment.CurrentStep,
	})
	log.Info("Processing enrollment")

	creds, err := e.store.UserCredentials(ctx, enrollment.Sequence.UserID)
	if err != nil {
		return fmt.Errorf("resolving credentials for user %d: %w", enrollment.Sequence.UserID, err)
	}

	step := enrollment.Sequence.StepByNumber(enrollment.CurrentStep)
	if step == nil {
		return fmt.Errorf("enrollment %d step %d: %w", enrollment.ID, enrollment.CurrentStep, ErrStepNotFound)
	}

	proceed := true
	if enrollment.CurrentStep > 1 {
		prior, err := e.store.EnrollmentEngagements(ctx, enrollment.ID, step.StepNumber-1)
		if err != nil {
			return fmt.Errorf("loading prior engagements: %w", err)
		}
		proceed = EvaluateConditions(step, prior)
	}

	if proceed {
		if err := e.dispatch(ctx, enrollment, step, creds); err != nil {
			return err
		}
	} else {
		// Skipped steps consume no provider action but are still
		// advanced past.
		log.Info("Conditions not met, skipping to next step")
	}

	return e.advance(ctx, enrollment)
}

func (e *Executor) advance(ctx context.Context, enrollment *models.Enrollment) error {
	now := e.now()
	next := ComputeNext(enrollment.CurrentStep, enrollment.Sequence.Steps, now)

	if next.Terminal {
		if err := e.store.CompleteEnrollment(ctx, enrollment.ID, now); err != nil {
			return fmt.Errorf("completing enrollment %d: %w", enrollment.ID, err)
		}
		e.logger.WithField("enrollment_id", enrollment.ID).Info("Enrollment completed")
		return nil
	}

	if err := e.store.AdvanceEnrollment(ctx, enrollment.ID, next.NextStep, next.NextDueAt); err != nil {
		return fmt.Errorf("advancing enrollment %d: %w", enrollment.ID, err)
	}
	e.logger.WithFields(map[string]interface{}{
		"enrollment_id": enrollment.ID,
		"next_step":     next.NextStep,
		"next_due_at":   next.NextDueAt,
	}).Info("Enrollment moved to next step")
	return nil
}
