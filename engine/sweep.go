package engine

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
)

// Run executes one sweep: every active enrollment whose due time has
// passed is processed once, oldest due first. Failures are contained at
// enrollment granularity; the sweep itself always completes.
func (e *Executor) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("Sweep panicked: %v", r)
			sentry.CaptureException(fmt.Errorf("sweep panic: %v", r))
		}
	}()

	e.logger.Info("Starting sequence sweep")

	enrollments, err := e.store.DueEnrollments(ctx, e.now())
	if err != nil {
		e.logger.WithError(err).Error("Failed to fetch due enrollments")
		sentry.CaptureException(err)
		return
	}
	if len(enrollments) == 0 {
		e.logger.Info("No enrollments ready to process")
		return
	}

	e.logger.Infof("Processing %d enrollments", len(enrollments))

	for i := range enrollments {
		enrollment := &enrollments[i]

		release, ok, err := e.locker.Acquire(ctx, enrollment.ID)
		if err != nil {
			e.logger.WithError(err).WithField("enrollment_id", enrollment.ID).
				Warn("Lease acquisition failed, leaving enrollment for next sweep")
			continue
		}
		if !ok {
			e.logger.WithField("enrollment_id", enrollment.ID).
				Info("Enrollment claimed by another sweep, skipping")
			continue
		}

		if err := e.ProcessEnrollment(ctx, enrollment); err != nil {
			kind := failureKind(err)
			e.logger.WithError(err).WithFields(map[string]interface{}{
				"enrollment_id": enrollment.ID,
				"failure_kind":  kind,
			}).Error("Failed to process enrollment")

			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("failure_kind", kind)
				scope.SetTag("enrollment_id", fmt.Sprint(enrollment.ID))
				scope.SetTag("sequence_id", fmt.Sprint(enrollment.SequenceID))
				sentry.CaptureException(err)
			})
		}

		release()
	}

	e.logger.Info("Sequence sweep complete")
}
