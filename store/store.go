// Package store implements the persistence layer behind the progression
// engine: enrollments, engagement history, call tasks and credentials.
package store

import (
	"context"
	"errors"
	"time"

	"outreachly/models"
)

// ErrCredentialsNotFound is returned when a user has not connected a
// Smartlead account. Distinct from transport/database failures so the
// engine can treat it as a configuration problem.
var ErrCredentialsNotFound = errors.New("smartlead credentials not found")

// Store is the persistence contract the engine and the webhook ingest
// depend on.
type Store interface {
	// DueEnrollments returns active enrollments whose next send time is
	// at or before now, earliest due first, each joined with its contact
	// and its sequence's ordered step list.
	DueEnrollments(ctx context.Context, now time.Time) ([]models.Enrollment, error)

	// AdvanceEnrollment moves an enrollment to the given step with the
	// given due time.
	AdvanceEnrollment(ctx context.Context, enrollmentID uint, step int, dueAt time.Time) error

	// CompleteEnrollment marks an enrollment finished; no due time remains.
	CompleteEnrollment(ctx context.Context, enrollmentID uint, at time.Time) error

	// PauseEnrollment sets an enrollment to paused. The sweep never
	// selects paused rows, so this is the only way into that state.
	PauseEnrollment(ctx context.Context, enrollmentID uint) error

	// AppendEngagement inserts an immutable engagement record.
	AppendEngagement(ctx context.Context, engagement *models.Engagement) error

	// EnrollmentEngagements returns the engagements of one enrollment
	// whose metadata step number matches stepNumber.
	EnrollmentEngagements(ctx context.Context, enrollmentID uint, stepNumber int) ([]models.Engagement, error)

	// CreateCallTask inserts a call task with status "scheduled".
	CreateCallTask(ctx context.Context, task *models.CallTask) error

	// AddContactScore adjusts a contact's engagement score by delta.
	AddContactScore(ctx context.Context, contactID uint, delta int) error

	// UserCredentials resolves a user to their decrypted Smartlead
	// credentials, or ErrCredentialsNotFound.
	UserCredentials(ctx context.Context, userID uint) (*models.SmartleadCredentials, error)
}
