package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreachly/models"
)

// One enrollment's failure must not stop the rest of the batch.
func TestRun_FailureIsolation(t *testing.T) {
	st := newFakeStore()
	pf := &fakeProviderFactory{leadID: "lead-1"}
	e := newTestExecutor(st, pf)

	broken := testEnrollment(1, []models.SequenceStep{emailStep(1, 0, 0)})
	broken.Sequence.UserID = 99 // no credentials for this user

	healthy := testEnrollment(1, []models.SequenceStep{
		emailStep(1, 0, 0),
		emailStep(2, 1, 0),
	})
	healthy.ID = 43

	st.due = []models.Enrollment{broken, healthy}

	e.Run(context.Background())

	// The healthy enrollment was processed despite the earlier failure
	require.Len(t, st.advanced, 1)
	assert.Equal(t, uint(43), st.advanced[0].EnrollmentID)
	assert.Len(t, pf.calls, 1)
}

// A fetch failure logs and returns; Run never propagates errors.
func TestRun_FetchFailureDoesNotPanic(t *testing.T) {
	st := newFakeStore()
	st.dueErr = errors.New("db down")
	e := newTestExecutor(st, &fakeProviderFactory{})

	assert.NotPanics(t, func() { e.Run(context.Background()) })
}

func TestRun_EmptyBatch(t *testing.T) {
	st := newFakeStore()
	pf := &fakeProviderFactory{}
	e := newTestExecutor(st, pf)

	e.Run(context.Background())

	assert.Empty(t, pf.calls)
	assert.Empty(t, st.advanced)
}

// An enrollment whose lease is held by another sweep is left entirely
// untouched for this cycle.
func TestRun_HeldLeaseSkipsEnrollment(t *testing.T) {
	st := newFakeStore()
	pf := &fakeProviderFactory{leadID: "lead-1"}
	e := newTestExecutor(st, pf)
	e.locker = heldLocker{}

	st.due = []models.Enrollment{testEnrollment(1, []models.SequenceStep{emailStep(1, 0, 0)})}

	e.Run(context.Background())

	assert.Empty(t, pf.calls)
	assert.Empty(t, st.appended)
	assert.Empty(t, st.advanced)
	assert.Empty(t, st.completed)
}
