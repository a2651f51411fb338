// Package engine implements the enrollment progression engine: it decides,
// for each due enrollment, whether the current step's entry conditions
// hold, performs the step's action (provider email registration or call
// task), and computes the next step and its due time.
package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"outreachly/smartlead"
	"outreachly/store"
)

// Provider is the campaign-provider surface the dispatcher needs.
type Provider interface {
	AddLeadToCampaign(ctx context.Context, campaignID string, lead smartlead.Lead) (string, error)
}

// ProviderFactory builds a provider client bound to one API key. Callers
// pass credentials explicitly; there is no ambient default client.
type ProviderFactory func(apiKey string) Provider

// Locker grants a short-lived exclusive claim on one enrollment so
// overlapping sweep invocations cannot double-process it. Acquire
// returns ok=false when another invocation holds the claim.
type Locker interface {
	Acquire(ctx context.Context, enrollmentID uint) (release func(), ok bool, err error)
}

// noopLocker is used when no lease backend is configured.
type noopLocker struct{}

func (noopLocker) Acquire(context.Context, uint) (func(), bool, error) {
	return func() {}, true, nil
}

// Executor runs sweeps over due enrollments.
type Executor struct {
	store    store.Store
	provider ProviderFactory
	locker   Locker
	logger   *logrus.Entry
	now      func() time.Time
}

// New builds an Executor. locker may be nil, in which case no
// cross-sweep exclusion is enforced.
func New(st store.Store, provider ProviderFactory, locker Locker, logger *logrus.Entry) *Executor {
	if locker == nil {
		locker = noopLocker{}
	}
	return &Executor{
		store:    st,
		provider: provider,
		locker:   locker,
		logger:   logger,
		now:      time.Now,
	}
}
