package engine

import (
	"errors"

	"outreachly/store"
)

var (
	// ErrMissingCampaignID means the sequence was never synced to a
	// provider campaign. Recurs every cycle until fixed externally.
	ErrMissingCampaignID = errors.New("sequence has no smartlead campaign id")

	// ErrStepNotFound means the enrollment's current step number does
	// not exist in the sequence.
	ErrStepNotFound = errors.New("current step not found in sequence")

	// ErrInvalidContactEmail means the contact's email fails syntax
	// validation and cannot be registered with the provider.
	ErrInvalidContactEmail = errors.New("contact email is not valid")
)

// ProviderError wraps a failed provider call (anything other than the
// duplicate-registration outcome, which the client reports as success).
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return "provider: " + e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }

// failureKind buckets an enrollment failure for log fields and Sentry
// tags. Anything unrecognized is assumed to be a persistence failure.
func failureKind(err error) string {
	var providerErr *ProviderError
	switch {
	case errors.Is(err, store.ErrCredentialsNotFound),
		errors.Is(err, ErrMissingCampaignID):
		return "configuration"
	case errors.Is(err, ErrStepNotFound),
		errors.Is(err, ErrInvalidContactEmail):
		return "data_inconsistency"
	case errors.As(err, &providerErr):
		return "provider"
	default:
		return "persistence"
	}
}
