package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery signals a blank or whitespace-only query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrQueryTooLong signals a query over the accepted length.
	ErrQueryTooLong = errors.New("query too long")
	// ErrInvalidAction signals a feedback action outside {click, return}.
	ErrInvalidAction = errors.New("invalid feedback action")
	// ErrInvalidURL signals a feedback event without a usable url.
	ErrInvalidURL = errors.New("invalid feedback url")
	// ErrMissingSession signals a feedback event without a session id.
	ErrMissingSession = errors.New("missing session id")

	// ErrAdapterFailure signals a provider tier that failed to deliver.
	ErrAdapterFailure = errors.New("provider adapter failure")
	// ErrClassifierUnavailable signals a missing or unloadable classifier model.
	ErrClassifierUnavailable = errors.New("classifier model unavailable")
	// ErrOracleError signals a scoring oracle failure.
	ErrOracleError = errors.New("scoring oracle error")
)

// AdapterError wraps ErrAdapterFailure with the failing tier and cause.
type AdapterError struct {
	Tier string
	Err  error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("tier %s: %s: %v", e.Tier, ErrAdapterFailure.Error(), e.Err)
}

func (e *AdapterError) Unwrap() error { return ErrAdapterFailure }

// NewAdapterError wraps a tier adapter failure.
func NewAdapterError(tier string, err error) error {
	return &AdapterError{Tier: tier, Err: err}
}
