package satyadrishti

import "github.com/HeckerOO1/Search-engine/internal/domain"

// Sentinel errors surfaced by the embedded engine. Match with
// errors.Is.
var (
	// ErrEmptyQuery signals a blank or whitespace-only query.
	ErrEmptyQuery = domain.ErrEmptyQuery
	// ErrQueryTooLong signals a query over the accepted length.
	ErrQueryTooLong = domain.ErrQueryTooLong
	// ErrInvalidAction signals a feedback action outside
	// {click, return}.
	ErrInvalidAction = domain.ErrInvalidAction
	// ErrInvalidURL signals a feedback event without a usable url.
	ErrInvalidURL = domain.ErrInvalidURL
	// ErrMissingSession signals a feedback event without a session
	// id.
	ErrMissingSession = domain.ErrMissingSession
)
