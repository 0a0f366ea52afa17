package sdk

import (
	"errors"
	"fmt"
)

// Sentinel errors for well-known API failure codes. Use errors.Is()
// to check; errors.As() with *APIError exposes the raw status, code,
// and message.
var (
	// ErrInvalidRequest covers malformed bodies and validation
	// failures (empty query, bad feedback action, missing session).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized signals a missing or unknown API key.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrServer signals a 5xx response.
	ErrServer = errors.New("server error")
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d code=%s: %s", e.Status, e.Code, e.Message)
}

// Unwrap maps the error code onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "bad_request", "validation_failed":
		return ErrInvalidRequest
	case "unauthorized":
		return ErrUnauthorized
	}
	if e.Status >= 500 {
		return ErrServer
	}
	return nil
}
