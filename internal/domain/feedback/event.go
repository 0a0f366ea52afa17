// Package feedback defines user interaction events.
package feedback

import (
	"net/url"
	"strings"
	"time"

	"github.com/HeckerOO1/Search-engine/internal/domain"
)

// Action is the kind of user interaction.
type Action string

// Feedback action constants.
const (
	// Click marks the user opening a result.
	Click Action = "click"
	// Return marks the user coming back to the result list.
	Return Action = "return"
)

// IsValid checks if the action is one of the supported values.
func (a Action) IsValid() bool {
	return a == Click || a == Return
}

// Event is a validated click/return interaction, scoped to a session.
// A return is only meaningful after a click on the same url within the
// recency window; that pairing is the feedback tracker's concern.
type Event struct {
	action    Action
	url       string
	queryText string
	sessionID string
	at        time.Time
}

// NewEvent validates a feedback event. A zero timestamp is stamped
// with the current time.
func NewEvent(action Action, rawURL, queryText, sessionID string, at time.Time) (Event, error) {
	if !action.IsValid() {
		return Event{}, domain.ErrInvalidAction
	}
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Event{}, domain.ErrInvalidURL
	}
	if u, err := url.Parse(rawURL); err != nil || u.Host == "" {
		return Event{}, domain.ErrInvalidURL
	}
	if strings.TrimSpace(sessionID) == "" {
		return Event{}, domain.ErrMissingSession
	}
	if at.IsZero() {
		at = time.Now()
	}

	return Event{
		action:    action,
		url:       rawURL,
		queryText: strings.TrimSpace(queryText),
		sessionID: sessionID,
		at:        at,
	}, nil
}

// Action returns the interaction kind.
func (e *Event) Action() Action { return e.action }

// URL returns the interacted result url.
func (e *Event) URL() string { return e.url }

// QueryText returns the originating query text, possibly empty.
func (e *Event) QueryText() string { return e.queryText }

// SessionID returns the owning session.
func (e *Event) SessionID() string { return e.sessionID }

// At returns the event timestamp.
func (e *Event) At() time.Time { return e.at }
