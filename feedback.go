package satyadrishti

import (
	"context"
	"fmt"
	"time"

	domfb "github.com/HeckerOO1/Search-engine/internal/domain/feedback"
)

// FeedbackAction names a user interaction with a result.
type FeedbackAction string

const (
	// FeedbackClick records a result click.
	FeedbackClick FeedbackAction = "click"
	// FeedbackReturn records the user coming back to the result
	// page after a click.
	FeedbackReturn FeedbackAction = "return"
)

// FeedbackEvent is one user interaction.
type FeedbackEvent struct {
	Action    FeedbackAction
	URL       string
	Query     string
	SessionID string
	// At defaults to now when zero.
	At time.Time
}

// FeedbackOutcome reports the effect of an event.
type FeedbackOutcome struct {
	// PogoDetected is true when a return landed inside the
	// pogo-stick window after a click.
	PogoDetected bool
	// PogoCount is the session-wide pogo total for the URL.
	PogoCount int
	// Demoted is true when the count crossed the demotion
	// threshold and cached rankings were invalidated.
	Demoted bool
}

// Feedback records a click or return event and reports whether it
// registered as pogo-sticking.
func (c *Client) Feedback(
	ctx context.Context, ev FeedbackEvent,
) (out FeedbackOutcome, err error) {
	start := time.Now()
	defer func() { c.obs.observe("feedback", start, err) }()

	event, err := domfb.NewEvent(
		domfb.Action(ev.Action), ev.URL, ev.Query, ev.SessionID, ev.At,
	)
	if err != nil {
		return FeedbackOutcome{}, fmt.Errorf("feedback: %w", err)
	}

	res, err := c.feedbackSvc.Record(ctx, event)
	if err != nil {
		return FeedbackOutcome{}, fmt.Errorf("feedback: %w", err)
	}
	return FeedbackOutcome{
		PogoDetected: res.PogoDetected,
		PogoCount:    res.PogoCount,
		Demoted:      res.Demoted,
	}, nil
}
