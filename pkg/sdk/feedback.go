package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Feedback reports a click or return interaction. A quick return
// after a click registers as pogo-sticking and, past the server's
// demotion threshold, penalizes the result's future ranking.
func (c *Client) Feedback(ctx context.Context, req FeedbackRequest) (resp FeedbackResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("feedback", start, err) }()

	if err = c.do(ctx, http.MethodPost, "/api/feedback", req, &resp); err != nil {
		return FeedbackResponse{}, fmt.Errorf("feedback: %w", err)
	}
	return resp, nil
}
