package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Stats reports the server's daily usage counters and session state.
func (c *Client) Stats(ctx context.Context) (resp StatsResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stats", start, err) }()

	if err = c.do(ctx, http.MethodGet, "/api/stats", nil, &resp); err != nil {
		return StatsResponse{}, fmt.Errorf("stats: %w", err)
	}
	return resp, nil
}
