package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Search runs a query through classification, tiered discovery, and
// mode-weighted ranking. An empty SessionID gets one minted by the
// server; reuse the returned SessionID when reporting feedback.
func (c *Client) Search(ctx context.Context, req SearchRequest) (resp SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	if err = c.do(ctx, http.MethodPost, "/api/search", req, &resp); err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	return resp, nil
}
