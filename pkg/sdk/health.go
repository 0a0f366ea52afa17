package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Health checks the server's component health. Auth-exempt. An
// unhealthy server answers 503 but still carries a report body, so
// both 200 and 503 decode into the response; the Status field tells
// them apart.
func (c *Client) Health(ctx context.Context) (out HealthResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("sdk: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("sdk: GET /health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return HealthResponse{}, decodeAPIError(resp)
	}
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return HealthResponse{}, fmt.Errorf("sdk: decode response: %w", err)
	}
	return out, nil
}
