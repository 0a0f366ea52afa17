// Package provider defines the tier adapter contract and shared HTTP
// plumbing for the external search engine adapters.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/HeckerOO1/Search-engine/internal/domain/result"
)

// DefaultFetchLimit caps a tier's result list when the caller does
// not set Constraints.MaxResults.
const DefaultFetchLimit = 20

// Constraints bound a single fetch call.
type Constraints struct {
	MaxResults int
	// FreshnessCutoff drops older results when the adapter can tell;
	// zero means no cutoff.
	FreshnessCutoff time.Time
}

// Adapter fetches raw results for one provider tier.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query string, c Constraints) ([]result.Result, error)
}

// UserAgent is sent on every outbound engine request. Engines serve
// degraded or empty markup to unidentified clients.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// GetBody performs a GET with browser-like headers and returns the
// response body. Non-2xx responses are errors; bodies are capped at
// maxBody bytes.
func GetBody(ctx context.Context, client *http.Client, rawURL, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return readCloser{io.LimitReader(resp.Body, maxBody), resp.Body}, nil
}

const maxBody = 4 << 20

type readCloser struct {
	io.Reader
	io.Closer
}
