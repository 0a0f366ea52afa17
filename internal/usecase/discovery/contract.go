package discovery

import (
	"context"

	"github.com/HeckerOO1/Search-engine/internal/domain/result"
	"github.com/HeckerOO1/Search-engine/internal/provider"
)

// Adapter is one provider tier as the orchestrator consumes it.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query string, c provider.Constraints) ([]result.Result, error)
}
