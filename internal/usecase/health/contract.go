package health

import "context"

// DBPinger checks key-value store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ClassifierStatus reports whether the trained emergency model is
// loaded. The heuristic matcher works without it, so a missing model
// degrades health rather than failing it.
type ClassifierStatus interface {
	ModelLoaded() bool
}
