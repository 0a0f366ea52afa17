// Package counters persists daily usage counters so stats survive
// process restarts.
package counters

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/HeckerOO1/Search-engine/internal/db"
)

// DefaultTTL keeps a daily counter long enough to cover timezone skew
// around midnight.
const DefaultTTL = 48 * time.Hour

// store is the consumer interface for counter operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store keeps named per-day counters on top of DB (INCRBY + GET with TTL).
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a counter store. ttl <= 0 selects DefaultTTL.
func New(s store, prefix string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		store:  s,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Incr adds one to the named counter for the given day.
func (s *Store) Incr(ctx context.Context, name string, day time.Time) error {
	return s.IncrBy(ctx, name, day, 1)
}

// IncrBy atomically increments the named counter and sets its TTL.
func (s *Store) IncrBy(ctx context.Context, name string, day time.Time, val int64) error {
	key := s.key(name, day)
	if err := s.store.IncrBy(ctx, key, val); err != nil {
		return fmt.Errorf("stats INCRBY %s: %w", key, err)
	}

	// Set TTL only if the key has no expiry yet (NX, not reset on repeat).
	if err := s.store.Expire(ctx, key, s.ttl, true); err != nil {
		return fmt.Errorf("stats EXPIRE %s: %w", key, err)
	}

	return nil
}

// Get returns the counter value for the day. Returns 0 if the key
// does not exist.
func (s *Store) Get(ctx context.Context, name string, day time.Time) (int64, error) {
	key := s.key(name, day)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("stats GET %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stats GET %s parse: %w", key, err)
	}
	return val, nil
}

// key follows the pattern {prefix}stats:{name}:{YYYY-MM-DD} in UTC.
func (s *Store) key(name string, day time.Time) string {
	return s.prefix + "stats:" + name + ":" + day.UTC().Format("2006-01-02")
}
