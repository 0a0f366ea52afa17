// Package memory implements db.Store in-process. It backs single-node
// deployments and tests where no redis is configured.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/HeckerOO1/Search-engine/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DefaultCapacity bounds the number of cached entries.
const DefaultCapacity = 4096

type entry struct {
	value     []byte
	expiresAt time.Time // zero = no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Store is an LRU-bounded key-value store with lazy per-key expiry.
// The mutex serializes read-modify-write sequences; the LRU bounds
// memory so no background sweeper is needed.
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache[string, entry]
}

// NewStore creates a memory store holding at most capacity entries.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, _ := lru.New[string, entry](capacity)
	return &Store{cache: cache}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close drops all entries.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}

// WaitForReady returns immediately; the store is always ready.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cache.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	if e.expired(time.Now()) {
		s.cache.Remove(key)
		return nil, db.ErrKeyNotFound
	}
	return e.value, nil
}

// Set stores a value at the given key without expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(key, entry{value: value})
	return nil
}

// SetWithTTL stores a value with an expiration.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(key, entry{value: value, expiresAt: time.Now().Add(ttl)})
	return nil
}

// Del removes a key. Deleting a missing key is not an error.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(key)
	return nil
}

// IncrBy atomically increments a numeric key by the given amount,
// creating it at val when absent. Expiry is preserved.
func (s *Store) IncrBy(_ context.Context, key string, val int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	current := int64(0)
	expiresAt := time.Time{}
	if e, ok := s.cache.Get(key); ok && !e.expired(now) {
		parsed, err := strconv.ParseInt(string(e.value), 10, 64)
		if err != nil {
			return &db.Error{Op: db.OpIncrBy, Err: err}
		}
		current = parsed
		expiresAt = e.expiresAt
	}
	s.cache.Add(key, entry{
		value:     []byte(strconv.FormatInt(current+val, 10)),
		expiresAt: expiresAt,
	})
	return nil
}

// Expire sets TTL on a key. When nx=true, sets TTL only if the key has
// no expiry yet. Expiring a missing key is a no-op, matching redis.
func (s *Store) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cache.Get(key)
	if !ok || e.expired(time.Now()) {
		return nil
	}
	if nx && !e.expiresAt.IsZero() {
		return nil
	}
	e.expiresAt = time.Now().Add(ttl)
	s.cache.Add(key, e)
	return nil
}
