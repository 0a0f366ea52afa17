// Package rankcache stores ranked search responses in the key-value
// store. Entries are scoped by a per-session generation counter:
// invalidating a session bumps the counter, so entries written under
// the previous value are never addressed again and lapse by TTL.
package rankcache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/HeckerOO1/Search-engine/internal/db"
)

// DefaultTTL bounds how long a ranked response stays servable.
const DefaultTTL = 5 * time.Minute

// genTTL must outlive every entry written under a generation.
const genTTL = 24 * time.Hour

// store is the consumer interface for the ranking cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Cache stores serialized search responses keyed by session and
// request fingerprint.
type Cache struct {
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a ranking cache. ttl <= 0 selects DefaultTTL.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	s store,
	prefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:      s,
		prefix:     prefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached payload for the session and fingerprint.
// Store failures degrade to a miss, never to an error.
func (c *Cache) Get(ctx context.Context, sessionID, fingerprint string) ([]byte, bool) {
	gen, ok := c.generation(ctx, sessionID)
	if !ok {
		c.incCache("miss")
		return nil, false
	}

	key := c.entryKey(sessionID, gen, fingerprint)
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached ranking", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return nil, false
	}
	if len(data) == 0 {
		c.incCache("miss")
		return nil, false
	}

	c.incCache("hit")
	return data, true
}

// Put stores the payload under the session's current generation.
// Failures are logged and swallowed.
func (c *Cache) Put(ctx context.Context, sessionID, fingerprint string, payload []byte) {
	if len(payload) == 0 {
		return
	}
	gen, ok := c.generation(ctx, sessionID)
	if !ok {
		return
	}

	key := c.entryKey(sessionID, gen, fingerprint)
	if err := c.store.SetWithTTL(ctx, key, payload, c.ttl); err != nil {
		c.logger.Warn("Failed to cache ranking", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateSession bumps the session's generation counter, detaching
// every entry cached for it so far.
func (c *Cache) InvalidateSession(ctx context.Context, sessionID string) error {
	key := c.genKey(sessionID)
	if err := c.store.IncrBy(ctx, key, 1); err != nil {
		return fmt.Errorf("rank cache INCRBY %s: %w", key, err)
	}

	// Refresh so the counter outlives every entry written under it.
	if err := c.store.Expire(ctx, key, genTTL, false); err != nil {
		return fmt.Errorf("rank cache EXPIRE %s: %w", key, err)
	}

	return nil
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// generation reads the session's counter. A missing key is generation
// zero; an unreadable one disables caching for the call.
func (c *Cache) generation(ctx context.Context, sessionID string) (int64, bool) {
	key := c.genKey(sessionID)
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, true
		}
		c.logger.Warn("Failed to get cache generation", zap.String("key", key), zap.Error(err))
		return 0, false
	}

	gen, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		c.logger.Warn("Failed to parse cache generation", zap.String("key", key), zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (c *Cache) genKey(sessionID string) string {
	return c.prefix + "rank_gen:" + sessionID
}

func (c *Cache) entryKey(sessionID string, gen int64, fingerprint string) string {
	return fmt.Sprintf("%srank:%s:%d:%s", c.prefix, sessionID, gen, fingerprint)
}
