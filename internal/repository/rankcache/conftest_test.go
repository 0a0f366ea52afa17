package rankcache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/HeckerOO1/Search-engine/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	incrByFn     func(ctx context.Context, key string, val int64) error
	expireFn     func(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockStore) IncrBy(ctx context.Context, key string, val int64) error {
	if m.incrByFn != nil {
		return m.incrByFn(ctx, key, val)
	}
	return nil
}

func (m *mockStore) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	if m.expireFn != nil {
		return m.expireFn(ctx, key, ttl, nx)
	}
	return nil
}

// newMemStore returns a mockStore backed by a map, enough to exercise
// generation bumps end to end.
func newMemStore() *mockStore {
	data := map[string][]byte{}
	ms := &mockStore{}
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		v, ok := data[key]
		if !ok {
			return nil, db.ErrKeyNotFound
		}
		return v, nil
	}
	ms.setWithTTLFn = func(_ context.Context, key string, value []byte, _ time.Duration) error {
		data[key] = value
		return nil
	}
	ms.incrByFn = func(_ context.Context, key string, val int64) error {
		cur := int64(0)
		if v, ok := data[key]; ok {
			cur, _ = strconv.ParseInt(string(v), 10, 64)
		}
		data[key] = []byte(strconv.FormatInt(cur+val, 10))
		return nil
	}
	return ms
}

func newTestCache(t *testing.T, ms *mockStore) *Cache {
	t.Helper()
	return New(ms, "satya:", 0, nil, zap.NewNop())
}
