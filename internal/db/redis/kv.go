package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/HeckerOO1/Search-engine/internal/db"
)

// exec runs a write-style command and wraps any failure with the
// logical operation name.
func (s *Store) exec(ctx context.Context, op string, cmd rueidis.Completed) error {
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: op, Err: err}
	}
	return nil
}

// Get retrieves a value by key. A missing key is db.ErrKeyNotFound,
// not a transport error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.do(ctx, s.b().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value at the given key without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.exec(ctx, db.OpSet, s.b().Set().Key(key).Value(string(value)).Build())
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.exec(ctx, db.OpSet, s.b().Set().Key(key).Value(string(value)).Ex(ttl).Build())
}

// Del removes a key. Deleting a missing key is not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	return s.exec(ctx, db.OpDel, s.b().Del().Key(key).Build())
}

// IncrBy atomically adds val to the counter at key, creating it at
// zero first when absent.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	return s.exec(ctx, db.OpIncrBy, s.b().Incrby().Key(key).Increment(val).Build())
}

// Expire sets a TTL on an existing key. With nx the TTL is applied
// only when the key has no expiry yet, which lets counters keep their
// original deadline across increments.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	e := s.b().Expire().Key(key).Seconds(int64(ttl.Seconds()))
	if nx {
		return s.exec(ctx, db.OpExpire, e.Nx().Build())
	}
	return s.exec(ctx, db.OpExpire, e.Build())
}
