package redis

import "github.com/redis/rueidis"

// NewStoreForTest wraps an existing rueidis client, bypassing the
// connection setup. Test-only.
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}
