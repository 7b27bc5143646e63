package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service defines the cache operations the query memoizer needs. Delete and
// DeleteByPattern are the explicit invalidation hooks; with a static store
// they are never called in normal operation, but the contract keeps
// invalidation a first-class operation instead of an implicit process global.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Close() error
}

// GetJSON retrieves a key and unmarshals its JSON payload into T.
func GetJSON[T any](ctx context.Context, c Service, key string) (T, bool) {
	var zero T
	var raw string
	if err := c.Get(ctx, key, &raw); err != nil {
		return zero, false
	}
	var obj T
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return zero, false
	}
	return obj, true
}

func marshalValue(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

// SetJSON marshals a value to JSON and stores it. Marshal failures are
// returned to the caller; a value that cannot round-trip must not be cached.
func SetJSON(ctx context.Context, c Service, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, string(b), ttl)
}
