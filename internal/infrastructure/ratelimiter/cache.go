package ratelimiter

import (
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get for absent or expired keys.
var ErrCacheMiss = errors.New("cache miss")

// GetterSetter is the counter store behind the limiter. Keeping it behind an
// interface lets the buckets move to a shared store without touching the
// token logic.
type GetterSetter interface {
	Get(key string) (int, error)
	Set(key string, value int) error
	SetWithExpiration(key string, value int, expiration time.Duration) error
	Close() error
}
