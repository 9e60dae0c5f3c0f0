package ratelimiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	req := require.New(t)
	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 3})

	for i := 0; i < 3; i++ {
		req.True(rl.Allow("client-1"), "request %d should pass", i)
	}
	req.False(rl.Allow("client-1"))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	req := require.New(t)
	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 1})

	req.True(rl.Allow("client-1"))
	req.False(rl.Allow("client-1"))
	req.True(rl.Allow("client-2"))
}

func TestRateLimiter_Refills(t *testing.T) {
	req := require.New(t)
	rl := New(Options{MaxRatePerSecond: 100, MaxBurst: 1})

	req.True(rl.Allow("client-1"))
	req.False(rl.Allow("client-1"))

	time.Sleep(50 * time.Millisecond)
	req.True(rl.Allow("client-1"))
}

func TestRateLimiter_Remaining(t *testing.T) {
	req := require.New(t)
	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 5})

	req.Equal(5, rl.Remaining("client-1"))
	rl.Allow("client-1")
	req.Equal(4, rl.Remaining("client-1"))
}

func TestRateLimiter_SourceKey(t *testing.T) {
	req := require.New(t)
	rl := New(Options{MaxRatePerSecond: 1})

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	req.Equal("203.0.113.7", rl.GetSourceKey(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.9")
	req.Equal("198.51.100.9", rl.GetSourceKey(r))
}

func TestInMemoryCache_Expiration(t *testing.T) {
	req := require.New(t)
	cache := NewInMemory()
	defer cache.Close()

	req.NoError(cache.SetWithExpiration("key", 7, 10*time.Millisecond))

	v, err := cache.Get("key")
	req.NoError(err)
	req.Equal(7, v)

	time.Sleep(20 * time.Millisecond)
	_, err = cache.Get("key")
	req.ErrorIs(err, ErrCacheMiss)
}
