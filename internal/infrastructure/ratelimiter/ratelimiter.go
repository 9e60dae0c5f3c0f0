package ratelimiter

import (
	"math"
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	tokensKeyPrefix   = "rl:tokens:"
	lastFillKeyPrefix = "rl:fill:"
	defaultSourceKey  = "X-Forwarded-For"
)

type Limiter interface {
	Allow(sourceKey string) bool
	GetSourceKey(r *http.Request) string
	Remaining(sourceKey string) int
	GetMaxBurst() int
}

// RateLimiter is a token bucket per request source. Buckets refill
// continuously; a source that stays quiet recovers its full burst.
type RateLimiter struct {
	ratePerMilli    float64
	maxBurst        int
	cache           GetterSetter
	cacheTTL        time.Duration
	sourceHeaderKey string

	// per-source locks keep refill-then-spend atomic
	locks sync.Map
}

type bucket struct {
	tokens   int
	lastFill int64 // Unix milliseconds
}

type Options struct {
	MaxRatePerSecond int
	MaxBurst         int
	Cache            GetterSetter
	CacheTTL         time.Duration
	SourceHeaderKey  string
}

func New(options Options) Limiter {
	if options.Cache == nil {
		options.Cache = NewInMemory()
	}
	if options.CacheTTL == 0 {
		options.CacheTTL = 10 * time.Second
	}
	if options.MaxBurst <= 0 {
		options.MaxBurst = options.MaxRatePerSecond
	}
	if options.SourceHeaderKey == "" {
		options.SourceHeaderKey = defaultSourceKey
	}

	return &RateLimiter{
		ratePerMilli:    float64(options.MaxRatePerSecond) / 1000.0,
		maxBurst:        options.MaxBurst,
		cache:           options.Cache,
		cacheTTL:        options.CacheTTL,
		sourceHeaderKey: options.SourceHeaderKey,
	}
}

func (rl *RateLimiter) Allow(sourceKey string) bool {
	lock := rl.lockFor(sourceKey)
	lock.Lock()
	defer lock.Unlock()

	b := rl.refill(rl.loadBucket(sourceKey), time.Now().UnixMilli())
	if b.tokens <= 0 {
		rl.storeBucket(sourceKey, b)
		return false
	}

	b.tokens--
	rl.storeBucket(sourceKey, b)
	return true
}

func (rl *RateLimiter) Remaining(sourceKey string) int {
	lock := rl.lockFor(sourceKey)
	lock.Lock()
	defer lock.Unlock()

	b := rl.refill(rl.loadBucket(sourceKey), time.Now().UnixMilli())
	rl.storeBucket(sourceKey, b)
	return b.tokens
}

func (rl *RateLimiter) GetMaxBurst() int {
	return rl.maxBurst
}

// GetSourceKey prefers the configured header (X-Forwarded-For behind a
// proxy) and falls back to the connection's remote host.
func (rl *RateLimiter) GetSourceKey(r *http.Request) string {
	if key := r.Header.Get(rl.sourceHeaderKey); key != "" {
		return key
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) lockFor(sourceKey string) *sync.Mutex {
	lock, _ := rl.locks.LoadOrStore(sourceKey, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// loadBucket reads a source's bucket out of the cache. Misses and cache
// failures both start the source over with a full bucket; failing open keeps
// a broken cache from blocking all traffic.
func (rl *RateLimiter) loadBucket(sourceKey string) bucket {
	tokens, tokensErr := rl.cache.Get(tokensKeyPrefix + sourceKey)
	lastFill, fillErr := rl.cache.Get(lastFillKeyPrefix + sourceKey)

	if tokensErr != nil || fillErr != nil {
		return bucket{tokens: rl.maxBurst, lastFill: time.Now().UnixMilli()}
	}

	return bucket{tokens: tokens, lastFill: int64(lastFill)}
}

func (rl *RateLimiter) storeBucket(sourceKey string, b bucket) {
	_ = rl.cache.SetWithExpiration(tokensKeyPrefix+sourceKey, b.tokens, rl.cacheTTL)
	_ = rl.cache.SetWithExpiration(lastFillKeyPrefix+sourceKey, int(b.lastFill), rl.cacheTTL)
}

// refill credits tokens for the time elapsed since lastFill, capped at the
// burst size. Partial tokens are floored so a source cannot spend fractions.
func (rl *RateLimiter) refill(b bucket, now int64) bucket {
	elapsed := now - b.lastFill
	if elapsed <= 0 {
		return b
	}

	credited := float64(b.tokens) + float64(elapsed)*rl.ratePerMilli
	if credited >= float64(rl.maxBurst) {
		return bucket{tokens: rl.maxBurst, lastFill: now}
	}

	return bucket{tokens: int(math.Floor(credited)), lastFill: now}
}
