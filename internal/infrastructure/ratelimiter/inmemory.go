package ratelimiter

import (
	"sync"
	"time"
)

const sweepInterval = time.Minute

type item struct {
	value     int
	expiresAt int64 // Unix nanoseconds, 0 means no expiry
}

func (it item) expired(now int64) bool {
	return it.expiresAt != 0 && now > it.expiresAt
}

// InMemory is a process-local GetterSetter with lazy expiry on reads and a
// periodic sweep for keys nobody reads again.
type InMemory struct {
	mu    sync.RWMutex
	items map[string]item
	done  chan struct{}
	once  sync.Once
}

func NewInMemory() GetterSetter {
	c := &InMemory{
		items: make(map[string]item),
		done:  make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *InMemory) Get(key string) (int, error) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || it.expired(time.Now().UnixNano()) {
		return 0, ErrCacheMiss
	}
	return it.value, nil
}

func (c *InMemory) Set(key string, value int) error {
	return c.SetWithExpiration(key, value, 0)
}

func (c *InMemory) SetWithExpiration(key string, value int, expiration time.Duration) error {
	it := item{value: value}
	if expiration > 0 {
		it.expiresAt = time.Now().Add(expiration).UnixNano()
	}

	c.mu.Lock()
	c.items[key] = it
	c.mu.Unlock()
	return nil
}

func (c *InMemory) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *InMemory) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now().UnixNano()
			c.mu.Lock()
			for key, it := range c.items {
				if it.expired(now) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}
