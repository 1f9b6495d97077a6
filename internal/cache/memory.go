package cache

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/babychic/storefront/internal/domain"
)

const (
	// DefaultTTL bounds how stale the storefront catalog can get.
	DefaultTTL = 5 * time.Minute

	sweepInterval = 30 * time.Second
)

type memoryEntry struct {
	products  []domain.Product
	expiresAt time.Time
}

// MemoryCache is a TTL map cache for single-replica deployments.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	baseTTL time.Duration

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &MemoryCache{
		entries:   make(map[string]memoryEntry),
		baseTTL:   ttl,
		stopSweep: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.sweepLoop()

	return c
}

func (c *MemoryCache) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stopSweep:
			return
		}
	}
}

func (c *MemoryCache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrCacheMiss
	}
	return entry.products, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, products []domain.Product) error {
	// Jitter spreads expiry so a full catalog refresh does not
	// stampede the backend all at once.
	jitter := time.Duration(rand.Intn(30)) * time.Second

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{
		products:  products,
		expiresAt: time.Now().Add(c.baseTTL + jitter),
	}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Close stops the background sweeper.
func (c *MemoryCache) Close() {
	close(c.stopSweep)
	c.wg.Wait()
}
