package mock

import (
	"context"
	"sync"

	"github.com/feluda-dev/feluda"
)

var _ feluda.ResolutionCache = (*ResolutionCache)(nil)

// ResolutionCache is a mock implementation of feluda.ResolutionCache.
type ResolutionCache struct {
	GetFn func(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, bool, error)
	PutFn func(ctx context.Context, dep feluda.Dependency, res feluda.Resolution) error
}

func (c *ResolutionCache) Get(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, bool, error) {
	return c.GetFn(ctx, dep)
}

func (c *ResolutionCache) Put(ctx context.Context, dep feluda.Dependency, res feluda.Resolution) error {
	return c.PutFn(ctx, dep, res)
}

var _ feluda.ResolutionCache = (*MemoryCache)(nil)

// MemoryCache is a map-backed feluda.ResolutionCache for tests that need
// real cache behavior. It is safe for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]feluda.Resolution
}

func (c *MemoryCache) Get(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.entries[dep.Key()]
	return res, ok, nil
}

func (c *MemoryCache) Put(ctx context.Context, dep feluda.Dependency, res feluda.Resolution) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]feluda.Resolution)
	}
	c.entries[dep.Key()] = res
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
