// Package cache keeps recently compiled assets in memory.
package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// BuildFunc compiles the asset for a key on a cache miss.
type BuildFunc func(ctx context.Context) (*domain.Asset, error)

// StaleFunc reports whether a cached asset no longer matches its sources.
type StaleFunc func(asset *domain.Asset) bool

// Cache is an LRU of compiled assets. Concurrent misses for the same key share
// one build.
type Cache struct {
	assets *lru.Cache[string, *domain.Asset]
	group  singleflight.Group
	stale  StaleFunc
}

// New creates a Cache holding up to size assets. A nil stale func treats every
// cached asset as fresh.
func New(size int, stale StaleFunc) (*Cache, error) {
	if size <= 0 {
		size = domain.DefaultCacheSize
	}
	assets, err := lru.New[string, *domain.Asset](size)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create asset cache"), "size", size)
	}
	if stale == nil {
		stale = func(*domain.Asset) bool { return false }
	}
	return &Cache{assets: assets, stale: stale}, nil
}

// Get returns the cached asset for key if it is still fresh. Stale entries are evicted.
func (c *Cache) Get(key string) (*domain.Asset, bool) {
	asset, ok := c.assets.Get(key)
	if !ok {
		return nil, false
	}
	if c.stale(asset) {
		c.assets.Remove(key)
		return nil, false
	}
	return asset, true
}

// GetOrBuild returns the fresh cached asset for key, or runs build once for all
// concurrent callers and caches its result. The boolean reports a cache hit.
// Failed builds are not cached. A canceled caller returns early but the shared
// build keeps running for the others.
func (c *Cache) GetOrBuild(ctx context.Context, key string, build BuildFunc) (*domain.Asset, bool, error) {
	if asset, ok := c.Get(key); ok {
		return asset, true, nil
	}

	buildCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if asset, ok := c.Get(key); ok {
			return asset, nil
		}
		asset, err := build(buildCtx)
		if err != nil {
			return nil, err
		}
		c.assets.Add(key, asset)
		return asset, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.(*domain.Asset), false, nil
	}
}

// Invalidate evicts every asset built from one of paths and returns how many were dropped.
func (c *Cache) Invalidate(paths []string) int {
	if len(paths) == 0 {
		return 0
	}

	changed := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		changed[p] = struct{}{}
	}

	dropped := 0
	for _, key := range c.assets.Keys() {
		asset, ok := c.assets.Peek(key)
		if !ok {
			continue
		}
		for _, src := range asset.Sources {
			if _, hit := changed[src.Path]; hit {
				c.assets.Remove(key)
				dropped++
				break
			}
		}
	}
	return dropped
}
