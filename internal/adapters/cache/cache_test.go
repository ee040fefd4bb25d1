package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/adapters/cache"
	"go.trai.ch/stitch/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

func assetFrom(logical string, sources ...string) *domain.Asset {
	stamps := make([]domain.SourceStamp, 0, len(sources))
	for _, s := range sources {
		stamps = append(stamps, domain.SourceStamp{Path: s})
	}
	return domain.NewAsset(domain.Metadata{LogicalPath: logical, Sources: stamps}, [][]byte{[]byte(logical)})
}

func put(t *testing.T, c *cache.Cache, key string, asset *domain.Asset) {
	t.Helper()
	_, _, err := c.GetOrBuild(context.Background(), key, func(context.Context) (*domain.Asset, error) {
		return asset, nil
	})
	require.NoError(t, err)
}

func TestCache_GetOrBuild(t *testing.T) {
	c, err := cache.New(4, nil)
	require.NoError(t, err)

	builds := 0
	build := func(context.Context) (*domain.Asset, error) {
		builds++
		return assetFrom("application.js", "/app/application.js"), nil
	}

	first, hit, err := c.GetOrBuild(context.Background(), "k", build)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := c.GetOrBuild(context.Background(), "k", build)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
}

func TestCache_StaleEntriesRebuild(t *testing.T) {
	var stale atomic.Bool
	c, err := cache.New(4, func(*domain.Asset) bool { return stale.Load() })
	require.NoError(t, err)

	builds := 0
	build := func(context.Context) (*domain.Asset, error) {
		builds++
		return assetFrom("application.js"), nil
	}

	_, _, err = c.GetOrBuild(context.Background(), "k", build)
	require.NoError(t, err)

	stale.Store(true)
	_, ok := c.Get("k")
	assert.False(t, ok)

	stale.Store(false)
	_, ok = c.Get("k")
	assert.False(t, ok, "stale entry should have been evicted")

	_, hit, err := c.GetOrBuild(context.Background(), "k", build)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, builds)
}

func TestCache_FailedBuildsAreNotCached(t *testing.T) {
	c, err := cache.New(4, nil)
	require.NoError(t, err)

	_, _, err = c.GetOrBuild(context.Background(), "k", func(context.Context) (*domain.Asset, error) {
		return nil, domain.ErrFileNotFound
	})
	require.ErrorIs(t, err, domain.ErrFileNotFound)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_ConcurrentMissesShareOneBuild(t *testing.T) {
	c, err := cache.New(4, nil)
	require.NoError(t, err)

	var builds atomic.Int32
	release := make(chan struct{})
	build := func(context.Context) (*domain.Asset, error) {
		builds.Add(1)
		<-release
		return assetFrom("application.js"), nil
	}

	var g errgroup.Group
	var started sync.WaitGroup
	results := make([]*domain.Asset, 8)
	for i := range results {
		started.Add(1)
		g.Go(func() error {
			started.Done()
			asset, _, err := c.GetOrBuild(context.Background(), "k", build)
			results[i] = asset
			return err
		})
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), builds.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestCache_GetOrBuildCanceled(t *testing.T) {
	c, err := cache.New(4, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	block := make(chan struct{})
	defer close(block)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, _, err = c.GetOrBuild(ctx, "k", func(context.Context) (*domain.Asset, error) {
		<-block
		return nil, errors.New("unreachable")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCache_CanceledCallerDoesNotFailSharedBuild(t *testing.T) {
	c, err := cache.New(4, nil)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	build := func(ctx context.Context) (*domain.Asset, error) {
		close(entered)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return assetFrom("application.js"), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrBuild(ctx, "k", build)
		firstErr <- err
	}()
	<-entered

	type result struct {
		asset *domain.Asset
		err   error
	}
	second := make(chan result, 1)
	go func() {
		asset, _, err := c.GetOrBuild(context.Background(), "k", build)
		second <- result{asset, err}
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	time.Sleep(10 * time.Millisecond)
	close(release)

	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "application.js", got.asset.LogicalPath)

	cached, ok := c.Get("k")
	require.True(t, ok)
	assert.Same(t, got.asset, cached)
}

func TestCache_Invalidate(t *testing.T) {
	c, err := cache.New(8, nil)
	require.NoError(t, err)

	put(t, c, "app", assetFrom("application.js", "/a/application.js", "/a/project.js"))
	put(t, c, "users", assetFrom("users.js", "/a/users.js"))
	put(t, c, "styles", assetFrom("styles.css", "/a/styles.css"))

	assert.Equal(t, 0, c.Invalidate(nil))
	assert.Equal(t, 1, c.Invalidate([]string{"/a/project.js", "/a/other.js"}))

	_, ok := c.Get("app")
	assert.False(t, ok)
	_, ok = c.Get("users")
	assert.True(t, ok)
	_, ok = c.Get("styles")
	assert.True(t, ok)
}

func TestCache_Eviction(t *testing.T) {
	c, err := cache.New(2, nil)
	require.NoError(t, err)

	put(t, c, "a", assetFrom("a.js"))
	put(t, c, "b", assetFrom("b.js"))
	put(t, c, "c", assetFrom("c.js"))

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestNew_DefaultSize(t *testing.T) {
	c, err := cache.New(0, nil)
	require.NoError(t, err)
	assert.NotNil(t, c)
}
