// Package app implements the application layer for stitch.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/stitch/internal/adapters/fs"
	"go.trai.ch/stitch/internal/adapters/telemetry"
	"go.trai.ch/stitch/internal/adapters/watcher"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	store        ports.AssetStore
	hasher       ports.Hasher
	stater       ports.FileStater
	walker       *fs.Walker
	watcher      ports.Watcher
	tracer       ports.Tracer
	cwd          string
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	store ports.AssetStore,
	hasher ports.Hasher,
	stater ports.FileStater,
	walker *fs.Walker,
	w ports.Watcher,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		store:        store,
		hasher:       hasher,
		stater:       stater,
		walker:       walker,
		watcher:      w,
		tracer:       tracer,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithWorkDir sets the directory configuration discovery starts from.
// It defaults to the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.cwd = dir
	return a
}

// WithDebounce sets how long Watch waits for changes to settle.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// WithVerbose reports every finished span through the logger.
func (a *App) WithVerbose(verbose bool) *App {
	if verbose {
		setupOTel(telemetry.NewLogBridge(a.logger))
	}
	return a
}

type jsonSwitch interface {
	SetJSON(enable bool)
}

// WithJSONLogs switches the logger to JSON lines when it supports it.
func (a *App) WithJSONLogs(enable bool) *App {
	if l, ok := a.logger.(jsonSwitch); ok {
		l.SetJSON(enable)
	}
	return a
}

// CompileOptions configuration for the Compile method.
type CompileOptions struct {
	// OutputDir overrides the configured output directory.
	OutputDir string
	// Stdout, when set, receives the bodies in argument order instead of files.
	Stdout io.Writer
	// NoCache bypasses the memory cache and the persistent store.
	NoCache bool
}

// Compile builds every logical path concurrently and writes the results.
func (a *App) Compile(ctx context.Context, logicalPaths []string, opts CompileOptions) error {
	if len(logicalPaths) == 0 {
		return domain.ErrNoAssetsSpecified
	}

	s, err := a.open()
	if err != nil {
		return err
	}

	assets, err := a.compileAll(ctx, s, logicalPaths, opts.NoCache)
	if err != nil {
		return err
	}

	if opts.Stdout != nil {
		for _, asset := range assets {
			if _, err := asset.WriteTo(opts.Stdout); err != nil {
				return zerr.With(errors.Join(domain.ErrOutputWriteFailed, err), "logical_path", asset.LogicalPath)
			}
		}
		return nil
	}

	outputDir := s.cfg.OutputDir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}
	for _, asset := range assets {
		if err := writeAsset(outputDir, asset); err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("compiled %s (%d bytes, %s)", asset.LogicalPath, asset.Length, asset.DigestPath()))
	}
	return nil
}

func (a *App) compileAll(ctx context.Context, s *session, logicalPaths []string, noCache bool) ([]*domain.Asset, error) {
	assets := make([]*domain.Asset, len(logicalPaths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, logical := range logicalPaths {
		g.Go(func() error {
			asset, err := a.compileOne(ctx, s, logical, noCache)
			if err != nil {
				return err
			}
			assets[i] = asset
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Join(domain.ErrCompileFailed, err)
	}
	return assets, nil
}

// compileOne consults the memory cache, then the persistent store, then builds.
func (a *App) compileOne(ctx context.Context, s *session, logical string, noCache bool) (*domain.Asset, error) {
	if noCache {
		return s.bundler.Compile(ctx, logical)
	}

	key := a.hasher.CacheKey(logical, s.cfg.Paths)
	asset, _, err := s.cache.GetOrBuild(ctx, key, func(ctx context.Context) (*domain.Asset, error) {
		stored, err := a.store.Get(s.cfg.Root, key)
		if err != nil {
			a.logger.Warn(fmt.Sprintf("ignoring stored %s: %v", logical, err))
		} else if stored != nil && !s.bundler.Stale(stored) {
			return stored, nil
		}

		built, err := s.bundler.Compile(ctx, logical)
		if err != nil {
			return nil, err
		}
		if err := a.store.Put(s.cfg.Root, key, built); err != nil {
			a.logger.Warn(fmt.Sprintf("could not store %s: %v", logical, err))
		}
		return built, nil
	})
	return asset, err
}

// writeAsset writes the body under its logical path and under its digest path.
func writeAsset(outputDir string, asset *domain.Asset) error {
	body := asset.Bytes()
	for _, name := range []string{asset.LogicalPath, asset.DigestPath()} {
		target := filepath.Join(outputDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
			return zerr.With(errors.Join(domain.ErrOutputWriteFailed, err), "path", target)
		}
		//nolint:gosec // target is under the configured output directory
		if err := os.WriteFile(target, body, domain.FilePerm); err != nil {
			return zerr.With(errors.Join(domain.ErrOutputWriteFailed, err), "path", target)
		}
	}
	return nil
}

// Stale reports, per logical path, whether the stored asset is missing or out of date.
func (a *App) Stale(_ context.Context, logicalPaths []string) (map[string]bool, error) {
	if len(logicalPaths) == 0 {
		return nil, domain.ErrNoAssetsSpecified
	}

	s, err := a.open()
	if err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(logicalPaths))
	for _, logical := range logicalPaths {
		stored, err := a.store.Get(s.cfg.Root, a.hasher.CacheKey(logical, s.cfg.Paths))
		if err != nil {
			return nil, zerr.With(err, "logical_path", logical)
		}
		result[logical] = stored == nil || s.bundler.Stale(stored)
	}
	return result, nil
}

// Watch compiles logicalPaths, then recompiles them whenever a file under the
// search roots changes, until ctx ends.
func (a *App) Watch(ctx context.Context, logicalPaths []string, opts CompileOptions) error {
	if len(logicalPaths) == 0 {
		return domain.ErrNoAssetsSpecified
	}

	s, err := a.open()
	if err != nil {
		return err
	}

	outputDir := s.cfg.OutputDir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}

	var mu sync.Mutex
	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()

		assets, err := a.compileAll(ctx, s, logicalPaths, false)
		if err != nil {
			if ctx.Err() == nil {
				a.logger.Error(err)
			}
			return
		}
		for _, asset := range assets {
			if err := writeAsset(outputDir, asset); err != nil {
				a.logger.Error(err)
				continue
			}
			a.logger.Info(fmt.Sprintf("compiled %s (%d bytes, %s)", asset.LogicalPath, asset.Length, asset.DigestPath()))
		}
	}

	rebuild()

	if err := a.watcher.Start(ctx, s.cfg.Paths); err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = a.watcher.Stop()
	}()

	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		if n := s.cache.Invalidate(paths); n > 0 {
			a.logger.Info(fmt.Sprintf("%d changed file(s) affect %d asset(s)", len(paths), n))
		}
		rebuild()
	})
	defer debouncer.Stop()

	a.logger.Info(fmt.Sprintf("watching %d search path(s)", len(s.cfg.Paths)))
	// Writes to the output directory must not trigger another rebuild.
	for event := range a.watcher.Events() {
		if within(outputDir, event.Path) {
			continue
		}
		debouncer.Add(event.Path)
	}

	return nil
}

// within reports whether path is dir or lies beneath it.
func within(dir, path string) bool {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Clean removes the persistent asset store of the current project.
func (a *App) Clean(_ context.Context) error {
	cwd, err := a.workDir()
	if err != nil {
		return err
	}

	root, err := a.configLoader.DiscoverRoot(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	a.logger.Info("removing asset store...")
	if err := a.store.Delete(root); err != nil {
		return err
	}
	a.logger.Info("removed asset store")
	return nil
}

func (a *App) workDir() (string, error) {
	if a.cwd != "" {
		return a.cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return cwd, nil
}

// setupOTel registers a global tracer provider that reports spans through bridge.
func setupOTel(bridge sdktrace.SpanProcessor) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
