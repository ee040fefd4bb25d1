package app

import (
	"context"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/stitch/internal/adapters/cache"
	"go.trai.ch/stitch/internal/adapters/fs"
	"go.trai.ch/stitch/internal/adapters/transform"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/engine/bundler"
	"go.trai.ch/zerr"
)

// session holds the components built from one loaded configuration.
type session struct {
	cfg     *domain.Config
	engines []string
	bundler *bundler.Bundler
	cache   *cache.Cache
}

// open loads the configuration and assembles the bundler for it.
func (a *App) open() (*session, error) {
	cwd, err := a.workDir()
	if err != nil {
		return nil, err
	}

	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	engines := transform.DefaultEngines()
	maps.Copy(engines, cfg.Engines)

	registry, err := transform.NewRegistry(engines, cfg.ContentTypes)
	if err != nil {
		return nil, err
	}

	resolver, err := fs.NewResolver(cfg.Paths, registry.EngineExtensions())
	if err != nil {
		return nil, err
	}

	b := bundler.New(
		bundler.NewBuilder(resolver, registry, a.stater, cfg.Limits).WithContentTypes(cfg.ContentTypes),
		a.stater,
		a.tracer,
	)

	c, err := cache.New(cfg.CacheSize, b.Stale)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		engines: registry.EngineExtensions(),
		bundler: b,
		cache:   c,
	}, nil
}

// listIgnores are file and directory names List never descends into.
var listIgnores = []string{".*", "node_modules"}

// List returns every logical path that can be compiled from the search roots,
// sorted. A logical path found under several roots is listed once.
func (a *App) List(ctx context.Context) ([]string, error) {
	s, err := a.open()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, root := range s.cfg.Paths {
		for file := range a.walker.WalkFiles(root, listIgnores) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			rel, err := filepath.Rel(root, file)
			if err != nil {
				continue
			}
			logical := s.logicalName(filepath.ToSlash(rel))
			if domain.ContentTypeFor(path.Ext(logical), s.cfg.ContentTypes) == domain.DefaultContentType {
				continue
			}
			seen[logical] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen)), nil
}

// logicalName strips trailing engine extensions, so "app.js.tmpl" becomes "app.js".
func (s *session) logicalName(rel string) string {
	for {
		ext := path.Ext(rel)
		if ext == "" || !slices.Contains(s.engines, strings.TrimPrefix(ext, ".")) {
			return rel
		}
		rel = strings.TrimSuffix(rel, ext)
	}
}
