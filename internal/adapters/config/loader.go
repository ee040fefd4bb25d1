// Package config provides the configuration loader for stitch.
package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the stitch.yaml schema version this loader understands.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	Tree   ProjectTree
}

// NewLoader creates a new Loader reading from the operating system.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithTree(logger, HostTree())
}

// NewLoaderWithTree creates a new Loader reading from tree.
func NewLoaderWithTree(logger ports.Logger, tree ProjectTree) *Loader {
	return &Loader{Logger: logger, Tree: tree}
}

// DiscoverRoot walks up from cwd and returns the directory holding stitch.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

// Load finds stitch.yaml at or above cwd and resolves it into a domain.Config.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var file Stitchfile
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.ConfigFileName, file.Version, SupportedVersion))
	}

	root := resolvePath(filepath.Dir(configPath), file.Root, ".")

	paths, err := l.resolveSearchPaths(root, file.Paths)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	engines, err := normalizeEngines(file.Engines)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cacheSize := file.Cache.Size
	if cacheSize <= 0 {
		cacheSize = domain.DefaultCacheSize
	}

	return &domain.Config{
		Root:         root,
		Paths:        paths,
		OutputDir:    resolvePath(root, file.Output, domain.DefaultOutputDir),
		Engines:      engines,
		ContentTypes: normalizeContentTypes(file.ContentTypes),
		Limits: domain.Limits{
			MaxDepth: limit(file.Limits.MaxDepth, domain.DefaultMaxDepth),
			MaxUnits: limit(file.Limits.MaxUnits, domain.DefaultMaxUnits),
		},
		CacheSize: cacheSize,
	}, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := filepath.Clean(cwd)

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if l.Tree.hasFile(candidate) {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "config discovery failed"), "cwd", cwd)
}

// resolveSearchPaths expands the configured search roots in order. Entries may be
// glob patterns; missing directories are skipped with a warning.
func (l *Loader) resolveSearchPaths(root string, entries []string) ([]string, error) {
	paths := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, entry := range entries {
		abs := resolvePath(root, entry, ".")

		if !strings.ContainsAny(entry, "*?[") {
			if !l.Tree.hasDir(abs) {
				l.Logger.Warn(fmt.Sprintf("search path %s is not a directory, skipping", entry))
				continue
			}
			add(abs)
			continue
		}

		matches, err := l.Tree.dirs(abs)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "glob pattern failed"), "pattern", entry)
		}
		slices.Sort(matches)
		for _, m := range matches {
			add(m)
		}
	}

	if len(paths) == 0 {
		return nil, zerr.Wrap(domain.ErrNoSearchPaths, "no configured search path exists")
	}
	return paths, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Stitchfile) error {
	data, err := l.Tree.readFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

// normalizeEngines strips leading dots from engine extensions and rejects
// malformed entries.
func normalizeEngines(engines map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(engines))
	for ext, name := range engines {
		key := strings.TrimPrefix(ext, ".")
		if key == "" || strings.ContainsAny(key, "./\\") || name == "" {
			err := zerr.Wrap(domain.ErrInvalidEngine, "malformed engine mapping")
			err = zerr.With(err, "extension", ext)
			return nil, zerr.With(err, "engine", name)
		}
		out[key] = name
	}
	return out, nil
}

// normalizeContentTypes makes every format extension start with a dot.
func normalizeContentTypes(types map[string]string) map[string]string {
	out := make(map[string]string, len(types))
	for ext, mime := range types {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out[ext] = mime
	}
	return out
}

func limit(configured, fallback int) int {
	switch {
	case configured < 0:
		return 0
	case configured == 0:
		return fallback
	default:
		return configured
	}
}

// resolvePath returns configured made absolute against base, or fallback when empty.
func resolvePath(base, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(base, configured))
}
