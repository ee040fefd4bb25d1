// Package transform implements the source transform as a chain of engines selected by file extension.
package transform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceTransform = (*Registry)(nil)

// Registry maps engine extensions to engines.
// A file's engines are applied right to left: "users.js.coffee.tmpl" runs the tmpl
// engine, then the coffee engine, and produces ".js" output.
type Registry struct {
	engines      map[string]Engine
	contentTypes map[string]string
}

// NewRegistry creates a Registry from an extension to engine name mapping.
// contentTypes overrides the built-in format extension table.
func NewRegistry(mapping map[string]string, contentTypes map[string]string) (*Registry, error) {
	r := &Registry{
		engines:      make(map[string]Engine, len(mapping)),
		contentTypes: contentTypes,
	}

	for ext, name := range mapping {
		engine, ok := Lookup(name)
		if !ok {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidEngine, "cannot register engine"), "engine", name), "extension", ext)
		}
		r.Register(ext, engine)
	}

	return r, nil
}

// Register binds an engine to an extension, replacing any previous binding.
func (r *Registry) Register(ext string, engine Engine) {
	r.engines[strings.TrimPrefix(ext, ".")] = engine
}

// EngineExtensions returns the registered extensions, sorted.
func (r *Registry) EngineExtensions() []string {
	exts := make([]string, 0, len(r.engines))
	for ext := range r.engines {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Transform reads the file at path and runs its engine chain.
func (r *Registry) Transform(ctx context.Context, path string) (domain.Transformed, error) {
	//nolint:gosec // Path comes from the resolver, which keeps it inside the search roots
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Transformed{}, errors.Join(
			domain.ErrTransformFailed,
			zerr.With(zerr.Wrap(err, "failed to read source"), "path", path),
		)
	}

	exts := strings.Split(filepath.Base(path), ".")[1:]
	text := string(data)

	i := len(exts) - 1
	for ; i >= 0; i-- {
		engine, ok := r.engines[exts[i]]
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return domain.Transformed{}, err
		}

		text, err = engine.Render(ctx, Input{Path: path, Text: text})
		if err != nil {
			return domain.Transformed{}, errors.Join(
				domain.ErrTransformFailed,
				zerr.With(zerr.With(err, "path", path), "engine", exts[i]),
			)
		}
	}

	var format string
	if i >= 0 {
		format = "." + exts[i]
	}

	return domain.Transformed{
		Text:            text,
		ContentType:     domain.ContentTypeFor(format, r.contentTypes),
		FormatExtension: format,
	}, nil
}
