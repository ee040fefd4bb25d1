package bundler

import (
	"context"
	"strings"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
)

// Bundler compiles logical paths into assets.
type Bundler struct {
	builder *Builder
	stater  ports.FileStater
	tracer  ports.Tracer
}

// New creates a Bundler.
func New(builder *Builder, stater ports.FileStater, tracer ports.Tracer) *Bundler {
	return &Bundler{
		builder: builder,
		stater:  stater,
		tracer:  tracer,
	}
}

// Compile resolves, renders and measures the asset at logicalPath.
// On error nothing is returned; there is no partial output.
func (b *Bundler) Compile(ctx context.Context, logicalPath string) (*domain.Asset, error) {
	ctx, span := b.tracer.Start(ctx, "compile "+logicalPath, ports.WithAttribute("logical_path", logicalPath))
	defer span.End()

	graph, err := b.resolve(ctx, logicalPath)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	_, renderSpan := b.tracer.Start(ctx, "render "+logicalPath)
	chunks, err := Render(graph)
	if err != nil {
		renderSpan.RecordError(err)
		renderSpan.End()
		span.RecordError(err)
		return nil, err
	}
	renderSpan.End()

	meta := Derive(graph, chunks)
	span.SetAttribute("digest", meta.Digest)
	span.SetAttribute("length", meta.Length)
	span.SetAttribute("sources", len(meta.Sources))

	return domain.NewAsset(meta, chunks), nil
}

func (b *Bundler) resolve(ctx context.Context, logicalPath string) (*domain.DependencyGraph, error) {
	ctx, span := b.tracer.Start(ctx, "resolve "+logicalPath)
	defer span.End()

	graph, err := b.builder.Resolve(ctx, logicalPath)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("units", graph.Len())
	span.SetAttribute("requires", strings.Join(graph.RequireOrder(), ","))
	span.SetAttribute("root_length", graph.Root().OwnLength())
	return graph, nil
}

// Stale reports whether any source of asset changed since it was compiled.
func (b *Bundler) Stale(asset *domain.Asset) bool {
	return StaleCheck(asset.Metadata, b.stater)
}
