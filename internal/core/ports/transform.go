package ports

import (
	"context"

	"go.trai.ch/stitch/internal/core/domain"
)

// SourceTransform turns a file on disk into processed text with a content type.
//
//go:generate mockgen -source=transform.go -destination=mocks/mock_transform.go -package=mocks
type SourceTransform interface {
	// Transform reads and processes the file at path.
	// Failures are returned joined with domain.ErrTransformFailed.
	Transform(ctx context.Context, path string) (domain.Transformed, error)

	// EngineExtensions returns the extensions, without the dot, that the transform processes.
	EngineExtensions() []string
}
