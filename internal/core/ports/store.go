package ports

import "go.trai.ch/stitch/internal/core/domain"

// AssetStore persists compiled assets between runs.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type AssetStore interface {
	// Get retrieves the asset stored under key.
	// Returns nil, nil if not found.
	Get(root, key string) (*domain.Asset, error)

	// Put stores the asset under key.
	Put(root, key string, asset *domain.Asset) error

	// Delete removes every stored asset under root.
	Delete(root string) error
}
