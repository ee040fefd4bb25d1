package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stitch/internal/core/ports"
)

// NodeID is the unique identifier for the asset store Graft node.
const NodeID graft.ID = "adapter.asset_store"

func init() {
	graft.Register(graft.Node[ports.AssetStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AssetStore, error) {
			return NewStore(), nil
		},
	})
}
