package snapshotter

import (
	"context"

	"github.com/k8sinv/kinvctl/pkg/inventory"
)

// Snapshotter is the interface that wraps the Run method.
// Run collects a complete inventory snapshot and exports it.
type Snapshotter interface {
	Run(ctx context.Context) (*inventory.Snapshot, error)
}
