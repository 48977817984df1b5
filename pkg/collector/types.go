package collector

import (
	"context"

	"github.com/k8sinv/kinvctl/pkg/inventory"
)

// Collector defines the interface for collecting one inventory category.
// Implementations query cluster state and normalize the response into a flat
// record set. All collectors must support context-based cancellation.
type Collector interface {
	Collect(ctx context.Context) (*inventory.RecordSet, error)
}
