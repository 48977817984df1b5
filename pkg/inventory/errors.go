package inventory

import "fmt"

// CollectionError reports a control-plane transport or authorization failure
// while listing a resource. Collection errors are fatal: the run aborts
// rather than exporting a partial inventory.
type CollectionError struct {
	Resource string
	Err      error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("failed to collect %s: %v", e.Resource, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}
