package task

import "context"

// Store persists a single collection.
type Store interface {
	// Load returns the stored collection, or an empty collection if nothing
	// has been stored yet.
	Load(ctx context.Context) (Collection, error)

	// Save replaces the stored collection with c.
	Save(ctx context.Context, c Collection) error
}
