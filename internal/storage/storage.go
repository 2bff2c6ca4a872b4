package storage

import (
	"context"

	"github.com/wishgrab/wishgrab/internal/types"
)

// Storage is the interface for local/remote record persistence backends.
type Storage interface {
	// Store persists one extraction run's records under the wishlist name.
	Store(ctx context.Context, wishlistName string, records []types.ListingRecord) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}
