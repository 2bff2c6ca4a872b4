package fetcher

import (
	"context"

	"github.com/wishgrab/wishgrab/internal/types"
)

// Fetcher produces a rendered-page snapshot for the extraction engine.
type Fetcher interface {
	// Fetch retrieves the page at the given URL.
	Fetch(ctx context.Context, url string) (*types.Page, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}
