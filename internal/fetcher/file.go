package fetcher

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/wishgrab/wishgrab/internal/types"
)

// FileFetcher reads a saved page snapshot from disk. Used for offline runs
// and for replaying captured wishlist pages during development.
type FileFetcher struct {
	logger *slog.Logger
}

// NewFileFetcher creates a file-backed fetcher.
func NewFileFetcher(logger *slog.Logger) *FileFetcher {
	return &FileFetcher{logger: logger.With("component", "file_fetcher")}
}

// Type implements Fetcher.
func (f *FileFetcher) Type() string { return "file" }

// Close implements Fetcher.
func (f *FileFetcher) Close() error { return nil }

// Fetch implements Fetcher. The url may be a plain path or a file:// URL.
func (f *FileFetcher) Fetch(ctx context.Context, url string) (*types.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(url, "file://")
	start := time.Now()

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err}
	}

	f.logger.Debug("snapshot loaded", "path", path, "bytes", len(body))
	return types.NewPage(url, body, time.Since(start)), nil
}
