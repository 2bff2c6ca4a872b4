package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wishgrab/wishgrab/internal/config"
	"github.com/wishgrab/wishgrab/internal/types"
)

// FileStorage writes extraction runs to a local file. The format follows the
// output path extension: ".csv" produces a header + rows sheet mirror,
// anything else produces a JSON document per run.
type FileStorage struct {
	path   string
	logger *slog.Logger
}

// NewFileStorage creates a file storage backend.
func NewFileStorage(outputPath string, logger *slog.Logger) (*FileStorage, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	return &FileStorage{
		path:   outputPath,
		logger: logger.With("component", "file_storage"),
	}, nil
}

// Name implements Storage.
func (s *FileStorage) Name() string { return "file" }

// Close implements Storage.
func (s *FileStorage) Close() error { return nil }

type fileRun struct {
	Wishlist  string                `json:"wishlist"`
	ScrapedAt time.Time             `json:"scraped_at"`
	Records   []types.ListingRecord `json:"records"`
}

// Store implements Storage. Each call overwrites the file with the run's
// records; extraction runs are atomic best-effort passes, so there is no
// partial progress to append.
func (s *FileStorage) Store(ctx context.Context, wishlistName string, records []types.ListingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(s.path), ".csv") {
		return s.storeCSV(wishlistName, records)
	}
	return s.storeJSON(wishlistName, records)
}

func (s *FileStorage) storeJSON(wishlistName string, records []types.ListingRecord) error {
	f, err := os.Create(s.path)
	if err != nil {
		return &types.ExportError{Backend: s.Name(), Err: err}
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fileRun{
		Wishlist:  wishlistName,
		ScrapedAt: time.Now(),
		Records:   records,
	}); err != nil {
		return &types.ExportError{Backend: s.Name(), Err: err}
	}

	s.logger.Info("JSON written", "path", s.path, "records", len(records))
	return nil
}

func (s *FileStorage) storeCSV(wishlistName string, records []types.ListingRecord) error {
	f, err := os.Create(s.path)
	if err != nil {
		return &types.ExportError{Backend: s.Name(), Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range types.Rows(records) {
		if err := w.Write(row); err != nil {
			return &types.ExportError{Backend: s.Name(), Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &types.ExportError{Backend: s.Name(), Err: err}
	}

	s.logger.Info("CSV written",
		"path", s.path, "wishlist", wishlistName, "records", len(records))
	return nil
}

// FromConfig builds the storage backend implied by the configuration.
// A "none" type returns nil, meaning results are only returned, not stored.
func FromConfig(cfg *config.Config, logger *slog.Logger) (Storage, error) {
	switch cfg.Storage.Type {
	case "none", "":
		return nil, nil
	case "file":
		return NewFileStorage(cfg.Storage.OutputPath, logger)
	case "mongodb":
		return NewMongoStorage(
			cfg.Storage.MongoURI,
			cfg.Storage.MongoDatabase,
			cfg.Storage.MongoCollection,
			logger,
		)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}
