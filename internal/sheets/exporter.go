package sheets

import (
	"context"
	"log/slog"

	"github.com/wishgrab/wishgrab/internal/config"
	"github.com/wishgrab/wishgrab/internal/types"
)

// Exporter pushes extracted records into a spreadsheet: create (or reuse)
// the document, clear the target range, then write header plus one row per
// record.
type Exporter struct {
	client *Client
	cfg    *config.Sheets
	logger *slog.Logger
}

// NewExporter creates an exporter over a sheets client.
func NewExporter(client *Client, cfg *config.Config, logger *slog.Logger) *Exporter {
	return &Exporter{
		client: client,
		cfg:    &cfg.Sheets,
		logger: logger.With("component", "sheets_exporter"),
	}
}

// Export writes the records of a successful extraction and returns the
// document they landed in.
func (e *Exporter) Export(ctx context.Context, records []types.ListingRecord, wishlistName string) (Document, error) {
	doc := Document{ID: e.cfg.DocID}

	if doc.ID == "" {
		title := e.cfg.DocTitle
		if wishlistName != "" {
			title = wishlistName
		}
		created, err := e.client.CreateDocument(ctx, title, e.cfg.SheetName)
		if err != nil {
			return Document{}, err
		}
		doc = created
	}

	if err := e.client.ClearRange(ctx, doc.ID, e.cfg.SheetName, ""); err != nil {
		return Document{}, err
	}

	rows := types.Rows(records)
	if err := e.client.WriteRows(ctx, doc.ID, e.cfg.SheetName, "A1", rows); err != nil {
		return Document{}, err
	}

	e.logger.Info("export complete",
		"doc", doc.ID, "wishlist", wishlistName, "records", len(records))
	return doc, nil
}
