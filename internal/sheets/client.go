// Package sheets talks to the remote tabular-document API (Google Sheets v4
// REST surface). Auth failures are distinguished from generic API faults so
// the caller can decide between re-prompting authorization and showing a
// plain error.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/wishgrab/wishgrab/internal/auth"
	"github.com/wishgrab/wishgrab/internal/config"
	"github.com/wishgrab/wishgrab/internal/types"
)

// Document identifies a created spreadsheet.
type Document struct {
	ID  string `json:"spreadsheetId"`
	URL string `json:"spreadsheetUrl"`
}

// Client is the tabular-document collaborator.
type Client struct {
	http   *resty.Client
	tokens auth.TokenSource
	logger *slog.Logger
}

// NewClient creates a sheets client over the given token source.
func NewClient(cfg *config.Config, tokens auth.TokenSource, logger *slog.Logger) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(cfg.Sheets.BaseURL),
		tokens: tokens,
		logger: logger.With("component", "sheets_client"),
	}
}

// CreateDocument creates a new spreadsheet with a single named sheet.
func (c *Client) CreateDocument(ctx context.Context, title, sheetName string) (Document, error) {
	var doc Document

	err := c.call(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetBody(map[string]any{
				"properties": map[string]any{"title": title},
				"sheets": []map[string]any{
					{"properties": map[string]any{"title": sheetName}},
				},
			}).
			SetResult(&doc).
			Post("/v4/spreadsheets")
	})
	if err != nil {
		return Document{}, err
	}

	c.logger.Info("spreadsheet created", "id", doc.ID, "title", title)
	return doc, nil
}

// ClearRange clears all values in the given range of a sheet.
func (c *Client) ClearRange(ctx context.Context, docID, sheetName, rng string) error {
	return c.call(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Post(fmt.Sprintf("/v4/spreadsheets/%s/values/%s:clear",
			docID, escapeRange(sheetName, rng)))
	})
}

// WriteRows writes rows starting at the given range. Rows are written
// verbatim; the caller supplies the header row.
func (c *Client) WriteRows(ctx context.Context, docID, sheetName, rng string, rows [][]string) error {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	err := c.call(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetQueryParam("valueInputOption", "RAW").
			SetBody(map[string]any{"values": values}).
			Put(fmt.Sprintf("/v4/spreadsheets/%s/values/%s",
				docID, escapeRange(sheetName, rng)))
	})
	if err != nil {
		return err
	}

	c.logger.Info("rows written", "doc", docID, "sheet", sheetName, "rows", len(rows))
	return nil
}

// call runs one authenticated API request, retrying exactly once with a
// fresh token when the first attempt is rejected as unauthorized.
func (c *Client) call(ctx context.Context, do func(*resty.Request) (*resty.Response, error)) error {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.tokens.Token(ctx, false)
		if err != nil {
			return err
		}

		// The API always answers JSON; force decoding even when a proxy
		// rewrites or drops the content type.
		req := c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			ForceContentType("application/json")

		resp, err := do(req)
		if err != nil {
			return &types.ExportError{Backend: "sheets", Err: err}
		}

		switch {
		case resp.IsSuccess():
			return nil
		case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
			c.tokens.Invalidate(token)
			if attempt == 0 {
				continue
			}
			return types.ErrAuthRequired
		default:
			return &types.ExportError{
				Backend: "sheets",
				Err:     fmt.Errorf("api status %d: %s", resp.StatusCode(), resp.String()),
			}
		}
	}
	return types.ErrAuthRequired
}

func escapeRange(sheetName, rng string) string {
	full := sheetName
	if rng != "" {
		full = sheetName + "!" + rng
	}
	return url.PathEscape(full)
}
