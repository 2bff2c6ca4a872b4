package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/wishgrab/wishgrab/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const pageHTML = `<html><body>
	<h1>Road trip</h1>
	<div data-testid="card-container">
		<a href="/rooms/42"><span data-testid="listing-card-name">Cabin</span></a>
	</div>
</body></html>`

// stubFetcher serves a fixed page body for any URL.
type stubFetcher struct {
	body string
	err  error
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (*types.Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	return types.NewPage(url, []byte(s.body), time.Millisecond), nil
}

func (s *stubFetcher) Close() error { return nil }
func (s *stubFetcher) Type() string { return "stub" }

func newTestServer(f *stubFetcher) *Server {
	return NewServer(0, "https://www.airbnb.com/wishlists/1", f, testLogger)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	srv := newTestServer(&stubFetcher{body: pageHTML})

	rec := doRequest(t, srv, http.MethodGet, "/api/ping", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp["success"] {
		t.Errorf("expected success=true, got %v", resp)
	}
}

func TestExtract(t *testing.T) {
	srv := newTestServer(&stubFetcher{body: pageHTML})

	rec := doRequest(t, srv, http.MethodPost, "/api/extract", `{"action":"extract"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result types.ExtractionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.WishlistName != "Road trip" {
		t.Errorf("wishlist name: got %q", result.WishlistName)
	}
	if len(result.Data) != 1 || result.Data[0].PropertyName != "Cabin" {
		t.Errorf("unexpected records: %+v", result.Data)
	}
}

func TestExtractBadAction(t *testing.T) {
	srv := newTestServer(&stubFetcher{body: pageHTML})

	rec := doRequest(t, srv, http.MethodPost, "/api/extract", `{"action":"destroy"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExtractFetchFailure(t *testing.T) {
	srv := newTestServer(&stubFetcher{err: types.ErrPageNotReady})

	rec := doRequest(t, srv, http.MethodPost, "/api/extract", `{"action":"extract"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with failure result", rec.Code)
	}

	var result types.ExtractionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(result.Error, "could not load") {
		t.Errorf("unexpected error message %q", result.Error)
	}
}

func TestExtractRejectsReentrantRuns(t *testing.T) {
	srv := newTestServer(&stubFetcher{body: pageHTML})

	// Simulate an outstanding run by holding the guard.
	if !srv.running.CompareAndSwap(false, true) {
		t.Fatal("guard unexpectedly held")
	}
	defer srv.running.Store(false)

	rec := doRequest(t, srv, http.MethodPost, "/api/extract", `{"action":"extract"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
