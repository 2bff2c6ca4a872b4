// Package api is the host-facing request/response channel. The host asks
// for extraction with {"action":"extract"} and probes engine residency with
// ping; everything it gets back is a serialized ExtractionResult. Extraction
// runs are single-flight: the server rejects re-entrant triggers while a run
// is outstanding.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/wishgrab/wishgrab/internal/extract"
	"github.com/wishgrab/wishgrab/internal/fetcher"
	"github.com/wishgrab/wishgrab/internal/sheets"
	"github.com/wishgrab/wishgrab/internal/storage"
	"github.com/wishgrab/wishgrab/internal/types"
)

// Server exposes the extraction engine to the host environment.
type Server struct {
	mux    *http.ServeMux
	port   int
	logger *slog.Logger

	fetcher  fetcher.Fetcher
	session  *extract.Session
	exporter *sheets.Exporter // nil when sheet export is disabled
	store    storage.Storage  // nil when storage is disabled

	wishlistURL string
	running     atomic.Bool
}

// NewServer creates the host messaging server.
func NewServer(port int, wishlistURL string, f fetcher.Fetcher, logger *slog.Logger) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		port:        port,
		logger:      logger.With("component", "api_server"),
		fetcher:     f,
		session:     extract.NewSession(logger),
		wishlistURL: wishlistURL,
	}
	s.registerRoutes()
	return s
}

// SetExporter attaches a sheet exporter invoked after successful runs.
func (s *Server) SetExporter(e *sheets.Exporter) { s.exporter = e }

// SetStorage attaches a storage backend invoked after successful runs.
func (s *Server) SetStorage(st storage.Storage) { s.store = st }

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("host messaging server starting", "addr", addr)
	return http.ListenAndServe(addr, s.mux)
}

// Handler returns the underlying handler, used by tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/ping", s.handlePing)
	s.mux.HandleFunc("POST /api/extract", s.handleExtract)
}

// extractRequest is the host's message shape.
type extractRequest struct {
	Action string `json:"action"`

	// URL optionally overrides the configured wishlist URL for this run.
	URL string `json:"url,omitempty"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action != "extract" {
		s.jsonResponse(w, http.StatusBadRequest,
			types.Fail(`expected {"action":"extract"}`))
		return
	}

	if !s.running.CompareAndSwap(false, true) {
		s.jsonResponse(w, http.StatusConflict,
			types.Fail(types.ErrRunInProgress.Error()))
		return
	}
	defer s.running.Store(false)

	url := s.wishlistURL
	if req.URL != "" {
		url = req.URL
	}

	page, err := s.fetcher.Fetch(r.Context(), url)
	if err != nil {
		s.logger.Warn("fetch failed", "url", url, "error", err)
		s.jsonResponse(w, http.StatusOK, types.Fail("could not load the wishlist page: "+err.Error()))
		return
	}

	result := s.session.Run(page)
	if result.Success {
		s.persist(r, result)
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// persist forwards a successful run downstream. Persistence faults do not
// invalidate the extraction result; they are logged and reported separately
// by the export surface.
func (s *Server) persist(r *http.Request, result types.ExtractionResult) {
	if s.store != nil {
		if err := s.store.Store(r.Context(), result.WishlistName, result.Data); err != nil {
			s.logger.Error("storage failed", "backend", s.store.Name(), "error", err)
		}
	}
	if s.exporter != nil {
		if _, err := s.exporter.Export(r.Context(), result.Data, result.WishlistName); err != nil {
			if errors.Is(err, types.ErrAuthRequired) {
				s.logger.Warn("sheet export needs re-authorization")
			} else {
				s.logger.Error("sheet export failed", "error", err)
			}
		}
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
