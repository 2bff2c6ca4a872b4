package extract

import (
	"fmt"
	"log/slog"

	"github.com/wishgrab/wishgrab/internal/types"
)

// Session is the entry point for one user-initiated extraction run. It owns
// the outer fault boundary: whatever happens below it comes back as an
// ExtractionResult, never as a panic crossing into the host.
//
// Sessions are stateless across runs. Page readiness is the fetcher's
// responsibility; Run assumes the snapshot was taken after load completed.
type Session struct {
	assembler *Assembler
	logger    *slog.Logger
}

// NewSession creates a session controller.
func NewSession(logger *slog.Logger) *Session {
	return &Session{
		assembler: NewAssembler(logger),
		logger:    logger.With("component", "session"),
	}
}

// Run executes one extraction over the given page snapshot.
func (s *Session) Run(page *types.Page) (result types.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("extraction session panic", "url", page.URL, "panic", r)
			result = types.Fail(fmt.Sprintf("extraction failed: %v", r))
		}
	}()

	// The heading lookup is isolated from card extraction: a broken
	// heading never fails the run.
	name := ResolveWishlistName(page, s.logger)

	result = s.assembler.Assemble(page, name)
	if result.Success {
		s.logger.Info("extraction complete",
			"wishlist", result.WishlistName, "records", len(result.Data))
	} else {
		s.logger.Warn("extraction failed", "url", page.URL, "error", result.Error)
	}
	return result
}
