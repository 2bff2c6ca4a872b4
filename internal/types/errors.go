package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrNoCards means the card locator exhausted every selector without
	// a match. Terminal for the run, user should refresh and retry.
	ErrNoCards = errors.New("no listing cards found")

	// ErrAuthRequired means the persistence API rejected the token and
	// the caller should re-prompt authorization.
	ErrAuthRequired = errors.New("authorization required")

	// ErrPageNotReady means the page had not finished loading when the
	// snapshot was requested.
	ErrPageNotReady = errors.New("page not finished loading")

	// ErrRunInProgress means an extraction session is already running.
	ErrRunInProgress = errors.New("extraction already in progress")
)

// FetchError wraps errors that occur while fetching or rendering a page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractError wraps errors raised inside the extraction engine. Field-level
// faults never surface as ExtractError; only session-level failures do.
type ExtractError struct {
	URL string
	Err error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error for %s: %v", e.URL, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// ExportError wraps errors from the sheet or storage backends.
type ExportError struct {
	Backend string
	Err     error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error (%s): %v", e.Backend, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
