package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/wishgrab/wishgrab/internal/config"
	"github.com/wishgrab/wishgrab/internal/types"
)

// BrowserFetcher renders pages in headless Chromium via Rod. The wishlist
// page is fully client-rendered, so this is the fetcher that normally feeds
// the extraction engine. It waits for load completion before snapshotting,
// which is where the "defer extraction until loaded" condition lives.
type BrowserFetcher struct {
	browser *rod.Browser
	cfg     *config.FetcherConfig
	logger  *slog.Logger
}

// NewBrowserFetcher launches a browser and connects to it.
func NewBrowserFetcher(cfg *config.Config, logger *slog.Logger) (*BrowserFetcher, error) {
	l := launcher.New().
		Headless(cfg.Fetcher.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	bf := &BrowserFetcher{
		browser: browser,
		cfg:     &cfg.Fetcher,
		logger:  logger.With("component", "browser_fetcher"),
	}
	bf.logger.Info("browser fetcher ready", "headless", cfg.Fetcher.Headless)
	return bf, nil
}

// Type implements Fetcher.
func (f *BrowserFetcher) Type() string { return "browser" }

// Close implements Fetcher.
func (f *BrowserFetcher) Close() error {
	return f.browser.Close()
}

// Fetch implements Fetcher. It navigates, waits for the load event, scrolls
// to the bottom so lazily rendered cards materialize, then snapshots the DOM.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*types.Page, error) {
	start := time.Now()

	page, err := stealth.Page(f.browser)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("open page: %w", err)}
	}
	defer page.Close()

	page = page.Context(ctx)
	if f.cfg.Timeout > 0 {
		page = page.Timeout(f.cfg.Timeout)
	}

	if err := page.Navigate(url); err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("navigate: %w", err)}
	}
	if err := page.WaitLoad(); err != nil {
		return nil, &types.FetchError{URL: url, Err: types.ErrPageNotReady}
	}

	f.scrollThrough(page)

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("snapshot dom: %w", err)}
	}

	info, err := page.Info()
	finalURL := url
	if err == nil {
		finalURL = info.URL
	}

	duration := time.Since(start)
	f.logger.Debug("page rendered",
		"url", finalURL, "bytes", len(html), "duration", duration)

	return types.NewPage(finalURL, []byte(html), duration), nil
}

// scrollThrough pages to the bottom of the document in steps so that
// lazily rendered cards enter the DOM. Failures here are non-fatal: the
// snapshot simply contains whatever was rendered.
func (f *BrowserFetcher) scrollThrough(page *rod.Page) {
	for i := 0; i < f.cfg.ScrollSteps; i++ {
		if _, err := page.Eval(`() => window.scrollBy(0, window.innerHeight)`); err != nil {
			f.logger.Debug("scroll step failed", "step", i, "error", err)
			return
		}
		time.Sleep(f.cfg.ScrollPause)
	}
	if _, err := page.Eval(`() => window.scrollTo(0, 0)`); err != nil {
		f.logger.Debug("scroll reset failed", "error", err)
	}
}
