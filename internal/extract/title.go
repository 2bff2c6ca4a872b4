package extract

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/antchfx/htmlquery"

	"github.com/wishgrab/wishgrab/internal/types"
)

// DefaultWishlistName is used when the page heading cannot be resolved.
const DefaultWishlistName = "Airbnb Wishlist"

// ResolveWishlistName returns the wishlist's display name from the page's
// first-level heading. The lookup is fault-isolated from card extraction:
// any miss or parse failure falls back to the fixed placeholder. The XPath
// pass re-parses from the raw bytes, independent of the goquery document.
func ResolveWishlistName(page *types.Page, logger *slog.Logger) (name string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("wishlist name lookup panic", "panic", r)
			name = DefaultWishlistName
		}
	}()

	if doc, err := page.Document(); err == nil {
		if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
			return t
		}
	}

	if root, err := htmlquery.Parse(bytes.NewReader(page.Body)); err == nil {
		if h := htmlquery.FindOne(root, "//h1"); h != nil {
			if t := strings.TrimSpace(htmlquery.InnerText(h)); t != "" {
				return t
			}
		}
	}

	return DefaultWishlistName
}
