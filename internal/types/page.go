package types

import (
	"bytes"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is a snapshot of a rendered wishlist page. The extraction engine
// treats it as read-only.
type Page struct {
	// URL is the final URL after any redirects.
	URL string

	// Body is the raw HTML of the rendered page.
	Body []byte

	// FetchedAt is when this snapshot was taken.
	FetchedAt time.Time

	// FetchDuration is how long fetching/rendering took.
	FetchDuration time.Duration

	// doc is the parsed document, lazily initialized.
	doc *goquery.Document
}

// NewPage creates a Page snapshot from raw HTML.
func NewPage(url string, body []byte, duration time.Duration) *Page {
	return &Page{
		URL:           url,
		Body:          body,
		FetchedAt:     time.Now(),
		FetchDuration: duration,
	}
}

// Document returns the parsed goquery document, lazily initializing it.
func (p *Page) Document() (*goquery.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
	if err != nil {
		return nil, err
	}
	p.doc = doc
	return doc, nil
}
