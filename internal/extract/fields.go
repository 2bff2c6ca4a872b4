package extract

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/wishgrab/wishgrab/internal/types"
)

var (
	// ratingPattern matches the first decimal-number-shaped substring,
	// locale separator preserved ("4.92" and "4,92" both match).
	ratingPattern = regexp.MustCompile(`\d+[.,]\d+`)

	// listingIDPattern captures the numeric listing id from a /rooms/ path.
	listingIDPattern = regexp.MustCompile(`/rooms/(\d+)`)
)

// FieldExtractor extracts the per-card fields of a ListingRecord. Every
// field lookup is independently fault-isolated: a broken field yields an
// empty string and never aborts sibling fields or sibling cards.
type FieldExtractor struct {
	logger *slog.Logger
}

// NewFieldExtractor creates a field extractor.
func NewFieldExtractor(logger *slog.Logger) *FieldExtractor {
	return &FieldExtractor{
		logger: logger.With("component", "field_extractor"),
	}
}

// fieldFunc is the raw per-field contract before fault isolation.
type fieldFunc func(*Card) (string, error)

// safe adapts fn to the never-fails field contract: panics are recovered,
// errors collapse to the empty string, and either is logged at debug level.
func (e *FieldExtractor) safe(field string, fn fieldFunc) func(*Card) string {
	return func(c *Card) (out string) {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Debug("field extractor panic",
					"field", field, "card", c.Index, "panic", fmt.Sprint(r))
				out = ""
			}
		}()

		v, err := fn(c)
		if err != nil {
			e.logger.Debug("field extraction failed",
				"field", field, "card", c.Index, "error", err)
			return ""
		}
		return strings.TrimSpace(v)
	}
}

// Extract runs all seven field extractors against one card. A record is
// produced for every card, even when every field comes back empty.
func (e *FieldExtractor) Extract(c *Card) types.ListingRecord {
	return types.ListingRecord{
		PropertyName: e.safe("name", e.name)(c),
		Rating:       e.safe("rating", e.rating)(c),
		Date:         e.safe("date", e.date)(c),
		Beds:         e.safe("beds", e.beds)(c),
		TotalPrice:   e.safe("price", e.price)(c),
		Link:         e.safe("link", e.link)(c),
		Comment:      e.safe("comment", e.comment)(c),
	}
}

// name reads the property name: subtitle span first, then any element marked
// with an explicit title attribute.
func (e *FieldExtractor) name(c *Card) (string, error) {
	if m := nameSelectors.findFirst(c.Sel); m.Length() > 0 {
		return m.First().Text(), nil
	}

	marked := c.Sel.Find(titleAttrSelector).First()
	if marked.Length() == 0 {
		return "", nil
	}
	if v := strings.TrimSpace(marked.AttrOr("title", "")); v != "" {
		return v, nil
	}
	return marked.Text(), nil
}

// rating locates a rating-bearing element and pulls the first decimal-shaped
// substring out of its text.
func (e *FieldExtractor) rating(c *Card) (string, error) {
	m := ratingSelectors.findFirst(c.Sel)
	if m.Length() == 0 {
		return "", nil
	}
	return ratingPattern.FindString(m.First().Text()), nil
}

// date reads the stay-date control. The lookup is scoped to the whole
// document, not the card: every record in a run carries whatever date
// control is rendered at extraction time. Scoping this per card would change
// observable output, so the document-global lookup is kept deliberately.
func (e *FieldExtractor) date(c *Card) (string, error) {
	m := dateSelectors.findFirst(c.Doc.Selection)
	if m.Length() == 0 {
		return "", nil
	}
	return m.First().Text(), nil
}

// beds reads the third non-hidden direct child of the details container and
// collapses accidental back-to-back duplication of its text.
func (e *FieldExtractor) beds(c *Card) (string, error) {
	details := detailsSelectors.findFirst(c.Sel)
	if details.Length() == 0 {
		return "", nil
	}

	visible := details.First().Children().FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !isHidden(s)
	})
	if visible.Length() < 3 {
		return "", nil
	}

	text := strings.TrimSpace(visible.Eq(2).Text())
	return collapseDoubledText(text), nil
}

// price reads the total price, stripping known leading labels. When no
// price-marked element exists it falls back to the first text-bearing
// descendant whose own text carries a currency symbol.
func (e *FieldExtractor) price(c *Card) (string, error) {
	if m := priceSelectors.findFirst(c.Sel); m.Length() > 0 {
		return stripPriceLabels(m.First().Text()), nil
	}

	var found string
	c.Sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(s.Nodes) == 0 || !hasOwnText(s.Nodes[0]) {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if strings.ContainsAny(text, "€$") {
			found = text
			return false
		}
		return true
	})
	return found, nil
}

// link finds the listing anchor and canonicalizes its href: a numeric
// listing id rebuilds a clean URL from the fixed base, anything else keeps
// the path with tracking parameters stripped.
func (e *FieldExtractor) link(c *Card) (string, error) {
	href := listingHref(c)
	if href == "" {
		return "", nil
	}

	if id := parseListingID(href); id != "" {
		return listingBaseURL + "/rooms/" + id, nil
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return listingBaseURL + u.Path, nil
}

// comment reads the user's annotation. Comments render as the element
// immediately following the card in document order, marked with the comment
// wrapper class; cards without the marker have no comment.
func (e *FieldExtractor) comment(c *Card) (string, error) {
	// The comment block only exists for cards that resolved a listing id.
	if parseListingID(listingHref(c)) == "" {
		return "", nil
	}

	sib := c.Sel.Next()
	if sib.Length() == 0 || !sib.HasClass(commentWrapperClass) {
		return "", nil
	}

	text := strings.TrimSpace(sib.Find(commentTextSelector).First().Text())
	for _, label := range editLabels {
		text = strings.TrimSpace(strings.TrimSuffix(text, label))
	}
	return text, nil
}

// listingHref returns the raw href of the card's listing anchor, or empty.
func listingHref(c *Card) string {
	return c.Sel.Find(listingAnchorSelector).First().AttrOr("href", "")
}

// parseListingID extracts the numeric listing id from an href, or empty.
func parseListingID(href string) string {
	m := listingIDPattern.FindStringSubmatch(href)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// stripPriceLabels removes known leading label phrases from price text.
func stripPriceLabels(text string) string {
	text = strings.TrimSpace(text)
	for _, label := range priceLabels {
		if strings.HasPrefix(text, label) {
			return strings.TrimSpace(text[len(label):])
		}
	}
	return text
}

// isHidden reports whether an element is hidden from rendering.
func isHidden(s *goquery.Selection) bool {
	if s.AttrOr("aria-hidden", "") == "true" {
		return true
	}
	if _, ok := s.Attr("hidden"); ok {
		return true
	}
	style := s.AttrOr("style", "")
	return strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none")
}

// hasOwnText reports whether the node carries non-whitespace text directly,
// as opposed to only through descendants.
func hasOwnText(n *html.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode && strings.TrimSpace(child.Data) != "" {
			return true
		}
	}
	return false
}
