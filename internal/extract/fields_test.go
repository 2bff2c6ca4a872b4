package extract

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/wishgrab/wishgrab/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// wishlistHTML is a trimmed-down wishlist page: a heading, a shared date
// control, and two listing cards. The first card is fully populated and has
// a user comment; the second exercises the fallback paths.
const wishlistHTML = `<!DOCTYPE html>
<html>
<head><title>Wishlist</title></head>
<body>
	<h1>Summer trips</h1>
	<button data-testid="little-search-date">Nov 12 – 15</button>
	<div id="list">
		<div data-testid="card-container">
			<a href="/rooms/12345678?source=wishlist&amp;check_in=2026-11-12">
				<span data-testid="listing-card-name">Cozy Loft</span>
			</a>
			<span data-testid="listing-card-rating">4,92 (18)</span>
			<div data-testid="listing-card-details">
				<span hidden>sr-only</span>
				<span>Apartment</span>
				<span> · </span>
				<span>2 beds2 beds</span>
			</div>
			<div data-testid="price-availability-row">Gesamtpreis: €540</div>
		</div>
		<div class="comment-wrapper">
			<p class="comment-text">Great view from the balcony! Edit</p>
		</div>
		<div data-testid="card-container">
			<a href="/rooms/plus/sea-villa?source=wishlist"></a>
			<div title="Beach House"></div>
			<div data-testid="listing-card-details">
				<span>House</span>
				<span> · </span>
				<span>1 bed2 baths</span>
			</div>
			<span>€123 for 3 nights</span>
		</div>
	</div>
</body>
</html>`

func makePage(t *testing.T, body string) *types.Page {
	t.Helper()
	return types.NewPage("https://www.airbnb.com/wishlists/123", []byte(body), time.Millisecond)
}

func makeCards(t *testing.T, body string) []*Card {
	t.Helper()
	doc, err := makePage(t, body).Document()
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return LocateCards(doc)
}

func fixtureCards(t *testing.T) (*Card, *Card) {
	t.Helper()
	cards := makeCards(t, wishlistHTML)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards in fixture, got %d", len(cards))
	}
	return cards[0], cards[1]
}

func TestExtractFullCard(t *testing.T) {
	first, _ := fixtureCards(t)
	rec := NewFieldExtractor(testLogger).Extract(first)

	want := types.ListingRecord{
		PropertyName: "Cozy Loft",
		Rating:       "4,92",
		Date:         "Nov 12 – 15",
		Beds:         "2 beds",
		TotalPrice:   "€540",
		Link:         "https://www.airbnb.com/rooms/12345678",
		Comment:      "Great view from the balcony!",
	}
	if rec != want {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", rec, want)
	}
}

func TestExtractFallbackCard(t *testing.T) {
	_, second := fixtureCards(t)
	rec := NewFieldExtractor(testLogger).Extract(second)

	if rec.PropertyName != "Beach House" {
		t.Errorf("name via title attribute: got %q, want %q", rec.PropertyName, "Beach House")
	}
	if rec.Rating != "" {
		t.Errorf("missing rating element should give empty rating, got %q", rec.Rating)
	}
	if rec.Date != "Nov 12 – 15" {
		t.Errorf("date is document-global, got %q", rec.Date)
	}
	if rec.Beds != "1 bed2 baths" {
		t.Errorf("dissimilar halves must not be collapsed, got %q", rec.Beds)
	}
	if rec.TotalPrice != "€123 for 3 nights" {
		t.Errorf("currency-symbol fallback: got %q", rec.TotalPrice)
	}
	if rec.Link != "https://www.airbnb.com/rooms/plus/sea-villa" {
		t.Errorf("non-numeric href keeps query-stripped path, got %q", rec.Link)
	}
	if rec.Comment != "" {
		t.Errorf("card without comment wrapper should give empty comment, got %q", rec.Comment)
	}
}

func TestDateSharedAcrossCards(t *testing.T) {
	first, second := fixtureCards(t)
	e := NewFieldExtractor(testLogger)

	d1 := e.safe("date", e.date)(first)
	d2 := e.safe("date", e.date)(second)
	if d1 != d2 {
		t.Errorf("date must be identical for every card in a run: %q vs %q", d1, d2)
	}
}

func TestStripPriceLabels(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Gesamtpreis: €540", "€540"},
		{"Total: $1,200", "$1,200"},
		{"Insgesamt 300 €", "300 €"},
		{"€99", "€99"},
		{"  Total: €75  ", "€75"},
	}
	for _, tt := range tests {
		if got := stripPriceLabels(tt.in); got != tt.want {
			t.Errorf("stripPriceLabels(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseListingID(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/rooms/12345678?source=wishlist", "12345678"},
		{"https://www.airbnb.com/rooms/99?x=1", "99"},
		{"/rooms/plus/sea-villa", ""},
		{"/experiences/42", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseListingID(tt.href); got != tt.want {
			t.Errorf("parseListingID(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestRatingPattern(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"4.92 (18 reviews)", "4.92"},
		{"Bewertung 4,92", "4,92"},
		{"5 stars", ""},
		{"New listing", ""},
	}
	for _, tt := range tests {
		if got := ratingPattern.FindString(tt.text); got != tt.want {
			t.Errorf("rating from %q = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestSafeRecoversPanic(t *testing.T) {
	first, _ := fixtureCards(t)
	e := NewFieldExtractor(testLogger)

	got := e.safe("boom", func(*Card) (string, error) {
		panic("selector blew up")
	})(first)

	if got != "" {
		t.Errorf("panicking field must yield empty string, got %q", got)
	}
}

func TestBrokenFieldDoesNotAffectSiblings(t *testing.T) {
	// A card missing every hook still yields a record; nothing propagates.
	cards := makeCards(t, `<html><body>
		<div data-testid="card-container"><p>bare card</p></div>
	</body></html>`)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}

	rec := NewFieldExtractor(testLogger).Extract(cards[0])
	if rec != (types.ListingRecord{}) {
		t.Errorf("expected all-empty record, got %+v", rec)
	}
}
