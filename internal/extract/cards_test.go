package extract

import "testing"

func TestLocateCardsPrimarySelector(t *testing.T) {
	cards := makeCards(t, wishlistHTML)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	for i, c := range cards {
		if c.Index != i {
			t.Errorf("card %d has index %d, DOM order must be preserved", i, c.Index)
		}
		if c.Doc == nil {
			t.Errorf("card %d is missing its document handle", i)
		}
	}
}

func TestLocateCardsFallbackSelector(t *testing.T) {
	// No card-container hooks at all; the itemprop fallback should win.
	cards := makeCards(t, `<html><body>
		<div itemprop="itemListElement"><a href="/rooms/1">one</a></div>
		<div itemprop="itemListElement"><a href="/rooms/2">two</a></div>
		<div itemprop="itemListElement"><a href="/rooms/3">three</a></div>
	</body></html>`)
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards via fallback selector, got %d", len(cards))
	}
}

func TestLocateCardsFirstMatchWins(t *testing.T) {
	// Both the primary and a fallback selector match; only the primary's
	// matches count, later selectors are never consulted.
	cards := makeCards(t, `<html><body>
		<div data-testid="card-container">primary</div>
		<div itemprop="itemListElement">fallback a</div>
		<div itemprop="itemListElement">fallback b</div>
	</body></html>`)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card from the primary selector, got %d", len(cards))
	}
}

func TestLocateCardsNoneFound(t *testing.T) {
	cards := makeCards(t, `<html><body><p>nothing listing-shaped here</p></body></html>`)
	if len(cards) != 0 {
		t.Fatalf("expected no cards, got %d", len(cards))
	}
}

func TestSelectorChainEmptyOnMiss(t *testing.T) {
	doc, err := makePage(t, `<html><body><p>x</p></body></html>`).Document()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	chain := selectorChain{`.does-not-exist`, `[data-testid="nope"]`}
	if m := chain.findFirst(doc.Selection); m.Length() != 0 {
		t.Errorf("expected empty selection from exhausted chain, got %d matches", m.Length())
	}
}
