package extract

import (
	"github.com/PuerkitoBio/goquery"
)

// Card is one repeated DOM subtree representing a single listing. It keeps a
// handle on the whole document because two extractors (date, comment) need
// context outside the card subtree.
type Card struct {
	// Sel is the card's root element.
	Sel *goquery.Selection

	// Doc is the full page document the card belongs to.
	Doc *goquery.Document

	// Index is the card's position in DOM order at scan time.
	Index int
}

// LocateCards finds the listing cards on the page by trying the card
// selector chain and taking the first selector that matches anything. Zero
// cards is a normal, reportable outcome: the page may legitimately render an
// empty wishlist, or the markup may have drifted past every known hook.
func LocateCards(doc *goquery.Document) []*Card {
	matches := cardSelectors.findFirst(doc.Selection)

	cards := make([]*Card, 0, matches.Length())
	matches.Each(func(i int, sel *goquery.Selection) {
		cards = append(cards, &Card{Sel: sel, Doc: doc, Index: i})
	})
	return cards
}
