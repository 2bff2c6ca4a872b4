package extract

// Selectors used across the extraction engine, grouped here so a markup
// change on the wishlist page is a one-file fix. Airbnb ships obfuscated
// atomic class names, so data-testid hooks come first in every chain and
// class/attribute heuristics act as fallbacks.
var (
	// Listing cards, most stable hook first.
	cardSelectors = selectorChain{
		`[data-testid="card-container"]`,
		`[itemprop="itemListElement"]`,
		`div[data-testid="listing-card"]`,
		`div[aria-labelledby^="title_"]`,
		`div[role="group"]`,
	}

	// Property name: subtitle span first, then any title-attribute-marked
	// element inside the card.
	nameSelectors = selectorChain{
		`[data-testid="listing-card-name"]`,
		`[data-testid="listing-card-subtitle"] span`,
	}

	// Rating-bearing elements by class-or-attribute heuristic.
	ratingSelectors = selectorChain{
		`[data-testid="listing-card-rating"]`,
		`span[aria-label*="rating"]`,
		`span[class*="rating"], div[class*="rating"]`,
	}

	// Stay-date control. Looked up on the whole document, not the card;
	// see FieldExtractor.date.
	dateSelectors = selectorChain{
		`[data-testid="little-search-date"]`,
		`button[data-testid="structured-search-input-field-split-dates-0"]`,
		`[data-testid="expanded-searchbar-dates-label"]`,
	}

	// Bed/room details container.
	detailsSelectors = selectorChain{
		`[data-testid="listing-card-details"]`,
		`[data-testid="listing-card-subtitle"]`,
	}

	// Price by price/total class-or-attribute heuristic.
	priceSelectors = selectorChain{
		`[data-testid="price-availability-row"]`,
		`span[data-testid*="price"], div[data-testid*="price"]`,
		`span[class*="price"], div[class*="price"]`,
		`span[class*="total"], div[class*="total"]`,
	}
)

const (
	// titleAttrSelector is the secondary name source: an element the page
	// marks with an explicit title attribute.
	titleAttrSelector = `[title]`

	// listingAnchorSelector matches anchors pointing at a listing page.
	listingAnchorSelector = `a[href*="/rooms/"]`

	// commentWrapperClass marks the annotation block rendered immediately
	// after a card when the user left a comment on the listing.
	commentWrapperClass = "comment-wrapper"

	// commentTextSelector is the text element nested in the wrapper.
	commentTextSelector = ".comment-text"

	// listingBaseURL is the fixed base for canonical listing links.
	listingBaseURL = "https://www.airbnb.com"
)

// priceLabels are known leading label phrases stripped from price text.
var priceLabels = []string{
	"Total:",
	"Gesamtpreis:",
	"Insgesamt:",
	"Insgesamt",
	"Total",
}

// editLabels are trailing edit-control captions stripped from comment text.
var editLabels = []string{
	"Edit",
	"Bearbeiten",
}
