package extract

import (
	"log/slog"

	"github.com/wishgrab/wishgrab/internal/types"
)

// NoCardsMessage is the user-facing error for a run that located nothing.
const NoCardsMessage = "No listing cards found. Refresh the wishlist page and try again."

// Assembler drives the card locator and field extractors, producing one
// ListingRecord per card in DOM order.
type Assembler struct {
	fields *FieldExtractor
	logger *slog.Logger
}

// NewAssembler creates an assembler.
func NewAssembler(logger *slog.Logger) *Assembler {
	return &Assembler{
		fields: NewFieldExtractor(logger),
		logger: logger.With("component", "assembler"),
	}
}

// Assemble extracts every listing from the page. Zero located cards is a
// terminal failure for the run; the assembler never retries field
// extraction, it only maps cards to records.
func (a *Assembler) Assemble(page *types.Page, wishlistName string) types.ExtractionResult {
	doc, err := page.Document()
	if err != nil {
		a.logger.Warn("page parse failed", "url", page.URL, "error", err)
		return types.Fail("could not parse the wishlist page: " + err.Error())
	}

	cards := LocateCards(doc)
	if len(cards) == 0 {
		a.logger.Warn("no cards located", "url", page.URL)
		return types.Fail(NoCardsMessage)
	}

	records := make([]types.ListingRecord, 0, len(cards))
	for _, card := range cards {
		records = append(records, a.fields.Extract(card))
	}

	a.logger.Info("listings assembled",
		"wishlist", wishlistName, "cards", len(cards))
	return types.OK(records, wishlistName)
}
