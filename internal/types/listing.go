package types

// ListingRecord is one scraped wishlist entry. Every field is a raw display
// string; a missing or unparseable field is the empty string, never an error.
type ListingRecord struct {
	// PropertyName is the listing title as shown on the card.
	PropertyName string `json:"propertyName" bson:"property_name"`

	// Rating is the raw matched numeric substring, locale decimal
	// separator preserved (e.g. "4,92" or "4.92").
	Rating string `json:"rating" bson:"rating"`

	// Date is the display text of the stay-date control.
	Date string `json:"date" bson:"date"`

	// Beds is the bed/room summary text, deduplicated if the page
	// rendered it twice.
	Beds string `json:"beds" bson:"beds"`

	// TotalPrice is the price text with currency symbol, stripped of
	// known leading labels.
	TotalPrice string `json:"totalPrice" bson:"total_price"`

	// Link is the canonicalized listing URL, or empty.
	Link string `json:"link" bson:"link"`

	// Comment is the user's own annotation on the listing, or empty.
	Comment string `json:"comment" bson:"comment"`
}

// HeaderRow is the fixed first row written to the export sheet. Column order
// matches Row.
func HeaderRow() []string {
	return []string{
		"Property Name",
		"Rating",
		"Date",
		"Beds",
		"Total Price",
		"Link to listing",
		"Comment",
	}
}

// Row returns the record as a sheet row in header order.
func (r ListingRecord) Row() []string {
	return []string{
		r.PropertyName,
		r.Rating,
		r.Date,
		r.Beds,
		r.TotalPrice,
		r.Link,
		r.Comment,
	}
}

// Rows converts records into sheet rows, header first.
func Rows(records []ListingRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, HeaderRow())
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return rows
}
