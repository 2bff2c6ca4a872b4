package types

// ExtractionResult is the response shape returned for every extraction
// request. It is constructed once per run, serialized across the host
// boundary, and not retained.
type ExtractionResult struct {
	Success      bool            `json:"success"`
	Data         []ListingRecord `json:"data,omitempty"`
	WishlistName string          `json:"wishlistName,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// OK builds a success result carrying the extracted records in DOM order.
func OK(records []ListingRecord, wishlistName string) ExtractionResult {
	return ExtractionResult{
		Success:      true,
		Data:         records,
		WishlistName: wishlistName,
	}
}

// Fail builds a failure result carrying a human-readable message.
func Fail(msg string) ExtractionResult {
	return ExtractionResult{Success: false, Error: msg}
}
