package extract

import "github.com/PuerkitoBio/goquery"

// selectorChain is an ordered list of alternative CSS selectors, most
// specific and stable first. The page markup changes without notice, so
// every structural lookup in this package goes through a chain instead of a
// single hard-coded selector.
type selectorChain []string

// findFirst tries each selector in order against root and returns the
// matches of the first selector that yields at least one element. An empty
// selection means the whole chain missed; that is a normal outcome, not an
// error.
func (c selectorChain) findFirst(root *goquery.Selection) *goquery.Selection {
	for _, sel := range c {
		if m := root.Find(sel); m.Length() > 0 {
			return m
		}
	}
	return root.Slice(0, 0)
}
