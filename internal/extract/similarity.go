package extract

import "strings"

// Similar reports whether two short text fragments are near-duplicates of
// each other. It is an approximate, position-sensitive test, not an edit
// distance: the wishlist page sometimes renders the same text block twice
// (accessible text next to visible text) and this only needs to catch that.
//
// Rules, in order:
//  1. if either string contains the other, they are similar;
//  2. if their lengths differ by more than 3 runes, they are not;
//  3. otherwise count position-aligned equal runes over the shorter string
//     and compare that count against the longer length at a 0.8 threshold.
func Similar(a, b string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	ra := []rune(a)
	rb := []rune(b)

	diff := len(ra) - len(rb)
	if diff < 0 {
		diff = -diff
	}
	if diff > 3 {
		return false
	}

	shorter, longer := ra, rb
	if len(rb) < len(ra) {
		shorter, longer = rb, ra
	}

	matches := 0
	for i := range shorter {
		if ra[i] == rb[i] {
			matches++
		}
	}

	return float64(matches)/float64(len(longer)) >= 0.8
}

// collapseDoubledText applies the duplicate-text heuristic to a fragment the
// page may have rendered twice back to back. Even-length text is split into
// halves; if the halves are identical or Similar judges them near-duplicates,
// only the first half is kept. Odd-length text is never split.
func collapseDoubledText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 || len(runes)%2 != 0 {
		return text
	}

	half := len(runes) / 2
	first := string(runes[:half])
	second := string(runes[half:])

	if first == second || Similar(first, second) {
		return first
	}
	return text
}
