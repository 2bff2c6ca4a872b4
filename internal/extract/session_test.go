package extract

import (
	"strings"
	"testing"
)

func TestSessionRunSuccess(t *testing.T) {
	s := NewSession(testLogger)

	result := s.Run(makePage(t, wishlistHTML))
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.WishlistName != "Summer trips" {
		t.Errorf("wishlist name from h1: got %q", result.WishlistName)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 records, got %d", len(result.Data))
	}
}

func TestSessionRunNoCards(t *testing.T) {
	s := NewSession(testLogger)

	result := s.Run(makePage(t, `<html><body><h1>Lonely list</h1></body></html>`))
	if result.Success {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(result.Error, "No listing cards") {
		t.Errorf("expected the no-cards message, got %q", result.Error)
	}
}

func TestResolveWishlistName(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"heading present", wishlistHTML, "Summer trips"},
		{"heading with whitespace", `<html><body><h1>
			Winter escapes
		</h1></body></html>`, "Winter escapes"},
		{"no heading", `<html><body><p>hi</p></body></html>`, DefaultWishlistName},
		{"empty heading", `<html><body><h1>  </h1></body></html>`, DefaultWishlistName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveWishlistName(makePage(t, tt.html), testLogger)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
