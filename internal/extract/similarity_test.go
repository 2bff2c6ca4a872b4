package extract

import "testing"

func TestSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "12 beds", "12 beds", true},
		{"identical with punctuation", "King bed, 1 bath", "King bed, 1 bath", true},
		{"containment", "2 beds", "2 beds · 1 bath", true},
		{"completely different", "abc", "xyz", false},
		{"length difference over threshold", "xy", "abcdefg", false},
		{"containment beats the length gap", "ab", "abcdefg", true},
		{"one rune off within threshold", "4 bedrooms", "4 bedroomz", true},
		{"aligned but mostly different", "aaaaaaaaaa", "abababexyz", false},
		{"empty against text", "", "beds", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similar(tt.a, tt.b); got != tt.want {
				t.Errorf("Similar(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"2 beds", "2 beds · 1 bath"},
		{"abcde", "abcdx"},
		{"short", "a much longer string"},
	}
	for _, p := range pairs {
		if Similar(p[0], p[1]) != Similar(p[1], p[0]) {
			t.Errorf("Similar(%q, %q) is not symmetric", p[0], p[1])
		}
	}
}

func TestCollapseDoubledText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"identical halves", "2 beds2 beds", "2 beds"},
		{"odd length never split", "3 bedrooms", "3 bedrooms"},
		{"dissimilar halves kept whole", "1 bed2 baths", "1 bed2 baths"},
		{"near-identical halves", "4 beds·4 beds.", "4 beds·"},
		{"empty", "", ""},
		{"single rune", "x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collapseDoubledText(tt.in); got != tt.want {
				t.Errorf("collapseDoubledText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
