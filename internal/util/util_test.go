package util

import "testing"

func TestParseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		def      int
		expected int
	}{
		{name: "empty falls back", raw: "", def: 3, expected: 3},
		{name: "valid value", raw: "5", def: 3, expected: 5},
		{name: "zero falls back", raw: "0", def: 3, expected: 3},
		{name: "negative falls back", raw: "-5", def: 6, expected: 6},
		{name: "non-numeric falls back", raw: "abc", def: 6, expected: 6},
		{name: "float falls back", raw: "2.5", def: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseLimit(tt.raw, tt.def); got != tt.expected {
				t.Fatalf("ParseLimit(%q, %d) = %d, want %d", tt.raw, tt.def, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4}

	tests := []struct {
		name     string
		n        int
		expected int
	}{
		{name: "shorter than slice", n: 2, expected: 2},
		{name: "equal to slice", n: 4, expected: 4},
		{name: "longer than slice", n: 10, expected: 4},
		{name: "zero", n: 0, expected: 0},
		{name: "negative", n: -1, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := len(Truncate(items, tt.n)); got != tt.expected {
				t.Fatalf("len(Truncate(items, %d)) = %d, want %d", tt.n, got, tt.expected)
			}
		})
	}
}
