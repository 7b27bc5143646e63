package util

import "testing"

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"bitcoin", "Bitcoin"},
		{"usd-coin", "Usd-Coin"},
		{"wrapped bitcoin", "Wrapped Bitcoin"},
		{"ETHEREUM", "Ethereum"},
		{"x2y", "X2Y"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
