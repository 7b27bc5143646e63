package util

import "testing"

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-02", "2024-01-02", true},
		{"2024-01-02 15:04:05", "2024-01-02", true},
		{"2024-01-02T15:04:05Z", "2024-01-02", true},
		{"", "", false},
		{"02/01/2024", "", false},
		{"not a date", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && DayString(got) != tt.want {
			t.Errorf("ParseDate(%q) day = %q, want %q", tt.in, DayString(got), tt.want)
		}
	}
}
