package analytics

import "testing"

// TestRoundTo tests decimal rounding
func TestRoundTo(t *testing.T) {
	tests := []struct {
		value    float64
		places   int
		expected float64
	}{
		{1.25, 1, 1.3},
		{1.24, 1, 1.2},
		{18.5, 2, 18.5},
		{-1.25, 1, -1.3},
		{100, 0, 100},
	}
	for _, tt := range tests {
		if got := RoundTo(tt.value, tt.places); got != tt.expected {
			t.Errorf("RoundTo(%v, %d) = %v, expected %v", tt.value, tt.places, got, tt.expected)
		}
	}
}

// TestFormatInt tests thousands grouping
func TestFormatInt(t *testing.T) {
	tests := []struct {
		value    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tt := range tests {
		if got := FormatInt(tt.value); got != tt.expected {
			t.Errorf("FormatInt(%d) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}

// TestFormatFloat tests grouping combined with fixed decimals
func TestFormatFloat(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		expected string
	}{
		{1234.5, 2, "1,234.50"},
		{13591643.7, 2, "13,591,643.70"},
		{18.5, 2, "18.50"},
		{-1234.5, 1, "-1,234.5"},
		{42, 0, "42"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.value, tt.decimals); got != tt.expected {
			t.Errorf("FormatFloat(%v, %d) = %q, expected %q", tt.value, tt.decimals, got, tt.expected)
		}
	}
}
