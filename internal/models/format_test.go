package models

import "testing"

func TestFormatConfidence(t *testing.T) {
	cases := []struct {
		probability float64
		expected    string
	}{
		{0.823, "82.3%"},
		{0.5, "50.0%"},
		{0, "0.0%"},
		{1, "100.0%"},
		{0.999, "99.9%"},
		{0.0049, "0.5%"},
	}

	for _, tc := range cases {
		if got := FormatConfidence(tc.probability); got != tc.expected {
			t.Errorf("FormatConfidence(%v) = %q, want %q", tc.probability, got, tc.expected)
		}
	}
}
