package utils

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{480000, "$480,000"},
		{610000, "$610,000"},
		{1250000, "$1,250,000"},
		{995, "$995"},
		{0, "$0"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.value); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q; want %q", tt.value, got, tt.want)
		}
	}
}
