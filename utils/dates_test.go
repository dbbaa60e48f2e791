package utils

import (
	"testing"
	"time"
)

func TestParseListingDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2023-08-14T10:30:00.000", time.Date(2023, 8, 14, 10, 30, 0, 0, time.UTC)},
		{"2023-08-14T10:30:00.000Z", time.Date(2023, 8, 14, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseListingDate(tt.raw)
		if err != nil {
			t.Errorf("ParseListingDate(%q) error: %v", tt.raw, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseListingDate(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseListingDateRejectsGarbage(t *testing.T) {
	if _, err := ParseListingDate("yesterday"); err == nil {
		t.Errorf("expected error for unparseable date")
	}
}

func TestParseInspectionTimeToleratesFormattingDrift(t *testing.T) {
	want := time.Date(2023, 9, 2, 11, 0, 0, 0, time.UTC)

	for _, raw := range []string{"02/09/2023 11:00", "02/09/2023 11:00:00"} {
		got, err := ParseInspectionTime(raw)
		if err != nil {
			t.Errorf("ParseInspectionTime(%q) error: %v", raw, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseInspectionTime(%q) = %v; want %v", raw, got, want)
		}
	}
}
