package utils

import (
	"strings"
	"time"
)

const (
	// listingDateLayout is the timestamp format the portal payload uses.
	listingDateLayout = "2006-01-02T15:04:05.000"
	// HistoryTimestampLayout is the format history ledger rows carry.
	HistoryTimestampLayout = "02/01/2006 15:04:05"
	// DateLayout is the short date format used in sheet cells and comments.
	DateLayout = "02/01/2006"
	// InspectionLayout is the format inspection times are persisted in.
	InspectionLayout = "02/01/2006 15:04"
)

// ParseListingDate parses a portal listing timestamp. The portal emits
// millisecond-precision timestamps without a zone; some endpoints append a
// "Z" which is tolerated.
func ParseListingDate(raw string) (time.Time, error) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "Z")
	return time.Parse(listingDateLayout, raw)
}

// ParseInspectionTime parses a persisted inspection cell. Values written by
// earlier versions carried seconds, so both layouts are accepted.
func ParseInspectionTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(InspectionLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(HistoryTimestampLayout, raw)
}
