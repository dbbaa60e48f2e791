package models

import "time"

// TextFormat is a conditional cell format the differ can request. Only
// strikethrough is produced today.
type TextFormat int

const (
	FormatStrikethrough TextFormat = iota
)

// PendingComment is a queued inline annotation. Row is the persisted row's
// slot, Column the sheet column letter the note hangs off.
type PendingComment struct {
	Row       int
	Column    string
	Timestamp time.Time
	Text      string
}

// PendingHistoryEntry is a queued append-only history ledger row.
type PendingHistoryEntry struct {
	Timestamp     time.Time
	Address       string
	Description   string
	PreviousValue string
}

// PendingTextFormat is a queued cell format mutation.
type PendingTextFormat struct {
	Row    int
	Column string
	Format TextFormat
}

// Annotation addresses a single cell note in the store.
type Annotation struct {
	Row    int
	Column string
	Text   string
}
