package storage

import "github.com/bhorvath/domain-scraper/models"

// TabularStore is the persistence backend the sync engine writes through: a
// spreadsheet-like grid addressed by 1-based row position. Row 1 is reserved
// for the header after first-run initialization. The store offers at most
// batched, non-transactional writes.
type TabularStore interface {
	// ReadAllRows returns the full grid snapshot in persisted order,
	// header row included. An empty slice means the sheet has never been
	// initialized.
	ReadAllRows() ([][]string, error)
	// AppendRows appends rows at the end of the grid. Cell values that are
	// formula strings are installed as formulas.
	AppendRows(rows [][]any) error
	// BatchUpdateRows rewrites specific rows in place by absolute row
	// position. Nil cells are skipped, leaving existing content (formula
	// columns are written once at creation and never rewritten).
	BatchUpdateRows(rows map[int][]any) error
	// Annotation reads the existing cell note for the row's keyed column.
	Annotation(row int) (string, error)
	// InsertAnnotations sets cell notes in one batch, replacing any
	// existing note on each addressed cell.
	InsertAnnotations(notes []models.Annotation) error
	// AppendHistory appends rows to the append-only history ledger sheet.
	AppendHistory(rows [][]any) error
	// ApplyTextFormats applies cell formats in one batch. Re-applying a
	// format already present is a no-op.
	ApplyTextFormats(formats []models.PendingTextFormat) error
}

// SnapshotArchiver records the raw observed snapshot each cycle. Archiving is
// best-effort and independent of the sync engine.
type SnapshotArchiver interface {
	Archive(listings []*models.Listing) error
	Close() error
}
