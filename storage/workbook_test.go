package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/utils"
)

func tempWorkbook(t *testing.T) *Workbook {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.xlsx")
	w, err := OpenWorkbook(path, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func TestOpenWorkbookCreatesFileWithSheets(t *testing.T) {
	w := tempWorkbook(t)

	if _, err := os.Stat(w.path); err != nil {
		t.Fatalf("workbook file missing: %v", err)
	}

	rows, err := w.ReadAllRows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("new workbook has %d row(s), want empty grid", len(rows))
	}
}

func TestAppendAndReadRoundTrip(t *testing.T) {
	w := tempWorkbook(t)

	if err := w.AppendRows([][]any{Header()}); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendRows([][]any{NewListingCells(sampleEnriched())}); err != nil {
		t.Fatal(err)
	}

	// Reopen from disk so the assertion covers persistence, not just the
	// in-memory file.
	reopened, err := OpenWorkbook(w.path, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	rows, err := reopened.ReadAllRows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("grid has %d row(s), want 2", len(rows))
	}
	if rows[0][0] != "Address" {
		t.Fatalf("header cell = %q", rows[0][0])
	}
	if rows[1][0] != "12 Sample St, Carlton" {
		t.Fatalf("address cell = %q", rows[1][0])
	}

	parsed, err := ParseRow(2, rows[1])
	if err != nil {
		t.Fatal(err)
	}
	if parsed.ID != 2019123456 {
		t.Fatalf("parsed id = %d", parsed.ID)
	}
}

func TestAppendRowsInstallsFormulas(t *testing.T) {
	w := tempWorkbook(t)

	if err := w.AppendRows([][]any{Header(), NewListingCells(sampleEnriched())}); err != nil {
		t.Fatal(err)
	}

	got, err := w.f.GetCellFormula(listingSheet, "K2")
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Fatal("discounting cell carries no formula")
	}
}

func TestBatchUpdateRowsSkipsNilCells(t *testing.T) {
	w := tempWorkbook(t)

	if err := w.AppendRows([][]any{Header(), NewListingCells(sampleEnriched())}); err != nil {
		t.Fatal(err)
	}

	row := &models.ListingRow{
		Slot:            2,
		ID:              2019123456,
		Address:         "12 Sample St, Carlton",
		AdvertisedPrice: 480000,
		InitialPrice:    500000,
		DisplayPrice:    "$480,000",
		Status:          models.StatusLive,
	}
	if err := w.BatchUpdateRows(map[int][]any{2: UpdateCells(row)}); err != nil {
		t.Fatal(err)
	}

	// Formula columns are nil in the update payload and must survive.
	formula, err := w.f.GetCellFormula(listingSheet, "K2")
	if err != nil {
		t.Fatal(err)
	}
	if formula == "" {
		t.Fatal("update wiped the discounting formula")
	}

	price, err := w.f.GetCellValue(listingSheet, "F2")
	if err != nil {
		t.Fatal(err)
	}
	if price != "480000" {
		t.Fatalf("advertised price cell = %q", price)
	}
}

func TestAnnotationReadModifyWrite(t *testing.T) {
	w := tempWorkbook(t)

	if err := w.AppendRows([][]any{Header(), NewListingCells(sampleEnriched())}); err != nil {
		t.Fatal(err)
	}

	existing, err := w.Annotation(2)
	if err != nil {
		t.Fatal(err)
	}
	if existing != "" {
		t.Fatalf("fresh row has annotation %q", existing)
	}

	first := "01/03/2024: Price changed to $480,000"
	if err := w.InsertAnnotations([]models.Annotation{
		{Row: 2, Column: AddressColumn, Text: first},
	}); err != nil {
		t.Fatal(err)
	}

	got, err := w.Annotation(2)
	if err != nil {
		t.Fatal(err)
	}
	if got != first {
		t.Fatalf("annotation = %q", got)
	}

	// A later insert replaces the note wholesale; appending is the
	// caller's job.
	second := first + "\n15/03/2024: sold"
	if err := w.InsertAnnotations([]models.Annotation{
		{Row: 2, Column: AddressColumn, Text: second},
	}); err != nil {
		t.Fatal(err)
	}
	got, err = w.Annotation(2)
	if err != nil {
		t.Fatal(err)
	}
	if got != second {
		t.Fatalf("annotation = %q", got)
	}
}

func TestAppendHistoryIsAppendOnly(t *testing.T) {
	w := tempWorkbook(t)

	if err := w.AppendHistory([][]any{
		{"01/03/2024 10:30:00", "12 Sample St, Carlton", "Price changed to $480,000", "$500,000"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendHistory([][]any{
		{"15/03/2024 10:30:00", "12 Sample St, Carlton", "sold", "live"},
	}); err != nil {
		t.Fatal(err)
	}

	rows, err := w.f.GetRows(historySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("history has %d row(s), want 2", len(rows))
	}
	if rows[0][2] != "Price changed to $480,000" {
		t.Fatalf("first entry = %v", rows[0])
	}
	if rows[1][2] != "sold" {
		t.Fatalf("second entry = %v", rows[1])
	}
}

func TestApplyTextFormatsStrikesThrough(t *testing.T) {
	w := tempWorkbook(t)

	if err := w.AppendRows([][]any{Header(), NewListingCells(sampleEnriched())}); err != nil {
		t.Fatal(err)
	}

	formats := []models.PendingTextFormat{
		{Row: 2, Column: AddressColumn, Format: models.FormatStrikethrough},
	}
	if err := w.ApplyTextFormats(formats); err != nil {
		t.Fatal(err)
	}

	styleID, err := w.f.GetCellStyle(listingSheet, "A2")
	if err != nil {
		t.Fatal(err)
	}
	style, err := w.f.GetStyle(styleID)
	if err != nil {
		t.Fatal(err)
	}
	if style.Font == nil || !style.Font.Strike {
		t.Fatal("address cell is not struck through")
	}

	// Applying again must not error.
	if err := w.ApplyTextFormats(formats); err != nil {
		t.Fatal(err)
	}
}
