package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/utils"
)

const (
	listingSheet = "Listings"
	historySheet = "History"

	commentAuthor = "domain-scraper"
)

// Workbook is the excelize-backed TabularStore. The listing grid lives on the
// Listings sheet; the append-only change ledger lives on the History sheet.
// Writes are batched per operation and flushed to disk before returning.
type Workbook struct {
	path        string
	f           *excelize.File
	logger      *utils.Logger
	strikeStyle int
}

// OpenWorkbook opens the workbook at path, creating it with the two sheets on
// first use.
func OpenWorkbook(path string, logger *utils.Logger) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createWorkbook(path, logger)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("workbook: open %q: %w", path, err)
	}

	for _, sheet := range []string{listingSheet, historySheet} {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("workbook: inspect sheet %q: %w", sheet, err)
		}
		if idx < 0 {
			if _, err := f.NewSheet(sheet); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("workbook: create sheet %q: %w", sheet, err)
			}
		}
	}

	return &Workbook{path: path, f: f, logger: logger, strikeStyle: -1}, nil
}

func createWorkbook(path string, logger *utils.Logger) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), listingSheet); err != nil {
		return nil, fmt.Errorf("workbook: name listing sheet: %w", err)
	}
	if _, err := f.NewSheet(historySheet); err != nil {
		return nil, fmt.Errorf("workbook: create history sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("workbook: create %q: %w", path, err)
	}
	logger.Info("[workbook] Created new workbook at %s", path)
	return &Workbook{path: path, f: f, logger: logger, strikeStyle: -1}, nil
}

// ReadAllRows returns the full listing grid, header included.
func (w *Workbook) ReadAllRows() ([][]string, error) {
	rows, err := w.f.GetRows(listingSheet)
	if err != nil {
		return nil, fmt.Errorf("workbook: read rows: %w", err)
	}
	return rows, nil
}

// AppendRows appends rows at the bottom of the listing grid.
func (w *Workbook) AppendRows(rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	start, err := w.nextRow(listingSheet)
	if err != nil {
		return err
	}
	for i, cells := range rows {
		if err := w.writeCells(listingSheet, start+i, cells); err != nil {
			return err
		}
	}
	return w.save()
}

// BatchUpdateRows rewrites the addressed rows in place. Nil cells are
// skipped, so formula columns written at row creation survive.
func (w *Workbook) BatchUpdateRows(rows map[int][]any) error {
	if len(rows) == 0 {
		return nil
	}
	for position, cells := range rows {
		if err := w.writeCells(listingSheet, position, cells); err != nil {
			return err
		}
	}
	return w.save()
}

// Annotation reads the note on the row's keyed (address) cell.
func (w *Workbook) Annotation(row int) (string, error) {
	cell, err := excelize.JoinCellName(AddressColumn, row)
	if err != nil {
		return "", fmt.Errorf("workbook: annotation address row %d: %w", row, err)
	}
	comments, err := w.f.GetComments(listingSheet)
	if err != nil {
		return "", fmt.Errorf("workbook: read annotations: %w", err)
	}
	for _, c := range comments {
		if c.Cell == cell {
			return commentText(c), nil
		}
	}
	return "", nil
}

// InsertAnnotations replaces the notes on the addressed cells in one batch.
func (w *Workbook) InsertAnnotations(notes []models.Annotation) error {
	if len(notes) == 0 {
		return nil
	}
	for _, note := range notes {
		cell, err := excelize.JoinCellName(note.Column, note.Row)
		if err != nil {
			return fmt.Errorf("workbook: annotation address %s%d: %w", note.Column, note.Row, err)
		}
		// Replace rather than stack: the queued text already carries any
		// previous note content.
		_ = w.f.DeleteComment(listingSheet, cell)
		if err := w.f.AddComment(listingSheet, excelize.Comment{
			Cell:      cell,
			Author:    commentAuthor,
			Paragraph: []excelize.RichTextRun{{Text: note.Text}},
		}); err != nil {
			return fmt.Errorf("workbook: add annotation at %s: %w", cell, err)
		}
	}
	return w.save()
}

// AppendHistory appends ledger rows to the history sheet.
func (w *Workbook) AppendHistory(rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	start, err := w.nextRow(historySheet)
	if err != nil {
		return err
	}
	for i, cells := range rows {
		if err := w.writeCells(historySheet, start+i, cells); err != nil {
			return err
		}
	}
	return w.save()
}

// ApplyTextFormats applies the queued cell formats. Re-applying strikethrough
// to an already-struck cell is a no-op.
func (w *Workbook) ApplyTextFormats(formats []models.PendingTextFormat) error {
	if len(formats) == 0 {
		return nil
	}
	for _, pf := range formats {
		if pf.Format != models.FormatStrikethrough {
			return fmt.Errorf("workbook: unsupported text format %d", pf.Format)
		}
		cell, err := excelize.JoinCellName(pf.Column, pf.Row)
		if err != nil {
			return fmt.Errorf("workbook: format address %s%d: %w", pf.Column, pf.Row, err)
		}
		style, err := w.strikethroughStyle()
		if err != nil {
			return err
		}
		if err := w.f.SetCellStyle(listingSheet, cell, cell, style); err != nil {
			return fmt.Errorf("workbook: apply strikethrough at %s: %w", cell, err)
		}
	}
	return w.save()
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	return w.f.Close()
}

func (w *Workbook) nextRow(sheet string) (int, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("workbook: scan %s: %w", sheet, err)
	}
	return len(rows) + 1, nil
}

func (w *Workbook) writeCells(sheet string, row int, cells []any) error {
	for i, value := range cells {
		if value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("workbook: cell (%d,%d): %w", i+1, row, err)
		}
		if s, ok := value.(string); ok && strings.HasPrefix(s, "=") {
			if err := w.f.SetCellFormula(sheet, cell, strings.TrimPrefix(s, "=")); err != nil {
				return fmt.Errorf("workbook: set formula at %s: %w", cell, err)
			}
			continue
		}
		if err := w.f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("workbook: set value at %s: %w", cell, err)
		}
	}
	return nil
}

func (w *Workbook) strikethroughStyle() (int, error) {
	if w.strikeStyle >= 0 {
		return w.strikeStyle, nil
	}
	style, err := w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Strike: true},
	})
	if err != nil {
		return 0, fmt.Errorf("workbook: create strikethrough style: %w", err)
	}
	w.strikeStyle = style
	return style, nil
}

func (w *Workbook) save() error {
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("workbook: save %q: %w", w.path, err)
	}
	return nil
}

func commentText(c excelize.Comment) string {
	if len(c.Paragraph) > 0 {
		var sb strings.Builder
		for _, run := range c.Paragraph {
			sb.WriteString(run.Text)
		}
		return sb.String()
	}
	return c.Text
}
