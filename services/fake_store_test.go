package services

import (
	"github.com/bhorvath/domain-scraper/models"
)

// fakeStore records every call so tests can assert on write ordering and
// payloads without a real workbook.
type fakeStore struct {
	grid        [][]string
	annotations map[int]string

	appended    [][]any
	updated     map[int][]any
	inserted    []models.Annotation
	history     [][]any
	formats     []models.PendingTextFormat
	callOrder   []string
	readErr     error
	appendErr   error
	updateErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{annotations: make(map[int]string)}
}

func (s *fakeStore) ReadAllRows() ([][]string, error) {
	s.callOrder = append(s.callOrder, "read")
	return s.grid, s.readErr
}

func (s *fakeStore) AppendRows(rows [][]any) error {
	s.callOrder = append(s.callOrder, "append")
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, rows...)
	return nil
}

func (s *fakeStore) BatchUpdateRows(rows map[int][]any) error {
	s.callOrder = append(s.callOrder, "update")
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.updated == nil {
		s.updated = make(map[int][]any)
	}
	for k, v := range rows {
		s.updated[k] = v
	}
	return nil
}

func (s *fakeStore) Annotation(row int) (string, error) {
	s.callOrder = append(s.callOrder, "annotation")
	return s.annotations[row], nil
}

func (s *fakeStore) InsertAnnotations(notes []models.Annotation) error {
	s.callOrder = append(s.callOrder, "insert-annotations")
	s.inserted = append(s.inserted, notes...)
	for _, n := range notes {
		s.annotations[n.Row] = n.Text
	}
	return nil
}

func (s *fakeStore) AppendHistory(rows [][]any) error {
	s.callOrder = append(s.callOrder, "append-history")
	s.history = append(s.history, rows...)
	return nil
}

func (s *fakeStore) ApplyTextFormats(formats []models.PendingTextFormat) error {
	s.callOrder = append(s.callOrder, "apply-formats")
	s.formats = append(s.formats, formats...)
	return nil
}
