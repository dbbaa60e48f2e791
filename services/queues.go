package services

import (
	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/storage"
	"github.com/bhorvath/domain-scraper/utils"
)

// MutationSet accumulates the side effects one diff pass produces. A fresh
// set is created per pass and discarded afterwards, so no queued mutation can
// leak into a later cycle.
type MutationSet struct {
	Comments CommentQueue
	History  HistoryQueue
	Formats  FormatQueue
}

// NewMutationSet creates an empty mutation set.
func NewMutationSet() *MutationSet {
	return &MutationSet{}
}

// Clear empties all three queues regardless of flush outcome.
func (m *MutationSet) Clear() {
	m.Comments.Clear()
	m.History.Clear()
	m.Formats.Clear()
}

// Empty reports whether no mutation has been queued.
func (m *MutationSet) Empty() bool {
	return m.Comments.Len() == 0 && m.History.Len() == 0 && m.Formats.Len() == 0
}

// CommentQueue buffers inline annotations. Flushing is a read-modify-write
// per row: the existing note text is fetched first and the new comment is
// appended on a new line. All reads complete before the single batched
// write, so two comments addressed to the same row within one flush are
// composed against the same starting text and the later one wins. That is
// the accepted race of the append protocol.
type CommentQueue struct {
	items []models.PendingComment
}

func (q *CommentQueue) Enqueue(c models.PendingComment) {
	q.items = append(q.items, c)
}

func (q *CommentQueue) Len() int { return len(q.items) }

func (q *CommentQueue) Clear() { q.items = nil }

// Flush composes each queued comment against the row's current annotation
// and writes the results in one batch.
func (q *CommentQueue) Flush(store storage.TabularStore) error {
	if len(q.items) == 0 {
		return nil
	}

	notes := make([]models.Annotation, 0, len(q.items))
	for _, item := range q.items {
		existing, err := store.Annotation(item.Row)
		if err != nil {
			return err
		}
		text := item.Timestamp.Format(utils.DateLayout) + ": " + item.Text
		if existing != "" {
			text = existing + "\n" + text
		}
		notes = append(notes, models.Annotation{
			Row:    item.Row,
			Column: item.Column,
			Text:   text,
		})
	}

	return store.InsertAnnotations(notes)
}

// HistoryQueue buffers append-only history ledger entries. Flushing is a
// single batched append; no prior read is required.
type HistoryQueue struct {
	items []models.PendingHistoryEntry
}

func (q *HistoryQueue) Enqueue(e models.PendingHistoryEntry) {
	q.items = append(q.items, e)
}

func (q *HistoryQueue) Len() int { return len(q.items) }

func (q *HistoryQueue) Clear() { q.items = nil }

func (q *HistoryQueue) Flush(store storage.TabularStore) error {
	if len(q.items) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(q.items))
	for _, e := range q.items {
		rows = append(rows, []any{
			e.Timestamp.Format(utils.HistoryTimestampLayout),
			e.Address,
			e.Description,
			e.PreviousValue,
		})
	}

	return store.AppendHistory(rows)
}

// FormatQueue buffers cell format mutations. Flushing is a single batched
// call and is idempotent from the caller's perspective.
type FormatQueue struct {
	items []models.PendingTextFormat
}

func (q *FormatQueue) Enqueue(f models.PendingTextFormat) {
	q.items = append(q.items, f)
}

func (q *FormatQueue) Len() int { return len(q.items) }

func (q *FormatQueue) Clear() { q.items = nil }

func (q *FormatQueue) Flush(store storage.TabularStore) error {
	if len(q.items) == 0 {
		return nil
	}
	return store.ApplyTextFormats(q.items)
}
