package services

import (
	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/storage"
	"github.com/bhorvath/domain-scraper/utils"
)

// ExistingListingHandler accumulates matched row/listing pairs and flushes
// all of a cycle's updates in fixed batches: row cells, then comments, then
// history, then text formats.
type ExistingListingHandler struct {
	store  storage.TabularStore
	differ *Differ
	logger *utils.Logger
	queue  []MatchedPair
}

// NewExistingListingHandler creates a handler with an empty queue.
func NewExistingListingHandler(store storage.TabularStore, differ *Differ, logger *utils.Logger) *ExistingListingHandler {
	return &ExistingListingHandler{
		store:  store,
		differ: differ,
		logger: logger,
	}
}

// QueueListing adds a matched pair to the pending batch.
func (h *ExistingListingHandler) QueueListing(row *models.ListingRow, observed *models.Listing) {
	h.queue = append(h.queue, MatchedPair{Row: row, Observed: observed})
}

// QueueLen returns the number of queued pairs.
func (h *ExistingListingHandler) QueueLen() int {
	return len(h.queue)
}

// ClearQueue drops all queued pairs.
func (h *ExistingListingHandler) ClearQueue() {
	h.queue = nil
}

// ProcessListings diffs each queued pair and flushes the resulting mutations.
// When nothing changed the store is not touched at all.
func (h *ExistingListingHandler) ProcessListings() error {
	muts := NewMutationSet()
	defer muts.Clear()

	updates := make(map[int][]any)
	for _, pair := range h.queue {
		if h.differ.Diff(pair.Row, pair.Observed, muts) {
			updates[pair.Row.Slot] = storage.UpdateCells(pair.Row)
		}
	}

	if len(updates) == 0 && muts.Empty() {
		h.logger.Info("[existing] No changes detected across %d listing(s)", len(h.queue))
		return nil
	}

	h.logger.Info("[existing] Updating %d listing(s)", len(updates))

	if len(updates) > 0 {
		if err := h.store.BatchUpdateRows(updates); err != nil {
			return err
		}
	}
	if err := muts.Comments.Flush(h.store); err != nil {
		return err
	}
	if err := muts.History.Flush(h.store); err != nil {
		return err
	}
	return muts.Formats.Flush(h.store)
}
