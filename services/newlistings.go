package services

import (
	"context"

	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/storage"
	"github.com/bhorvath/domain-scraper/utils"
)

// NewListingHandler accumulates listings not yet present in the store and
// writes them out in a single batch at the end of the cycle.
type NewListingHandler struct {
	store    storage.TabularStore
	enricher *Enricher
	limiter  *utils.RateLimiter
	logger   *utils.Logger
	queue    []*models.Listing
}

// NewNewListingHandler creates a handler with an empty queue.
func NewNewListingHandler(store storage.TabularStore, enricher *Enricher, limiter *utils.RateLimiter, logger *utils.Logger) *NewListingHandler {
	return &NewListingHandler{
		store:    store,
		enricher: enricher,
		limiter:  limiter,
		logger:   logger,
	}
}

// QueueListing adds a listing to the pending batch.
func (h *NewListingHandler) QueueListing(listing *models.Listing) {
	h.queue = append(h.queue, listing)
}

// QueueLen returns the number of queued listings.
func (h *NewListingHandler) QueueLen() int {
	return len(h.queue)
}

// ClearQueue drops all queued listings.
func (h *NewListingHandler) ClearQueue() {
	h.queue = nil
}

// WriteListings enriches every queued listing and appends them to the store
// in one call. Enrichment is serial and rate limited so the upstream APIs
// see at most one request burst per listing.
func (h *NewListingHandler) WriteListings(ctx context.Context) error {
	if len(h.queue) == 0 {
		h.logger.Info("[new] No new listings to write")
		return nil
	}

	h.logger.Info("[new] Writing %d new listing(s)", len(h.queue))

	rows := make([][]any, 0, len(h.queue))
	for _, listing := range h.queue {
		h.limiter.Wait()
		enriched := h.enricher.Enrich(ctx, listing)
		rows = append(rows, storage.NewListingCells(enriched))
	}

	return h.store.AppendRows(rows)
}
