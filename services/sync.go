package services

import (
	"context"

	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/storage"
	"github.com/bhorvath/domain-scraper/utils"
)

// Syncer runs one full synchronization cycle: load the persisted grid, match
// it against the observed shortlist, and hand the partitions to the two
// listing handlers.
type Syncer struct {
	store    storage.TabularStore
	new      *NewListingHandler
	existing *ExistingListingHandler
	logger   *utils.Logger
}

// NewSyncer wires the coordinator.
func NewSyncer(store storage.TabularStore, newHandler *NewListingHandler, existingHandler *ExistingListingHandler, logger *utils.Logger) *Syncer {
	return &Syncer{
		store:    store,
		new:      newHandler,
		existing: existingHandler,
		logger:   logger,
	}
}

// UpdateListings synchronizes one observed snapshot into the store.
func (s *Syncer) UpdateListings(ctx context.Context, observed []*models.Listing) error {
	grid, err := s.store.ReadAllRows()
	if err != nil {
		return err
	}

	if len(grid) == 0 {
		s.logger.Info("[sync] Empty store, writing header row")
		if err := s.store.AppendRows([][]any{storage.Header()}); err != nil {
			return err
		}
	}

	persisted := s.parseRows(grid)
	result := MatchListings(persisted, observed)
	s.logger.Info("[sync] Matched %d observed listing(s): %d new, %d existing",
		len(observed), len(result.New), len(result.Existing))

	for _, l := range result.New {
		s.new.QueueListing(l)
	}
	for _, pair := range result.Existing {
		s.existing.QueueListing(pair.Row, pair.Observed)
	}

	if err := s.writeNew(ctx); err != nil {
		return err
	}
	return s.processExisting()
}

func (s *Syncer) writeNew(ctx context.Context) error {
	defer s.new.ClearQueue()
	return s.new.WriteListings(ctx)
}

func (s *Syncer) processExisting() error {
	defer s.existing.ClearQueue()
	return s.existing.ProcessListings()
}

// parseRows reads the persisted grid back into listing rows. The header row
// and blank rows are skipped; a malformed row is logged and skipped rather
// than aborting the cycle, so one hand-mangled cell cannot wedge the sync.
func (s *Syncer) parseRows(grid [][]string) []*models.ListingRow {
	var rows []*models.ListingRow
	for i, cells := range grid {
		if i == 0 {
			continue
		}
		if isBlankRow(cells) {
			continue
		}
		row, err := storage.ParseRow(i+1, cells)
		if err != nil {
			s.logger.Warn("[sync] Skipping unreadable row %d: %v", i+1, err)
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
