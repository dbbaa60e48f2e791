package services

import (
	"strings"
	"time"

	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/storage"
	"github.com/bhorvath/domain-scraper/utils"
)

// soldPrefix is the literal marker the portal prepends to a sold listing's
// display price.
const soldPrefix = "SOLD - "

// Differ performs the field-by-field change detection between a persisted
// row and its observed listing. Fields are evaluated in a fixed order
// (price, inspection, display price, status) because later checks read
// fields earlier checks mutate, and because the queued comment/history
// ordering should read as a natural narrative.
type Differ struct {
	logger *utils.Logger
	now    func() time.Time
}

// NewDiffer creates a Differ.
func NewDiffer(logger *utils.Logger) *Differ {
	return &Differ{logger: logger, now: time.Now}
}

// Diff mutates the persisted row in place to match the observed listing and
// queues the side effects into muts. It returns true when any watched field
// changed and the row requires a store update.
func (d *Differ) Diff(row *models.ListingRow, observed *models.Listing, muts *MutationSet) bool {
	changed := false
	if d.diffPrice(row, observed, muts) {
		changed = true
	}
	if d.diffInspection(row, observed, muts) {
		changed = true
	}
	if d.diffDisplayPrice(row, observed, muts) {
		changed = true
	}
	if d.diffStatus(row, observed, muts) {
		changed = true
	}
	return changed
}

func (d *Differ) diffPrice(row *models.ListingRow, observed *models.Listing, muts *MutationSet) bool {
	if row.AdvertisedPrice == observed.Price {
		return false
	}

	d.logger.Info("[differ] Price changed for %s", row.Address)

	// The first-ever price change snapshots the original asking price.
	// Initial price is write-once: later changes only move the advertised
	// price.
	if !row.HasInitialPrice() {
		row.InitialPrice = row.AdvertisedPrice
	}

	previous := utils.FormatCurrency(row.AdvertisedPrice)
	row.AdvertisedPrice = observed.Price
	description := "Price changed to " + utils.FormatCurrency(observed.Price)

	now := d.now()
	muts.Comments.Enqueue(models.PendingComment{
		Row:       row.Slot,
		Column:    storage.AddressColumn,
		Timestamp: now,
		Text:      description,
	})
	muts.History.Enqueue(models.PendingHistoryEntry{
		Timestamp:     now,
		Address:       row.Address,
		Description:   description,
		PreviousValue: previous,
	})
	return true
}

func (d *Differ) diffInspection(row *models.ListingRow, observed *models.Listing, muts *MutationSet) bool {
	// Only evaluated when the observed listing advertises a window.
	if observed.Inspection == nil {
		return false
	}

	observedOpen := observed.Inspection.OpenTime
	if sameInspectionTime(row.Inspection, observedOpen) {
		return false
	}

	d.logger.Info("[differ] Inspection time changed for %s", row.Address)

	var previous string
	if !row.Inspection.IsZero() {
		previous = row.Inspection.Format(utils.InspectionLayout)
	}
	row.Inspection = observedOpen

	// Inspection changes are routine; they go to the ledger but not to the
	// row's comment thread.
	muts.History.Enqueue(models.PendingHistoryEntry{
		Timestamp:     d.now(),
		Address:       row.Address,
		Description:   "Inspection " + observedOpen.Format(utils.InspectionLayout),
		PreviousValue: previous,
	})
	return true
}

func (d *Differ) diffDisplayPrice(row *models.ListingRow, observed *models.Listing, muts *MutationSet) bool {
	if row.DisplayPrice == observed.DisplayPrice {
		return false
	}

	d.logger.Info("[differ] Display price changed for %s", row.Address)

	previous := row.DisplayPrice
	row.DisplayPrice = observed.DisplayPrice

	muts.History.Enqueue(models.PendingHistoryEntry{
		Timestamp:     d.now(),
		Address:       row.Address,
		Description:   observed.DisplayPrice,
		PreviousValue: previous,
	})
	return true
}

func (d *Differ) diffStatus(row *models.ListingRow, observed *models.Listing, muts *MutationSet) bool {
	// The transient recentlyUpdated flag must never reach persistence or
	// history; the source cleanses it, but collapse again here so the
	// invariant doesn't depend on the caller.
	status := observed.Status.Collapse()
	if row.Status == status {
		return false
	}

	d.logger.Info("[differ] Status changed for %s: %s -> %s", row.Address, row.Status, status)

	previous := string(row.Status)
	row.Status = status

	now := d.now()
	description := string(status)
	muts.Comments.Enqueue(models.PendingComment{
		Row:       row.Slot,
		Column:    storage.AddressColumn,
		Timestamp: now,
		Text:      description,
	})
	muts.History.Enqueue(models.PendingHistoryEntry{
		Timestamp:     now,
		Address:       row.Address,
		Description:   description,
		PreviousValue: previous,
	})

	switch status {
	case models.StatusSold:
		// The sold price arrives embedded in the display price.
		row.SoldPrice = strings.TrimPrefix(row.DisplayPrice, soldPrefix)
		row.DateSold = now.Format(utils.DateLayout)
		muts.Formats.Enqueue(models.PendingTextFormat{
			Row:    row.Slot,
			Column: storage.AddressColumn,
			Format: models.FormatStrikethrough,
		})
	case models.StatusArchived:
		muts.Formats.Enqueue(models.PendingTextFormat{
			Row:    row.Slot,
			Column: storage.AddressColumn,
			Format: models.FormatStrikethrough,
		})
	}
	return true
}

// sameInspectionTime compares inspection timestamps calendar-aware rather
// than textually, tolerating formatting drift between what was persisted and
// what the portal reports. Sub-minute precision is not persisted.
func sameInspectionTime(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() && b.IsZero()
	}
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}
