package models

import "time"

// ListingRow is the store's view of a listing. Slot is the 1-based row
// position in the sheet and is stable for the row's entire lifetime; every
// queued side effect addresses the row through it.
type ListingRow struct {
	Slot int

	ID           int64
	Address      string
	Distance     string
	Land         string
	Beds         int
	Baths        int
	// AdvertisedPrice tracks the listing's current asking price.
	// InitialPrice is set once, on the first price change, and is never
	// overwritten thereafter.
	AdvertisedPrice float64
	InitialPrice    float64
	DateListed      string
	SoldPrice       string
	DateSold        string
	URL             string
	LastSoldPrice   string
	LastSoldDate    string
	Status          ListingStatus
	Direction       string
	DisplayPrice    string
	// Inspection is the persisted open-for-inspection time. Zero when the
	// listing has never advertised one.
	Inspection time.Time
	Comments   string
}

// HasInitialPrice reports whether the write-once initial price has been
// populated.
func (r *ListingRow) HasInitialPrice() bool {
	return r.InitialPrice != 0
}
