package models

import "time"

// ListingStatus is the lifecycle state a listing reports on the portal.
type ListingStatus string

const (
	StatusNew             ListingStatus = "new"
	StatusLive            ListingStatus = "live"
	StatusSold            ListingStatus = "sold"
	StatusLeased          ListingStatus = "leased"
	StatusArchived        ListingStatus = "archived"
	StatusRecentlyUpdated ListingStatus = "recentlyUpdated"
)

// Collapse folds the transient recentlyUpdated flag back to live so it never
// reaches comparison or persistence.
func (s ListingStatus) Collapse() ListingStatus {
	if s == StatusRecentlyUpdated {
		return StatusLive
	}
	return s
}

// Address identifies a listed property.
type Address struct {
	Street string
	Suburb string
}

// Display renders the address the way it is written to the store.
func (a Address) Display() string {
	return a.Street + ", " + a.Suburb
}

// Features holds the listing's headline property features.
type Features struct {
	Beds    int
	Baths   int
	Parking int
}

// GeoLocation is the listing's coordinates.
type GeoLocation struct {
	Latitude  float64
	Longitude float64
}

// InspectionWindow is an advertised open-for-inspection slot.
type InspectionWindow struct {
	OpenTime  time.Time
	CloseTime time.Time
}

// Listing is one observed shortlist record for one sync cycle. It is treated
// as immutable once fetched.
type Listing struct {
	ID           int64
	ListingType  string
	Status       ListingStatus
	Address      Address
	Features     Features
	Price        float64
	DisplayPrice string
	DatePlaced   time.Time
	Inspection   *InspectionWindow
	GeoLocation  GeoLocation
	URL          string
	PropertyID   string
}

// EnrichedListing is a Listing plus the externally derived fields. Lookups
// that failed carry the enrichment error sentinel instead of a value.
type EnrichedListing struct {
	Listing
	Distance  string
	Land      string
	Direction string
}
