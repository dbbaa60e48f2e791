package models

// FilterCriteria narrows the fetched shortlist to listings of interest. Each
// field lists acceptable alternatives: an empty list matches unconditionally,
// a populated list matches when any one value matches. Nested criteria recurse
// the same rule against the corresponding nested listing fields. A zero
// FilterCriteria matches everything.
type FilterCriteria struct {
	ListingTypes []string
	Statuses     []ListingStatus
	Features     *FeatureCriteria
	Address      *AddressCriteria
}

// FeatureCriteria filters on the listing's feature set.
type FeatureCriteria struct {
	Beds    []int
	Baths   []int
	Parking []int
}

// AddressCriteria filters on the listing's address.
type AddressCriteria struct {
	Streets []string
	Suburbs []string
}

// Matches reports whether the listing satisfies every populated criterion.
func (c *FilterCriteria) Matches(l *Listing) bool {
	if c == nil {
		return true
	}
	if !matchAny(c.ListingTypes, l.ListingType) {
		return false
	}
	if !matchAny(c.Statuses, l.Status) {
		return false
	}
	if !c.Features.matches(l.Features) {
		return false
	}
	return c.Address.matches(l.Address)
}

func (c *FeatureCriteria) matches(f Features) bool {
	if c == nil {
		return true
	}
	return matchAny(c.Beds, f.Beds) &&
		matchAny(c.Baths, f.Baths) &&
		matchAny(c.Parking, f.Parking)
}

func (c *AddressCriteria) matches(a Address) bool {
	if c == nil {
		return true
	}
	return matchAny(c.Streets, a.Street) && matchAny(c.Suburbs, a.Suburb)
}

// matchAny implements the match-any-in-list rule. An absent criterion (empty
// list) matches unconditionally.
func matchAny[T comparable](alternatives []T, value T) bool {
	if len(alternatives) == 0 {
		return true
	}
	for _, alt := range alternatives {
		if alt == value {
			return true
		}
	}
	return false
}
