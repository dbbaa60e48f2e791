package models

import "testing"

func TestFilterCriteriaMatchAnyWithNested(t *testing.T) {
	criteria := &FilterCriteria{
		ListingTypes: []string{"buy", "sold"},
		Features:     &FeatureCriteria{Beds: []int{5}},
	}

	match := &Listing{ListingType: "sold", Features: Features{Beds: 5}}
	if !criteria.Matches(match) {
		t.Errorf("expected listingType=sold beds=5 to match %+v", criteria)
	}

	reject := &Listing{ListingType: "sold", Features: Features{Beds: 4}}
	if criteria.Matches(reject) {
		t.Errorf("expected beds=4 to be rejected by beds=[5]")
	}
}

func TestFilterCriteriaEmptyMatchesEverything(t *testing.T) {
	listings := []*Listing{
		{ListingType: "buy"},
		{ListingType: "rent", Features: Features{Beds: 2}},
	}

	var nilCriteria *FilterCriteria
	empty := &FilterCriteria{}

	for _, l := range listings {
		if !nilCriteria.Matches(l) {
			t.Errorf("nil criteria rejected %+v", l)
		}
		if !empty.Matches(l) {
			t.Errorf("empty criteria rejected %+v", l)
		}
	}
}

func TestFilterCriteriaAbsentKeyMatchesUnconditionally(t *testing.T) {
	criteria := &FilterCriteria{Features: &FeatureCriteria{Beds: []int{3}}}

	l := &Listing{ListingType: "anything", Features: Features{Beds: 3, Baths: 9}}
	if !criteria.Matches(l) {
		t.Errorf("criteria without listingType should not filter on it")
	}
}

func TestFilterCriteriaSingleAlternative(t *testing.T) {
	criteria := &FilterCriteria{ListingTypes: []string{"buy"}}

	if !criteria.Matches(&Listing{ListingType: "buy"}) {
		t.Errorf("single-value list must match on that value")
	}
	if criteria.Matches(&Listing{ListingType: "sold"}) {
		t.Errorf("single-value list must reject other values")
	}
}

func TestStatusCollapse(t *testing.T) {
	tests := []struct {
		in   ListingStatus
		want ListingStatus
	}{
		{StatusRecentlyUpdated, StatusLive},
		{StatusLive, StatusLive},
		{StatusSold, StatusSold},
		{StatusArchived, StatusArchived},
	}

	for _, tt := range tests {
		if got := tt.in.Collapse(); got != tt.want {
			t.Errorf("Collapse(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
