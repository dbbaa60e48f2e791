package services

import "github.com/bhorvath/domain-scraper/models"

// MatchedPair joins a persisted row with the observed listing that shares its
// identifier.
type MatchedPair struct {
	Row      *models.ListingRow
	Observed *models.Listing
}

// MatchResult partitions one observed snapshot against the persisted set.
// Every observed listing lands in exactly one of the two groups; persisted
// rows with no observed counterpart are left untouched.
type MatchResult struct {
	New      []*models.Listing
	Existing []MatchedPair
}

// MatchListings pairs observed listings with persisted rows by listing
// identifier, the only join key between the two sets. Duplicate identifiers
// in the persisted set are not expected but not rejected: the last row wins.
func MatchListings(persisted []*models.ListingRow, observed []*models.Listing) MatchResult {
	index := make(map[int64]*models.ListingRow, len(persisted))
	for _, row := range persisted {
		index[row.ID] = row
	}

	var result MatchResult
	for _, l := range observed {
		if row, ok := index[l.ID]; ok {
			result.Existing = append(result.Existing, MatchedPair{Row: row, Observed: l})
		} else {
			result.New = append(result.New, l)
		}
	}
	return result
}
