package domain

import (
	"testing"

	"github.com/bhorvath/domain-scraper/config"
	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/utils"
)

const samplePayload = `{
	"props": {
		"pageProps": {
			"componentProps": {
				"shortlistListings": [
					{
						"id": 100,
						"listingType": "buy",
						"status": "recentlyUpdated",
						"address": {"street": "1 Example St", "suburb": "Exampleton"},
						"features": {"beds": 4, "baths": 2, "parking": 1},
						"displayPrice": "$500,000",
						"price": 500000,
						"datePlaced": "2023-08-14T10:30:00.000",
						"inspection": {"openTime": "2023-09-02T11:00:00.000", "closeTime": "2023-09-02T11:30:00.000"},
						"geoLocation": {"latitude": -33.8, "longtitude": 151.2},
						"url": "/1-example-st-exampleton-100",
						"propertyId": "ABC-100"
					},
					{
						"id": 200,
						"listingType": "sold",
						"status": "sold",
						"address": {"street": "2 Sample Rd", "suburb": "Sampleville"},
						"features": {"beds": 5, "baths": 3, "parking": 2},
						"displayPrice": "SOLD - $610,000",
						"price": 610000,
						"datePlaced": "2023-07-01T09:00:00.000",
						"geoLocation": {"latitude": -33.9, "longtitude": 151.1},
						"url": "/2-sample-rd-sampleville-200",
						"propertyId": "ABC-200"
					}
				]
			}
		}
	}
}`

func TestDecodeShortlist(t *testing.T) {
	listings, err := decodeShortlist(samplePayload)
	if err != nil {
		t.Fatalf("decodeShortlist error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.ID != 100 {
		t.Errorf("id = %d; want 100", first.ID)
	}
	if first.Address.Display() != "1 Example St, Exampleton" {
		t.Errorf("address = %q", first.Address.Display())
	}
	if first.Price != 500000 {
		t.Errorf("price = %v; want 500000", first.Price)
	}
	if first.Inspection == nil {
		t.Fatalf("expected inspection window on first listing")
	}
	if got := first.Inspection.OpenTime.Format(utils.InspectionLayout); got != "02/09/2023 11:00" {
		t.Errorf("inspection open = %q", got)
	}

	second := listings[1]
	if second.Inspection != nil {
		t.Errorf("second listing should have no inspection window")
	}
	if second.DisplayPrice != "SOLD - $610,000" {
		t.Errorf("displayPrice = %q", second.DisplayPrice)
	}
}

func TestDecodeShortlistRejectsMalformedPayload(t *testing.T) {
	if _, err := decodeShortlist("<html>not json</html>"); err == nil {
		t.Errorf("expected error for non-JSON payload")
	}
}

func TestFilterAppliesCriteria(t *testing.T) {
	listings, err := decodeShortlist(samplePayload)
	if err != nil {
		t.Fatalf("decodeShortlist error: %v", err)
	}

	criteria := &models.FilterCriteria{
		ListingTypes: []string{"buy", "sold"},
		Features:     &models.FeatureCriteria{Beds: []int{5}},
	}

	filtered := filter(listings, criteria)
	if len(filtered) != 1 || filtered[0].ID != 200 {
		t.Fatalf("expected only listing 200 to pass, got %d listings", len(filtered))
	}

	if got := filter(listings, nil); len(got) != 2 {
		t.Errorf("nil criteria should pass everything, got %d", len(got))
	}
}

func TestFindChromeBinaryPrefersConfiguredPath(t *testing.T) {
	if got := findChromeBinary("/opt/chrome/chrome"); got != "/opt/chrome/chrome" {
		t.Errorf("findChromeBinary = %q; want configured path", got)
	}
}

func TestCleanseCollapsesStatusAndDropsDuplicates(t *testing.T) {
	s := New(&config.Config{MaxRetries: 1}, utils.NewLogger())

	listings := []*models.Listing{
		{ID: 1, Status: models.StatusRecentlyUpdated},
		{ID: 1, Status: models.StatusLive},
		{ID: 2, Status: models.StatusSold},
	}

	clean := s.cleanse(listings)
	if len(clean) != 2 {
		t.Fatalf("expected 2 listings after dedupe, got %d", len(clean))
	}
	if clean[0].Status != models.StatusLive {
		t.Errorf("recentlyUpdated should collapse to live, got %q", clean[0].Status)
	}
}
