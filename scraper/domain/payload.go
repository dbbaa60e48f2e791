package domain

import (
	"encoding/json"
	"fmt"

	"github.com/bhorvath/domain-scraper/models"
	"github.com/bhorvath/domain-scraper/utils"
)

// nextData mirrors the slice of the page payload the scraper cares about.
type nextData struct {
	Props struct {
		PageProps struct {
			ComponentProps struct {
				ShortlistListings []listingPayload `json:"shortlistListings"`
			} `json:"componentProps"`
		} `json:"pageProps"`
	} `json:"props"`
}

type listingPayload struct {
	ID          int64  `json:"id"`
	ListingType string `json:"listingType"`
	Status      string `json:"status"`
	Address     struct {
		Street string `json:"street"`
		Suburb string `json:"suburb"`
	} `json:"address"`
	Features struct {
		Beds    int `json:"beds"`
		Baths   int `json:"baths"`
		Parking int `json:"parking"`
	} `json:"features"`
	DisplayPrice string `json:"displayPrice"`
	Price        float64 `json:"price"`
	DatePlaced   string `json:"datePlaced"`
	Inspection   *struct {
		OpenTime  string `json:"openTime"`
		CloseTime string `json:"closeTime"`
	} `json:"inspection"`
	GeoLocation struct {
		Latitude float64 `json:"latitude"`
		// The portal payload misspells the key.
		Longitude float64 `json:"longtitude"`
	} `json:"geoLocation"`
	URL        string `json:"url"`
	PropertyID string `json:"propertyId"`
}

// decodeShortlist parses the raw __NEXT_DATA__ JSON into listings.
func decodeShortlist(raw string) ([]*models.Listing, error) {
	var data nextData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("domain: decode shortlist payload: %w", err)
	}

	payloads := data.Props.PageProps.ComponentProps.ShortlistListings
	listings := make([]*models.Listing, 0, len(payloads))
	for i := range payloads {
		l, err := toListing(&payloads[i])
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func toListing(p *listingPayload) (*models.Listing, error) {
	l := &models.Listing{
		ID:           p.ID,
		ListingType:  p.ListingType,
		Status:       models.ListingStatus(p.Status),
		Address:      models.Address{Street: p.Address.Street, Suburb: p.Address.Suburb},
		Features:     models.Features{Beds: p.Features.Beds, Baths: p.Features.Baths, Parking: p.Features.Parking},
		Price:        p.Price,
		DisplayPrice: p.DisplayPrice,
		GeoLocation:  models.GeoLocation{Latitude: p.GeoLocation.Latitude, Longitude: p.GeoLocation.Longitude},
		URL:          p.URL,
		PropertyID:   p.PropertyID,
	}

	if p.DatePlaced != "" {
		placed, err := utils.ParseListingDate(p.DatePlaced)
		if err != nil {
			return nil, fmt.Errorf("domain: listing %d: bad datePlaced %q: %w", p.ID, p.DatePlaced, err)
		}
		l.DatePlaced = placed
	}

	if p.Inspection != nil && p.Inspection.OpenTime != "" {
		open, err := utils.ParseListingDate(p.Inspection.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("domain: listing %d: bad inspection openTime %q: %w", p.ID, p.Inspection.OpenTime, err)
		}
		window := &models.InspectionWindow{OpenTime: open}
		if p.Inspection.CloseTime != "" {
			closeTime, err := utils.ParseListingDate(p.Inspection.CloseTime)
			if err != nil {
				return nil, fmt.Errorf("domain: listing %d: bad inspection closeTime %q: %w", p.ID, p.Inspection.CloseTime, err)
			}
			window.CloseTime = closeTime
		}
		l.Inspection = window
	}

	return l, nil
}

func filter(listings []*models.Listing, criteria *models.FilterCriteria) []*models.Listing {
	if criteria == nil {
		return listings
	}

	result := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if criteria.Matches(l) {
			result = append(result, l)
		}
	}
	return result
}
