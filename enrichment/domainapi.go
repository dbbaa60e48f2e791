package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const domainAPIBaseURL = "https://api.domain.com.au"

// DomainAPI looks up property details from the Domain property API.
type DomainAPI struct {
	key    string
	client *http.Client
}

// NewDomainAPI creates a client with the given API key.
func NewDomainAPI(key string) *DomainAPI {
	return &DomainAPI{
		key:    key,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type propertyDetails struct {
	AreaSize float64 `json:"areaSize"`
}

// LandSize returns the property's land area as a display string, e.g. "650m2".
func (d *DomainAPI) LandSize(ctx context.Context, propertyID string) (string, error) {
	details, err := d.propertyDetails(ctx, propertyID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%gm2", details.AreaSize), nil
}

func (d *DomainAPI) propertyDetails(ctx context.Context, propertyID string) (*propertyDetails, error) {
	endpoint := fmt.Sprintf("%s/v1/properties/%s?api_key=%s",
		domainAPIBaseURL, url.PathEscape(propertyID), url.QueryEscape(d.key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("domain api: build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("domain api: property %s: %w", propertyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("domain api: property %s: unexpected status %s", propertyID, resp.Status)
	}

	var details propertyDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("domain api: decode property %s: %w", propertyID, err)
	}
	return &details, nil
}
