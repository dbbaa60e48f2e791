package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const directionsURL = "https://maps.googleapis.com/maps/api/directions/json"

var whitespace = regexp.MustCompile(`\s`)

// MapsAPI queries the Google Maps directions API for travel distances from a
// fixed origin address.
type MapsAPI struct {
	key    string
	origin string
	client *http.Client
}

// NewMapsAPI creates a client with the given API key and origin address.
func NewMapsAPI(key, originAddress string) *MapsAPI {
	return &MapsAPI{
		key:    key,
		origin: originAddress,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type directionsResponse struct {
	Routes []struct {
		Legs []struct {
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
	Status string `json:"status"`
}

// Distance returns the driving distance from the origin to the destination
// as the API's display text with whitespace stripped, e.g. "12.3km".
func (m *MapsAPI) Distance(ctx context.Context, destination string) (string, error) {
	params := url.Values{}
	params.Set("origin", m.origin)
	params.Set("destination", destination)
	params.Set("key", m.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		directionsURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("maps api: build request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("maps api: directions to %q: %w", destination, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("maps api: directions to %q: unexpected status %s", destination, resp.Status)
	}

	var directions directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&directions); err != nil {
		return "", fmt.Errorf("maps api: decode directions: %w", err)
	}

	if len(directions.Routes) == 0 || len(directions.Routes[0].Legs) == 0 {
		return "", fmt.Errorf("maps api: no route to %q (status %s)", destination, directions.Status)
	}

	return whitespace.ReplaceAllString(directions.Routes[0].Legs[0].Distance.Text, ""), nil
}
