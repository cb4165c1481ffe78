// Package geo resolves free-text addresses to coordinates through a Nominatim-style
// search endpoint.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/civicmap/civicmap-api/models"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// GeocodeError carries the human-readable reason an address could not be resolved
type GeocodeError struct {
	Address string
	Message string
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("could not geocode %q: %s", e.Address, e.Message)
}

// Geocoder resolves a free-text address into coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Location, error)
}

type nominatimGeocoder struct {
	baseURL string
	email   string
	client  *http.Client
}

// NewNominatimGeocoder builds a Geocoder against the given base URL. An empty baseURL
// falls back to the public Nominatim instance; email is sent as the contact parameter
// per the service's usage policy.
func NewNominatimGeocoder(baseURL, email string) Geocoder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &nominatimGeocoder{
		baseURL: baseURL,
		email:   email,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *nominatimGeocoder) Geocode(ctx context.Context, address string) (models.Location, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	if g.email != "" {
		q.Set("email", g.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return models.Location{}, &GeocodeError{Address: address, Message: err.Error()}
	}
	req.Header.Set("User-Agent", "civicmap-api")

	resp, err := g.client.Do(req)
	if err != nil {
		return models.Location{}, &GeocodeError{Address: address, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Location{}, &GeocodeError{Address: address, Message: fmt.Sprintf("geocoding service returned %d", resp.StatusCode)}
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Location{}, &GeocodeError{Address: address, Message: err.Error()}
	}
	if len(results) == 0 {
		return models.Location{}, &GeocodeError{Address: address, Message: "no results for address"}
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Location{}, &GeocodeError{Address: address, Message: "malformed latitude in response"}
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Location{}, &GeocodeError{Address: address, Message: "malformed longitude in response"}
	}

	return models.Location{Lat: lat, Lng: lng}, nil
}
