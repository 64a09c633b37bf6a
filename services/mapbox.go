package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

const mapboxBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

type GeocodingFeature struct {
	PlaceName string     `json:"place_name"`
	Center    [2]float64 `json:"center"` // [lng, lat]
	Relevance float64    `json:"relevance"`
}

type GeocodingResponse struct {
	Features []GeocodingFeature `json:"features"`
}

// Geocoder resolves free-form addresses to coordinates through the Mapbox places API.
type Geocoder struct {
	Token   string
	BaseURL string
	Client  *http.Client
}

func NewGeocoder(token string) *Geocoder {
	return &Geocoder{
		Token:   token,
		BaseURL: mapboxBaseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// BestCoordinates picks the feature with the highest relevance.
func BestCoordinates(body io.Reader) (lat, lng float64, err error) {
	var response GeocodingResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return 0, 0, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Features) == 0 {
		return 0, 0, errors.New("no results found")
	}

	best := response.Features[0]
	for _, feature := range response.Features {
		if feature.Relevance > best.Relevance {
			best = feature
		}
	}

	return best.Center[1], best.Center[0], nil
}

func (g *Geocoder) Lookup(ctx context.Context, address string) (lat, lng float64, err error) {
	apiURL := fmt.Sprintf("%s/%s.json?access_token=%s&limit=5",
		g.BaseURL, url.PathEscape(address), url.QueryEscape(g.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return BestCoordinates(resp.Body)
}
