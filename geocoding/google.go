// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jcodagnone/filmloc/spatial"
)

const (
	// ProviderGoogle identifies the Google Maps geocoder.
	ProviderGoogle = "google"

	googleBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
)

// GoogleMapsGeocoder uses Google Maps Geocoding API.
type GoogleMapsGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleMapsGeocoder creates a new Google Maps geocoder.
func NewGoogleMapsGeocoder(apiKey string, httpClient *http.Client) *GoogleMapsGeocoder {
	if httpClient == nil {
		httpClient = NewHTTPClient(nil)
	}

	return &GoogleMapsGeocoder{
		apiKey:     apiKey,
		baseURL:    googleBaseURL,
		httpClient: httpClient,
	}
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, etc.
	ErrorMessage string `json:"error_message"`
}

func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, query string) (*GeocodingResult, error) {
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating google maps request: %w", err)
	}

	var gmResp googleMapsResponse
	if err := getJSON(g.httpClient, req, ProviderGoogle, &gmResp); err != nil {
		return nil, err
	}

	switch gmResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, errNotFound(ProviderGoogle, query)
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return nil, &GeocodingError{
			Type:    ErrorTypeQuotaExceeded,
			Message: "google maps status: " + gmResp.Status,
		}
	case "INVALID_REQUEST", "REQUEST_DENIED":
		return nil, &GeocodingError{
			Type:    ErrorTypeInvalidRequest,
			Message: fmt.Sprintf("google maps status: %s %s", gmResp.Status, gmResp.ErrorMessage),
		}
	default:
		return nil, &GeocodingError{
			Type:    ErrorTypeUnknown,
			Message: "google maps status: " + gmResp.Status,
		}
	}

	if len(gmResp.Results) == 0 {
		return nil, errNotFound(ProviderGoogle, query)
	}

	result := gmResp.Results[0]

	// Determine confidence based on location_type
	confidence := "low"

	switch result.Geometry.LocationType {
	case "ROOFTOP", "RANGE_INTERPOLATED":
		confidence = "high"
	case "GEOMETRIC_CENTER":
		confidence = "medium"
	case "APPROXIMATE":
		confidence = "low"
	}

	return &GeocodingResult{
		Point: spatial.Point{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		},
		Confidence:  confidence,
		Provider:    ProviderGoogle,
		DisplayName: result.FormattedAddress,
	}, nil
}
