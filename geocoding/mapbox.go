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
	// ProviderMapbox identifies the Mapbox geocoder.
	ProviderMapbox = "mapbox"

	mapboxBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"
)

// MapboxGeocoder uses the Mapbox forward geocoding API.
type MapboxGeocoder struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewMapboxGeocoder creates a new Mapbox geocoder.
func NewMapboxGeocoder(token string, httpClient *http.Client) *MapboxGeocoder {
	if httpClient == nil {
		httpClient = NewHTTPClient(nil)
	}

	return &MapboxGeocoder{
		token:      token,
		baseURL:    mapboxBaseURL,
		httpClient: httpClient,
	}
}

type mapboxResponse struct {
	Features []struct {
		Center    []float64 `json:"center"` // [lng, lat]
		PlaceName string    `json:"place_name"`
		Relevance float64   `json:"relevance"`
	} `json:"features"`
}

func (g *MapboxGeocoder) Geocode(ctx context.Context, query string) (*GeocodingResult, error) {
	u := fmt.Sprintf("%s/%s.json", g.baseURL, url.PathEscape(query))
	params := url.Values{
		"access_token": {g.token},
		"limit":        {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating mapbox request: %w", err)
	}

	var mbResp mapboxResponse
	if err := getJSON(g.httpClient, req, ProviderMapbox, &mbResp); err != nil {
		return nil, err
	}

	if len(mbResp.Features) == 0 || len(mbResp.Features[0].Center) != 2 {
		return nil, errNotFound(ProviderMapbox, query)
	}

	f := mbResp.Features[0]

	confidence := "low"

	switch {
	case f.Relevance >= 0.9:
		confidence = "high"
	case f.Relevance >= 0.6:
		confidence = "medium"
	}

	return &GeocodingResult{
		Point: spatial.Point{
			Lat: f.Center[1],
			Lng: f.Center[0],
		},
		Confidence:  confidence,
		Provider:    ProviderMapbox,
		DisplayName: f.PlaceName,
	}, nil
}
