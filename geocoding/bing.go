// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jcodagnone/filmloc/spatial"
)

const (
	// ProviderBing identifies the Bing Maps geocoder.
	ProviderBing = "bing"

	bingBaseURL = "https://dev.virtualearth.net/REST/v1/Locations"
)

// BingGeocoder uses the Bing Maps REST Locations API.
type BingGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewBingGeocoder creates a new Bing Maps geocoder.
func NewBingGeocoder(apiKey string, httpClient *http.Client) *BingGeocoder {
	if httpClient == nil {
		httpClient = NewHTTPClient(nil)
	}

	return &BingGeocoder{
		apiKey:     apiKey,
		baseURL:    bingBaseURL,
		httpClient: httpClient,
	}
}

type bingResponse struct {
	StatusCode        int    `json:"statusCode"`
	StatusDescription string `json:"statusDescription"`
	ResourceSets      []struct {
		EstimatedTotal int `json:"estimatedTotal"`
		Resources      []struct {
			Name  string `json:"name"`
			Point struct {
				Coordinates []float64 `json:"coordinates"` // [lat, lng]
			} `json:"point"`
			Address struct {
				FormattedAddress string `json:"formattedAddress"`
			} `json:"address"`
			Confidence string `json:"confidence"` // High, Medium, Low
		} `json:"resources"`
	} `json:"resourceSets"`
}

func (g *BingGeocoder) Geocode(ctx context.Context, query string) (*GeocodingResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("key", g.apiKey)
	params.Set("maxResults", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating bing request: %w", err)
	}

	var bResp bingResponse
	if err := getJSON(g.httpClient, req, ProviderBing, &bResp); err != nil {
		return nil, err
	}

	if len(bResp.ResourceSets) == 0 || len(bResp.ResourceSets[0].Resources) == 0 {
		return nil, errNotFound(ProviderBing, query)
	}

	result := bResp.ResourceSets[0].Resources[0]
	if len(result.Point.Coordinates) != 2 {
		return nil, errNotFound(ProviderBing, query)
	}

	displayName := result.Address.FormattedAddress
	if displayName == "" {
		displayName = result.Name
	}

	return &GeocodingResult{
		Point: spatial.Point{
			Lat: result.Point.Coordinates[0],
			Lng: result.Point.Coordinates[1],
		},
		Confidence:  strings.ToLower(result.Confidence),
		Provider:    ProviderBing,
		DisplayName: displayName,
	}, nil
}
