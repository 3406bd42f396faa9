// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocoding resolves free-text place names to coordinates using
// third-party geocoding providers.
package geocoding

import (
	"context"

	"github.com/jcodagnone/filmloc/spatial"
)

// GeocodingResult represents a geocoding result from any provider.
type GeocodingResult struct {
	Point       spatial.Point `json:"point"`
	Confidence  string        `json:"confidence"` // high, medium, low
	Provider    string        `json:"provider"`
	DisplayName string        `json:"display_name"`
}

// Geocoder interface for different geocoding providers.
//
// Implementations return an error of type ErrorTypeNotFound when the
// provider has no match for the query.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*GeocodingResult, error)
}
