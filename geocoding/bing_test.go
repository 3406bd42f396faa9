// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jcodagnone/filmloc/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-key"

const bingNewOrleans = `{
  "statusCode": 200,
  "statusDescription": "OK",
  "resourceSets": [{
    "estimatedTotal": 1,
    "resources": [{
      "name": "New Orleans, LA",
      "point": {"type": "Point", "coordinates": [29.9536991119385, -90.077751159668]},
      "address": {"formattedAddress": "New Orleans, LA"},
      "confidence": "High"
    }]
  }]
}`

const bingEmpty = `{"statusCode":200,"resourceSets":[{"estimatedTotal":0,"resources":[]}]}`

func newTestBing(t *testing.T, handler http.HandlerFunc) *BingGeocoder {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewBingGeocoder(testKey, srv.Client())
	g.baseURL = srv.URL

	return g
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestBingGeocode(t *testing.T) {
	g := newTestBing(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "New Orleans Louisiana USA", r.URL.Query().Get("query"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))
		assert.Equal(t, "1", r.URL.Query().Get("maxResults"))
		writeJSON(w, bingNewOrleans)
	})

	result, err := g.Geocode(context.Background(), "New Orleans Louisiana USA")
	require.NoError(t, err)

	assert.Equal(t, spatial.Point{Lat: 29.9536991119385, Lng: -90.077751159668}, result.Point)
	assert.Equal(t, "high", result.Confidence)
	assert.Equal(t, ProviderBing, result.Provider)
	assert.Equal(t, "New Orleans, LA", result.DisplayName)
}

func TestBingGeocodeNoResults(t *testing.T) {
	g := newTestBing(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, bingEmpty)
	})

	_, err := g.Geocode(context.Background(), "Nowhere at all")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestBingGeocodeUnauthorized(t *testing.T) {
	g := newTestBing(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"statusCode":401,"statusDescription":"Unauthorized"}`))
	})

	_, err := g.Geocode(context.Background(), "Paris")
	require.Error(t, err)
	assert.False(t, IsNotFoundError(err))
	assert.True(t, IsQuotaExceededError(err))
	assert.Contains(t, err.Error(), "401")
}

func TestBingGeocodeRateLimited(t *testing.T) {
	g := newTestBing(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := g.Geocode(context.Background(), "Paris")
	require.Error(t, err)
	assert.True(t, IsRateLimitError(err))
}

// Betrayal resolves to the provider coordinate verbatim.
func TestResolveBetrayal(t *testing.T) {
	g := newTestBing(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "New Orleans Louisiana USA" {
			writeJSON(w, bingNewOrleans)

			return
		}

		writeJSON(w, bingEmpty)
	})

	report, err := Resolve(context.Background(), g, map[string]string{
		"Betrayal": "New Orleans Louisiana USA",
	}, &ResolveOptions{Quiet: true})
	require.NoError(t, err)

	assert.Equal(t, map[string]spatial.Point{
		"Betrayal": {Lat: 29.9536991119385, Lng: -90.077751159668},
	}, report.Points)
}
