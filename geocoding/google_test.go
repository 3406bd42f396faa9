// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGoogle(t *testing.T, body string) *GoogleMapsGeocoder {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Rome Lazio Italy", r.URL.Query().Get("address"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))
		writeJSON(w, body)
	}))
	t.Cleanup(srv.Close)

	g := NewGoogleMapsGeocoder(testKey, srv.Client())
	g.baseURL = srv.URL

	return g
}

func TestGoogleMapsGeocode(t *testing.T) {
	g := newTestGoogle(t, `{
		"status": "OK",
		"results": [{
			"geometry": {"location": {"lat": 41.9027835, "lng": 12.4963655}, "location_type": "APPROXIMATE"},
			"formatted_address": "Rome, Metropolitan City of Rome Capital, Italy"
		}]
	}`)

	result, err := g.Geocode(context.Background(), "Rome Lazio Italy")
	require.NoError(t, err)

	assert.InDelta(t, 41.9027835, result.Point.Lat, 1e-9)
	assert.InDelta(t, 12.4963655, result.Point.Lng, 1e-9)
	assert.Equal(t, "low", result.Confidence)
	assert.Equal(t, ProviderGoogle, result.Provider)
}

func TestGoogleMapsGeocodeStatuses(t *testing.T) {
	tests := []struct {
		status   string
		wantType ErrorType
	}{
		{"ZERO_RESULTS", ErrorTypeNotFound},
		{"OVER_QUERY_LIMIT", ErrorTypeQuotaExceeded},
		{"REQUEST_DENIED", ErrorTypeInvalidRequest},
		{"UNKNOWN_ERROR", ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			g := newTestGoogle(t, `{"status": "`+tt.status+`", "results": []}`)

			_, err := g.Geocode(context.Background(), "Rome Lazio Italy")
			require.Error(t, err)

			var geoErr *GeocodingError
			require.ErrorAs(t, err, &geoErr)
			assert.Equal(t, tt.wantType, geoErr.Type)
		})
	}
}
