// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"slices"
)

// ErrMissingKey is returned when a provider has no credential configured.
var ErrMissingKey = errors.New("missing geocoding credential")

// Providers lists the supported provider names.
var Providers = []string{ProviderBing, ProviderGoogle, ProviderMapbox}

// KeyEnvVar returns the environment variable holding the credential of a provider.
func KeyEnvVar(provider string) string {
	switch provider {
	case ProviderGoogle:
		return "GOOGLE_MAPS_API_KEY"
	case ProviderMapbox:
		return "MAPBOX_TOKEN"
	default:
		return "BING_MAPS_KEY"
	}
}

// New creates the geocoder for provider. When key is empty it is taken from
// the provider environment variable; Google additionally falls back to the
// Application Default Credentials.
func New(ctx context.Context, provider, key string, httpClient *http.Client) (Geocoder, error) {
	if !slices.Contains(Providers, provider) {
		return nil, fmt.Errorf("unknown geocoding provider %q (valid: %v)", provider, Providers)
	}

	if key == "" {
		key = os.Getenv(KeyEnvVar(provider))
	}

	if key == "" && provider == ProviderGoogle {
		log.Printf("%s is not set. Attempting to retrieve via ADC...", KeyEnvVar(provider))

		var err error

		key, err = GoogleAPIKeyFromADC(ctx, GoogleKeyDisplayName)
		if err != nil {
			log.Printf("Failed to retrieve API key via ADC: %v", err)
		}
	}

	if key == "" {
		return nil, fmt.Errorf("%w: set --key or %s", ErrMissingKey, KeyEnvVar(provider))
	}

	switch provider {
	case ProviderGoogle:
		return NewGoogleMapsGeocoder(key, httpClient), nil
	case ProviderMapbox:
		return NewMapboxGeocoder(key, httpClient), nil
	default:
		return NewBingGeocoder(key, httpClient), nil
	}
}
