// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"time"

	"github.com/jcodagnone/filmloc/observability"
)

// instrumentedGeocoder records request outcomes and latencies of another geocoder.
type instrumentedGeocoder struct {
	inner    Geocoder
	metrics  *observability.Metrics
	provider string
}

// WithMetrics decorates g so that every request is accounted in metrics.
func WithMetrics(g Geocoder, metrics *observability.Metrics, provider string) Geocoder {
	if metrics == nil {
		return g
	}

	return &instrumentedGeocoder{inner: g, metrics: metrics, provider: provider}
}

func (g *instrumentedGeocoder) Geocode(ctx context.Context, query string) (*GeocodingResult, error) {
	start := time.Now()
	result, err := g.inner.Geocode(ctx, query)
	g.metrics.GeocodeAPIDuration.WithLabelValues(g.provider).Observe(time.Since(start).Seconds())

	outcome := OutcomeResolved.String()
	if err != nil {
		outcome = OutcomeFailed.String()
		if IsNotFoundError(err) {
			outcome = OutcomeNotFound.String()
		}
	}

	g.metrics.GeocodeRequests.WithLabelValues(g.provider, outcome).Inc()

	return result, err
}
