// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package observability holds the Prometheus metrics of the map pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "filmloc"

// Metrics holds the Prometheus counters and histograms for geocoding and map rendering.
type Metrics struct {
	GeocodeRequests    *prometheus.CounterVec   // labels: provider, outcome={resolved,not_found,error}
	GeocodeAPIDuration *prometheus.HistogramVec // labels: provider
	MapsRendered       *prometheus.CounterVec   // labels: year
	MarkersRendered    prometheus.Histogram
}

// NewMetrics creates the metrics and registers them with reg. A nil reg
// leaves them unregistered, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"provider"}),
		MapsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maps_rendered_total",
			Help:      "Map documents rendered by year.",
		}, []string{"year"}),
		MarkersRendered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "markers_per_map",
			Help:      "Number of markers in each rendered map.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.GeocodeRequests,
			m.GeocodeAPIDuration,
			m.MapsRendered,
			m.MarkersRendered,
		)
	}

	return m
}
