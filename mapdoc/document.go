// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package mapdoc assembles the interactive Leaflet map of film locations.
package mapdoc

import (
	"sort"

	"github.com/jcodagnone/filmloc/spatial"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Layer names shown in the layer control.
const (
	MarkersLayer    = "Locations with names"
	PopulationLayer = "Population"
	ClustersLayer   = "Clusters by the area"
)

var (
	defaultCenter = spatial.Point{Lat: 45, Lng: 3}
	defaultZoom   = 2
)

// Marker is a named point of the marker layer.
type Marker struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Layers holds the layer control labels.
type Layers struct {
	Markers    string `json:"markers"`
	Population string `json:"population"`
	Clusters   string `json:"clusters"`
}

// Document is everything the map template needs.
type Document struct {
	Title  string        `json:"title"`
	Center spatial.Point `json:"center"`
	Zoom   int           `json:"zoom"`
	Layers Layers        `json:"layers"`

	// Markers has one entry per film, sorted by name.
	Markers []Marker `json:"markers"`

	// Population is the overlay, each feature carrying its fill colour.
	Population *geojson.FeatureCollection `json:"-"`

	// Clusters are [lat, lng, index] triples; the clustering itself happens
	// in the browser.
	Clusters [][3]float64 `json:"clusters"`
}

// Build assembles the document for the given film coordinates. A nil
// overlay renders an empty population layer.
func Build(title string, points map[string]spatial.Point, overlay *geojson.FeatureCollection) *Document {
	names := make([]string, 0, len(points))
	for name := range points {
		names = append(names, name)
	}

	sort.Strings(names)

	if overlay == nil {
		overlay = &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	}

	doc := &Document{
		Title:  title,
		Center: defaultCenter,
		Zoom:   defaultZoom,
		Layers: Layers{
			Markers:    MarkersLayer,
			Population: PopulationLayer,
			Clusters:   ClustersLayer,
		},
		Markers:    make([]Marker, 0, len(names)),
		Population: overlay,
		Clusters:   make([][3]float64, 0, len(names)),
	}

	for i, name := range names {
		p := points[name]
		doc.Markers = append(doc.Markers, Marker{Name: name, Lat: p.Lat, Lng: p.Lng})
		doc.Clusters = append(doc.Clusters, [3]float64{p.Lat, p.Lng, float64(i)})
	}

	return doc
}
