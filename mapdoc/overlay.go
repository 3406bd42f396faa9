// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package mapdoc

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/twpayne/go-geom/encoding/geojson"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	// PopulationProperty is the feature property holding the population.
	PopulationProperty = "POP2005"

	// FillColorProperty is the feature property the map styles polygons with.
	FillColorProperty = "fillColor"
)

// LoadOverlay reads the population GeoJSON file at path. The file may start
// with a UTF-8 byte order mark.
func LoadOverlay(path string) (*geojson.FeatureCollection, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("opening overlay: %w", err)
	}
	defer f.Close()

	return ReadOverlay(f)
}

// ReadOverlay decodes a population GeoJSON document and sets the fill
// colour of every feature from its population.
func ReadOverlay(r io.Reader) (*geojson.FeatureCollection, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())

	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, fmt.Errorf("reading overlay: %w", err)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing overlay GeoJSON: %w", err)
	}

	for i, feature := range fc.Features {
		population, err := featurePopulation(feature)
		if err != nil {
			return nil, fmt.Errorf("overlay feature %d: %w", i, err)
		}

		feature.Properties[FillColorProperty] = PopulationColor(population)
	}

	return &fc, nil
}

func featurePopulation(feature *geojson.Feature) (int64, error) {
	v, ok := feature.Properties[PopulationProperty]
	if !ok {
		return 0, fmt.Errorf("missing %s property", PopulationProperty)
	}

	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%s is not a number: %v", PopulationProperty, v)
	}

	switch {
	case n >= math.MaxInt64:
		return math.MaxInt64, nil
	case n <= math.MinInt64:
		return math.MinInt64, nil
	}

	return int64(n), nil
}
