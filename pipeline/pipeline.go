// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipeline ties the dataset, the geocoder and the map together.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jcodagnone/filmloc/films"
	"github.com/jcodagnone/filmloc/geocoding"
	"github.com/jcodagnone/filmloc/mapdoc"
	"github.com/jcodagnone/filmloc/observability"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Options configures a run.
type Options struct {
	DataPath   string
	WorldPath  string
	OutputPath string

	Geocoder geocoding.Geocoder
	Metrics  *observability.Metrics

	KeepGoing bool
	NoOpen    bool
	Quiet     bool

	// Open shows the saved map. Defaults to mapdoc.Open.
	Open func(path string) error
}

// Result summarises a run.
type Result struct {
	Year     string
	Output   string
	Movies   int
	Document *mapdoc.Document
	Report   *geocoding.Report
}

// Title returns the page title of the map for year.
func Title(year string) string {
	return "Films of " + year
}

// Run loads the dataset, geocodes the films released in year and saves the
// map to options.OutputPath, opening it unless options.NoOpen is set.
func Run(ctx context.Context, options *Options, year string) (*Result, error) {
	if options.Geocoder == nil {
		return nil, errors.New("pipeline: no geocoder configured")
	}

	start := time.Now()

	db, err := films.OpenDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records, err := films.Load(ctx, db, options.DataPath)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d records from %s", len(records), options.DataPath)

	overlay, err := mapdoc.LoadOverlay(options.WorldPath)
	if err != nil {
		return nil, err
	}

	result, err := BuildDocument(ctx, options, records, overlay, year)
	if err != nil {
		return result, err
	}

	if err := mapdoc.Save(options.OutputPath, result.Document); err != nil {
		return result, err
	}

	result.Output = options.OutputPath

	log.Printf("Map for %s saved to %s with %d of %d films (%d not found, %d failed) in %s",
		year, options.OutputPath, len(result.Report.Points), result.Movies,
		result.Report.Count(geocoding.OutcomeNotFound), result.Report.Count(geocoding.OutcomeFailed),
		time.Since(start).Round(time.Millisecond))

	if options.NoOpen {
		return result, nil
	}

	open := options.Open
	if open == nil {
		open = mapdoc.Open
	}

	if err := open(options.OutputPath); err != nil {
		return result, fmt.Errorf("showing map: %w", err)
	}

	return result, nil
}

// BuildDocument filters records by year, geocodes the normalized
// locations and assembles the map document.
func BuildDocument(
	ctx context.Context,
	options *Options,
	records []films.Record,
	overlay *geojson.FeatureCollection,
	year string,
) (*Result, error) {
	index := films.FilterByYear(records, year)
	result := &Result{Year: year, Movies: len(index)}

	report, err := geocoding.Resolve(ctx, options.Geocoder, index.Normalized(), &geocoding.ResolveOptions{
		KeepGoing: options.KeepGoing,
		Quiet:     options.Quiet,
	})
	result.Report = report

	if err != nil {
		return result, err
	}

	result.Document = mapdoc.Build(Title(year), report.Points, overlay)

	if options.Metrics != nil {
		options.Metrics.MapsRendered.WithLabelValues(year).Inc()
		options.Metrics.MarkersRendered.Observe(float64(len(result.Document.Markers)))
	}

	return result, nil
}
