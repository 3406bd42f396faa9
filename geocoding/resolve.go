// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/jcodagnone/filmloc/spatial"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Outcome is the result of resolving one entry.
type Outcome int

const (
	// OutcomeResolved the provider returned a coordinate.
	OutcomeResolved Outcome = iota
	// OutcomeNotFound the provider had no match; the entry is skipped.
	OutcomeNotFound
	// OutcomeFailed the lookup failed (only recorded with KeepGoing).
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// Resolution records what happened to one entry.
type Resolution struct {
	Key     string
	Query   string
	Outcome Outcome
	Result  *GeocodingResult
	Err     error
}

// Report is the result of a Resolve run.
type Report struct {
	// Points holds the coordinates of every resolved entry.
	Points map[string]spatial.Point

	// Resolutions holds one entry per input entry, in processing order.
	Resolutions []Resolution
}

// Count returns the number of resolutions with the given outcome.
func (r *Report) Count(o Outcome) int {
	n := 0

	for _, res := range r.Resolutions {
		if res.Outcome == o {
			n++
		}
	}

	return n
}

// ResolveOptions tunes Resolve.
type ResolveOptions struct {
	// KeepGoing records failed lookups instead of aborting the run.
	KeepGoing bool

	// Progress receives the progress bar. Defaults to stderr when it is a
	// terminal; when nil and stderr is not a terminal a line is logged per
	// entry.
	Progress io.Writer

	// Quiet disables both the progress bar and the per entry log.
	Quiet bool
}

func newProgressBar(n int, options *ResolveOptions) *progressbar.ProgressBar {
	if options.Quiet {
		return nil
	}

	w := options.Progress
	if w == nil {
		if !isatty.IsTerminal(os.Stderr.Fd()) {
			return nil
		}

		w = os.Stderr
	}

	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription("Geocoding"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// geocodeEntry queries g, reporting blank queries and out of range
// coordinates as not found.
func geocodeEntry(ctx context.Context, g Geocoder, query string) (*GeocodingResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &GeocodingError{Type: ErrorTypeNotFound, Message: "empty query"}
	}

	result, err := g.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	if !result.Point.Valid() {
		return nil, &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("%s: coordinate %s out of range for %q", result.Provider, result.Point, query),
		}
	}

	return result, nil
}

// exhausted reports whether err means the provider will refuse every
// further request.
func exhausted(err error) bool {
	return IsRateLimitError(err) || IsQuotaExceededError(err)
}

// Resolve geocodes every entry of entries (key → query) sequentially, in
// key order. Entries the provider cannot resolve are left out of
// Report.Points, as are blank queries, which never reach the provider.
// Any other error aborts the run unless options.KeepGoing is set; rate
// limit and quota errors abort regardless.
func Resolve(ctx context.Context, g Geocoder, entries map[string]string, options *ResolveOptions) (*Report, error) {
	if options == nil {
		options = &ResolveOptions{}
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	report := &Report{
		Points:      make(map[string]spatial.Point, len(entries)),
		Resolutions: make([]Resolution, 0, len(entries)),
	}

	bar := newProgressBar(len(keys), options)

	for _, key := range keys {
		query := entries[key]
		res := Resolution{Key: key, Query: query}

		result, err := geocodeEntry(ctx, g, query)

		switch {
		case err == nil:
			res.Outcome = OutcomeResolved
			res.Result = result
			report.Points[key] = result.Point
		case IsNotFoundError(err):
			res.Outcome = OutcomeNotFound
			res.Err = err
		case options.KeepGoing && ctx.Err() == nil && !exhausted(err):
			res.Outcome = OutcomeFailed
			res.Err = err
		default:
			return report, fmt.Errorf("geocoding %q for %q: %w", query, key, err)
		}

		report.Resolutions = append(report.Resolutions, res)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				return report, fmt.Errorf("updating progress bar for %s: %w", key, err)
			}
		} else if !options.Quiet {
			log.Printf("Geocoding %s (%s) - %s", key, query, res.Outcome)
		}
	}

	return report, nil
}
