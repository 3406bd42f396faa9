// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package films loads the film shoot locations dataset and indexes it by year.
package films

import "strings"

const (
	// noDataSentinel marks a missing value in the source dataset.
	noDataSentinel = "NO DATA"

	// markerDelimiter terminates the bracketed corruption marker some
	// locations are prefixed with, e.g. "{{SUSPENDED}}New Orleans".
	markerDelimiter = "}}"
)

// Record is one (movie, year, location) row of the dataset.
type Record struct {
	Movie    string `json:"movie"`
	Year     string `json:"year"`
	Location string `json:"location"`
}

// Fields returns the record values in column order.
func (r Record) Fields() []string {
	return []string{r.Movie, r.Year, r.Location}
}

// HasNoData reports whether any of the values carries the missing-data sentinel.
func HasNoData(fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(f, noDataSentinel) {
			return true
		}
	}

	return false
}

// NormalizeName strips the corruption marker prefix from a location name.
//
//	NormalizeName("{{SUSPENDED}}New Orleans Louisiana USA") == "New Orleans Louisiana USA"
func NormalizeName(s string) string {
	if _, after, found := strings.Cut(s, markerDelimiter); found {
		return after
	}

	return s
}
