// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package films

import (
	"regexp"
)

var yearRegex = regexp.MustCompile(`[0-9]{4}`)

// YearIndex maps a movie name to the location where it was shot.
type YearIndex map[string]string

// Normalized returns a copy of the index with every location passed
// through NormalizeName.
func (idx YearIndex) Normalized() YearIndex {
	ret := make(YearIndex, len(idx))
	for movie, location := range idx {
		ret[movie] = NormalizeName(location)
	}

	return ret
}

// extractYear returns the first run of four digits in s, if any.
func extractYear(s string) (string, bool) {
	y := yearRegex.FindString(s)

	return y, y != ""
}

// FilterByYear builds the index of movies shot in year. The year text of a
// record may carry extra text ("2016/I", "(2016)"); only its first
// four-digit run is compared. When a movie appears more than once, the
// first location wins.
func FilterByYear(records []Record, year string) YearIndex {
	idx := make(YearIndex)

	for _, r := range records {
		y, ok := extractYear(r.Year)
		if !ok || y != year {
			continue
		}

		if _, exists := idx[r.Movie]; !exists {
			idx[r.Movie] = r.Location
		}
	}

	return idx
}
