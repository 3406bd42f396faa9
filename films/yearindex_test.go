// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package films

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var sampleRecords = []Record{
	{"Betrayal", "2016", "New Orleans Louisiana USA"},
	{"Betrayal", "2016", "Santa Clarita California USA"},
	{"Arrival", "2016/I", "Montreal Quebec Canada"},
	{"Brooklyn", "(2015)", "Brooklyn New York USA"},
	{"Remake", "1999 (2016 remake)", "Rome Lazio Italy"},
	{"Undated", "unknown", "Paris France"},
	{"Short", "216", "Lisbon Portugal"},
}

func TestFilterByYear(t *testing.T) {
	tests := []struct {
		year string
		want YearIndex
	}{
		{
			year: "2016",
			want: YearIndex{
				"Betrayal": "New Orleans Louisiana USA",
				"Arrival":  "Montreal Quebec Canada",
			},
		},
		{
			year: "2015",
			want: YearIndex{"Brooklyn": "Brooklyn New York USA"},
		},
		{
			year: "1999",
			want: YearIndex{"Remake": "Rome Lazio Italy"},
		},
		{
			year: "1850",
			want: YearIndex{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			got := FilterByYear(sampleRecords, tt.year)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterByYear(%q) mismatch (-want +got):\n%s", tt.year, diff)
			}
		})
	}
}

func TestFilterByYearFirstLocationWins(t *testing.T) {
	records := []Record{
		{"Betrayal", "2016", "Santa Clarita California USA"},
		{"Betrayal", "2016", "New Orleans Louisiana USA"},
	}

	got := FilterByYear(records, "2016")
	assert.Equal(t, YearIndex{"Betrayal": "Santa Clarita California USA"}, got)
}

func TestFilterByYearEmptyInput(t *testing.T) {
	got := FilterByYear(nil, "2016")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestYearIndexNormalized(t *testing.T) {
	idx := YearIndex{
		"Betrayal": "{{SUSPENDED}}New Orleans Louisiana USA",
		"Arrival":  "Montreal Quebec Canada",
	}

	got := idx.Normalized()
	assert.Equal(t, YearIndex{
		"Betrayal": "New Orleans Louisiana USA",
		"Arrival":  "Montreal Quebec Canada",
	}, got)
	assert.Equal(t, "{{SUSPENDED}}New Orleans Louisiana USA", idx["Betrayal"], "raw index is untouched")
}
