// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package mapdoc

// populationBucket colours every population below its upper bound.
type populationBucket struct {
	below int64
	color string
}

// populationBuckets is evaluated in order; the first bucket whose bound is
// above the population wins. Lower bounds are inclusive.
var populationBuckets = []populationBucket{
	{100_000, "#EE2376"},    // pink
	{200_000, "#81DC1A"},    // green
	{1_000_000, "#B6E80E"},  // light green
	{2_000_000, "#5503E5"},  // purple
	{9_000_000, "#E57703"},  // orange
	{15_000_000, "#0EE896"}, // blue
	{20_000_000, "#E112B5"}, // pink
}

// populationTopColor is used for 20 million and above.
const populationTopColor = "#3882EC" // dark blue

// PopulationColor returns the fill colour of a polygon with the given population.
func PopulationColor(population int64) string {
	for _, b := range populationBuckets {
		if population < b.below {
			return b.color
		}
	}

	return populationTopColor
}
