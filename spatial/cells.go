// Copyright 2025 The ChapaUY Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"sort"

	"github.com/uber/h3-go/v4"
)

// CellCount is the number of points that fall in one H3 cell.
type CellCount struct {
	Cell   string `json:"cell"`
	Center Point  `json:"center"`
	Count  int    `json:"count"`
}

// CellCounts groups points into H3 cells of the given resolution. The
// result is sorted by descending count, then by cell id.
func CellCounts(points []Point, res int) ([]CellCount, error) {
	if res < 0 || res > 15 {
		return nil, fmt.Errorf("invalid h3 resolution %d", res)
	}

	counts := make(map[h3.Cell]int)

	for _, p := range points {
		cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), res)
		if err != nil {
			return nil, fmt.Errorf("error converting %s to h3 cell at res %d: %w", p, res, err)
		}

		counts[cell]++
	}

	ret := make([]CellCount, 0, len(counts))

	for cell, n := range counts {
		center, err := cell.LatLng()
		if err != nil {
			return nil, fmt.Errorf("computing center of cell %s: %w", cell, err)
		}

		ret = append(ret, CellCount{
			Cell:   cell.String(),
			Center: Point{Lat: center.Lat, Lng: center.Lng},
			Count:  n,
		})
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Count != ret[j].Count {
			return ret[i].Count > ret[j].Count
		}

		return ret[i].Cell < ret[j].Cell
	})

	return ret, nil
}
