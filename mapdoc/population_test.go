// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package mapdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopulationColor(t *testing.T) {
	tests := []struct {
		population int64
		want       string
	}{
		{0, "#EE2376"},
		{50_000, "#EE2376"},
		{99_999, "#EE2376"},
		{100_000, "#81DC1A"},
		{199_999, "#81DC1A"},
		{200_000, "#B6E80E"},
		{1_000_000, "#5503E5"},
		{2_000_000, "#E57703"},
		{9_000_000, "#0EE896"},
		{15_000_000, "#E112B5"},
		{19_999_999, "#E112B5"},
		{20_000_000, "#3882EC"},
		{25_000_000, "#3882EC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PopulationColor(tt.population), "population %d", tt.population)
	}
}
