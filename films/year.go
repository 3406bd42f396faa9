// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package films

import (
	"regexp"
	"strconv"

	"github.com/jonboulle/clockwork"
)

var exactYearRegex = regexp.MustCompile(`^[0-9]{4}$`)

// ValidYear reports whether s is exactly four ASCII digits and not after
// the current year of clock.
func ValidYear(s string, clock clockwork.Clock) bool {
	if !exactYearRegex.MatchString(s) {
		return false
	}

	y, err := strconv.Atoi(s)
	if err != nil {
		return false
	}

	return y <= clock.Now().Year()
}
