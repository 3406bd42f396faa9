// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcodagnone/filmloc/films"
	"github.com/jonboulle/clockwork"
)

// ErrNoYear is returned when the input ends before a valid year was read.
var ErrNoYear = errors.New("no year entered")

const yearPrompt = "Enter the year: "

// PromptYear asks for a year on w until a line read from r is a valid
// year. Only the line terminator is dropped; " 2015" is not a year.
func PromptYear(r io.Reader, w io.Writer, clock clockwork.Clock) (string, error) {
	scanner := bufio.NewScanner(r)

	for {
		if _, err := fmt.Fprint(w, yearPrompt); err != nil {
			return "", fmt.Errorf("writing prompt: %w", err)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading year: %w", err)
			}

			return "", ErrNoYear
		}

		year := strings.TrimSuffix(scanner.Text(), "\r")
		if films.ValidYear(year, clock) {
			return year, nil
		}
	}
}
