// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jcodagnone/filmloc/films"
	"github.com/jcodagnone/filmloc/utils/htmlutils"
	"github.com/spf13/cobra"
)

// isTerminal reports whether f is a character device. When the check
// fails we say that it isn't.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugNormalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Show the geocoding query derived from each location",
	Long: `Reads one location per line and prints it followed by the text sent to the
geocoding provider.

$ echo '{{SUSPENDED}}Montreal, Quebec, Canada' | filmloc debug normalize
{{SUSPENDED}}Montreal, Quebec, Canada	Montreal, Quebec, Canada
	`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := os.Stdin
		if isTerminal(input) {
			fmt.Fprintln(os.Stderr, "Enter locations to normalize, one per line…")
		}

		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(input)

		for scanner.Scan() {
			location := scanner.Text()
			fmt.Fprintf(out, "%s\t%s\n", location, films.NormalizeName(location))
		}

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		return nil
	},
}

var debugGeocodeCmd = &cobra.Command{
	Use:   "geocode <query>",
	Short: "Geocode a single query with the configured provider",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGeocoder(cmd.Context(), nil)
		if err != nil {
			return err
		}

		result, err := g.Geocode(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(result)
	},
}

var debugInspectCmd = &cobra.Command{
	Use:   "inspect [map.html]",
	Short: "Summarise a saved map page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := options.OutputPath
		if len(args) > 0 {
			path = args[0]
		}

		f, err := os.Open(path) // #nosec G304 - path is provided by the operator
		if err != nil {
			return fmt.Errorf("opening map: %w", err)
		}
		defer f.Close()

		root, err := htmlutils.AsNode(f)
		if err != nil {
			return err
		}

		var title strings.Builder
		if n := htmlutils.FindElement(root, "title"); n != nil {
			htmlutils.Node2string(n, &title)
		}

		markers := "?"
		if n := htmlutils.FindByID(root, "map"); n != nil {
			markers = htmlutils.Attr(n, "data-markers")
		}

		sources, _ := htmlutils.Scripts(root)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "title\t%s\n", title.String())
		fmt.Fprintf(out, "markers\t%s\n", markers)

		for _, src := range sources {
			fmt.Fprintf(out, "script\t%s\n", src)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugInspectCmd)
	debugCmd.AddCommand(debugNormalizeCmd)
	debugCmd.AddCommand(debugGeocodeCmd)
}
