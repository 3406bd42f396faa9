// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/jcodagnone/filmloc/geocoding"
	"github.com/jcodagnone/filmloc/observability"
	"github.com/jcodagnone/filmloc/pipeline"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

type rootOptions struct {
	DataPath   string
	WorldPath  string
	OutputPath string
	EnvFile    string

	Provider string
	Key      string
	Timeout  time.Duration

	NoOpen        bool
	KeepGoing     bool
	TraceHTTP     bool
	TraceHTTPBody bool
}

var options = &rootOptions{}

var rootCmd = &cobra.Command{
	Use:   "filmloc",
	Short: "maps where the films of a year were shot",
	Long: `
filmloc asks for a year, geocodes the shooting location of every film of that
year found in the dataset, and writes an interactive map with a marker per
film, a world population overlay and a cluster layer.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return loadEnvFile(options.EnvFile)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		year, err := PromptYear(cmd.InOrStdin(), cmd.OutOrStdout(), clockwork.NewRealClock())
		if err != nil {
			return err
		}

		g, err := newGeocoder(cmd.Context(), nil)
		if err != nil {
			return err
		}

		_, err = pipeline.Run(cmd.Context(), &pipeline.Options{
			DataPath:   options.DataPath,
			WorldPath:  options.WorldPath,
			OutputPath: options.OutputPath,
			Geocoder:   g,
			KeepGoing:  options.KeepGoing,
			NoOpen:     options.NoOpen,
		}, year)

		return err
	},
}

// loadEnvFile reads credentials from path when it exists. Variables already
// set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// newGeocoder builds the geocoder selected by the flags, instrumented when
// metrics is set.
func newGeocoder(ctx context.Context, metrics *observability.Metrics) (geocoding.Geocoder, error) {
	client := geocoding.NewHTTPClient(&geocoding.ClientOptions{
		UserAgent:           fmt.Sprintf("filmloc/%s (+https://github.com/jcodagnone/filmloc)", Version),
		Timeout:             options.Timeout,
		EnableHTTPTrace:     options.TraceHTTP,
		EnableHTTPBodyTrace: options.TraceHTTPBody,
	})

	g, err := geocoding.New(ctx, options.Provider, options.Key, client)
	if err != nil {
		return nil, err
	}

	return geocoding.WithMetrics(g, metrics, options.Provider), nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&options.DataPath, "data", "./docs/locations.csv", "films dataset (CSV with movie, year, location columns)")
	flags.StringVar(&options.WorldPath, "world", "./docs/world.json", "world population GeoJSON")
	flags.StringVar(&options.OutputPath, "output", "./docs/index.html", "where to write the map")
	flags.StringVar(&options.EnvFile, "env-file", ".env", "file to read credentials from, if present")
	flags.StringVar(&options.Provider, "provider", geocoding.ProviderBing,
		fmt.Sprintf("geocoding provider %v", geocoding.Providers))
	flags.StringVar(&options.Key, "key", "",
		"provider credential (defaults to BING_MAPS_KEY, GOOGLE_MAPS_API_KEY or MAPBOX_TOKEN)")
	flags.DurationVar(&options.Timeout, "timeout", 10*time.Second, "timeout of each geocoding request")
	flags.BoolVar(&options.KeepGoing, "keep-going", false, "record failed lookups instead of aborting")
	flags.BoolVar(&options.TraceHTTP, "trace-http", false, "trace provider HTTP requests to stderr")
	flags.BoolVar(&options.TraceHTTPBody, "trace-http-body", false, "trace provider HTTP requests including bodies")

	rootCmd.Flags().BoolVar(&options.NoOpen, "no-open", false, "do not open the map once written")
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
