// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jcodagnone/filmloc/films"
	"github.com/jcodagnone/filmloc/mapdoc"
	"github.com/jcodagnone/filmloc/observability"
	"github.com/jcodagnone/filmloc/pipeline"
	"github.com/jcodagnone/filmloc/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the map of any year over HTTP",
	Long: `Loads the dataset once and renders the map of a year on request.

  GET /map/<year>          the map page
  GET /api/films/<year>    geocoding outcome of every film
  GET /api/cells/<year>    film counts per H3 cell (?res=0..15)
  GET /metrics             Prometheus metrics
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(registry)

		g, err := newGeocoder(ctx, metrics)
		if err != nil {
			return err
		}

		records, err := loadRecords(ctx, options.DataPath)
		if err != nil {
			return err
		}

		overlay, err := mapdoc.LoadOverlay(options.WorldPath)
		if err != nil {
			return err
		}

		log.Printf("Loaded %d records from %s", len(records), options.DataPath)

		s := server.New(&server.Config{
			Records: records,
			Overlay: overlay,
			Options: &pipeline.Options{
				Geocoder:  g,
				Metrics:   metrics,
				KeepGoing: options.KeepGoing,
				Quiet:     true,
			},
			Registry: registry,
		})

		return s.Run(ctx, serveAddr)
	},
}

func loadRecords(ctx context.Context, path string) ([]films.Record, error) {
	db, err := films.OpenDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return films.Load(ctx, db, path)
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}
