// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package server publishes the film maps over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/filmloc/films"
	"github.com/jcodagnone/filmloc/geocoding"
	"github.com/jcodagnone/filmloc/mapdoc"
	"github.com/jcodagnone/filmloc/pipeline"
	"github.com/jcodagnone/filmloc/spatial"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const defaultCellResolution = 3

// Config holds what the server needs to answer requests.
type Config struct {
	Records  []films.Record
	Overlay  *geojson.FeatureCollection
	Options  *pipeline.Options
	Registry *prometheus.Registry
	Clock    clockwork.Clock
}

// Server renders maps on demand. Every request geocodes again; requests
// are served one at a time so the provider never sees concurrent lookups.
type Server struct {
	records  []films.Record
	overlay  *geojson.FeatureCollection
	options  *pipeline.Options
	registry *prometheus.Registry
	clock    clockwork.Clock

	mu sync.Mutex
}

// New returns a server over the given records.
func New(cfg *Config) *Server {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Server{
		records:  cfg.Records,
		overlay:  cfg.Overlay,
		options:  cfg.Options,
		registry: registry,
		clock:    clock,
	}
}

// Handler returns the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	r.GET("/map/:year", s.mapView)
	r.GET("/api/films/:year", s.listFilms)
	r.GET("/api/cells/:year", s.listCells)

	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		log.Printf("Serving maps on http://%s/map/<year>", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}

		return nil
	}
}

// result geocodes the films of year and builds their document.
func (s *Server) result(ctx context.Context, year string) (*pipeline.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pipeline.BuildDocument(ctx, s.options, s.records, s.overlay, year)
}

// yearResult validates the :year parameter and resolves it. It writes the
// error response itself and returns nil when the request cannot proceed.
func (s *Server) yearResult(ctx *gin.Context) *pipeline.Result {
	year := ctx.Param("year")
	if !films.ValidYear(year, s.clock) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid year %q", year)})

		return nil
	}

	r, err := s.result(ctx.Request.Context(), year)
	if err != nil {
		log.Printf("Building map for %s: %v", year, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return nil
	}

	return r
}

func (s *Server) healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "records": len(s.records)})
}

func (s *Server) mapView(ctx *gin.Context) {
	r := s.yearResult(ctx)
	if r == nil {
		return
	}

	var buf bytes.Buffer
	if err := mapdoc.Render(&buf, r.Document); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// FilmItem is one entry of the films listing.
type FilmItem struct {
	Movie    string  `json:"movie"`
	Query    string  `json:"query"`
	Outcome  string  `json:"outcome"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
	Provider string  `json:"provider,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// FilmsResponse is the body of /api/films/:year.
type FilmsResponse struct {
	Year     string     `json:"year"`
	Resolved int        `json:"resolved"`
	Films    []FilmItem `json:"films"`
}

func (s *Server) listFilms(ctx *gin.Context) {
	r := s.yearResult(ctx)
	if r == nil {
		return
	}

	resp := FilmsResponse{
		Year:     r.Year,
		Resolved: len(r.Report.Points),
		Films:    make([]FilmItem, 0, len(r.Report.Resolutions)),
	}

	for _, res := range r.Report.Resolutions {
		item := FilmItem{Movie: res.Key, Query: res.Query, Outcome: res.Outcome.String()}
		if res.Result != nil {
			item.Lat = res.Result.Point.Lat
			item.Lng = res.Result.Point.Lng
			item.Provider = res.Result.Provider
		}

		if res.Err != nil && res.Outcome == geocoding.OutcomeFailed {
			item.Error = res.Err.Error()
		}

		resp.Films = append(resp.Films, item)
	}

	ctx.JSON(http.StatusOK, resp)
}

func (s *Server) listCells(ctx *gin.Context) {
	res := defaultCellResolution

	if v := ctx.Query("res"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid resolution %q", v)})

			return
		}

		res = n
	}

	r := s.yearResult(ctx)
	if r == nil {
		return
	}

	points := make([]spatial.Point, 0, len(r.Document.Markers))
	for _, m := range r.Document.Markers {
		points = append(points, spatial.Point{Lat: m.Lat, Lng: m.Lng})
	}

	cells, err := spatial.CellCounts(points, res)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, cells)
}
