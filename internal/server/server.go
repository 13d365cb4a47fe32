// Package server exposes the density model over HTTP. Every request builds
// its own parameter snapshot; nothing is shared between requests.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"irradiance-map.klederson.com/internal/emitter"
	"irradiance-map.klederson.com/internal/export"
	"irradiance-map.klederson.com/internal/grid"
)

// Server holds the catalog and the defaults each request starts from.
type Server struct {
	catalog emitter.Catalog
	base    emitter.Params
	log     zerolog.Logger
	metrics *Collector
	router  *mux.Router
}

// New builds a Server and its routes. metrics may be nil.
func New(cat emitter.Catalog, base emitter.Params, log zerolog.Logger, metrics *Collector) *Server {
	s := &Server{
		catalog: cat,
		base:    base,
		log:     log,
		metrics: metrics,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(hlog.NewHandler(s.log))
	s.router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		route := routeName(r)
		s.metrics.Observe(route, status, d.Seconds())
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Int("size", size).
			Dur("took", d).
			Msg("request")
	}))

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/presets", s.handlePresets).Methods(http.MethodGet)
	api.HandleFunc("/grids", s.handleGrids).Methods(http.MethodGet)
	api.HandleFunc("/density", s.handleDensity).Methods(http.MethodGet)

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type presetView struct {
	Name      string                 `json:"name"`
	Label     string                 `json:"label"`
	Intensity float64                `json:"intensity"`
	Profile   []emitter.ProfilePoint `json:"profile"`
}

type presetsResponse struct {
	Types   []string     `json:"types"`
	Presets []presetView `json:"presets"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	resp := presetsResponse{Types: s.catalog.Types()}
	for _, p := range s.catalog.Presets() {
		resp.Presets = append(resp.Presets, presetView{
			Name:      p.Name,
			Label:     p.Label,
			Intensity: p.Intensity,
			Profile:   p.Profile.Points(),
		})
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleGrids(w http.ResponseWriter, r *http.Request) {
	p, m, ok := s.model(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, export.Report{
		Type:    p.Type,
		Profile: m.Profile.Points(),
		Grid:    grid.ComputeDefault(m),
	})
}

type densityResponse struct {
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
	Density  float64 `json:"density"`
}

func (s *Server) handleDensity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	distance, err := floatParam(q, "distance")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	angle, err := floatParam(q, "angle")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	_, m, ok := s.model(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, densityResponse{
		Distance: distance,
		Angle:    angle,
		Density:  m.Density(distance, angle),
	})
}

// model resolves the request's parameters, writing a 400 on failure.
func (s *Server) model(w http.ResponseWriter, r *http.Request) (emitter.Params, emitter.Model, bool) {
	p, err := paramsFromQuery(s.catalog, s.base, r.URL.Query())
	if err == nil {
		var m emitter.Model
		if m, err = p.Model(s.catalog); err == nil {
			return p, m, true
		}
	}
	s.writeError(w, r, err)
	return p, emitter.Model{}, false
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *emitter.ValidationError
	if errors.As(err, &verr) {
		s.metrics.Reject(verr.Field)
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: verr.Field})
		return
	}
	hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// writeJSON encodes body before committing the status, so an encoding
// failure still reaches the client as a 500.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encoding response")
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "encoding response: " + err.Error()})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("writing response")
	}
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
