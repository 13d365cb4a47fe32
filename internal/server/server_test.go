package server

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irradiance-map.klederson.com/internal/emitter"
	"irradiance-map.klederson.com/internal/export"
)

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics, err := NewCollector(reg)
	require.NoError(t, err)

	cat := emitter.DefaultCatalog()
	return New(cat, emitter.DefaultParams(cat), zerolog.Nop(), metrics), reg
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestPresets(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/presets")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[presetsResponse](t, rec)
	assert.Equal(t, []string{"POWER", "TSAL6400", "custom"}, resp.Types)
	require.Len(t, resp.Presets, 2)
	assert.Equal(t, 2500.0, resp.Presets[0].Intensity)
	assert.Len(t, resp.Presets[1].Profile, 6)
}

func TestGrids_Default(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/grids")
	require.Equal(t, http.StatusOK, rec.Code)

	r := decode[export.Report](t, rec)
	assert.Equal(t, "POWER", r.Type)
	assert.Len(t, r.Grid.CoarseDistances, 11)
	assert.Len(t, r.Grid.FineDistances, 51)
	require.Len(t, r.Grid.Table, 6)
	assert.Len(t, r.Grid.Heatmap[5], 51)
}

func TestGrids_PresetResetsIntensity(t *testing.T) {
	s, _ := newTestServer(t)
	cat := emitter.DefaultCatalog()

	r := decode[export.Report](t, get(t, s, "/api/grids?type=tsal6400&count=3"))
	assert.Equal(t, "TSAL6400", r.Type)

	p := emitter.DefaultParams(cat)
	p, err := p.WithType(cat, "TSAL6400")
	require.NoError(t, err)
	p.Count = 3
	m, err := p.Model(cat)
	require.NoError(t, err)
	assert.InDelta(t, m.Density(2, 20), r.Grid.Table[2][2], 1e-9)
}

func TestGrids_Custom(t *testing.T) {
	s, _ := newTestServer(t)

	r := decode[export.Report](t, get(t, s, "/api/grids?type=custom&custom=0:1,10:abc,20:0.5"))
	assert.Equal(t, emitter.TypeCustom, r.Type)
	require.Len(t, r.Profile, 6)
	assert.Equal(t, 1.0, r.Profile[0].Factor)
	assert.Equal(t, 0.0, r.Profile[1].Factor)
	assert.Equal(t, 0.5, r.Profile[2].Factor)

	// Angles absent from the profile evaluate to zero.
	for _, v := range r.Grid.Table[3] {
		assert.Zero(t, v)
	}
	assert.Greater(t, r.Grid.Table[0][1], 0.0)
}

func TestGrids_Rejects(t *testing.T) {
	cases := map[string]string{
		"/api/grids?count=0":            "count",
		"/api/grids?count=two":          "count",
		"/api/grids?intensity=-5":       "intensity",
		"/api/grids?intensity=x":        "intensity",
		"/api/grids?env=-1":             "environment",
		"/api/grids?env=abc":            "environment",
		"/api/grids?windshield=abc":     "windshield",
		"/api/grids?type=bogus":         "type",
		"/api/grids?custom=10":          "custom",
		"/api/grids?custom=x:1":         "custom",
		"/api/density?angle=0":          "distance",
		"/api/density?distance=1&angle": "angle",
		"/api/density?distance=NaN":     "distance",
	}
	s, _ := newTestServer(t)
	for target, field := range cases {
		t.Run(target, func(t *testing.T) {
			rec := get(t, s, target)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, field, decode[errorResponse](t, rec).Field)
		})
	}
}

func TestOverflowingIntensityRejected(t *testing.T) {
	s, _ := newTestServer(t)

	for _, target := range []string{
		"/api/grids?intensity=1e304&count=20",
		"/api/density?distance=0&angle=0&intensity=1e304",
	} {
		rec := get(t, s, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		resp := decode[errorResponse](t, rec)
		assert.Equal(t, "intensity", resp.Field)
		assert.Contains(t, resp.Error, "overflows")
	}
}

func TestWriteJSON_EncodingFailure(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/density", nil)

	s.writeJSON(rec, req, http.StatusOK, densityResponse{Density: math.Inf(1)})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, decode[errorResponse](t, rec).Error, "encoding response")
}

func TestDensity(t *testing.T) {
	s, _ := newTestServer(t)
	cat := emitter.DefaultCatalog()
	m, err := emitter.DefaultParams(cat).Model(cat)
	require.NoError(t, err)

	rec := get(t, s, "/api/density?distance=1.5&angle=30&env=0")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[densityResponse](t, rec)
	assert.Equal(t, 1.5, resp.Distance)
	assert.InDelta(t, m.Density(1.5, 30), resp.Density, 1e-9)

	resp = decode[densityResponse](t, get(t, s, "/api/density?distance=-3&angle=0"))
	assert.InDelta(t, m.Density(0, 0), resp.Density, 1e-9)
}

func TestMetrics(t *testing.T) {
	s, reg := newTestServer(t)

	get(t, s, "/api/presets")
	get(t, s, "/api/grids?count=0")

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["irradiance_http_requests_total"])
	assert.True(t, names["irradiance_http_request_duration_seconds"])
	assert.True(t, names["irradiance_rejected_params_total"])

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `irradiance_http_requests_total{code="400",route="/api/grids"} 1`)
}

func TestNewCollector_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewCollector(reg)
	require.NoError(t, err)
	b, err := NewCollector(reg)
	require.NoError(t, err)
	assert.Same(t, a.Requests, b.Requests)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/nope").Code)
}
