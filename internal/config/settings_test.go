package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "", s.LogFile)
	assert.Equal(t, "POWER", s.LED.Type)
	assert.Equal(t, 1, s.LED.Count)
	assert.Zero(t, s.LED.Intensity)
	assert.Equal(t, 22.22, s.Attenuation.Environment)
	assert.Equal(t, 4.0, s.Attenuation.Windshield)
	assert.Equal(t, "127.0.0.1:8350", s.Serve.Addr)
	assert.Empty(t, s.Presets)
}

func TestLoad_WithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "irradiance.yaml")
	cfg := `
logLevel: debug
led:
  type: TSAL6400
  count: 6
attenuation:
  windshield: 0
presets:
  - name: WIDE
    label: Wide angle
    intensity: 900
    angles: [0, 30, 60]
    factors: [1, 0.7, 0.4]
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	s, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "TSAL6400", s.LED.Type)
	assert.Equal(t, 6, s.LED.Count)
	assert.Zero(t, s.Attenuation.Windshield)
	assert.Equal(t, 22.22, s.Attenuation.Environment)
	require.Len(t, s.Presets, 1)
	assert.Equal(t, "WIDE", s.Presets[0].Name)
	assert.Equal(t, []float64{0, 30, 60}, s.Presets[0].Angles)
	assert.Equal(t, []float64{1, 0.7, 0.4}, s.Presets[0].Factors)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("IRRADIANCE_LED_COUNT", "12")
	t.Setenv("IRRADIANCE_SERVE_ADDR", ":9000")

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 12, s.LED.Count)
	assert.Equal(t, ":9000", s.Serve.Addr)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), "/nonexistent/irradiance.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
