package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

func TestDefaultIsReferenceScenario(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	m, err := cfg.Model()
	require.NoError(t, err)
	assert.InDelta(t, 10.45, m.Price(pricing.Call), 0.1)
	assert.Equal(t, pricing.DefaultSolverOptions(), cfg.Solver)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "scenario.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 105.0, cfg.Strike)
	assert.Equal(t, 0.5, cfg.Expiry)
	assert.Equal(t, 0.25, cfg.Volatility)
	assert.Equal(t, 0.0, cfg.Dividend) // absent, keeps default
	assert.Equal(t, pricing.SolverOptions{MaxIterations: 50, Tolerance: 1e-8}, cfg.Solver)
	assert.Equal(t, GridConfig{From: 80, To: 120, Step: 10}, cfg.Grid)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("spot: [1, 2"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvVerbosity, "3")
	t.Setenv(EnvFormat, "CSV")
	t.Setenv(EnvRate, "-0.005")
	t.Setenv(EnvDividend, "0.015")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 3, cfg.Verbosity)
	assert.Equal(t, FormatCSV, cfg.Format)
	assert.Equal(t, -0.005, cfg.Rate)
	assert.Equal(t, 0.015, cfg.Dividend)
}

func TestApplyEnvIgnoresBlank(t *testing.T) {
	t.Setenv(EnvRate, "  ")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 0.05, cfg.Rate)
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv(EnvVerbosity, "loud")

	cfg := Default()
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvVerbosity)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PRICER_DIVIDEND=0.0125\n"), 0644))

	// t.Setenv registers the restore; the value itself is cleared for godotenv
	t.Setenv(EnvDividend, "")
	require.NoError(t, os.Unsetenv(EnvDividend))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "0.0125", os.Getenv(EnvDividend))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 0.0125, cfg.Dividend)
}

func TestLoadEnvFileMissingIsFine(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	assert.NoError(t, LoadEnvFile(""))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"format", func(c *Config) { c.Format = "xml" }},
		{"negative iterations", func(c *Config) { c.Solver.MaxIterations = -1 }},
		{"zero tolerance", func(c *Config) { c.Solver.Tolerance = 0 }},
		{"zero step", func(c *Config) { c.Grid.Step = 0 }},
		{"inverted grid", func(c *Config) { c.Grid.From, c.Grid.To = 120, 80 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestModelValidates(t *testing.T) {
	cfg := Default()
	cfg.Volatility = 0

	_, err := cfg.Model()
	assert.True(t, errors.Is(err, pricing.ErrInvalidParameter))
}
