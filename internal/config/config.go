// Package config loads pricing scenarios.
//
// Values are layered: built-in defaults, then an optional YAML scenario file,
// then PRICER_* environment variables (a .env file may seed them). Command
// line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Environment variables read by ApplyEnv.
const (
	EnvVerbosity = "PRICER_VERBOSITY"
	EnvFormat    = "PRICER_FORMAT"
	EnvRate      = "PRICER_RATE"
	EnvDividend  = "PRICER_DIVIDEND"
)

// DefaultEnvFile is loaded when present.
const DefaultEnvFile = ".env"

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Config describes one pricing scenario plus solver and output settings.
type Config struct {
	Spot       float64 `yaml:"spot"`
	Strike     float64 `yaml:"strike"`
	Expiry     float64 `yaml:"expiry"`     // years
	Rate       float64 `yaml:"rate"`       // decimal
	Volatility float64 `yaml:"volatility"` // decimal; 0 with closes_file set means estimate it
	Dividend   float64 `yaml:"dividend"`   // decimal

	ClosesFile     string  `yaml:"closes_file,omitempty"`
	PeriodsPerYear float64 `yaml:"periods_per_year,omitempty"`

	Solver pricing.SolverOptions `yaml:"solver"`
	Grid   GridConfig            `yaml:"grid"`

	Verbosity int    `yaml:"verbosity"` // 0=errors,1=info,2=debug,3=trace
	Format    string `yaml:"format"`    // table, json or csv
}

// GridConfig bounds the spot sensitivity sweep.
type GridConfig struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	Step float64 `yaml:"step"`
}

// Default returns the reference scenario: an at-the-money one-year option
// with 5% rate and 20% volatility.
func Default() Config {
	return Config{
		Spot:       100,
		Strike:     100,
		Expiry:     1,
		Rate:       0.05,
		Volatility: 0.2,
		Dividend:   0,
		Solver:     pricing.DefaultSolverOptions(),
		Grid:       GridConfig{From: 90, To: 110, Step: 5},
		Verbosity:  1,
		Format:     FormatTable,
	}
}

// Load returns Default() overlaid with the YAML file at path. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFile seeds the process environment from a dotenv file. A missing
// file is not an error; variables already set are kept.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s file: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from PRICER_* variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup(EnvVerbosity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbosity, err)
		}
		c.Verbosity = n
	}
	if v, ok := lookup(EnvFormat); ok {
		c.Format = strings.ToLower(v)
	}
	if v, ok := lookup(EnvRate); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRate, err)
		}
		c.Rate = f
	}
	if v, ok := lookup(EnvDividend); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDividend, err)
		}
		c.Dividend = f
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Validate checks the settings that are not model inputs. Model inputs are
// validated by pricing.NewModel.
func (c Config) Validate() error {
	switch c.Format {
	case FormatTable, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("unknown format %q (want table, json or csv)", c.Format)
	}
	if c.Solver.MaxIterations < 0 {
		return fmt.Errorf("solver.max_iterations must not be negative, got %d", c.Solver.MaxIterations)
	}
	if !(c.Solver.Tolerance > 0) {
		return fmt.Errorf("solver.tolerance must be positive, got %g", c.Solver.Tolerance)
	}
	if !(c.Grid.Step > 0) {
		return fmt.Errorf("grid.step must be positive, got %g", c.Grid.Step)
	}
	if c.Grid.From > c.Grid.To {
		return fmt.Errorf("grid.from %g is above grid.to %g", c.Grid.From, c.Grid.To)
	}
	return nil
}

// Model builds the validated pricing model for the scenario.
func (c Config) Model() (pricing.Model, error) {
	return pricing.NewModel(c.Spot, c.Strike, c.Expiry, c.Rate, c.Volatility, c.Dividend)
}
