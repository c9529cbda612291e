package main

import (
	"github.com/spf13/cobra"

	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/logger"
)

// app holds the flag values shared by every subcommand.
type app struct {
	configPath string
	envFile    string
	format     string
	verbosity  int

	spot, strike, expiry, rate, vol, dividend float64
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "option-pricer",
		Short:         "Black-Scholes-Merton prices, Greeks and implied volatility",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML scenario file")
	pf.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "dotenv file seeding PRICER_* variables")
	pf.StringVar(&a.format, "format", config.FormatTable, "output format: table, json or csv")
	pf.IntVarP(&a.verbosity, "verbosity", "v", int(logger.Info), "0=errors, 1=info, 2=debug, 3=trace")

	root.AddCommand(
		a.priceCmd(),
		a.ivCmd(),
		a.gridCmd(),
		a.hvCmd(),
		a.batchIVCmd(),
		a.strikeCmd(),
		a.demoCmd(),
	)
	return root
}

// addScenarioFlags registers the model input flags on cmd.
func (a *app) addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&a.spot, "spot", 0, "spot price S")
	f.Float64Var(&a.strike, "strike", 0, "strike price K")
	f.Float64Var(&a.expiry, "expiry", 0, "time to expiry T in years")
	f.Float64Var(&a.rate, "rate", 0, "risk-free rate r (decimal)")
	f.Float64Var(&a.vol, "vol", 0, "volatility σ (decimal)")
	f.Float64Var(&a.dividend, "dividend", 0, "dividend yield q (decimal)")
}

// loadConfig layers defaults, the YAML scenario, the environment and the
// flags the user actually set, then applies the verbosity.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return cfg, err
	}
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	if f.Changed("format") {
		cfg.Format = a.format
	}
	if f.Changed("verbosity") {
		cfg.Verbosity = a.verbosity
	}

	overrides := []struct {
		name string
		src  float64
		dst  *float64
	}{
		{"spot", a.spot, &cfg.Spot},
		{"strike", a.strike, &cfg.Strike},
		{"expiry", a.expiry, &cfg.Expiry},
		{"rate", a.rate, &cfg.Rate},
		{"vol", a.vol, &cfg.Volatility},
		{"dividend", a.dividend, &cfg.Dividend},
	}
	for _, o := range overrides {
		if f.Changed(o.name) {
			*o.dst = o.src
		}
	}

	logger.SetVerbosity(cfg.Verbosity)
	logger.Debugf("config: S=%g K=%g T=%g r=%g σ=%g q=%g format=%s",
		cfg.Spot, cfg.Strike, cfg.Expiry, cfg.Rate, cfg.Volatility, cfg.Dividend, cfg.Format)

	return cfg, nil
}
