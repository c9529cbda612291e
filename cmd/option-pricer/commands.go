package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-pricer/internal/analysis"
	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/report"
)

// placeholderVol fills the volatility slot of models whose volatility is
// about to be solved for.
const placeholderVol = 1.0

func (a *app) priceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a call and a put with Greeks and a put-call parity check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			m, err := analysis.ScenarioModel(cfg)
			if err != nil {
				return err
			}
			logger.Infof("pricing S=%g K=%g T=%g", m.Spot(), m.Strike(), m.Expiry())
			return report.WriteSummary(cmd.OutOrStdout(), analysis.Evaluate(m, cfg.Solver), cfg.Format)
		},
	}
	a.addScenarioFlags(cmd)
	return cmd
}

func (a *app) ivCmd() *cobra.Command {
	var (
		kind        string
		marketPrice float64
		maxIter     int
		tol         float64
	)

	cmd := &cobra.Command{
		Use:   "iv",
		Short: "Solve the implied volatility of an observed option price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-iter") {
				cfg.Solver.MaxIterations = maxIter
			}
			if cmd.Flags().Changed("tol") {
				cfg.Solver.Tolerance = tol
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			k, err := pricing.ParseOptionKind(kind)
			if err != nil {
				return err
			}
			m, err := pricing.NewModel(cfg.Spot, cfg.Strike, cfg.Expiry, cfg.Rate, placeholderVol, cfg.Dividend)
			if err != nil {
				return err
			}

			iv, err := m.ImpliedVolatility(k, marketPrice, cfg.Solver)
			if err != nil {
				return err
			}
			logger.Infof("%s implied volatility %.6f", k, iv)
			return report.WriteIV(cmd.OutOrStdout(), analysis.IVResult{Kind: k, MarketPrice: marketPrice, ImpliedVol: iv}, cfg.Format)
		},
	}
	a.addScenarioFlags(cmd)
	cmd.Flags().StringVar(&kind, "kind", "call", "option kind: call or put")
	cmd.Flags().Float64Var(&marketPrice, "market-price", 0, "observed option price")
	cmd.Flags().IntVar(&maxIter, "max-iter", 0, "Newton-Raphson iteration budget")
	cmd.Flags().Float64Var(&tol, "tol", 0, "price tolerance")
	_ = cmd.MarkFlagRequired("market-price")
	return cmd
}

func (a *app) gridCmd() *cobra.Command {
	var from, to, step float64

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Reprice call and put across a range of spot prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("from") {
				cfg.Grid.From = from
			}
			if f.Changed("to") {
				cfg.Grid.To = to
			}
			if f.Changed("step") {
				cfg.Grid.Step = step
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			m, err := analysis.ScenarioModel(cfg)
			if err != nil {
				return err
			}
			rows, err := analysis.SpotGrid(m, cfg.Grid.From, cfg.Grid.To, cfg.Grid.Step)
			if err != nil {
				return err
			}
			return report.WriteGrid(cmd.OutOrStdout(), rows, cfg.Format)
		},
	}
	a.addScenarioFlags(cmd)
	cmd.Flags().Float64Var(&from, "from", 0, "first spot level")
	cmd.Flags().Float64Var(&to, "to", 0, "last spot level (inclusive)")
	cmd.Flags().Float64Var(&step, "step", 0, "spot increment")
	return cmd
}

func (a *app) hvCmd() *cobra.Command {
	var (
		closes  string
		periods float64
	)

	cmd := &cobra.Command{
		Use:   "hv",
		Short: "Annualized historical volatility of a close series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("closes") {
				cfg.ClosesFile = closes
			}
			if cmd.Flags().Changed("periods") {
				cfg.PeriodsPerYear = periods
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.ClosesFile == "" {
				return errors.New("no closes file: set --closes or closes_file")
			}

			hv, err := analysis.HistoricalVolatility(cfg.ClosesFile, cfg.PeriodsPerYear)
			if err != nil {
				return err
			}
			return report.WriteFields(cmd.OutOrStdout(), []report.Field{{Name: "historical_vol", Value: hv}}, cfg.Format)
		},
	}
	cmd.Flags().StringVar(&closes, "closes", "", "CSV file with date,close columns")
	cmd.Flags().Float64Var(&periods, "periods", 0, "periods per year (default 252)")
	return cmd
}

func (a *app) batchIVCmd() *cobra.Command {
	var quotes string

	cmd := &cobra.Command{
		Use:   "batch-iv",
		Short: "Solve implied volatility for every row of a quote sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			qs, err := data.LoadQuotes(quotes)
			if err != nil {
				return err
			}
			return report.WriteQuotes(cmd.OutOrStdout(), analysis.SolveQuotes(qs, cfg.Solver), cfg.Format)
		},
	}
	cmd.Flags().StringVar(&quotes, "quotes", "", "CSV quote sheet")
	_ = cmd.MarkFlagRequired("quotes")
	return cmd
}

func (a *app) strikeCmd() *cobra.Command {
	var (
		kind  string
		delta float64
	)

	cmd := &cobra.Command{
		Use:   "strike",
		Short: "Strike whose delta matches a target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			k, err := pricing.ParseOptionKind(kind)
			if err != nil {
				return err
			}
			m, err := analysis.ScenarioModel(cfg)
			if err != nil {
				return err
			}

			strike, err := pricing.StrikeForDelta(m.Spot(), m.Expiry(), m.Rate(), m.Volatility(), m.Dividend(), k, delta)
			if err != nil {
				return err
			}
			logger.Infof("%s delta %g at strike %.4f", k, delta, strike)
			return report.WriteFields(cmd.OutOrStdout(), []report.Field{{Name: "strike", Value: strike}}, cfg.Format)
		},
	}
	a.addScenarioFlags(cmd)
	cmd.Flags().StringVar(&kind, "kind", "call", "option kind: call or put")
	cmd.Flags().Float64Var(&delta, "delta", 0, "target delta (negative for puts)")
	_ = cmd.MarkFlagRequired("delta")
	return cmd
}

// demoCmd walks through the reference scenario regardless of the scenario
// settings; only output format, verbosity and solver settings apply.
func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Price the reference scenario S=100 K=100 T=1 r=5% σ=20%",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ref := config.Default()
			m, err := ref.Model()
			if err != nil {
				return err
			}

			rows, err := analysis.SpotGrid(m, ref.Grid.From, ref.Grid.To, ref.Grid.Step)
			if err != nil {
				return err
			}
			return report.WriteDemo(cmd.OutOrStdout(), analysis.Evaluate(m, cfg.Solver), rows, cfg.Format)
		},
	}
}
