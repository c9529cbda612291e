package analysis

import (
	"fmt"

	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/volatility"
)

// ScenarioModel builds the model for cfg. When the scenario leaves the
// volatility at zero and names a closes file, the annualized historical
// volatility of that series is used instead.
func ScenarioModel(cfg config.Config) (pricing.Model, error) {
	vol := cfg.Volatility

	if vol == 0 && cfg.ClosesFile != "" {
		hv, err := HistoricalVolatility(cfg.ClosesFile, cfg.PeriodsPerYear)
		if err != nil {
			return pricing.Model{}, err
		}
		logger.Infof("using historical volatility %.4f from %s", hv, cfg.ClosesFile)
		vol = hv
	}

	logger.Debugf("scenario S=%g K=%g T=%g r=%g σ=%g q=%g", cfg.Spot, cfg.Strike, cfg.Expiry, cfg.Rate, vol, cfg.Dividend)
	return pricing.NewModel(cfg.Spot, cfg.Strike, cfg.Expiry, cfg.Rate, vol, cfg.Dividend)
}

// HistoricalVolatility loads a close series and annualizes its volatility.
func HistoricalVolatility(path string, periodsPerYear float64) (float64, error) {
	closes, err := data.LoadCloses(path)
	if err != nil {
		return 0, err
	}
	hv, err := volatility.Annualized(closes, periodsPerYear)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return hv, nil
}
