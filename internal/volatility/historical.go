// Package volatility estimates realized volatility from price history.
package volatility

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// TradingDaysPerYear annualizes daily closes.
const TradingDaysPerYear = 252.0

var (
	ErrInsufficientData = errors.New("historical volatility needs at least three closes")
	ErrNonPositivePrice = errors.New("historical volatility needs positive closes")
)

// Annualized returns the sample standard deviation of log returns between
// consecutive closes, scaled by sqrt(periodsPerYear). A non-positive
// periodsPerYear falls back to TradingDaysPerYear.
func Annualized(closes []float64, periodsPerYear float64) (float64, error) {
	if len(closes) < 3 {
		return 0, ErrInsufficientData
	}
	if periodsPerYear <= 0 {
		periodsPerYear = TradingDaysPerYear
	}

	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if !(closes[i-1] > 0 && closes[i] > 0) {
			return 0, fmt.Errorf("%w: close #%d", ErrNonPositivePrice, i)
		}
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}

	sd, err := stats.StandardDeviationSample(rets)
	if err != nil {
		return 0, fmt.Errorf("standard deviation of returns: %w", err)
	}

	return sd * math.Sqrt(periodsPerYear), nil
}
