package pricing

import (
	"math"

	"github.com/contactkeval/option-pricer/internal/logger"
)

const (
	initialVolGuess = 0.3
	minVega         = 1e-10
	volFloor        = 0.001
)

// SolverOptions tunes the implied volatility root-finder.
type SolverOptions struct {
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance" json:"tolerance"`
}

// DefaultSolverOptions returns 100 iterations and a 1e-6 price tolerance.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{MaxIterations: 100, Tolerance: 1e-6}
}

// ImpliedVolatility solves for the volatility that reprices the option at
// marketPrice, using Newton-Raphson from an initial guess of 30%.
//
// The volatility stored in m is ignored; every other input is held fixed.
// Each iteration:
//  1. prices the option at the current guess
//  2. fails with ErrVegaTooSmall if the raw vega is below 1e-10
//  3. returns the guess once |market − model| < opts.Tolerance
//  4. steps guess += diff / vega, clamping a non-positive guess to 0.001
//
// Running out of opts.MaxIterations (including a budget of zero) fails with
// ErrNotConverged. Both failures are *ConvergenceError values. A kind other
// than Call or Put is a *ParamError.
func (m Model) ImpliedVolatility(kind OptionKind, marketPrice float64, opts SolverOptions) (float64, error) {
	if kind != Call && kind != Put {
		return 0, &ParamError{Field: FieldKind, Text: kind.String()}
	}

	vol := initialVolGuess

	for i := 0; i < opts.MaxIterations; i++ {
		trial := m.WithVolatility(vol)

		price := trial.Price(kind)
		vega := trial.Greeks(kind).Vega * 100 // undo the per-point scaling

		if math.Abs(vega) < minVega {
			return 0, &ConvergenceError{Reason: ErrVegaTooSmall, Iterations: i + 1, LastGuess: vol}
		}

		diff := marketPrice - price
		if logger.Enabled(logger.Trace) {
			logger.Tracef("iv %s iter=%d vol=%.8f price=%.8f diff=%.3e vega=%.6f", kind, i, vol, price, diff, vega)
		}

		if math.Abs(diff) < opts.Tolerance {
			return vol, nil
		}

		vol += diff / vega
		if vol <= 0 {
			vol = volFloor
		}
	}

	return 0, &ConvergenceError{Reason: ErrNotConverged, Iterations: max(opts.MaxIterations, 0), LastGuess: vol}
}
