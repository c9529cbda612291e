package pricing

import (
	"errors"
	"fmt"
)

// Parameter names reported by ParamError.
const (
	FieldSpot        = "spot"
	FieldStrike      = "strike"
	FieldExpiry      = "expiry"
	FieldVolatility  = "volatility"
	FieldKind        = "kind"
	FieldDelta       = "delta"
	FieldProbability = "probability"
)

var (
	// ErrInvalidParameter matches every *ParamError.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrConvergenceFailure matches every implied volatility solver failure.
	ErrConvergenceFailure = errors.New("convergence failure")

	// ErrVegaTooSmall is reported when the Newton step would divide by a
	// near-zero vega.
	ErrVegaTooSmall = fmt.Errorf("%w: vega too small", ErrConvergenceFailure)

	// ErrNotConverged is reported when the iteration budget runs out.
	ErrNotConverged = fmt.Errorf("%w: failed to converge", ErrConvergenceFailure)
)

// ParamError identifies the input that failed validation.
type ParamError struct {
	Field string
	Value float64
	Text  string // set instead of Value for textual inputs
}

func (e *ParamError) Error() string {
	switch {
	case e.Text != "":
		return fmt.Sprintf("invalid parameter: %s %q", e.Field, e.Text)
	case e.Field == FieldDelta || e.Field == FieldProbability:
		return fmt.Sprintf("invalid parameter: %s %g out of range", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid parameter: %s must be positive, got %g", e.Field, e.Value)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// ConvergenceError is returned by the implied volatility solver.
// Reason is either ErrVegaTooSmall or ErrNotConverged.
type ConvergenceError struct {
	Reason     error
	Iterations int
	LastGuess  float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("implied volatility: %v (iterations=%d, last guess=%.6f)", e.Reason, e.Iterations, e.LastGuess)
}

func (e *ConvergenceError) Unwrap() error { return e.Reason }
