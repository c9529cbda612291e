package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()
	assert.Equal(t, 100, opts.MaxIterations)
	assert.Equal(t, 1e-6, opts.Tolerance)
}

func TestImpliedVolatilityReferenceCase(t *testing.T) {
	m := atm(t)

	iv, err := m.ImpliedVolatility(Call, m.Price(Call), DefaultSolverOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0.2, iv, 1e-3)
}

func TestImpliedVolatilityIgnoresModelVolatility(t *testing.T) {
	target := atm(t).Price(Put)
	wrong := atm(t).WithVolatility(0.9)

	iv, err := wrong.ImpliedVolatility(Put, target, DefaultSolverOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0.2, iv, 1e-3)
}

func TestImpliedVolatilityRoundTrip(t *testing.T) {
	for _, vol := range []float64{0.1, 0.2, 0.4, 0.8, 1.0} {
		for _, exp := range []float64{0.1, 0.25, 1, 3, 5} {
			for _, k := range []float64{90, 100, 110} {
				for _, r := range []float64{0.01, 0.05} {
					for _, kind := range []OptionKind{Call, Put} {
						m := newTestModel(t, 100, k, exp, r, vol, 0)

						iv, err := m.ImpliedVolatility(kind, m.Price(kind), DefaultSolverOptions())
						require.NoError(t, err, "%s σ=%v T=%v K=%v r=%v", kind, vol, exp, k, r)
						assert.InDelta(t, vol, iv, 1e-3, "%s σ=%v T=%v K=%v r=%v", kind, vol, exp, k, r)
					}
				}
			}
		}
	}
}

func TestImpliedVolatilityWithDividend(t *testing.T) {
	m := newTestModel(t, 250, 240, 0.6, 0.03, 0.45, 0.02)

	iv, err := m.ImpliedVolatility(Call, m.Price(Call), DefaultSolverOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0.45, iv, 1e-3)
}

func TestImpliedVolatilityIsDeterministic(t *testing.T) {
	m := newTestModel(t, 100, 105, 0.5, 0.02, 0.3, 0)
	price := m.Price(Call)

	a, errA := m.ImpliedVolatility(Call, price, DefaultSolverOptions())
	b, errB := m.ImpliedVolatility(Call, price, DefaultSolverOptions())
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestImpliedVolatilityVegaTooSmall(t *testing.T) {
	// far out of the money and a few days from expiry: vega underflows
	m := newTestModel(t, 100, 1000, 0.01, 0.05, 0.2, 0)

	_, err := m.ImpliedVolatility(Call, 1.0, DefaultSolverOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVegaTooSmall))
	assert.True(t, errors.Is(err, ErrConvergenceFailure))
	assert.False(t, errors.Is(err, ErrNotConverged))
	assert.Contains(t, err.Error(), "vega too small")

	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.Iterations)
	assert.Equal(t, 0.3, ce.LastGuess)
}

func TestImpliedVolatilityZeroIterations(t *testing.T) {
	opts := SolverOptions{MaxIterations: 0, Tolerance: 1e-6}

	// even a degenerate model reports the budget, since no step ever runs
	for _, m := range []Model{atm(t), newTestModel(t, 100, 1000, 0.01, 0.05, 0.2, 0)} {
		_, err := m.ImpliedVolatility(Call, m.Price(Call), opts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotConverged))
		assert.False(t, errors.Is(err, ErrVegaTooSmall))
		assert.Contains(t, err.Error(), "failed to converge")
	}
}

func TestImpliedVolatilityBudgetExhausted(t *testing.T) {
	m := atm(t)

	_, err := m.ImpliedVolatility(Call, m.Price(Call), SolverOptions{MaxIterations: 2, Tolerance: 1e-6})
	require.Error(t, err)

	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrNotConverged, ce.Reason)
	assert.Equal(t, 2, ce.Iterations)
	assert.InDelta(t, 0.2, ce.LastGuess, 1e-3)
}

func TestImpliedVolatilityClampsNonPositiveGuess(t *testing.T) {
	// 0.01 is below the call's no-arbitrage floor S − K·e^{-rT} ≈ 0.12, so every
	// Newton step drives the guess negative and the clamp holds it at 0.001
	m := newTestModel(t, 100, 105, 1, 0.05, 0.2, 0)

	_, err := m.ImpliedVolatility(Call, 0.01, DefaultSolverOptions())
	require.Error(t, err)

	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrNotConverged, ce.Reason)
	assert.Equal(t, volFloor, ce.LastGuess)
}

func TestImpliedVolatilityClampThenVegaTooSmall(t *testing.T) {
	// the first step overshoots below zero; at the 0.001 floor the deep
	// in-the-money forward has no vega left
	m := atm(t)

	_, err := m.ImpliedVolatility(Call, 0.5, DefaultSolverOptions())
	require.Error(t, err)

	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrVegaTooSmall, ce.Reason)
	assert.Equal(t, 2, ce.Iterations)
	assert.Equal(t, volFloor, ce.LastGuess)
}

func TestImpliedVolatilityRejectsUnknownKind(t *testing.T) {
	_, err := atm(t).ImpliedVolatility(OptionKind(3), 10, DefaultSolverOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.False(t, errors.Is(err, ErrConvergenceFailure))
}

func TestImpliedVolatilityNegativeBudget(t *testing.T) {
	_, err := atm(t).ImpliedVolatility(Call, 10, SolverOptions{MaxIterations: -5, Tolerance: 1e-6})

	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrNotConverged, ce.Reason)
	assert.Equal(t, 0, ce.Iterations)
	assert.Equal(t, initialVolGuess, ce.LastGuess)
}
