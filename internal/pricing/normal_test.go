package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErfMatchesStdlib(t *testing.T) {
	for _, x := range []float64{-3, -1.5, -0.5, -1e-3, 0, 1e-3, 0.25, 0.5, 1, 2, 3.5} {
		assert.InDelta(t, math.Erf(x), Erf(x), 2e-7, "x=%v", x)
	}
}

func TestErfIsOdd(t *testing.T) {
	for _, x := range []float64{0.1, 0.7, 1.3, 2.9} {
		assert.Equal(t, -Erf(x), Erf(-x))
	}
}

func TestErfSaturates(t *testing.T) {
	assert.Equal(t, 1.0, Erf(10))
	assert.Equal(t, -1.0, Erf(-10))
	assert.Equal(t, 1.0, Erf(math.Inf(1)))
	assert.Equal(t, -1.0, Erf(math.Inf(-1)))
}

func TestNormCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormCDF(0), 1e-9)
	assert.InDelta(t, 0.841344746, NormCDF(1), 1e-6)
	assert.InDelta(t, 0.975002105, NormCDF(1.96), 1e-6)
	assert.InDelta(t, 0.022750132, NormCDF(-2), 1e-6)

	// symmetry holds exactly because Erf is odd
	for _, x := range []float64{0.3, 1.1, 2.4} {
		assert.InDelta(t, 1.0, NormCDF(x)+NormCDF(-x), 1e-15)
	}
}

func TestNormPDF(t *testing.T) {
	assert.InDelta(t, 0.398942280, NormPDF(0), 1e-9)
	assert.InDelta(t, 0.241970725, NormPDF(1), 1e-9)
	assert.Equal(t, NormPDF(1.7), NormPDF(-1.7))
}

func TestNormInv(t *testing.T) {
	tests := []struct {
		p        float64
		expected float64
	}{
		{0.5, 0},
		{0.975, 1.959963985},
		{0.025, -1.959963985},
		{0.841344746, 1},
		{0.001, -3.090232306},
		{0.999, 3.090232306},
	}

	for _, tt := range tests {
		x, err := NormInv(tt.p)
		require.NoError(t, err)
		assert.InDelta(t, tt.expected, x, 1e-6, "p=%v", tt.p)
	}
}

func TestNormInvRejectsOutOfRange(t *testing.T) {
	for _, p := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err := NormInv(p)
		require.Error(t, err, "p=%v", p)
		assert.True(t, errors.Is(err, ErrInvalidParameter))

		var pe *ParamError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, FieldProbability, pe.Field)
	}
}
