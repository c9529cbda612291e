package pricing

import (
	"math"
)

const sqrt2Pi = 2.5066282746310002

// Abramowitz & Stegun 7.1.26
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// Erf approximates the error function with the Abramowitz-Stegun rational
// approximation (absolute error below 1.5e-7).
//
// The polynomial is evaluated on |x| and the sign is reapplied afterwards,
// so Erf(-x) == -Erf(x) holds exactly. Large |x| saturates to ±1.
func Erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x)

	t := 1.0 / (1.0 + erfP*x)
	y := 1.0 - (((((erfA5*t+erfA4)*t+erfA3)*t+erfA2)*t+erfA1)*t)*math.Exp(-x*x)

	return sign * y
}

// NormCDF is the standard normal cumulative distribution function.
func NormCDF(x float64) float64 {
	return 0.5 * (1.0 + Erf(x/math.Sqrt2))
}

// NormPDF is the standard normal density: exp(-x²/2) / sqrt(2π).
func NormPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// Rational approximation coefficients for the inverse normal CDF (Acklam).
var (
	invA = [6]float64{
		-3.969683028665376e+01,
		2.209460984245205e+02,
		-2.759285104469687e+02,
		1.383577518672690e+02,
		-3.066479806614716e+01,
		2.506628277459239e+00,
	}
	invB = [5]float64{
		-5.447609879822406e+01,
		1.615858368580409e+02,
		-1.556989798598866e+02,
		6.680131188771972e+01,
		-1.328068155288572e+01,
	}
	invC = [6]float64{
		-7.784894002430293e-03,
		-3.223964580411365e-01,
		-2.400758277161838e+00,
		-2.549732539343734e+00,
		4.374664141464968e+00,
		2.938163982698783e+00,
	}
	invD = [4]float64{
		7.784695709041462e-03,
		3.224671290700398e-01,
		2.445134137142996e+00,
		3.754408661907416e+00,
	}
)

// NormInv computes the inverse of the standard normal CDF (quantile function).
//
// Parameters:
//   - p: probability, strictly inside (0, 1)
//
// Returns:
//
//	x such that NormCDF(x) ≈ p, or an InvalidParameter error on field
//	"probability" when p is outside (0, 1).
//
// Example:
//
//	NormInv(0.975) // ≈ 1.96
func NormInv(p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return 0, &ParamError{Field: FieldProbability, Value: p}
	}

	const (
		plow  = 0.02425
		phigh = 1 - plow
	)

	switch {
	case p < plow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((invC[0]*q+invC[1])*q+invC[2])*q+invC[3])*q+invC[4])*q + invC[5]) /
			((((invD[0]*q+invD[1])*q+invD[2])*q+invD[3])*q + 1), nil

	case p > phigh:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((invC[0]*q+invC[1])*q+invC[2])*q+invC[3])*q+invC[4])*q + invC[5]) /
			((((invD[0]*q+invD[1])*q+invD[2])*q+invD[3])*q + 1), nil
	}

	q := p - 0.5
	r := q * q
	return (((((invA[0]*r+invA[1])*r+invA[2])*r+invA[3])*r+invA[4])*r + invA[5]) * q /
		(((((invB[0]*r+invB[1])*r+invB[2])*r+invB[3])*r+invB[4])*r + 1), nil
}
