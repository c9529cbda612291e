package pricing

import (
	"math"
)

const daysPerYear = 365.0

// Greeks are the sensitivities of one option at one evaluation point.
//
// Vega and Rho are per 1 percentage point move of volatility and rate;
// Theta is per calendar day.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// terms bundles the quantities shared by the price and every Greek.
type terms struct {
	d1, d2 float64
	sqrtT  float64
	discR  float64 // e^{-rT}
	discQ  float64 // e^{-qT}
}

func (m Model) terms() terms {
	sqrtT := math.Sqrt(m.expiry)
	d1 := (math.Log(m.spot/m.strike) + (m.rate-m.dividend+0.5*m.vol*m.vol)*m.expiry) / (m.vol * sqrtT)

	return terms{
		d1:    d1,
		d2:    d1 - m.vol*sqrtT,
		sqrtT: sqrtT,
		discR: math.Exp(-m.rate * m.expiry),
		discQ: math.Exp(-m.dividend * m.expiry),
	}
}

// D1 returns the standardized d1 term of the closed-form solution.
func (m Model) D1() float64 { return m.terms().d1 }

// D2 returns d1 - σ√T.
func (m Model) D2() float64 { return m.terms().d2 }

// Price calculates the Black-Scholes-Merton price of a European option.
//
//	Call = S·e^{-qT}·N(d1) − K·e^{-rT}·N(d2)
//	Put  = K·e^{-rT}·N(−d2) − S·e^{-qT}·N(−d1)
//
// An OptionKind other than Call or Put yields NaN.
func (m Model) Price(kind OptionKind) float64 {
	t := m.terms()

	switch kind {
	case Call:
		return m.spot*t.discQ*NormCDF(t.d1) - m.strike*t.discR*NormCDF(t.d2)
	case Put:
		return m.strike*t.discR*NormCDF(-t.d2) - m.spot*t.discQ*NormCDF(-t.d1)
	}
	return math.NaN()
}

// Greeks calculates delta, gamma, vega, theta and rho from a single
// evaluation of d1, d2 and the discount factors.
func (m Model) Greeks(kind OptionKind) Greeks {
	t := m.terms()
	pdf := NormPDF(t.d1)

	g := Greeks{
		Gamma: t.discQ * pdf / (m.spot * m.vol * t.sqrtT),
		Vega:  m.spot * t.discQ * pdf * t.sqrtT / 100,
	}

	decay := -m.spot * pdf * m.vol * t.discQ / (2 * t.sqrtT)

	switch kind {
	case Call:
		g.Delta = t.discQ * NormCDF(t.d1)
		g.Theta = (decay - m.dividend*m.spot*NormCDF(t.d1)*t.discQ + m.rate*m.strike*t.discR*NormCDF(t.d2)) / daysPerYear
		g.Rho = m.strike * m.expiry * t.discR * NormCDF(t.d2) / 100
	case Put:
		g.Delta = -t.discQ * NormCDF(-t.d1)
		g.Theta = (decay + m.dividend*m.spot*NormCDF(-t.d1)*t.discQ - m.rate*m.strike*t.discR*NormCDF(-t.d2)) / daysPerYear
		g.Rho = -m.strike * m.expiry * t.discR * NormCDF(-t.d2) / 100
	default:
		nan := math.NaN()
		return Greeks{Delta: nan, Gamma: nan, Vega: nan, Theta: nan, Rho: nan}
	}

	return g
}

// ParityGap returns (Call − Put) − (S·e^{-qT} − K·e^{-rT}).
// It is zero up to rounding for every valid model.
func (m Model) ParityGap() float64 {
	return m.Price(Call) - m.Price(Put) - m.ParityForward()
}

// ParityForward returns S·e^{-qT} − K·e^{-rT}, the right-hand side of
// put-call parity.
func (m Model) ParityForward() float64 {
	t := m.terms()
	return m.spot*t.discQ - m.strike*t.discR
}

// StrikeForDelta returns the strike whose Black-Scholes-Merton delta equals
// the target, holding spot, expiry, rate, volatility and dividend fixed.
//
// Parameters:
//   - kind: Call expects delta in (0, e^{-qT}); Put expects (−e^{-qT}, 0)
//   - delta: target delta
//
// Returns:
//
//	The strike, or an InvalidParameter error when an input is non-positive
//	or the delta is outside the attainable range.
func StrikeForDelta(spot, expiry, rate, volatility, dividend float64, kind OptionKind, delta float64) (float64, error) {
	// strike is irrelevant to the checks; 1 keeps NewModel's order intact.
	if _, err := NewModel(spot, 1, expiry, rate, volatility, dividend); err != nil {
		return 0, err
	}

	growth := math.Exp(dividend * expiry)

	var d1 float64
	switch kind {
	case Call:
		p, err := NormInv(delta * growth)
		if err != nil {
			return 0, &ParamError{Field: FieldDelta, Value: delta}
		}
		d1 = p
	case Put:
		p, err := NormInv(-delta * growth)
		if err != nil {
			return 0, &ParamError{Field: FieldDelta, Value: delta}
		}
		d1 = -p
	default:
		return 0, &ParamError{Field: FieldKind, Text: kind.String()}
	}

	sqrtT := math.Sqrt(expiry)
	return spot * math.Exp((rate-dividend+0.5*volatility*volatility)*expiry-d1*volatility*sqrtT), nil
}
