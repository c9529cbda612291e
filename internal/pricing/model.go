package pricing

import (
	"strings"
)

// OptionKind selects the call or put branch of every formula.
type OptionKind int

const (
	Call OptionKind = iota
	Put
)

// invalidKind is what ParseOptionKind returns alongside an error, so a
// failed parse never reads as Call.
const invalidKind OptionKind = -1

// String renders the kind as "call" or "put".
func (k OptionKind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return "unknown"
}

// ParseOptionKind accepts "call", "c", "put" or "p" in any case. Other
// text yields an unknown kind and a *ParamError.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return invalidKind, &ParamError{Field: FieldKind, Text: s}
}

// MarshalText implements encoding.TextMarshaler.
func (k OptionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OptionKind) UnmarshalText(b []byte) error {
	parsed, err := ParseOptionKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Model holds the Black-Scholes-Merton inputs for one European option.
//
// A Model is only obtainable through NewModel, which enforces
// spot, strike, expiry and volatility > 0. Fields are unexported so the
// invariant holds for the lifetime of the value.
type Model struct {
	spot     float64 // S
	strike   float64 // K
	expiry   float64 // T, years
	rate     float64 // r, annualized, any sign
	vol      float64 // σ, annualized
	dividend float64 // q, annualized continuous yield, any sign
}

// NewModel validates the inputs and returns an immutable Model.
//
// Parameters:
//   - spot: current price of the underlying (> 0)
//   - strike: strike price (> 0)
//   - expiry: time to expiry in years (> 0)
//   - rate: risk-free rate as a decimal (negative allowed)
//   - volatility: annualized volatility as a decimal (> 0)
//   - dividend: continuous dividend yield as a decimal (negative allowed)
//
// Checks run in the order spot, strike, expiry, volatility; the first failure
// is returned as a *ParamError naming the field. NaN never passes a check.
func NewModel(spot, strike, expiry, rate, volatility, dividend float64) (Model, error) {
	checks := []struct {
		field string
		value float64
	}{
		{FieldSpot, spot},
		{FieldStrike, strike},
		{FieldExpiry, expiry},
		{FieldVolatility, volatility},
	}
	for _, c := range checks {
		if !(c.value > 0) {
			return Model{}, &ParamError{Field: c.field, Value: c.value}
		}
	}

	return Model{
		spot:     spot,
		strike:   strike,
		expiry:   expiry,
		rate:     rate,
		vol:      volatility,
		dividend: dividend,
	}, nil
}

func (m Model) Spot() float64       { return m.spot }
func (m Model) Strike() float64     { return m.strike }
func (m Model) Expiry() float64     { return m.expiry }
func (m Model) Rate() float64       { return m.rate }
func (m Model) Volatility() float64 { return m.vol }
func (m Model) Dividend() float64   { return m.dividend }

// WithVolatility returns a copy of m with the volatility replaced.
// The caller guarantees vol > 0.
func (m Model) WithVolatility(vol float64) Model {
	m.vol = vol
	return m
}
