// Package analysis runs pricing workflows over the pricing engine: a full
// scenario summary, a spot sensitivity grid and batch implied volatility.
package analysis

import (
	"fmt"
	"math"

	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Params echoes the model inputs.
type Params struct {
	Spot       float64
	Strike     float64
	Expiry     float64
	Rate       float64
	Volatility float64
	Dividend   float64
}

// ParamsOf copies the inputs out of m.
func ParamsOf(m pricing.Model) Params {
	return Params{
		Spot:       m.Spot(),
		Strike:     m.Strike(),
		Expiry:     m.Expiry(),
		Rate:       m.Rate(),
		Volatility: m.Volatility(),
		Dividend:   m.Dividend(),
	}
}

// Valuation is the price and Greeks of one option kind.
type Valuation struct {
	Kind   pricing.OptionKind
	Price  float64
	Greeks pricing.Greeks
}

// Parity compares C − P against S·e^{-qT} − K·e^{-rT}.
type Parity struct {
	CallMinusPut float64
	Forward      float64
	Gap          float64
}

// IVResult is the outcome of one implied volatility solve. Err is empty on
// success.
type IVResult struct {
	Kind        pricing.OptionKind
	MarketPrice float64
	ImpliedVol  float64
	Err         string
}

// Summary is everything the reference walkthrough reports for one model.
type Summary struct {
	Params Params
	Call   Valuation
	Put    Valuation
	Parity Parity
	IV     IVResult
}

// Value prices one option kind.
func Value(m pricing.Model, kind pricing.OptionKind) Valuation {
	return Valuation{Kind: kind, Price: m.Price(kind), Greeks: m.Greeks(kind)}
}

// Solve runs the implied volatility solver and records the outcome.
func Solve(m pricing.Model, kind pricing.OptionKind, marketPrice float64, opts pricing.SolverOptions) IVResult {
	res := IVResult{Kind: kind, MarketPrice: marketPrice}

	iv, err := m.ImpliedVolatility(kind, marketPrice, opts)
	if err != nil {
		res.ImpliedVol = math.NaN()
		res.Err = err.Error()
		return res
	}
	res.ImpliedVol = iv
	return res
}

// Evaluate prices both kinds, checks put-call parity and recovers the
// implied volatility from the call price.
func Evaluate(m pricing.Model, opts pricing.SolverOptions) Summary {
	call := Value(m, pricing.Call)
	put := Value(m, pricing.Put)
	fwd := m.ParityForward()

	s := Summary{
		Params: ParamsOf(m),
		Call:   call,
		Put:    put,
		Parity: Parity{
			CallMinusPut: call.Price - put.Price,
			Forward:      fwd,
			Gap:          call.Price - put.Price - fwd,
		},
		IV: Solve(m, pricing.Call, call.Price, opts),
	}

	if s.IV.Err != "" {
		logger.Warnf("implied vol round trip failed: %s", s.IV.Err)
	}
	return s
}

// GridRow is one spot level of the sensitivity sweep.
type GridRow struct {
	Spot float64
	Call float64
	Put  float64
}

// SpotGrid reprices m for spot = from, from+step, ... up to and including to.
// Each level builds a fresh model, so a non-positive spot fails validation.
func SpotGrid(m pricing.Model, from, to, step float64) ([]GridRow, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("grid step must be positive, got %g", step)
	}
	if from > to {
		return nil, fmt.Errorf("grid from %g is above to %g", from, to)
	}

	// counted steps avoid accumulating float error in the loop variable
	n := int(math.Floor((to-from)/step + 1e-9))
	rows := make([]GridRow, 0, n+1)

	for i := 0; i <= n; i++ {
		spot := from + float64(i)*step

		lvl, err := pricing.NewModel(spot, m.Strike(), m.Expiry(), m.Rate(), m.Volatility(), m.Dividend())
		if err != nil {
			return nil, fmt.Errorf("grid level %g: %w", spot, err)
		}
		rows = append(rows, GridRow{Spot: spot, Call: lvl.Price(pricing.Call), Put: lvl.Price(pricing.Put)})
	}

	logger.Debugf("grid: %d levels from %g to %g", len(rows), from, to)
	return rows, nil
}

// QuoteResult is the implied volatility of one quote sheet row.
type QuoteResult struct {
	Symbol string
	IVResult
}

// SolveQuotes inverts every quote. A row that fails validation or does not
// converge records its error and the batch carries on.
func SolveQuotes(quotes []data.Quote, opts pricing.SolverOptions) []QuoteResult {
	out := make([]QuoteResult, 0, len(quotes))
	failed := 0

	for _, q := range quotes {
		m, kind, err := q.Model()
		if err != nil {
			failed++
			logger.WithFields(map[string]any{"symbol": q.Symbol, "kind": kind}).Warnf("quote skipped: %v", err)
			out = append(out, QuoteResult{
				Symbol: q.Symbol,
				IVResult: IVResult{
					Kind:        kind,
					MarketPrice: q.MarketPrice,
					ImpliedVol:  math.NaN(),
					Err:         err.Error(),
				},
			})
			continue
		}

		res := Solve(m, kind, q.MarketPrice, opts)
		if res.Err != "" {
			failed++
			logger.WithFields(map[string]any{"symbol": q.Symbol, "kind": kind}).Warnf("quote failed: %s", res.Err)
		}
		out = append(out, QuoteResult{Symbol: q.Symbol, IVResult: res})
	}

	logger.Infof("solved %d quotes, %d failed", len(quotes)-failed, failed)
	return out
}

