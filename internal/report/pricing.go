package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-pricer/internal/analysis"
	"github.com/contactkeval/option-pricer/internal/config"
)

type valuationJSON struct {
	Kind  string              `json:"kind"`
	Price decimal.NullDecimal `json:"price"`
	Delta decimal.NullDecimal `json:"delta"`
	Gamma decimal.NullDecimal `json:"gamma"`
	Vega  decimal.NullDecimal `json:"vega"`
	Theta decimal.NullDecimal `json:"theta"`
	Rho   decimal.NullDecimal `json:"rho"`
}

type valuationCSV struct {
	Kind  string `csv:"kind"`
	Price string `csv:"price"`
	Delta string `csv:"delta"`
	Gamma string `csv:"gamma"`
	Vega  string `csv:"vega"`
	Theta string `csv:"theta"`
	Rho   string `csv:"rho"`
}

type ivJSON struct {
	Kind        string              `json:"kind"`
	MarketPrice decimal.NullDecimal `json:"market_price"`
	ImpliedVol  decimal.NullDecimal `json:"implied_vol"`
	Error       string              `json:"error,omitempty"`
}

type summaryJSON struct {
	Params struct {
		Spot       decimal.NullDecimal `json:"spot"`
		Strike     decimal.NullDecimal `json:"strike"`
		Expiry     decimal.NullDecimal `json:"expiry"`
		Rate       decimal.NullDecimal `json:"rate"`
		Volatility decimal.NullDecimal `json:"volatility"`
		Dividend   decimal.NullDecimal `json:"dividend"`
	} `json:"params"`
	Options []valuationJSON `json:"options"`
	Parity  struct {
		CallMinusPut decimal.NullDecimal `json:"call_minus_put"`
		Forward      decimal.NullDecimal `json:"forward"`
		Gap          decimal.NullDecimal `json:"gap"`
	} `json:"parity"`
	ImpliedVol ivJSON `json:"implied_vol"`
}

func toValuationJSON(v analysis.Valuation) valuationJSON {
	return valuationJSON{
		Kind:  v.Kind.String(),
		Price: num(v.Price),
		Delta: num(v.Greeks.Delta),
		Gamma: num(v.Greeks.Gamma),
		Vega:  num(v.Greeks.Vega),
		Theta: num(v.Greeks.Theta),
		Rho:   num(v.Greeks.Rho),
	}
}

func toValuationCSV(v analysis.Valuation) valuationCSV {
	return valuationCSV{
		Kind:  v.Kind.String(),
		Price: fixed(v.Price),
		Delta: fixed(v.Greeks.Delta),
		Gamma: fixed(v.Greeks.Gamma),
		Vega:  fixed(v.Greeks.Vega),
		Theta: fixed(v.Greeks.Theta),
		Rho:   fixed(v.Greeks.Rho),
	}
}

func toIVJSON(r analysis.IVResult) ivJSON {
	return ivJSON{
		Kind:        r.Kind.String(),
		MarketPrice: num(r.MarketPrice),
		ImpliedVol:  num(r.ImpliedVol),
		Error:       r.Err,
	}
}

func toSummaryJSON(s analysis.Summary) summaryJSON {
	var out summaryJSON
	out.Params.Spot = num(s.Params.Spot)
	out.Params.Strike = num(s.Params.Strike)
	out.Params.Expiry = num(s.Params.Expiry)
	out.Params.Rate = num(s.Params.Rate)
	out.Params.Volatility = num(s.Params.Volatility)
	out.Params.Dividend = num(s.Params.Dividend)
	out.Options = []valuationJSON{toValuationJSON(s.Call), toValuationJSON(s.Put)}
	out.Parity.CallMinusPut = num(s.Parity.CallMinusPut)
	out.Parity.Forward = num(s.Parity.Forward)
	out.Parity.Gap = num(s.Parity.Gap)
	out.ImpliedVol = toIVJSON(s.IV)
	return out
}

// WriteSummary renders a scenario summary. CSV carries only the per-kind
// valuation rows.
func WriteSummary(w io.Writer, s analysis.Summary, format string) error {
	switch format {
	case config.FormatTable:
		p := s.Params
		params := newTable(w, "Parameter", "Value")
		params.AppendBulk([][]string{
			{"Spot Price (S)", fixed(p.Spot)},
			{"Strike Price (K)", fixed(p.Strike)},
			{"Time to Expiry (T, years)", fixed(p.Expiry)},
			{"Risk-Free Rate (r)", fixed(p.Rate)},
			{"Volatility (σ)", fixed(p.Volatility)},
			{"Dividend Yield (q)", fixed(p.Dividend)},
		})
		params.Render()

		writeValuationTable(w, s.Call, s.Put)

		fmt.Fprintf(w, "Put-call parity: C - P = %s, S*e^(-qT) - K*e^(-rT) = %s, gap = %.6f\n",
			fixed(s.Parity.CallMinusPut), fixed(s.Parity.Forward), s.Parity.Gap)
		return writeIVLine(w, s.IV)

	case config.FormatJSON:
		return writeJSON(w, toSummaryJSON(s))

	case config.FormatCSV:
		return writeCSV(w, []valuationCSV{toValuationCSV(s.Call), toValuationCSV(s.Put)})
	}
	return unknownFormat(format)
}

func writeValuationTable(w io.Writer, vals ...analysis.Valuation) {
	t := newTable(w, "Kind", "Price", "Delta", "Gamma", "Vega", "Theta", "Rho")
	for _, v := range vals {
		row := toValuationCSV(v)
		t.Append([]string{row.Kind, row.Price, row.Delta, row.Gamma, row.Vega, row.Theta, row.Rho})
	}
	t.Render()
}

func writeIVLine(w io.Writer, r analysis.IVResult) error {
	var err error
	if r.Err != "" {
		_, err = fmt.Fprintf(w, "Implied vol (%s @ %s): error: %s\n", r.Kind, fixed(r.MarketPrice), r.Err)
	} else {
		_, err = fmt.Fprintf(w, "Implied vol (%s @ %s): %s (%.2f%%)\n", r.Kind, fixed(r.MarketPrice), fixed(r.ImpliedVol), r.ImpliedVol*100)
	}
	return err
}

// WriteIV renders a single implied volatility result.
func WriteIV(w io.Writer, r analysis.IVResult, format string) error {
	switch format {
	case config.FormatTable:
		return writeIVLine(w, r)
	case config.FormatJSON:
		return writeJSON(w, toIVJSON(r))
	case config.FormatCSV:
		return writeCSV(w, []quoteCSV{toQuoteCSV(analysis.QuoteResult{IVResult: r})})
	}
	return unknownFormat(format)
}
