package report

import (
	"io"

	"github.com/contactkeval/option-pricer/internal/analysis"
	"github.com/contactkeval/option-pricer/internal/config"
)

type quoteJSON struct {
	Symbol string `json:"symbol,omitempty"`
	ivJSON
}

type quoteCSV struct {
	Symbol      string `csv:"symbol"`
	Kind        string `csv:"kind"`
	MarketPrice string `csv:"market_price"`
	ImpliedVol  string `csv:"implied_vol"`
	Error       string `csv:"error"`
}

func toQuoteCSV(r analysis.QuoteResult) quoteCSV {
	row := quoteCSV{
		Symbol:      r.Symbol,
		Kind:        r.Kind.String(),
		MarketPrice: fixed(r.MarketPrice),
		Error:       r.Err,
	}
	if r.Err == "" {
		row.ImpliedVol = fixed(r.ImpliedVol)
	}
	return row
}

// WriteQuotes renders batch implied volatility results, failures included.
func WriteQuotes(w io.Writer, rows []analysis.QuoteResult, format string) error {
	switch format {
	case config.FormatTable:
		t := newTable(w, "Symbol", "Kind", "Market Price", "Implied Vol", "Error")
		for _, r := range rows {
			row := toQuoteCSV(r)
			t.Append([]string{row.Symbol, row.Kind, row.MarketPrice, row.ImpliedVol, row.Error})
		}
		t.Render()
		return nil

	case config.FormatJSON:
		out := make([]quoteJSON, 0, len(rows))
		for _, r := range rows {
			out = append(out, quoteJSON{Symbol: r.Symbol, ivJSON: toIVJSON(r.IVResult)})
		}
		return writeJSON(w, out)

	case config.FormatCSV:
		out := make([]quoteCSV, 0, len(rows))
		for _, r := range rows {
			out = append(out, toQuoteCSV(r))
		}
		return writeCSV(w, out)
	}
	return unknownFormat(format)
}
