package report

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-pricer/internal/analysis"
	"github.com/contactkeval/option-pricer/internal/config"
)

type gridJSON struct {
	Spot decimal.NullDecimal `json:"spot"`
	Call decimal.NullDecimal `json:"call"`
	Put  decimal.NullDecimal `json:"put"`
}

type gridCSV struct {
	Spot string `csv:"spot"`
	Call string `csv:"call"`
	Put  string `csv:"put"`
}

func toGridJSON(rows []analysis.GridRow) []gridJSON {
	out := make([]gridJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, gridJSON{Spot: num(r.Spot), Call: num(r.Call), Put: num(r.Put)})
	}
	return out
}

// WriteGrid renders the spot sensitivity sweep.
func WriteGrid(w io.Writer, rows []analysis.GridRow, format string) error {
	switch format {
	case config.FormatTable:
		t := newTable(w, "Spot Price", "Call Price", "Put Price")
		for _, r := range rows {
			t.Append([]string{fixed(r.Spot), fixed(r.Call), fixed(r.Put)})
		}
		t.Render()
		return nil

	case config.FormatJSON:
		return writeJSON(w, toGridJSON(rows))

	case config.FormatCSV:
		out := make([]gridCSV, 0, len(rows))
		for _, r := range rows {
			out = append(out, gridCSV{Spot: fixed(r.Spot), Call: fixed(r.Call), Put: fixed(r.Put)})
		}
		return writeCSV(w, out)
	}
	return unknownFormat(format)
}
