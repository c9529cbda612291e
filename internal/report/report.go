// Package report renders analysis results as aligned tables, JSON or CSV.
//
// Numbers are rounded half away from zero to four decimal places. Non-finite
// values (a failed solve) render as NaN in tables and CSV and as null in JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-pricer/internal/config"
)

const places = 4

// fixed formats v with exactly four decimals.
func fixed(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// num rounds v for JSON output; non-finite values become null.
func num(v float64) decimal.NullDecimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v).Round(places), Valid: true}
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	return t
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func writeCSV(w io.Writer, rows any) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func unknownFormat(format string) error {
	return fmt.Errorf("unknown output format %q", format)
}

// Field is one named scalar result, e.g. a historical volatility.
type Field struct {
	Name  string
	Value float64
}

type fieldCSV struct {
	Name  string `csv:"name"`
	Value string `csv:"value"`
}

// WriteFields renders named scalars.
func WriteFields(w io.Writer, fields []Field, format string) error {
	switch format {
	case config.FormatTable:
		t := newTable(w, "Name", "Value")
		for _, f := range fields {
			t.Append([]string{f.Name, fixed(f.Value)})
		}
		t.Render()
		return nil

	case config.FormatJSON:
		out := make(map[string]decimal.NullDecimal, len(fields))
		for _, f := range fields {
			out[f.Name] = num(f.Value)
		}
		return writeJSON(w, out)

	case config.FormatCSV:
		rows := make([]fieldCSV, 0, len(fields))
		for _, f := range fields {
			rows = append(rows, fieldCSV{Name: f.Name, Value: fixed(f.Value)})
		}
		return writeCSV(w, rows)
	}
	return unknownFormat(format)
}
