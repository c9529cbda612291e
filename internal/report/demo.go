package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/contactkeval/option-pricer/internal/analysis"
	"github.com/contactkeval/option-pricer/internal/config"
)

// ErrNoCSVLayout is returned for output that has no single CSV shape.
var ErrNoCSVLayout = errors.New("no csv layout for this output; use table or json")

type demoJSON struct {
	Summary summaryJSON `json:"summary"`
	Grid    []gridJSON  `json:"grid"`
}

// WriteDemo renders the reference walkthrough: the scenario summary followed
// by the spot grid. JSON output is one object holding both.
func WriteDemo(w io.Writer, s analysis.Summary, rows []analysis.GridRow, format string) error {
	switch format {
	case config.FormatTable:
		if err := WriteSummary(w, s, format); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "\nSensitivity analysis (varying spot price):"); err != nil {
			return err
		}
		return WriteGrid(w, rows, format)

	case config.FormatJSON:
		return writeJSON(w, demoJSON{Summary: toSummaryJSON(s), Grid: toGridJSON(rows)})

	case config.FormatCSV:
		return fmt.Errorf("demo: %w", ErrNoCSVLayout)
	}
	return unknownFormat(format)
}
