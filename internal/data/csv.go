// Package data loads market inputs from local CSV files.
//
// Two layouts are supported:
//   - close series: header "date,close" (other OHLC columns are ignored)
//   - quote sheets: header "symbol,kind,spot,strike,expiry_years,rate,dividend,market_price"
package data

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

var ErrEmptyFile = errors.New("no data rows")

// Bar is one row of a close series.
type Bar struct {
	Date  string  `csv:"date"`
	Close float64 `csv:"close"`
}

// Quote is one observed option price to invert for implied volatility.
type Quote struct {
	Symbol      string  `csv:"symbol"`
	Kind        string  `csv:"kind"`
	Spot        float64 `csv:"spot"`
	Strike      float64 `csv:"strike"`
	ExpiryYears float64 `csv:"expiry_years"`
	Rate        float64 `csv:"rate"`
	Dividend    float64 `csv:"dividend"`
	MarketPrice float64 `csv:"market_price"`
}

// Model builds the pricing inputs for the quote. The volatility slot is a
// placeholder; the implied volatility solver overrides it. The parsed kind is
// returned even when the numeric inputs fail validation.
func (q Quote) Model() (pricing.Model, pricing.OptionKind, error) {
	kind, err := pricing.ParseOptionKind(q.Kind)
	if err != nil {
		return pricing.Model{}, kind, err
	}
	m, err := pricing.NewModel(q.Spot, q.Strike, q.ExpiryYears, q.Rate, 1, q.Dividend)
	if err != nil {
		return pricing.Model{}, kind, err
	}
	return m, kind, nil
}

// ReadCloses parses a close series and returns the closes in file order.
func ReadCloses(r io.Reader) ([]float64, error) {
	var bars []*Bar
	if err := gocsv.Unmarshal(r, &bars); err != nil {
		return nil, fmt.Errorf("parse closes: %w", err)
	}
	if len(bars) == 0 {
		return nil, ErrEmptyFile
	}

	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		closes = append(closes, b.Close)
	}
	logger.Debugf("read %d closes (%s .. %s)", len(closes), strings.TrimSpace(bars[0].Date), strings.TrimSpace(bars[len(bars)-1].Date))
	return closes, nil
}

// ReadQuotes parses a quote sheet.
func ReadQuotes(r io.Reader) ([]Quote, error) {
	var quotes []Quote
	if err := gocsv.Unmarshal(r, &quotes); err != nil {
		return nil, fmt.Errorf("parse quotes: %w", err)
	}
	if len(quotes) == 0 {
		return nil, ErrEmptyFile
	}
	logger.Debugf("read %d quotes", len(quotes))
	return quotes, nil
}

// LoadCloses reads a close series from path.
func LoadCloses(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open closes file: %w", err)
	}
	defer f.Close()

	closes, err := ReadCloses(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return closes, nil
}

// LoadQuotes reads a quote sheet from path.
func LoadQuotes(path string) ([]Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quotes file: %w", err)
	}
	defer f.Close()

	quotes, err := ReadQuotes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return quotes, nil
}
