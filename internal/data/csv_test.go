package data

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

func TestLoadClosesIgnoresExtraColumns(t *testing.T) {
	closes, err := LoadCloses(filepath.Join("testdata", "closes.csv"))
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 110, 99}, closes)
}

func TestReadClosesMinimalHeader(t *testing.T) {
	closes, err := ReadCloses(strings.NewReader("date,close\n2025-02-03,12.5\n2025-02-04,12.75\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5, 12.75}, closes)
}

func TestReadClosesEmpty(t *testing.T) {
	_, err := ReadCloses(strings.NewReader("date,close\n"))
	assert.True(t, errors.Is(err, ErrEmptyFile))
}

func TestReadClosesBadNumber(t *testing.T) {
	_, err := ReadCloses(strings.NewReader("date,close\n2025-02-03,abc\n"))
	assert.Error(t, err)
}

func TestLoadClosesMissingFile(t *testing.T) {
	_, err := LoadCloses(filepath.Join("testdata", "does-not-exist.csv"))
	assert.Error(t, err)
}

func TestLoadQuotes(t *testing.T) {
	quotes, err := LoadQuotes(filepath.Join("testdata", "quotes.csv"))
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	assert.Equal(t, Quote{
		Symbol:      "SPY-C100",
		Kind:        "call",
		Spot:        100,
		Strike:      100,
		ExpiryYears: 1,
		Rate:        0.05,
		MarketPrice: 10.4506,
	}, quotes[0])
	assert.Equal(t, "put", quotes[1].Kind)
}

func TestQuoteModel(t *testing.T) {
	q := Quote{Kind: "P", Spot: 100, Strike: 95, ExpiryYears: 0.5, Rate: 0.02, Dividend: 0.01, MarketPrice: 3}

	m, kind, err := q.Model()
	require.NoError(t, err)
	assert.Equal(t, pricing.Put, kind)
	assert.Equal(t, 95.0, m.Strike())
	assert.Equal(t, 0.01, m.Dividend())
}

func TestQuoteModelRejects(t *testing.T) {
	_, kind, err := Quote{Kind: "put", Spot: 100, Strike: -5, ExpiryYears: 1}.Model()
	assert.True(t, errors.Is(err, pricing.ErrInvalidParameter))
	assert.Equal(t, pricing.Put, kind, "kind survives a failed strike")

	_, kind, err = Quote{Kind: "swap", Spot: 100, Strike: 100, ExpiryYears: 1}.Model()
	assert.True(t, errors.Is(err, pricing.ErrInvalidParameter))
	assert.Equal(t, "unknown", kind.String())
}
