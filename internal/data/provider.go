package data

import (
	"sort"
	"time"
)

// Bar is a simplified daily OHLCV record.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Provider supplies market data. Implementations may chain to an
// optional secondary provider used as a fallback when they cannot
// answer a request themselves.
type Provider interface {
	Secondary() Provider

	// GetDailyBars returns daily bars for the symbol between fromDate
	// and toDate inclusive, sorted by date ascending.
	GetDailyBars(symbol string, fromDate, toDate time.Time) ([]Bar, error)

	// LatestClose returns the most recent closing price for the symbol.
	LatestClose(symbol string) (float64, error)
}

// Closes extracts the close column from a bar series.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func sortBars(bars []Bar) {
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
}
