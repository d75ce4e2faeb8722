// Package recorder persists pricing and backtest output for later
// analysis.
package recorder

import "time"

// PricingRecord is one stored pricing call.
type PricingRecord struct {
	Timestamp time.Time
	Symbol    string
	Kind      string
	Spot      float64
	Strike    float64
	Rate      float64
	Vol       float64
	Maturity  float64
	Price     float64
	Analytic  float64
	AbsError  float64
	Delta     float64
	Gamma     float64
	Theta     float64
	Vega      float64
}

// BacktestRecord is one stored backtest observation.
type BacktestRecord struct {
	Symbol   string
	Date     time.Time
	Spot     float64
	Strike   float64
	Price    float64
	Analytic float64
	AbsError float64
}

// Recorder persists pricing history.
type Recorder interface {
	RecordPricing(rec *PricingRecord) error
	RecordBacktest(recs []BacktestRecord) error
	Close() error
}

// NoopRecorder discards everything. Used when no database is
// configured.
type NoopRecorder struct{}

func (NoopRecorder) RecordPricing(*PricingRecord) error    { return nil }
func (NoopRecorder) RecordBacktest([]BacktestRecord) error { return nil }
func (NoopRecorder) Close() error                          { return nil }
