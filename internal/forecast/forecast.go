// Package forecast simulates multi-day close forecasts with a
// geometric Brownian motion Monte Carlo.
package forecast

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
)

// Forecast summarizes the simulated close distribution per horizon
// day.
type Forecast struct {
	Days int       `json:"days"`
	Mean []float64 `json:"mean"`
	P05  []float64 `json:"p05"`
	P50  []float64 `json:"p50"`
	P95  []float64 `json:"p95"`
}

// SimulateGBM runs a seeded GBM Monte Carlo from s0 with annualized
// drift and volatility, one step per trading day, and reports the
// mean and 5/50/95 percentiles of the simulated closes for each day
// of the horizon. Identical seeds reproduce identical forecasts.
func SimulateGBM(s0, drift, vol float64, days, paths int, seed int64) (*Forecast, error) {
	if s0 <= 0 || math.IsNaN(s0) || math.IsInf(s0, 0) {
		return nil, fmt.Errorf("spot must be finite and positive, got %g", s0)
	}
	if vol < 0 || math.IsNaN(vol) || math.IsInf(vol, 0) {
		return nil, fmt.Errorf("volatility must be finite and non-negative, got %g", vol)
	}
	if days < 1 {
		return nil, fmt.Errorf("horizon must be at least 1 day, got %d", days)
	}
	if paths < 1 {
		return nil, fmt.Errorf("need at least 1 path, got %d", paths)
	}

	rng := rand.New(rand.NewSource(seed))
	dt := 1.0 / 252.0
	driftTerm := (drift - 0.5*vol*vol) * dt
	volTerm := vol * math.Sqrt(dt)

	// closes[d] collects every path's price at day d+1.
	closes := make([][]float64, days)
	for d := range closes {
		closes[d] = make([]float64, paths)
	}
	for p := 0; p < paths; p++ {
		price := s0
		for d := 0; d < days; d++ {
			price *= math.Exp(driftTerm + volTerm*rng.NormFloat64())
			closes[d][p] = price
		}
	}

	f := &Forecast{
		Days: days,
		Mean: make([]float64, days),
		P05:  make([]float64, days),
		P50:  make([]float64, days),
		P95:  make([]float64, days),
	}
	for d := 0; d < days; d++ {
		sample := stats.Float64Data(closes[d])
		var err error
		if f.Mean[d], err = stats.Mean(sample); err != nil {
			return nil, err
		}
		if f.P05[d], err = stats.Percentile(sample, 5); err != nil {
			return nil, err
		}
		if f.P50[d], err = stats.Percentile(sample, 50); err != nil {
			return nil, err
		}
		if f.P95[d], err = stats.Percentile(sample, 95); err != nil {
			return nil, err
		}
	}
	return f, nil
}
