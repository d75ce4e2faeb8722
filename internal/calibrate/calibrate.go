// Package calibrate estimates the model inputs the pricing core
// consumes (volatility, drift, a risk-free-rate proxy, and
// recommended grid bounds) from historical daily closes.
package calibrate

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/contactkeval/option-pde/internal/data"
	"github.com/contactkeval/option-pde/internal/pricing"
)

const (
	// TradingDays is the annualization base for daily observations.
	TradingDays = 252.0

	// DefaultEWMALambda is the RiskMetrics decay factor.
	DefaultEWMALambda = 0.94

	// marketRiskPremium is the fixed equity premium subtracted from
	// realized drift when proxying the risk-free rate.
	marketRiskPremium = 0.05
)

// Calibration is the bundle of estimates handed to the pricing core.
type Calibration struct {
	Volatility   float64
	Drift        float64
	RiskFreeRate float64
	SMin         float64
	SMax         float64
}

// LogReturns computes ln(c[i]/c[i-1]) for consecutive closes.
func LogReturns(closes []float64) ([]float64, error) {
	if len(closes) < 2 {
		return nil, fmt.Errorf("need at least 2 closes, got %d", len(closes))
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return nil, fmt.Errorf("non-positive close at index %d", i)
		}
		out = append(out, math.Log(closes[i]/closes[i-1]))
	}
	return out, nil
}

// SimpleVolatility is the annualized sample standard deviation of
// daily log returns.
func SimpleVolatility(closes []float64) (float64, error) {
	rets, err := LogReturns(closes)
	if err != nil {
		return 0, err
	}
	sd, err := stats.StandardDeviationSample(stats.Float64Data(rets))
	if err != nil {
		return 0, err
	}
	return sd * math.Sqrt(TradingDays), nil
}

// EWMAVolatility is the annualized exponentially weighted volatility
// with decay lambda (RiskMetrics uses 0.94). Recent returns weigh
// more, so it reacts faster to regime changes than the simple
// estimator.
func EWMAVolatility(closes []float64, lambda float64) (float64, error) {
	if lambda <= 0 || lambda >= 1 {
		return 0, fmt.Errorf("lambda must be in (0, 1), got %g", lambda)
	}
	rets, err := LogReturns(closes)
	if err != nil {
		return 0, err
	}
	variance := rets[0] * rets[0]
	for _, r := range rets[1:] {
		variance = lambda*variance + (1-lambda)*r*r
	}
	return math.Sqrt(variance * TradingDays), nil
}

// CombinedVolatility blends the simple and EWMA estimators equally.
func CombinedVolatility(closes []float64) (float64, error) {
	simple, err := SimpleVolatility(closes)
	if err != nil {
		return 0, err
	}
	ewma, err := EWMAVolatility(closes, DefaultEWMALambda)
	if err != nil {
		return 0, err
	}
	return 0.5*simple + 0.5*ewma, nil
}

// Drift is the annualized mean daily log return.
func Drift(closes []float64) (float64, error) {
	rets, err := LogReturns(closes)
	if err != nil {
		return 0, err
	}
	mean, err := stats.Mean(stats.Float64Data(rets))
	if err != nil {
		return 0, err
	}
	return mean * TradingDays, nil
}

// EstimateRiskFreeRate proxies the risk-free rate as realized drift
// minus a fixed market risk premium, clamped to [0, 0.15]. The clamp
// keeps a noisy drift estimate from producing absurd discounting.
func EstimateRiskFreeRate(drift float64) float64 {
	r := drift - marketRiskPremium
	if r < 0 {
		return 0
	}
	if r > 0.15 {
		return 0.15
	}
	return r
}

// Calibrate derives all estimates from a bar history, including grid
// bounds from the historical price range widened by a
// volatility/maturity-scaled confidence band. The bounds are checked
// through pricing.NewGrid before being reported.
func Calibrate(bars []data.Bar, maturity float64) (*Calibration, error) {
	closes := data.Closes(bars)
	if len(closes) < 2 {
		return nil, fmt.Errorf("need at least 2 bars, got %d", len(closes))
	}

	vol, err := CombinedVolatility(closes)
	if err != nil {
		return nil, err
	}
	drift, err := Drift(closes)
	if err != nil {
		return nil, err
	}

	lo, err := stats.Min(stats.Float64Data(closes))
	if err != nil {
		return nil, err
	}
	hi, err := stats.Max(stats.Float64Data(closes))
	if err != nil {
		return nil, err
	}

	band := 4 * vol * math.Sqrt(math.Max(maturity, 0))
	sMin := math.Max(0, lo*(1-band))
	sMax := hi * (1 + band)
	if sMax <= sMin {
		sMax = sMin + hi // degenerate band, keep the grid well formed
	}
	if _, err := pricing.NewGrid(sMin, sMax, 2, 1); err != nil {
		return nil, fmt.Errorf("derived grid bounds unusable: %w", err)
	}

	return &Calibration{
		Volatility:   vol,
		Drift:        drift,
		RiskFreeRate: EstimateRiskFreeRate(drift),
		SMin:         sMin,
		SMax:         sMax,
	}, nil
}
