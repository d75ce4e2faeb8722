// Package signals computes the technical indicators used by the CLI
// reporting layer: moving averages, Wilder RSI, and Bollinger bands.
package signals

import (
	"errors"
	"math"
)

// SMA computes the simple moving average of the trailing period.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMA computes the exponential moving average with smoothing
// 2/(period+1), seeded by the SMA of the first period values.
func EMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for EMA calculation")
	}
	seed, err := SMA(prices[:period], period)
	if err != nil {
		return 0, err
	}
	alpha := 2.0 / float64(period+1)
	ema := seed
	for _, p := range prices[period:] {
		ema = alpha*p + (1-alpha)*ema
	}
	return ema, nil
}

// RSI computes the Wilder-smoothed relative strength index over the
// given period. Requires at least period+1 prices; returns the
// neutral 50.0 when data is insufficient.
func RSI(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period+1 {
		return 50.0, nil // default when data insufficient
	}

	// Initial average gain/loss over the first `period` changes.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing for the remaining prices.
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// Bollinger returns the middle band (SMA) and the upper/lower bands
// at width standard deviations over the trailing period.
func Bollinger(prices []float64, period int, width float64) (middle, upper, lower float64, err error) {
	middle, err = SMA(prices, period)
	if err != nil {
		return 0, 0, 0, err
	}
	variance := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		d := prices[i] - middle
		variance += d * d
	}
	sd := math.Sqrt(variance / float64(period))
	return middle, middle + width*sd, middle - width*sd, nil
}

// Summary is the indicator snapshot printed alongside pricing output.
type Summary struct {
	SMA20     float64
	SMA50     float64
	RSI14     float64
	BollMid   float64
	BollUpper float64
	BollLower float64
	Signal    string // "oversold", "overbought", or "neutral"
}

// Summarize computes the standard indicator set from a close series.
func Summarize(closes []float64) (*Summary, error) {
	if len(closes) < 50 {
		return nil, errors.New("need at least 50 closes for an indicator summary")
	}
	s := &Summary{}
	var err error
	if s.SMA20, err = SMA(closes, 20); err != nil {
		return nil, err
	}
	if s.SMA50, err = SMA(closes, 50); err != nil {
		return nil, err
	}
	if s.RSI14, err = RSI(closes, 14); err != nil {
		return nil, err
	}
	if s.BollMid, s.BollUpper, s.BollLower, err = Bollinger(closes, 20, 2); err != nil {
		return nil, err
	}

	last := closes[len(closes)-1]
	switch {
	case s.RSI14 < 30 || last < s.BollLower:
		s.Signal = "oversold"
	case s.RSI14 > 70 || last > s.BollUpper:
		s.Signal = "overbought"
	default:
		s.Signal = "neutral"
	}
	return s, nil
}
