package signals

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	got, err := SMA(prices, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Fatalf("SMA = %g, want 4", got)
	}

	if _, err := SMA(prices, 0); err == nil {
		t.Fatal("expected error for zero period")
	}
	if _, err := SMA(prices, 10); err == nil {
		t.Fatal("expected error for short series")
	}
}

func TestEMAConstantSeries(t *testing.T) {
	prices := []float64{5, 5, 5, 5, 5, 5}
	got, err := EMA(prices, 3)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-5) > 1e-12 {
		t.Fatalf("EMA of constant series = %g, want 5", got)
	}
}

func TestRSIExtremes(t *testing.T) {
	up := make([]float64, 20)
	for i := range up {
		up[i] = float64(100 + i)
	}
	rsi, err := RSI(up, 14)
	if err != nil {
		t.Fatal(err)
	}
	if rsi != 100 {
		t.Fatalf("RSI of monotone gains = %g, want 100", rsi)
	}

	down := make([]float64, 20)
	for i := range down {
		down[i] = float64(100 - i)
	}
	rsi, err = RSI(down, 14)
	if err != nil {
		t.Fatal(err)
	}
	if rsi != 0 {
		t.Fatalf("RSI of monotone losses = %g, want 0", rsi)
	}
}

func TestRSIInsufficientData(t *testing.T) {
	rsi, err := RSI([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatal(err)
	}
	if rsi != 50 {
		t.Fatalf("RSI with short series = %g, want neutral 50", rsi)
	}
}

func TestBollingerFlatSeries(t *testing.T) {
	prices := make([]float64, 25)
	for i := range prices {
		prices[i] = 100
	}
	mid, up, lo, err := Bollinger(prices, 20, 2)
	if err != nil {
		t.Fatal(err)
	}
	if mid != 100 || up != 100 || lo != 100 {
		t.Fatalf("flat bands: mid=%g up=%g lo=%g", mid, up, lo)
	}
}

func TestSummarize(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + math.Sin(float64(i)/5)*3
	}
	s, err := Summarize(closes)
	if err != nil {
		t.Fatal(err)
	}
	if s.Signal == "" {
		t.Fatal("empty signal")
	}
	if s.BollUpper < s.BollMid || s.BollLower > s.BollMid {
		t.Fatalf("band ordering wrong: %+v", s)
	}

	if _, err := Summarize(closes[:10]); err == nil {
		t.Fatal("expected error for short series")
	}
}
