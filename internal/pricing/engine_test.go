package pricing

import (
	"math"
	"testing"
)

func mustParams(t *testing.T, r, sigma, k, tt float64) ModelParameters {
	t.Helper()
	p, err := NewModelParameters(r, sigma, k, tt)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustGrid(t *testing.T, sMin, sMax float64, nS, nT int) Grid {
	t.Helper()
	g, err := NewGrid(sMin, sMax, nS, nT)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// Refining the spatial mesh with a fixed time step must drive the PDE
// price toward the closed form: non-increasing error over
// nS in {50,100,150,200}, with the finest error under 20% of the
// coarsest.
func TestSolveEuropeanConvergence(t *testing.T) {
	p := mustParams(t, 0.05, 0.2, 100, 1)
	s0 := 100.0
	ref, err := AnalyticPrice(Call, p.R, p.Sigma, p.T, s0, p.K)
	if err != nil {
		t.Fatal(err)
	}

	sizes := []int{50, 100, 150, 200}
	errs := make([]float64, len(sizes))
	for i, nS := range sizes {
		g := mustGrid(t, 30, 300, nS, 100)
		values, err := SolveEuropean(p, g, Call, CrankNicolson)
		if err != nil {
			t.Fatal(err)
		}
		price, err := InterpolateAt(g, values, s0)
		if err != nil {
			t.Fatal(err)
		}
		errs[i] = math.Abs(price - ref)
	}

	for i := 1; i < len(errs); i++ {
		if errs[i] > errs[i-1]+1e-3 {
			t.Fatalf("error grew on refinement: nS=%d err=%.6f, nS=%d err=%.6f",
				sizes[i-1], errs[i-1], sizes[i], errs[i])
		}
	}
	if errs[len(errs)-1] >= 0.2*errs[0] {
		t.Fatalf("insufficient convergence: err(200)=%.6f vs err(50)=%.6f", errs[len(errs)-1], errs[0])
	}
}

// Backward Euler and Crank-Nicolson must agree closely and both land
// near the analytic reference.
func TestSolveEuropeanSchemeConsistency(t *testing.T) {
	p := mustParams(t, 0.05, 0.2, 100, 1)
	g := mustGrid(t, 30, 300, 200, 200)
	s0 := 100.0

	var prices [2]float64
	for i, scheme := range []Scheme{BackwardEuler, CrankNicolson} {
		values, err := SolveEuropean(p, g, Call, scheme)
		if err != nil {
			t.Fatal(err)
		}
		prices[i], err = InterpolateAt(g, values, s0)
		if err != nil {
			t.Fatal(err)
		}
	}

	if diff := math.Abs(prices[0] - prices[1]); diff > 0.1 {
		t.Fatalf("schemes disagree by %.4f", diff)
	}
	ref, _ := AnalyticPrice(Call, p.R, p.Sigma, p.T, s0, p.K)
	for i, price := range prices {
		if math.Abs(price-ref) > 0.5 {
			t.Fatalf("scheme %d: price %.4f too far from analytic %.4f", i, price, ref)
		}
	}
}

// Identical inputs must produce bitwise-identical solution arrays;
// the engine keeps no state between calls.
func TestSolveEuropeanIdempotent(t *testing.T) {
	p := mustParams(t, 0.05, 0.25, 100, 0.5)
	g := mustGrid(t, 0, 300, 120, 60)

	first, err := SolveEuropean(p, g, Put, CrankNicolson)
	if err != nil {
		t.Fatal(err)
	}
	second, err := SolveEuropean(p, g, Put, CrankNicolson)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("values differ at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

// tau=0 level: the returned array must start as the terminal payoff
// when maturity is zero.
func TestSolveEuropeanZeroMaturity(t *testing.T) {
	p := mustParams(t, 0.05, 0.2, 100, 0)
	g := mustGrid(t, 0, 200, 4, 10)

	values, err := SolveEuropean(p, g, Call, BackwardEuler)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0, 0, 50, 100}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("values[%d] = %g, want %g", i, values[i], want[i])
		}
	}
}

// Solved boundary rows must match the analytic Dirichlet values at
// the final time level.
func TestSolveEuropeanBoundaryValues(t *testing.T) {
	p := mustParams(t, 0.05, 0.2, 100, 1)
	g := mustGrid(t, 0, 300, 100, 100)

	values, err := SolveEuropean(p, g, Put, CrankNicolson)
	if err != nil {
		t.Fatal(err)
	}
	wantLeft := 100 * math.Exp(-0.05)
	if math.Abs(values[0]-wantLeft) > 1e-10 {
		t.Fatalf("left boundary = %.12f, want %.12f", values[0], wantLeft)
	}
	if values[g.NS()] != 0 {
		t.Fatalf("right boundary = %g, want 0", values[g.NS()])
	}
}

func TestInterpolateAt(t *testing.T) {
	g := mustGrid(t, 0, 100, 4, 1)
	values := []float64{0, 10, 20, 30, 40}

	got, err := InterpolateAt(g, values, 37.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-15) > 1e-12 {
		t.Fatalf("InterpolateAt(37.5) = %g, want 15", got)
	}

	// Clamping outside the domain.
	got, _ = InterpolateAt(g, values, -10)
	if got != 0 {
		t.Fatalf("below domain: got %g, want 0", got)
	}
	got, _ = InterpolateAt(g, values, 250)
	if got != 40 {
		t.Fatalf("above domain: got %g, want 40", got)
	}

	// Exact grid point.
	got, _ = InterpolateAt(g, values, 50)
	if got != 20 {
		t.Fatalf("on-grid spot: got %g, want 20", got)
	}

	if _, err := InterpolateAt(g, values[:3], 50); err == nil {
		t.Fatal("expected dimension error for short values slice")
	}
	if _, err := InterpolateAt(g, values, math.NaN()); err == nil {
		t.Fatal("expected error for NaN spot")
	}
}
