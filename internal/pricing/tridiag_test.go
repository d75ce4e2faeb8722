package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestSolveTridiagonal3x3(t *testing.T) {
	a := []float64{0, 1, 1}
	b := []float64{2, 2, 2}
	c := []float64{1, 1, 0}
	d := []float64{5, 6, 4}

	x, err := SolveTridiagonal(a, b, c, d)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1.75, 1.5, 1.25}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-10 {
			t.Fatalf("x[%d] = %.12f, want %.12f", i, x[i], want[i])
		}
	}
}

func TestSolveTridiagonalSingleEquation(t *testing.T) {
	x, err := SolveTridiagonal([]float64{0}, []float64{4}, []float64{0}, []float64{8})
	if err != nil {
		t.Fatal(err)
	}
	if x[0] != 2 {
		t.Fatalf("x[0] = %g, want 2", x[0])
	}
}

func TestSolveTridiagonalSingular(t *testing.T) {
	_, err := SolveTridiagonal([]float64{0}, []float64{0}, []float64{0}, []float64{1})
	if !errors.Is(err, ErrSingularSystem) {
		t.Fatalf("expected ErrSingularSystem, got %v", err)
	}
}

func TestSolveTridiagonalBadInput(t *testing.T) {
	if _, err := SolveTridiagonal(nil, nil, nil, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty system, got %v", err)
	}
	if _, err := SolveTridiagonal([]float64{0, 1}, []float64{2}, []float64{1}, []float64{5}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := SolveTridiagonal([]float64{0}, []float64{math.NaN()}, []float64{0}, []float64{1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for NaN entry, got %v", err)
	}
}

// Verify against a dense reconstruction: multiply the solution back
// through the band structure and compare with d.
func TestSolveTridiagonalResidual(t *testing.T) {
	a := []float64{0, -1, -0.5, -2}
	b := []float64{4, 5, 4.5, 6}
	c := []float64{-1, -2, -1, 0}
	d := []float64{7, -3, 12, 1}

	x, err := SolveTridiagonal(a, b, c, d)
	if err != nil {
		t.Fatal(err)
	}
	n := len(d)
	for i := 0; i < n; i++ {
		got := b[i] * x[i]
		if i > 0 {
			got += a[i] * x[i-1]
		}
		if i < n-1 {
			got += c[i] * x[i+1]
		}
		if math.Abs(got-d[i]) > 1e-10 {
			t.Fatalf("residual at row %d: %g", i, got-d[i])
		}
	}
}
