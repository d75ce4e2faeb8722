package pricing

import (
	"fmt"
	"math"
)

// SolveTridiagonal solves Ax = d by the Thomas algorithm, where A has
// sub-diagonal a, main diagonal b and super-diagonal c. All four
// slices must have the same length n; a[0] and c[n-1] are unused
// placeholders. O(n) time, O(n) auxiliary space.
//
// No pivoting is performed. The Black-Scholes discretization hands us
// a diagonally dominant system for reasonable grid/time-step ratios,
// so a zero pivot signals an ill-posed discretization and is reported
// as ErrSingularSystem.
func SolveTridiagonal(a, b, c, d []float64) ([]float64, error) {
	n := len(b)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty system", ErrInvalidArgument)
	}
	if len(a) != n || len(c) != n || len(d) != n {
		return nil, fmt.Errorf("%w: diagonals a=%d b=%d c=%d d=%d", ErrDimensionMismatch, len(a), n, len(c), len(d))
	}
	for i := 0; i < n; i++ {
		if !isFinite(a[i]) || !isFinite(b[i]) || !isFinite(c[i]) || !isFinite(d[i]) {
			return nil, fmt.Errorf("%w: non-finite entry at row %d", ErrInvalidArgument, i)
		}
	}

	cp := make([]float64, n)
	dp := make([]float64, n)

	// Forward elimination.
	if b[0] == 0 {
		return nil, fmt.Errorf("%w: zero pivot at row 0", ErrSingularSystem)
	}
	cp[0] = c[0] / b[0]
	dp[0] = d[0] / b[0]
	for i := 1; i < n; i++ {
		piv := b[i] - a[i]*cp[i-1]
		if piv == 0 {
			return nil, fmt.Errorf("%w: zero pivot at row %d", ErrSingularSystem, i)
		}
		cp[i] = c[i] / piv
		dp[i] = (d[i] - a[i]*dp[i-1]) / piv
	}

	// Backward substitution, reusing dp as the solution.
	for i := n - 2; i >= 0; i-- {
		dp[i] -= cp[i] * dp[i+1]
	}
	return dp, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
