package pricing

import (
	"fmt"
)

// SolveEuropean marches the Black-Scholes PDE backward from expiry to
// the valuation date on the given grid and returns the option-value
// array at t=0 (one value per grid point, length nS+1).
//
// Each step solves the implicit theta-method system
//
//	(I - theta*dt*L) V^n = (I + (1-theta)*dt*L) V^(n+1)
//
// with L discretized by central differences at the interior points
// and the exact Dirichlet values imposed at the edges. Both Backward
// Euler and Crank-Nicolson are unconditionally stable here; accuracy
// still depends on ds and dt.
//
// The returned slice is freshly allocated and owned by the caller;
// the function keeps no state between calls.
func SolveEuropean(p ModelParameters, g Grid, kind OptionKind, scheme Scheme) ([]float64, error) {
	nS := g.NS()
	ds := g.DS()

	values := make([]float64, nS+1)
	for i := 0; i <= nS; i++ {
		s, err := g.SAt(i)
		if err != nil {
			return nil, err
		}
		v, err := TerminalPayoff(kind, p.K, s)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	// Zero maturity: the terminal condition is the solution.
	if p.T == 0 {
		return values, nil
	}

	dt, err := g.DT(p.T)
	if err != nil {
		return nil, err
	}
	theta := scheme.Theta()

	// One interior system per time level; the bands and right-hand
	// side are reused across steps.
	n := nS - 1
	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	rhs := make([]float64, n)

	for m := 1; m <= g.NT(); m++ {
		tau := float64(m) * dt

		left, err := LeftBoundary(kind, p.R, p.K, tau)
		if err != nil {
			return nil, err
		}
		right, err := RightBoundary(kind, p.R, p.K, g.SMax(), tau)
		if err != nil {
			return nil, err
		}

		if nS <= 1 {
			// No interior points; the edges carry the whole level.
			values[0] = left
			values[nS] = right
			continue
		}

		for i := 1; i < nS; i++ {
			s := g.SMin() + float64(i)*ds
			sig2s2 := p.Sigma * p.Sigma * s * s
			alpha := 0.5*sig2s2/(ds*ds) - 0.5*p.R*s/ds
			beta := -sig2s2/(ds*ds) - p.R
			gamma := 0.5*sig2s2/(ds*ds) + 0.5*p.R*s/ds

			j := i - 1
			sub[j] = -theta * dt * alpha
			diag[j] = 1 - theta*dt*beta
			sup[j] = -theta * dt * gamma

			// Explicit side uses the previous time level.
			rhs[j] = values[i] + (1-theta)*dt*(alpha*values[i-1]+beta*values[i]+gamma*values[i+1])
		}

		// Dirichlet elimination: fold the known edge values into the
		// first and last rows.
		rhs[0] -= sub[0] * left
		rhs[n-1] -= sup[n-1] * right

		x, err := SolveTridiagonal(sub, diag, sup, rhs)
		if err != nil {
			return nil, err
		}
		copy(values[1:nS], x)
		values[0] = left
		values[nS] = right
	}

	return values, nil
}

// InterpolateAt evaluates the solved grid at an arbitrary spot by
// linear interpolation between the two bracketing grid points,
// clamping to the edge value when s falls outside [sMin, sMax].
func InterpolateAt(g Grid, values []float64, s float64) (float64, error) {
	if len(values) != g.NS()+1 {
		return 0, fmt.Errorf("%w: got %d values for a grid with %d points", ErrDimensionMismatch, len(values), g.NS()+1)
	}
	i, err := g.BracketingIndex(s)
	if err != nil {
		return 0, err
	}
	sLo, err := g.SAt(i)
	if err != nil {
		return 0, err
	}
	sHi, err := g.SAt(i + 1)
	if err != nil {
		return 0, err
	}
	if s <= sLo {
		return values[i], nil
	}
	if s >= sHi {
		return values[i+1], nil
	}
	w := (s - sLo) / (sHi - sLo)
	return values[i] + w*(values[i+1]-values[i]), nil
}
