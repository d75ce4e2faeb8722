package pricing

import (
	"fmt"
	"math"
)

// Grid describes a uniform spatial discretization of the asset-price
// domain [SMin, SMax] into NS equal intervals, paired with a temporal
// split of [0, T] into NT equal intervals. T is supplied per call so
// one grid can be reused across maturities.
//
// A Grid is an immutable value: build it with NewGrid and copy it
// freely.
type Grid struct {
	sMin, sMax float64
	nS, nT     int
}

// NewGrid validates the bounds and interval counts and returns a Grid.
func NewGrid(sMin, sMax float64, nS, nT int) (Grid, error) {
	if math.IsNaN(sMin) || math.IsInf(sMin, 0) || math.IsNaN(sMax) || math.IsInf(sMax, 0) {
		return Grid{}, fmt.Errorf("%w: grid bounds must be finite, got [%g, %g]", ErrInvalidArgument, sMin, sMax)
	}
	if sMax <= sMin {
		return Grid{}, fmt.Errorf("%w: sMax (%g) must exceed sMin (%g)", ErrInvalidArgument, sMax, sMin)
	}
	if nS < 2 {
		return Grid{}, fmt.Errorf("%w: nS must be at least 2, got %d", ErrInvalidArgument, nS)
	}
	if nT < 1 {
		return Grid{}, fmt.Errorf("%w: nT must be at least 1, got %d", ErrInvalidArgument, nT)
	}
	return Grid{sMin: sMin, sMax: sMax, nS: nS, nT: nT}, nil
}

func (g Grid) SMin() float64 { return g.sMin }
func (g Grid) SMax() float64 { return g.sMax }
func (g Grid) NS() int       { return g.nS }
func (g Grid) NT() int       { return g.nT }

// DS returns the spatial step (sMax - sMin) / nS.
func (g Grid) DS() float64 {
	return (g.sMax - g.sMin) / float64(g.nS)
}

// DT returns the temporal step maturity / nT.
func (g Grid) DT(maturity float64) (float64, error) {
	if math.IsNaN(maturity) || math.IsInf(maturity, 0) || maturity < 0 {
		return 0, fmt.Errorf("%w: maturity must be finite and non-negative, got %g", ErrInvalidArgument, maturity)
	}
	return maturity / float64(g.nT), nil
}

// SAt returns the asset price at grid index i.
func (g Grid) SAt(i int) (float64, error) {
	if i < 0 || i > g.nS {
		return 0, fmt.Errorf("%w: grid index %d outside [0, %d]", ErrInvalidArgument, i, g.nS)
	}
	return g.sMin + float64(i)*g.DS(), nil
}

// BracketingIndex returns the largest index i such that grid point i
// lies at or below s, clamped to [0, nS-1]. Out-of-domain s is not an
// error (the engine extrapolates at the edges); non-finite s is.
func (g Grid) BracketingIndex(s float64) (int, error) {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, fmt.Errorf("%w: spot must be finite, got %g", ErrInvalidArgument, s)
	}
	i := int(math.Floor((s - g.sMin) / g.DS()))
	if i < 0 {
		return 0, nil
	}
	if i > g.nS-1 {
		return g.nS - 1, nil
	}
	return i, nil
}

// RecommendedBounds picks spatial bounds wide enough for a vanilla
// European option. Calls keep the lower edge away from S=0 (the zero
// boundary carries no information for them); puts need S=0 for the
// left Dirichlet value to be meaningful. The upper edge scales with
// both moneyness and the diffusion width sigma*sqrt(t).
func RecommendedBounds(kind OptionKind, s0, k, sigma, t float64) (sMin, sMax float64) {
	if kind == Call {
		sMin = math.Max(1, 0.3*math.Min(s0, k))
	} else {
		sMin = 0
	}
	sMax = math.Max(3*math.Max(s0, k), s0*(1+4*sigma*math.Sqrt(t)))
	return sMin, sMax
}
