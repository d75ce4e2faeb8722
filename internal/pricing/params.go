package pricing

import (
	"fmt"
	"math"
)

// ModelParameters bundles the Black-Scholes model inputs. Build it
// with NewModelParameters so invalid combinations fail immediately
// instead of propagating NaNs into the solver.
type ModelParameters struct {
	R     float64 // risk-free rate, >= 0
	Sigma float64 // volatility, > 0
	K     float64 // strike, > 0
	T     float64 // maturity in years, >= 0
}

// NewModelParameters validates and returns the parameter set.
func NewModelParameters(r, sigma, k, t float64) (ModelParameters, error) {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return ModelParameters{}, fmt.Errorf("%w: rate must be finite and non-negative, got %g", ErrInvalidArgument, r)
	}
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma <= 0 {
		return ModelParameters{}, fmt.Errorf("%w: volatility must be finite and positive, got %g", ErrInvalidArgument, sigma)
	}
	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
		return ModelParameters{}, fmt.Errorf("%w: strike must be finite and positive, got %g", ErrInvalidArgument, k)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return ModelParameters{}, fmt.Errorf("%w: maturity must be finite and non-negative, got %g", ErrInvalidArgument, t)
	}
	return ModelParameters{R: r, Sigma: sigma, K: k, T: t}, nil
}
