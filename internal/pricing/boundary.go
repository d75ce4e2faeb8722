package pricing

import (
	"fmt"
	"math"
)

// Dirichlet boundary values for the Black-Scholes PDE at the spatial
// edges, as functions of time-to-expiry tau = T - t. These are the
// exact asymptotic limits of the European solution, not
// approximations: at tau=0 both collapse to the terminal payoff.
//
//	call:  S->0     gives 0
//	       S->SMax  gives SMax - K*exp(-r*tau)
//	put:   S->0     gives K*exp(-r*tau)
//	       S->SMax  gives 0

func validateBoundaryArgs(r, k, tau float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return fmt.Errorf("%w: rate must be finite and non-negative, got %g", ErrInvalidArgument, r)
	}
	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
		return fmt.Errorf("%w: strike must be finite and positive, got %g", ErrInvalidArgument, k)
	}
	if math.IsNaN(tau) || math.IsInf(tau, 0) || tau < 0 {
		return fmt.Errorf("%w: time-to-expiry must be finite and non-negative, got %g", ErrInvalidArgument, tau)
	}
	return nil
}

// LeftBoundary returns the Dirichlet value at the lower spatial edge.
func LeftBoundary(kind OptionKind, r, k, tau float64) (float64, error) {
	if err := validateBoundaryArgs(r, k, tau); err != nil {
		return 0, err
	}
	if kind == Call {
		return 0, nil
	}
	return k * math.Exp(-r*tau), nil
}

// RightBoundary returns the Dirichlet value at the upper spatial edge.
func RightBoundary(kind OptionKind, r, k, sMax, tau float64) (float64, error) {
	if err := validateBoundaryArgs(r, k, tau); err != nil {
		return 0, err
	}
	if math.IsNaN(sMax) || math.IsInf(sMax, 0) || sMax <= 0 {
		return 0, fmt.Errorf("%w: sMax must be finite and positive, got %g", ErrInvalidArgument, sMax)
	}
	if kind == Call {
		return sMax - k*math.Exp(-r*tau), nil
	}
	return 0, nil
}
