package pricing

import (
	"fmt"
	"math"
)

// Fixed bump sizes for the finite-difference Greeks.
const (
	spotBumpFrac = 0.01 // relative spot bump for delta/gamma
	thetaBump    = 0.01 // years shaved off maturity
	vegaBump     = 0.01 // absolute volatility bump
)

// PricingResult is the output of one full pricing call.
type PricingResult struct {
	Price         float64 `json:"price"`
	AnalyticPrice float64 `json:"analytic_price"`
	AbsError      float64 `json:"abs_error"`
	Delta         float64 `json:"delta"`
	Gamma         float64 `json:"gamma"`
	Theta         float64 `json:"theta"`
	Vega          float64 `json:"vega"`
}

// PricingRequest is one option to price. Batch pricing applies
// PriceOption to each request independently.
type PricingRequest struct {
	Kind  OptionKind `json:"-"`
	S0    float64    `json:"spot"`
	K     float64    `json:"strike"`
	R     float64    `json:"rate"`
	Sigma float64    `json:"volatility"`
	T     float64    `json:"maturity"`
}

// BatchItem pairs a request with its outcome. A failed request never
// affects its neighbours.
type BatchItem struct {
	Request PricingRequest
	Result  *PricingResult
	Err     error
}

// PriceEuro prices one European option on an explicit grid and
// reports the PDE price together with its absolute error against the
// closed-form reference.
//
// At t=0 no solve is needed: the terminal payoff is the analytic
// solution at expiry, so the error is exactly zero.
func PriceEuro(p ModelParameters, g Grid, s0 float64, scheme Scheme, kind OptionKind) (price, absErr float64, err error) {
	if math.IsNaN(s0) || math.IsInf(s0, 0) || s0 <= 0 {
		return 0, 0, fmt.Errorf("%w: spot must be finite and positive, got %g", ErrInvalidArgument, s0)
	}
	if p.T == 0 {
		v, err := TerminalPayoff(kind, p.K, s0)
		if err != nil {
			return 0, 0, err
		}
		return v, 0, nil
	}

	values, err := SolveEuropean(p, g, kind, scheme)
	if err != nil {
		return 0, 0, err
	}
	pdePrice, err := InterpolateAt(g, values, s0)
	if err != nil {
		return 0, 0, err
	}
	ref, err := AnalyticPrice(kind, p.R, p.Sigma, p.T, s0, p.K)
	if err != nil {
		return 0, 0, err
	}
	return pdePrice, math.Abs(pdePrice - ref), nil
}

// PriceOption prices one option with automatically chosen grid bounds
// and layers finite-difference Greeks on top by bump-and-reprice.
//
// Delta and gamma come from a single solve, interpolated at s0 and
// s0 +/- eps. Theta and vega each trigger an independent full solve
// with the bumped input; the engine is treated as a black-box oracle
// rather than deriving sensitivity equations.
func PriceOption(req PricingRequest, nS, nT int, scheme Scheme) (*PricingResult, error) {
	if math.IsNaN(req.S0) || math.IsInf(req.S0, 0) || req.S0 <= 0 {
		return nil, fmt.Errorf("%w: spot must be finite and positive, got %g", ErrInvalidArgument, req.S0)
	}
	params, err := NewModelParameters(req.R, req.Sigma, req.K, req.T)
	if err != nil {
		return nil, err
	}

	sMin, sMax := RecommendedBounds(req.Kind, req.S0, req.K, req.Sigma, req.T)
	grid, err := NewGrid(sMin, sMax, nS, nT)
	if err != nil {
		return nil, err
	}

	res := &PricingResult{}

	if params.T == 0 {
		// Expiry: price is the payoff, error zero, greeks from the
		// payoff kink are not meaningful except delta's sign.
		v, err := TerminalPayoff(req.Kind, params.K, req.S0)
		if err != nil {
			return nil, err
		}
		res.Price = v
		res.AnalyticPrice = v
		return res, nil
	}

	values, err := SolveEuropean(params, grid, req.Kind, scheme)
	if err != nil {
		return nil, err
	}
	base, err := InterpolateAt(grid, values, req.S0)
	if err != nil {
		return nil, err
	}
	ref, err := AnalyticPrice(req.Kind, params.R, params.Sigma, params.T, req.S0, params.K)
	if err != nil {
		return nil, err
	}
	res.Price = base
	res.AnalyticPrice = ref
	res.AbsError = math.Abs(base - ref)

	// Delta/gamma: central differences on the already-solved grid.
	eps := spotBumpFrac * req.S0
	up, err := InterpolateAt(grid, values, req.S0+eps)
	if err != nil {
		return nil, err
	}
	down, err := InterpolateAt(grid, values, req.S0-eps)
	if err != nil {
		return nil, err
	}
	res.Delta = (up - down) / (2 * eps)
	res.Gamma = (up - 2*base + down) / (eps * eps)

	// Theta: reprice with maturity shortened by a fixed increment.
	// Near expiry the increment clamps to the remaining maturity, so
	// divide by the realized step, not the nominal one.
	shortT := math.Max(params.T-thetaBump, 0)
	thetaParams := params
	thetaParams.T = shortT
	thetaPrice, _, err := PriceEuro(thetaParams, grid, req.S0, scheme, req.Kind)
	if err != nil {
		return nil, err
	}
	res.Theta = (thetaPrice - base) / (params.T - shortT)

	// Vega: reprice with volatility bumped up.
	vegaParams := params
	vegaParams.Sigma = params.Sigma + vegaBump
	vegaPrice, _, err := PriceEuro(vegaParams, grid, req.S0, scheme, req.Kind)
	if err != nil {
		return nil, err
	}
	res.Vega = (vegaPrice - base) / vegaBump

	return res, nil
}

// PriceBatch prices each request independently with shared grid-size
// and scheme defaults. No state or caching is shared across calls, so
// one failure leaves the other items intact.
func PriceBatch(reqs []PricingRequest, nS, nT int, scheme Scheme) []BatchItem {
	out := make([]BatchItem, len(reqs))
	for i, req := range reqs {
		res, err := PriceOption(req, nS, nT, scheme)
		out[i] = BatchItem{Request: req, Result: res, Err: err}
	}
	return out
}
