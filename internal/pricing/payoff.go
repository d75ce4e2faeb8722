package pricing

import (
	"fmt"
	"math"
	"strings"
)

// OptionKind selects the vanilla European payoff.
type OptionKind int

const (
	Call OptionKind = iota
	Put
)

func (k OptionKind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
}

// ParseOptionKind maps "call"/"put" (case-insensitive, also "c"/"p")
// to an OptionKind.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	default:
		return 0, fmt.Errorf("%w: unknown option kind %q", ErrInvalidArgument, s)
	}
}

// TerminalPayoff returns the option value at expiry: max(s-k, 0) for
// calls, max(k-s, 0) for puts.
func TerminalPayoff(kind OptionKind, k, s float64) (float64, error) {
	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
		return 0, fmt.Errorf("%w: strike must be finite and positive, got %g", ErrInvalidArgument, k)
	}
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
		return 0, fmt.Errorf("%w: spot must be finite and non-negative, got %g", ErrInvalidArgument, s)
	}
	if kind == Call {
		return math.Max(s-k, 0), nil
	}
	return math.Max(k-s, 0), nil
}
