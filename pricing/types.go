package pricing

import (
	"fmt"
	"math"
)

// MaxSteps bounds the lattice depth. A single price call is O(Steps^2) and a
// grid sweep runs one per cell, so runaway step counts are rejected up front.
const MaxSteps = 50000

type OptionType int

const (
	Call OptionType = iota
	Put
)

func (t OptionType) String() string {
	if t == Put {
		return "put"
	}
	return "call"
}

// payoff returns the exercise value function for the option type, selected
// once per price call rather than branching at every node.
func (t OptionType) payoff() func(spot, strike float64) float64 {
	if t == Put {
		return func(spot, strike float64) float64 { return math.Max(0, strike-spot) }
	}
	return func(spot, strike float64) float64 { return math.Max(0, spot-strike) }
}

type Parameters struct {
	Spot           float64 // S, current underlying price
	Strike         float64 // K
	TimeToMaturity float64 // T, in years
	Rate           float64 // r, annualized risk-free rate
	Volatility     float64 // sigma, annualized
	DividendYield  float64 // q, continuous yield
	Steps          int     // N, lattice depth (binomial only)
}

// Validate rejects parameters no pricer can work with. A zero maturity or
// zero volatility is not invalid here: both collapse to the deterministic
// discounted payoff.
func (p Parameters) Validate() error {
	switch {
	case p.Spot <= 0:
		return &InvalidParameterError{Name: "spot", Value: p.Spot}
	case p.Strike <= 0:
		return &InvalidParameterError{Name: "strike", Value: p.Strike}
	case p.TimeToMaturity < 0:
		return &InvalidParameterError{Name: "timeToMaturity", Value: p.TimeToMaturity}
	case p.Volatility < 0:
		return &InvalidParameterError{Name: "volatility", Value: p.Volatility}
	}
	return nil
}

func (p Parameters) validateLattice() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Steps < 1 || p.Steps > MaxSteps {
		return &InvalidParameterError{Name: "steps", Value: float64(p.Steps)}
	}
	return nil
}

// degenerate reports whether the forward is deterministic, in which case
// both models price the discounted intrinsic payoff instead of running
// their formulas into a division by zero.
func degenerate(p Parameters) bool {
	return p.Volatility == 0 || p.TimeToMaturity == 0
}

// discountedIntrinsic is the sigma=0 / T=0 limit of both pricers:
// max(0, S*e^(-qT) - K*e^(-rT)) for a call and the mirror image for a put.
func discountedIntrinsic(p Parameters, typ OptionType) float64 {
	spotPV := p.Spot * math.Exp(-p.DividendYield*p.TimeToMaturity)
	strikePV := p.Strike * math.Exp(-p.Rate*p.TimeToMaturity)
	return typ.payoff()(spotPV, strikePV)
}

// InvalidParameterError reports a single parameter no pricer can accept.
type InvalidParameterError struct {
	Name  string
	Value float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %g", e.Name, e.Value)
}

// ModelDomainError reports a parameter combination that looks valid field
// by field but is jointly arbitrage-inconsistent: the implied risk-neutral
// up-probability falls outside (0,1), so backward induction would produce
// a meaningless price.
type ModelDomainError struct {
	Probability float64
}

func (e *ModelDomainError) Error() string {
	return fmt.Sprintf("risk-neutral probability %g outside (0,1)", e.Probability)
}
