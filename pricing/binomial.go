package pricing

import (
	"math"
	"sync"
)

// latticePool recycles backward-induction buffers across price calls so a
// grid sweep does not allocate a fresh O(N) slice per cell.
var latticePool = sync.Pool{
	New: func() interface{} {
		return make([]float64, 0, 1024)
	},
}

// BinomialPrice prices a European option on a Cox-Ross-Rubinstein lattice
// with Steps time slices. The terminal layer is built by multiplicative
// recurrence from the all-down leaf S*d^N, each node scaled by u/d, which
// keeps the node ratios floating-point consistent; option values are then
// folded back to the root by discounted expectation under the risk-neutral
// up-probability.
func BinomialPrice(p Parameters, typ OptionType) (float64, error) {
	if err := p.validateLattice(); err != nil {
		return 0, err
	}

	if degenerate(p) {
		return discountedIntrinsic(p, typ), nil
	}

	n := p.Steps
	dt := p.TimeToMaturity / float64(n)
	u := math.Exp(p.Volatility * math.Sqrt(dt))
	d := 1 / u

	growth := math.Exp((p.Rate - p.DividendYield) * dt)
	prob := (growth - d) / (u - d)
	if !(prob > 0 && prob < 1) {
		return 0, &ModelDomainError{Probability: prob}
	}

	// Discount factor and probability are fixed for the whole tree;
	// compute them once, not per node.
	discount := math.Exp(-p.Rate * dt)
	payoff := typ.payoff()

	values := latticePool.Get().([]float64)
	if cap(values) < n+1 {
		values = make([]float64, n+1)
	}
	values = values[:n+1]

	ratio := u / d
	terminal := p.Spot * math.Pow(d, float64(n))
	for i := 0; i <= n; i++ {
		values[i] = payoff(terminal, p.Strike)
		terminal *= ratio
	}

	for j := n - 1; j >= 0; j-- {
		for i := 0; i <= j; i++ {
			values[i] = discount * (prob*values[i+1] + (1-prob)*values[i])
		}
	}

	root := values[0]
	latticePool.Put(values[:0])
	return root, nil
}

// BinomialPricePair prices both sides so the lattice satisfies the same
// grid-harness contract as the closed form.
func BinomialPricePair(p Parameters) (call, put float64, err error) {
	call, err = BinomialPrice(p, Call)
	if err != nil {
		return 0, 0, err
	}
	put, err = BinomialPrice(p, Put)
	if err != nil {
		return 0, 0, err
	}
	return call, put, nil
}
