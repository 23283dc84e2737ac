package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// BlackScholes prices a European call and put under the
// Black-Scholes-Merton model with a continuous dividend yield. A zero
// volatility or maturity resolves to the discounted intrinsic payoff
// instead of dividing by zero in d1.
func BlackScholes(p Parameters) (call, put float64, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}

	if degenerate(p) {
		return discountedIntrinsic(p, Call), discountedIntrinsic(p, Put), nil
	}

	volSqrtT := p.Volatility * math.Sqrt(p.TimeToMaturity)
	d1 := (math.Log(p.Spot/p.Strike) + (p.Rate-p.DividendYield+0.5*p.Volatility*p.Volatility)*p.TimeToMaturity) / volSqrtT
	d2 := d1 - volSqrtT

	spotPV := p.Spot * math.Exp(-p.DividendYield*p.TimeToMaturity)
	strikePV := p.Strike * math.Exp(-p.Rate*p.TimeToMaturity)

	call = spotPV*stdNormal.CDF(d1) - strikePV*stdNormal.CDF(d2)
	put = strikePV*stdNormal.CDF(-d2) - spotPV*stdNormal.CDF(-d1)
	return call, put, nil
}
