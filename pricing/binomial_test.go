package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseParams() Parameters {
	return Parameters{
		Spot:           100,
		Strike:         100,
		TimeToMaturity: 1,
		Rate:           0.05,
		Volatility:     0.2,
		Steps:          500,
	}
}

func TestBinomialPriceReferenceCase(t *testing.T) {
	call, err := BinomialPrice(baseParams(), Call)
	require.NoError(t, err)
	assert.InDelta(t, 10.4506, call, 0.05)
}

func TestBinomialPriceConvergesToBlackScholes(t *testing.T) {
	p := baseParams()
	p.Steps = 2000

	call, err := BinomialPrice(p, Call)
	require.NoError(t, err)
	put, err := BinomialPrice(p, Put)
	require.NoError(t, err)

	bsCall, bsPut, err := BlackScholes(p)
	require.NoError(t, err)

	assert.InDelta(t, bsCall, call, 1e-2)
	assert.InDelta(t, bsPut, put, 1e-2)
}

func TestBinomialPriceZeroVolatility(t *testing.T) {
	p := baseParams()
	p.Volatility = 0

	call, err := BinomialPrice(p, Call)
	require.NoError(t, err)
	require.False(t, math.IsNaN(call))
	assert.InDelta(t, math.Max(0, 100-100*math.Exp(-0.05)), call, 1e-12)

	put, err := BinomialPrice(p, Put)
	require.NoError(t, err)
	assert.Zero(t, put)
}

func TestBinomialPriceZeroMaturity(t *testing.T) {
	p := baseParams()
	p.TimeToMaturity = 0
	p.Spot = 90

	call, err := BinomialPrice(p, Call)
	require.NoError(t, err)
	assert.Zero(t, call)

	put, err := BinomialPrice(p, Put)
	require.NoError(t, err)
	assert.InDelta(t, 10, put, 1e-12)
}

func TestBinomialPriceBounds(t *testing.T) {
	for _, strike := range []float64{50, 80, 100, 120, 200} {
		for _, vol := range []float64{0.05, 0.2, 0.6} {
			p := baseParams()
			p.Strike = strike
			p.Volatility = vol
			p.Steps = 200

			call, err := BinomialPrice(p, Call)
			require.NoError(t, err)
			put, err := BinomialPrice(p, Put)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, call, 0.0)
			assert.LessOrEqual(t, call, p.Spot)
			assert.GreaterOrEqual(t, put, 0.0)
			assert.LessOrEqual(t, put, strike*math.Exp(-p.Rate*p.TimeToMaturity)+1e-12)
		}
	}
}

func TestBinomialPricePutCallParity(t *testing.T) {
	p := baseParams()
	p.DividendYield = 0.03
	p.Steps = 2000

	call, put, err := BinomialPricePair(p)
	require.NoError(t, err)

	parity := p.Spot*math.Exp(-p.DividendYield*p.TimeToMaturity) - p.Strike*math.Exp(-p.Rate*p.TimeToMaturity)
	assert.InDelta(t, parity, call-put, 1e-2)
}

func TestBinomialPriceArbitrageInconsistent(t *testing.T) {
	// One step over a full year with near-zero volatility but a 100% rate:
	// the riskless growth outruns the up move, pushing the implied
	// probability above 1.
	p := Parameters{
		Spot:           100,
		Strike:         100,
		TimeToMaturity: 1,
		Rate:           1.0,
		Volatility:     0.01,
		Steps:          1,
	}

	_, err := BinomialPrice(p, Call)
	var domainErr *ModelDomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Greater(t, domainErr.Probability, 1.0)
}

func TestBinomialPriceInvalidParameters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"zero spot", func(p *Parameters) { p.Spot = 0 }},
		{"negative strike", func(p *Parameters) { p.Strike = -1 }},
		{"negative maturity", func(p *Parameters) { p.TimeToMaturity = -0.5 }},
		{"negative volatility", func(p *Parameters) { p.Volatility = -0.1 }},
		{"zero steps", func(p *Parameters) { p.Steps = 0 }},
		{"excessive steps", func(p *Parameters) { p.Steps = MaxSteps + 1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baseParams()
			tc.mutate(&p)

			_, err := BinomialPrice(p, Call)
			var invalid *InvalidParameterError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestBinomialPriceScratchReuse(t *testing.T) {
	// Back-to-back calls share pooled buffers; prices must not bleed
	// between calls.
	p := baseParams()
	p.Steps = 100

	first, err := BinomialPrice(p, Call)
	require.NoError(t, err)

	p.Strike = 120
	_, err = BinomialPrice(p, Put)
	require.NoError(t, err)

	p.Strike = 100
	again, err := BinomialPrice(p, Call)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}
