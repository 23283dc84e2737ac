package sweep

import (
	"gonum.org/v1/gonum/floats"

	"github.com/bcdannyboy/volsurf/pricing"
)

// DefaultVolSpread and DefaultVolStep sweep +/- 10 vol points around the
// base volatility in 3-point increments.
const (
	DefaultVolSpread = 0.10
	DefaultVolStep   = 0.03
)

// StrikeAxis returns count strikes evenly spaced over [kmin, kmax],
// inclusive of both endpoints. kmin == kmax is not an error: the axis
// collapses to count copies of the single strike and the grid becomes a
// constant-strike surface.
func StrikeAxis(kmin, kmax float64, count int) ([]float64, error) {
	if count < 1 {
		return nil, &pricing.InvalidParameterError{Name: "count", Value: float64(count)}
	}
	if kmin <= 0 {
		return nil, &pricing.InvalidParameterError{Name: "kmin", Value: kmin}
	}
	if kmax < kmin {
		return nil, &pricing.InvalidParameterError{Name: "kmax", Value: kmax}
	}
	if count == 1 {
		return []float64{kmin}, nil
	}
	return floats.Span(make([]float64, count), kmin, kmax), nil
}

// VolatilityAxis returns volatilities stepping up from base-spread,
// stopping after the first value at or past base+spread. The overshooting
// endpoint is deliberate: surfaces are labeled from the axis values, so
// nothing downstream depends on a tidy upper bound. A negative start is
// clamped to zero, keeping the axis
// strictly increasing and every sample a usable volatility.
func VolatilityAxis(base, spread, step float64) ([]float64, error) {
	if base < 0 {
		return nil, &pricing.InvalidParameterError{Name: "base", Value: base}
	}
	if spread < 0 {
		return nil, &pricing.InvalidParameterError{Name: "spread", Value: spread}
	}
	if step <= 0 {
		return nil, &pricing.InvalidParameterError{Name: "step", Value: step}
	}

	lo := base - spread
	if lo < 0 {
		lo = 0
	}
	hi := base + spread

	var axis []float64
	for i := 0; ; i++ {
		v := lo + float64(i)*step
		axis = append(axis, v)
		if v >= hi-1e-12 {
			break
		}
	}
	return axis, nil
}
