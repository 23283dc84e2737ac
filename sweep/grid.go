package sweep

import (
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/bcdannyboy/volsurf/pricing"
)

// PairPricer prices both sides of a European option for one parameter set.
// pricing.BlackScholes and pricing.BinomialPricePair both satisfy it.
type PairPricer func(pricing.Parameters) (call, put float64, err error)

// Grid holds call and put prices for every (volatility, strike) pair of a
// sweep. Rows follow Vols, columns follow Strikes; the renderer relies on
// that ordering for its axis labels. A Grid is never mutated after
// EvaluateGrid returns it.
type Grid struct {
	Vols    []float64
	Strikes []float64
	Calls   *mat.Dense
	Puts    *mat.Dense
}

// Dims returns the matrix shape: (len(Vols), len(Strikes)).
func (g *Grid) Dims() (rows, cols int) {
	return len(g.Vols), len(g.Strikes)
}

// Side returns the matrix for one option type.
func (g *Grid) Side(typ pricing.OptionType) *mat.Dense {
	if typ == pricing.Put {
		return g.Puts
	}
	return g.Calls
}

// EvaluateGrid prices every cell of the vols x strikes cross product. Cell
// [i][j] is priced with Volatility = vols[i] and Strike = strikes[j]
// overriding the base parameters, every other field held fixed. Cells are
// independent, so they are fanned out to a bounded pool of goroutines
// writing into disjoint matrix entries. The first pricing error aborts the
// sweep; the caller gets no partial grid.
func EvaluateGrid(base pricing.Parameters, vols, strikes []float64, price PairPricer) (*Grid, error) {
	if len(vols) == 0 {
		return nil, &pricing.InvalidParameterError{Name: "vols", Value: 0}
	}
	if len(strikes) == 0 {
		return nil, &pricing.InvalidParameterError{Name: "strikes", Value: 0}
	}

	g := &Grid{
		Vols:    append([]float64(nil), vols...),
		Strikes: append([]float64(nil), strikes...),
		Calls:   mat.NewDense(len(vols), len(strikes), nil),
		Puts:    mat.NewDense(len(vols), len(strikes), nil),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	semaphore := make(chan struct{}, runtime.GOMAXPROCS(0))

	for i, vol := range g.Vols {
		for j, strike := range g.Strikes {
			wg.Add(1)
			go func(i, j int, vol, strike float64) {
				defer wg.Done()
				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				mu.Lock()
				failed := firstErr != nil
				mu.Unlock()
				if failed {
					return
				}

				cell := base
				cell.Volatility = vol
				cell.Strike = strike

				call, put, err := price(cell)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("grid cell vol=%g strike=%g: %w", vol, strike, err)
					}
					mu.Unlock()
					return
				}

				g.Calls.Set(i, j, call)
				g.Puts.Set(i, j, put)
			}(i, j, vol, strike)
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return g, nil
}
