package render

import (
	"io/ioutil"

	"github.com/xhhuango/json"
	"gonum.org/v1/gonum/mat"

	"github.com/bcdannyboy/volsurf/pricing"
	"github.com/bcdannyboy/volsurf/sweep"
)

// Report is the JSON artifact handed to downstream plotting tools: the
// specific price pair plus both full surfaces with the axes used to build
// them, so tick labels can be reconstructed without re-pricing.
type Report struct {
	Model          string      `json:"model"`
	Spot           float64     `json:"spot"`
	Strike         float64     `json:"strike"`
	TimeToMaturity float64     `json:"time_to_maturity"`
	Rate           float64     `json:"rate"`
	Volatility     float64     `json:"volatility"`
	DividendYield  float64     `json:"dividend_yield"`
	Steps          int         `json:"steps,omitempty"`
	SpecificCall   float64     `json:"specific_call"`
	SpecificPut    float64     `json:"specific_put"`
	VolatilityAxis []float64   `json:"volatility_axis"`
	StrikeAxis     []float64   `json:"strike_axis"`
	CallPrices     [][]float64 `json:"call_prices"`
	PutPrices      [][]float64 `json:"put_prices"`
}

// NewReport flattens a priced grid into the export shape.
func NewReport(p pricing.Parameters, model string, call, put float64, g *sweep.Grid) Report {
	return Report{
		Model:          model,
		Spot:           p.Spot,
		Strike:         p.Strike,
		TimeToMaturity: p.TimeToMaturity,
		Rate:           p.Rate,
		Volatility:     p.Volatility,
		DividendYield:  p.DividendYield,
		Steps:          p.Steps,
		SpecificCall:   call,
		SpecificPut:    put,
		VolatilityAxis: g.Vols,
		StrikeAxis:     g.Strikes,
		CallPrices:     matrixRows(g.Calls),
		PutPrices:      matrixRows(g.Puts),
	}
}

// WriteJSON writes the report to path.
func WriteJSON(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}

func matrixRows(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		copy(rows[i], m.RawRowView(i))
	}
	return rows
}
