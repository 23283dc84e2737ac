package render

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"

	"github.com/bcdannyboy/volsurf/pricing"
	"github.com/bcdannyboy/volsurf/sweep"
)

// Shade buckets from coolest to hottest. Cell text flips to black on the
// brighter backgrounds so every value stays readable, the terminal version
// of a luminance-based contrast switch.
var (
	cellShades = []int{
		tablewriter.BgBlueColor,
		tablewriter.BgCyanColor,
		tablewriter.BgGreenColor,
		tablewriter.BgYellowColor,
		tablewriter.BgRedColor,
	}
	cellText = []int{
		tablewriter.FgHiWhiteColor,
		tablewriter.FgBlackColor,
		tablewriter.FgBlackColor,
		tablewriter.FgBlackColor,
		tablewriter.FgHiWhiteColor,
	}
)

// Heatmap writes one side of a priced grid as a shaded table, volatility
// samples down the rows and strikes across the columns, in the same row and
// column order as the grid's axes. Shading is normalized against the
// rendered side's own min and max.
func Heatmap(w io.Writer, title string, g *sweep.Grid, typ pricing.OptionType) error {
	m := g.Side(typ)

	lo, err := stats.Min(m.RawMatrix().Data)
	if err != nil {
		return fmt.Errorf("heatmap %s: %w", title, err)
	}
	hi, err := stats.Max(m.RawMatrix().Data)
	if err != nil {
		return fmt.Errorf("heatmap %s: %w", title, err)
	}

	fmt.Fprintln(w, title)

	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_CENTER)

	header := make([]string, 0, len(g.Strikes)+1)
	header = append(header, "vol \\ strike")
	for _, k := range g.Strikes {
		header = append(header, fmt.Sprintf("%.2f", k))
	}
	table.SetHeader(header)

	for i, vol := range g.Vols {
		row := make([]string, 0, len(g.Strikes)+1)
		colors := make([]tablewriter.Colors, 0, len(g.Strikes)+1)

		row = append(row, fmt.Sprintf("%.2f", vol))
		colors = append(colors, tablewriter.Colors{tablewriter.Bold})

		for j := range g.Strikes {
			v := m.At(i, j)
			b := shadeBucket(v, lo, hi)
			row = append(row, fmt.Sprintf("%.2f", v))
			colors = append(colors, tablewriter.Colors{cellText[b], cellShades[b]})
		}

		table.Rich(row, colors)
	}

	table.Render()
	return nil
}

// shadeBucket maps a value to a shade index. A flat surface (hi == lo)
// renders entirely in the coolest shade.
func shadeBucket(v, lo, hi float64) int {
	if hi <= lo {
		return 0
	}
	b := int(float64(len(cellShades)) * (v - lo) / (hi - lo))
	if b >= len(cellShades) {
		b = len(cellShades) - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
