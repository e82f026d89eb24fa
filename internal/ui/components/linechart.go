package components

import (
	"math"
	"strconv"

	"github.com/guptarohit/asciigraph"

	"github.com/abhisek/voltscope/internal/ui/theme"
)

// Series is one named line on a LineChart.
type Series struct {
	Name   string
	Values []float64
	Color  asciigraph.AnsiColor
}

// LineChart plots every series against one shared y axis, so magnitudes
// compare across series. Points are interpolated to fill Width.
type LineChart struct {
	Series  []Series
	Width   int
	Height  int
	Caption string
}

// View renders the plot, an optional caption and a legend. It returns ""
// when there is nothing to draw.
func (c LineChart) View() string {
	if len(c.Series) == 0 {
		return ""
	}

	data := make([][]float64, len(c.Series))
	colors := make([]asciigraph.AnsiColor, len(c.Series))
	names := make([]string, len(c.Series))
	top := 0.0
	for i, s := range c.Series {
		if len(s.Values) == 0 {
			return ""
		}
		data[i] = s.Values
		colors[i] = s.Color
		names[i] = s.Name
		for _, v := range s.Values {
			top = max(top, math.Abs(v))
		}
	}

	opts := []asciigraph.Option{
		asciigraph.Height(max(c.Height, 2)),
		asciigraph.Precision(0),
		asciigraph.AxisColor(theme.PlotAxis),
		asciigraph.LabelColor(theme.PlotLabel),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
	}
	if w := c.Width - axisWidth(top); w >= 2 {
		opts = append(opts, asciigraph.Width(w))
	}
	if c.Caption != "" {
		opts = append(opts, asciigraph.Caption(c.Caption), asciigraph.CaptionColor(theme.PlotLabel))
	}
	return asciigraph.PlotMany(data, opts...)
}

// axisWidth is the number of cells asciigraph spends left of the plot: a
// padded label plus the axis column.
func axisWidth(top float64) int {
	label := len(strconv.FormatFloat(top, 'f', 0, 64)) + 1
	return label + 2
}
