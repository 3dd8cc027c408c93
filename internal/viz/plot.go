package viz

import (
	"errors"

	"github.com/guptarohit/asciigraph"
)

const (
	PlotHeight = 10
	PlotWidth  = 80
)

var errNoData = errors.New("viz: nothing to plot")

// PlotSeries draws one series as an ASCII line chart.
func PlotSeries(data []float64, caption string, height, width int) (string, error) {
	if len(data) == 0 {
		return "", errNoData
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Blue,
	asciigraph.Yellow,
	asciigraph.Cyan,
}

// PlotMany overlays several series of equal length, one color each.
func PlotMany(series [][]float64, caption string, height, width int) (string, error) {
	if len(series) == 0 || len(series[0]) == 0 {
		return "", errNoData
	}
	colors := make([]asciigraph.AnsiColor, len(series))
	for i := range series {
		colors[i] = seriesColors[i%len(seriesColors)]
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	), nil
}
