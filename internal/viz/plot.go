package viz

import (
	"github.com/guptarohit/asciigraph"
)

// PlotSeries renders a line plot of data. Series longer than width are
// down-sampled by striding so the plot keeps its first and last points.
func PlotSeries(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return Subtle.Render("(no data)")
	}

	return asciigraph.Plot(Downsample(data, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotMany overlays several series of equal meaning, one color each.
func PlotMany(series [][]float64, width, height int, caption string) string {
	sampled := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) > 0 {
			sampled = append(sampled, Downsample(s, width))
		}
	}
	if len(sampled) == 0 {
		return Subtle.Render("(no data)")
	}

	colors := []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Yellow, asciigraph.Green, asciigraph.Magenta, asciigraph.Red}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors[:min(len(sampled), len(colors))]...),
	}
	return asciigraph.PlotMany(sampled, opts...)
}

// Downsample returns at most n points of data, always including the last.
func Downsample(data []float64, n int) []float64 {
	if n <= 1 || len(data) <= n {
		return data
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = data[i*(len(data)-1)/(n-1)]
	}
	return out
}
