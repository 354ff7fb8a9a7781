package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ChristianF88/catgene/analysis"
)

var (
	parallelRoot    = drawing.ColorFromHex("#ff0000")
	parallelSimilar = drawing.ColorFromHex("#008000")
	parallelOther   = drawing.ColorFromHex("#808080").WithAlpha(96)
)

// PlotParallel draws the area profile of every catalyst as a parallel
// coordinate chart: the root in red, similar catalysts green, the rest grey.
func PlotParallel(w io.Writer, res *analysis.Result) error {
	if res == nil || len(res.ParallelData) == 0 {
		return fmt.Errorf("plotting parallel coordinates: no parallel data")
	}
	if len(res.AreaColumns) < 2 {
		return fmt.Errorf("plotting parallel coordinates: need at least 2 areas, got %d", len(res.AreaColumns))
	}

	xs := make([]float64, len(res.AreaColumns))
	ticks := make([]chart.Tick, len(res.AreaColumns))
	for i, name := range res.AreaColumns {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: name}
	}

	similar := make(map[string]bool, len(res.SimilarGeneCatalyst))
	for _, s := range res.SimilarGeneCatalyst {
		similar[s] = true
	}

	names := make([]string, 0, len(res.ParallelData))
	for name := range res.ParallelData {
		names = append(names, name)
	}
	// others first so highlighted lines are drawn on top
	sort.Slice(names, func(i, j int) bool {
		ri, rj := parallelRank(names[i], res.RootCatalyst, similar), parallelRank(names[j], res.RootCatalyst, similar)
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})

	var series []chart.Series
	for _, name := range names {
		values := res.ParallelData[name]
		if len(values) != len(xs) {
			continue
		}
		style := chart.Style{StrokeColor: parallelOther, StrokeWidth: 1}
		switch parallelRank(name, res.RootCatalyst, similar) {
		case 2:
			style = chart.Style{StrokeColor: parallelRoot, StrokeWidth: 3}
		case 1:
			style = chart.Style{StrokeColor: parallelSimilar, StrokeWidth: 2}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: values,
			Style:   style,
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("plotting parallel coordinates: no complete profiles")
	}

	graph := chart.Chart{
		Title:  "Catalyst gene profiles",
		Width:  900,
		Height: 500,
		XAxis: chart.XAxis{
			Name:  "area",
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "value",
		},
		Series: series,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("plotting parallel coordinates: %w", err)
	}
	return nil
}

func parallelRank(name, root string, similar map[string]bool) int {
	switch {
	case name == root:
		return 2
	case similar[name]:
		return 1
	default:
		return 0
	}
}
