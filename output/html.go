package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/ChristianF88/catgene/layout"
	"github.com/ChristianF88/catgene/view"
)

// RenderHTML writes scene as a standalone go-echarts page
func RenderHTML(w io.Writer, scene *view.Scene) error {
	if scene == nil {
		return fmt.Errorf("rendering html: nil scene")
	}

	var chart components.Charter
	switch scene.Kind {
	case view.KindClustering:
		chart = clusteringChart(scene)
	case view.KindHeatmap:
		chart = heatmapChart(scene)
	default:
		chart = emptyChart(scene)
	}

	page := components.NewPage()
	page.PageTitle = scene.Options.Title
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(chart)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

func globalOpts(scene *view.Scene) []charts.GlobalOpts {
	o := scene.Options
	width, height := 600, 600
	if o.Extent != nil {
		width, height = o.Extent.Width, o.Extent.Height
	}
	grid := opts.Grid{ContainLabel: opts.Bool(true)}
	if o.Margin != nil {
		grid.Left = fmt.Sprintf("%dpx", o.Margin.L)
		grid.Right = fmt.Sprintf("%dpx", o.Margin.R)
		grid.Top = fmt.Sprintf("%dpx", o.Margin.T+30)
		grid.Bottom = fmt.Sprintf("%dpx", o.Margin.B)
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       o.Title,
			ChartID:         "catgene_" + strings.ReplaceAll(scene.TargetID, "-", ""),
			Width:           fmt.Sprintf("%dpx", width),
			Height:          fmt.Sprintf("%dpx", height),
			Theme:           types.ThemeWesteros,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: o.Title,
			Left:  "center",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithGridOpts(grid),
		charts.WithToolboxOpts(toolbox(o.ToolList())),
	}
}

// toolbox maps the tool names of the options onto the echarts toolbox
func toolbox(tools []string) opts.Toolbox {
	feature := &opts.ToolBoxFeature{}
	for _, t := range tools {
		switch t {
		case "save":
			feature.SaveAsImage = &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true), Type: "png"}
		case "box_zoom", "wheel_zoom":
			feature.DataZoom = &opts.ToolBoxFeatureDataZoom{Show: opts.Bool(true)}
		case "box_select":
			feature.Brush = &opts.ToolBoxFeatureBrush{Type: []string{"rect", "clear"}}
		case "reset":
			feature.Restore = &opts.ToolBoxFeatureRestore{Show: opts.Bool(true)}
		}
	}
	return opts.Toolbox{Show: opts.Bool(len(tools) > 0), Right: "5%", Feature: feature}
}

func clusteringChart(scene *view.Scene) *charts.Line {
	c := scene.Clustering
	axisLabels := axisNames(scene.Options.AxisLabels)

	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(scene)...)
	line.SetGlobalOptions(
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: axisLabels[0],
			Type: "value",
			Min:  0,
			Max:  c.PlotWidth,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      axisLabels[1],
			Type:      "value",
			Min:       0,
			Max:       c.PlotHeight,
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(false)},
		}),
	)

	width := float32(scene.Options.LineWidth)
	for i, s := range c.Segments {
		line.AddSeries(fmt.Sprintf("link %d", i), []opts.LineData{
			{Value: []float64{s[0], s[1]}},
			{Value: []float64{s[2], s[3]}},
		},
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "#1f77b4", Width: width}),
		)
	}

	line.Overlap(markerSeries(c.Markers), tickSeries(c.YTicks(), 0))
	return line
}

func heatmapChart(scene *view.Scene) *charts.HeatMap {
	h := scene.Heatmap
	axisLabels := axisNames(scene.Options.AxisLabels)

	data := make([]opts.HeatMapData, 0, len(h.Cells))
	for _, cell := range h.Cells {
		xi := gridIndex(cell.X, h.XAxis.Positions)
		yi := gridIndex(cell.Y, h.YAxis.Positions)
		var name string
		if yi < len(h.YAxis.Positions) {
			name, _ = h.LabelAt(h.YAxis.Positions[yi])
		}
		data = append(data, opts.HeatMapData{
			Name:  name,
			Value: [3]interface{}{xi, yi, cell.Value},
		})
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(globalOpts(scene)...)
	hm.SetGlobalOptions(
		charts.WithTooltipOpts(opts.Tooltip{
			Trigger: "item",
			Formatter: opts.FuncOpts(fmt.Sprintf(`function (params) {
		return params.name + '<br />%s: ' + params.value[2];
	}`, tooltipTitle(scene.Options.ToolTipTitles))),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:   opts.Bool(true),
			Min:    float32(h.Mapper.Low),
			Max:    float32(h.Mapper.High),
			Text:   []string{layout.FormatTick(h.Mapper.High, h.ColorBar.Unit), layout.FormatTick(h.Mapper.Low, h.ColorBar.Unit)},
			Orient: "vertical",
			Right:  "2%",
			Top:    "middle",
			InRange: &opts.VisualMapInRange{
				Color: h.Mapper.Palette,
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: axisLabels[0],
			Type: "category",
			Data: tickLabels(h.XTicks()),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: axisLabels[1],
			Type: "category",
			Data: tickLabels(h.YTicks()),
		}),
	)
	hm.AddSeries("heatmap", data)
	return hm
}

func emptyChart(scene *view.Scene) *charts.Line {
	o := scene.Options
	axisLabels := axisNames(o.AxisLabels)
	x := [2]float64{-1, 10}
	if len(o.XRange) == 2 {
		x = [2]float64{o.XRange[0], o.XRange[1]}
	}
	y := [2]float64{-1, 10}
	if len(o.YRange) == 2 {
		y = [2]float64{o.YRange[0], o.YRange[1]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(scene)...)
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: axisLabels[0], Type: "value", Min: x[0], Max: x[1]}),
		charts.WithYAxisOpts(opts.YAxis{Name: axisLabels[1], Type: "value", Min: y[0], Max: y[1]}),
	)
	line.AddSeries("empty", []opts.LineData{})
	return line
}

// markerSeries draws one square per similar catalyst, one series per color
func markerSeries(markers []layout.Marker) *charts.Scatter {
	sc := charts.NewScatter()
	byColor := map[string][]opts.ScatterData{}
	var order []string
	for _, m := range markers {
		if _, ok := byColor[m.Color]; !ok {
			order = append(order, m.Color)
		}
		byColor[m.Color] = append(byColor[m.Color], opts.ScatterData{
			Name:       m.Label,
			Value:      []float64{m.X, m.Y},
			Symbol:     "rect",
			SymbolSize: int(math.Max(1, math.Round(m.Height))),
		})
	}
	for _, color := range order {
		sc.AddSeries("similar "+color, byColor[color],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color, Opacity: opts.Float(0.8)}),
		)
	}
	return sc
}

// tickSeries prints the tick labels at their exact positions, one series per color
func tickSeries(ticks []layout.Tick, x float64) *charts.Scatter {
	sc := charts.NewScatter()
	byColor := map[string][]opts.ScatterData{}
	var order []string
	for _, t := range ticks {
		if _, ok := byColor[t.Color]; !ok {
			order = append(order, t.Color)
		}
		byColor[t.Color] = append(byColor[t.Color], opts.ScatterData{
			Name:   t.Label,
			Value:  []float64{x, t.Pos},
			Symbol: "none",
		})
	}
	for _, color := range order {
		sc.AddSeries("ticks "+color, byColor[color],
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Color:     color,
				Position:  "left",
				Formatter: "{b}",
			}),
		)
	}
	return sc
}

// gridIndex is the index of the axis position closest to pos
func gridIndex(pos float64, positions []float64) int {
	best := 0
	for i, p := range positions {
		if math.Abs(p-pos) < math.Abs(positions[best]-pos) {
			best = i
		}
	}
	return best
}

func tickLabels(ticks []layout.Tick) []string {
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		labels[i] = t.Label
	}
	return labels
}

func axisNames(labels []string) [2]string {
	names := [2]string{"x", "y"}
	for i := 0; i < len(labels) && i < 2; i++ {
		names[i] = labels[i]
	}
	return names
}

func tooltipTitle(titles []string) string {
	if len(titles) > 1 {
		return titles[1]
	}
	return "HeatValue"
}
