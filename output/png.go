package output

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ChristianF88/catgene/layout"
	"github.com/ChristianF88/catgene/view"
)

// color bar strip, as fractions of the plot width
const (
	colorBarLeft  = 1.04
	colorBarRight = 1.08
	colorBarText  = 1.09
	colorBarSpace = 1.2
)

// RenderPNG draws scene with gonum/plot and writes it as PNG
func RenderPNG(w io.Writer, scene *view.Scene) error {
	if scene == nil {
		return fmt.Errorf("rendering png: nil scene")
	}

	p := plot.New()
	p.Title.Text = scene.Options.Title
	names := axisNames(scene.Options.AxisLabels)
	p.X.Label.Text = names[0]
	p.Y.Label.Text = names[1]

	var err error
	switch scene.Kind {
	case view.KindClustering:
		err = drawClustering(p, scene)
	case view.KindHeatmap:
		err = drawHeatmap(p, scene)
	default:
		drawEmpty(p, scene)
	}
	if err != nil {
		return fmt.Errorf("rendering png: %w", err)
	}

	width, height := 600, 600
	if scene.Options.Extent != nil {
		width, height = scene.Options.Extent.Width, scene.Options.Extent.Height
	}
	wt, err := p.WriterTo(vg.Points(float64(width)), vg.Points(float64(height)), "png")
	if err != nil {
		return fmt.Errorf("rendering png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}

func drawClustering(p *plot.Plot, scene *view.Scene) error {
	c := scene.Clustering
	p.X.Min, p.X.Max = 0, c.PlotWidth
	p.Y.Min, p.Y.Max = 0, c.PlotHeight

	for _, s := range c.Segments {
		l, err := plotter.NewLine(plotter.XYs{{X: s[0], Y: s[1]}, {X: s[2], Y: s[3]}})
		if err != nil {
			return err
		}
		l.Color = layout.MustColor("#1f77b4")
		l.Width = vg.Points(scene.Options.LineWidth)
		p.Add(l)
	}

	if err := addMarkers(p, c.Markers); err != nil {
		return err
	}
	p.Y.Tick.Marker = constantTicks(c.YTicks(), "")
	return nil
}

func drawHeatmap(p *plot.Plot, scene *view.Scene) error {
	h := scene.Heatmap
	p.X.Min, p.X.Max = 0, h.PlotWidth*colorBarSpace
	p.Y.Min, p.Y.Max = 0, h.PlotHeight

	for _, cell := range h.Cells {
		poly, err := rect(cell.X, cell.Y, cell.Width, cell.Height)
		if err != nil {
			return err
		}
		poly.Color = layout.MustColor(cell.Color)
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	if err := addMarkers(p, h.Markers); err != nil {
		return err
	}
	if err := addColorBar(p, h); err != nil {
		return err
	}

	p.X.Tick.Marker = constantTicks(h.XTicks(), "")
	p.Y.Tick.Marker = constantTicks(h.YTicks(), h.Root)

	// tick labels share one style, so the root label is drawn separately in red
	if pos, ok := h.YAxis.Position(h.Root); ok {
		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: 0, Y: pos}},
			Labels: []string{h.Root},
		})
		if err != nil {
			return err
		}
		lbl.TextStyle[0].Color = layout.MustColor(layout.ColorRed)
		p.Add(lbl)
	}
	return nil
}

func drawEmpty(p *plot.Plot, scene *view.Scene) {
	p.X.Min, p.X.Max = -1, 10
	if r := scene.Options.XRange; len(r) == 2 {
		p.X.Min, p.X.Max = r[0], r[1]
	}
	p.Y.Min, p.Y.Max = -1, 10
	if r := scene.Options.YRange; len(r) == 2 {
		p.Y.Min, p.Y.Max = r[0], r[1]
	}
}

func addMarkers(p *plot.Plot, markers []layout.Marker) error {
	for _, m := range markers {
		poly, err := rect(m.X, m.Y, m.Width, m.Height)
		if err != nil {
			return err
		}
		poly.Color = layout.MustColor(m.Color)
		poly.LineStyle.Width = 0
		p.Add(poly)
	}
	return nil
}

// addColorBar draws one band per palette color with the bar ticks beside it
func addColorBar(p *plot.Plot, h *layout.Heatmap) error {
	palette := h.Mapper.Palette
	if len(palette) == 0 {
		return nil
	}
	band := h.PlotHeight / float64(len(palette))
	x0, x1 := h.PlotWidth*colorBarLeft, h.PlotWidth*colorBarRight
	for i, c := range palette {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: x0, Y: float64(i) * band},
			{X: x1, Y: float64(i) * band},
			{X: x1, Y: float64(i+1) * band},
			{X: x0, Y: float64(i+1) * band},
		})
		if err != nil {
			return err
		}
		poly.Color = layout.MustColor(c)
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	span := h.Mapper.High - h.Mapper.Low
	labels := plotter.XYLabels{}
	for _, t := range h.ColorBar.Ticks {
		y := 0.0
		if span > 0 {
			y = (t.Value - h.Mapper.Low) / span * h.PlotHeight
		}
		labels.XYs = append(labels.XYs, plotter.XY{X: h.PlotWidth * colorBarText, Y: y})
		labels.Labels = append(labels.Labels, t.Label)
	}
	if len(labels.Labels) == 0 {
		return nil
	}
	lbl, err := plotter.NewLabels(labels)
	if err != nil {
		return err
	}
	p.Add(lbl)
	return nil
}

func rect(cx, cy, w, h float64) (*plotter.Polygon, error) {
	return plotter.NewPolygon(plotter.XYs{
		{X: cx - w/2, Y: cy - h/2},
		{X: cx + w/2, Y: cy - h/2},
		{X: cx + w/2, Y: cy + h/2},
		{X: cx - w/2, Y: cy + h/2},
	})
}

// constantTicks pins tick labels to their exact positions; the label of
// skip is left blank.
func constantTicks(ticks []layout.Tick, skip string) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(ticks))
	for i, t := range ticks {
		label := t.Label
		if skip != "" && label == skip {
			label = ""
		}
		out[i] = plot.Tick{Value: t.Pos, Label: label}
	}
	return out
}
