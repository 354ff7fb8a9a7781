package layout

// HeatmapData is the heatmap payload: parallel xData/yData/heatVal arrays
// plus the category labels of both axes.
type HeatmapData struct {
	XTicks  []string  `json:"xTicks"`
	YTicks  []string  `json:"yTicks"`
	XData   []float64 `json:"xData"`
	YData   []float64 `json:"yData"`
	HeatVal []float64 `json:"heatVal"`
}

// ColorSettings configures the heatmap color mapper and its color bar
type ColorSettings struct {
	Colors   []string
	ColorMap string
	MinMax   []float64
	Unit     string
	FontSize string
}

// Cell is one heatmap rectangle centered on X, Y
type Cell struct {
	X, Y   float64
	Width  float64
	Height float64
	Value  float64
	Color  string
}

// Heatmap is a heatmap grid laid out in plot pixel space
type Heatmap struct {
	PlotWidth  float64
	PlotHeight float64
	XRange     float64
	YRange     float64
	ScaleX     float64
	ScaleY     float64
	Cells      []Cell
	XAxis      Axis
	YAxis      Axis
	Root       string
	Markers    []Marker
	Mapper     *LinearColorMapper
	ColorBar   ColorBar
}

// NewHeatmap sizes each cell to one grid step and colors it with a linear
// mapper over the configured palette.
func NewHeatmap(plotWidth, plotHeight float64, data HeatmapData, root string, similar []string, cs ColorSettings) (*Heatmap, error) {
	n := len(data.HeatVal)
	if n == 0 {
		return nil, ErrNoCells
	}
	if len(data.XData) != n || len(data.YData) != n {
		return nil, ErrRaggedHeatmap
	}

	minX, maxX := minMax(data.XData)
	minY, maxY := minMax(data.YData)

	h := &Heatmap{
		PlotWidth:  plotWidth,
		PlotHeight: plotHeight,
		XRange:     maxX - minX,
		YRange:     maxY - minY,
		Root:       root,
	}
	h.ScaleX = Scale(plotWidth, h.XRange+1)
	h.ScaleY = Scale(plotHeight, h.YRange+1)

	h.Mapper = NewLinearColorMapper(ResolvePalette(cs.Colors, cs.ColorMap), cs.MinMax, data.HeatVal)
	h.ColorBar = NewColorBar(h.Mapper, cs.Unit, cs.FontSize)

	h.Cells = make([]Cell, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		x, y := h.Transform(data.XData[i], data.YData[i])
		xs[i], ys[i] = x, y
		h.Cells[i] = Cell{
			X:      x,
			Y:      y,
			Width:  h.ScaleX,
			Height: h.ScaleY,
			Value:  data.HeatVal[i],
			Color:  h.Mapper.Map(data.HeatVal[i]),
		}
	}

	lo, hi := minMax(ys)
	h.YAxis = NewAxis(data.YTicks, lo, hi)
	lo, hi = minMax(xs)
	h.XAxis = NewAxis(data.XTicks, lo, hi)
	h.Markers = similarMarkers(h.YAxis, root, similar, plotWidth, plotHeight)

	return h, nil
}

// Transform maps a grid coordinate to the pixel center of its cell
func (h *Heatmap) Transform(x, y float64) (float64, float64) {
	return x*h.ScaleX*shrink + h.ScaleX/2 + h.PlotWidth*padXFrac,
		y*h.ScaleY*shrink + h.ScaleY/2 + h.PlotHeight*padYFrac
}

// LabelAt resolves a y tick position back to its category label
func (h *Heatmap) LabelAt(pos float64) (string, bool) {
	return h.YAxis.LabelAt(pos)
}

// YTicks returns the y tick labels with the root catalyst in red
func (h *Heatmap) YTicks() []Tick {
	return h.YAxis.Ticks(h.Root)
}

// XTicks returns the x tick labels
func (h *Heatmap) XTicks() []Tick {
	return h.XAxis.Ticks("")
}
