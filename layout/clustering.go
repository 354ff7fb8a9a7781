package layout

// Segment is a dendrogram line (x0, y0, x1, y1)
type Segment [4]float64

// Clustering is a dendrogram laid out in plot pixel space
type Clustering struct {
	PlotWidth  float64
	PlotHeight float64
	MaxX       float64
	MaxY       float64
	ScaleX     float64
	ScaleY     float64
	Segments   []Segment
	YAxis      Axis
	Root       string
	Markers    []Marker
}

// NewClustering scales segments into a plotWidth x plotHeight area and
// places one y tick per label between the lowest and highest scaled y.
func NewClustering(plotWidth, plotHeight float64, labels []string, root string, similar []string, segments []Segment) (*Clustering, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	xs := make([]float64, 0, 2*len(segments))
	ys := make([]float64, 0, 2*len(segments))
	for _, s := range segments {
		xs = append(xs, s[0], s[2])
		ys = append(ys, s[1], s[3])
	}
	_, maxX := minMax(xs)
	_, maxY := minMax(ys)

	c := &Clustering{
		PlotWidth:  plotWidth,
		PlotHeight: plotHeight,
		MaxX:       maxX,
		MaxY:       maxY,
		ScaleX:     Scale(plotWidth, maxX),
		ScaleY:     Scale(plotHeight, maxY),
		Root:       root,
	}

	c.Segments = make([]Segment, len(segments))
	scaledY := make([]float64, 0, 2*len(segments))
	for i, s := range segments {
		x0, y0 := c.Transform(s[0], s[1])
		x1, y1 := c.Transform(s[2], s[3])
		c.Segments[i] = Segment{x0, y0, x1, y1}
		scaledY = append(scaledY, y0, y1)
	}

	minY, maxScaledY := minMax(scaledY)
	c.YAxis = NewAxis(labels, minY, maxScaledY)
	c.Markers = similarMarkers(c.YAxis, root, similar, plotWidth, plotHeight)

	return c, nil
}

// Transform maps a data point into plot pixels
func (c *Clustering) Transform(x, y float64) (float64, float64) {
	return x*c.ScaleX*shrink + c.PlotWidth*padXFrac,
		y*c.ScaleY*shrink + c.PlotHeight*padYFrac
}

// LabelAt resolves a y tick position back to its category label
func (c *Clustering) LabelAt(pos float64) (string, bool) {
	return c.YAxis.LabelAt(pos)
}

// YTicks returns the y tick labels, all drawn in black
func (c *Clustering) YTicks() []Tick {
	return c.YAxis.Ticks("")
}
