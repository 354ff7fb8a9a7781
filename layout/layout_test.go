package layout

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewClusteringScaling(t *testing.T) {
	segments := []Segment{{0, 0, 2, 2}, {0, 0, 4, 4}}
	c, err := NewClustering(100, 100, nil, "", nil, segments)
	if err != nil {
		t.Fatalf("NewClustering failed: %v", err)
	}

	if c.MaxX != 4 || c.MaxY != 4 {
		t.Errorf("max point = (%v, %v), want (4, 4)", c.MaxX, c.MaxY)
	}
	if c.ScaleX != 25 || c.ScaleY != 25 {
		t.Errorf("scale = (%v, %v), want (25, 25)", c.ScaleX, c.ScaleY)
	}

	want := []Segment{
		{0*25*0.95 + 100*0.05, 0*25*0.95 + 100*0.025, 2*25*0.95 + 100*0.05, 2*25*0.95 + 100*0.025},
		{0*25*0.95 + 100*0.05, 0*25*0.95 + 100*0.025, 4*25*0.95 + 100*0.05, 4*25*0.95 + 100*0.025},
	}
	for i, s := range c.Segments {
		for j := range s {
			if !approxEqual(s[j], want[i][j]) {
				t.Errorf("segment %d = %v, want %v", i, s, want[i])
				break
			}
		}
	}
	if !approxEqual(c.Segments[0][0], 5) {
		t.Errorf("x' = %v, want 5", c.Segments[0][0])
	}
}

func TestNewClusteringDegenerate(t *testing.T) {
	if _, err := NewClustering(100, 100, nil, "", nil, nil); !errors.Is(err, ErrNoSegments) {
		t.Errorf("expected ErrNoSegments, got %v", err)
	}

	c, err := NewClustering(200, 100, []string{"only"}, "only", []string{"only"}, []Segment{{0, 0, 0, 0}})
	if err != nil {
		t.Fatalf("NewClustering failed: %v", err)
	}
	if c.ScaleX != 1 || c.ScaleY != 1 {
		t.Errorf("zero max should clamp scales to 1, got (%v, %v)", c.ScaleX, c.ScaleY)
	}
	for _, s := range c.Segments {
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite coordinate in %v", s)
			}
		}
	}
	if len(c.YAxis.Positions) != 1 || c.YAxis.Positions[0] != 100*0.025 {
		t.Errorf("single tick should sit at min y, got %v", c.YAxis.Positions)
	}
	if len(c.Markers) != 1 || c.Markers[0].Height != 100*fallbackMarkerFrac || c.Markers[0].Color != ColorGreen {
		t.Errorf("unexpected single category marker: %+v", c.Markers)
	}
}

func TestTickPositions(t *testing.T) {
	got := TickPositions(3, 0, 90)
	want := []float64{0, 45, 90}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tick %d = %v, want %v", i, got[i], want[i])
		}
	}

	if TickPositions(0, 0, 1) != nil {
		t.Errorf("no labels should give no ticks")
	}
	if one := TickPositions(1, 7, 9); len(one) != 1 || one[0] != 7 {
		t.Errorf("single tick = %v, want [7]", one)
	}
}

func TestClusteringTicksAndMarkers(t *testing.T) {
	// leaves at 5, 15, 25 like a dendrogram of three catalysts
	segments := []Segment{{0, 5, 1, 5}, {1, 5, 1, 15}, {0, 15, 1, 15}, {1, 10, 2, 10}, {2, 10, 2, 25}, {0, 25, 2, 25}}
	labels := []string{"A", "B", "C"}

	c, err := NewClustering(100, 100, labels, "B", []string{"B", "C", "missing"}, segments)
	if err != nil {
		t.Fatalf("NewClustering failed: %v", err)
	}

	ticks := c.YAxis.Positions
	if len(ticks) != 3 {
		t.Fatalf("expected 3 ticks, got %v", ticks)
	}
	if ticks[0] != c.Segments[0][1] || !approxEqual(ticks[2], c.Segments[5][1]) {
		t.Errorf("ticks should span the scaled y range, got %v", ticks)
	}

	for i, want := range labels {
		if got, ok := c.LabelAt(ticks[i]); !ok || got != want {
			t.Errorf("LabelAt(%v) = %q, want %q", ticks[i], got, want)
		}
	}
	if _, ok := c.LabelAt(-1); ok {
		t.Errorf("LabelAt should miss for unknown positions")
	}

	if len(c.Markers) != 2 {
		t.Fatalf("missing labels must be skipped, got %+v", c.Markers)
	}
	if c.Markers[0].Color != ColorGreen || c.Markers[1].Color != ColorYellow {
		t.Errorf("unexpected marker colors: %+v", c.Markers)
	}
	step := ticks[1] - ticks[0]
	for _, m := range c.Markers {
		if m.X != 100*markerXFrac || m.Width != MarkerWidth || m.Height != step*markerHeightFrac {
			t.Errorf("unexpected marker geometry: %+v", m)
		}
	}

	for _, tick := range c.YTicks() {
		if tick.Color != ColorBlack {
			t.Errorf("clustering labels are black, got %+v", tick)
		}
	}
}

func TestAxisDuplicatePositions(t *testing.T) {
	a := Axis{Positions: []float64{1, 1, 2}, Labels: []string{"x", "y", "z"}}
	ticks := a.Ticks("")
	if ticks[0].Label != "x" || ticks[1].Label != "x" || ticks[2].Label != "z" {
		t.Errorf("duplicate positions should resolve to the first label, got %+v", ticks)
	}
	if pos, ok := a.Position("y"); !ok || pos != 1 {
		t.Errorf("Position(y) = %v, %v", pos, ok)
	}
}

func TestNewHeatmap(t *testing.T) {
	data := HeatmapData{
		XTicks:  []string{"area1", "area2"},
		YTicks:  []string{"A", "B"},
		XData:   []float64{0, 1, 0, 1},
		YData:   []float64{0, 0, 1, 1},
		HeatVal: []float64{0, 1, 2, 3},
	}

	h, err := NewHeatmap(200, 100, data, "A", []string{"A", "B"}, ColorSettings{ColorMap: "Viridis", Unit: "%%"})
	if err != nil {
		t.Fatalf("NewHeatmap failed: %v", err)
	}

	if h.ScaleX != 100 || h.ScaleY != 50 {
		t.Errorf("scale = (%v, %v), want (100, 50)", h.ScaleX, h.ScaleY)
	}
	wantX := 1*100*0.95 + 100.0/2 + 200*0.05
	wantY := 1*50*0.95 + 50.0/2 + 100*0.025
	if !approxEqual(h.Cells[3].X, wantX) || !approxEqual(h.Cells[3].Y, wantY) {
		t.Errorf("cell 3 center = (%v, %v), want (%v, %v)", h.Cells[3].X, h.Cells[3].Y, wantX, wantY)
	}
	if h.Cells[0].Width != 100 || h.Cells[0].Height != 50 {
		t.Errorf("unexpected cell size: %+v", h.Cells[0])
	}

	if len(h.Mapper.Palette) != CmMax["Viridis"] {
		t.Errorf("palette size = %d, want %d", len(h.Mapper.Palette), CmMax["Viridis"])
	}
	if h.Mapper.Low != 0 || h.Mapper.High != 3 {
		t.Errorf("auto domain = [%v, %v], want [0, 3]", h.Mapper.Low, h.Mapper.High)
	}
	if h.Cells[0].Color != h.Mapper.Palette[0] || h.Cells[3].Color != h.Mapper.Palette[255] {
		t.Errorf("cells should span the palette")
	}

	yt := h.YTicks()
	if yt[0].Color != ColorRed || yt[1].Color != ColorBlack {
		t.Errorf("root label should be red: %+v", yt)
	}
	if yt[0].Pos != h.Cells[0].Y || !approxEqual(yt[1].Pos, h.Cells[2].Y) {
		t.Errorf("y ticks should sit on cell centers: %+v", yt)
	}
	xt := h.XTicks()
	if xt[0].Pos != h.Cells[0].X || !approxEqual(xt[1].Pos, h.Cells[1].X) || xt[1].Label != "area2" {
		t.Errorf("unexpected x ticks: %+v", xt)
	}

	if len(h.Markers) != 2 || h.Markers[0].Color != ColorGreen || h.Markers[1].Color != ColorYellow {
		t.Errorf("unexpected markers: %+v", h.Markers)
	}
	if got := h.ColorBar.Ticks[0].Label; got != "0.000000%" {
		t.Errorf("color bar label = %q, want 0.000000%%", got)
	}
}

func TestNewHeatmapErrors(t *testing.T) {
	if _, err := NewHeatmap(1, 1, HeatmapData{}, "", nil, ColorSettings{}); !errors.Is(err, ErrNoCells) {
		t.Errorf("expected ErrNoCells, got %v", err)
	}
	ragged := HeatmapData{XData: []float64{0}, YData: []float64{0, 1}, HeatVal: []float64{1}}
	if _, err := NewHeatmap(1, 1, ragged, "", nil, ColorSettings{}); !errors.Is(err, ErrRaggedHeatmap) {
		t.Errorf("expected ErrRaggedHeatmap, got %v", err)
	}
}

func TestResolvePalette(t *testing.T) {
	explicit := []string{"#000000", "#ffffff"}
	if got := ResolvePalette(explicit, "Viridis"); len(got) != 2 {
		t.Errorf("explicit colors should win, got %d colors", len(got))
	}

	fallback := ResolvePalette(nil, "NoSuchMap")
	if len(fallback) != CmMax[DefaultColorMap] || fallback[0] != "#1f77b4" {
		t.Errorf("unknown map should fall back to Category10, got %v", fallback)
	}

	greys, err := Palette("Greys", 3)
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}
	if greys[0] != "#000000" || greys[2] != "#ffffff" {
		t.Errorf("interpolated palette should keep its ends, got %v", greys)
	}

	if _, err := Palette("Greys", 0); err == nil {
		t.Errorf("expected error for empty palette")
	}
}

func TestLinearColorMapper(t *testing.T) {
	m := &LinearColorMapper{Palette: []string{"a", "b", "c", "d"}, Low: 0, High: 4, NaNColor: ColorGray}
	tests := []struct {
		v    float64
		want string
	}{
		{-1, "a"},
		{0, "a"},
		{0.99, "a"},
		{1, "b"},
		{2.5, "c"},
		{3.99, "d"},
		{4, "d"},
		{10, "d"},
		{math.NaN(), ColorGray},
	}
	for _, tt := range tests {
		if got := m.Map(tt.v); got != tt.want {
			t.Errorf("Map(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}

	flat := &LinearColorMapper{Palette: []string{"a", "b"}, Low: 2, High: 2}
	if flat.Map(5) != "a" {
		t.Errorf("zero-width domain should map to the first color")
	}

	reversed := &LinearColorMapper{Palette: []string{"a", "b", "c", "d"}, Low: 10, High: 0}
	for v, want := range map[float64]string{15: "a", 10: "a", 7.4: "b", 5: "c", 0.5: "d", 0: "d", -3: "d"} {
		if got := reversed.Map(v); got != want {
			t.Errorf("reversed Map(%v) = %q, want %q", v, got, want)
		}
	}

	fixed := NewLinearColorMapper([]string{"a"}, []float64{-5, 5}, []float64{0, 1})
	if fixed.Low != -5 || fixed.High != 5 {
		t.Errorf("explicit domain ignored: %+v", fixed)
	}
}

func TestNewColorBar(t *testing.T) {
	m := &LinearColorMapper{Palette: make([]string, 256), Low: 0, High: 11}
	cb := NewColorBar(m, "eV", "7px")
	if len(cb.Ticks) != MaxColorBarTicks {
		t.Errorf("expected %d ticks, got %d", MaxColorBarTicks, len(cb.Ticks))
	}
	if cb.Ticks[1].Label != "1.000000eV" {
		t.Errorf("unexpected label %q", cb.Ticks[1].Label)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("green")
	if err != nil || c.G != 128 || c.R != 0 {
		t.Errorf("ParseColor(green) = %v, %v", c, err)
	}
	c, err = ParseColor("#FF0000")
	if err != nil || c.R != 255 {
		t.Errorf("ParseColor(#FF0000) = %v, %v", c, err)
	}
	if _, err := ParseColor("not-a-color"); err == nil {
		t.Errorf("expected error for invalid color")
	}
}
