package layout

import (
	"fmt"
	"math"
	"strings"
)

// MaxColorBarTicks caps the number of labels on a color bar
const MaxColorBarTicks = 12

// LinearColorMapper maps [Low, High] linearly onto Palette
type LinearColorMapper struct {
	Palette  []string
	Low      float64
	High     float64
	NaNColor string
}

// NewLinearColorMapper uses domain when it holds two values, otherwise the
// min and max of values.
func NewLinearColorMapper(palette []string, domain []float64, values []float64) *LinearColorMapper {
	m := &LinearColorMapper{Palette: palette, NaNColor: ColorGray}
	if len(domain) >= 2 {
		m.Low, m.High = domain[0], domain[1]
		return m
	}
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return m
	}
	m.Low, m.High = minMax(finite)
	return m
}

// Map returns the palette color for v. Values outside the domain take the
// nearest end color; a zero-width domain maps everything to the first color.
// A reversed domain (Low > High) maps linearly with the palette reversed.
func (m *LinearColorMapper) Map(v float64) string {
	n := len(m.Palette)
	if n == 0 {
		return m.NaNColor
	}
	if math.IsNaN(v) {
		return m.NaNColor
	}
	if m.High == m.Low {
		return m.Palette[0]
	}
	t := (v - m.Low) / (m.High - m.Low)
	if t <= 0 {
		return m.Palette[0]
	}
	if t >= 1 {
		return m.Palette[n-1]
	}
	idx := int(math.Floor(t * float64(n)))
	if idx >= n {
		idx = n - 1
	}
	return m.Palette[idx]
}

// ColorBarTick is one labelled value on a color bar
type ColorBarTick struct {
	Value float64
	Label string
}

// ColorBar is the legend bound to a color mapper
type ColorBar struct {
	Mapper   *LinearColorMapper
	Ticks    []ColorBarTick
	Unit     string
	FontSize string
}

// NewColorBar asks for as many ticks as the palette has colors, capped
func NewColorBar(m *LinearColorMapper, unit, fontSize string) ColorBar {
	n := len(m.Palette)
	if n > MaxColorBarTicks {
		n = MaxColorBarTicks
	}
	if m.High == m.Low && n > 1 {
		n = 1
	}
	cb := ColorBar{Mapper: m, Unit: unit, FontSize: fontSize}
	for _, v := range TickPositions(n, m.Low, m.High) {
		cb.Ticks = append(cb.Ticks, ColorBarTick{Value: v, Label: FormatTick(v, unit)})
	}
	return cb
}

// FormatTick renders a color bar value with printf %f followed by unit.
// A unit of "%%" is shown as a single percent sign.
func FormatTick(v float64, unit string) string {
	return fmt.Sprintf("%f", v) + strings.ReplaceAll(unit, "%%", "%")
}
