// Package layout maps chart data into plot pixel space.
//
// Both chart variants share the same padding: data is shrunk to 95% of the
// plot and shifted right by 5% of the width and up by 2.5% of the height.
package layout

import (
	"errors"
	"math"
)

var (
	ErrNoSegments    = errors.New("no segments to lay out")
	ErrNoCells       = errors.New("no heatmap cells to lay out")
	ErrRaggedHeatmap = errors.New("heatmap xData, yData and heatVal differ in length")
)

const (
	shrink   = 0.95
	padXFrac = 0.05
	padYFrac = 0.025

	markerXFrac        = 0.02
	markerHeightFrac   = 0.98
	fallbackMarkerFrac = 0.05

	// MarkerWidth is the pixel width of a similar catalyst marker
	MarkerWidth = 15.0
)

// Scale returns extent/max. A max that is zero, negative or not finite
// would produce a non-finite scale, so the scale is clamped to 1 instead.
func Scale(extent, max float64) float64 {
	if max <= 0 || math.IsNaN(max) || math.IsInf(max, 0) {
		return 1
	}
	s := extent / max
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return s
}

// TickPositions spreads n ticks evenly from min to max. A single tick sits at min.
func TickPositions(n int, min, max float64) []float64 {
	if n <= 0 {
		return nil
	}
	ticks := make([]float64, n)
	if n == 1 {
		ticks[0] = min
		return ticks
	}
	step := (max - min) / float64(n-1)
	for i := range ticks {
		ticks[i] = step*float64(i) + min
	}
	return ticks
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Axis is a category axis with labels placed at fixed numeric positions
type Axis struct {
	Positions []float64
	Labels    []string
}

// NewAxis places labels evenly between min and max
func NewAxis(labels []string, min, max float64) Axis {
	return Axis{
		Positions: TickPositions(len(labels), min, max),
		Labels:    append([]string(nil), labels...),
	}
}

// LabelAt returns the label of the first tick sitting exactly at pos
func (a Axis) LabelAt(pos float64) (string, bool) {
	for i, p := range a.Positions {
		if p == pos {
			return a.Labels[i], true
		}
	}
	return "", false
}

// Position returns the tick position of the first tick labelled label
func (a Axis) Position(label string) (float64, bool) {
	for i, l := range a.Labels {
		if l == label {
			return a.Positions[i], true
		}
	}
	return 0, false
}

// Step is the distance between the first two ticks, 0 with fewer than two ticks
func (a Axis) Step() float64 {
	if len(a.Positions) < 2 {
		return 0
	}
	return a.Positions[1] - a.Positions[0]
}

// Tick is a rendered tick label
type Tick struct {
	Pos   float64
	Label string
	Color string
}

// Ticks pairs positions with labels; the label of each tick is looked up by
// position, so ticks sharing a position all show the first label.
func (a Axis) Ticks(root string) []Tick {
	ticks := make([]Tick, 0, len(a.Positions))
	for _, p := range a.Positions {
		label, _ := a.LabelAt(p)
		color := ColorBlack
		if root != "" && label == root {
			color = ColorRed
		}
		ticks = append(ticks, Tick{Pos: p, Label: label, Color: color})
	}
	return ticks
}

// Marker highlights a similar catalyst next to its axis tick
type Marker struct {
	Label  string
	X, Y   float64
	Width  float64
	Height float64
	Color  string
}

// similarMarkers resolves each similar name to its tick. Names missing from
// the axis are skipped. A marker sharing the root's position is green.
func similarMarkers(axis Axis, root string, similar []string, plotWidth, plotHeight float64) []Marker {
	rootPos, rootFound := axis.Position(root)

	height := axis.Step() * markerHeightFrac
	if len(axis.Positions) < 2 {
		height = plotHeight * fallbackMarkerFrac
	}

	markers := make([]Marker, 0, len(similar))
	for _, name := range similar {
		pos, ok := axis.Position(name)
		if !ok {
			continue
		}
		color := ColorYellow
		if rootFound && pos == rootPos {
			color = ColorGreen
		}
		markers = append(markers, Marker{
			Label:  name,
			X:      plotWidth * markerXFrac,
			Y:      pos,
			Width:  MarkerWidth,
			Height: height,
			Color:  color,
		})
	}
	return markers
}
