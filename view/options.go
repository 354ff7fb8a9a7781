package view

import "strings"

// Extent is the outer chart size in pixels
type Extent struct {
	Width  int `toml:"width" json:"width"`
	Height int `toml:"height" json:"height"`
}

// Margin is subtracted from the extent to get the plot area
type Margin struct {
	L int `toml:"l" json:"l"`
	R int `toml:"r" json:"r"`
	B int `toml:"b" json:"b"`
	T int `toml:"t" json:"t"`
}

// Mappings names the data fields shown for x, y and heat value
type Mappings struct {
	XData   string `toml:"xData" json:"xData"`
	YData   string `toml:"yData" json:"yData"`
	HeatVal string `toml:"heatVal" json:"heatVal"`
}

// Options is the display configuration of the view. Every field is optional;
// zero values (nil for the nested objects) mean "use the default".
type Options struct {
	Title             string    `toml:"title,omitempty" json:"title,omitempty"`
	Extent            *Extent   `toml:"extent,omitempty" json:"extent,omitempty"`
	AxisLabels        []string  `toml:"axisLabels,omitempty" json:"axisLabels,omitempty"`
	XRange            []float64 `toml:"x_range,omitempty" json:"x_range,omitempty"`
	YRange            []float64 `toml:"y_range,omitempty" json:"y_range,omitempty"`
	LegendLabel       string    `toml:"legendLabel,omitempty" json:"legendLabel,omitempty"`
	Margin            *Margin   `toml:"margin,omitempty" json:"margin,omitempty"`
	LineWidth         float64   `toml:"lineWidth,omitempty" json:"lineWidth,omitempty"`
	ColorMap          string    `toml:"colorMap,omitempty" json:"colorMap,omitempty"`
	Colors            []string  `toml:"colors,omitempty" json:"colors,omitempty"`
	ColorMapperMinMax []float64 `toml:"colorMapperMinMax,omitempty" json:"colorMapperMinMax,omitempty"`
	Tools             string    `toml:"tools,omitempty" json:"tools,omitempty"`
	Mappings          *Mappings `toml:"mappings,omitempty" json:"mappings,omitempty"`
	ToolTipTitles     []string  `toml:"toolTipTitles,omitempty" json:"toolTipTitles,omitempty"`
	HeatValUnit       string    `toml:"heatValUnit,omitempty" json:"heatValUnit,omitempty"`
	FontSize          string    `toml:"fontSize,omitempty" json:"fontSize,omitempty"`
}

const (
	DefaultTitle = "Catalyst Gene Analysis"
	ResetTitle   = "EMPTY CUSTOM COMPONENT"
	DefaultTools = "pan,crosshair,wheel_zoom,box_zoom,box_select,reset,save"
)

// DefaultOptions returns a fresh copy of the default display configuration
func DefaultOptions() Options {
	return Options{
		Title:         DefaultTitle,
		Extent:        &Extent{Width: 600, Height: 600},
		AxisLabels:    []string{"x", "y"},
		XRange:        []float64{-1, 10},
		YRange:        []float64{-1, 10},
		Margin:        &Margin{L: 0, R: 10, B: 10, T: 10},
		LineWidth:     2,
		ColorMap:      "Category10",
		Tools:         DefaultTools,
		Mappings:      &Mappings{XData: "xData", YData: "yData", HeatVal: "heatVal"},
		ToolTipTitles: []string{"XY Cross", "HeatValue"},
		HeatValUnit:   "",
		FontSize:      "7px",
	}
}

// Merge overlays the set top-level fields of o on top of base. Nested
// objects are replaced whole, never merged key by key.
func (base Options) Merge(o Options) Options {
	out := base
	if o.Title != "" {
		out.Title = o.Title
	}
	if o.Extent != nil {
		out.Extent = o.Extent
	}
	if o.AxisLabels != nil {
		out.AxisLabels = o.AxisLabels
	}
	if o.XRange != nil {
		out.XRange = o.XRange
	}
	if o.YRange != nil {
		out.YRange = o.YRange
	}
	if o.LegendLabel != "" {
		out.LegendLabel = o.LegendLabel
	}
	if o.Margin != nil {
		out.Margin = o.Margin
	}
	if o.LineWidth != 0 {
		out.LineWidth = o.LineWidth
	}
	if o.ColorMap != "" {
		out.ColorMap = o.ColorMap
	}
	if o.Colors != nil {
		out.Colors = o.Colors
	}
	if o.ColorMapperMinMax != nil {
		out.ColorMapperMinMax = o.ColorMapperMinMax
	}
	if o.Tools != "" {
		out.Tools = o.Tools
	}
	if o.Mappings != nil {
		out.Mappings = o.Mappings
	}
	if o.ToolTipTitles != nil {
		out.ToolTipTitles = o.ToolTipTitles
	}
	if o.HeatValUnit != "" {
		out.HeatValUnit = o.HeatValUnit
	}
	if o.FontSize != "" {
		out.FontSize = o.FontSize
	}
	return out
}

// PlotSize is the extent minus the margins
func (o Options) PlotSize() (width, height float64) {
	var e Extent
	if o.Extent != nil {
		e = *o.Extent
	}
	var m Margin
	if o.Margin != nil {
		m = *o.Margin
	}
	return float64(e.Width - m.L - m.R), float64(e.Height - m.T - m.B)
}

// ToolList splits the comma separated tools option
func (o Options) ToolList() []string {
	var tools []string
	for _, t := range strings.Split(o.Tools, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tools = append(tools, t)
		}
	}
	return tools
}
