package layout

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
	ColorBlack  = "black"
	ColorGray   = "gray"
)

// DefaultColorMap is used when the requested map has no configured size
const DefaultColorMap = "Category10"

// CmMax is the palette size used for each color map name
var CmMax = map[string]int{
	"Category10": 10,
	"Category20": 20,
	"Viridis":    256,
	"Magma":      256,
	"Inferno":    256,
	"Plasma":     256,
	"Cividis":    256,
	"Turbo":      256,
	"Greys":      256,
	"Spectral":   11,
	"RdBu":       11,
	"Blues":      9,
	"Greens":     9,
	"Reds":       9,
}

// anchor colors per map; sizes other than len(anchors) are interpolated in Lab space
var paletteAnchors = map[string][]string{
	"Category10": {"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"},
	"Category20": {
		"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c", "#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
		"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f", "#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
	},
	"Viridis":  {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"Magma":    {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
	"Inferno":  {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"},
	"Plasma":   {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"Cividis":  {"#00204d", "#31446b", "#666970", "#958f78", "#cbba69", "#ffea46"},
	"Turbo":    {"#30123b", "#4662d7", "#36aaf9", "#1ae4b6", "#72fe5e", "#c7ef34", "#fabb21", "#f66b19", "#cb2a04", "#7a0403"},
	"Greys":    {"#000000", "#ffffff"},
	"Spectral": {"#9e0142", "#d53e4f", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#e6f598", "#abdda4", "#66c2a5", "#3288bd", "#5e4fa2"},
	"RdBu":     {"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#f7f7f7", "#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061"},
	"Blues":    {"#08306b", "#08519c", "#2171b5", "#4292c6", "#6baed6", "#9ecae1", "#c6dbef", "#deebf7", "#f7fbff"},
	"Greens":   {"#00441b", "#006d2c", "#238b45", "#41ab5d", "#74c476", "#a1d99b", "#c7e9c0", "#e5f5e0", "#f7fcf5"},
	"Reds":     {"#67000d", "#a50f15", "#cb181d", "#ef3b2c", "#fb6a4a", "#fc9272", "#fcbba1", "#fee0d2", "#fff5f0"},
}

var namedColors = map[string]string{
	ColorGreen:  "#008000",
	ColorYellow: "#ffff00",
	ColorRed:    "#ff0000",
	ColorBlack:  "#000000",
	ColorGray:   "#808080",
	"grey":      "#808080",
	"white":     "#ffffff",
	"blue":      "#0000ff",
	"orange":    "#ffa500",
	"purple":    "#800080",
}

// ColorMapNames lists the known color maps in a stable order
func ColorMapNames() []string {
	return []string{
		"Category10", "Category20", "Viridis", "Magma", "Inferno", "Plasma", "Cividis",
		"Turbo", "Greys", "Spectral", "RdBu", "Blues", "Greens", "Reds",
	}
}

// Palette returns n hex colors of the named map
func Palette(name string, n int) ([]string, error) {
	anchors, ok := paletteAnchors[name]
	if !ok {
		return nil, fmt.Errorf("unknown color map %q", name)
	}
	if n <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", n)
	}
	if n == len(anchors) {
		return append([]string(nil), anchors...), nil
	}

	stops := make([]colorful.Color, len(anchors))
	for i, a := range anchors {
		c, err := colorful.Hex(a)
		if err != nil {
			return nil, fmt.Errorf("bad anchor %q in %s: %w", a, name, err)
		}
		stops[i] = c
	}

	out := make([]string, n)
	for i := range out {
		if n == 1 {
			out[i] = stops[0].Hex()
			continue
		}
		t := float64(i) / float64(n-1) * float64(len(stops)-1)
		lo := int(t)
		if lo >= len(stops)-1 {
			out[i] = stops[len(stops)-1].Hex()
			continue
		}
		out[i] = stops[lo].BlendLab(stops[lo+1], t-float64(lo)).Clamped().Hex()
	}
	return out, nil
}

// ResolvePalette picks the colors for a color mapper: explicit colors win,
// then the named map at its configured size, then the default map.
func ResolvePalette(colors []string, colorMap string) []string {
	if len(colors) > 0 {
		return colors
	}
	name := colorMap
	size, ok := CmMax[name]
	if !ok {
		name = DefaultColorMap
		size = CmMax[DefaultColorMap]
	}
	palette, err := Palette(name, size)
	if err != nil {
		palette, _ = Palette(DefaultColorMap, CmMax[DefaultColorMap])
	}
	return palette
}

// ParseColor understands a few CSS color names and #rrggbb
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.ToLower(strings.TrimSpace(s))
	if named, ok := namedColors[hex]; ok {
		hex = named
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustColor is ParseColor falling back to gray
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return c
}
