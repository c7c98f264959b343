package transform

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Veraticus/performance-dashboard/internal/common"
)

// Sequential ColorBrewer scales, light to dark.
var scales = map[string][]string{
	"Greens":  {"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b"},
	"Blues":   {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	"Reds":    {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
	"Oranges": {"#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913", "#d94801", "#a63603", "#7f2704"},
	"Purples": {"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8", "#807dba", "#6a51a3", "#54278f", "#3f007d"},
	"Greys":   {"#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000"},
}

var namedColors = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
	"gray":  "#808080",
	"grey":  "#808080",
}

// DefaultPalette and DefaultGradientBase match the dashboard's chart theme.
const (
	DefaultPalette      = "Greens"
	DefaultGradientBase = "#2E7D32"
	DefaultGradientTo   = "white"
)

// PaletteNames lists the supported scale names.
func PaletteNames() []string {
	names := make([]string, 0, len(scales))
	for name := range scales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColorPalette samples n evenly spaced hex colours from the named scale.
// A "_r" suffix on the name reverses the scale, as does reverse.
func ColorPalette(name string, n int, reverse bool) ([]string, error) {
	base := name
	flipped := false
	if strings.HasSuffix(base, "_r") {
		base = strings.TrimSuffix(base, "_r")
		flipped = true
	}

	stops, ok := scales[base]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", common.ErrUnknownPalette, name, strings.Join(PaletteNames(), ", "))
	}

	colors, err := parseColors(stops)
	if err != nil {
		return nil, err
	}
	if flipped {
		slices.Reverse(colors)
	}

	out := sample(colors, n)
	if reverse {
		slices.Reverse(out)
	}
	return out, nil
}

// GradientColors samples n evenly spaced colours from base to to. Either end
// may be a hex string or a basic colour name.
func GradientColors(base string, n int, to string) ([]string, error) {
	from, err := parseColor(base)
	if err != nil {
		return nil, err
	}
	target, err := parseColor(to)
	if err != nil {
		return nil, err
	}
	return sample([]colorful.Color{from, target}, n), nil
}

// sample evaluates the piecewise-linear RGB ramp through stops at n evenly
// spaced positions in [0, 1].
func sample(stops []colorful.Color, n int) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, n)
	if n == 1 {
		out[0] = stops[0].Hex()
		return out
	}

	segments := float64(len(stops) - 1)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1) * segments
		idx := int(x)
		if idx >= len(stops)-1 {
			out[i] = stops[len(stops)-1].Hex()
			continue
		}
		out[i] = stops[idx].BlendRgb(stops[idx+1], x-float64(idx)).Clamped().Hex()
	}
	return out
}

func parseColor(s string) (colorful.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[key]; ok {
		key = hex
	}
	if !strings.HasPrefix(key, "#") {
		key = "#" + key
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", common.ErrInvalidColor, s)
	}
	return c, nil
}

func parseColors(hexes []string) ([]colorful.Color, error) {
	colors := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := parseColor(h)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return colors, nil
}
