package plot

// Color is one palette entry, carried as both a short name (for logs and
// tests) and a hex value (for rendering backends).
type Color struct {
	Name string
	Hex  string
}

// Marker is a scatter marker shape.
type Marker int

const (
	MarkerCircle Marker = iota
	MarkerSquare
	MarkerTriangle
)

// String returns the marker's name.
func (m Marker) String() string {
	switch m {
	case MarkerCircle:
		return "circle"
	case MarkerSquare:
		return "square"
	case MarkerTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Rune returns the marker's character-cell representation.
func (m Marker) Rune() rune {
	switch m {
	case MarkerCircle:
		return '●'
	case MarkerSquare:
		return '■'
	case MarkerTriangle:
		return '▲'
	default:
		return '?'
	}
}

// Style is a (color, marker) pair assigned to one series.
type Style struct {
	Color  Color
	Marker Marker
}

// PaletteSize is the length of the color cycle. Palette overrides must
// supply exactly this many colors.
const PaletteSize = 7

// colors is the fixed 7-entry cycle. Markers extend it: with 3 shapes the
// palette yields 21 distinguishable (color, marker) pairs before repeating.
var colors = [PaletteSize]Color{
	{Name: "blue", Hex: "#0000ff"},
	{Name: "green", Hex: "#008000"},
	{Name: "red", Hex: "#ff0000"},
	{Name: "cyan", Hex: "#00bfbf"},
	{Name: "magenta", Hex: "#bf00bf"},
	{Name: "yellow", Hex: "#bfbf00"},
	{Name: "black", Hex: "#000000"},
}

var markers = [3]Marker{MarkerCircle, MarkerSquare, MarkerTriangle}

// StyleAt returns the style for the i-th visible series: colors cycle with
// period 7, markers advance every full color cycle.
func StyleAt(i int) Style {
	return Style{
		Color:  colors[i%len(colors)],
		Marker: markers[(i/len(colors))%len(markers)],
	}
}

// Colors returns a copy of the color cycle, for palette overrides and tests.
func Colors() []Color {
	out := make([]Color, len(colors))
	copy(out, colors[:])
	return out
}

// SetColors replaces the color cycle. Exactly seven colors are required;
// any other count leaves the palette untouched and returns false.
func SetColors(override []Color) bool {
	if len(override) != len(colors) {
		return false
	}
	copy(colors[:], override)
	return true
}
