package plot

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// Fixed pixel insets around the plot area. The right inset grows with the
// figure's RightMargin so overlaid axis spines have room for their labels.
const (
	insetTop     = 40
	insetBottom  = 50
	insetLeft    = 70
	markerRadius = 4
)

// ExportSVG renders a figure description to SVG. The Empty state renders
// the placeholder caption only.
func ExportSVG(w io.Writer, fig Figure, width, height int) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	defer canvas.End()

	canvas.Rect(0, 0, width, height, "fill:white")

	if fig.State == StateEmpty {
		canvas.Text(width/2, height/2, fig.Caption,
			"text-anchor:middle;font-size:16px;font-family:sans-serif;fill:#333333")
		return nil
	}

	area := plotArea(fig, width, height)

	drawXAxis(canvas, fig, area)

	visible := 0
	for _, ax := range fig.Axes {
		if ax.Hidden {
			continue
		}
		drawSeries(canvas, fig, ax, area)
		drawYSpine(canvas, ax, area, visible)
		visible++
	}

	drawLegend(canvas, fig, width)
	return nil
}

// rect is the plot area in pixel coordinates.
type rect struct {
	x0, y0, x1, y1 int
}

func (r rect) width() int  { return r.x1 - r.x0 }
func (r rect) height() int { return r.y1 - r.y0 }

func plotArea(fig Figure, width, height int) rect {
	return rect{
		x0: insetLeft,
		y0: insetTop,
		x1: int(float64(width) * fig.RightMargin),
		y1: height - insetBottom,
	}
}

// xPixel maps a year to its horizontal pixel position in the shared domain.
func xPixel(fig Figure, area rect, year int) int {
	span := fig.XMax - fig.XMin
	if span == 0 {
		return area.x0 + area.width()/2
	}
	return area.x0 + (year-fig.XMin)*area.width()/span
}

// yPixel maps a value onto one axis's independent scale.
func yPixel(ax Axis, area rect, v float64) int {
	span := ax.YMax - ax.YMin
	if span == 0 {
		return area.y0 + area.height()/2
	}
	return area.y1 - int((v-ax.YMin)/span*float64(area.height()))
}

func drawXAxis(canvas *svg.SVG, fig Figure, area rect) {
	canvas.Line(area.x0, area.y1, area.x1, area.y1, "stroke:#333333;stroke-width:1")
	for _, year := range fig.XTicks() {
		x := xPixel(fig, area, year)
		canvas.Line(x, area.y1, x, area.y1+5, "stroke:#333333;stroke-width:1")
		canvas.Text(x, area.y1+20, fmt.Sprintf("%d", year),
			"text-anchor:middle;font-size:11px;font-family:sans-serif;fill:#333333")
	}
	canvas.Text((area.x0+area.x1)/2, area.y1+38, fig.XLabel,
		"text-anchor:middle;font-size:13px;font-family:sans-serif;fill:#333333")
}

func drawSeries(canvas *svg.SVG, fig Figure, ax Axis, area rect) {
	fill := fmt.Sprintf("fill:%s", ax.Style.Color.Hex)
	for i := range ax.X {
		x := xPixel(fig, area, ax.X[i])
		y := yPixel(ax, area, ax.Y[i])
		drawMarker(canvas, ax.Style.Marker, x, y, fill)
	}
}

func drawMarker(canvas *svg.SVG, marker Marker, x, y int, style string) {
	r := markerRadius
	switch marker {
	case MarkerSquare:
		canvas.Rect(x-r, y-r, 2*r, 2*r, style)
	case MarkerTriangle:
		canvas.Polygon(
			[]int{x, x - r, x + r},
			[]int{y - r, y + r, y + r},
			style)
	default:
		canvas.Circle(x, y, r, style)
	}
}

// drawYSpine draws one axis's y spine with min/max labels in the series
// color. The primary axis takes the left edge; overlays take the right edge
// and march outward per their SpinePos.
func drawYSpine(canvas *svg.SVG, ax Axis, area rect, visible int) {
	var x int
	anchor := "end"
	labelDX := -6
	if visible == 0 {
		x = area.x0
	} else {
		x = area.x0 + int(ax.SpinePos*float64(area.width()))
		anchor = "start"
		labelDX = 6
	}

	color := ax.Style.Color.Hex
	canvas.Line(x, area.y0, x, area.y1, fmt.Sprintf("stroke:%s;stroke-width:1", color))

	textStyle := fmt.Sprintf("text-anchor:%s;font-size:11px;font-family:sans-serif;fill:%s", anchor, color)
	canvas.Text(x+labelDX, area.y0+4, trimFloat(ax.YMax), textStyle)
	canvas.Text(x+labelDX, area.y1, trimFloat(ax.YMin), textStyle)
}

func drawLegend(canvas *svg.SVG, fig Figure, width int) {
	x := width - 12
	y := insetTop - 16
	for _, entry := range fig.Legend {
		style := fmt.Sprintf(
			"text-anchor:end;font-size:12px;font-family:sans-serif;fill:%s",
			entry.Style.Color.Hex)
		canvas.Text(x, y, fmt.Sprintf("%c %s", entry.Style.Marker.Rune(), entry.Label), style)
		y += 16
	}
}

// trimFloat renders axis limits without trailing zeros.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
