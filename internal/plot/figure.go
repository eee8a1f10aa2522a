package plot

// State is the figure's render state. There are exactly two: the empty
// placeholder and a populated multi-axis plot. Every render request
// replaces the figure wholesale; there is no partial update.
type State int

const (
	// StateEmpty renders only the instructional caption. It is the initial
	// state and the result of submitting an empty request list.
	StateEmpty State = iota
	// StatePopulated renders the axes and the combined legend.
	StatePopulated
)

// EmptyCaption is the placeholder shown when nothing is plotted.
const EmptyCaption = "No data plotted. Open the series panel to choose data."

// Axis is one series' plot axis. All axes share the figure's x-domain but
// scale y independently. A hidden axis belongs to a series that produced no
// plottable data; it contributes nothing to the canvas or the legend.
type Axis struct {
	Label  string
	Style  Style
	Hidden bool

	// Parallel point coordinates (years, values).
	X []int
	Y []float64

	// Y scale limits, padded.
	YMin, YMax float64

	// SpinePos is the y-spine position in plot-area fractions: 0 is the
	// left edge (primary axis), 1 the right edge, >1 pushed outside the
	// plot area to keep overlaid axis labels apart.
	SpinePos float64
}

// LegendEntry is one combined-legend line.
type LegendEntry struct {
	Label string
	Style Style
}

// Figure is the renderable description handed to the host: either the
// empty placeholder or a set of axes over a shared year domain plus a
// combined legend in the upper-right corner.
type Figure struct {
	State   State
	Caption string

	// Shared x-domain: one tick per integer year in [XMin, XMax].
	XMin, XMax int
	XLabel     string

	Axes   []Axis
	Legend []LegendEntry

	// RightMargin is the plot-area right edge in figure fractions; it
	// shrinks as overlaid axes are added so their labels stay readable.
	RightMargin float64
}

// XTicks returns one tick per integer year in the shared domain.
func (f Figure) XTicks() []int {
	if f.State == StateEmpty || f.XMax < f.XMin {
		return nil
	}
	ticks := make([]int, 0, f.XMax-f.XMin+1)
	for x := f.XMin; x <= f.XMax; x++ {
		ticks = append(ticks, x)
	}
	return ticks
}

// VisibleAxes returns the axes that carry data, in axis order.
func (f Figure) VisibleAxes() []Axis {
	visible := make([]Axis, 0, len(f.Axes))
	for _, ax := range f.Axes {
		if !ax.Hidden {
			visible = append(visible, ax)
		}
	}
	return visible
}
