package plot

import (
	"github.com/scline/collegevis/internal/scorecard"
)

// Y-axis padding factors: the axis range is stretched below the minimum and
// above the maximum so markers never sit on the frame.
const (
	yMinScale = 0.9
	yMaxScale = 1.1
)

// Default right edge of the plot area, and how far it retreats per
// additional overlaid axis.
const (
	baseRightMargin = 0.9
	marginPerAxis   = 0.025
	baseSpinePos    = 0.95
	spinePosPerAxis = 0.07
)

// Layout computes the multi-axis figure for a resolved series list. Series
// with no plottable data get a hidden axis and one diagnostic each; an
// empty input produces the Empty placeholder figure.
func Layout(series []scorecard.ResolvedSeries) (Figure, []scorecard.Diagnostic) {
	if len(series) == 0 {
		return Figure{State: StateEmpty, Caption: EmptyCaption}, nil
	}

	fig := Figure{
		State:       StatePopulated,
		XLabel:      "Year",
		RightMargin: baseRightMargin,
	}

	// Shared x-domain: padded one year on each side of the union of the
	// requested ranges.
	fig.XMin = series[0].Request.StartYear
	fig.XMax = series[0].Request.EndYear
	for _, s := range series[1:] {
		if s.Request.StartYear < fig.XMin {
			fig.XMin = s.Request.StartYear
		}
		if s.Request.EndYear > fig.XMax {
			fig.XMax = s.Request.EndYear
		}
	}
	fig.XMin--
	fig.XMax++

	var diags []scorecard.Diagnostic
	visible := 0

	for _, s := range series {
		xs, ys := s.Points()
		if len(ys) == 0 {
			diags = append(diags, scorecard.Diagnostic{
				College:   s.Request.College,
				Field:     s.Request.Field,
				StartYear: s.Request.StartYear,
				EndYear:   s.Request.EndYear,
			})
			fig.Axes = append(fig.Axes, Axis{Label: s.Request.Label(), Hidden: true})
			continue
		}

		style := StyleAt(visible)
		ax := Axis{
			Label: s.Request.Label(),
			Style: style,
			X:     xs,
			Y:     ys,
		}
		ax.YMin, ax.YMax = yLimits(ys)

		switch visible {
		case 0:
			ax.SpinePos = 0 // primary axis, left spine
		case 1:
			ax.SpinePos = 1 // first overlay sits on the right edge
		default:
			ax.SpinePos = baseSpinePos + spinePosPerAxis*float64(visible)
			fig.RightMargin = baseRightMargin - marginPerAxis*float64(visible)
		}

		fig.Axes = append(fig.Axes, ax)
		fig.Legend = append(fig.Legend, LegendEntry{Label: ax.Label, Style: style})
		visible++
	}

	return fig, diags
}

// yLimits pads the data extent by the fixed scale factors.
func yLimits(ys []float64) (float64, float64) {
	min, max := ys[0], ys[0]
	for _, y := range ys[1:] {
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return min * yMinScale, max * yMaxScale
}
