package plot

import (
	"math"
	"testing"

	"github.com/scline/collegevis/internal/scorecard"
)

func yearSeries(college, field string, start, end int, years []int, values []float64) scorecard.ResolvedSeries {
	return scorecard.ResolvedSeries{
		Request: scorecard.SeriesRequest{College: college, Field: field, StartYear: start, EndYear: end},
		Scope:   scorecard.ScopeYear,
		Years:   years,
		Values:  values,
	}
}

func TestLayout_Empty(t *testing.T) {
	fig, diags := Layout(nil)

	if fig.State != StateEmpty {
		t.Fatalf("State = %v, want StateEmpty", fig.State)
	}
	if fig.Caption != EmptyCaption {
		t.Errorf("Caption = %q, want the instructional caption", fig.Caption)
	}
	if len(fig.Axes) != 0 || len(fig.Legend) != 0 {
		t.Error("empty figure must not carry axes or legend entries")
	}
	if diags != nil {
		t.Errorf("diagnostics = %v, want none", diags)
	}
}

// Empty round-trip: a populated render followed by an empty render yields
// the placeholder again with no residual axes or legend entries.
func TestLayout_EmptyRoundTrip(t *testing.T) {
	populated, _ := Layout([]scorecard.ResolvedSeries{
		yearSeries("Alder College", "SAT_AVG", 2012, 2014, []int{2012, 2013}, []float64{1200, 1210}),
	})
	if populated.State != StatePopulated {
		t.Fatalf("first render State = %v, want StatePopulated", populated.State)
	}

	empty, _ := Layout([]scorecard.ResolvedSeries{})
	if empty.State != StateEmpty {
		t.Fatalf("second render State = %v, want StateEmpty", empty.State)
	}
	if len(empty.Axes) != 0 || len(empty.Legend) != 0 {
		t.Error("empty render must not retain axes or legend from the previous figure")
	}
}

func TestLayout_SharedXDomain(t *testing.T) {
	fig, _ := Layout([]scorecard.ResolvedSeries{
		yearSeries("A", "F1", 2010, 2012, []int{2010}, []float64{1}),
		yearSeries("B", "F2", 2011, 2015, []int{2011}, []float64{2}),
	})

	if fig.XMin != 2009 || fig.XMax != 2016 {
		t.Errorf("x-domain = [%d, %d], want [2009, 2016]", fig.XMin, fig.XMax)
	}

	ticks := fig.XTicks()
	if len(ticks) != 8 {
		t.Fatalf("XTicks() = %v, want one per integer year", ticks)
	}
	for i, tick := range ticks {
		if tick != 2009+i {
			t.Errorf("XTicks()[%d] = %d, want %d", i, tick, 2009+i)
		}
	}
}

// Y-limit padding: [10, 20, 30] maps to [9.0, 33.0].
func TestLayout_YLimits(t *testing.T) {
	fig, _ := Layout([]scorecard.ResolvedSeries{
		yearSeries("A", "F", 2010, 2012, []int{2010, 2011, 2012}, []float64{10, 20, 30}),
	})

	ax := fig.Axes[0]
	if math.Abs(ax.YMin-9.0) > 1e-9 || math.Abs(ax.YMax-33.0) > 1e-9 {
		t.Errorf("y limits = [%v, %v], want [9.0, 33.0]", ax.YMin, ax.YMax)
	}
}

func TestLayout_HiddenSeries(t *testing.T) {
	fig, diags := Layout([]scorecard.ResolvedSeries{
		yearSeries("Cedar Institute", "SAT_AVG", 2012, 2014, nil, nil),
		yearSeries("Alder College", "SAT_AVG", 2012, 2014, []int{2012}, []float64{1200}),
	})

	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one", diags)
	}
	if diags[0].College != "Cedar Institute" {
		t.Errorf("diagnostic college = %q, want Cedar Institute", diags[0].College)
	}

	if !fig.Axes[0].Hidden {
		t.Error("empty series must get a hidden axis")
	}
	if len(fig.Legend) != 1 {
		t.Fatalf("legend = %v, want one entry (hidden series contribute nothing)", fig.Legend)
	}
	if fig.Legend[0].Label != "Alder College SAT_AVG" {
		t.Errorf("legend label = %q", fig.Legend[0].Label)
	}

	// The visible series is the first styled one even though it is second
	// in input order: hidden series do not consume palette slots.
	if fig.Axes[1].Style != StyleAt(0) {
		t.Errorf("visible axis style = %v, want StyleAt(0)", fig.Axes[1].Style)
	}
}

func TestLayout_SpineOffsets(t *testing.T) {
	series := make([]scorecard.ResolvedSeries, 4)
	for i := range series {
		series[i] = yearSeries("C", "F", 2010, 2012, []int{2010, 2011}, []float64{1, 2})
	}
	fig, _ := Layout(series)

	if got := fig.Axes[0].SpinePos; got != 0 {
		t.Errorf("primary axis SpinePos = %v, want 0", got)
	}
	if got := fig.Axes[1].SpinePos; got != 1 {
		t.Errorf("first overlay SpinePos = %v, want 1", got)
	}
	if got := fig.Axes[2].SpinePos; math.Abs(got-1.09) > 1e-9 {
		t.Errorf("second overlay SpinePos = %v, want 1.09", got)
	}
	if got := fig.Axes[3].SpinePos; math.Abs(got-1.16) > 1e-9 {
		t.Errorf("third overlay SpinePos = %v, want 1.16", got)
	}

	// Right margin shrinks with the last offset axis: 0.9 - 0.025*3.
	if math.Abs(fig.RightMargin-0.825) > 1e-9 {
		t.Errorf("RightMargin = %v, want 0.825", fig.RightMargin)
	}
}

func TestLayout_EntityBroadcastSeries(t *testing.T) {
	fig, diags := Layout([]scorecard.ResolvedSeries{
		{
			Request: scorecard.SeriesRequest{College: "Birch University", Field: "LATITUDE", StartYear: 2010, EndYear: 2013},
			Scope:   scorecard.ScopeEntity,
			Values:  []float64{45.5},
		},
	})

	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none", diags)
	}
	ax := fig.Axes[0]
	if len(ax.X) != 4 {
		t.Fatalf("broadcast x length = %d, want 4", len(ax.X))
	}
	for i, y := range ax.Y {
		if y != 45.5 {
			t.Errorf("Y[%d] = %v, want 45.5", i, y)
		}
	}
	// Constant series: padded limits straddle the constant.
	if math.Abs(ax.YMin-45.5*0.9) > 1e-9 || math.Abs(ax.YMax-45.5*1.1) > 1e-9 {
		t.Errorf("y limits = [%v, %v]", ax.YMin, ax.YMax)
	}
}
