package tui

import (
	"strings"
	"testing"

	"github.com/scline/collegevis/internal/plot"
	"github.com/scline/collegevis/internal/scorecard"
)

func TestCanvas_Empty(t *testing.T) {
	fig, _ := plot.Layout(nil)
	out := canvas{width: 80, height: 20}.render(fig)

	if !strings.Contains(out, plot.EmptyCaption) {
		t.Error("empty render must carry the placeholder caption")
	}
	if strings.ContainsRune(out, '●') {
		t.Error("empty render must not carry markers")
	}
}

func TestCanvas_Populated(t *testing.T) {
	fig, _ := plot.Layout([]scorecard.ResolvedSeries{
		{
			Request: scorecard.SeriesRequest{College: "Alder College", Field: "SAT_AVG", StartYear: 2012, EndYear: 2014},
			Scope:   scorecard.ScopeYear,
			Years:   []int{2012, 2013, 2014},
			Values:  []float64{1200, 1210, 1220},
		},
	})
	out := canvas{width: 80, height: 20}.render(fig)

	if !strings.ContainsRune(out, '●') {
		t.Error("markers missing from render")
	}
	if !strings.Contains(out, "Alder College SAT_AVG") {
		t.Error("legend entry missing")
	}
	for _, year := range []string{"2011", "2015"} {
		if !strings.Contains(out, year) {
			t.Errorf("domain edge year %s missing from tick labels", year)
		}
	}
}

func TestCanvas_TooSmall(t *testing.T) {
	fig, _ := plot.Layout(nil)
	out := canvas{width: 10, height: 3}.render(fig)
	if !strings.Contains(out, "too small") {
		t.Errorf("render = %q", out)
	}
}
