package plot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/scline/collegevis/internal/scorecard"
)

func TestExportSVG_Empty(t *testing.T) {
	fig, _ := Layout(nil)

	var buf bytes.Buffer
	if err := ExportSVG(&buf, fig, 960, 600); err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, EmptyCaption) {
		t.Error("empty figure must render the placeholder caption")
	}
	if strings.Contains(out, "<circle") || strings.Contains(out, "<polygon") {
		t.Error("empty figure must not render markers")
	}
}

func TestExportSVG_Populated(t *testing.T) {
	fig, _ := Layout([]scorecard.ResolvedSeries{
		yearSeries("Alder College", "SAT_AVG", 2012, 2014, []int{2012, 2013, 2014}, []float64{1200, 1210, 1220}),
		yearSeries("Birch University", "ADM_RATE", 2012, 2014, []int{2012, 2013}, []float64{0.42, 0.40}),
	})

	var buf bytes.Buffer
	if err := ExportSVG(&buf, fig, 960, 600); err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	out := buf.String()

	// First series: blue circles. Second: green squares.
	if !strings.Contains(out, "<circle") {
		t.Error("first series markers missing")
	}
	if !strings.Contains(out, "fill:#0000ff") {
		t.Error("first series color missing")
	}
	if !strings.Contains(out, "fill:#008000") {
		t.Error("second series color missing")
	}

	for _, label := range []string{"Alder College SAT_AVG", "Birch University ADM_RATE"} {
		if !strings.Contains(out, label) {
			t.Errorf("legend label %q missing", label)
		}
	}

	// One tick label per integer year across the padded domain.
	for _, year := range []string{"2011", "2012", "2013", "2014", "2015"} {
		if !strings.Contains(out, ">"+year+"<") {
			t.Errorf("tick label %s missing", year)
		}
	}
	if !strings.Contains(out, ">Year<") {
		t.Error("x-axis label missing")
	}
}

func TestExportSVG_HiddenAxisSkipped(t *testing.T) {
	fig, _ := Layout([]scorecard.ResolvedSeries{
		yearSeries("Cedar Institute", "SAT_AVG", 2012, 2014, nil, nil),
		yearSeries("Alder College", "SAT_AVG", 2012, 2014, []int{2012}, []float64{1200}),
	})

	var buf bytes.Buffer
	if err := ExportSVG(&buf, fig, 960, 600); err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "Cedar Institute") {
		t.Error("hidden series must not appear in the render")
	}
	if !strings.Contains(out, "Alder College SAT_AVG") {
		t.Error("visible series legend entry missing")
	}
}

func TestTrimFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{9.0, "9"},
		{33.0, "33"},
		{0.378, "0.38"},
		{1210.5, "1210.5"},
	}
	for _, tc := range cases {
		if got := trimFloat(tc.in); got != tc.want {
			t.Errorf("trimFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
