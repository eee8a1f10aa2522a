package scorecard

import "fmt"

// SeriesRequest is one user-specified (college, field, year-range) selection.
// StartYear <= EndYear is not enforced: an inverted range resolves to an
// empty series rather than an error.
type SeriesRequest struct {
	College   string
	Field     string
	StartYear int
	EndYear   int
}

// Label is the series' display name, used for axis labels and legend entries.
func (r SeriesRequest) Label() string {
	return r.College + " " + r.Field
}

// String identifies the request in diagnostics and logs.
func (r SeriesRequest) String() string {
	return fmt.Sprintf("%s %s %d-%d", r.College, r.Field, r.StartYear, r.EndYear)
}

// YearSpan returns the inclusive year range, empty when StartYear > EndYear.
func (r SeriesRequest) YearSpan() []int {
	if r.StartYear > r.EndYear {
		return nil
	}
	span := make([]int, 0, r.EndYear-r.StartYear+1)
	for y := r.StartYear; y <= r.EndYear; y++ {
		span = append(span, y)
	}
	return span
}

// ResolvedSeries is a SeriesRequest plus the values retrieved for it.
// For entity-scoped fields Values holds zero or one constant; for
// year-scoped fields Years and Values are parallel, holding only the years
// in range that had data (gaps are omitted, not null-padded).
type ResolvedSeries struct {
	Request SeriesRequest
	Scope   Scope
	Years   []int
	Values  []float64
}

// Empty reports whether the series produced no plottable values.
func (s ResolvedSeries) Empty() bool {
	return len(s.Values) == 0
}

// Points expands the series into parallel x/y coordinate sequences.
// An entity-scoped constant is broadcast across every year of the requested
// range; a year-scoped series yields its recorded (year, value) pairs.
// An empty series yields nil slices.
func (s ResolvedSeries) Points() ([]int, []float64) {
	if s.Empty() {
		return nil, nil
	}

	if s.Scope == ScopeEntity {
		span := s.Request.YearSpan()
		ys := make([]float64, len(span))
		for i := range ys {
			ys[i] = s.Values[0]
		}
		return span, ys
	}

	return s.Years, s.Values
}

// Diagnostic reports a series request that matched no data. It is
// informational: the request is omitted from the plot and resolution of the
// remaining requests continues.
type Diagnostic struct {
	College   string
	Field     string
	StartYear int
	EndYear   int
}

// String renders the user-facing diagnostic message.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s data does not exist for %s for years %d-%d. Data will not appear in plot.",
		d.Field, d.College, d.StartYear, d.EndYear)
}

// MergeDiagnostics concatenates diagnostic lists in order, dropping
// duplicates. Resolution and layout can both report the same series (a
// resolved-but-unplottable series is only caught at layout), so hosts merge
// the two lists before surfacing them.
func MergeDiagnostics(lists ...[]Diagnostic) []Diagnostic {
	var out []Diagnostic
	seen := make(map[Diagnostic]bool)
	for _, list := range lists {
		for _, d := range list {
			if seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
