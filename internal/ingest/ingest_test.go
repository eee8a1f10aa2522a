package ingest

import (
	"database/sql"
	"io"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/scline/collegevis/internal/errors"
	"github.com/scline/collegevis/internal/logging"
	"github.com/scline/collegevis/internal/scorecard"
	"github.com/scline/collegevis/internal/validate"
)

func openBuildDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func testDefs(t *testing.T) []validate.FieldDef {
	t.Helper()
	input := `[["INSTNM", "TEXT", 0], ["CITY", "TEXT", 1], ["SAT_AVG", "INTEGER", 2], ["ADM_RATE", "REAL", 3]]`
	defs, err := validate.ParseFieldDefs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parsing defs: %v", err)
	}
	return defs
}

const raw2012 = `UNITID,INSTNM,CITY,SAT_AVG,ADM_RATE
100,Birch University,Portland,1200,0.42
101,Alder College,Salem,1100,0.61
`

const raw2013 = `UNITID,INSTNM,CITY,SAT_AVG,ADM_RATE
100,Birch University,Portland,NULL,0.40
101,Alder College,Salem,1110,PrivacySuppressed
102,Cedar Institute,Eugene,990,0.75
`

func TestBuild(t *testing.T) {
	db := openBuildDB(t)
	err := Build(db, testDefs(t), map[int]io.Reader{
		2012: strings.NewReader(raw2012),
		2013: strings.NewReader(raw2013),
	}, []string{"CITY"}, logging.Nop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	catalog, err := scorecard.LoadCatalog(db)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	wantColleges := []string{"Alder College", "Birch University", "Cedar Institute"}
	if len(catalog.Colleges) != len(wantColleges) {
		t.Fatalf("colleges = %v", catalog.Colleges)
	}
	for i, want := range wantColleges {
		if catalog.Colleges[i] != want {
			t.Errorf("Colleges[%d] = %q, want %q", i, catalog.Colleges[i], want)
		}
	}

	if len(catalog.Years) != 2 || catalog.Years[0] != "2012" || catalog.Years[1] != "2013" {
		t.Errorf("years = %v, want [2012 2013]", catalog.Years)
	}

	// CITY is TEXT so it is not plottable; SAT_AVG and ADM_RATE are
	// year-scoped metric columns.
	for _, field := range []string{"SAT_AVG", "ADM_RATE"} {
		scope, ok := catalog.FieldScope(field)
		if !ok || scope != scorecard.ScopeYear {
			t.Errorf("FieldScope(%s) = %v, %v", field, scope, ok)
		}
	}
	if _, ok := catalog.FieldScope("CITY"); ok {
		t.Error("CITY must not be a plottable field")
	}

	engine, err := scorecard.NewEngine(db, catalog, logging.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer engine.Close()

	series, diags := engine.Resolve([]scorecard.SeriesRequest{
		{College: "Alder College", Field: "SAT_AVG", StartYear: 2012, EndYear: 2013},
		{College: "Birch University", Field: "SAT_AVG", StartYear: 2012, EndYear: 2013},
	})
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v", diags)
	}

	if want := []float64{1100, 1110}; !equalFloats(series[0].Values, want) {
		t.Errorf("Alder SAT_AVG = %v, want %v", series[0].Values, want)
	}
	// Birch's 2013 SAT_AVG was the NULL sentinel, so only 2012 survives.
	if want := []float64{1200}; !equalFloats(series[1].Values, want) {
		t.Errorf("Birch SAT_AVG = %v, want %v", series[1].Values, want)
	}
}

func TestBuild_CollegeIdentityAcrossYears(t *testing.T) {
	db := openBuildDB(t)
	err := Build(db, testDefs(t), map[int]io.Reader{
		2012: strings.NewReader(raw2012),
		2013: strings.NewReader(raw2013),
	}, []string{"CITY"}, logging.Nop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Birch appears in both years but gets exactly one entity row.
	var count int
	row := db.QueryRow(`SELECT COUNT(*) FROM College WHERE INSTNM = 'Birch University'`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("counting: %v", err)
	}
	if count != 1 {
		t.Errorf("entity rows = %d, want 1", count)
	}

	var years int
	row = db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT college_id FROM "2012" UNION ALL SELECT college_id FROM "2013"
		) WHERE college_id = (SELECT college_id FROM College WHERE INSTNM = 'Birch University')`)
	if err := row.Scan(&years); err != nil {
		t.Fatalf("counting year rows: %v", err)
	}
	if years != 2 {
		t.Errorf("year rows = %d, want 2", years)
	}
}

func TestBuild_ValidationRefusesSchema(t *testing.T) {
	db := openBuildDB(t)

	// 2013 is missing a defined column, so nothing may be created.
	err := Build(db, testDefs(t), map[int]io.Reader{
		2012: strings.NewReader(raw2012),
		2013: strings.NewReader("UNITID,INSTNM\n100,Birch University\n"),
	}, []string{"CITY"}, logging.Nop())
	if !errors.Is(err, errors.ErrUnknownField) {
		t.Fatalf("got %v, want ErrUnknownField", err)
	}

	var tables int
	row := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'`)
	if err := row.Scan(&tables); err != nil {
		t.Fatalf("counting tables: %v", err)
	}
	if tables != 0 {
		t.Errorf("tables created = %d, want 0 after validation failure", tables)
	}
}

func TestBuild_RaggedRows(t *testing.T) {
	db := openBuildDB(t)
	ragged := "UNITID,INSTNM,CITY,SAT_AVG,ADM_RATE\n100,Birch University,Portland,1200\n"
	err := Build(db, testDefs(t), map[int]io.Reader{2012: strings.NewReader(ragged)},
		[]string{"CITY"}, logging.Nop())
	if !errors.Is(err, errors.ErrRowWidth) {
		t.Fatalf("got %v, want ErrRowWidth", err)
	}
}

func TestBuild_NoDefs(t *testing.T) {
	db := openBuildDB(t)
	err := Build(db, nil, map[int]io.Reader{}, nil, logging.Nop())
	if !errors.Is(err, errors.ErrNoFields) {
		t.Fatalf("got %v, want ErrNoFields", err)
	}
}

func equalFloats(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
