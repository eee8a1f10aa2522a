package scorecard

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory database with the Scorecard layout:
// a College entity table and three year tables with deliberate gaps.
//
// Colleges are inserted out of name order so catalog sorting is observable.
// Birch University has no SAT_AVG in 2013 and a NULL ADM_RATE in 2014;
// Cedar Institute has no yearly rows at all.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	// One connection so every statement sees the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE College (
			college_id INTEGER PRIMARY KEY,
			INSTNM TEXT,
			CITY TEXT,
			LATITUDE REAL,
			CONTROL INTEGER
		)`,
		`CREATE TABLE "2012" (college_id INTEGER, SAT_AVG INTEGER, ADM_RATE REAL)`,
		`CREATE TABLE "2013" (college_id INTEGER, SAT_AVG INTEGER, ADM_RATE REAL)`,
		`CREATE TABLE "2014" (college_id INTEGER, SAT_AVG INTEGER, ADM_RATE REAL)`,

		`INSERT INTO College VALUES (1, 'Birch University', 'Portland', 45.5, 1)`,
		`INSERT INTO College VALUES (2, 'Alder College', 'Salem', 44.9, 2)`,
		`INSERT INTO College VALUES (3, 'Cedar Institute', 'Eugene', 44.0, 1)`,

		`INSERT INTO "2012" VALUES (1, 1100, 0.50)`,
		`INSERT INTO "2012" VALUES (2, 1200, 0.40)`,
		`INSERT INTO "2013" VALUES (1, NULL, 0.48)`,
		`INSERT INTO "2013" VALUES (2, 1210, 0.41)`,
		`INSERT INTO "2014" VALUES (1, 1150, NULL)`,
		`INSERT INTO "2014" VALUES (2, 1220, 0.39)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("setting up fixture: %v\n%s", err, s)
		}
	}
	return db
}

// loadTestCatalog opens the fixture and loads its catalog.
func loadTestCatalog(t *testing.T) (*sql.DB, *Catalog) {
	t.Helper()
	db := openTestDB(t)
	catalog, err := LoadCatalog(db)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	return db, catalog
}
