// Package ingest constructs the visualizer's SQLite database from raw
// College Scorecard inputs: a field definition file describing the columns
// to keep, and one CSV file per year of data.
//
// The generated schema has one College entity table keyed by college_id
// and one table per year named by the literal year. Entity columns are
// stored once per college; everything else becomes a per-year metric
// column. All inputs are validated before any DDL runs, so a structural
// failure never leaves a half-built database behind.
package ingest

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/scline/collegevis/internal/errors"
	"github.com/scline/collegevis/internal/logging"
	"github.com/scline/collegevis/internal/validate"
)

const nameColumn = "INSTNM"

// yearInput is one year's parsed CSV: a header naming the raw columns and
// the data rows beneath it.
type yearInput struct {
	year   int
	header map[string]int
	rows   [][]string
}

// Build creates the visualizer schema in db and loads every year of raw
// data into it. entityFields names the columns stored on the College table;
// INSTNM is always included. Field definitions select and type the columns
// kept from the raw files; raw columns without a definition are dropped.
func Build(db *sql.DB, defs []validate.FieldDef, rawByYear map[int]io.Reader, entityFields []string, log *logging.Logger) error {
	if len(defs) == 0 {
		return errors.NewValidationError("no field definitions", errors.ErrNoFields)
	}

	entityDefs, yearDefs := partition(defs, entityFields)

	years := make([]int, 0, len(rawByYear))
	for year := range rawByYear {
		years = append(years, year)
	}
	sort.Ints(years)

	// Parse and validate every input before touching the database.
	inputs := make([]yearInput, 0, len(years))
	for _, year := range years {
		input, err := readYear(year, rawByYear[year], defs)
		if err != nil {
			return err
		}
		inputs = append(inputs, input)
	}

	if err := createSchema(db, entityDefs, yearDefs, years); err != nil {
		return err
	}

	loader := &loader{
		db:         db,
		entityDefs: entityDefs,
		yearDefs:   yearDefs,
		collegeIDs: make(map[string]int64),
		log:        log,
	}
	for _, input := range inputs {
		if err := loader.loadYear(input); err != nil {
			return err
		}
		log.WithComponent("ingest").Info("year loaded",
			"year", input.year, "rows", len(input.rows))
	}
	return nil
}

// partition splits the definitions into entity columns and per-year metric
// columns, preserving precedence order within each group. INSTNM is always
// an entity column and is excluded from both groups since the schema
// declares it explicitly.
func partition(defs []validate.FieldDef, entityFields []string) (entity, year []validate.FieldDef) {
	ordered := make([]validate.FieldDef, len(defs))
	copy(ordered, defs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Precedence < ordered[j].Precedence
	})

	entitySet := map[string]bool{nameColumn: true}
	for _, name := range entityFields {
		entitySet[name] = true
	}

	for _, def := range ordered {
		if def.Name == nameColumn {
			continue
		}
		if entitySet[def.Name] {
			entity = append(entity, def)
		} else {
			year = append(year, def)
		}
	}
	return entity, year
}

// readYear parses one year's CSV and verifies that every defined column is
// present in its header. The csv reader enforces consistent row widths;
// a mismatch surfaces as ErrRowWidth with the offending line number.
func readYear(year int, r io.Reader, defs []validate.FieldDef) (yearInput, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false

	records, err := cr.ReadAll()
	if err != nil {
		verr := errors.NewValidationError(
			fmt.Sprintf("malformed raw data for %d", year), errors.ErrRowWidth)
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			verr.WithLine(parseErr.Line)
		}
		return yearInput{}, verr
	}
	if len(records) < 1 {
		return yearInput{}, errors.NewValidationError(
			fmt.Sprintf("raw data for %d is empty", year), errors.ErrRowWidth)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	if _, ok := header[nameColumn]; !ok {
		return yearInput{}, errors.NewValidationError(
			fmt.Sprintf("raw data for %d has no %s column", year, nameColumn),
			errors.ErrUnknownField).WithValue(nameColumn)
	}
	for _, def := range defs {
		if _, ok := header[def.Name]; !ok {
			return yearInput{}, errors.NewValidationError(
				fmt.Sprintf("raw data for %d has no %s column", year, def.Name),
				errors.ErrUnknownField).WithValue(def.Name)
		}
	}

	return yearInput{year: year, header: header, rows: records[1:]}, nil
}

func createSchema(db *sql.DB, entityDefs, yearDefs []validate.FieldDef, years []int) error {
	var cols strings.Builder
	cols.WriteString("college_id INTEGER PRIMARY KEY, INSTNM TEXT")
	for _, def := range entityDefs {
		fmt.Fprintf(&cols, ", %q %s", def.Name, def.Kind)
	}
	stmt := fmt.Sprintf("CREATE TABLE %q (%s)", "College", cols.String())
	if _, err := db.Exec(stmt); err != nil {
		return errors.NewSchemaError("creating entity table", err).WithTable("College")
	}

	for _, year := range years {
		table := fmt.Sprintf("%d", year)
		cols.Reset()
		cols.WriteString("college_id INTEGER REFERENCES College(college_id)")
		for _, def := range yearDefs {
			fmt.Fprintf(&cols, ", %q %s", def.Name, def.Kind)
		}
		stmt := fmt.Sprintf("CREATE TABLE %q (%s)", table, cols.String())
		if _, err := db.Exec(stmt); err != nil {
			return errors.NewSchemaError("creating year table", err).WithTable(table)
		}
	}
	return nil
}

type loader struct {
	db         *sql.DB
	entityDefs []validate.FieldDef
	yearDefs   []validate.FieldDef
	collegeIDs map[string]int64
	log        *logging.Logger
}

// loadYear inserts one year's rows in a single transaction. Colleges are
// keyed by INSTNM: the first year a college appears in creates its entity
// row, and later years reuse its id.
func (l *loader) loadYear(input yearInput) error {
	tx, err := l.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning load transaction")
	}
	defer tx.Rollback()

	insertCollege, err := tx.Prepare(l.insertCollegeSQL())
	if err != nil {
		return errors.Wrap(err, "preparing college insert")
	}
	defer insertCollege.Close()

	insertYear, err := tx.Prepare(l.insertYearSQL(input.year))
	if err != nil {
		return errors.Wrap(err, "preparing year insert")
	}
	defer insertYear.Close()

	nameIdx := input.header[nameColumn]
	for _, row := range input.rows {
		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			continue
		}

		id, ok := l.collegeIDs[name]
		if !ok {
			args := make([]any, 0, len(l.entityDefs)+1)
			args = append(args, name)
			for _, def := range l.entityDefs {
				args = append(args, cellValue(row, input.header, def))
			}
			res, err := insertCollege.Exec(args...)
			if err != nil {
				return errors.Wrap(err, "inserting college")
			}
			id, err = res.LastInsertId()
			if err != nil {
				return errors.Wrap(err, "reading college id")
			}
			l.collegeIDs[name] = id
		}

		args := make([]any, 0, len(l.yearDefs)+1)
		args = append(args, id)
		for _, def := range l.yearDefs {
			args = append(args, cellValue(row, input.header, def))
		}
		if _, err := insertYear.Exec(args...); err != nil {
			return errors.Wrap(err, "inserting year row")
		}
	}

	return tx.Commit()
}

func (l *loader) insertCollegeSQL() string {
	cols := []string{"INSTNM"}
	for _, def := range l.entityDefs {
		cols = append(cols, fmt.Sprintf("%q", def.Name))
	}
	return fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		"College", strings.Join(cols, ", "), placeholders(len(cols)))
}

func (l *loader) insertYearSQL(year int) string {
	cols := []string{"college_id"}
	for _, def := range l.yearDefs {
		cols = append(cols, fmt.Sprintf("%q", def.Name))
	}
	return fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		fmt.Sprintf("%d", year), strings.Join(cols, ", "), placeholders(len(cols)))
}

func placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = "?"
	}
	return strings.Join(marks, ", ")
}

// cellValue returns the raw cell for a defined column, or nil for blank and
// sentinel cells so they land as SQL NULL.
func cellValue(row []string, header map[string]int, def validate.FieldDef) any {
	idx := header[def.Name]
	if idx >= len(row) {
		return nil
	}
	v := strings.TrimSpace(row[idx])
	if v == "" || v == "NULL" || v == "PrivacySuppressed" {
		return nil
	}
	return v
}
