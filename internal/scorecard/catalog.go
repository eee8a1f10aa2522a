package scorecard

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/scline/collegevis/internal/errors"
)

// Fixed schema identifiers. The entity table and its columns are produced by
// the build step; everything else in the database is a year table.
const (
	entityTable = "College"
	idColumn    = "college_id"
	nameColumn  = "INSTNM"
)

// Kind is a column storage kind as reported by SQLite.
type Kind string

// Storage kinds accepted for selectable fields. TEXT columns exist in the
// schema but are never exposed for plotting.
const (
	KindInteger Kind = "INTEGER"
	KindReal    Kind = "REAL"
	KindText    Kind = "TEXT"
)

// Scope says whether a field has one value per college (entity) or one
// value per college per year.
type Scope int

const (
	// ScopeEntity marks a static per-college attribute.
	ScopeEntity Scope = iota
	// ScopeYear marks a per-college, per-year metric.
	ScopeYear
)

// String returns the string representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeEntity:
		return "entity"
	case ScopeYear:
		return "year"
	default:
		return "unknown"
	}
}

// Field is one selectable data field from the catalog.
type Field struct {
	Name  string
	Kind  Kind
	Scope Scope
}

// Catalog is the immutable, startup-loaded reference data: the known
// colleges, years and selectable fields. Entity-scoped fields come first in
// Fields; EntityFieldCount records the partition boundary.
type Catalog struct {
	Colleges         []string
	Years            []string
	Fields           []Field
	EntityFieldCount int

	fieldIndex map[string]int
	yearSet    map[int]bool
}

// LoadCatalog introspects the database schema and builds the catalog.
// It fails with a SchemaError when the entity table is missing, no year
// tables exist, or no selectable fields remain after filtering.
func LoadCatalog(db *sql.DB) (*Catalog, error) {
	c := &Catalog{
		fieldIndex: make(map[string]int),
		yearSet:    make(map[int]bool),
	}

	if err := c.loadColleges(db); err != nil {
		return nil, err
	}
	if err := c.loadYears(db); err != nil {
		return nil, err
	}
	if err := c.loadFields(db); err != nil {
		return nil, err
	}

	for i, f := range c.Fields {
		c.fieldIndex[f.Name] = i
	}

	return c, nil
}

// FieldScope classifies a field name against the catalog partition.
// The second return is false for names not in the catalog.
func (c *Catalog) FieldScope(name string) (Scope, bool) {
	i, ok := c.fieldIndex[name]
	if !ok {
		return 0, false
	}
	if i < c.EntityFieldCount {
		return ScopeEntity, true
	}
	return ScopeYear, true
}

// HasYear reports whether the database contains a table for the given year.
func (c *Catalog) HasYear(year int) bool {
	return c.yearSet[year]
}

// EntityFields returns the entity-scoped slice of the field list.
func (c *Catalog) EntityFields() []Field {
	return c.Fields[:c.EntityFieldCount]
}

// YearFields returns the year-scoped slice of the field list.
func (c *Catalog) YearFields() []Field {
	return c.Fields[c.EntityFieldCount:]
}

func (c *Catalog) loadColleges(db *sql.DB) error {
	query := fmt.Sprintf(`SELECT %[1]q FROM %[2]q ORDER BY %[1]q ASC`, nameColumn, entityTable)
	rows, err := db.Query(query)
	if err != nil {
		if isMissingTable(err) {
			return errors.NewSchemaError("querying college names", errors.ErrNoEntityTable).WithTable(entityTable)
		}
		return errors.NewSchemaError("querying college names", err).WithTable(entityTable)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.NewSchemaError("scanning college name", err).WithTable(entityTable)
		}
		c.Colleges = append(c.Colleges, name)
	}
	return rows.Err()
}

// isMissingTable reports whether a query failed because its table does not
// exist, as opposed to an unrelated driver or I/O failure. SQLite has no
// structured error code surface through database/sql for this.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

func (c *Catalog) loadYears(db *sql.DB) error {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return errors.NewSchemaError("listing tables", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.NewSchemaError("scanning table name", err)
		}
		if name == entityTable || name == "sqlite_sequence" {
			continue
		}
		// Year tables are named by the literal year; anything else in
		// sqlite_master (indexes and the like appear under other types)
		// is not part of the dataset.
		year, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return errors.NewSchemaError("listing tables", err)
	}

	if len(years) == 0 {
		return errors.NewSchemaError("database has no year tables", errors.ErrNoYearTables)
	}

	sort.Ints(years)
	for _, y := range years {
		c.yearSet[y] = true
		c.Years = append(c.Years, strconv.Itoa(y))
	}
	return nil
}

func (c *Catalog) loadFields(db *sql.DB) error {
	entity, err := tableColumns(db, entityTable)
	if err != nil {
		return errors.NewSchemaError("reading entity columns", err).WithTable(entityTable)
	}
	if len(entity) == 0 {
		return errors.NewSchemaError("entity table has no columns", errors.ErrNoEntityTable).WithTable(entityTable)
	}

	for _, col := range entity {
		if col.name == idColumn || col.kind == KindText {
			continue
		}
		c.Fields = append(c.Fields, Field{Name: col.name, Kind: col.kind, Scope: ScopeEntity})
	}
	c.EntityFieldCount = len(c.Fields)

	// Year tables share a column set; the first one defines it.
	yearCols, err := tableColumns(db, c.Years[0])
	if err != nil {
		return errors.NewSchemaError("reading year columns", err).WithTable(c.Years[0])
	}
	for _, col := range yearCols {
		if col.name == idColumn || col.kind == KindText {
			continue
		}
		c.Fields = append(c.Fields, Field{Name: col.name, Kind: col.kind, Scope: ScopeYear})
	}

	if len(c.Fields) == 0 {
		return errors.NewSchemaError("no plottable columns", errors.ErrNoFields)
	}
	return nil
}

type column struct {
	name string
	kind Kind
}

// tableColumns reads PRAGMA table_info for a table. The table name comes
// from the catalog itself, never from user input.
func tableColumns(db *sql.DB, table string) ([]column, error) {
	rows, err := db.Query(`SELECT name, type FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var name, kind string
		if err := rows.Scan(&name, &kind); err != nil {
			return nil, err
		}
		cols = append(cols, column{name: name, kind: Kind(kind)})
	}
	return cols, rows.Err()
}
