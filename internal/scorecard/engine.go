package scorecard

import (
	"database/sql"
	"fmt"

	"github.com/scline/collegevis/internal/errors"
	"github.com/scline/collegevis/internal/logging"
)

// Engine resolves series requests against the backing database.
//
// All query text is assembled once, at construction, from catalog-derived
// table and column names; per-request execution only ever binds the college
// name. Each lookup is a single independent read: no transactions, no
// retries.
type Engine struct {
	catalog *Catalog
	log     *logging.Logger

	entityStmts map[string]*sql.Stmt
	yearStmts   map[yearField]*sql.Stmt
}

type yearField struct {
	year  int
	field string
}

// NewEngine prepares one statement per catalog field (and per year for
// year-scoped fields). A year table missing one of the shared columns is
// tolerated: lookups for that (year, field) pair resolve to a gap.
func NewEngine(db *sql.DB, catalog *Catalog, log *logging.Logger) (*Engine, error) {
	e := &Engine{
		catalog:     catalog,
		log:         log.WithComponent("engine"),
		entityStmts: make(map[string]*sql.Stmt),
		yearStmts:   make(map[yearField]*sql.Stmt),
	}

	for _, f := range catalog.EntityFields() {
		query := fmt.Sprintf(`SELECT %q FROM %q WHERE %q = ?`, f.Name, entityTable, nameColumn)
		stmt, err := db.Prepare(query)
		if err != nil {
			e.Close()
			return nil, errors.NewSchemaError("preparing entity lookup", err).WithTable(entityTable)
		}
		e.entityStmts[f.Name] = stmt
	}

	for _, yearName := range catalog.Years {
		for _, f := range catalog.YearFields() {
			query := fmt.Sprintf(
				`SELECT %[1]q.%[2]q FROM %[1]q JOIN %[3]q ON %[1]q.%[4]q = %[3]q.%[4]q WHERE %[3]q.%[5]q = ?`,
				yearName, f.Name, entityTable, idColumn, nameColumn)
			stmt, err := db.Prepare(query)
			if err != nil {
				// This year's table lacks the column; treat as no data.
				e.log.Debug("year table missing column", "year", yearName, "field", f.Name)
				continue
			}
			year := mustYear(yearName)
			e.yearStmts[yearField{year: year, field: f.Name}] = stmt
		}
	}

	return e, nil
}

// mustYear converts a catalog year name back to its integer form. Catalog
// loading only admits names that parse, so a failure here is a programming
// error.
func mustYear(name string) int {
	var year int
	if _, err := fmt.Sscanf(name, "%d", &year); err != nil {
		panic(fmt.Sprintf("scorecard: malformed year name %q in catalog", name))
	}
	return year
}

// Close releases every prepared statement.
func (e *Engine) Close() error {
	var errs []error
	for _, stmt := range e.entityStmts {
		if err := stmt.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, stmt := range e.yearStmts {
		if err := stmt.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Resolve translates each request into a ResolvedSeries. Requests that
// match no rows anywhere in their range produce one Diagnostic each and an
// empty series; resolution always continues through the whole batch.
//
// The series cap is the caller's contract: the host rejects over-capacity
// batches before they reach the engine.
func (e *Engine) Resolve(requests []SeriesRequest) ([]ResolvedSeries, []Diagnostic) {
	resolved := make([]ResolvedSeries, 0, len(requests))
	var diags []Diagnostic

	for _, req := range requests {
		series := e.resolveOne(req)
		if series.Empty() {
			diags = append(diags, Diagnostic{
				College:   req.College,
				Field:     req.Field,
				StartYear: req.StartYear,
				EndYear:   req.EndYear,
			})
			e.log.WithSeries(req.College, req.Field).Warn("no data found for series",
				"start_year", req.StartYear, "end_year", req.EndYear)
		}
		resolved = append(resolved, series)
	}

	return resolved, diags
}

func (e *Engine) resolveOne(req SeriesRequest) ResolvedSeries {
	scope, ok := e.catalog.FieldScope(req.Field)
	if !ok {
		e.log.Error("request for unknown field",
			"field", req.Field, "err", errors.ErrUnknownField)
		return ResolvedSeries{Request: req}
	}

	series := ResolvedSeries{Request: req, Scope: scope}

	if scope == ScopeEntity {
		if v, ok := e.lookupEntity(req); ok {
			series.Values = []float64{v}
		}
		return series
	}

	for _, year := range req.YearSpan() {
		if !e.catalog.HasYear(year) {
			continue
		}
		if v, ok := e.lookupYear(req, year); ok {
			series.Years = append(series.Years, year)
			series.Values = append(series.Values, v)
		}
	}
	return series
}

// lookupEntity fetches the single static value for an entity-scoped field.
// Absent rows and NULL values both count as no data.
func (e *Engine) lookupEntity(req SeriesRequest) (float64, bool) {
	stmt, ok := e.entityStmts[req.Field]
	if !ok {
		return 0, false
	}

	var v sql.NullFloat64
	err := stmt.QueryRow(req.College).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, false
	}
	if err != nil {
		e.log.Error("entity lookup failed", "err",
			errors.NewQueryError("entity lookup", err).
				WithCollege(req.College).WithField(req.Field))
		return 0, false
	}
	return v.Float64, v.Valid
}

// lookupYear fetches one year's value for a year-scoped field.
func (e *Engine) lookupYear(req SeriesRequest, year int) (float64, bool) {
	stmt, ok := e.yearStmts[yearField{year: year, field: req.Field}]
	if !ok {
		return 0, false
	}

	var v sql.NullFloat64
	err := stmt.QueryRow(req.College).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, false
	}
	if err != nil {
		e.log.Error("year lookup failed", "err",
			errors.NewQueryError("year lookup", err).
				WithCollege(req.College).WithField(req.Field).WithYear(year))
		return 0, false
	}
	return v.Float64, v.Valid
}
