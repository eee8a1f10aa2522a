// Package scorecard loads the College Scorecard catalog from a SQLite
// database and resolves series requests against it.
//
// The database layout is one entity table ("College": college_id, INSTNM,
// per-college static attributes) plus one table per year, named by the
// literal year, each carrying a college_id foreign key and that year's
// metrics. The Catalog is loaded once at startup and is immutable; the
// Engine prepares one statement per catalog entry at load time, so table
// and column names never enter query text at request time; only the
// college name is ever bound as a parameter.
package scorecard
