package cmd

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/scline/collegevis/internal/config"
	"github.com/scline/collegevis/internal/logging"
	"github.com/scline/collegevis/internal/scorecard"
)

// newLogger builds the configured logger, or a no-op logger when logging
// is disabled. The caller owns Close.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.Nop(), nil
	}
	rotation := logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	return logging.New(cfg.Logging.ResolveLogFile(), cfg.Logging.Level, rotation)
}

// openEngine opens the configured database and loads the catalog and query
// engine over it. The caller closes the engine, then the database.
func openEngine(cfg *config.Config, log *logging.Logger) (*sql.DB, *scorecard.Catalog, *scorecard.Engine, error) {
	path := cfg.Database.ResolveDatabasePath()
	if path == "" {
		return nil, nil, nil, fmt.Errorf("no database configured; pass --db or set database.path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	catalog, err := scorecard.LoadCatalog(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("loading catalog from %s: %w", path, err)
	}

	engine, err := scorecard.NewEngine(db, catalog, log)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("preparing query engine: %w", err)
	}

	log.WithComponent("cmd").Info("database opened",
		"path", path,
		"colleges", len(catalog.Colleges),
		"years", len(catalog.Years),
		"fields", len(catalog.Fields))
	return db, catalog, engine, nil
}
