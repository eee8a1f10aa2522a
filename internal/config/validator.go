package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "plot.max_series")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateDatabase()...)
	errors = append(errors, c.validatePlot()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateExport()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateDatabase() []ValidationError {
	var errors []ValidationError

	if c.Database.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "database.path",
			Value:   c.Database.Path,
			Message: "must not be empty",
		})
	}

	return errors
}

func (c *Config) validatePlot() []ValidationError {
	var errors []ValidationError

	if c.Plot.MaxSeries < 1 {
		errors = append(errors, ValidationError{
			Field:   "plot.max_series",
			Value:   c.Plot.MaxSeries,
			Message: "must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.CanvasHeight < 10 || c.TUI.CanvasHeight > 80 {
		errors = append(errors, ValidationError{
			Field:   "tui.canvas_height",
			Value:   c.TUI.CanvasHeight,
			Message: "must be between 10 and 80",
		})
	}

	return errors
}

func (c *Config) validateExport() []ValidationError {
	var errors []ValidationError

	if c.Export.Width < 100 {
		errors = append(errors, ValidationError{
			Field:   "export.width",
			Value:   c.Export.Width,
			Message: "must be at least 100",
		})
	}
	if c.Export.Height < 100 {
		errors = append(errors, ValidationError{
			Field:   "export.height",
			Value:   c.Export.Height,
			Message: "must be at least 100",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must not be negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must not be negative",
		})
	}

	return errors
}
