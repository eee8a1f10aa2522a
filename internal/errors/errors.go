// Package errors provides centralized error definitions and error handling
// utilities for the collegevis codebase. It defines domain-specific errors,
// error constructors with context wrapping, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - SchemaError: the backing database does not have the expected shape
//   - QueryError: a series lookup against the database failed
//   - ValidationError: an input file failed structural validation
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewSchemaError("entity table missing", errors.ErrNoEntityTable)
//	err := errors.NewValidationError("row width mismatch", errors.ErrRowWidth).WithLine(42)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrNoYearTables) { ... }
//
//	var schemaErr *errors.SchemaError
//	if errors.As(err, &schemaErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Schema-related sentinel errors. Any of these is fatal to startup: no
// partial catalog is usable.
var (
	// ErrNoEntityTable indicates the College entity table is missing.
	ErrNoEntityTable = New("entity table not found")
	// ErrNoYearTables indicates no per-year tables were found.
	ErrNoYearTables = New("no year tables found")
	// ErrNoFields indicates the schema exposes no selectable data fields.
	ErrNoFields = New("no selectable fields found")
)

// Input-validation sentinel errors, raised by the validate package before
// any database load is attempted.
var (
	// ErrFieldDefArity indicates a field definition is not a [name, kind, precedence] triple.
	ErrFieldDefArity = New("field definition has wrong number of members")
	// ErrFieldDefType indicates a field definition member has the wrong type.
	ErrFieldDefType = New("field definition member has wrong type")
	// ErrStorageKind indicates a storage kind outside INTEGER/REAL/TEXT.
	ErrStorageKind = New("invalid storage kind")
	// ErrRowWidth indicates a raw data row with an inconsistent field count.
	ErrRowWidth = New("inconsistent row width")
)

// General sentinel errors
var (
	// ErrTooManySeries indicates a plot request beyond the series cap.
	ErrTooManySeries = New("too many series requested")
	// ErrUnknownField indicates a field name absent from the loaded catalog.
	ErrUnknownField = New("field not in catalog")
)

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// SchemaError represents a database whose shape does not match the expected
// College Scorecard layout (one entity table plus one table per year).
//
// Example:
//
//	err := errors.NewSchemaError("catalog load failed", errors.ErrNoYearTables).WithTable("College")
type SchemaError struct {
	message string
	cause   error
	Table   string
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(message string, cause error) *SchemaError {
	return &SchemaError{message: message, cause: cause}
}

// WithTable adds the offending table name to the error context.
func (e *SchemaError) WithTable(table string) *SchemaError {
	e.Table = table
	return e
}

// Error returns the formatted error message.
func (e *SchemaError) Error() string {
	prefix := "schema error"
	if e.Table != "" {
		prefix = fmt.Sprintf("schema error [table=%s]", e.Table)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error { return e.cause }

// Is checks if this error matches the target.
func (e *SchemaError) Is(target error) bool {
	if _, ok := target.(*SchemaError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// QueryError represents a failed series lookup. The request context is kept
// so the host can tell the user which selection could not be satisfied.
//
// Example:
//
//	err := errors.NewQueryError("lookup failed", cause).
//		WithCollege("Reed College").WithField("TUITIONFEE_IN")
type QueryError struct {
	message string
	cause   error
	College string
	Field   string
	Year    int
}

// NewQueryError creates a new QueryError.
func NewQueryError(message string, cause error) *QueryError {
	return &QueryError{message: message, cause: cause}
}

// WithCollege adds the college name to the error context.
func (e *QueryError) WithCollege(college string) *QueryError {
	e.College = college
	return e
}

// WithField adds the field name to the error context.
func (e *QueryError) WithField(field string) *QueryError {
	e.Field = field
	return e
}

// WithYear adds the year to the error context.
func (e *QueryError) WithYear(year int) *QueryError {
	e.Year = year
	return e
}

// Error returns the formatted error message.
func (e *QueryError) Error() string {
	var parts []string
	if e.College != "" {
		parts = append(parts, fmt.Sprintf("college=%s", e.College))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Year != 0 {
		parts = append(parts, fmt.Sprintf("year=%d", e.Year))
	}

	prefix := "query error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("query error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error { return e.cause }

// Is checks if this error matches the target.
func (e *QueryError) Is(target error) bool {
	if _, ok := target.(*QueryError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// ValidationError represents an input file that failed structural checks.
//
// Example:
//
//	err := errors.NewValidationError("raw data check failed", errors.ErrRowWidth).WithLine(17)
type ValidationError struct {
	message string
	cause   error
	Line    int
	Value   any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{message: message, cause: cause}
}

// WithLine adds the 1-based line number to the error context.
func (e *ValidationError) WithLine(line int) *ValidationError {
	e.Line = line
	return e
}

// WithValue adds the offending value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error { return e.cause }

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsFatal returns true if the error means the application cannot continue
// (schema errors: the catalog is unusable without a well-formed database).
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var schemaErr *SchemaError
	return As(err, &schemaErr)
}

// IsValidation returns true if the error came from input-file validation.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	var validationErr *ValidationError
	return As(err, &validationErr)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with an additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to open database")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
