// Package validate checks the structure of the two input files the build
// pipeline consumes: a field definition file whose first line is a JSON
// array of [name, kind, precedence] triples, and raw College Scorecard CSV
// data. Validation is purely structural; it never touches a database.
package validate

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/scline/collegevis/internal/errors"
)

// FieldDef is one parsed field definition triple. Kind is the SQLite
// storage class the column is created with; Precedence orders columns in
// the generated tables.
type FieldDef struct {
	Name       string
	Kind       string
	Precedence int
}

// storageKinds are the storage classes a field definition may declare.
var storageKinds = map[string]bool{
	"INTEGER": true,
	"REAL":    true,
	"TEXT":    true,
}

// ParseFieldDefs reads the first line of r as a JSON array of
// [name, kind, precedence] triples and returns the parsed definitions.
// Any structural failure is reported as a ValidationError wrapping one of
// ErrFieldDefArity, ErrFieldDefType, or ErrStorageKind.
func ParseFieldDefs(r io.Reader) ([]FieldDef, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading field definitions")
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, errors.NewValidationError("field definition file is empty", errors.ErrNoFields)
	}

	var raw [][]json.RawMessage
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, errors.NewValidationError("field definitions are not a JSON array of triples", errors.ErrFieldDefArity).WithLine(1)
	}

	defs := make([]FieldDef, 0, len(raw))
	for _, triple := range raw {
		def, err := parseTriple(triple)
		if err != nil {
			var verr *errors.ValidationError
			if errors.As(err, &verr) {
				verr.WithLine(1).WithValue(string(mustJoin(triple)))
			}
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func parseTriple(triple []json.RawMessage) (FieldDef, error) {
	if len(triple) != 3 {
		return FieldDef{}, errors.NewValidationError("field definition is not a triple", errors.ErrFieldDefArity)
	}

	var def FieldDef
	if err := json.Unmarshal(triple[0], &def.Name); err != nil {
		return FieldDef{}, errors.NewValidationError("field name is not a string", errors.ErrFieldDefType)
	}
	if err := json.Unmarshal(triple[1], &def.Kind); err != nil {
		return FieldDef{}, errors.NewValidationError("storage kind is not a string", errors.ErrFieldDefType)
	}
	if !storageKinds[def.Kind] {
		return FieldDef{}, errors.NewValidationError("storage kind must be INTEGER, REAL, or TEXT", errors.ErrStorageKind)
	}
	if err := json.Unmarshal(triple[2], &def.Precedence); err != nil {
		return FieldDef{}, errors.NewValidationError("precedence is not an integer", errors.ErrFieldDefType)
	}
	return def, nil
}

func mustJoin(parts []json.RawMessage) []byte {
	joined, err := json.Marshal(parts)
	if err != nil {
		return nil
	}
	return joined
}

// CheckFieldDefs validates the field definition file without retaining the
// parsed result.
func CheckFieldDefs(r io.Reader) error {
	_, err := ParseFieldDefs(r)
	return err
}

// CheckRawData verifies that every CSV line in r splits into the same
// number of fields as the first line. A mismatch is reported as a
// ValidationError wrapping ErrRowWidth with the 1-based line number.
func CheckRawData(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	want := -1
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		width := strings.Count(scanner.Text(), ",") + 1
		if want == -1 {
			want = width
			continue
		}
		if width != want {
			return errors.NewValidationError("row width does not match header", errors.ErrRowWidth).
				WithLine(lineNo).
				WithValue(width)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading raw data")
	}
	if lineNo == 0 {
		return errors.NewValidationError("raw data file is empty", errors.ErrRowWidth)
	}
	return nil
}
