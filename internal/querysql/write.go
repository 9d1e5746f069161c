package querysql

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyFieldMap is returned when an INSERT or UPDATE is built from
	// a field map with no columns.
	ErrEmptyFieldMap = errors.New("field map is empty")

	// ErrInvalidIdentifier is returned when a table or column name fails
	// identifier validation.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// identifierPattern is the accepted shape of table and column names.
// Identifiers are concatenated into the statement unquoted, so anything
// outside this set is rejected rather than escaped.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ColumnFilter reports whether a column may be written. A nil filter
// accepts every syntactically valid column.
type ColumnFilter func(column string) bool

// Statement is a synthesized SQL statement with its bind parameters.
// All values are parameterized with ? placeholders, never interpolated.
type Statement struct {
	SQL    string
	Params []any
}

// ValidateIdentifier checks that name can be used as a bare table or column
// name.
func ValidateIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// Insert builds
//
//	INSERT INTO <table> (<c1>, <c2>, ...) VALUES (?, ?, ...)
//
// with the field map's values as parameters, in the same order as the
// columns.
func Insert(table string, fields FieldMap, allow ColumnFilter) (Statement, error) {
	if err := checkFields(table, fields, allow); err != nil {
		return Statement{}, fmt.Errorf("build insert: %w", err)
	}

	placeholders := make([]string, fields.Len())
	for i := range placeholders {
		placeholders[i] = "?"
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(fields.Columns(), ", "),
		strings.Join(placeholders, ", "))

	return Statement{SQL: sql, Params: fields.Values()}, nil
}

// Update builds
//
//	UPDATE <table> SET <c1>=?,<c2>=? WHERE id = ?
//
// The parameters are the field map's values in order followed by id.
func Update(table string, id int64, fields FieldMap, allow ColumnFilter) (Statement, error) {
	if err := checkFields(table, fields, allow); err != nil {
		return Statement{}, fmt.Errorf("build update: %w", err)
	}

	assignments := make([]string, fields.Len())
	for i, col := range fields.Columns() {
		assignments[i] = col + "=?"
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(assignments, ","))

	params := append(fields.Values(), id)
	return Statement{SQL: sql, Params: params}, nil
}

// Delete builds
//
//	DELETE FROM <table> WHERE id = ?
func Delete(table string, id int64) (Statement, error) {
	if err := ValidateIdentifier(table); err != nil {
		return Statement{}, fmt.Errorf("build delete: table: %w", err)
	}
	return Statement{
		SQL:    fmt.Sprintf("DELETE FROM %s WHERE id = ?", table),
		Params: []any{id},
	}, nil
}

// checkFields validates the table name and every column of a non-empty
// field map. Duplicate columns are rejected: they would bind the same
// column twice.
func checkFields(table string, fields FieldMap, allow ColumnFilter) error {
	if err := ValidateIdentifier(table); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if fields.Empty() {
		return ErrEmptyFieldMap
	}

	seen := make(map[string]struct{}, fields.Len())
	for _, f := range fields {
		if err := ValidateIdentifier(f.Column); err != nil {
			return fmt.Errorf("column: %w", err)
		}
		if allow != nil && !allow(f.Column) {
			return fmt.Errorf("%w: column %q is not declared on table %s", ErrInvalidIdentifier, f.Column, table)
		}
		key := strings.ToLower(f.Column)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidIdentifier, f.Column)
		}
		seen[key] = struct{}{}
	}
	return nil
}
