package store

import (
	"reflect"
	"strings"

	"golang.org/x/text/cases"
)

// Table describes how records of type T map onto a single database table:
// the table name and, for each column, an accessor returning a pointer to
// the field that receives it.
//
// Example:
//
//	var customers = store.NewTable[Customer]("customer").
//	    Column("id", func(c *Customer) any { return &c.ID }).
//	    Column("name", func(c *Customer) any { return &c.Name })
type Table[T any] struct {
	name    string
	columns []string
	fields  map[string]func(*T) any
}

// NewTable creates a descriptor for the named table. An empty name
// defaults to T's bare type name, lowercased.
func NewTable[T any](name string) *Table[T] {
	if name == "" {
		name = strings.ToLower(reflect.TypeOf((*T)(nil)).Elem().Name())
	}
	return &Table[T]{
		name:   name,
		fields: make(map[string]func(*T) any),
	}
}

// Column declares a column and the accessor for its field. The accessor
// must return a pointer suitable for database/sql scanning (e.g. &rec.Name).
// Declaring the same column twice (ignoring case) replaces the accessor.
func (t *Table[T]) Column(name string, field func(*T) any) *Table[T] {
	key := foldName(name)
	if _, exists := t.fields[key]; !exists {
		t.columns = append(t.columns, name)
	}
	t.fields[key] = field
	return t
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}

// Columns returns the declared column names in declaration order.
func (t *Table[T]) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Has reports whether column is declared, ignoring case.
func (t *Table[T]) Has(column string) bool {
	_, ok := t.fields[foldName(column)]
	return ok
}

// field returns the accessor for column, ignoring case.
func (t *Table[T]) field(column string) (func(*T) any, bool) {
	f, ok := t.fields[foldName(column)]
	return f, ok
}

// foldName case-folds an identifier for case-insensitive matching.
// A Caser is stateful, so one is created per call.
func foldName(name string) string {
	return cases.Fold().String(name)
}
