package querysql

import "fmt"

// Field is one column/value pair of a FieldMap.
type Field struct {
	Column string
	Value  any
}

// FieldMap is an ordered column → value mapping used to build INSERT and
// UPDATE statements. Iteration order is insertion order; the synthesized
// column list and the bind parameters both follow it.
type FieldMap []Field

// Fields builds a FieldMap from alternating column/value arguments.
//
// Example:
//
//	querysql.Fields("name", "A", "contact", "B")
//
// Panics if called with an odd number of arguments or a non-string column,
// which is always a programming error at the call site.
func Fields(kv ...any) FieldMap {
	if len(kv)%2 != 0 {
		panic("querysql.Fields: odd number of arguments")
	}
	m := make(FieldMap, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		col, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("querysql.Fields: column at position %d is %T, not string", i, kv[i]))
		}
		m = m.Set(col, kv[i+1])
	}
	return m
}

// Set assigns value to column. An existing column keeps its position;
// a new column is appended.
func (m FieldMap) Set(column string, value any) FieldMap {
	for i := range m {
		if m[i].Column == column {
			m[i].Value = value
			return m
		}
	}
	return append(m, Field{Column: column, Value: value})
}

// Len returns the number of columns.
func (m FieldMap) Len() int {
	return len(m)
}

// Empty reports whether the map has no columns.
func (m FieldMap) Empty() bool {
	return len(m) == 0
}

// Columns returns the column names in order.
func (m FieldMap) Columns() []string {
	cols := make([]string, len(m))
	for i, f := range m {
		cols[i] = f.Column
	}
	return cols
}

// Values returns the values in column order.
func (m FieldMap) Values() []any {
	vals := make([]any, len(m))
	for i, f := range m {
		vals[i] = f.Value
	}
	return vals
}
