package store

import (
	"bytes"
	"encoding/json"
)

// Column is one column of a generic result row.
type Column struct {
	Name  string
	Value any
}

// Row is one row of a generic query result: column names exactly as the
// driver reports them, with native driver values, in result-set order.
type Row []Column

// Names returns the column names in order.
func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}

// Get returns the value of the first column with the given name
// (exact match).
func (r Row) Get(name string) (any, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// Map returns the row as an unordered map.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, c := range r {
		m[c.Name] = c.Value
	}
	return m
}

// MarshalJSON encodes the row as a JSON object with keys in column order.
// []byte values are encoded as strings.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v := c.Value
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
