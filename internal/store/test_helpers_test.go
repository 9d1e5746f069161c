package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type person struct {
	ID        int64
	Name      string
	Contact   string
	Telephone string
}

var people = NewTable[person]("person").
	Column("id", func(p *person) any { return &p.ID }).
	Column("name", func(p *person) any { return &p.Name }).
	Column("contact", func(p *person) any { return &p.Contact }).
	Column("telephone", func(p *person) any { return &p.Telephone })

const personSchema = `
	CREATE TABLE person (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL DEFAULT '',
		contact TEXT NOT NULL DEFAULT '',
		telephone TEXT NOT NULL DEFAULT ''
	)
`

// statementCounter records every statement the helper sends.
type statementCounter struct {
	mu         sync.Mutex
	statements []string
	args       [][]any
}

func (c *statementCounter) hook(query string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statements = append(c.statements, query)
	c.args = append(c.args, args)
}

func (c *statementCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.statements)
}

func (c *statementCounter) last() (string, []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.statements) == 0 {
		return "", nil
	}
	n := len(c.statements) - 1
	return c.statements[n], c.args[n]
}

// createTestHelper opens a helper on a fresh SQLite file with the person
// table created.
func createTestHelper(t *testing.T, opts ...Option) *Helper {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	h, err := Open(context.Background(), Config{Driver: "sqlite3", URL: path}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	_, err = h.DB().Exec(personSchema)
	require.NoError(t, err)
	return h
}

// seedPeople inserts rows directly, bypassing the helper.
func seedPeople(t *testing.T, h *Helper, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := h.DB().Exec("INSERT INTO person (name, contact, telephone) VALUES (?, ?, ?)", name, name+"-contact", "555")
		require.NoError(t, err)
	}
}

// inUse returns the number of pool connections currently checked out.
func inUse(h *Helper) int {
	return h.DB().Stats().InUse
}
