package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/dbhelper/internal/store"
)

// OpenSQLite opens a helper on a fresh SQLite file in t.TempDir. The helper
// is closed when the test ends.
func OpenSQLite(t testing.TB, opts ...store.Option) *store.Helper {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	h, err := store.Open(context.Background(), store.Config{Driver: store.DriverSQLite3, URL: path}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

// ConnectionsInUse reports how many pooled connections are currently
// checked out.
func ConnectionsInUse(h *store.Helper) int {
	return h.DB().Stats().InUse
}
