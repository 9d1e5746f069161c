package store

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDriver(t *testing.T) {
	testCases := []struct {
		id   string
		want string
	}{
		{"sqlite3", DriverSQLite3},
		{"org.sqlite.JDBC", DriverSQLite3},
		{"sqlite", DriverSQLite},
		{"mysql", DriverMySQL},
		{"com.mysql.jdbc.Driver", DriverMySQL},
		{"com.mysql.cj.jdbc.Driver", DriverMySQL},
		{"postgres", DriverPostgres},
		{"PostgreSQL", DriverPostgres},
		{"org.postgresql.Driver", DriverPostgres},
		{" pgx ", DriverPostgres},
		{"mssql", DriverSQLServer},
		{"com.microsoft.sqlserver.jdbc.SQLServerDriver", DriverSQLServer},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			got, err := ResolveDriver(tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveDriver_Unknown(t *testing.T) {
	for _, id := range []string{"", "oracle", "com.mysql.jdbc"} {
		_, err := ResolveDriver(id)
		assert.ErrorIs(t, err, ErrUnknownDriver, "id %q", id)
	}
}

func TestSupportedDrivers_Sorted(t *testing.T) {
	ids := SupportedDrivers()
	require.NotEmpty(t, ids)
	assert.IsIncreasing(t, ids)
	assert.Contains(t, ids, "sqlite3")
}

func TestDataSource_SQLiteIgnoresCredentials(t *testing.T) {
	dsn, cleanup, err := dataSource(DriverSQLite3, Config{URL: "file:app.db", Username: "u", Password: "p"})
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, "file:app.db", dsn)
}

func TestDataSource_MySQLInjectsCredentials(t *testing.T) {
	dsn, cleanup, err := dataSource(DriverMySQL, Config{
		URL:      "tcp(localhost:3306)/shop",
		Username: "root",
		Password: "secret",
	})
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, strings.HasPrefix(dsn, "root:secret@tcp(localhost:3306)/shop"), dsn)
}

func TestDataSource_MySQLKeepsURLCredentials(t *testing.T) {
	dsn, cleanup, err := dataSource(DriverMySQL, Config{URL: "app:pw@tcp(db:3306)/shop"})
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, strings.HasPrefix(dsn, "app:pw@tcp(db:3306)/shop"), dsn)
}

func TestDataSource_MySQLInvalid(t *testing.T) {
	_, _, err := dataSource(DriverMySQL, Config{URL: "tcp(localhost:3306"})
	assert.Error(t, err)
}

func TestDataSource_PostgresRegistersConfig(t *testing.T) {
	dsn, cleanup, err := dataSource(DriverPostgres, Config{
		URL:      "postgres://localhost:5432/shop",
		Username: "app",
		Password: "pw",
	})
	require.NoError(t, err)
	defer cleanup()

	assert.NotEmpty(t, dsn)
	assert.NotContains(t, dsn, "pw", "credentials travel in the registered config, not the DSN")
}

func TestDataSource_PostgresInvalid(t *testing.T) {
	_, _, err := dataSource(DriverPostgres, Config{URL: "postgres://host:notaport/db"})
	assert.Error(t, err)
}

func TestDataSource_SQLServerInjectsCredentials(t *testing.T) {
	dsn, cleanup, err := dataSource(DriverSQLServer, Config{
		URL:      "sqlserver://db:1433?database=shop",
		Username: "sa",
		Password: "pw",
	})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, "sqlserver://sa:pw@db:1433?database=shop", dsn)
}

func TestDataSource_UnknownDriver(t *testing.T) {
	_, _, err := dataSource("oracle", Config{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

// Placeholders are written as ? everywhere and rebound per driver.
func TestPlaceholderRebinding(t *testing.T) {
	query := "UPDATE customer SET contact=? WHERE id = ?"

	testCases := []struct {
		driver string
		want   string
	}{
		{DriverSQLite3, query},
		{DriverSQLite, query},
		{DriverMySQL, query},
		{DriverPostgres, "UPDATE customer SET contact=$1 WHERE id = $2"},
		{DriverSQLServer, "UPDATE customer SET contact=@p1 WHERE id = @p2"},
	}

	for _, tc := range testCases {
		t.Run(tc.driver, func(t *testing.T) {
			assert.Equal(t, tc.want, sqlx.Rebind(sqlx.BindType(tc.driver), query))
		})
	}
}
