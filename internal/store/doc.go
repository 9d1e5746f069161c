// Package store is a small data-access helper over database/sql.
//
// It provides:
//   - A pooled database handle opened from a driver identifier and URL
//     (SQLite via mattn/go-sqlite3 or modernc.org/sqlite, MySQL, PostgreSQL
//     via pgx, SQL Server)
//   - Scopes: at most one connection bound to a unit of work
//   - Parameterized execution with ? placeholders, rebound per driver
//   - Row mapping onto records through explicit Table descriptors, or onto
//     ordered generic rows
//   - INSERT/UPDATE/DELETE synthesis from an ordered field map
//
// # Connection Discipline
//
// Every operation acquires a connection, runs one statement, and releases
// the connection before returning, on success or failure. Calls made with a
// context carrying a Scope (see WithScope and Helper.InScope) instead share
// that scope's connection, and the scope's owner decides when it is
// released.
//
// # Identifiers
//
// Table and column names are concatenated into synthesized statements
// without quoting. They are validated as bare identifiers and checked
// against the Table descriptor; values are always bound as parameters.
//
// # Errors
//
// Failures are returned as *Error with a code (CONNECTION, STATEMENT,
// MAPPING, VALIDATION) and the underlying cause attached. Nothing is retried.
package store
