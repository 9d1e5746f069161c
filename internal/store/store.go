package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Config holds the connection settings for Open.
type Config struct {
	// Driver is a driver identifier accepted by ResolveDriver.
	Driver string

	// URL is the driver-specific data source (file path or DSN).
	URL string

	Username string
	Password string

	// Pool tuning. Zero values keep database/sql defaults.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// StatementHook is called with the final (rebound) SQL and its parameters
// immediately before each statement is sent to the database.
type StatementHook func(query string, args []any)

// Option configures a Helper.
type Option func(*Helper)

// WithLogger sets the logger used for failures and statement tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Helper) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithStatementHook installs a hook observing every executed statement.
func WithStatementHook(hook StatementHook) Option {
	return func(h *Helper) {
		h.hook = hook
	}
}

// Helper executes parameterized SQL against a pooled database and maps the
// results onto records or generic rows.
//
// The pool is safe for concurrent use; connections are handed out through
// Scopes, one goroutine per Scope.
type Helper struct {
	db      *sqlx.DB
	logger  *slog.Logger
	hook    StatementHook
	cleanup func()
}

// Open resolves the configured driver, opens the pool, and verifies it with
// a ping.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Helper, error) {
	driver, err := ResolveDriver(cfg.Driver)
	if err != nil {
		return nil, &Error{Code: CodeConnection, Op: "open", Err: err}
	}

	dsn, cleanup, err := dataSource(driver, cfg)
	if err != nil {
		return nil, &Error{Code: CodeConnection, Op: "open", Err: err}
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		cleanup()
		return nil, &Error{Code: CodeConnection, Op: "open", Err: fmt.Errorf("failed to open database: %w", err)}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		cleanup()
		return nil, &Error{Code: CodeConnection, Op: "open", Err: fmt.Errorf("failed to connect to database: %w", err)}
	}

	h := New(db, opts...)
	h.cleanup = cleanup
	return h, nil
}

// New wraps an already opened pool.
func New(db *sqlx.DB, opts ...Option) *Helper {
	h := &Helper{
		db:      db,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		cleanup: func() {},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Close closes the pool. Safe to call on a Helper without a pool.
func (h *Helper) Close() error {
	if h.db == nil {
		return nil
	}
	defer h.cleanup()
	if err := h.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// DB returns the underlying pool for direct use.
// Use with caution - prefer Helper operations when available.
func (h *Helper) DB() *sqlx.DB {
	return h.db
}

// DriverName returns the database/sql driver name in use.
func (h *Helper) DriverName() string {
	return h.db.DriverName()
}

// Ping verifies the database is reachable through a scope, following the
// same acquire/release discipline as every other operation.
func (h *Helper) Ping(ctx context.Context) error {
	return h.withConn(ctx, "ping", func(conn *sqlx.Conn) error {
		if err := conn.PingContext(ctx); err != nil {
			return h.fail("ping", CodeConnection, "", err)
		}
		return nil
	})
}

// fail logs err and wraps it as an *Error.
func (h *Helper) fail(op string, code ErrorCode, query string, err error) error {
	h.logger.Error(op+" failure", "code", string(code), "sql", query, "error", err)
	return &Error{Code: code, Op: op, SQL: query, Err: err}
}
