package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Scope binds at most one pooled connection to a unit of work.
//
// A Scope is owned by one goroutine; it is not safe for concurrent use.
// Acquire opens a connection on first use and returns the same handle until
// Release, which always clears the binding before closing so that the next
// Acquire never sees a broken handle.
//
// Helper operations called with a context that carries no Scope create an
// ephemeral one and release it when the call returns, so each such call
// runs on its own connection. To run several operations on one connection,
// attach a caller-owned Scope with WithScope; operations then reuse it and
// leave releasing to the caller.
type Scope struct {
	id     string
	db     *sqlx.DB
	conn   *sqlx.Conn
	logger *slog.Logger
}

// NewScope creates an unbound scope on the helper's pool.
func (h *Helper) NewScope() *Scope {
	return &Scope{
		id:     uuid.Must(uuid.NewV7()).String(),
		db:     h.db,
		logger: h.logger,
	}
}

// ID returns the scope's UUIDv7 identifier, used to correlate log lines.
func (s *Scope) ID() string {
	return s.id
}

// Bound reports whether a connection is currently bound.
func (s *Scope) Bound() bool {
	return s.conn != nil
}

// Acquire returns the bound connection, opening one from the pool if none
// is bound. A pool failure is returned as a CONNECTION error and leaves the
// scope unbound.
func (s *Scope) Acquire(ctx context.Context) (*sqlx.Conn, error) {
	if s.conn != nil {
		return s.conn, nil
	}

	conn, err := s.db.Connx(ctx)
	if err != nil {
		s.logger.Error("get connection failure", "scope_id", s.id, "error", err)
		return nil, &Error{Code: CodeConnection, Op: "acquire", Err: err}
	}

	s.conn = conn
	s.logger.Debug("connection acquired", "scope_id", s.id)
	return conn, nil
}

// Release closes the bound connection and clears the binding. The binding
// is cleared even when closing fails; the close error is logged and
// returned as a CONNECTION error. Releasing an unbound scope is a no-op.
func (s *Scope) Release() error {
	conn := s.conn
	if conn == nil {
		return nil
	}
	s.conn = nil

	if err := conn.Close(); err != nil {
		s.logger.Error("close connection failure", "scope_id", s.id, "error", err)
		return &Error{Code: CodeConnection, Op: "release", Err: err}
	}

	s.logger.Debug("connection released", "scope_id", s.id)
	return nil
}

type scopeKey struct{}

// WithScope returns a context carrying s. Helper operations run with that
// context share s's connection and do not release it.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFrom returns the scope carried by ctx, if any.
func ScopeFrom(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok && s != nil
}

// InScope runs fn with a fresh caller-owned scope attached to ctx and
// releases it when fn returns. A release error is returned only when fn
// itself succeeded.
//
// Example:
//
//	err := h.InScope(ctx, func(ctx context.Context) error {
//	    if _, err := h.ExecuteUpdate(ctx, "PRAGMA foreign_keys = ON"); err != nil {
//	        return err
//	    }
//	    _, err := h.ExecuteUpdate(ctx, "DELETE FROM customer WHERE id = ?", id)
//	    return err
//	})
func (h *Helper) InScope(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s := h.NewScope()
	defer func() {
		if relErr := s.Release(); relErr != nil && err == nil {
			err = relErr
		}
	}()
	return fn(WithScope(ctx, s))
}

// withConn runs fn on a connection. A scope attached to ctx for this
// helper's pool is reused and left bound; otherwise an ephemeral scope is
// acquired for the call and released unconditionally afterwards.
func (h *Helper) withConn(ctx context.Context, op string, fn func(conn *sqlx.Conn) error) (err error) {
	scope, shared := ScopeFrom(ctx)
	if !shared || scope.db != h.db {
		scope, shared = h.NewScope(), false
	}

	conn, err := scope.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !shared {
		defer func() {
			if relErr := scope.Release(); relErr != nil && err == nil {
				err = relErr
			}
		}()
	}

	return fn(conn)
}
