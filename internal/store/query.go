package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Operation names used in errors and log lines.
const (
	opQueryEntityList = "query entity list"
	opQueryEntity     = "query entity"
	opExecuteQuery    = "execute query"
	opExecuteUpdate   = "execute update"
	opInsertEntity    = "insert entity"
	opUpdateEntity    = "update entity"
	opDeleteEntity    = "delete entity"
)

// QueryEntityList runs query and maps every row onto a new T using table.
// The result is never nil; zero rows yield an empty slice.
func QueryEntityList[T any](ctx context.Context, h *Helper, table *Table[T], query string, args ...any) ([]T, error) {
	list := make([]T, 0)
	err := h.query(ctx, opQueryEntityList, query, args, func(rows *sqlx.Rows) error {
		cols, err := rows.Columns()
		if err != nil {
			return h.fail(opQueryEntityList, CodeStatement, query, err)
		}
		for rows.Next() {
			rec, err := scanEntity(rows, table, cols)
			if err != nil {
				return h.fail(opQueryEntityList, CodeMapping, query, err)
			}
			list = append(list, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// QueryEntity runs query and maps its first row onto a new T.
// It returns nil when no row matched; further rows are ignored.
func QueryEntity[T any](ctx context.Context, h *Helper, table *Table[T], query string, args ...any) (*T, error) {
	var found *T
	err := h.query(ctx, opQueryEntity, query, args, func(rows *sqlx.Rows) error {
		cols, err := rows.Columns()
		if err != nil {
			return h.fail(opQueryEntity, CodeStatement, query, err)
		}
		if !rows.Next() {
			return nil
		}
		rec, err := scanEntity(rows, table, cols)
		if err != nil {
			return h.fail(opQueryEntity, CodeMapping, query, err)
		}
		found = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ExecuteQuery runs query and returns every row as an ordered list of
// column/value pairs. Values are passed through from the driver without
// coercion. The result is never nil.
func (h *Helper) ExecuteQuery(ctx context.Context, query string, args ...any) ([]Row, error) {
	result := make([]Row, 0)
	err := h.query(ctx, opExecuteQuery, query, args, func(rows *sqlx.Rows) error {
		cols, err := rows.Columns()
		if err != nil {
			return h.fail(opExecuteQuery, CodeStatement, query, err)
		}
		for rows.Next() {
			values := make([]any, len(cols))
			dest := make([]any, len(cols))
			for i := range values {
				dest[i] = &values[i]
			}
			if err := rows.Scan(dest...); err != nil {
				return h.fail(opExecuteQuery, CodeMapping, query, err)
			}

			row := make(Row, len(cols))
			for i, name := range cols {
				row[i] = Column{Name: name, Value: values[i]}
			}
			result = append(result, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExecuteUpdate runs an INSERT, UPDATE, DELETE or DDL statement and returns
// the number of affected rows.
func (h *Helper) ExecuteUpdate(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64
	err := h.withConn(ctx, opExecuteUpdate, func(conn *sqlx.Conn) error {
		result, err := conn.ExecContext(ctx, h.prepare(conn, query, args), args...)
		if err != nil {
			return h.fail(opExecuteUpdate, CodeStatement, query, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return h.fail(opExecuteUpdate, CodeStatement, query, err)
		}
		affected = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// query runs a row-returning statement and hands the open rows to scan.
// Rows are closed before the connection is released.
func (h *Helper) query(ctx context.Context, op, query string, args []any, scan func(rows *sqlx.Rows) error) error {
	return h.withConn(ctx, op, func(conn *sqlx.Conn) error {
		rows, err := conn.QueryxContext(ctx, h.prepare(conn, query, args), args...)
		if err != nil {
			return h.fail(op, CodeStatement, query, err)
		}
		defer rows.Close()

		if err := scan(rows); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return h.fail(op, CodeStatement, query, err)
		}
		return nil
	})
}

// prepare rebinds ? placeholders to the driver's syntax, then traces the
// statement.
func (h *Helper) prepare(conn *sqlx.Conn, query string, args []any) string {
	bound := conn.Rebind(query)
	h.logger.Debug("executing statement", "sql", bound, "args", len(args))
	if h.hook != nil {
		h.hook(bound, args)
	}
	return bound
}

// scanEntity scans the current row into a new T. Columns without a
// declared field are discarded; fields without a column keep their zero
// value.
func scanEntity[T any](rows *sqlx.Rows, table *Table[T], cols []string) (T, error) {
	var rec T
	dest := make([]any, len(cols))
	for i, col := range cols {
		if field, ok := table.field(col); ok {
			dest[i] = field(&rec)
		} else {
			dest[i] = new(any)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return rec, err
	}
	return rec, nil
}
