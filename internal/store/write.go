package store

import (
	"context"

	"github.com/roach88/dbhelper/internal/querysql"
)

// InsertEntity inserts one row into table built from fields and reports
// whether exactly one row was affected.
//
// An empty field map is rejected before touching the database: the
// rejection is logged and (false, nil) is returned. Callers cannot tell
// that apart from an insert that affected no rows.
//
// Column names are validated as bare identifiers and must be declared on
// table; a rejected column returns a VALIDATION error and issues nothing.
func InsertEntity[T any](ctx context.Context, h *Helper, table *Table[T], fields querysql.FieldMap) (bool, error) {
	if fields.Empty() {
		h.logger.Error("can not insert entity: field map is empty", "table", table.Name())
		return false, nil
	}

	stmt, err := querysql.Insert(table.Name(), fields, table.allow())
	if err != nil {
		return false, h.fail(opInsertEntity, CodeValidation, "", err)
	}

	n, err := h.ExecuteUpdate(ctx, stmt.SQL, stmt.Params...)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// UpdateEntity updates the row of table whose id matches and reports whether
// exactly one row was affected. Empty field maps are handled as in
// InsertEntity.
func UpdateEntity[T any](ctx context.Context, h *Helper, table *Table[T], id int64, fields querysql.FieldMap) (bool, error) {
	if fields.Empty() {
		h.logger.Error("can not update entity: field map is empty", "table", table.Name(), "id", id)
		return false, nil
	}

	stmt, err := querysql.Update(table.Name(), id, fields, table.allow())
	if err != nil {
		return false, h.fail(opUpdateEntity, CodeValidation, "", err)
	}

	n, err := h.ExecuteUpdate(ctx, stmt.SQL, stmt.Params...)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// DeleteEntity deletes the row of table whose id matches and reports whether
// exactly one row was affected.
func DeleteEntity[T any](ctx context.Context, h *Helper, table *Table[T], id int64) (bool, error) {
	stmt, err := querysql.Delete(table.Name(), id)
	if err != nil {
		return false, h.fail(opDeleteEntity, CodeValidation, "", err)
	}

	n, err := h.ExecuteUpdate(ctx, stmt.SQL, stmt.Params...)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// allow returns the column filter for write synthesis. A table without
// declared columns accepts any valid identifier.
func (t *Table[T]) allow() querysql.ColumnFilter {
	if len(t.columns) == 0 {
		return nil
	}
	return t.Has
}
