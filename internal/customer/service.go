package customer

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/roach88/dbhelper/internal/querysql"
	"github.com/roach88/dbhelper/internal/store"
)

//go:embed schema.sql
var schemaSQL string

const (
	selectAll       = "SELECT * FROM customer ORDER BY id"
	selectByKeyword = "SELECT * FROM customer WHERE name LIKE ? ORDER BY id"
	selectByID      = "SELECT * FROM customer WHERE id = ?"
)

// Service exposes the customer operations. It holds no state beyond the
// helper, so one Service may be shared across goroutines.
type Service struct {
	h *store.Helper
}

// NewService returns a Service backed by h.
func NewService(h *store.Helper) *Service {
	return &Service{h: h}
}

// EnsureSchema creates the customer table if it does not exist. The DDL is
// written for SQLite.
func (s *Service) EnsureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.h.ExecuteUpdate(ctx, stmt); err != nil {
			return fmt.Errorf("ensure customer schema: %w", err)
		}
	}
	return nil
}

// GetCustomerList returns all customers ordered by id. A non-empty keyword
// restricts the list to names containing it.
func (s *Service) GetCustomerList(ctx context.Context, keyword string) ([]Customer, error) {
	if keyword == "" {
		return store.QueryEntityList(ctx, s.h, Table, selectAll)
	}
	return store.QueryEntityList(ctx, s.h, Table, selectByKeyword, "%"+keyword+"%")
}

// GetCustomer returns the customer with id, or nil if there is none.
func (s *Service) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	return store.QueryEntity(ctx, s.h, Table, selectByID, id)
}

// CreateCustomer inserts a customer from fields.
func (s *Service) CreateCustomer(ctx context.Context, fields querysql.FieldMap) (bool, error) {
	return store.InsertEntity(ctx, s.h, Table, fields)
}

// UpdateCustomer updates the given columns of customer id.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, fields querysql.FieldMap) (bool, error) {
	return store.UpdateEntity(ctx, s.h, Table, id, fields)
}

// DeleteCustomer deletes customer id.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) (bool, error) {
	return store.DeleteEntity(ctx, s.h, Table, id)
}
