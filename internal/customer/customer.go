// Package customer provides CRUD operations over the customer table on top
// of the store helper.
package customer

import (
	"github.com/roach88/dbhelper/internal/store"
)

// Customer is one row of the customer table.
type Customer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Remark    string `json:"remark"`
}

// Table maps customer columns onto Customer fields. Writes are restricted to
// these columns.
var Table = store.NewTable[Customer]("customer").
	Column("id", func(c *Customer) any { return &c.ID }).
	Column("name", func(c *Customer) any { return &c.Name }).
	Column("contact", func(c *Customer) any { return &c.Contact }).
	Column("telephone", func(c *Customer) any { return &c.Telephone }).
	Column("email", func(c *Customer) any { return &c.Email }).
	Column("remark", func(c *Customer) any { return &c.Remark })
