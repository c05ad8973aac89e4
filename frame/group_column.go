package frame

import (
	"fmt"

	"github.com/go-sif/columnar"
	errors "github.com/go-sif/columnar/errors"
)

// GroupColumn embeds a Table whose rows are the rows of the owning Table
type GroupColumn struct {
	name  string
	table *Table
}

// NewGroupColumn is a factory for GroupColumns
func NewGroupColumn(name string, table *Table) (*GroupColumn, error) {
	if table == nil {
		return nil, fmt.Errorf("Group column %s requires a Table", name)
	}
	return &GroupColumn{name: name, table: table}, nil
}

// Name returns the name of this GroupColumn
func (c *GroupColumn) Name() string {
	return c.name
}

// Kind returns columnar.GroupKind
func (c *GroupColumn) Kind() columnar.ColumnKind {
	return columnar.GroupKind
}

// Size returns the number of rows of the embedded Table
func (c *GroupColumn) Size() int {
	return c.table.RowCount()
}

// Get returns row i of the embedded Table, as a Row
func (c *GroupColumn) Get(i int) (interface{}, error) {
	if i < 0 || i >= c.Size() {
		return nil, errors.IndexOutOfRangeError{Index: i, Size: c.Size()}
	}
	return c.table.Row(i)
}

// Table returns the embedded Table
func (c *GroupColumn) Table() *Table {
	return c.table
}

// Rename returns a copy of this GroupColumn with a different name
func (c *GroupColumn) Rename(name string) columnar.Column {
	return &GroupColumn{name: name, table: c.table}
}
