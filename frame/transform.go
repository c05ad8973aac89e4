package frame

import (
	"github.com/go-sif/columnar"
	errors "github.com/go-sif/columnar/errors"
)

// WithColumn returns a new Table with a column appended
func (t *Table) WithColumn(col columnar.Column) (*Table, error) {
	return NewTable(append(t.Columns(), col)...)
}

// RemoveColumns returns a new Table without the named columns
func (t *Table) RemoveColumns(names ...string) (*Table, error) {
	remove := make(map[string]bool, len(names))
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, errors.ColumnNotFoundError{Name: name, Message: "cannot remove a missing column"}
		}
		remove[name] = true
	}
	kept := make([]columnar.Column, 0, len(t.columns))
	for _, c := range t.columns {
		if !remove[c.Name()] {
			kept = append(kept, c)
		}
	}
	return NewTable(kept...)
}

// Take returns a new Table holding the rows at the given indices, in the given order
func (t *Table) Take(indices []int) (*Table, error) {
	for _, i := range indices {
		if i < 0 || i >= t.rows {
			return nil, errors.IndexOutOfRangeError{Index: i, Size: t.rows}
		}
	}
	cols := make([]columnar.Column, len(t.columns))
	for ci, c := range t.columns {
		switch col := c.(type) {
		case *ValueColumn:
			values := make([]interface{}, len(indices))
			for j, i := range indices {
				values[j] = col.values[i]
			}
			cols[ci] = &ValueColumn{name: col.name, values: values, valueType: col.valueType}
		case *GroupColumn:
			inner, err := col.table.Take(indices)
			if err != nil {
				return nil, err
			}
			cols[ci] = &GroupColumn{name: col.name, table: inner}
		case *FrameColumn:
			taken, err := col.take(indices)
			if err != nil {
				return nil, err
			}
			cols[ci] = taken
		}
	}
	return NewTable(cols...)
}

// Filter returns a new Table holding the rows for which fn returns true
func (t *Table) Filter(fn func(row Row) (bool, error)) (*Table, error) {
	indices := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		keep, err := fn(Row{table: t, index: i})
		if err != nil {
			return nil, err
		}
		if keep {
			indices = append(indices, i)
		}
	}
	return t.Take(indices)
}

// RenameColumn returns a new Table in which the column oldName is called newName
func (t *Table) RenameColumn(oldName string, newName string) (*Table, error) {
	i, ok := t.index[oldName]
	if !ok {
		return nil, errors.ColumnNotFoundError{Name: oldName, Message: "cannot rename a missing column"}
	}
	cols := t.Columns()
	cols[i] = cols[i].Rename(newName)
	return NewTable(cols...)
}
