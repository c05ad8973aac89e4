package frame

import (
	"fmt"

	"github.com/go-sif/columnar"
	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/logging"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
)

// Table is an immutable, ordered sequence of uniquely named columns of equal size.
// Every transformation of a Table yields a new Table with its own ID.
type Table struct {
	id      uuid.UUID
	columns []columnar.Column
	index   map[string]int
	rows    int
}

// NewTable is a factory for Tables. Duplicate column names and unequal column sizes
// are reported together, as a DuplicateColumnNamesError and an UnequalColumnSizesError.
func NewTable(columns ...columnar.Column) (*Table, error) {
	var multierr *multierror.Error
	index := make(map[string]int, len(columns))
	names := make([]string, len(columns))
	var duplicates []string
	for i, c := range columns {
		switch c.(type) {
		case *ValueColumn, *GroupColumn, *FrameColumn:
		default:
			return nil, fmt.Errorf("Unsupported column implementation %T", c)
		}
		names[i] = c.Name()
		if _, exists := index[c.Name()]; exists {
			duplicates = append(duplicates, c.Name())
			continue
		}
		index[c.Name()] = i
	}
	if len(duplicates) > 0 {
		multierr = multierror.Append(multierr, errors.DuplicateColumnNamesError{Names: names, Duplicates: duplicates})
	}

	rows := 0
	if len(columns) > 0 {
		rows = columns[0].Size()
		sizes := make([]errors.ColumnSize, len(columns))
		unequal := false
		for i, c := range columns {
			sizes[i] = errors.ColumnSize{Name: c.Name(), Size: c.Size()}
			unequal = unequal || c.Size() != rows
		}
		if unequal {
			multierr = multierror.Append(multierr, errors.UnequalColumnSizesError{Expected: rows, Sizes: sizes})
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}

	stored := make([]columnar.Column, len(columns))
	copy(stored, columns)
	t := &Table{
		id:      uuid.Must(uuid.NewV4()),
		columns: stored,
		index:   index,
		rows:    rows,
	}
	logging.With("frame").Debug("Built table", "id", t.id.String(), "columns", len(stored), "rows", rows)
	return t, nil
}

// MustNewTable is like NewTable, but panics on error
func MustNewTable(columns ...columnar.Column) *Table {
	t, err := NewTable(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// ID returns the unique identifier of this Table snapshot
func (t *Table) ID() uuid.UUID {
	return t.id
}

// RowCount returns the number of rows in this Table
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of top-level columns in this Table
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Columns returns the top-level columns of this Table, in order
func (t *Table) Columns() []columnar.Column {
	cols := make([]columnar.Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Names returns the names of the top-level columns of this Table, in order
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// HasColumn returns true iff this Table has a top-level column with the given name
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the top-level column with the given name
func (t *Table) Column(name string) (columnar.Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.ColumnNotFoundError{Name: name, Message: fmt.Sprintf("Table has columns %v", t.Names())}
	}
	return t.columns[i], nil
}

// ColumnAt returns the top-level column at position i
func (t *Table) ColumnAt(i int) (columnar.Column, error) {
	if i < 0 || i >= len(t.columns) {
		return nil, errors.IndexOutOfRangeError{Index: i, Size: len(t.columns)}
	}
	return t.columns[i], nil
}

// Get returns the column at a path, descending through Group columns
func (t *Table) Get(path ColumnPath) (columnar.Column, error) {
	if len(path) == 0 {
		return nil, errors.ColumnNotFoundError{Name: "", Message: "empty column path"}
	}
	current := t
	for depth, name := range path {
		col, err := current.Column(name)
		if err != nil {
			return nil, errors.ColumnNotFoundError{Name: path.String(), Message: err.Error()}
		}
		if depth == len(path)-1 {
			return col, nil
		}
		group, ok := col.(*GroupColumn)
		if !ok {
			return nil, errors.ColumnNotFoundError{
				Name:    path.String(),
				Message: fmt.Sprintf("%s is a %s column, only Group columns have sub-columns", path[:depth+1], col.Kind()),
			}
		}
		current = group.Table()
	}
	return nil, errors.ColumnNotFoundError{Name: path.String()}
}

// ValueColumn returns the Value column at a path
func (t *Table) ValueColumn(path ColumnPath) (*ValueColumn, error) {
	col, err := t.Get(path)
	if err != nil {
		return nil, err
	}
	vc, ok := col.(*ValueColumn)
	if !ok {
		return nil, fmt.Errorf("Column %s is a %s column, not a Value column", path, col.Kind())
	}
	return vc, nil
}

// Row returns row i of this Table
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= t.rows {
		return Row{}, errors.IndexOutOfRangeError{Index: i, Size: t.rows}
	}
	return Row{table: t, index: i}, nil
}
