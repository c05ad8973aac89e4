package frame

import (
	"fmt"
	"strings"
	"time"

	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/types"
)

// Row is a view of a single row of a Table. Values are addressed by dotted column paths.
type Row struct {
	table *Table
	index int
}

// Index returns the position of this Row within its Table
func (r Row) Index() int {
	return r.index
}

// Table returns the Table this Row belongs to
func (r Row) Table() *Table {
	return r.table
}

// Get returns the value at a column path. Group columns yield Rows, Frame columns
// yield *Tables, and absent values are nil.
func (r Row) Get(path string) (interface{}, error) {
	col, err := r.table.Get(ParsePath(path))
	if err != nil {
		return nil, err
	}
	return col.Get(r.index)
}

// IsNil returns true iff the value at a column path is absent. If an error occurs, this function will return false.
func (r Row) IsNil(path string) bool {
	v, err := r.Get(path)
	return err == nil && v == nil
}

func (r Row) conversionError(path string, v interface{}, target types.Type, cause error) error {
	return errors.ConversionError{
		Value:      v,
		SourceType: types.TypeOf(v).String(),
		TargetType: target.String(),
		Path:       ParsePath(path),
		Row:        r.index,
		Cause:      cause,
	}
}

// getNumber reads a non-nil number at a path, widening it to target
func (r Row) getNumber(path string, target types.Type) (interface{}, error) {
	v, err := r.Get(path)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, r.conversionError(path, v, target, fmt.Errorf("value is nil"))
	}
	converted, err := types.ConvertNumber(v, target)
	if err != nil {
		return nil, r.conversionError(path, v, target, err)
	}
	return converted, nil
}

// GetInt64 returns the value at a column path as an int64. Narrower integers are widened.
func (r Row) GetInt64(path string) (int64, error) {
	v, err := r.getNumber(path, types.Int64)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// GetFloat64 returns the value at a column path as a float64. Narrower numbers are widened.
func (r Row) GetFloat64(path string) (float64, error) {
	v, err := r.getNumber(path, types.Float64)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// GetString returns the string value at a column path
func (r Row) GetString(path string) (string, error) {
	v, err := r.Get(path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", r.conversionError(path, v, types.String, nil)
	}
	return s, nil
}

// GetBool returns the bool value at a column path
func (r Row) GetBool(path string) (bool, error) {
	v, err := r.Get(path)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, r.conversionError(path, v, types.Bool, nil)
	}
	return b, nil
}

// GetTime returns the time.Time value at a column path
func (r Row) GetTime(path string) (time.Time, error) {
	v, err := r.Get(path)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, r.conversionError(path, v, types.Time, nil)
	}
	return t, nil
}

// GetTable returns the frame at a Frame column path. Absent frames are nil.
func (r Row) GetTable(path string) (*Table, error) {
	v, err := r.Get(path)
	if err != nil || v == nil {
		return nil, err
	}
	t, ok := v.(*Table)
	if !ok {
		return nil, fmt.Errorf("Column %s does not contain frames", path)
	}
	return t, nil
}

// String returns a string representation of this Row
func (r Row) String() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	for i, c := range r.table.columns {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		v, _ := c.Get(r.index)
		switch x := v.(type) {
		case nil:
			fmt.Fprintf(&res, "%q: nil", c.Name())
		case *Table:
			fmt.Fprintf(&res, "%q: [%d x %d]", c.Name(), x.RowCount(), x.ColumnCount())
		default:
			fmt.Fprintf(&res, "%q: %v", c.Name(), x)
		}
	}
	fmt.Fprint(&res, "}")
	return res.String()
}
