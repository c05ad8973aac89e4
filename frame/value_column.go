package frame

import (
	"github.com/go-sif/columnar"
	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/types"
)

// ValueColumn is a flat column of scalar values sharing a ValueType. nil marks an absent value.
type ValueColumn struct {
	name      string
	values    []interface{}
	valueType types.ValueType
}

// NewValueColumn is a factory for ValueColumns. Every value must be an instance of
// valueType's Type, and nil values require a nullable ValueType.
func NewValueColumn(name string, values []interface{}, valueType types.ValueType) (*ValueColumn, error) {
	stored := make([]interface{}, len(values))
	for i, v := range values {
		v = types.Normalize(v)
		t := types.TypeOf(v)
		switch {
		case t == types.Nothing && !valueType.Nullable:
			return nil, errors.ConversionError{
				Value:      v,
				SourceType: types.Nothing.String(),
				TargetType: valueType.String(),
				Path:       []string{name},
				Row:        i,
			}
		case !types.IsSubtype(t, valueType.Type):
			return nil, errors.ConversionError{
				Value:      v,
				SourceType: t.String(),
				TargetType: valueType.String(),
				Path:       []string{name},
				Row:        i,
			}
		}
		stored[i] = v
	}
	return &ValueColumn{name: name, values: stored, valueType: valueType}, nil
}

// InferValueColumn is a factory for ValueColumns which computes the ValueType from the values
func InferValueColumn(name string, values []interface{}) *ValueColumn {
	stored := make([]interface{}, len(values))
	for i, v := range values {
		stored[i] = types.Normalize(v)
	}
	return &ValueColumn{name: name, values: stored, valueType: types.ScanValueType(stored)}
}

// Name returns the name of this ValueColumn
func (c *ValueColumn) Name() string {
	return c.name
}

// Kind returns columnar.ValueKind
func (c *ValueColumn) Kind() columnar.ColumnKind {
	return columnar.ValueKind
}

// Size returns the number of values in this ValueColumn
func (c *ValueColumn) Size() int {
	return len(c.values)
}

// Get returns the value at row i
func (c *ValueColumn) Get(i int) (interface{}, error) {
	if i < 0 || i >= len(c.values) {
		return nil, errors.IndexOutOfRangeError{Index: i, Size: len(c.values)}
	}
	return c.values[i], nil
}

// Values returns the values of this ValueColumn. The slice must not be modified.
func (c *ValueColumn) Values() []interface{} {
	return c.values
}

// ValueType returns the declared ValueType of this ValueColumn
func (c *ValueColumn) ValueType() types.ValueType {
	return c.valueType
}

// HasNulls returns true iff any value of this ValueColumn is absent
func (c *ValueColumn) HasNulls() bool {
	for _, v := range c.values {
		if v == nil {
			return true
		}
	}
	return false
}

// Rename returns a copy of this ValueColumn with a different name
func (c *ValueColumn) Rename(name string) columnar.Column {
	return &ValueColumn{name: name, values: c.values, valueType: c.valueType}
}
