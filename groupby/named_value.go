package groupby

import (
	"github.com/go-sif/columnar/frame"
	"github.com/go-sif/columnar/types"
)

// WithDefault wraps a value with the default to use when it is nil
type WithDefault struct {
	Value   interface{}
	Default interface{}
}

// WithName wraps a value with the name under which it should be yielded
type WithName struct {
	Value interface{}
	Name  string
}

// NamedValue is a sub-result of an aggregation, addressed by the column path it is
// yielded into. GuessType signals that its column's type is computed from the values
// instead of the declared ValueType.
type NamedValue struct {
	path         frame.ColumnPath
	value        interface{}
	valueType    *types.ValueType
	defaultValue interface{}
	guessType    bool
}

// New creates a NamedValue. A WithDefault value supplies the default, and a WithName value
// replaces the last segment of path; both are unwrapped.
func New(path frame.ColumnPath, value interface{}, valueType *types.ValueType, defaultValue interface{}, guessType bool) NamedValue {
	switch v := value.(type) {
	case WithDefault:
		return New(path, v.Value, valueType, v.Default, guessType)
	case *WithDefault:
		return New(path, v.Value, valueType, v.Default, guessType)
	case WithName:
		return New(replaceLast(path, v.Name), v.Value, valueType, defaultValue, guessType)
	case *WithName:
		return New(replaceLast(path, v.Name), v.Value, valueType, defaultValue, guessType)
	}
	stored := make(frame.ColumnPath, len(path))
	copy(stored, path)
	return NamedValue{path: stored, value: types.Normalize(value), valueType: valueType, defaultValue: defaultValue, guessType: guessType}
}

func replaceLast(path frame.ColumnPath, name string) frame.ColumnPath {
	if len(path) == 0 {
		return frame.Path(name)
	}
	replaced := make(frame.ColumnPath, len(path))
	copy(replaced, path)
	replaced[len(replaced)-1] = name
	return replaced
}

// Path returns the column path of this NamedValue
func (nv NamedValue) Path() frame.ColumnPath {
	return nv.path
}

// Name returns the last segment of the column path of this NamedValue
func (nv NamedValue) Name() string {
	return nv.path.Name()
}

// Value returns the raw value, which may be nil
func (nv NamedValue) Value() interface{} {
	return nv.value
}

// Type returns the declared ValueType, if there is one
func (nv NamedValue) Type() (types.ValueType, bool) {
	if nv.valueType == nil {
		return types.ValueType{}, false
	}
	return *nv.valueType, true
}

// Default returns the default value, which may be nil
func (nv NamedValue) Default() interface{} {
	return nv.defaultValue
}

// GuessType returns true iff the column type should be computed from the values
func (nv NamedValue) GuessType() bool {
	return nv.guessType || nv.valueType == nil
}

// WithDefault returns a copy of this NamedValue with a different default
func (nv NamedValue) WithDefault(defaultValue interface{}) NamedValue {
	nv.defaultValue = defaultValue
	return nv
}

// Resolve returns the value, or the default if the value is nil
func (nv NamedValue) Resolve() interface{} {
	if nv.value == nil {
		return types.Normalize(nv.defaultValue)
	}
	return nv.value
}
