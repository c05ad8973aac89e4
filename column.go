package columnar

import "github.com/go-sif/columnar/types"

// ColumnKind enumerates the three kinds of Column
type ColumnKind int

const (
	// ValueKind columns hold a flat sequence of scalar values
	ValueKind ColumnKind = iota
	// GroupKind columns hold an embedded Table sharing the row index of their owner
	GroupKind
	// FrameKind columns hold one independent Table per row
	FrameKind
)

// String returns the name of this ColumnKind
func (k ColumnKind) String() string {
	switch k {
	case ValueKind:
		return "Value"
	case GroupKind:
		return "Group"
	case FrameKind:
		return "Frame"
	default:
		return "Unknown"
	}
}

// Column is a named, immutable sequence of Size() rows of one of three kinds.
// The implementations in package frame are the only ones; consumers switch on
// Kind() or on those concrete types.
type Column interface {
	Name() string                   // Name returns the name of this Column, unique within its Table
	Kind() ColumnKind               // Kind returns whether this is a Value, Group or Frame Column
	Size() int                      // Size returns the number of rows in this Column
	Get(i int) (interface{}, error) // Get returns the value at row i
	Rename(name string) Column      // Rename returns a copy of this Column with a different name
}

// ValueSource is the raw column storage an Aggregator consumes
type ValueSource interface {
	Name() string               // Name returns the name of this column
	Values() []interface{}      // Values returns the stored values, nil marking absent ones. It must not be modified.
	ValueType() types.ValueType // ValueType returns the declared ValueType of the values
}
