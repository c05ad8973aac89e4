package errors

import (
	"fmt"
	"strings"
)

// ColumnSize pairs a column name with its number of rows
type ColumnSize struct {
	Name string
	Size int
}

// UnequalColumnSizesError occurs when a Table is built from columns of differing lengths
type UnequalColumnSizesError struct {
	Expected int
	Sizes    []ColumnSize
}

// Error returns a textual representation of this UnequalColumnSizesError
func (e UnequalColumnSizesError) Error() string {
	sizes := make([]string, len(e.Sizes))
	for i, s := range e.Sizes {
		sizes[i] = fmt.Sprintf("%s=%d", s.Name, s.Size)
	}
	return fmt.Sprintf("Columns have unequal sizes, expected %d rows: %s", e.Expected, strings.Join(sizes, ", "))
}

// DuplicateColumnNamesError occurs when a Table is built from columns which share a name
type DuplicateColumnNamesError struct {
	Names      []string
	Duplicates []string
}

// Error returns a textual representation of this DuplicateColumnNamesError
func (e DuplicateColumnNamesError) Error() string {
	return fmt.Sprintf("Duplicate column names %v in columns %v", e.Duplicates, e.Names)
}

// ColumnNotFoundError occurs when a column cannot be found by name or path
type ColumnNotFoundError struct {
	Name    string
	Message string
}

// Error returns a textual representation of this ColumnNotFoundError
func (e ColumnNotFoundError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Column %s not found", e.Name)
	}
	return fmt.Sprintf("Column %s not found: %s", e.Name, e.Message)
}

// ConversionError occurs when a value cannot be coerced to a target type.
// Row is -1 when the value was not read from a particular row.
type ConversionError struct {
	Value      interface{}
	SourceType string
	TargetType string
	Path       []string
	Row        int
	Cause      error
}

// Error returns a textual representation of this ConversionError
func (e ConversionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cannot convert %v of type %s to %s", e.Value, e.SourceType, e.TargetType)
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " in column %s", strings.Join(e.Path, "."))
	}
	if e.Row >= 0 {
		fmt.Fprintf(&b, " at row %d", e.Row)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %s", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause of this ConversionError, if any
func (e ConversionError) Unwrap() error {
	return e.Cause
}

// IndexOutOfRangeError occurs when a row index lies outside of a column or Table
type IndexOutOfRangeError struct {
	Index int
	Size  int
}

// Error returns a textual representation of this IndexOutOfRangeError
func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("Index %d out of range for size %d", e.Index, e.Size)
}

// TypeContractError signals a handler predicting a return type it is not allowed to produce.
// It is raised with panic, never returned.
type TypeContractError struct {
	Aggregator string
	Input      string
	Returned   string
}

// Error returns a textual representation of this TypeContractError
func (e TypeContractError) Error() string {
	return fmt.Sprintf("Aggregator %s returned type %s for input type %s, expected the same type up to nullability", e.Aggregator, e.Returned, e.Input)
}

// UnsupportedTypeError occurs when an Aggregator cannot operate on values of a type
type UnsupportedTypeError struct {
	Aggregator string
	Type       string
}

// Error returns a textual representation of this UnsupportedTypeError
func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Aggregator %s does not support values of type %s", e.Aggregator, e.Type)
}

// FrameSchemaMismatchError occurs when a Frame column element is incompatible with the declared element Schema
type FrameSchemaMismatchError struct {
	Column string
	Row    int
	Result string
}

// Error returns a textual representation of this FrameSchemaMismatchError
func (e FrameSchemaMismatchError) Error() string {
	return fmt.Sprintf("Frame in column %s at row %d does not satisfy the declared schema (comparison: %s)", e.Column, e.Row, e.Result)
}

// NullFrameError occurs when a Frame column element is nil and null frames are disallowed
type NullFrameError struct {
	Column string
	Row    int
}

// Error returns a textual representation of this NullFrameError
func (e NullFrameError) Error() string {
	return fmt.Sprintf("Frame in column %s at row %d is nil", e.Column, e.Row)
}
