package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnequalColumnSizesMessage(t *testing.T) {
	err := UnequalColumnSizesError{Expected: 3, Sizes: []ColumnSize{{"age", 3}, {"name", 2}}}
	require.Equal(t, "Columns have unequal sizes, expected 3 rows: age=3, name=2", err.Error())
}

func TestConversionErrorMessage(t *testing.T) {
	err := ConversionError{Value: "abc", SourceType: "string", TargetType: "int64", Path: []string{"person", "age"}, Row: 4}
	require.Equal(t, "Cannot convert abc of type string to int64 in column person.age at row 4", err.Error())

	err = ConversionError{Value: 1, SourceType: "int64", TargetType: "string", Row: -1}
	require.Equal(t, "Cannot convert 1 of type int64 to string", err.Error())
}

func TestConversionErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("overflow")
	var err error = ConversionError{Value: 1, SourceType: "int64", TargetType: "int8", Row: -1, Cause: cause}
	require.True(t, stderrors.Is(err, cause))

	var conv ConversionError
	require.True(t, stderrors.As(fmt.Errorf("wrapped: %w", err), &conv))
	require.Equal(t, "int8", conv.TargetType)
}

func TestColumnNotFoundMessage(t *testing.T) {
	require.Equal(t, "Column x not found", ColumnNotFoundError{Name: "x"}.Error())
	require.Equal(t, "Column x not found: no such group", ColumnNotFoundError{Name: "x", Message: "no such group"}.Error())
}
