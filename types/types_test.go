package types

import (
	stderrors "errors"
	"math"
	"math/big"
	"testing"
	"time"

	errors "github.com/go-sif/columnar/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type celsius float64

func (c celsius) ColumnType() Type { return "celsius" }

func (c celsius) Compare(other interface{}) int {
	o := other.(celsius)
	switch {
	case c < o:
		return -1
	case c > o:
		return 1
	}
	return 0
}

func init() {
	Register("celsius", Number)
}

func TestTypeOf(t *testing.T) {
	require.Equal(t, Nothing, TypeOf(nil))
	require.Equal(t, Int64, TypeOf(5))
	require.Equal(t, Int64, TypeOf(int64(5)))
	require.Equal(t, Uint64, TypeOf(uint(5)))
	require.Equal(t, Int8, TypeOf(int8(5)))
	require.Equal(t, Float32, TypeOf(float32(1)))
	require.Equal(t, String, TypeOf("a"))
	require.Equal(t, Duration, TypeOf(time.Second))
	require.Equal(t, Time, TypeOf(time.Now()))
	require.Equal(t, BigInt, TypeOf(big.NewInt(1)))
	require.Equal(t, Decimal, TypeOf(decimal.NewFromInt(1)))
	require.Equal(t, Type("celsius"), TypeOf(celsius(3)))
	require.Equal(t, Any, TypeOf(struct{}{}))

	require.Equal(t, int64(3), Normalize(3))
	require.Equal(t, uint64(3), Normalize(uint(3)))
	require.Equal(t, "x", Normalize("x"))
}

func TestCommonType(t *testing.T) {
	require.Equal(t, Nothing, CommonType())
	require.Equal(t, Int32, CommonType(Int32, Nothing, Int32))
	require.Equal(t, Number, CommonType(Int32, Float64))
	require.Equal(t, Comparable, CommonType(Int64, String))
	require.Equal(t, Comparable, CommonType(Time, Bool, Decimal))
	require.Equal(t, Any, CommonType(String, Type("unregistered")))
	require.Equal(t, Number, CommonType(Type("celsius"), Float64))
	require.Equal(t, Type("celsius"), CommonType(Type("celsius"), Nothing))
}

func TestIsSubtype(t *testing.T) {
	require.True(t, IsSubtype(Int8, Number))
	require.True(t, IsSubtype(Int8, Comparable))
	require.True(t, IsSubtype(Nothing, String))
	require.True(t, IsSubtype(String, Any))
	require.False(t, IsSubtype(String, Number))
	require.False(t, IsSubtype(Number, Int8))
	require.True(t, IsSubtype(Type("unregistered"), Any))
}

func TestRegisterAfterUsePanics(t *testing.T) {
	Hierarchy()
	require.Panics(t, func() { Register("kelvin", Number) })
}

func TestScanValueType(t *testing.T) {
	require.Equal(t, NullableOf(Number), ScanValueType([]interface{}{int64(1), nil, 2.0}))
	require.Equal(t, Of(Int64), ScanValueType([]interface{}{int64(1), 2}))
	require.Equal(t, NullableOf(Nothing), ScanValueType([]interface{}{nil, nil}))
	require.Equal(t, Of(Nothing), ScanValueType(nil))
	require.Equal(t, Of(Comparable), ScanValueType([]interface{}{"a", 1.5}))
}

func TestValueTypeAssignability(t *testing.T) {
	require.True(t, Of(Int32).IsAssignableTo(NullableOf(Int32)))
	require.False(t, NullableOf(Int32).IsAssignableTo(Of(Int32)))
	require.True(t, Of(Int32).IsAssignableTo(Of(Number)))
	require.False(t, Of(String).IsAssignableTo(Of(Number)))
	require.Equal(t, "int32?", NullableOf(Int32).String())
	require.Equal(t, "string", Of(String).String())

	require.True(t, Conforms(nil, NullableOf(Float64)))
	require.False(t, Conforms(nil, Of(Float64)))
	require.True(t, Conforms(1.0, Of(Float64)))
	require.False(t, Conforms(float32(1), Of(Float64)))
	require.Equal(t, NullableOf(Number), CommonValueType(Of(Int8), NullableOf(Float32)))
}

func TestUnifyNumbers(t *testing.T) {
	cases := []struct {
		in  []Type
		out Type
	}{
		{[]Type{Int32}, Int32},
		{[]Type{Int32, Float64}, Float64},
		{[]Type{Int8, Uint8}, Int16},
		{[]Type{Int16, Uint16}, Int32},
		{[]Type{Int32, Uint32}, Int64},
		{[]Type{Int32, Float32}, Float64},
		{[]Type{Int64, Float32}, Float64},
		{[]Type{Int64, Uint64}, Float64},
		{[]Type{Int64, Decimal}, Decimal},
		{[]Type{Uint64, Int64, BigInt}, BigInt},
		{[]Type{Float64, BigInt}, Decimal},
		{[]Type{Nothing, Uint8}, Uint8},
		{[]Type{Nothing}, Nothing},
		{nil, Nothing},
		{[]Type{Number, Int8}, Number},
	}
	for _, c := range cases {
		out, err := UnifyNumbers(c.in...)
		require.Nil(t, err)
		require.Equal(t, c.out, out, "unifying %v", c.in)
	}

	_, err := UnifyNumbers(Int32, String)
	require.NotNil(t, err)

	vt, err := UnifyNumberValueTypes(Of(Int32), NullableOf(Float64))
	require.Nil(t, err)
	require.Equal(t, NullableOf(Float64), vt)
}

func TestConvertNumber(t *testing.T) {
	v, err := ConvertNumber(int32(3), Float64)
	require.Nil(t, err)
	require.Equal(t, 3.0, v)

	v, err = ConvertNumber(3, Int64)
	require.Nil(t, err)
	require.Equal(t, int64(3), v)

	v, err = ConvertNumber(uint8(200), Int16)
	require.Nil(t, err)
	require.Equal(t, int16(200), v)

	v, err = ConvertNumber(uint64(math.MaxUint64), BigInt)
	require.Nil(t, err)
	require.Equal(t, "18446744073709551615", v.(*big.Int).String())

	v, err = ConvertNumber(int64(-7), Decimal)
	require.Nil(t, err)
	require.True(t, decimal.NewFromInt(-7).Equal(v.(decimal.Decimal)))

	v, err = ConvertNumber(nil, Float64)
	require.Nil(t, err)
	require.Nil(t, v)

	_, err = ConvertNumber(1.5, Int32)
	var conv errors.ConversionError
	require.True(t, stderrors.As(err, &conv))
	require.Equal(t, "float64", conv.SourceType)
	require.Equal(t, "int32", conv.TargetType)

	_, err = ConvertNumber(math.NaN(), Decimal)
	require.NotNil(t, err)

	_, err = ConvertNumber("1", Int64)
	require.NotNil(t, err)
}

func TestToFloat64(t *testing.T) {
	f, ok := ToFloat64(int16(4))
	require.True(t, ok)
	require.Equal(t, 4.0, f)
	f, ok = ToFloat64(decimal.RequireFromString("2.5"))
	require.True(t, ok)
	require.Equal(t, 2.5, f)
	f, ok = ToFloat64(big.NewInt(10))
	require.True(t, ok)
	require.Equal(t, 10.0, f)
	_, ok = ToFloat64("x")
	require.False(t, ok)
}

func TestCompare(t *testing.T) {
	c, err := Compare(int64(1), int64(2))
	require.Nil(t, err)
	require.Equal(t, -1, c)

	c, err = Compare(5, int64(5))
	require.Nil(t, err)
	require.Equal(t, 0, c)

	c, err = Compare("b", "a")
	require.Nil(t, err)
	require.Equal(t, 1, c)

	c, err = Compare(false, true)
	require.Nil(t, err)
	require.Equal(t, -1, c)

	now := time.Now()
	c, err = Compare(now.Add(time.Hour), now)
	require.Nil(t, err)
	require.Equal(t, 1, c)

	c, err = Compare(decimal.RequireFromString("1.10"), decimal.RequireFromString("1.1"))
	require.Nil(t, err)
	require.Equal(t, 0, c)

	c, err = Compare(celsius(-3), celsius(4))
	require.Nil(t, err)
	require.Equal(t, -1, c)

	_, err = Compare(int64(1), 1.0)
	require.NotNil(t, err)
	_, err = Compare(struct{}{}, struct{}{})
	require.NotNil(t, err)

	require.True(t, IsIntraComparable(Int8))
	require.True(t, IsIntraComparable(String))
	require.False(t, IsIntraComparable(Number))
	require.False(t, IsIntraComparable(Any))
}

func TestLatticeTieBreak(t *testing.T) {
	l := newLattice("")
	l.add("left", "top")
	l.add("right", "top")
	l.add("a", "left", "right")
	l.add("b", "left", "right")

	nearest, ok := l.Nearest("a", "b")
	require.True(t, ok)
	require.Equal(t, Type("left"), nearest)

	nearest, ok = l.Nearest("a", "top")
	require.True(t, ok)
	require.Equal(t, Type("top"), nearest)

	_, ok = l.Nearest("a", "elsewhere")
	require.False(t, ok)
}
