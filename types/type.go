// Package types describes the element types of columns: nominal Types
// arranged in a lattice, ValueTypes which add nullability, and the numeric
// tower used to unify mixed numeric values.
package types

import (
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// Type is a nominal element type, identified by its name
type Type string

// Built-in Types
const (
	Nothing    Type = "nothing" // Nothing is the type of nil, a subtype of every Type
	Any        Type = "any"
	Comparable Type = "comparable"
	Number     Type = "number"

	Bool     Type = "bool"
	String   Type = "string"
	Time     Type = "time"
	Duration Type = "duration"

	Int8    Type = "int8"
	Int16   Type = "int16"
	Int32   Type = "int32"
	Int64   Type = "int64"
	Uint8   Type = "uint8"
	Uint16  Type = "uint16"
	Uint32  Type = "uint32"
	Uint64  Type = "uint64"
	Float32 Type = "float32"
	Float64 Type = "float64"
	BigInt  Type = "bigint"
	Decimal Type = "decimal"
)

// String returns the name of this Type
func (t Type) String() string {
	return string(t)
}

// IsAbstract returns true iff no value has exactly this Type
func (t Type) IsAbstract() bool {
	return t == Any || t == Comparable || t == Number
}

// IsNumber returns true iff t is a concrete numeric Type
func (t Type) IsNumber() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64, BigInt, Decimal:
		return true
	}
	return false
}

// IsPrimitiveNumber returns true iff t is a fixed-width numeric Type
func (t Type) IsPrimitiveNumber() bool {
	return t.IsNumber() && t != BigInt && t != Decimal
}

// IsBigNumber returns true iff t is an arbitrary-precision numeric Type
func (t Type) IsBigNumber() bool {
	return t == BigInt || t == Decimal
}

// CanBeNaN returns true iff values of t may be NaN
func (t Type) CanBeNaN() bool {
	return t == Float32 || t == Float64
}

// Typed is implemented by values which report their own Type.
// The Type must have been registered with Register.
type Typed interface {
	ColumnType() Type
}

// TypeOf returns the runtime Type of a value. nil has Type Nothing, and values of
// unknown Go types have Type Any.
func TypeOf(v interface{}) Type {
	switch x := v.(type) {
	case nil:
		return Nothing
	case bool:
		return Bool
	case string:
		return String
	case time.Time:
		return Time
	case time.Duration:
		return Duration
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64, int:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64, uint:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case *big.Int:
		if x == nil {
			return Nothing
		}
		return BigInt
	case decimal.Decimal:
		return Decimal
	case Typed:
		return x.ColumnType()
	default:
		return Any
	}
}

// Normalize maps platform-dependent integers to their fixed-width equivalents,
// so that the Go type of a stored value always corresponds to its Type
func Normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case int:
		return int64(x)
	case uint:
		return uint64(x)
	case *big.Int:
		if x == nil {
			return nil
		}
	}
	return v
}

// IsNaN returns true iff v is a floating point NaN
func IsNaN(v interface{}) bool {
	switch x := v.(type) {
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}
