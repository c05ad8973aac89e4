package types

import (
	"fmt"
	"math"
	"math/big"

	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/logging"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

var (
	// numberGraph unifies numbers losslessly, widening 64-bit integers to BigInt and everything to Decimal
	numberGraph = buildNumberGraph(false)
	// primitiveNumberGraph stays within fixed-width numbers, widening 64-bit integers to Float64
	primitiveNumberGraph = buildNumberGraph(true)
)

func buildNumberGraph(primitivesOnly bool) *Lattice {
	l := newLattice("")
	// integers are added before floats so that they win ties
	l.add(Int8, Int16)
	l.add(Uint8, Uint16, Int16)
	l.add(Int16, Int32, Float32)
	l.add(Uint16, Uint32, Int32, Float32)
	l.add(Int32, Int64, Float64)
	l.add(Uint32, Uint64, Int64, Float64)
	l.add(Float32, Float64)
	if primitivesOnly {
		l.add(Int64, Float64)
		l.add(Uint64, Float64)
		l.add(Float64)
	} else {
		l.add(Int64, BigInt)
		l.add(Uint64, BigInt)
		l.add(BigInt, Decimal)
		l.add(Float64, Decimal)
	}
	return l
}

// UnifyNumbers returns the smallest numeric Type to which values of all given Types can
// be converted. Fixed-width inputs unify within fixed-width Types, in which case 64-bit
// integers may widen to Float64. If any input is BigInt or Decimal, unification is lossless.
// Nothing is ignored; an abstract Number input yields Number.
func UnifyNumbers(ts ...Type) (Type, error) {
	var concrete []Type
	lossless := false
	for _, t := range ts {
		switch {
		case t == Nothing:
			continue
		case t == Number:
			return Number, nil
		case !t.IsNumber():
			return "", fmt.Errorf("Type %s is not a number", t)
		}
		lossless = lossless || t.IsBigNumber()
		concrete = append(concrete, t)
	}
	if len(concrete) == 0 {
		return Nothing, nil
	}

	graph := primitiveNumberGraph
	if lossless {
		graph = numberGraph
	}
	result := concrete[0]
	for _, t := range concrete[1:] {
		nearest, ok := graph.Nearest(result, t)
		if !ok {
			return "", fmt.Errorf("Types %s and %s have no common numeric type", result, t)
		}
		result = nearest
	}

	if result == Float64 {
		for _, t := range concrete {
			if t == Int64 || t == Uint64 {
				logging.With("types").Warn("Converting 64-bit integers to float64, loss of precision may occur", "from", t.String())
				break
			}
		}
	}
	return result, nil
}

// UnifyNumberValueTypes unifies the Types of the given ValueTypes with UnifyNumbers.
// The result is nullable iff any input is nullable.
func UnifyNumberValueTypes(vts ...ValueType) (ValueType, error) {
	ts := make([]Type, len(vts))
	nullable := false
	for i, vt := range vts {
		ts[i] = vt.Type
		nullable = nullable || vt.Nullable
	}
	t, err := UnifyNumbers(ts...)
	if err != nil {
		return ValueType{}, err
	}
	return ValueType{Type: t, Nullable: nullable}, nil
}

// IsNumberWidening returns true iff a value of Type from can be converted to Type to by ConvertNumber
func IsNumberWidening(from, to Type) bool {
	if from == to {
		return from.IsNumber()
	}
	return (numberGraph.Contains(from) && numberGraph.IsSubtype(from, to)) ||
		(primitiveNumberGraph.Contains(from) && primitiveNumberGraph.IsSubtype(from, to))
}

// ConvertNumber converts a numeric value to the given numeric Type. Only widening
// conversions along the number graphs are permitted. nil converts to nil.
func ConvertNumber(v interface{}, to Type) (interface{}, error) {
	from := TypeOf(v)
	if from == Nothing {
		return nil, nil
	}
	if !IsNumberWidening(from, to) {
		return nil, conversionError(v, to, fmt.Errorf("not a widening numeric conversion"))
	}
	switch to {
	case Int8:
		return convertTo[int8](v, to)
	case Int16:
		return convertTo[int16](v, to)
	case Int32:
		return convertTo[int32](v, to)
	case Int64:
		return convertTo[int64](v, to)
	case Uint8:
		return convertTo[uint8](v, to)
	case Uint16:
		return convertTo[uint16](v, to)
	case Uint32:
		return convertTo[uint32](v, to)
	case Uint64:
		return convertTo[uint64](v, to)
	case Float32:
		return convertTo[float32](v, to)
	case Float64:
		return convertTo[float64](v, to)
	case BigInt:
		return toBigInt(v)
	case Decimal:
		return toDecimal(v)
	}
	return nil, conversionError(v, to, nil)
}

func conversionError(v interface{}, to Type, cause error) errors.ConversionError {
	return errors.ConversionError{Value: v, SourceType: TypeOf(v).String(), TargetType: to.String(), Row: -1, Cause: cause}
}

func convertTo[T constraints.Integer | constraints.Float](v interface{}, to Type) (interface{}, error) {
	switch x := v.(type) {
	case int8:
		return T(x), nil
	case int16:
		return T(x), nil
	case int32:
		return T(x), nil
	case int64:
		return T(x), nil
	case int:
		return T(x), nil
	case uint8:
		return T(x), nil
	case uint16:
		return T(x), nil
	case uint32:
		return T(x), nil
	case uint64:
		return T(x), nil
	case uint:
		return T(x), nil
	case float32:
		return T(x), nil
	case float64:
		return T(x), nil
	}
	return nil, conversionError(v, to, nil)
}

func toBigInt(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case *big.Int:
		return x, nil
	case uint8, uint16, uint32, uint64, uint:
		u, err := convertTo[uint64](x, Uint64)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(u.(uint64)), nil
	}
	i, err := convertTo[int64](v, Int64)
	if err != nil {
		return nil, conversionError(v, BigInt, err)
	}
	return big.NewInt(i.(int64)), nil
}

func toDecimal(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case *big.Int:
		return decimal.NewFromBigInt(x, 0), nil
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return nil, conversionError(v, Decimal, fmt.Errorf("%v has no decimal representation", x))
		}
		return decimal.NewFromFloat32(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, conversionError(v, Decimal, fmt.Errorf("%v has no decimal representation", x))
		}
		return decimal.NewFromFloat(x), nil
	}
	b, err := toBigInt(v)
	if err != nil {
		return nil, conversionError(v, Decimal, err)
	}
	return decimal.NewFromBigInt(b.(*big.Int), 0), nil
}

// ToFloat64 converts any numeric value to a float64, possibly losing precision
func ToFloat64(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64(), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, true
	}
	f, err := convertTo[float64](v, Float64)
	if err != nil {
		return 0, false
	}
	return f.(float64), true
}
