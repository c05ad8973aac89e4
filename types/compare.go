package types

import (
	"cmp"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// Ordered is implemented by user-defined values which can be compared with other values of their Type
type Ordered interface {
	Compare(other interface{}) int
}

// Compare orders two non-nil values of the same Type, returning a negative number,
// zero or a positive number when a is less than, equal to or greater than b.
// NaN is ordered before every other float.
func Compare(a, b interface{}) (int, error) {
	a, b = Normalize(a), Normalize(b)
	switch x := a.(type) {
	case int8:
		return compareAs(x, a, b)
	case int16:
		return compareAs(x, a, b)
	case int32:
		return compareAs(x, a, b)
	case int64:
		return compareAs(x, a, b)
	case uint8:
		return compareAs(x, a, b)
	case uint16:
		return compareAs(x, a, b)
	case uint32:
		return compareAs(x, a, b)
	case uint64:
		return compareAs(x, a, b)
	case float32:
		return compareAs(x, a, b)
	case float64:
		return compareAs(x, a, b)
	case string:
		return compareAs(x, a, b)
	case time.Duration:
		return compareAs(x, a, b)
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, incomparable(a, b)
		}
		switch {
		case x == y:
			return 0, nil
		case !x:
			return -1, nil
		default:
			return 1, nil
		}
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, incomparable(a, b)
		}
		return x.Compare(y), nil
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		if !ok {
			return 0, incomparable(a, b)
		}
		return x.Cmp(y), nil
	case *big.Int:
		y, ok := b.(*big.Int)
		if !ok || x == nil || y == nil {
			return 0, incomparable(a, b)
		}
		return x.Cmp(y), nil
	case Ordered:
		if TypeOf(a) != TypeOf(b) {
			return 0, incomparable(a, b)
		}
		return x.Compare(b), nil
	}
	return 0, incomparable(a, b)
}

func compareAs[T cmp.Ordered](x T, a, b interface{}) (int, error) {
	y, ok := b.(T)
	if !ok {
		return 0, incomparable(a, b)
	}
	return cmp.Compare(x, y), nil
}

func incomparable(a, b interface{}) error {
	return fmt.Errorf("Cannot compare %v of type %s with %v of type %s", a, TypeOf(a), b, TypeOf(b))
}

// IsIntraComparable returns true iff values of t can be ordered among themselves
func IsIntraComparable(t Type) bool {
	return t != Nothing && !t.IsAbstract() && IsSubtype(t, Comparable)
}
