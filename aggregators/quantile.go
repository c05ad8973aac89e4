package aggregators

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/aggregation"
	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/logging"
	"github.com/go-sif/columnar/types"
)

// Method is a quantile estimation method, named after its Hyndman and Fan definition
type Method int

const (
	// R3 selects the observation nearest to n*p, preferring the even one on ties
	R3 Method = iota
	// R7 interpolates linearly between the observations around (n-1)*p + 1
	R7
	// R8 interpolates linearly between the observations around (n+1/3)*p + 1/3
	R8
)

// String returns the name of this Method
func (m Method) String() string {
	switch m {
	case R3:
		return "R3"
	case R7:
		return "R7"
	case R8:
		return "R8"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// IsLinear returns true iff this Method interpolates between observations
func (m Method) IsLinear() bool {
	return m == R7 || m == R8
}

// oneBasedIndex returns the estimated one-based position of the p-quantile among count sorted values
func (m Method) oneBasedIndex(p float64, count int) float64 {
	n := float64(count)
	switch m {
	case R3:
		return math.RoundToEven(n * p)
	case R7:
		return (n-1)*p + 1
	default:
		return (n+1.0/3.0)*p + 1.0/3.0
	}
}

func clampIndex(i, size int) int {
	return max(0, min(i, size-1))
}

// linearQuantile interpolates the p-quantile of sorted values
func linearQuantile(sorted []float64, p float64, method Method) float64 {
	h := method.oneBasedIndex(p, len(sorted))
	lo := clampIndex(int(math.Floor(h))-1, len(sorted))
	hi := clampIndex(int(math.Ceil(h))-1, len(sorted))
	frac := h - math.Floor(h)
	if lo == hi || frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func checkQuantile(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("Quantile must be in range [0, 1], got %v", p)
	}
	return nil
}

// Quantile returns an Aggregator named name, which interpolates the p-quantile of numbers
// with a linear Method. The result is a float64, nil only for inputs without non-nil values.
func Quantile(name string, q float64, method Method, p Params) (columnar.Aggregator, error) {
	if err := checkQuantile(q); err != nil {
		return nil, err
	}
	if !method.IsLinear() {
		return nil, fmt.Errorf("Quantile estimation method %s does not interpolate, use QuantileValue", method)
	}
	return aggregation.New(
		name,
		aggregation.NumberInput{},
		aggregation.NewReducing(reduceQuantile(q, method, p.SkipNaN), quantileType),
		aggregation.Flattening{},
	), nil
}

func quantileType(agg columnar.Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error) {
	if valueType.Type.IsBigNumber() {
		return types.ValueType{}, errors.UnsupportedTypeError{Aggregator: agg.Name(), Type: valueType.Type.String()}
	}
	return types.ValueType{Type: types.Float64, Nullable: emptyInput}, nil
}

func reduceQuantile(q float64, method Method, skipNaN bool) aggregation.ReduceFunc {
	return func(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error) {
		switch {
		case valueType.Type.IsBigNumber():
			return nil, errors.UnsupportedTypeError{Aggregator: agg.Name(), Type: valueType.Type.String()}
		case len(values) == 0:
			return nil, nil
		case valueType.Type == types.Int64 || valueType.Type == types.Uint64:
			logging.With("aggregators").Warn("Converting 64-bit integers to float64 to calculate a quantile, loss of precision may occur", "aggregator", agg.Name())
		}

		floats := make([]float64, 0, len(values))
		for _, v := range values {
			f, _ := types.ToFloat64(v)
			if math.IsNaN(f) {
				if !skipNaN {
					return math.NaN(), nil
				}
				continue
			}
			floats = append(floats, f)
		}
		if len(floats) == 0 {
			return math.NaN(), nil
		}
		slices.Sort(floats)
		return linearQuantile(floats, q, method), nil
	}
}

type indexedValue struct {
	index int
	value interface{}
}

// QuantileValue returns a selecting Aggregator named name, which picks the p-quantile of
// intra-comparable values with R3. The result is nil only for inputs without non-nil values.
func QuantileValue(name string, q float64, p Params) (columnar.Aggregator, error) {
	if err := checkQuantile(q); err != nil {
		return nil, err
	}
	return aggregation.New(
		name,
		aggregation.ComparableOrNumberInput{},
		aggregation.NewSelectingWithReturnType(selectQuantile(q, p.SkipNaN), quantileValueType),
		aggregation.Flattening{},
	), nil
}

func isOrderable(t types.Type) bool {
	return t == types.Nothing || t.IsAbstract() || types.IsIntraComparable(t)
}

func quantileValueType(agg columnar.Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error) {
	if !isOrderable(valueType.Type) {
		return types.ValueType{}, errors.UnsupportedTypeError{Aggregator: agg.Name(), Type: valueType.Type.String()}
	}
	return valueType.WithNullable(emptyInput), nil
}

func selectQuantile(q float64, skipNaN bool) aggregation.SelectFunc {
	return func(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (int, error) {
		if !isOrderable(valueType.Type) {
			return -1, errors.UnsupportedTypeError{Aggregator: agg.Name(), Type: valueType.Type.String()}
		}
		indexed := make([]indexedValue, 0, len(values))
		firstNaN := -1
		for i, v := range values {
			if v == nil {
				continue
			}
			if types.IsNaN(v) {
				if !skipNaN {
					return i, nil
				}
				if firstNaN < 0 {
					firstNaN = i
				}
				continue
			}
			indexed = append(indexed, indexedValue{index: i, value: v})
		}
		if len(indexed) == 0 {
			return firstNaN, nil
		}

		var compareErr error
		slices.SortStableFunc(indexed, func(a, b indexedValue) int {
			c, err := types.Compare(a.value, b.value)
			if err != nil && compareErr == nil {
				compareErr = err
			}
			return c
		})
		if compareErr != nil {
			return -1, compareErr
		}
		h := int(R3.oneBasedIndex(q, len(indexed)))
		return indexed[clampIndex(h-1, len(indexed))].index, nil
	}
}
