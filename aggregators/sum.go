package aggregators

import (
	"math/big"

	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/aggregation"
	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Sum returns the "sum" Aggregator. The sum keeps the Type of its input, except that
// 8- and 16-bit integers are summed as 32-bit integers. An empty input sums to zero.
func Sum(p Params) columnar.Aggregator {
	return aggregation.New(
		"sum",
		aggregation.NumberInput{},
		aggregation.NewReducing(reduceSum(p.SkipNaN), sumType),
		aggregation.NewTwoStep(aggregation.WithParallelism(p.Parallelism)),
	)
}

// sumResultType maps the Type of summed values onto the Type of their sum
func sumResultType(t types.Type) types.Type {
	switch t {
	case types.Nothing, types.Int8, types.Int16:
		return types.Int32
	case types.Uint8, types.Uint16:
		return types.Uint32
	}
	return t
}

func sumType(agg columnar.Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error) {
	return types.Of(sumResultType(valueType.Type)), nil
}

func reduceSum(skipNaN bool) aggregation.ReduceFunc {
	return func(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error) {
		target := sumResultType(valueType.Type)
		switch target {
		case types.Int32:
			return sumAs[int32](values, target, skipNaN)
		case types.Int64:
			return sumAs[int64](values, target, skipNaN)
		case types.Uint32:
			return sumAs[uint32](values, target, skipNaN)
		case types.Uint64:
			return sumAs[uint64](values, target, skipNaN)
		case types.Float32:
			return sumAs[float32](values, target, skipNaN)
		case types.Float64:
			return sumAs[float64](values, target, skipNaN)
		case types.BigInt:
			total := new(big.Int)
			for _, v := range values {
				total.Add(total, v.(*big.Int))
			}
			return total, nil
		case types.Decimal:
			total := decimal.Zero
			for _, v := range values {
				total = total.Add(v.(decimal.Decimal))
			}
			return total, nil
		}
		return nil, errors.UnsupportedTypeError{Aggregator: agg.Name(), Type: valueType.Type.String()}
	}
}

func sumAs[T constraints.Integer | constraints.Float](values []interface{}, target types.Type, skipNaN bool) (interface{}, error) {
	var total T
	for _, v := range values {
		if skipNaN && types.IsNaN(v) {
			continue
		}
		converted, err := types.ConvertNumber(v, target)
		if err != nil {
			return nil, err
		}
		total += converted.(T)
	}
	return total, nil
}
