package aggregators

import (
	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/aggregation"
	"github.com/go-sif/columnar/types"
)

// Count returns the "count" Aggregator, which counts non-nil values of any Type.
// Counts of several columns are summed, and the total is an int64 even without columns.
func Count(p Params) columnar.Aggregator {
	return aggregation.New(
		"count",
		aggregation.AnyInput{},
		aggregation.NewReducing(reduceCount, countType),
		aggregation.NewTwoStep(aggregation.WithSecondStep(countTotal()), aggregation.WithParallelism(p.Parallelism)),
	)
}

// countTotal adds up per-column counts
func countTotal() columnar.Aggregator {
	return aggregation.New(
		"count",
		aggregation.NumberInput{},
		aggregation.NewReducing(reduceCountTotal, countType),
		aggregation.Flattening{},
	)
}

func reduceCount(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error) {
	return int64(len(values)), nil
}

func reduceCountTotal(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error) {
	var total int64
	for _, v := range values {
		n, err := types.ConvertNumber(v, types.Int64)
		if err != nil {
			return nil, err
		}
		total += n.(int64)
	}
	return total, nil
}

func countType(agg columnar.Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error) {
	return types.Of(types.Int64), nil
}
