package aggregators

import (
	"math"

	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/aggregation"
	"github.com/go-sif/columnar/types"
)

// Mean returns the "mean" Aggregator. The mean of an empty input is NaN.
func Mean(p Params) columnar.Aggregator {
	return aggregation.New(
		"mean",
		aggregation.NumberInput{},
		aggregation.NewReducing(reduceMean(p.SkipNaN), float64Type),
		aggregation.Flattening{},
	)
}

func float64Type(agg columnar.Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error) {
	return types.Of(types.Float64), nil
}

// toFloats converts numeric values to float64, dropping NaN values when skipNaN is set
func toFloats(values []interface{}, skipNaN bool) []float64 {
	floats := make([]float64, 0, len(values))
	for _, v := range values {
		f, ok := types.ToFloat64(v)
		if !ok || (skipNaN && math.IsNaN(f)) {
			continue
		}
		floats = append(floats, f)
	}
	return floats
}

func mean(floats []float64) float64 {
	if len(floats) == 0 {
		return math.NaN()
	}
	total := 0.0
	for _, f := range floats {
		total += f
	}
	return total / float64(len(floats))
}

func reduceMean(skipNaN bool) aggregation.ReduceFunc {
	return func(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error) {
		return mean(toFloats(values, skipNaN)), nil
	}
}
