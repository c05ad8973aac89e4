package aggregators

import (
	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/aggregation"
	"github.com/go-sif/columnar/types"
)

// Min returns the "min" Aggregator, which selects the first smallest value.
// A NaN is selected unless p.SkipNaN is set.
func Min(p Params) columnar.Aggregator {
	return aggregation.New(
		"min",
		aggregation.ComparableOrNumberInput{},
		aggregation.NewSelecting(selectExtreme(-1, p.SkipNaN)),
		aggregation.NewTwoStep(aggregation.WithParallelism(p.Parallelism)),
	)
}

// Max returns the "max" Aggregator, which selects the first largest value.
// A NaN is selected unless p.SkipNaN is set.
func Max(p Params) columnar.Aggregator {
	return aggregation.New(
		"max",
		aggregation.ComparableOrNumberInput{},
		aggregation.NewSelecting(selectExtreme(1, p.SkipNaN)),
		aggregation.NewTwoStep(aggregation.WithParallelism(p.Parallelism)),
	)
}

// selectExtreme selects the first value v for which Compare(v, other) has the sign of
// direction for every other value. When only NaN values remain after skipping, the first
// NaN is selected, so that the result is nil only for inputs without non-nil values.
func selectExtreme(direction int, skipNaN bool) aggregation.SelectFunc {
	return func(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (int, error) {
		best, firstNaN := -1, -1
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
			if best < 0 {
				best = i
				continue
			}
			c, err := types.Compare(v, values[best])
			if err != nil {
				return -1, err
			}
			if c*direction > 0 {
				best = i
			}
		}
		if best < 0 {
			return firstNaN, nil
		}
		return best, nil
	}
}
