package aggregators

import (
	"math"

	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/aggregation"
	"github.com/go-sif/columnar/types"
)

// Variance returns the "var" Aggregator, with p.DDOF delta degrees of freedom.
// Inputs of at most DDOF values have a variance of NaN.
func Variance(p Params) columnar.Aggregator {
	return aggregation.New(
		"var",
		aggregation.NumberInput{},
		aggregation.NewReducing(reduceDeviation(p, false), float64Type),
		aggregation.Flattening{},
	)
}

// Std returns the "std" Aggregator, the square root of Variance
func Std(p Params) columnar.Aggregator {
	return aggregation.New(
		"std",
		aggregation.NumberInput{},
		aggregation.NewReducing(reduceDeviation(p, true), float64Type),
		aggregation.Flattening{},
	)
}

func variance(floats []float64, ddof int) float64 {
	dof := len(floats) - ddof
	if dof <= 0 {
		return math.NaN()
	}
	m := mean(floats)
	squares := 0.0
	for _, f := range floats {
		squares += (f - m) * (f - m)
	}
	return squares / float64(dof)
}

func reduceDeviation(p Params, sqrt bool) aggregation.ReduceFunc {
	return func(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error) {
		v := variance(toFloats(values, p.SkipNaN), p.DDOF)
		if sqrt {
			return math.Sqrt(v), nil
		}
		return v, nil
	}
}
