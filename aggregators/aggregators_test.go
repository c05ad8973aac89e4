package aggregators

import (
	"fmt"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/aggregation"
	"github.com/go-sif/columnar/frame"
	"github.com/go-sif/columnar/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var defaults = Params{Percentile: 50, DDOF: 1, Parallelism: 1}

// aggregate scans values for their ValueType, then aggregates them
func aggregate(t *testing.T, agg columnar.Aggregator, values ...interface{}) interface{} {
	vt, err := agg.CalculateValueType(values)
	require.Nil(t, err)
	result, err := agg.Aggregate(values, vt)
	require.Nil(t, err)
	return result
}

func TestMeanSkipsNils(t *testing.T) {
	mean := Mean(defaults)
	values := []interface{}{2, 4, nil, 6}
	vt, err := mean.CalculateValueType(values)
	require.Nil(t, err)
	require.Equal(t, types.NullableOf(types.Int64), vt)

	result, err := mean.Aggregate(values, vt)
	require.Nil(t, err)
	require.Equal(t, 4.0, result)

	predicted, err := mean.CalculateReturnType(vt, false)
	require.Nil(t, err)
	require.Equal(t, types.Of(types.Float64), predicted)
	require.True(t, types.Conforms(result, predicted))
}

func TestMeanOfEmptyInput(t *testing.T) {
	mean := Mean(defaults)
	result := aggregate(t, mean)
	require.True(t, math.IsNaN(result.(float64)))

	predicted, err := mean.CalculateReturnType(types.Of(types.Float64), true)
	require.Nil(t, err)
	require.Equal(t, types.Of(types.Float64), predicted)
	require.True(t, types.Conforms(result, predicted))

	result = aggregate(t, mean, nil, nil)
	require.True(t, math.IsNaN(result.(float64)))
}

func TestMeanNaN(t *testing.T) {
	result := aggregate(t, Mean(defaults), 1.0, math.NaN(), 3.0)
	require.True(t, math.IsNaN(result.(float64)))

	skipping := defaults
	skipping.SkipNaN = true
	require.Equal(t, 2.0, aggregate(t, Mean(skipping), 1.0, math.NaN(), 3.0))
}

func TestMinSelectsFirstSmallest(t *testing.T) {
	min := Min(defaults)
	values := []interface{}{5, 1, 3}
	require.Equal(t, int64(1), aggregate(t, min, values...))
	vt, err := min.CalculateValueType(values)
	require.Nil(t, err)
	idx, err := min.IndexOfAggregationResult(values, vt)
	require.Nil(t, err)
	require.Equal(t, 1, idx)

	values = []interface{}{3, nil, 1, 1}
	vt, err = min.CalculateValueType(values)
	require.Nil(t, err)
	idx, err = min.IndexOfAggregationResult(values, vt)
	require.Nil(t, err)
	require.Equal(t, 2, idx)

	require.Nil(t, aggregate(t, min))
	require.Equal(t, "apple", aggregate(t, min, "pear", "apple", "plum"))
	require.Equal(t, "plum", aggregate(t, Max(defaults), "pear", "apple", "plum"))

	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	require.Equal(t, early, aggregate(t, min, late, early))
}

func TestMinMaxNaN(t *testing.T) {
	values := []interface{}{2.0, math.NaN(), 1.0}
	require.True(t, math.IsNaN(aggregate(t, Min(defaults), values...).(float64)))
	require.True(t, math.IsNaN(aggregate(t, Max(defaults), values...).(float64)))

	skipping := defaults
	skipping.SkipNaN = true
	require.Equal(t, 1.0, aggregate(t, Min(skipping), values...))
	require.Equal(t, 2.0, aggregate(t, Max(skipping), values...))
	// only NaN remains
	require.True(t, math.IsNaN(aggregate(t, Min(skipping), math.NaN(), nil).(float64)))
}

func TestSumTypes(t *testing.T) {
	sum := Sum(defaults)
	require.Equal(t, int32(6), aggregate(t, sum, int8(1), int8(2), int8(3)))
	require.Equal(t, uint32(300), aggregate(t, sum, uint16(100), uint16(200)))
	require.Equal(t, int64(7), aggregate(t, sum, 3, nil, 4))
	require.Equal(t, float32(1.5), aggregate(t, sum, float32(1), float32(0.5)))
	require.Equal(t, 3.5, aggregate(t, sum, int32(1), 2.5))
	require.Equal(t, int32(0), aggregate(t, sum))
	require.Equal(t, int32(0), aggregate(t, sum, nil))

	d := aggregate(t, sum, decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2")).(decimal.Decimal)
	require.True(t, decimal.RequireFromString("0.3").Equal(d))

	// mixing 64-bit integers with decimals stays lossless
	d = aggregate(t, sum, int64(1), decimal.RequireFromString("0.5")).(decimal.Decimal)
	require.True(t, decimal.RequireFromString("1.5").Equal(d))

	huge := new(big.Int).Lsh(big.NewInt(1), 80)
	b := aggregate(t, sum, huge, big.NewInt(1)).(*big.Int)
	require.Equal(t, 0, new(big.Int).Add(huge, big.NewInt(1)).Cmp(b))

	for _, c := range []struct {
		in  types.Type
		out types.Type
	}{
		{types.Int8, types.Int32},
		{types.Int16, types.Int32},
		{types.Uint8, types.Uint32},
		{types.Uint16, types.Uint32},
		{types.Int64, types.Int64},
		{types.Float32, types.Float32},
		{types.Decimal, types.Decimal},
		{types.Nothing, types.Int32},
	} {
		predicted, err := sum.CalculateReturnType(types.NullableOf(c.in), false)
		require.Nil(t, err)
		require.Equal(t, types.Of(c.out), predicted, c.in.String())
	}

	_, err := sum.CalculateReturnType(types.Of(types.String), false)
	require.NotNil(t, err)
}

func TestSumSkipNaN(t *testing.T) {
	require.True(t, math.IsNaN(aggregate(t, Sum(defaults), 1.0, math.NaN()).(float64)))
	skipping := defaults
	skipping.SkipNaN = true
	require.Equal(t, 1.0, aggregate(t, Sum(skipping), 1.0, math.NaN()))
}

func TestCount(t *testing.T) {
	count := Count(defaults)
	require.Equal(t, int64(2), aggregate(t, count, "a", nil, "b"))
	require.Equal(t, int64(0), aggregate(t, count))

	columns := []columnar.ValueSource{
		frame.InferValueColumn("a", []interface{}{"x", nil}),
		frame.InferValueColumn("b", []interface{}{1, 2, 3}),
	}
	result, err := count.AggregateMultipleColumns(columns)
	require.Nil(t, err)
	require.Equal(t, int64(4), result)
	predicted, err := count.CalculateReturnTypeMultipleColumns([]types.ValueType{columns[0].ValueType(), columns[1].ValueType()}, false)
	require.Nil(t, err)
	require.Equal(t, types.Of(types.Int64), predicted)
}

func TestCountWithoutColumns(t *testing.T) {
	count := Count(defaults)
	result, err := count.AggregateMultipleColumns([]columnar.ValueSource{})
	require.Nil(t, err)
	require.Equal(t, int64(0), result)

	predicted, err := count.CalculateReturnTypeMultipleColumns([]types.ValueType{}, true)
	require.Nil(t, err)
	require.Equal(t, types.Of(types.Int64), predicted)
	require.True(t, types.Conforms(result, predicted))

	empty := []columnar.ValueSource{
		frame.InferValueColumn("a", []interface{}{}),
		frame.InferValueColumn("b", []interface{}{nil}),
	}
	result, err = count.AggregateMultipleColumns(empty)
	require.Nil(t, err)
	require.Equal(t, int64(0), result)
}

func TestVarianceAndStd(t *testing.T) {
	values := []interface{}{2, 4, 4, 4, 5, 5, 7, 9}
	population := Params{DDOF: 0}
	require.InDelta(t, 4.0, aggregate(t, Variance(population), values...), 1e-12)
	require.InDelta(t, 2.0, aggregate(t, Std(population), values...), 1e-12)
	require.InDelta(t, 32.0/7.0, aggregate(t, Variance(defaults), values...), 1e-12)

	require.True(t, math.IsNaN(aggregate(t, Variance(defaults), 1).(float64)))
	require.True(t, math.IsNaN(aggregate(t, Std(defaults)).(float64)))
	require.Equal(t, 0.0, aggregate(t, Variance(population), 1))
}

func TestQuantiles(t *testing.T) {
	require.Equal(t, 2.5, aggregate(t, Median(defaults), 1, 4, 3, 2))
	require.Equal(t, 3.0, aggregate(t, Median(defaults), int32(3)))
	require.Equal(t, 2.0, aggregate(t, Median(defaults), 3, 1, 2))
	require.Nil(t, aggregate(t, Median(defaults)))
	require.Nil(t, aggregate(t, Median(defaults), nil))

	r7, err := Quantile("q25", 0.25, R7, defaults)
	require.Nil(t, err)
	require.InDelta(t, 1.75, aggregate(t, r7, 1, 2, 3, 4), 1e-12)

	p := defaults
	p.Percentile = 25
	r8, err := Percentile(p)
	require.Nil(t, err)
	require.InDelta(t, 1.0+5.0/12.0, aggregate(t, r8, 1, 2, 3, 4), 1e-12)

	p.Percentile = 0
	r8, err = Percentile(p)
	require.Nil(t, err)
	require.Equal(t, 1.0, aggregate(t, r8, 4, 1, 3))
	p.Percentile = 100
	r8, err = Percentile(p)
	require.Nil(t, err)
	require.Equal(t, 4.0, aggregate(t, r8, 4, 1, 3))

	require.Equal(t, math.Inf(1), aggregate(t, Median(defaults), 1.0, math.Inf(1), math.Inf(1)))
	require.True(t, math.IsNaN(aggregate(t, Median(defaults), 1.0, math.NaN()).(float64)))
	skipping := defaults
	skipping.SkipNaN = true
	require.Equal(t, 1.0, aggregate(t, Median(skipping), 1.0, math.NaN()))

	median := Median(defaults)
	_, err = median.Aggregate([]interface{}{decimal.NewFromInt(1)}, types.Of(types.Decimal))
	require.NotNil(t, err)
	_, err = median.CalculateReturnType(types.Of(types.Decimal), false)
	require.NotNil(t, err)
}

func TestInvalidQuantiles(t *testing.T) {
	_, err := Quantile("q", 1.5, R8, defaults)
	require.NotNil(t, err)
	_, err = Quantile("q", 0.5, R3, defaults)
	require.NotNil(t, err)
	_, err = QuantileValue("q", -0.1, defaults)
	require.NotNil(t, err)

	p := defaults
	p.Percentile = 101
	_, err = Percentile(p)
	require.NotNil(t, err)
	p.Percentile = math.NaN()
	_, err = PercentileValue(p)
	require.NotNil(t, err)
}

func TestQuantileValues(t *testing.T) {
	medianValue := MedianValue(defaults)
	values := []interface{}{"b", "a", "c"}
	require.Equal(t, "b", aggregate(t, medianValue, values...))
	vt, err := medianValue.CalculateValueType(values)
	require.Nil(t, err)
	idx, err := medianValue.IndexOfAggregationResult(values, vt)
	require.Nil(t, err)
	require.Equal(t, 0, idx)

	// the lower of the two middle values for an even number of values
	require.Equal(t, int64(2), aggregate(t, medianValue, 4, 1, 3, 2))
	require.Nil(t, aggregate(t, medianValue, nil))

	p := defaults
	p.Percentile = 0
	lowest, err := PercentileValue(p)
	require.Nil(t, err)
	require.Equal(t, "a", aggregate(t, lowest, values...))
	p.Percentile = 100
	highest, err := PercentileValue(p)
	require.Nil(t, err)
	require.Equal(t, "c", aggregate(t, highest, values...))

	// equal values keep their original order
	values = []interface{}{nil, "x", "x", "x"}
	vt, err = medianValue.CalculateValueType(values)
	require.Nil(t, err)
	idx, err = medianValue.IndexOfAggregationResult(values, vt)
	require.Nil(t, err)
	require.Equal(t, 2, idx)

	_, err = medianValue.Aggregate([]interface{}{"a", 1}, types.Of(types.Comparable))
	require.NotNil(t, err)
}

func TestReturnTypePredictionMatchesResults(t *testing.T) {
	nan := math.NaN()
	inputs := [][]interface{}{
		{},
		{nil},
		{nil, nil},
		{1, 2, 3},
		{3, nil, 1},
		{int8(1), int8(-4)},
		{uint8(200), uint8(100)},
		{int16(7)},
		{uint32(3), uint32(5)},
		{uint64(3), uint64(5)},
		{float32(1.5), float32(2.5)},
		{1.5, nil, nan},
		{nan},
		{int32(1), 2.5},
		{uint8(1), int8(1)},
		{int64(1), decimal.RequireFromString("0.25")},
		{decimal.RequireFromString("1.5"), nil},
		{big.NewInt(5), big.NewInt(-2)},
		{"pear", "apple"},
		{true, false},
		{time.Unix(10, 0), time.Unix(5, 0)},
		{time.Second, time.Minute},
	}
	skipping := defaults
	skipping.SkipNaN = true
	var aggs []columnar.Aggregator
	for _, p := range []Params{defaults, skipping} {
		registry := NewRegistry(nil)
		for _, name := range registry.Names() {
			agg, err := registry.GetWithParams(name, p)
			require.Nil(t, err)
			aggs = append(aggs, agg)
		}
	}

	for _, agg := range aggs {
		for _, values := range inputs {
			name := fmt.Sprintf("%s%v", agg.Name(), values)
			vt, err := agg.CalculateValueType(values)
			if err != nil {
				continue
			}
			predicted, predictErr := agg.CalculateReturnType(vt, aggregation.IsEmpty(values))
			result, err := agg.Aggregate(values, vt)
			require.Equal(t, predictErr == nil, err == nil, name)
			if err != nil {
				continue
			}
			require.True(t, types.Conforms(result, predicted), "%s: %v (%s) does not conform to %s", name, result, types.TypeOf(result), predicted)
		}
	}
}

func concat(columns []columnar.ValueSource) *frame.ValueColumn {
	var values []interface{}
	for _, c := range columns {
		values = append(values, c.Values()...)
	}
	return frame.InferValueColumn("all", values)
}

func TestTwoStepEqualsFlattening(t *testing.T) {
	defer goleak.VerifyNone(t)

	groups := [][]columnar.ValueSource{
		{
			frame.InferValueColumn("a", []interface{}{4, nil, 7}),
			frame.InferValueColumn("b", []interface{}{-2, 9}),
			frame.InferValueColumn("c", nil),
		},
		{
			frame.InferValueColumn("a", []interface{}{1.5, 2.5}),
			frame.InferValueColumn("b", []interface{}{-0.5}),
		},
		{
			frame.InferValueColumn("a", []interface{}{"kiwi", "fig"}),
			frame.InferValueColumn("b", []interface{}{"plum", nil}),
		},
	}
	parallel := defaults
	parallel.Parallelism = 4

	for _, p := range []Params{defaults, parallel} {
		for _, agg := range []columnar.Aggregator{Sum(p), Min(p), Max(p), Count(p)} {
			for i, columns := range groups {
				name := fmt.Sprintf("%s/%d", agg.Name(), i)
				all := concat(columns)
				flat, err := agg.Aggregate(all.Values(), all.ValueType())
				if err != nil {
					// sum does not apply to strings
					continue
				}
				twoStep, err := agg.AggregateMultipleColumns(columns)
				require.Nil(t, err, name)
				require.Equal(t, flat, twoStep, name)
			}
		}
	}

	// mean is order-insensitive across columns of equal length
	columns := []columnar.ValueSource{
		frame.InferValueColumn("a", []interface{}{1.0, 2.0}),
		frame.InferValueColumn("b", []interface{}{3.0, 6.0}),
	}
	mean := Mean(defaults)
	perColumn := make([]interface{}, len(columns))
	for i, c := range columns {
		r, err := mean.AggregateSingleColumn(c)
		require.Nil(t, err)
		perColumn[i] = r
	}
	all := concat(columns)
	require.Equal(t, aggregate(t, mean, all.Values()...), aggregate(t, mean, perColumn...))
	flat, err := mean.AggregateMultipleColumns(columns)
	require.Nil(t, err)
	require.Equal(t, 3.0, flat)
}

func TestMultipleColumnReturnTypes(t *testing.T) {
	vts := []types.ValueType{types.Of(types.Int8), types.NullableOf(types.Int16)}
	predicted, err := Sum(defaults).CalculateReturnTypeMultipleColumns(vts, false)
	require.Nil(t, err)
	require.Equal(t, types.Of(types.Int32), predicted)

	predicted, err = Min(defaults).CalculateReturnTypeMultipleColumns(vts, true)
	require.Nil(t, err)
	require.Equal(t, types.NullableOf(types.Int16), predicted)

	predicted, err = Median(defaults).CalculateReturnTypeMultipleColumns(vts, false)
	require.Nil(t, err)
	require.Equal(t, types.Of(types.Float64), predicted)
}
