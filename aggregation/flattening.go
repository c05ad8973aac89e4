package aggregation

import (
	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/types"
)

// Flattening is a MultipleColumnsHandler which concatenates the values of all columns
// and aggregates them once
type Flattening struct{}

// AggregateMultipleColumns aggregates the concatenated values of columns
func (Flattening) AggregateMultipleColumns(agg columnar.Aggregator, columns []columnar.ValueSource) (interface{}, error) {
	size := 0
	for _, c := range columns {
		size += len(c.Values())
	}
	values := make([]interface{}, 0, size)
	valueTypes := make([]types.ValueType, len(columns))
	for i, c := range columns {
		values = append(values, c.Values()...)
		valueTypes[i] = c.ValueType()
	}
	return agg.AggregateCalculatingType(values, valueTypes)
}

// CalculateReturnTypeMultipleColumns predicts the result type for the combination of valueTypes
func (Flattening) CalculateReturnTypeMultipleColumns(agg columnar.Aggregator, valueTypes []types.ValueType, allEmpty bool) (types.ValueType, error) {
	combined, err := agg.CombineValueTypes(valueTypes)
	if err != nil {
		return types.ValueType{}, err
	}
	return agg.CalculateReturnType(combined, allEmpty)
}
