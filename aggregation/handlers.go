package aggregation

import (
	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/types"
)

// ReduceFunc folds non-nil values of a concrete ValueType into a new value
type ReduceFunc func(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error)

// SelectFunc returns the position of the selected value within values, or -1 if there is none.
// values may contain nils, which are never selected.
type SelectFunc func(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (int, error)

// ReturnTypeFunc predicts the ValueType of an aggregation result
type ReturnTypeFunc func(agg columnar.Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error)

// Reducing is an AggregationHandler which drops nils, then folds the remaining values
type Reducing struct {
	reduce     ReduceFunc
	returnType ReturnTypeFunc
}

// NewReducing returns a Reducing AggregationHandler
func NewReducing(reduce ReduceFunc, returnType ReturnTypeFunc) *Reducing {
	return &Reducing{reduce: reduce, returnType: returnType}
}

// Aggregate folds the non-nil values
func (h *Reducing) Aggregate(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error) {
	return h.reduce(agg, dropNils(values), valueType.WithNullable(false))
}

// CalculateReturnType predicts the ValueType of Aggregate's result
func (h *Reducing) CalculateReturnType(agg columnar.Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error) {
	return h.returnType(agg, valueType, emptyInput)
}

// Selecting is an AggregationHandler which picks one of its input values. Its result is
// nil exactly when the input holds no non-nil value.
type Selecting struct {
	selectIndex SelectFunc
	returnType  ReturnTypeFunc
}

// NewSelecting returns a Selecting AggregationHandler
func NewSelecting(selectIndex SelectFunc) *Selecting {
	return &Selecting{selectIndex: selectIndex, returnType: selectedType}
}

// NewSelectingWithReturnType returns a Selecting AggregationHandler with a custom return type
// prediction. The prediction must still be the input Type, or the Aggregator panics.
func NewSelectingWithReturnType(selectIndex SelectFunc, returnType ReturnTypeFunc) *Selecting {
	return &Selecting{selectIndex: selectIndex, returnType: returnType}
}

func selectedType(agg columnar.Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error) {
	return valueType.WithNullable(emptyInput), nil
}

// Aggregate returns the selected value, or nil
func (h *Selecting) Aggregate(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error) {
	i, err := h.selectIndex(agg, values, valueType)
	if err != nil || i < 0 {
		return nil, err
	}
	return values[i], nil
}

// IndexOfAggregationResult returns the position of the selected value within values, or -1
func (h *Selecting) IndexOfAggregationResult(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) (int, error) {
	return h.selectIndex(agg, values, valueType)
}

// CalculateReturnType predicts the ValueType of Aggregate's result
func (h *Selecting) CalculateReturnType(agg columnar.Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error) {
	return h.returnType(agg, valueType, emptyInput)
}
