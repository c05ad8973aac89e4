package columnar

import "github.com/go-sif/columnar/types"

// An Aggregator is a named aggregation operation, such as "sum" or "min", composed of
// one InputHandler, one AggregationHandler and one MultipleColumnsHandler. Besides
// computing results, it predicts the ValueType of a result without touching any data;
// the prediction always describes the actual result exactly.
//
// Value sequences are materialized slices in which nil marks an absent value. They are
// never modified, and an InputHandler copies them at most once while preprocessing.
type Aggregator interface {
	Name() string // Name returns the name of this Aggregator
	// Aggregate aggregates a sequence of values described by valueType
	Aggregate(values []interface{}, valueType types.ValueType) (interface{}, error)
	// AggregateCalculatingType aggregates a sequence of values whose ValueType is the combination of valueTypes
	AggregateCalculatingType(values []interface{}, valueTypes []types.ValueType) (interface{}, error)
	// AggregateSingleColumn aggregates the values of a single column
	AggregateSingleColumn(column ValueSource) (interface{}, error)
	// AggregateMultipleColumns aggregates the values of several columns into a single result
	AggregateMultipleColumns(columns []ValueSource) (interface{}, error)
	// IndexOfAggregationResult returns the position of the selected value within values, or -1 if there is none.
	// It fails for Aggregators which do not select.
	IndexOfAggregationResult(values []interface{}, valueType types.ValueType) (int, error)
	// CalculateValueType computes the ValueType of values the way this Aggregator's InputHandler sees them
	CalculateValueType(values []interface{}) (types.ValueType, error)
	// CombineValueTypes is the type-level counterpart of CalculateValueType, combining the ValueTypes of several inputs
	CombineValueTypes(valueTypes []types.ValueType) (types.ValueType, error)
	// CalculateReturnType predicts the ValueType of the result for input of the given ValueType.
	// emptyInput signals that the input holds no non-nil value.
	CalculateReturnType(valueType types.ValueType, emptyInput bool) (types.ValueType, error)
	// CalculateReturnTypeMultipleColumns predicts the ValueType of AggregateMultipleColumns
	CalculateReturnTypeMultipleColumns(valueTypes []types.ValueType, allEmpty bool) (types.ValueType, error)
}

// An InputHandler prepares raw values for an AggregationHandler. Handlers are stateless;
// the Aggregator they serve is passed to every call.
type InputHandler interface {
	// CalculateValueType combines the ValueTypes of several inputs into one
	CalculateValueType(agg Aggregator, valueTypes []types.ValueType) (types.ValueType, error)
	// ScanValueType computes the ValueType of a sequence from the runtime Types of its values
	ScanValueType(agg Aggregator, values []interface{}) (types.ValueType, error)
	// PreprocessAggregation transforms values into the form the AggregationHandler expects,
	// returning them with their concrete ValueType. Positions of values are preserved.
	PreprocessAggregation(agg Aggregator, values []interface{}, valueType types.ValueType) ([]interface{}, types.ValueType, error)
	// PreprocessType is the type-level counterpart of PreprocessAggregation
	PreprocessType(agg Aggregator, valueType types.ValueType) (types.ValueType, error)
}

// An AggregationHandler computes a statistic from preprocessed values. Reducing handlers fold
// the non-nil values into a new value; SelectingHandlers pick one of the existing values.
type AggregationHandler interface {
	// Aggregate computes the statistic over preprocessed values of the given ValueType
	Aggregate(agg Aggregator, values []interface{}, valueType types.ValueType) (interface{}, error)
	// CalculateReturnType predicts the ValueType of Aggregate's result without touching data
	CalculateReturnType(agg Aggregator, valueType types.ValueType, emptyInput bool) (types.ValueType, error)
}

// A SelectingHandler is an AggregationHandler whose result is one of its input values.
// Its predicted return type is always the input Type, nullable or not.
type SelectingHandler interface {
	AggregationHandler
	// IndexOfAggregationResult returns the position of the selected value in values, or -1 if there is none
	IndexOfAggregationResult(agg Aggregator, values []interface{}, valueType types.ValueType) (int, error)
}

// A MultipleColumnsHandler decides how an Aggregator combines several columns
type MultipleColumnsHandler interface {
	// AggregateMultipleColumns aggregates several columns into a single result
	AggregateMultipleColumns(agg Aggregator, columns []ValueSource) (interface{}, error)
	// CalculateReturnTypeMultipleColumns predicts the ValueType of AggregateMultipleColumns
	CalculateReturnTypeMultipleColumns(agg Aggregator, valueTypes []types.ValueType, allEmpty bool) (types.ValueType, error)
}
