// Package aggregation assembles Aggregators from three strategy axes: an InputHandler which
// prepares values, an AggregationHandler which computes the statistic, and a
// MultipleColumnsHandler which decides how several columns are combined.
package aggregation

import (
	"fmt"

	"github.com/go-sif/columnar"
	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/logging"
	"github.com/go-sif/columnar/types"
)

// aggregator is the composition of one instance of each strategy axis
type aggregator struct {
	name    string
	input   columnar.InputHandler
	handler columnar.AggregationHandler
	multi   columnar.MultipleColumnsHandler
}

// New assembles a named Aggregator. Handlers are stateless and may be shared by many Aggregators.
func New(name string, input columnar.InputHandler, handler columnar.AggregationHandler, multi columnar.MultipleColumnsHandler) columnar.Aggregator {
	if input == nil || handler == nil || multi == nil {
		panic(fmt.Sprintf("Aggregator %s requires an InputHandler, an AggregationHandler and a MultipleColumnsHandler", name))
	}
	return &aggregator{name: name, input: input, handler: handler, multi: multi}
}

// Name returns the name of this Aggregator
func (a *aggregator) Name() string {
	return a.name
}

// String returns the name of this Aggregator
func (a *aggregator) String() string {
	return a.name
}

// Aggregate preprocesses values with the InputHandler, then hands them to the AggregationHandler
func (a *aggregator) Aggregate(values []interface{}, valueType types.ValueType) (interface{}, error) {
	prepared, concrete, err := a.input.PreprocessAggregation(a, values, valueType)
	if err != nil {
		return nil, err
	}
	if logging.Enabled(logging.DebugLevel) {
		logging.With("aggregation").Debug("Aggregating", "aggregator", a.name, "values", len(values), "type", concrete.String())
	}
	return a.handler.Aggregate(a, prepared, concrete)
}

// AggregateCalculatingType aggregates values whose ValueType is the combination of valueTypes
func (a *aggregator) AggregateCalculatingType(values []interface{}, valueTypes []types.ValueType) (interface{}, error) {
	vt, err := a.input.CalculateValueType(a, valueTypes)
	if err != nil {
		return nil, err
	}
	return a.Aggregate(values, vt)
}

// AggregateSingleColumn aggregates the values of a single column, using its declared ValueType
func (a *aggregator) AggregateSingleColumn(column columnar.ValueSource) (interface{}, error) {
	return a.Aggregate(column.Values(), column.ValueType())
}

// AggregateMultipleColumns delegates to the MultipleColumnsHandler
func (a *aggregator) AggregateMultipleColumns(columns []columnar.ValueSource) (interface{}, error) {
	return a.multi.AggregateMultipleColumns(a, columns)
}

// IndexOfAggregationResult returns the position of the selected value within values
func (a *aggregator) IndexOfAggregationResult(values []interface{}, valueType types.ValueType) (int, error) {
	selecting, ok := a.handler.(columnar.SelectingHandler)
	if !ok {
		return -1, fmt.Errorf("Aggregator %s does not select values", a.name)
	}
	prepared, concrete, err := a.input.PreprocessAggregation(a, values, valueType)
	if err != nil {
		return -1, err
	}
	return selecting.IndexOfAggregationResult(a, prepared, concrete)
}

// CalculateValueType scans values with the InputHandler
func (a *aggregator) CalculateValueType(values []interface{}) (types.ValueType, error) {
	return a.input.ScanValueType(a, values)
}

// CombineValueTypes combines ValueTypes with the InputHandler
func (a *aggregator) CombineValueTypes(valueTypes []types.ValueType) (types.ValueType, error) {
	return a.input.CalculateValueType(a, valueTypes)
}

// CalculateReturnType predicts the result's ValueType from the input's ValueType alone.
// Selecting handlers which predict anything but their input Type violate their contract and panic.
func (a *aggregator) CalculateReturnType(valueType types.ValueType, emptyInput bool) (types.ValueType, error) {
	prepared, err := a.input.PreprocessType(a, valueType)
	if err != nil {
		return types.ValueType{}, err
	}
	result, err := a.handler.CalculateReturnType(a, prepared, emptyInput)
	if err != nil {
		return types.ValueType{}, err
	}
	if _, selecting := a.handler.(columnar.SelectingHandler); selecting && result.Type != prepared.Type {
		panic(errors.TypeContractError{Aggregator: a.name, Input: prepared.String(), Returned: result.String()})
	}
	return result, nil
}

// CalculateReturnTypeMultipleColumns delegates to the MultipleColumnsHandler
func (a *aggregator) CalculateReturnTypeMultipleColumns(valueTypes []types.ValueType, allEmpty bool) (types.ValueType, error) {
	return a.multi.CalculateReturnTypeMultipleColumns(a, valueTypes, allEmpty)
}

// IsEmpty returns true iff values holds no non-nil value
func IsEmpty(values []interface{}) bool {
	for _, v := range values {
		if v != nil {
			return false
		}
	}
	return true
}

// dropNils returns the non-nil values, reusing values when it holds none
func dropNils(values []interface{}) []interface{} {
	for i, v := range values {
		if v == nil {
			kept := make([]interface{}, i, len(values))
			copy(kept, values[:i])
			for _, w := range values[i+1:] {
				if w != nil {
					kept = append(kept, w)
				}
			}
			return kept
		}
	}
	return values
}
