package aggregation

import (
	"github.com/go-sif/columnar"
	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/types"
)

// AnyInput is the generic InputHandler. It combines types through the type hierarchy and passes
// values through unchanged; abstract ValueTypes are refined by scanning the values.
type AnyInput struct{}

// CalculateValueType returns the nearest common ancestor of valueTypes
func (AnyInput) CalculateValueType(agg columnar.Aggregator, valueTypes []types.ValueType) (types.ValueType, error) {
	return types.CommonValueType(valueTypes...), nil
}

// ScanValueType returns the nearest common ancestor of the runtime Types of values
func (AnyInput) ScanValueType(agg columnar.Aggregator, values []interface{}) (types.ValueType, error) {
	return types.ScanValueType(values), nil
}

// PreprocessAggregation returns values unchanged, refining an abstract valueType by scanning them
func (h AnyInput) PreprocessAggregation(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) ([]interface{}, types.ValueType, error) {
	if valueType.Type.IsAbstract() {
		scanned, err := h.ScanValueType(agg, values)
		return values, scanned, err
	}
	return values, valueType, nil
}

// PreprocessType returns valueType unchanged
func (AnyInput) PreprocessType(agg columnar.Aggregator, valueType types.ValueType) (types.ValueType, error) {
	return valueType, nil
}

// NumberInput is the InputHandler for numeric statistics. Mixed numeric Types are unified with
// types.UnifyNumbers and every value is converted to the unified Type before aggregation.
type NumberInput struct{}

func isNumeric(t types.Type) bool {
	return t == types.Nothing || t == types.Number || t.IsNumber()
}

func checkNumeric(agg columnar.Aggregator, ts ...types.Type) error {
	for _, t := range ts {
		if !isNumeric(t) {
			return errors.UnsupportedTypeError{Aggregator: agg.Name(), Type: t.String()}
		}
	}
	return nil
}

// CalculateValueType unifies valueTypes within the numeric tower
func (NumberInput) CalculateValueType(agg columnar.Aggregator, valueTypes []types.ValueType) (types.ValueType, error) {
	for _, vt := range valueTypes {
		if err := checkNumeric(agg, vt.Type); err != nil {
			return types.ValueType{}, err
		}
	}
	return types.UnifyNumberValueTypes(valueTypes...)
}

// ScanValueType unifies the runtime Types of values within the numeric tower
func (NumberInput) ScanValueType(agg columnar.Aggregator, values []interface{}) (types.ValueType, error) {
	seen := make(map[types.Type]struct{})
	var ts []types.Type
	nullable := false
	for _, v := range values {
		t := types.TypeOf(v)
		if t == types.Nothing {
			nullable = true
			continue
		}
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			ts = append(ts, t)
		}
	}
	if err := checkNumeric(agg, ts...); err != nil {
		return types.ValueType{}, err
	}
	t, err := types.UnifyNumbers(ts...)
	if err != nil {
		return types.ValueType{}, err
	}
	return types.ValueType{Type: t, Nullable: nullable}, nil
}

// PreprocessAggregation converts every value to the concrete numeric Type of valueType,
// scanning the values first when valueType is the abstract Number
func (h NumberInput) PreprocessAggregation(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) ([]interface{}, types.ValueType, error) {
	if err := checkNumeric(agg, valueType.Type); err != nil {
		return nil, types.ValueType{}, err
	}
	target := valueType
	if target.Type == types.Number {
		scanned, err := h.ScanValueType(agg, values)
		if err != nil {
			return nil, types.ValueType{}, err
		}
		target = scanned
	}
	if target.Type == types.Nothing {
		return values, target, nil
	}

	converted := make([]interface{}, len(values))
	for i, v := range values {
		v = types.Normalize(v)
		if v == nil || types.TypeOf(v) == target.Type {
			converted[i] = v
			continue
		}
		c, err := types.ConvertNumber(v, target.Type)
		if err != nil {
			return nil, types.ValueType{}, err
		}
		converted[i] = c
	}
	return converted, target, nil
}

// PreprocessType fails for non-numeric valueTypes
func (NumberInput) PreprocessType(agg columnar.Aggregator, valueType types.ValueType) (types.ValueType, error) {
	if err := checkNumeric(agg, valueType.Type); err != nil {
		return types.ValueType{}, err
	}
	return valueType, nil
}

// ComparableOrNumberInput behaves like NumberInput when every Type is numeric and like AnyInput
// otherwise. It serves statistics, such as min and max, which order values.
type ComparableOrNumberInput struct{}

func allNumeric(vts []types.ValueType) bool {
	for _, vt := range vts {
		if !isNumeric(vt.Type) {
			return false
		}
	}
	return true
}

// CalculateValueType combines valueTypes as NumberInput or AnyInput would
func (ComparableOrNumberInput) CalculateValueType(agg columnar.Aggregator, valueTypes []types.ValueType) (types.ValueType, error) {
	if allNumeric(valueTypes) {
		return NumberInput{}.CalculateValueType(agg, valueTypes)
	}
	return AnyInput{}.CalculateValueType(agg, valueTypes)
}

// ScanValueType scans values as NumberInput or AnyInput would
func (ComparableOrNumberInput) ScanValueType(agg columnar.Aggregator, values []interface{}) (types.ValueType, error) {
	scanned := types.ScanValueType(values)
	if scanned.Type == types.Number {
		return NumberInput{}.ScanValueType(agg, values)
	}
	return scanned, nil
}

// PreprocessAggregation unifies numeric values, and passes any other values through
func (h ComparableOrNumberInput) PreprocessAggregation(agg columnar.Aggregator, values []interface{}, valueType types.ValueType) ([]interface{}, types.ValueType, error) {
	switch {
	case isNumeric(valueType.Type):
		return NumberInput{}.PreprocessAggregation(agg, values, valueType)
	case valueType.Type.IsAbstract():
		scanned, err := h.ScanValueType(agg, values)
		if err != nil {
			return nil, types.ValueType{}, err
		}
		if isNumeric(scanned.Type) {
			return NumberInput{}.PreprocessAggregation(agg, values, scanned)
		}
		return values, scanned, nil
	}
	return values, valueType, nil
}

// PreprocessType fails for Types which can not be ordered
func (ComparableOrNumberInput) PreprocessType(agg columnar.Aggregator, valueType types.ValueType) (types.ValueType, error) {
	t := valueType.Type
	if isNumeric(t) || t == types.Any || types.IsSubtype(t, types.Comparable) {
		return valueType, nil
	}
	return types.ValueType{}, errors.UnsupportedTypeError{Aggregator: agg.Name(), Type: t.String()}
}
