package groupby

import (
	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/aggregation"
	"github.com/go-sif/columnar/frame"
	"github.com/go-sif/columnar/types"
)

// Receiver collects the NamedValues yielded while aggregating one group. Inside a pivot,
// single-column aggregations yield to the pivot column itself.
type Receiver struct {
	group  *frame.Table
	values []NamedValue
	pivot  bool
}

// NewReceiver returns a Receiver for the rows of group
func NewReceiver(group *frame.Table) *Receiver {
	return &Receiver{group: group}
}

// Group returns the rows being aggregated
func (r *Receiver) Group() *frame.Table {
	return r.group
}

// Values returns the yielded NamedValues, in yield order
func (r *Receiver) Values() []NamedValue {
	return r.values
}

// Yield records a NamedValue
func (r *Receiver) Yield(nv NamedValue) {
	r.values = append(r.values, nv)
}

// Into yields value into the top-level column name, whose type is computed from the values
func (r *Receiver) Into(value interface{}, name string) {
	r.Yield(New(frame.Path(name), value, nil, nil, true))
}

// YieldTyped yields value into the column at path, declaring its ValueType
func (r *Receiver) YieldTyped(path frame.ColumnPath, value interface{}, valueType types.ValueType) {
	r.Yield(New(path, value, &valueType, nil, false))
}

// Aggregate runs agg over the columns of the group at the given paths, and yields the
// result into a column named after agg
func (r *Receiver) Aggregate(agg columnar.Aggregator, columns ...string) error {
	if r.pivot && len(columns) == 1 {
		return r.aggregateAt(nil, agg, columns...)
	}
	return r.AggregateInto(agg.Name(), agg, columns...)
}

// AggregateInto runs agg over the columns of the group at the given paths, and yields the
// result into the top-level column name. The declared type of the result is agg's prediction.
func (r *Receiver) AggregateInto(name string, agg columnar.Aggregator, columns ...string) error {
	return r.aggregateAt(frame.Path(name), agg, columns...)
}

func (r *Receiver) aggregateAt(path frame.ColumnPath, agg columnar.Aggregator, columns ...string) error {
	sources := make([]columnar.ValueSource, len(columns))
	valueTypes := make([]types.ValueType, len(columns))
	allEmpty := true
	for i, column := range columns {
		c, err := r.group.ValueColumn(frame.ParsePath(column))
		if err != nil {
			return err
		}
		sources[i] = c
		valueTypes[i] = c.ValueType()
		allEmpty = allEmpty && aggregation.IsEmpty(c.Values())
	}

	var result interface{}
	var predicted types.ValueType
	var err error
	if len(sources) == 1 {
		result, err = agg.AggregateSingleColumn(sources[0])
		if err == nil {
			predicted, err = agg.CalculateReturnType(valueTypes[0], allEmpty)
		}
	} else {
		result, err = agg.AggregateMultipleColumns(sources)
		if err == nil {
			predicted, err = agg.CalculateReturnTypeMultipleColumns(valueTypes, allEmpty)
		}
	}
	if err != nil {
		return err
	}

	if predicted.Type.IsAbstract() {
		r.Yield(New(path, result, nil, nil, true))
		return nil
	}
	r.Yield(New(path, result, &predicted, nil, false))
	return nil
}
