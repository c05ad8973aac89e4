package aggregation

import (
	"fmt"

	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/logging"
	"github.com/go-sif/columnar/types"
	"golang.org/x/sync/errgroup"
)

// TwoStep is a MultipleColumnsHandler which aggregates every column on its own, then aggregates
// the per-column results with a second step Aggregator. Per-column results keep the order of the
// columns, however many columns are processed concurrently.
type TwoStep struct {
	second      columnar.Aggregator
	parallelism int
}

// TwoStepOption configures a TwoStep handler
type TwoStepOption func(*TwoStep)

// WithSecondStep sets the Aggregator applied to the per-column results. By default, the
// Aggregator owning the handler is applied again.
func WithSecondStep(second columnar.Aggregator) TwoStepOption {
	return func(t *TwoStep) {
		t.second = second
	}
}

// WithParallelism sets the maximum number of columns aggregated concurrently
func WithParallelism(n int) TwoStepOption {
	return func(t *TwoStep) {
		t.parallelism = n
	}
}

// NewTwoStep returns a TwoStep MultipleColumnsHandler
func NewTwoStep(opts ...TwoStepOption) *TwoStep {
	t := &TwoStep{parallelism: 1}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TwoStep) secondStep(agg columnar.Aggregator) columnar.Aggregator {
	if t.second != nil {
		return t.second
	}
	return agg
}

// AggregateMultipleColumns aggregates each column, then the per-column results
func (t *TwoStep) AggregateMultipleColumns(agg columnar.Aggregator, columns []columnar.ValueSource) (interface{}, error) {
	results, resultTypes, err := t.firstStep(agg, columns)
	if err != nil {
		return nil, err
	}
	return t.secondStep(agg).AggregateCalculatingType(results, resultTypes)
}

func (t *TwoStep) firstStep(agg columnar.Aggregator, columns []columnar.ValueSource) ([]interface{}, []types.ValueType, error) {
	results := make([]interface{}, len(columns))
	resultTypes := make([]types.ValueType, len(columns))
	step := func(i int) error {
		c := columns[i]
		r, err := agg.AggregateSingleColumn(c)
		if err != nil {
			return fmt.Errorf("aggregating column %s: %w", c.Name(), err)
		}
		vt, err := agg.CalculateReturnType(c.ValueType(), IsEmpty(c.Values()))
		if err != nil {
			return err
		}
		// abstract predictions are refined from the actual result
		if vt.Type.IsAbstract() {
			vt = types.ValueTypeOf(r)
		}
		results[i] = r
		resultTypes[i] = vt
		return nil
	}

	if t.parallelism <= 1 || len(columns) <= 1 {
		for i := range columns {
			if err := step(i); err != nil {
				return nil, nil, err
			}
		}
		return results, resultTypes, nil
	}

	logging.With("aggregation").Debug("Aggregating columns concurrently", "aggregator", agg.Name(), "columns", len(columns), "parallelism", t.parallelism)
	var g errgroup.Group
	g.SetLimit(t.parallelism)
	for i := range columns {
		g.Go(func() error {
			return step(i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return results, resultTypes, nil
}

// CalculateReturnTypeMultipleColumns predicts the first step's result for every column,
// then the second step's result over those predictions
func (t *TwoStep) CalculateReturnTypeMultipleColumns(agg columnar.Aggregator, valueTypes []types.ValueType, allEmpty bool) (types.ValueType, error) {
	firstStep := make([]types.ValueType, len(valueTypes))
	for i, vt := range valueTypes {
		predicted, err := agg.CalculateReturnType(vt, allEmpty)
		if err != nil {
			return types.ValueType{}, err
		}
		firstStep[i] = predicted
	}
	second := t.secondStep(agg)
	combined, err := second.CombineValueTypes(firstStep)
	if err != nil {
		return types.ValueType{}, err
	}
	return second.CalculateReturnType(combined, allEmpty)
}
