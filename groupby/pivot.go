package groupby

import (
	"fmt"

	"github.com/go-sif/columnar/frame"
)

// PivotBody computes the values of one pivot group. Its result is yielded into the pivot
// column when the body yields nothing itself.
type PivotBody func(r *Receiver) (interface{}, error)

// Pivot spreads the values computed for every combination of pivot key values across
// columns named after those values
type Pivot struct {
	grouped      *Grouped
	columns      []string
	groupValues  bool
	defaultValue interface{}
	groupPath    frame.ColumnPath
}

// NewPivot returns a detached Pivot over the given key columns. It is folded into the group
// of an enclosing aggregation with Into.
func NewPivot(columns ...string) *Pivot {
	return &Pivot{columns: columns}
}

// Pivot returns a Pivot over the given key columns, producing one row per group
func (g *Grouped) Pivot(columns ...string) (*Pivot, error) {
	for _, c := range columns {
		if _, err := g.table.ValueColumn(frame.ParsePath(c)); err != nil {
			return nil, err
		}
	}
	return &Pivot{grouped: g, columns: columns}, nil
}

// PivotTable returns a Pivot over the given key columns of table, producing a single row
func PivotTable(table *frame.Table, columns ...string) (*Pivot, error) {
	g, err := GroupBy(table)
	if err != nil {
		return nil, err
	}
	return g.Pivot(columns...)
}

// GroupByValue places the pivot key values below the yielded paths, instead of above them
func (p *Pivot) GroupByValue(flag bool) *Pivot {
	c := *p
	c.groupValues = flag
	return &c
}

// WithGrouping nests every pivot column below path
func (p *Pivot) WithGrouping(path ...string) *Pivot {
	c := *p
	c.groupPath = frame.Path(path...)
	return &c
}

// Default sets the value of pivot columns for which a group yields nothing
func (p *Pivot) Default(value interface{}) *Pivot {
	c := *p
	c.defaultValue = value
	return &c
}

// Aggregate runs body for every pivot group within every group, and builds a Table with
// one row per group
func (p *Pivot) Aggregate(body PivotBody) (*frame.Table, error) {
	if p.grouped == nil {
		return nil, fmt.Errorf("Pivot over %v is not attached to a grouped Table, fold it with Into", p.columns)
	}
	return p.grouped.Aggregate(func(r *Receiver) error {
		return p.Into(r, body)
	})
}

// Into runs body for every pivot group among the rows of r, and yields the results into r
func (p *Pivot) Into(r *Receiver, body PivotBody) error {
	pivoted, err := GroupBy(r.Group(), p.columns...)
	if err != nil {
		return err
	}
	for _, group := range pivoted.Groups() {
		keyPath := make(frame.ColumnPath, len(group.Key))
		for i, k := range group.Key {
			keyPath[i] = pivotName(k)
		}
		inner := &Receiver{group: group.Rows, pivot: true}
		result, err := body(inner)
		if err != nil {
			return err
		}

		values := inner.Values()
		switch {
		case len(values) == 0:
			r.Yield(New(p.target(keyPath, nil), result, nil, p.defaultValue, true))
		case len(values) == 1 && len(values[0].Path()) == 0:
			r.Yield(p.retarget(values[0], p.target(keyPath, nil)))
		default:
			for _, nv := range values {
				r.Yield(p.retarget(nv, p.target(keyPath, nv.Path())))
			}
		}
	}
	return nil
}

// target computes the column path of a value yielded at path within the pivot group keyPath
func (p *Pivot) target(keyPath, path frame.ColumnPath) frame.ColumnPath {
	target := make(frame.ColumnPath, 0, len(p.groupPath)+len(keyPath)+len(path))
	target = append(target, p.groupPath...)
	if p.groupValues {
		target = append(target, path...)
		return append(target, keyPath...)
	}
	target = append(target, keyPath...)
	return append(target, path...)
}

// retarget moves nv to path, falling back to the pivot default
func (p *Pivot) retarget(nv NamedValue, path frame.ColumnPath) NamedValue {
	nv.path = path
	if nv.defaultValue == nil {
		nv.defaultValue = p.defaultValue
	}
	return nv
}

func pivotName(key interface{}) string {
	if key == nil {
		return "null"
	}
	return fmt.Sprint(key)
}
