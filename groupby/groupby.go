// Package groupby partitions a Table by the values of key columns and folds the NamedValues
// yielded for every group into a new Table.
package groupby

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/columnar"
	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/frame"
	"github.com/go-sif/columnar/logging"
	"github.com/go-sif/columnar/types"
)

// Group is a set of rows sharing the same key values
type Group struct {
	Key  []interface{}
	Rows *frame.Table
}

// Grouped is a Table partitioned into Groups, ordered by the first appearance of their keys
type Grouped struct {
	table    *frame.Table
	keys     []*frame.ValueColumn
	keyPaths []frame.ColumnPath
	groups   []Group
}

// GroupBy partitions table by the values of the Value columns at the given paths.
// Keys are equal when their values have the same Type and representation.
func GroupBy(table *frame.Table, keys ...string) (*Grouped, error) {
	keyColumns := make([]*frame.ValueColumn, len(keys))
	keyPaths := make([]frame.ColumnPath, len(keys))
	for i, k := range keys {
		keyPaths[i] = frame.ParsePath(k)
		c, err := table.ValueColumn(keyPaths[i])
		if err != nil {
			return nil, err
		}
		keyColumns[i] = c
	}

	buckets := make(map[uint64][]int)
	var encoded []string
	var keyValues [][]interface{}
	var members [][]int
	for row := 0; row < table.RowCount(); row++ {
		key := make([]interface{}, len(keyColumns))
		for j, c := range keyColumns {
			key[j] = c.Values()[row]
		}
		// compute key
		keyBuf := encodeKey(key)
		// hash key
		hasher := xxhash.New()
		hasher.Write(keyBuf)
		hashedKey := hasher.Sum64()

		group := -1
		for _, candidate := range buckets[hashedKey] {
			if encoded[candidate] == string(keyBuf) {
				group = candidate
				break
			}
		}
		if group < 0 {
			group = len(keyValues)
			encoded = append(encoded, string(keyBuf))
			keyValues = append(keyValues, key)
			members = append(members, nil)
			buckets[hashedKey] = append(buckets[hashedKey], group)
		}
		members[group] = append(members[group], row)
	}

	groups := make([]Group, len(keyValues))
	for i, key := range keyValues {
		rows, err := table.Take(members[i])
		if err != nil {
			return nil, err
		}
		groups[i] = Group{Key: key, Rows: rows}
	}
	logging.With("groupby").Debug("Grouped table", "id", table.ID().String(), "keys", len(keys), "groups", len(groups))
	return &Grouped{table: table, keys: keyColumns, keyPaths: keyPaths, groups: groups}, nil
}

// encodeKey serializes key values, such that equal keys have equal encodings
func encodeKey(key []interface{}) []byte {
	var buf []byte
	for _, v := range key {
		buf = append(buf, types.TypeOf(v)...)
		buf = append(buf, 0)
		switch x := v.(type) {
		case nil:
		case time.Time:
			buf = append(buf, x.UTC().Format(time.RFC3339Nano)...)
		default:
			buf = fmt.Append(buf, x)
		}
		buf = append(buf, 0)
	}
	return buf
}

// Groups returns the Groups, ordered by the first appearance of their keys
func (g *Grouped) Groups() []Group {
	return g.groups
}

// Len returns the number of Groups
func (g *Grouped) Len() int {
	return len(g.groups)
}

// Table returns the grouped Table
func (g *Grouped) Table() *frame.Table {
	return g.table
}

// AggregateBody computes the NamedValues of one group
type AggregateBody func(r *Receiver) error

// outColumn accumulates the values yielded into one column path, one per group
type outColumn struct {
	path         frame.ColumnPath
	values       []interface{}
	present      []bool
	declared     []types.ValueType
	guess        bool
	defaultValue interface{}
}

// Aggregate runs body for every group and builds a Table with one row per group: the key
// columns at their paths, followed by one column per yielded path in order of first yield.
// Nested paths become Group columns. A group which did not yield a path gets the path's
// default, or nil.
func (g *Grouped) Aggregate(body AggregateBody) (*frame.Table, error) {
	var order []*outColumn
	index := make(map[string]*outColumn)
	for gi, group := range g.groups {
		r := NewReceiver(group.Rows)
		if err := body(r); err != nil {
			return nil, err
		}
		for _, nv := range r.Values() {
			if len(nv.Path()) == 0 {
				return nil, fmt.Errorf("Cannot yield a value without a column path")
			}
			key := nv.Path().String()
			c, ok := index[key]
			if !ok {
				c = &outColumn{path: nv.Path(), values: make([]interface{}, len(g.groups)), present: make([]bool, len(g.groups))}
				index[key] = c
				order = append(order, c)
			}
			c.values[gi] = nv.Resolve()
			c.present[gi] = true
			if vt, ok := nv.Type(); ok && !nv.GuessType() {
				c.declared = append(c.declared, vt)
			} else {
				c.guess = true
			}
			if c.defaultValue == nil {
				c.defaultValue = nv.Default()
			}
		}
	}

	root := newNode("")
	for i, k := range g.keys {
		values := make([]interface{}, len(g.groups))
		for gi, group := range g.groups {
			values[gi] = group.Key[i]
		}
		c, err := frame.NewValueColumn(g.keyPaths[i].Name(), values, k.ValueType())
		if err != nil {
			return nil, err
		}
		if err := root.insert(g.keyPaths[i], c); err != nil {
			return nil, err
		}
	}
	for _, c := range order {
		col, err := c.build()
		if err != nil {
			return nil, err
		}
		if err := root.insert(c.path, col); err != nil {
			return nil, err
		}
	}
	columns, err := root.columns()
	if err != nil {
		return nil, err
	}
	result, err := frame.NewTable(columns...)
	if err != nil {
		return nil, err
	}
	logging.With("groupby").Debug("Aggregated groups", "id", g.table.ID().String(), "groups", len(g.groups), "columns", len(order))
	return result, nil
}

// build fills in missing values and computes the ValueType of this column
func (c *outColumn) build() (*frame.ValueColumn, error) {
	for gi, present := range c.present {
		if !present {
			c.values[gi] = types.Normalize(c.defaultValue)
		}
	}
	if c.guess || len(c.declared) == 0 {
		return frame.InferValueColumn(c.path.Name(), c.values), nil
	}
	vt := types.CommonValueType(c.declared...)
	for _, v := range c.values {
		switch {
		case v == nil:
			vt.Nullable = true
		case !types.IsSubtype(types.TypeOf(v), vt.Type):
			// defaults need not match the declared type
			vt = types.CommonValueType(vt, types.ValueTypeOf(v))
		}
	}
	return frame.NewValueColumn(c.path.Name(), c.values, vt)
}

// node is a level of the column tree built from yielded paths
type node struct {
	name     string
	column   *frame.ValueColumn
	children []*node
	index    map[string]*node
}

func newNode(name string) *node {
	return &node{name: name, index: make(map[string]*node)}
}

func (n *node) insert(path frame.ColumnPath, col *frame.ValueColumn) error {
	cur := n
	for _, segment := range path.Parent() {
		child, ok := cur.index[segment]
		if !ok {
			child = newNode(segment)
			cur.index[segment] = child
			cur.children = append(cur.children, child)
		}
		if child.column != nil {
			return fmt.Errorf("Column %s is yielded both as a value and as a group", child.name)
		}
		cur = child
	}
	if existing, ok := cur.index[path.Name()]; ok {
		if existing.column == nil {
			return fmt.Errorf("Column %s is yielded both as a value and as a group", path)
		}
		names := make([]string, len(cur.children))
		for i, child := range cur.children {
			names[i] = child.name
		}
		return errors.DuplicateColumnNamesError{Names: names, Duplicates: []string{path.String()}}
	}
	leaf := newNode(path.Name())
	leaf.column = col
	cur.index[path.Name()] = leaf
	cur.children = append(cur.children, leaf)
	return nil
}

func (n *node) columns() ([]columnar.Column, error) {
	columns := make([]columnar.Column, 0, len(n.children))
	for _, child := range n.children {
		if child.column != nil {
			columns = append(columns, child.column)
			continue
		}
		inner, err := child.columns()
		if err != nil {
			return nil, err
		}
		table, err := frame.NewTable(inner...)
		if err != nil {
			return nil, err
		}
		group, err := frame.NewGroupColumn(child.name, table)
		if err != nil {
			return nil, err
		}
		columns = append(columns, group)
	}
	return columns, nil
}
