package schema

import (
	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/types"
)

// Intersect returns the Schema of the columns shared by every given Schema, in the
// order of the first one. Shared Value columns get the common ValueType of their
// types, nested schemas are intersected recursively, and a column whose kind
// differs between Schemas is dropped. nil Schemas are ignored.
func Intersect(schemas ...*Schema) *Schema {
	var present []*Schema
	for _, s := range schemas {
		if s != nil {
			present = append(present, s)
		}
	}
	if len(present) == 0 {
		return Empty()
	}

	var fields []Field
	for _, name := range present[0].names {
		shared := make([]ColumnSchema, 0, len(present))
		for _, s := range present {
			c, ok := s.columns[name]
			if !ok || c.kind != present[0].columns[name].kind {
				break
			}
			shared = append(shared, c)
		}
		if len(shared) == len(present) {
			fields = append(fields, Field{Name: name, Column: intersectColumns(shared)})
		}
	}
	return MustNew(fields...)
}

func intersectColumns(cols []ColumnSchema) ColumnSchema {
	switch cols[0].kind {
	case columnar.ValueKind:
		vts := make([]types.ValueType, len(cols))
		for i, c := range cols {
			vts[i] = c.valueType
		}
		return Value(types.CommonValueType(vts...))
	case columnar.GroupKind:
		return Group(Intersect(nestedSchemas(cols)...))
	default:
		nullable := false
		for _, c := range cols {
			nullable = nullable || c.nullable
		}
		return Frame(Intersect(nestedSchemas(cols)...), nullable)
	}
}

func nestedSchemas(cols []ColumnSchema) []*Schema {
	nested := make([]*Schema, len(cols))
	for i, c := range cols {
		nested[i] = c.schema
	}
	return nested
}
