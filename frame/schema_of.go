package frame

import (
	"github.com/go-sif/columnar/logging"
	"github.com/go-sif/columnar/schema"
)

// SchemaOf derives the Schema of a Table from its current columns. It is recomputed on every call.
func SchemaOf(t *Table) *schema.Schema {
	fields := make([]schema.Field, len(t.columns))
	for i, c := range t.columns {
		var cs schema.ColumnSchema
		switch col := c.(type) {
		case *ValueColumn:
			cs = schema.Value(col.ValueType())
		case *GroupColumn:
			cs = schema.Group(SchemaOf(col.Table()))
		case *FrameColumn:
			cs = schema.Frame(col.Schema(), col.Nullable())
		}
		fields[i] = schema.Field{Name: c.Name(), Column: cs}
	}
	logging.With("frame").Debug("Derived schema", "id", t.id.String(), "columns", len(fields))
	// column names are unique in a Table
	return schema.MustNew(fields...)
}

// Schema derives the Schema of this Table
func (t *Table) Schema() *schema.Schema {
	return SchemaOf(t)
}
