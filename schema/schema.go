package schema

import (
	"fmt"
	"strings"

	"github.com/go-sif/columnar"
	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/types"
)

// ColumnSchema describes a single column: a ValueType for Value columns, a nested Schema
// for Group columns, and a nested Schema plus element nullability for Frame columns
type ColumnSchema struct {
	kind      columnar.ColumnKind
	valueType types.ValueType
	schema    *Schema
	nullable  bool
}

// Value returns the ColumnSchema of a Value column
func Value(vt types.ValueType) ColumnSchema {
	return ColumnSchema{kind: columnar.ValueKind, valueType: vt}
}

// Group returns the ColumnSchema of a Group column
func Group(s *Schema) ColumnSchema {
	return ColumnSchema{kind: columnar.GroupKind, schema: orEmpty(s)}
}

// Frame returns the ColumnSchema of a Frame column. nullable describes whether
// individual frames may be absent.
func Frame(s *Schema, nullable bool) ColumnSchema {
	return ColumnSchema{kind: columnar.FrameKind, schema: orEmpty(s), nullable: nullable}
}

// Kind returns the ColumnKind this ColumnSchema describes
func (c ColumnSchema) Kind() columnar.ColumnKind {
	return c.kind
}

// ValueType returns the ValueType of a Value column
func (c ColumnSchema) ValueType() types.ValueType {
	return c.valueType
}

// Schema returns the nested Schema of a Group or Frame column, and nil for Value columns
func (c ColumnSchema) Schema() *Schema {
	return c.schema
}

// Nullable returns true iff this describes a nullable Value column or a Frame column with absent frames
func (c ColumnSchema) Nullable() bool {
	if c.kind == columnar.ValueKind {
		return c.valueType.Nullable
	}
	return c.nullable
}

// Field names a ColumnSchema
type Field struct {
	Name   string
	Column ColumnSchema
}

// Schema is an ordered mapping from column names to ColumnSchemas. Schemas are immutable.
type Schema struct {
	names   []string
	columns map[string]ColumnSchema
}

// Empty returns a Schema without columns
func Empty() *Schema {
	return &Schema{columns: make(map[string]ColumnSchema)}
}

func orEmpty(s *Schema) *Schema {
	if s == nil {
		return Empty()
	}
	return s
}

// New is a factory for Schemas. Field names must be unique.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{
		names:   make([]string, 0, len(fields)),
		columns: make(map[string]ColumnSchema, len(fields)),
	}
	var duplicates []string
	for _, f := range fields {
		if _, exists := s.columns[f.Name]; exists {
			duplicates = append(duplicates, f.Name)
			continue
		}
		s.names = append(s.names, f.Name)
		s.columns[f.Name] = f.Column
	}
	if len(duplicates) > 0 {
		names := make([]string, len(fields))
		for i, f := range fields {
			names[i] = f.Name
		}
		return nil, errors.DuplicateColumnNamesError{Names: names, Duplicates: duplicates}
	}
	return s, nil
}

// MustNew is like New, but panics on duplicate names
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of columns in this Schema
func (s *Schema) Len() int {
	return len(s.names)
}

// Names returns the column names of this Schema, in order
func (s *Schema) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// HasColumn returns true iff this Schema contains a column with the given name
func (s *Schema) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Column returns the ColumnSchema with the given name
func (s *Schema) Column(name string) (ColumnSchema, error) {
	c, ok := s.columns[name]
	if !ok {
		return ColumnSchema{}, errors.ColumnNotFoundError{Name: name, Message: "Schema does not contain a column with this name"}
	}
	return c, nil
}

// Fields returns the columns of this Schema, in order
func (s *Schema) Fields() []Field {
	fields := make([]Field, len(s.names))
	for i, name := range s.names {
		fields[i] = Field{Name: name, Column: s.columns[name]}
	}
	return fields
}

// Compare compares this Schema with another one, from this Schema's perspective
func (s *Schema) Compare(other *Schema, mode Mode) CompareResult {
	return Compare(s, other, mode)
}

// String renders this Schema one column per line, nesting Group and Frame schemas by indentation
func (s *Schema) String() string {
	var b strings.Builder
	s.render(&b, 0)
	return b.String()
}

func (s *Schema) render(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range s.names {
		c := s.columns[name]
		switch c.kind {
		case columnar.ValueKind:
			fmt.Fprintf(b, "%s%s: %s\n", indent, name, c.valueType)
		case columnar.GroupKind:
			fmt.Fprintf(b, "%s%s: group\n", indent, name)
			c.schema.render(b, depth+1)
		case columnar.FrameKind:
			marker := ""
			if c.nullable {
				marker = "?"
			}
			fmt.Fprintf(b, "%s%s: frame%s\n", indent, name, marker)
			c.schema.render(b, depth+1)
		}
	}
}
