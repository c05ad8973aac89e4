package frame

import (
	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/config"
	errors "github.com/go-sif/columnar/errors"
	"github.com/go-sif/columnar/schema"
	"github.com/hashicorp/go-multierror"
)

// FrameColumn holds one independent Table per row. A nil Table marks an absent frame.
type FrameColumn struct {
	name     string
	frames   []*Table
	schema   *schema.Schema
	declared bool
	nullable bool
}

type frameColumnOptions struct {
	declared   *schema.Schema
	allowNulls bool
}

// FrameColumnOption configures NewFrameColumn
type FrameColumnOption func(*frameColumnOptions)

// WithSchema declares the Schema every frame must satisfy. A frame satisfies it when
// the frame's Schema compares Equal or IsSuper to it.
func WithSchema(s *schema.Schema) FrameColumnOption {
	return func(o *frameColumnOptions) {
		o.declared = s
	}
}

// WithOptions applies configuration, such as whether nil frames are permitted
func WithOptions(opts *config.Options) FrameColumnOption {
	return func(o *frameColumnOptions) {
		if opts != nil {
			o.allowNulls = opts.AllowNullFrames
		}
	}
}

// NewFrameColumn is a factory for FrameColumns. Without a declared Schema, the element
// Schema is the intersection of the frames' Schemas. Every offending frame is reported.
func NewFrameColumn(name string, frames []*Table, opts ...FrameColumnOption) (*FrameColumn, error) {
	o := &frameColumnOptions{allowNulls: config.Default().AllowNullFrames}
	for _, opt := range opts {
		opt(o)
	}

	var multierr *multierror.Error
	nullable := false
	schemas := make([]*schema.Schema, 0, len(frames))
	for i, f := range frames {
		if f == nil {
			nullable = true
			if !o.allowNulls {
				multierr = multierror.Append(multierr, errors.NullFrameError{Column: name, Row: i})
			}
			continue
		}
		s := SchemaOf(f)
		if o.declared != nil {
			if r := schema.Compare(s, o.declared, schema.Lenient); !r.IsSuperOrEqual() {
				multierr = multierror.Append(multierr, errors.FrameSchemaMismatchError{Column: name, Row: i, Result: r.String()})
			}
		}
		schemas = append(schemas, s)
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}

	elementSchema := o.declared
	if elementSchema == nil {
		elementSchema = schema.Intersect(schemas...)
	}
	stored := make([]*Table, len(frames))
	copy(stored, frames)
	return &FrameColumn{name: name, frames: stored, schema: elementSchema, declared: o.declared != nil, nullable: nullable}, nil
}

// Name returns the name of this FrameColumn
func (c *FrameColumn) Name() string {
	return c.name
}

// Kind returns columnar.FrameKind
func (c *FrameColumn) Kind() columnar.ColumnKind {
	return columnar.FrameKind
}

// Size returns the number of frames in this FrameColumn
func (c *FrameColumn) Size() int {
	return len(c.frames)
}

// Get returns the Table at row i, as an interface{} which is nil for absent frames
func (c *FrameColumn) Get(i int) (interface{}, error) {
	f, err := c.Frame(i)
	if err != nil || f == nil {
		return nil, err
	}
	return f, nil
}

// Frame returns the Table at row i, or nil if it is absent
func (c *FrameColumn) Frame(i int) (*Table, error) {
	if i < 0 || i >= len(c.frames) {
		return nil, errors.IndexOutOfRangeError{Index: i, Size: len(c.frames)}
	}
	return c.frames[i], nil
}

// Schema returns the element Schema of this FrameColumn
func (c *FrameColumn) Schema() *schema.Schema {
	return c.schema
}

// Nullable returns true iff any frame is absent
func (c *FrameColumn) Nullable() bool {
	return c.nullable
}

// take builds a FrameColumn from the frames at the given indices. Nullability and an
// undeclared element Schema are recomputed from the selected frames.
func (c *FrameColumn) take(indices []int) (*FrameColumn, error) {
	frames := make([]*Table, len(indices))
	for j, i := range indices {
		frames[j] = c.frames[i]
	}
	if c.declared {
		return NewFrameColumn(c.name, frames, WithSchema(c.schema))
	}
	return NewFrameColumn(c.name, frames)
}

// Rename returns a copy of this FrameColumn with a different name
func (c *FrameColumn) Rename(name string) columnar.Column {
	return &FrameColumn{name: name, frames: c.frames, schema: c.schema, declared: c.declared, nullable: c.nullable}
}
