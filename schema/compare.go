package schema

import (
	"github.com/go-sif/columnar"
	"github.com/go-sif/columnar/types"
)

// CompareResult is the outcome of comparing a Schema a with a Schema b, from a's perspective
type CompareResult int

const (
	// Equal means a and b have the same columns with equal types
	Equal CompareResult = iota
	// IsSuper means a has every column of b, with types at least as wide, and possibly more
	IsSuper
	// IsDerived means b has every column of a, with types at least as wide, and possibly more
	IsDerived
	// None means neither Schema contains the other
	None
)

// String returns the name of this CompareResult
func (r CompareResult) String() string {
	switch r {
	case Equal:
		return "Equal"
	case IsSuper:
		return "IsSuper"
	case IsDerived:
		return "IsDerived"
	default:
		return "None"
	}
}

// IsSuperOrEqual returns true iff r is Equal or IsSuper
func (r CompareResult) IsSuperOrEqual() bool {
	return r == Equal || r == IsSuper
}

// IsDerivedOrEqual returns true iff r is Equal or IsDerived
func (r CompareResult) IsDerivedOrEqual() bool {
	return r == Equal || r == IsDerived
}

// Combine merges the results of comparing two parts of a Schema into the result for the whole
func (r CompareResult) Combine(other CompareResult) CompareResult {
	switch r {
	case Equal:
		return other
	case IsSuper:
		if other.IsSuperOrEqual() {
			return IsSuper
		}
	case IsDerived:
		if other.IsDerivedOrEqual() {
			return IsDerived
		}
	}
	return None
}

// Mode controls how strictly Schemas are compared
type Mode int

const (
	// Lenient allows every CompareResult at every level of nesting
	Lenient Mode = iota
	// Strict requires Schemas to match exactly, collapsing IsSuper and IsDerived to None
	Strict
	// StrictForNestedSchemas is Lenient for top-level columns and Strict for Group and Frame schemas
	StrictForNestedSchemas
)

// String returns the name of this Mode
func (m Mode) String() string {
	switch m {
	case Strict:
		return "STRICT"
	case StrictForNestedSchemas:
		return "STRICT_FOR_NESTED_SCHEMAS"
	default:
		return "LENIENT"
	}
}

func (m Mode) nested() Mode {
	if m == Lenient {
		return Lenient
	}
	return Strict
}

// Compare compares Schema a with Schema b, from a's perspective. Neither Schema is modified.
// A Value column whose type is assignable to its counterpart's (a subtype, or the non-nullable
// version of the same type) makes a derived from b, and the reverse makes a super of b.
func Compare(a, b *Schema, mode Mode) CompareResult {
	a, b = orEmpty(a), orEmpty(b)
	result := Equal
	for _, name := range a.names {
		other, ok := b.columns[name]
		if !ok {
			result = result.Combine(IsSuper)
		} else {
			result = result.Combine(compareColumns(a.columns[name], other, mode.nested()))
		}
		if result == None {
			return None
		}
	}
	for _, name := range b.names {
		if _, ok := a.columns[name]; !ok {
			result = result.Combine(IsDerived)
		}
	}
	if mode == Strict && result != Equal {
		return None
	}
	return result
}

func compareColumns(a, b ColumnSchema, mode Mode) CompareResult {
	if a.kind != b.kind {
		return None
	}
	switch a.kind {
	case columnar.ValueKind:
		return compareValueTypes(a.valueType, b.valueType)
	case columnar.GroupKind:
		return Compare(a.schema, b.schema, mode)
	case columnar.FrameKind:
		nullability := compareValueTypes(types.ValueType{Type: types.Any, Nullable: a.nullable}, types.ValueType{Type: types.Any, Nullable: b.nullable})
		return Compare(a.schema, b.schema, mode).Combine(nullability)
	}
	return None
}

func compareValueTypes(a, b types.ValueType) CompareResult {
	aToB := a.IsAssignableTo(b)
	bToA := b.IsAssignableTo(a)
	switch {
	case aToB && bToA:
		return Equal
	case aToB:
		return IsDerived
	case bToA:
		return IsSuper
	}
	return None
}
