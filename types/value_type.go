package types

// ValueType is a Type together with a nullability flag. It describes the values of a
// column, either as declared or as computed from the values themselves.
type ValueType struct {
	Type     Type
	Nullable bool
}

// Of returns the non-nullable ValueType of t
func Of(t Type) ValueType {
	return ValueType{Type: t}
}

// NullableOf returns the nullable ValueType of t
func NullableOf(t Type) ValueType {
	return ValueType{Type: t, Nullable: true}
}

// WithNullable returns a copy of this ValueType with the given nullability
func (vt ValueType) WithNullable(nullable bool) ValueType {
	return ValueType{Type: vt.Type, Nullable: nullable}
}

// String renders this ValueType, marking nullable types with a trailing '?'
func (vt ValueType) String() string {
	if vt.Nullable {
		return string(vt.Type) + "?"
	}
	return string(vt.Type)
}

// IsAssignableTo returns true iff every value described by vt is also described by other
func (vt ValueType) IsAssignableTo(other ValueType) bool {
	if vt.Nullable && !other.Nullable {
		return false
	}
	return IsSubtype(vt.Type, other.Type)
}

// ValueTypeOf returns the ValueType of a single value
func ValueTypeOf(v interface{}) ValueType {
	t := TypeOf(v)
	return ValueType{Type: t, Nullable: t == Nothing}
}

// Conforms returns true iff v is exactly described by vt: nil for a nullable ValueType,
// or a value whose Type is vt.Type
func Conforms(v interface{}, vt ValueType) bool {
	if TypeOf(v) == Nothing {
		return vt.Nullable
	}
	return TypeOf(v) == vt.Type
}

// CommonValueType returns the nearest common ancestor of the given ValueTypes,
// nullable iff any of them is nullable
func CommonValueType(vts ...ValueType) ValueType {
	ts := make([]Type, len(vts))
	nullable := false
	for i, vt := range vts {
		ts[i] = vt.Type
		nullable = nullable || vt.Nullable
	}
	return ValueType{Type: CommonType(ts...), Nullable: nullable}
}

// ScanValueType computes the ValueType which best describes a sequence of values:
// the nearest common ancestor of their runtime Types, nullable iff any value is nil
func ScanValueType(values []interface{}) ValueType {
	seen := make(map[Type]struct{})
	var ts []Type
	nullable := false
	for _, v := range values {
		t := TypeOf(v)
		if t == Nothing {
			nullable = true
			continue
		}
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			ts = append(ts, t)
		}
	}
	return ValueType{Type: CommonType(ts...), Nullable: nullable}
}
