package frame

import "strings"

// ColumnPath addresses a column hierarchically, descending through Group columns
type ColumnPath []string

// ParsePath splits a dotted column path, such as "address.city"
func ParsePath(path string) ColumnPath {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Path builds a ColumnPath from its segments
func Path(segments ...string) ColumnPath {
	return ColumnPath(segments)
}

// Name returns the last segment of this ColumnPath
func (p ColumnPath) Name() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns this ColumnPath without its last segment
func (p ColumnPath) Parent() ColumnPath {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// String joins the segments of this ColumnPath with dots
func (p ColumnPath) String() string {
	return strings.Join(p, ".")
}
