package types

import (
	"fmt"
	"sync"
)

var (
	hierarchy   = builtinHierarchy()
	hierarchyMu sync.Mutex
	frozen      bool
	freezeOnce  sync.Once
)

func builtinHierarchy() *Lattice {
	l := newLattice(Any)
	l.add(Comparable, Any)
	l.add(Number, Comparable)
	for _, t := range []Type{Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64, BigInt, Decimal} {
		l.add(t, Number)
	}
	for _, t := range []Type{String, Bool, Time, Duration} {
		l.add(t, Comparable)
	}
	return l
}

// Register adds a Type to the process-wide type hierarchy, below the given parents
// (Any when none are given). Registration must happen during program initialization:
// the hierarchy becomes read-only on first lookup, and registering afterwards panics.
func Register(t Type, parents ...Type) {
	hierarchyMu.Lock()
	defer hierarchyMu.Unlock()
	if frozen {
		panic(fmt.Sprintf("Cannot register type %s, the type hierarchy is already in use", t))
	}
	if t == Nothing || hierarchy.Contains(t) {
		panic(fmt.Sprintf("Type %s is already registered", t))
	}
	if len(parents) == 0 {
		parents = []Type{Any}
	}
	for _, p := range parents {
		if !hierarchy.Contains(p) {
			panic(fmt.Sprintf("Cannot register type %s below unknown type %s", t, p))
		}
	}
	hierarchy.add(t, parents...)
}

// Hierarchy returns the process-wide type hierarchy, freezing it against further registration
func Hierarchy() *Lattice {
	freezeOnce.Do(func() {
		hierarchyMu.Lock()
		frozen = true
		hierarchyMu.Unlock()
	})
	return hierarchy
}

// IsSubtype returns true iff values of Type t may be stored where parent is expected
func IsSubtype(t Type, parent Type) bool {
	return Hierarchy().IsSubtype(t, parent)
}

// CommonType returns the nearest common ancestor of the given Types in the type hierarchy.
// Nothing is ignored, and the CommonType of no Types is Nothing.
func CommonType(ts ...Type) Type {
	l := Hierarchy()
	result := Nothing
	for _, t := range ts {
		nearest, ok := l.Nearest(result, t)
		if !ok {
			return Any
		}
		result = nearest
	}
	return result
}
