package types

// Lattice is a directed acyclic graph of Types, in which every Type points to its
// direct supertypes. Vertices are ranked by registration order, which breaks
// ties between equally near common ancestors.
type Lattice struct {
	parents map[Type][]Type
	rank    map[Type]int
	// root, when set, is the implicit parent of every unregistered Type
	root Type
}

func newLattice(root Type) *Lattice {
	l := &Lattice{
		parents: make(map[Type][]Type),
		rank:    make(map[Type]int),
		root:    root,
	}
	if root != "" {
		l.add(root)
	}
	return l
}

func (l *Lattice) add(t Type, parents ...Type) {
	for _, p := range parents {
		if _, ok := l.rank[p]; !ok {
			l.rank[p] = len(l.rank)
		}
	}
	if _, ok := l.rank[t]; !ok {
		l.rank[t] = len(l.rank)
	}
	l.parents[t] = append(l.parents[t], parents...)
}

// Contains returns true iff t is a vertex of this Lattice
func (l *Lattice) Contains(t Type) bool {
	_, ok := l.rank[t]
	return ok
}

// Parents returns the direct supertypes of t
func (l *Lattice) Parents(t Type) []Type {
	if ps, ok := l.parents[t]; ok {
		return ps
	}
	if l.root != "" && t != l.root && !l.Contains(t) {
		return []Type{l.root}
	}
	return nil
}

// distances returns every ancestor of t, t itself included, with its distance from t in edges
func (l *Lattice) distances(t Type) map[Type]int {
	dist := map[Type]int{t: 0}
	queue := []Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range l.Parents(cur) {
			if _, seen := dist[p]; !seen {
				dist[p] = dist[cur] + 1
				queue = append(queue, p)
			}
		}
	}
	return dist
}

// IsSubtype returns true iff parent is t or one of its ancestors. Nothing is a subtype of everything.
func (l *Lattice) IsSubtype(t Type, parent Type) bool {
	if t == Nothing || t == parent {
		return true
	}
	_, ok := l.distances(t)[parent]
	return ok
}

// Nearest returns the nearest common ancestor of a and b. Among common ancestors
// none of which descends from another, the one with the smallest total distance
// from a and b wins, then the one registered first, then the lexicographically
// smallest name. The second return value is false when a and b share no ancestor.
func (l *Lattice) Nearest(a, b Type) (Type, bool) {
	switch {
	case a == b:
		return a, true
	case a == Nothing:
		return b, true
	case b == Nothing:
		return a, true
	}
	da := l.distances(a)
	db := l.distances(b)
	common := make(map[Type]int)
	for t, d := range da {
		if d2, ok := db[t]; ok {
			common[t] = d + d2
		}
	}
	if len(common) == 0 {
		return "", false
	}

	var best Type
	found := false
	for c := range common {
		if l.hasCommonDescendant(c, common) {
			continue
		}
		if !found || l.nearer(c, best, common) {
			best = c
			found = true
		}
	}
	return best, found
}

// hasCommonDescendant returns true iff another member of common descends from c
func (l *Lattice) hasCommonDescendant(c Type, common map[Type]int) bool {
	for other := range common {
		if other == c {
			continue
		}
		if _, ok := l.distances(other)[c]; ok {
			return true
		}
	}
	return false
}

func (l *Lattice) nearer(a, b Type, common map[Type]int) bool {
	if common[a] != common[b] {
		return common[a] < common[b]
	}
	if ra, rb := l.rankOf(a), l.rankOf(b); ra != rb {
		return ra < rb
	}
	return a < b
}

func (l *Lattice) rankOf(t Type) int {
	if r, ok := l.rank[t]; ok {
		return r
	}
	return len(l.rank)
}
