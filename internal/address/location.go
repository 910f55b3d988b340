package address

import "errors"

// ErrEscapesRoot is returned when a path would resolve above the site root.
var ErrEscapesRoot = errors.New("address: path escapes the site root")

// Location is an absolute, fully resolved coordinate in the site tree: a
// sequence of child names anchored at the root. The zero value is the root.
type Location struct {
	names []Name
}

// Root is the location of the site root.
var Root = Location{}

// LocationOf resolves p against the root. It fails when resolution would
// have to ascend above the root; that marks a reference escaping the site
// boundary, not a crash.
func LocationOf(p Path) (Location, error) {
	r := p.Resolved()
	names := make([]Name, 0, r.Len())
	for _, e := range r.elems {
		if e.Kind == ElemParent {
			return Location{}, ErrEscapesRoot
		}
		names = append(names, e.Name)
	}
	if len(names) == 0 {
		return Root, nil
	}
	return Location{names: names}, nil
}

// ResolvedLocation is the total variant of LocationOf: ascent past the
// root is clamped at the root instead of failing. Used where non-escape is
// already guaranteed or deliberately forgiven (the absolute boundary).
func ResolvedLocation(p Path) Location {
	r := p.Resolved()
	names := make([]Name, 0, r.Len())
	for _, e := range r.elems {
		if e.Kind == ElemParent {
			continue
		}
		names = append(names, e.Name)
	}
	if len(names) == 0 {
		return Root
	}
	return Location{names: names}
}

// LocationAt builds a location directly from root-to-leaf names.
func LocationAt(names ...Name) Location {
	out := make([]Name, 0, len(names))
	for _, n := range names {
		if n.IsZero() {
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return Root
	}
	return Location{names: out}
}

// IsRoot reports whether l is the site root.
func (l Location) IsRoot() bool { return len(l.names) == 0 }

// Depth is the number of tree edges between l and the root.
func (l Location) Depth() int { return len(l.names) }

// Names returns the ordered name segments from the root down to l.
func (l Location) Names() []Name {
	if len(l.names) == 0 {
		return nil
	}
	out := make([]Name, len(l.names))
	copy(out, l.names)
	return out
}

// Name returns the last segment; ok is false at the root.
func (l Location) Name() (Name, bool) {
	if len(l.names) == 0 {
		return Name{}, false
	}
	return l.names[len(l.names)-1], true
}

// Parent drops the last segment; ok is false at the root.
func (l Location) Parent() (Location, bool) {
	if len(l.names) == 0 {
		return Location{}, false
	}
	if len(l.names) == 1 {
		return Root, true
	}
	out := make([]Name, len(l.names)-1)
	copy(out, l.names)
	return Location{names: out}, true
}

// Append returns the child location under name n. A zero name is a no-op.
func (l Location) Append(n Name) Location {
	if n.IsZero() {
		return l
	}
	out := make([]Name, 0, len(l.names)+1)
	out = append(out, l.names...)
	out = append(out, n)
	return Location{names: out}
}

// Path returns l as a path of child steps from the root.
func (l Location) Path() Path {
	if len(l.names) == 0 {
		return Path{}
	}
	elems := make([]Elem, len(l.names))
	for i, n := range l.names {
		elems[i] = Child(n)
	}
	return Path{elems: elems}
}

// CommonPrefix returns the longest shared ancestor of l and o. Commutative.
func (l Location) CommonPrefix(o Location) Location {
	limit := min(len(l.names), len(o.names))
	i := 0
	for i < limit && l.names[i].Equal(o.names[i]) {
		i++
	}
	if i == 0 {
		return Root
	}
	out := make([]Name, i)
	copy(out, l.names)
	return Location{names: out}
}

// Distance is the number of tree edges between l and o, routed through
// their common ancestor. Commutative; Distance(l, l) is zero.
func (l Location) Distance(o Location) int {
	common := l.CommonPrefix(o).Depth()
	return (len(l.names) - common) + (len(o.names) - common)
}

// Contains reports whether o is l itself or lies below l.
func (l Location) Contains(o Location) bool {
	if len(l.names) > len(o.names) {
		return false
	}
	for i, n := range l.names {
		if !n.Equal(o.names[i]) {
			return false
		}
	}
	return true
}

// Equal compares the underlying absolute paths.
func (l Location) Equal(o Location) bool {
	if len(l.names) != len(o.names) {
		return false
	}
	for i, n := range l.names {
		if !n.Equal(o.names[i]) {
			return false
		}
	}
	return true
}

// Compare orders locations lexicographically by segment; ancestors sort
// before descendants.
func (l Location) Compare(o Location) int {
	limit := min(len(l.names), len(o.names))
	for i := 0; i < limit; i++ {
		if c := l.names[i].Compare(o.names[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(l.names) < len(o.names):
		return -1
	case len(l.names) > len(o.names):
		return 1
	default:
		return 0
	}
}

// String renders the canonical trailing-slash form; the root renders as "".
func (l Location) String() string { return l.Path().String() }
