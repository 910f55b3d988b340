package address

import "strings"

// ElemKind discriminates the three navigation steps a Path is made of.
type ElemKind uint8

const (
	// ElemChild descends into the named child.
	ElemChild ElemKind = iota
	// ElemCurrent stays in place (".").
	ElemCurrent
	// ElemParent ascends one level ("..").
	ElemParent
)

// Elem is a single navigation step. Name is set only for ElemChild.
type Elem struct {
	Kind ElemKind
	Name Name
}

// Child returns a step descending into the named child.
func Child(n Name) Elem { return Elem{Kind: ElemChild, Name: n} }

// Current and Parent are the "." and ".." steps.
var (
	Current = Elem{Kind: ElemCurrent}
	Parent  = Elem{Kind: ElemParent}
)

// Equal compares steps; child steps compare by canonical name.
func (e Elem) Equal(o Elem) bool {
	return e.Kind == o.Kind && e.Name.Equal(o.Name)
}

// String renders one step without a separator.
func (e Elem) String() string {
	switch e.Kind {
	case ElemCurrent:
		return "."
	case ElemParent:
		return ".."
	default:
		return e.Name.normal
	}
}

// Path is an ordered sequence of relative navigation steps. The zero value
// is the empty path. Paths are immutable values; all operations return new
// paths.
type Path struct {
	elems []Elem
}

// NewPath builds a path from explicit steps.
func NewPath(elems ...Elem) Path {
	if len(elems) == 0 {
		return Path{}
	}
	out := make([]Elem, len(elems))
	copy(out, elems)
	return Path{elems: out}
}

// ParsePath splits s on "/" into a path plus an optional trailing token.
// A final segment not terminated by a slash and not a bare "." or ".."
// is returned as the suffix instead of a path step; callers use it to
// tell a file reference apart from a directory step. Empty segments and
// segments with no usable name characters contribute no step, so parsing
// is total over all inputs.
func ParsePath(s string) (Path, string) {
	if s == "" {
		return Path{}, ""
	}
	segs := strings.Split(s, "/")
	suffix := ""
	if last := segs[len(segs)-1]; last != "" && last != "." && last != ".." {
		suffix = last
		segs = segs[:len(segs)-1]
	}
	var elems []Elem
	for _, seg := range segs {
		switch seg {
		case "":
			continue
		case ".":
			elems = append(elems, Current)
		case "..":
			elems = append(elems, Parent)
		default:
			n, err := ParseName(seg)
			if err != nil {
				continue
			}
			elems = append(elems, Child(n))
		}
	}
	return Path{elems: elems}, suffix
}

// Len returns the number of steps.
func (p Path) Len() int { return len(p.elems) }

// IsEmpty reports whether the path has no steps.
func (p Path) IsEmpty() bool { return len(p.elems) == 0 }

// Elems returns a copy of the steps.
func (p Path) Elems() []Elem {
	if len(p.elems) == 0 {
		return nil
	}
	out := make([]Elem, len(p.elems))
	copy(out, p.elems)
	return out
}

// Normalized drops every "." step, except that a path consisting of
// nothing but "." steps keeps a single one: "./" still names the current
// location rather than no location. Idempotent.
func (p Path) Normalized() Path {
	out := make([]Elem, 0, len(p.elems))
	for _, e := range p.elems {
		if e.Kind == ElemCurrent {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		if len(p.elems) > 0 {
			return Path{elems: []Elem{Current}}
		}
		return Path{}
	}
	return Path{elems: out}
}

// Resolved cancels each ".." against the nearest preceding child step and
// drops "." steps. Leading ".." steps with nothing to cancel are kept, so
// a resolved path may still ascend from wherever it is applied. Idempotent.
func (p Path) Resolved() Path {
	out := make([]Elem, 0, len(p.elems))
	for _, e := range p.elems {
		switch e.Kind {
		case ElemCurrent:
		case ElemParent:
			if n := len(out); n > 0 && out[n-1].Kind == ElemChild {
				out = out[:n-1]
			} else {
				out = append(out, e)
			}
		default:
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return Path{}
	}
	return Path{elems: out}
}

// Concat appends q's steps after p's.
func (p Path) Concat(q Path) Path {
	if q.IsEmpty() {
		return p
	}
	if p.IsEmpty() {
		return q
	}
	out := make([]Elem, 0, len(p.elems)+len(q.elems))
	out = append(out, p.elems...)
	out = append(out, q.elems...)
	return Path{elems: out}
}

// Append adds a child step for n at the end. A zero name is a no-op.
func (p Path) Append(n Name) Path {
	if n.IsZero() {
		return p
	}
	out := make([]Elem, 0, len(p.elems)+1)
	out = append(out, p.elems...)
	out = append(out, Child(n))
	return Path{elems: out}
}

// Prepend adds a child step for n at the front. A zero name is a no-op.
func (p Path) Prepend(n Name) Path {
	if n.IsZero() {
		return p
	}
	out := make([]Elem, 0, len(p.elems)+1)
	out = append(out, Child(n))
	out = append(out, p.elems...)
	return Path{elems: out}
}

// Equal compares paths step by step.
func (p Path) Equal(q Path) bool {
	if len(p.elems) != len(q.elems) {
		return false
	}
	for i, e := range p.elems {
		if !e.Equal(q.elems[i]) {
			return false
		}
	}
	return true
}

// String renders the canonical form: every step followed by "/". The empty
// path renders as "".
func (p Path) String() string {
	var b strings.Builder
	for _, e := range p.elems {
		b.WriteString(e.String())
		b.WriteByte('/')
	}
	return b.String()
}
