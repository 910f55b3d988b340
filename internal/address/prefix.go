package address

// Prefix anchors a pointer: either a path relative to some base location
// or an absolute location that ignores the base. The zero value is the
// empty relative prefix.
type Prefix struct {
	absolute bool
	rel      Path
	abs      Location
}

// Named prefix constants.
var (
	// EmptyPrefix is the zero-length relative prefix ("").
	EmptyPrefix = Prefix{}
	// CurrentPrefix is the relative "." prefix.
	CurrentPrefix = Prefix{rel: Path{elems: []Elem{Current}}}
	// RootPrefix is the absolute prefix at the site root ("/").
	RootPrefix = Prefix{absolute: true}
)

// Relative wraps a path as a base-relative prefix.
func Relative(p Path) Prefix { return Prefix{rel: p} }

// Absolute wraps a location as a base-independent prefix.
func Absolute(l Location) Prefix { return Prefix{absolute: true, abs: l} }

// Between computes the canonical minimal prefix that expresses to when
// standing at from: ascend to the common ancestor, then descend. When the
// relative form is empty or no longer than the absolute form it wins;
// otherwise the absolute location is used. Ties prefer the relative form.
func Between(from, to Location) Prefix {
	common := from.CommonPrefix(to)
	up := from.Depth() - common.Depth()
	down := to.Names()[common.Depth():]

	elems := make([]Elem, 0, up+len(down))
	for i := 0; i < up; i++ {
		elems = append(elems, Parent)
	}
	for _, n := range down {
		elems = append(elems, Child(n))
	}
	if len(elems) == 0 {
		return EmptyPrefix
	}
	if len(elems) <= to.Depth() {
		return Relative(Path{elems: elems})
	}
	return Absolute(to)
}

// IsAbsolute reports whether the prefix ignores its base.
func (p Prefix) IsAbsolute() bool { return p.absolute }

// RelativePath returns the wrapped path for a relative prefix.
func (p Prefix) RelativePath() (Path, bool) {
	if p.absolute {
		return Path{}, false
	}
	return p.rel, true
}

// AbsoluteLocation returns the wrapped location for an absolute prefix.
func (p Prefix) AbsoluteLocation() (Location, bool) {
	if !p.absolute {
		return Location{}, false
	}
	return p.abs, true
}

// Location resolves the prefix against a base. A relative prefix appends
// its path to the base and resolves; it fails when that resolution escapes
// the root. An absolute prefix ignores the base entirely.
func (p Prefix) Location(base Location) (Location, error) {
	if p.absolute {
		return p.abs, nil
	}
	return LocationOf(base.Path().Concat(p.rel))
}

// Equal compares prefixes structurally.
func (p Prefix) Equal(q Prefix) bool {
	if p.absolute != q.absolute {
		return false
	}
	if p.absolute {
		return p.abs.Equal(q.abs)
	}
	return p.rel.Equal(q.rel)
}

// String renders the prefix as the leading portion of an address: the bare
// path for a relative prefix, a "/"-led path for an absolute one.
func (p Prefix) String() string {
	if p.absolute {
		return "/" + p.abs.String()
	}
	return p.rel.String()
}
