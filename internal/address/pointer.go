package address

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

// ErrKindMismatch is returned when a pointer cannot be narrowed to the
// requested content type.
var ErrKindMismatch = errors.New("address: pointer kind mismatch")

// Variant discriminates the three pointer forms.
type Variant uint8

const (
	// VariantSearch is a symbolic reference: a kind and name to be looked
	// up under a prefix later, against an index.
	VariantSearch Variant = iota
	// VariantTarget is a fully specified reference to a known location.
	VariantTarget
	// VariantExternal is an opaque external URL.
	VariantExternal
)

// String names the variant for logs and API payloads.
func (v Variant) String() string {
	switch v {
	case VariantTarget:
		return "target"
	case VariantExternal:
		return "external"
	default:
		return "search"
	}
}

// externalPattern matches absolute URLs: a scheme followed by a colon
// (https:, mailto:, ...) or a protocol-relative "//host" form.
var externalPattern = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9+.-]*:|//)`)

// Pointer is a kind-tagged reference to an entity or asset. Pointers are
// immutable values with structural equality.
type Pointer struct {
	kind    Kind
	variant Variant
	prefix  Prefix
	name    Name   // search name
	suffix  string // asset target filename
	url     string // external URL
}

// Search builds a symbolic pointer: a thing of this kind named name,
// somewhere under prefix.
func (k Kind) Search(prefix Prefix, name Name) Pointer {
	return Pointer{kind: k, variant: VariantSearch, prefix: prefix, name: name}
}

// SearchFor is Search with the empty prefix.
func (k Kind) SearchFor(name Name) Pointer {
	return k.Search(EmptyPrefix, name)
}

// Target builds a fully specified pointer at prefix. Entity targets point
// at the location itself; asset targets point at the kind's canonical
// file in that directory.
func (k Kind) Target(prefix Prefix) Pointer {
	p := Pointer{kind: k, variant: VariantTarget, prefix: prefix}
	if !k.entity {
		p.suffix = k.CanonicalFilename()
	}
	return p
}

// TargetAt is Target anchored at an absolute location.
func (k Kind) TargetAt(l Location) Pointer {
	return k.Target(Absolute(l))
}

// File builds an asset target with an explicit filename suffix.
func (k Kind) File(prefix Prefix, filename string) Pointer {
	return Pointer{kind: k, variant: VariantTarget, prefix: prefix, suffix: filename}
}

// External builds an external pointer carrying the raw URL.
func (k Kind) External(url string) Pointer {
	return Pointer{kind: k, variant: VariantExternal, url: url}
}

// Parse interprets free-form address text as a pointer of kind k. It is
// total: every input produces some pointer.
//
//	""            target at the empty prefix
//	"."           target at the current location
//	"/"           target at the root
//	"name"        search for "name" at the empty prefix
//	"a/name"      search for "name" under "a"
//	"name/"       target at "name/"
//	"style.css"   asset target when the token is the kind's canonical file
//	"https://…"   external, kept verbatim
//
// A directory-only address for an asset kind becomes a search for the
// kind's canonical token ("the" stylesheet of that directory). Absolute
// prefixes that would ascend past the root clamp to the root rather than
// failing.
func Parse(k Kind, text string) Pointer {
	if externalPattern.MatchString(text) {
		return k.External(text)
	}

	absolute := len(text) > 0 && text[0] == '/'
	body := text
	if absolute {
		body = text[1:]
	}
	path, token := ParsePath(body)

	var prefix Prefix
	if absolute {
		prefix = Absolute(ResolvedLocation(path))
	} else {
		prefix = Relative(path)
	}

	if token == "" {
		if k.entity {
			return Pointer{kind: k, variant: VariantTarget, prefix: prefix}
		}
		return k.Search(prefix, MustName(k.token))
	}

	if k.entity {
		name, err := ParseName(token)
		if err != nil {
			// Token had no usable characters; fall back to the directory.
			return Pointer{kind: k, variant: VariantTarget, prefix: prefix}
		}
		return k.Search(prefix, name)
	}

	if k.isCanonicalFile(token) {
		return k.File(prefix, token)
	}
	name, err := ParseName(token)
	if err != nil {
		return k.Search(prefix, MustName(k.token))
	}
	return k.Search(prefix, name)
}

// Kind returns the pointer's kind tag.
func (p Pointer) Kind() Kind { return p.kind }

// Variant returns the pointer's form.
func (p Pointer) Variant() Variant { return p.variant }

// Prefix returns the anchor of an internal pointer; external pointers
// carry the zero prefix.
func (p Pointer) Prefix() Prefix { return p.prefix }

// SearchName returns the symbolic name of a search pointer.
func (p Pointer) SearchName() (Name, bool) {
	if p.variant != VariantSearch {
		return Name{}, false
	}
	return p.name, true
}

// Suffix returns the filename suffix of an asset target.
func (p Pointer) Suffix() (string, bool) {
	if p.variant != VariantTarget || p.kind.entity {
		return "", false
	}
	return p.suffix, true
}

// URL returns the raw URL of an external pointer.
func (p Pointer) URL() (string, bool) {
	if p.variant != VariantExternal {
		return "", false
	}
	return p.url, true
}

// IsInternal reports whether the pointer refers into the site tree.
func (p Pointer) IsInternal() bool { return p.variant != VariantExternal }

// WithPrefix replaces the anchor only, keeping kind and referent. Used to
// re-root a reference after computing its minimal prefix. External
// pointers are returned unchanged.
func (p Pointer) WithPrefix(prefix Prefix) Pointer {
	if p.variant == VariantExternal {
		return p
	}
	p.prefix = prefix
	return p
}

// Narrow converts an entity pointer to the entity kind of U after checking
// the carried runtime descriptor. It fails on asset pointers and on
// descriptors with no assignability relation to U; it never silently
// reinterprets.
func Narrow[U any](p Pointer) (Pointer, error) {
	if !p.kind.entity {
		return Pointer{}, fmt.Errorf("%w: %s pointer is not an entity", ErrKindMismatch, p.kind.token)
	}
	to := reflect.TypeFor[U]()
	if !typesRelated(p.kind.typ, to) {
		return Pointer{}, fmt.Errorf("%w: %s cannot narrow to %s", ErrKindMismatch, p.kind.typ, to)
	}
	p.kind.typ = to
	return p, nil
}

// typesRelated reports whether a checked conversion between the carried
// descriptor and the requested type can ever hold a common value.
func typesRelated(from, to reflect.Type) bool {
	if from == nil || from == to {
		return true
	}
	if from.Kind() == reflect.Interface && to.Implements(from) {
		return true
	}
	if to.Kind() == reflect.Interface && from.Implements(to) {
		return true
	}
	return from.AssignableTo(to) || to.AssignableTo(from)
}

// Equal compares pointers structurally: kind, variant, and the variant's
// payload. Search names compare canonically.
func (p Pointer) Equal(q Pointer) bool {
	if !p.kind.Equal(q.kind) || p.variant != q.variant {
		return false
	}
	switch p.variant {
	case VariantExternal:
		return p.url == q.url
	case VariantTarget:
		return p.prefix.Equal(q.prefix) && p.suffix == q.suffix
	default:
		return p.prefix.Equal(q.prefix) && p.name.Equal(q.name)
	}
}

// Href renders the pointer as an on-site URL for kind k: the prefix as a
// directory (leading "/" iff absolute, trailing "/" always) followed by
// the suffix. An empty suffix names the directory itself; an empty
// relative directory renders as "./" so the result is never empty.
func (k Kind) Href(prefix Prefix, suffix string) string {
	dir := prefix.String()
	if suffix == "" {
		if dir == "" {
			return "./"
		}
		return dir
	}
	return dir + suffix
}

// Href renders the pointer as a URL usable from a page at base. Targets
// and externals ignore the base; a search resolves its prefix against the
// base first, since a symbolic reference has no fixed target of its own.
// Relative search prefixes render root-anchored without a leading slash.
func (p Pointer) Href(base Location) string {
	switch p.variant {
	case VariantExternal:
		return p.url
	case VariantTarget:
		return p.kind.Href(p.prefix, p.suffix)
	default:
		loc, err := p.prefix.Location(base)
		if err != nil {
			loc = Root
		}
		dir := loc.String()
		if p.prefix.absolute {
			dir = "/" + dir
		}
		return dir + p.name.normal
	}
}

// String renders the canonical address text; Parse of the result yields an
// equal pointer.
func (p Pointer) String() string {
	switch p.variant {
	case VariantExternal:
		return p.url
	case VariantTarget:
		if p.kind.entity {
			return p.prefix.String()
		}
		return p.prefix.String() + p.suffix
	default:
		return p.prefix.String() + p.name.normal
	}
}
