//go:build property
// +build property

package address

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestNameProperties tests invariant properties of name canonicalization.
func TestNameProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalization is idempotent", prop.ForAll(
		func(s string) bool {
			once := NormalizeName(s)
			return NormalizeName(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("normal form uses only lowercase alphanumerics and hyphens", prop.ForAll(
		func(s string) bool {
			for _, r := range NormalizeName(s) {
				ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
				if !ok {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("normal form never starts or ends with a hyphen", prop.ForAll(
		func(s string) bool {
			n := NormalizeName(s)
			return n == "" || (!strings.HasPrefix(n, "-") && !strings.HasSuffix(n, "-"))
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// genLocation generates arbitrary site locations a few levels deep.
func genLocation() gopter.Gen {
	return gen.SliceOf(gen.Identifier()).Map(func(segs []string) Location {
		if len(segs) > 4 {
			segs = segs[:4]
		}
		loc := Root
		for _, s := range segs {
			n, err := ParseName(s)
			if err != nil {
				continue
			}
			loc = loc.Append(n)
		}
		return loc
	})
}

// TestPathProperties tests invariant properties of the path algebra.
func TestPathProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("parsing is total and renders canonically", prop.ForAll(
		func(s string) bool {
			p, _ := ParsePath(s)
			again, suffix := ParsePath(p.String())
			return suffix == "" && again.Equal(p)
		},
		gen.AnyString(),
	))

	properties.Property("Normalized is idempotent", prop.ForAll(
		func(s string) bool {
			p, _ := ParsePath(s)
			n := p.Normalized()
			return n.Normalized().Equal(n)
		},
		gen.AnyString(),
	))

	properties.Property("Resolved is idempotent", prop.ForAll(
		func(s string) bool {
			p, _ := ParsePath(s)
			r := p.Resolved()
			return r.Resolved().Equal(r)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestPrefixProperties tests that minimal prefixes always lead back to
// their target.
func TestPrefixProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("Between(from, to) resolves to to from from", prop.ForAll(
		func(from, to Location) bool {
			loc, err := Between(from, to).Location(from)
			return err == nil && loc.Equal(to)
		},
		genLocation(), genLocation(),
	))

	properties.Property("Between(l, l) is the empty prefix", prop.ForAll(
		func(l Location) bool {
			return Between(l, l).Equal(EmptyPrefix)
		},
		genLocation(),
	))

	properties.TestingRun(t)
}

// TestPointerProperties tests the parse/render round trip.
func TestPointerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("String parses back to an equal pointer", prop.ForAll(
		func(s string) bool {
			p := Parse(Entity(), s)
			return Parse(Entity(), p.String()).Equal(p)
		},
		gen.AnyString(),
	))

	properties.Property("asset String parses back to an equal pointer", prop.ForAll(
		func(s string) bool {
			p := Parse(Stylesheet, s)
			return Parse(Stylesheet, p.String()).Equal(p)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
