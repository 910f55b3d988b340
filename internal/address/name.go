// Package address implements the site address algebra: canonical names,
// relative paths, root-anchored locations, and typed pointers to entities
// and assets.
package address

import (
	"errors"
	"strings"
)

// ErrEmptyName is returned when a display string has no usable characters.
var ErrEmptyName = errors.New("address: name normalizes to empty")

// nameCutset holds the characters stripped from both ends of a display
// string before normalization: whitespace, quotes, and backticks.
const nameCutset = " \t\r\n\"'`"

// Name pairs a canonical identifier with the display text it was derived
// from. Equality, ordering, and lookup keys use the normal form only; the
// display form is kept for presentation.
type Name struct {
	normal  string
	display string
}

// ParseName canonicalizes display text into a Name. It fails only when
// nothing alphanumeric survives normalization.
func ParseName(display string) (Name, error) {
	trimmed := strings.Trim(display, nameCutset)
	normal := NormalizeName(trimmed)
	if normal == "" {
		return Name{}, ErrEmptyName
	}
	return Name{normal: normal, display: trimmed}, nil
}

// MustName is ParseName for statically known inputs; it panics on failure.
func MustName(display string) Name {
	n, err := ParseName(display)
	if err != nil {
		panic("address: MustName(" + display + "): " + err.Error())
	}
	return n
}

// NormalizeName derives the canonical form of a display string: trim the
// surrounding cutset, lowercase, collapse every run of non-alphanumeric
// characters into a single hyphen, and trim leading/trailing hyphens.
func NormalizeName(s string) string {
	s = strings.ToLower(strings.Trim(s, nameCutset))
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte('-')
		}
		pending = false
		b.WriteRune(r)
	}
	return b.String()
}

// Normal returns the canonical identifier.
func (n Name) Normal() string { return n.normal }

// Display returns the preserved presentation text.
func (n Name) Display() string { return n.display }

// IsZero reports whether n is the zero Name (no valid name at all).
func (n Name) IsZero() bool { return n.normal == "" }

// Equal compares canonical forms; display text never participates.
func (n Name) Equal(o Name) bool { return n.normal == o.normal }

// Compare orders names by canonical form.
func (n Name) Compare(o Name) int { return strings.Compare(n.normal, o.normal) }

// String returns the canonical form.
func (n Name) String() string { return n.normal }
