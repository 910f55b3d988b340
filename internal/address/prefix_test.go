package address

import (
	"errors"
	"testing"
)

func TestPrefix_Constants(t *testing.T) {
	if EmptyPrefix.String() != "" {
		t.Errorf("EmptyPrefix = %q", EmptyPrefix.String())
	}
	if CurrentPrefix.String() != "./" {
		t.Errorf("CurrentPrefix = %q", CurrentPrefix.String())
	}
	if RootPrefix.String() != "/" {
		t.Errorf("RootPrefix = %q", RootPrefix.String())
	}
	if EmptyPrefix.IsAbsolute() || CurrentPrefix.IsAbsolute() {
		t.Error("relative prefixes should not report absolute")
	}
	if !RootPrefix.IsAbsolute() {
		t.Error("RootPrefix should be absolute")
	}
}

func TestPrefix_Location(t *testing.T) {
	base := mustLocation(t, "docs/guide/")

	rel := Relative(mustPath(t, "../api/"))
	loc, err := rel.Location(base)
	if err != nil {
		t.Fatalf("relative Location: %v", err)
	}
	if loc.String() != "docs/api/" {
		t.Errorf("relative = %q, want docs/api/", loc.String())
	}

	abs := Absolute(mustLocation(t, "blog/"))
	loc, err = abs.Location(base)
	if err != nil {
		t.Fatalf("absolute Location: %v", err)
	}
	if loc.String() != "blog/" {
		t.Errorf("absolute should ignore base, got %q", loc.String())
	}
}

func TestPrefix_LocationEscapes(t *testing.T) {
	rel := Relative(mustPath(t, "../../"))
	if _, err := rel.Location(mustLocation(t, "a/")); !errors.Is(err, ErrEscapesRoot) {
		t.Errorf("err = %v, want ErrEscapesRoot", err)
	}
}

func TestBetween(t *testing.T) {
	cases := []struct {
		from, to string
		want     string
	}{
		{"a/b/", "a/b/", ""},          // same location
		{"", "a/b/", "a/b/"},          // straight down from root
		{"a/b/", "a/", "../"},         // one up
		{"a/b/", "a/c/", "../c/"},     // sibling, tie prefers relative
		{"a/", "a/b/c/", "b/c/"},      // down only
		{"a/b/c/", "d/", "/d/"},       // too far up, absolute wins
		{"a/b/", "", "/"},             // back to the root
		{"x/y/", "a/b/", "/a/b/"},     // unrelated subtrees
	}
	for _, tc := range cases {
		from := mustLocation(t, tc.from)
		to := mustLocation(t, tc.to)
		got := Between(from, to)
		if got.String() != tc.want {
			t.Errorf("Between(%q, %q) = %q, want %q", tc.from, tc.to, got.String(), tc.want)
		}

		// The computed prefix must lead back to the target.
		loc, err := got.Location(from)
		if err != nil {
			t.Errorf("Between(%q, %q).Location: %v", tc.from, tc.to, err)
			continue
		}
		if !loc.Equal(to) {
			t.Errorf("Between(%q, %q) resolves to %q", tc.from, tc.to, loc.String())
		}
	}
}

func TestPrefix_Equal(t *testing.T) {
	if !Relative(mustPath(t, "a/")).Equal(Relative(mustPath(t, "a/"))) {
		t.Error("equal relative prefixes")
	}
	if Relative(mustPath(t, "a/")).Equal(Absolute(mustLocation(t, "a/"))) {
		t.Error("relative and absolute prefixes must differ")
	}
	if !Absolute(Root).Equal(RootPrefix) {
		t.Error("Absolute(Root) should equal RootPrefix")
	}
}

func TestPrefix_Accessors(t *testing.T) {
	rel := Relative(mustPath(t, "a/"))
	if _, ok := rel.AbsoluteLocation(); ok {
		t.Error("relative prefix should have no absolute location")
	}
	if p, ok := rel.RelativePath(); !ok || p.String() != "a/" {
		t.Errorf("RelativePath = %q, %v", p.String(), ok)
	}

	abs := Absolute(mustLocation(t, "a/"))
	if _, ok := abs.RelativePath(); ok {
		t.Error("absolute prefix should have no relative path")
	}
	if l, ok := abs.AbsoluteLocation(); !ok || l.String() != "a/" {
		t.Errorf("AbsoluteLocation = %q, %v", l.String(), ok)
	}
}
