package content

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/starford/raido/internal/address"
	"github.com/starford/raido/internal/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedStore(t *testing.T, files map[string]string) *storage.FS {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for path, body := range files {
		if err := store.Write(path, []byte(body)); err != nil {
			t.Fatalf("seed %s: %v", path, err)
		}
	}
	return store
}

func loadTree(t *testing.T, files map[string]string) *Tree {
	t.Helper()
	tree, err := Load(context.Background(), seedStore(t, files), quietLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tree
}

func TestLoad_Hierarchy(t *testing.T) {
	tree := loadTree(t, map[string]string{
		"index.md":      "---\ntitle: Home\n---\nWelcome",
		"docs/index.md": "---\ntitle: Docs\n---\nDocs overview",
		"docs/setup.md": "---\ntitle: Setup\n---\nHow to set up",
		"style.css":     "body {}",
	})

	root := tree.Root()
	if root.Document().Title != "Home" {
		t.Errorf("root title = %q", root.Document().Title)
	}

	docs, ok := root.Child(address.MustName("docs"))
	if !ok {
		t.Fatal("docs child missing")
	}
	if docs.Document().Title != "Docs" {
		t.Errorf("docs title = %q", docs.Document().Title)
	}
	if docs.Location().String() != "docs/" {
		t.Errorf("docs location = %q", docs.Location())
	}

	setup, ok := docs.Child(address.MustName("setup"))
	if !ok {
		t.Fatal("setup child missing")
	}
	if setup.Location().String() != "docs/setup/" {
		t.Errorf("setup location = %q", setup.Location())
	}
	if _, ok := setup.Content().(*Article); !ok {
		t.Error("leaf page should carry an Article")
	}

	// Non-markdown sources do not become pages.
	if _, ok := root.Child(address.MustName("style")); ok {
		t.Error("style.css should not be a page")
	}
}

func TestLoad_BareDirectoryBecomesSection(t *testing.T) {
	tree := loadTree(t, map[string]string{
		"blog/first-post.md": "---\ntitle: First Post\n---\nHello",
	})

	blog, ok := tree.Root().Child(address.MustName("blog"))
	if !ok {
		t.Fatal("blog section missing")
	}
	sec, ok := blog.Content().(*Section)
	if !ok {
		t.Fatal("bare directory should carry a Section")
	}
	if sec.Title != "blog" {
		t.Errorf("section title = %q, want blog", sec.Title)
	}
	if _, ok := blog.Child(address.MustName("first-post")); !ok {
		t.Error("first-post missing under blog")
	}
}

func TestLoad_NamesNormalized(t *testing.T) {
	tree := loadTree(t, map[string]string{
		"My Docs/Getting Started.md": "content",
	})
	loc, err := address.LocationOf(mustParse(t, "my-docs/getting-started/"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.At(loc); !ok {
		t.Error("page should be reachable under normalized names")
	}
}

func mustParse(t *testing.T, s string) address.Path {
	t.Helper()
	p, suffix := address.ParsePath(s)
	if suffix != "" {
		t.Fatalf("unexpected suffix %q", suffix)
	}
	return p
}

func TestLoad_SkipsUnusableNames(t *testing.T) {
	tree := loadTree(t, map[string]string{
		"???.md":  "unusable stem",
		"good.md": "fine",
	})
	root := tree.Root()
	children, err := root.Children(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 1 {
		t.Fatalf("children = %d, want 1", len(children))
	}
	if children[0].Name().Normal() != "good" {
		t.Errorf("child = %q", children[0].Name().Normal())
	}
}

func TestTree_At(t *testing.T) {
	tree := loadTree(t, map[string]string{
		"a/b/c.md": "deep",
	})
	loc := address.LocationAt(address.MustName("a"), address.MustName("b"), address.MustName("c"))
	if _, ok := tree.At(loc); !ok {
		t.Error("deep page should be reachable")
	}
	if _, ok := tree.At(address.LocationAt(address.MustName("nope"))); ok {
		t.Error("missing location should report ok=false")
	}
	if n, ok := tree.At(address.Root); !ok || n != tree.Root() {
		t.Error("root location should yield the root node")
	}
}

func TestTree_WalkOrder(t *testing.T) {
	tree := loadTree(t, map[string]string{
		"b.md":   "b",
		"a.md":   "a",
		"a/x.md": "x",
	})
	var locs []string
	tree.Walk(func(n *Node) { locs = append(locs, n.Location().String()) })
	want := []string{"", "a/", "a/x/", "b/"}
	if len(locs) != len(want) {
		t.Fatalf("visited %v, want %v", locs, want)
	}
	for i := range want {
		if locs[i] != want[i] {
			t.Fatalf("visited %v, want %v", locs, want)
		}
	}
}

func TestNode_TitlesExcludePrimaryName(t *testing.T) {
	tree := loadTree(t, map[string]string{
		"guide.md": "---\ntitle: Guide\ntitles:\n  - Handbook\n---\nx",
	})
	guide, ok := tree.Root().Child(address.MustName("guide"))
	if !ok {
		t.Fatal("guide missing")
	}
	titles, err := guide.Titles(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// "Guide" normalizes to the primary name and is dropped; "Handbook" stays.
	if len(titles) != 1 || titles[0].Normal() != "handbook" {
		t.Errorf("titles = %v, want [handbook]", titles)
	}
}
