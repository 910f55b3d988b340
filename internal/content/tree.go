package content

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"reflect"
	"sort"
	"strings"

	"github.com/starford/raido/internal/address"
	"github.com/starford/raido/internal/site"
	"github.com/starford/raido/internal/storage"
)

// Node is one page of the concrete site tree. It implements site.Page.
type Node struct {
	name     address.Name
	location address.Location
	content  Content
	children []*Node
	byName   map[string]*Node
}

// Name returns the node's primary name; zero at the root.
func (n *Node) Name() address.Name { return n.name }

// Location returns the node's absolute coordinate.
func (n *Node) Location() address.Location { return n.location }

// Titles returns the alternate lookup keys: the document title and any
// declared aliases, minus the primary name itself.
func (n *Node) Titles(ctx context.Context) ([]address.Name, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := n.content.Meta()
	raw := make([]string, 0, len(doc.Titles)+1)
	if doc.Title != "" {
		raw = append(raw, doc.Title)
	}
	raw = append(raw, doc.Titles...)

	var out []address.Name
	for _, s := range raw {
		t, err := address.ParseName(s)
		if err != nil || t.Equal(n.name) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Children returns the direct children, ordered by name.
func (n *Node) Children(ctx context.Context) ([]site.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]site.Page, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out, nil
}

// ContentType describes the carried content for type-filtered queries.
func (n *Node) ContentType() reflect.Type { return reflect.TypeOf(n.content) }

// Content returns the typed content.
func (n *Node) Content() Content { return n.content }

// Document returns the underlying parsed document.
func (n *Node) Document() *Document { return n.content.Meta() }

// Child returns the direct child with the given name.
func (n *Node) Child(name address.Name) (*Node, bool) {
	c, ok := n.byName[name.Normal()]
	return c, ok
}

// Tree is the assembled site tree.
type Tree struct {
	root *Node
}

// Root returns the root page.
func (t *Tree) Root() *Node { return t.root }

// At walks from the root to the node at loc.
func (t *Tree) At(loc address.Location) (*Node, bool) {
	n := t.root
	for _, name := range loc.Names() {
		c, ok := n.byName[name.Normal()]
		if !ok {
			return nil, false
		}
		n = c
	}
	return n, true
}

// Walk visits every node in pre-order.
func (t *Tree) Walk(fn func(*Node)) {
	var visit func(*Node)
	visit = func(n *Node) {
		fn(n)
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(t.root)
}

// Load reads every markdown source under the store root and assembles the
// site tree. A directory's own page is its "index.md"; any other
// "<name>.md" becomes a leaf page at "<dir>/<name>/". Directories without
// an index document become bare sections. Sources whose path segments
// yield no valid name are skipped with a warning; a read failure aborts
// the load.
func Load(ctx context.Context, store storage.Provider, logger *slog.Logger) (*Tree, error) {
	metas, err := store.List("")
	if err != nil {
		return nil, fmt.Errorf("content: list sources: %w", err)
	}

	root := &Node{location: address.Root, byName: make(map[string]*Node)}
	nodes := map[string]*Node{"": root}

	ensure := func(loc address.Location) *Node {
		if n, ok := nodes[loc.String()]; ok {
			return n
		}
		// Create the chain from the root down.
		n := root
		at := address.Root
		for _, name := range loc.Names() {
			at = at.Append(name)
			c, ok := n.byName[name.Normal()]
			if !ok {
				c = &Node{name: name, location: at, byName: make(map[string]*Node)}
				n.byName[name.Normal()] = c
				n.children = append(n.children, c)
				nodes[at.String()] = c
			}
			n = c
		}
		return n
	}

	for _, m := range metas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !strings.HasSuffix(m.Path, ".md") {
			continue
		}

		dir, base := path.Split(m.Path)
		dirLoc, ok := locationForDir(dir)
		if !ok {
			logger.Warn("content: skipping source with unusable directory name", slog.String("path", m.Path))
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", m.Path, err)
		}
		doc := ParseDocument(data)

		stem := strings.TrimSuffix(base, ".md")
		if stem == "index" {
			n := ensure(dirLoc)
			n.content = contentFor(*doc, true)
			continue
		}
		name, err := address.ParseName(stem)
		if err != nil {
			logger.Warn("content: skipping source with unusable file name", slog.String("path", m.Path))
			continue
		}
		n := ensure(dirLoc.Append(name))
		n.content = contentFor(*doc, false)
	}

	finish(root)
	return &Tree{root: root}, nil
}

// locationForDir parses a slash-separated directory prefix into a
// location; ok is false when a segment has no usable name characters.
func locationForDir(dir string) (address.Location, bool) {
	loc := address.Root
	for _, seg := range strings.Split(strings.Trim(dir, "/"), "/") {
		if seg == "" {
			continue
		}
		name, err := address.ParseName(seg)
		if err != nil {
			return address.Location{}, false
		}
		loc = loc.Append(name)
	}
	return loc, true
}

// finish fills bare directories with empty sections and orders children.
func finish(n *Node) {
	if n.content == nil {
		doc := Document{Title: n.name.Display()}
		n.content = &Section{Document: doc}
	}
	sort.Slice(n.children, func(i, j int) bool {
		return n.children[i].name.Compare(n.children[j].name) < 0
	})
	for _, c := range n.children {
		finish(c)
	}
}
