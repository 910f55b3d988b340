package site

import (
	"context"
	"fmt"
	"reflect"

	"github.com/starford/raido/internal/address"
	"github.com/starford/raido/internal/apperr"
)

// Index is an immutable snapshot of the site tree: pages by name (ordered,
// duplicates allowed — a page registers under its primary name and every
// alternate title) and by location (unique by construction). A changed
// tree requires a full rebuild; there is no incremental update. Safe for
// concurrent readers once built.
type Index struct {
	byName     map[string][]Page
	byLocation map[string]Page
	ordered    []Page // pre-order visitation order
}

// Build traverses the tree from root in pre-order: each node's titles and
// children are fetched, the node is registered, then its children are
// visited before the next sibling. Any fetch failure aborts the build; no
// partial index is returned.
func Build(ctx context.Context, root Page) (*Index, error) {
	idx := &Index{
		byName:     make(map[string][]Page),
		byLocation: make(map[string]Page),
	}
	if err := idx.visit(ctx, root); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *Index) visit(ctx context.Context, p Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	titles, err := p.Titles(ctx)
	if err != nil {
		return fmt.Errorf("site: titles of %q: %w", p.Location(), err)
	}
	children, err := p.Children(ctx)
	if err != nil {
		return fmt.Errorf("site: children of %q: %w", p.Location(), err)
	}

	idx.register(p.Name(), p)
	for _, t := range titles {
		idx.register(t, p)
	}
	idx.byLocation[p.Location().String()] = p
	idx.ordered = append(idx.ordered, p)

	for _, c := range children {
		if err := idx.visit(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (idx *Index) register(n address.Name, p Page) {
	if n.IsZero() {
		return
	}
	idx.byName[n.Normal()] = append(idx.byName[n.Normal()], p)
}

// ByName returns every page registered under n, in registration order.
// Absence is an empty slice, not an error.
func (idx *Index) ByName(n address.Name) []Page {
	pages := idx.byName[n.Normal()]
	if len(pages) == 0 {
		return nil
	}
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// ByLocation returns the page at l, if any.
func (idx *Index) ByLocation(l address.Location) (Page, bool) {
	p, ok := idx.byLocation[l.String()]
	return p, ok
}

// ByNameOf returns the pages registered under n whose content type is
// assignable to t. A nil t filters nothing.
func (idx *Index) ByNameOf(n address.Name, t reflect.Type) []Page {
	var out []Page
	for _, p := range idx.byName[n.Normal()] {
		if contentAssignable(p.ContentType(), t) {
			out = append(out, p)
		}
	}
	return out
}

// ByLocationOf returns the page at l when its content type is assignable
// to t.
func (idx *Index) ByLocationOf(l address.Location, t reflect.Type) (Page, bool) {
	p, ok := idx.byLocation[l.String()]
	if !ok || !contentAssignable(p.ContentType(), t) {
		return nil, false
	}
	return p, true
}

// Pages returns every indexed page in visitation order.
func (idx *Index) Pages() []Page {
	out := make([]Page, len(idx.ordered))
	copy(out, idx.ordered)
	return out
}

// Len returns the number of indexed pages.
func (idx *Index) Len() int { return len(idx.ordered) }

// Resolve combines a parsed pointer with the index to find a concrete
// page, standing at base. A target looks its resolved location up
// directly; a search scans the pages registered under its name inside the
// prefix's scope, preferring the candidate nearest to the scope (first
// registered on ties). External pointers resolve to nothing, and
// unresolvable references surface apperr.ErrNotFound.
func (idx *Index) Resolve(ptr address.Pointer, base address.Location) (Page, error) {
	switch ptr.Variant() {
	case address.VariantExternal:
		url, _ := ptr.URL()
		return nil, fmt.Errorf("site: external address %q: %w", url, apperr.ErrExternal)

	case address.VariantTarget:
		loc, err := ptr.Prefix().Location(base)
		if err != nil {
			return nil, fmt.Errorf("site: resolve target: %w", err)
		}
		p, ok := idx.ByLocation(loc)
		if !ok {
			return nil, fmt.Errorf("site: no page at %q: %w", loc, apperr.ErrNotFound)
		}
		return p, nil

	default:
		scope, err := ptr.Prefix().Location(base)
		if err != nil {
			return nil, fmt.Errorf("site: resolve search scope: %w", err)
		}
		name, _ := ptr.SearchName()
		var best Page
		bestDist := -1
		for _, p := range idx.byName[name.Normal()] {
			if !scope.Contains(p.Location()) {
				continue
			}
			if !contentAssignable(p.ContentType(), ptr.Kind().ContentType()) {
				continue
			}
			if d := scope.Distance(p.Location()); bestDist < 0 || d < bestDist {
				best, bestDist = p, d
			}
		}
		if best == nil {
			return nil, fmt.Errorf("site: no page named %q under %q: %w", name, scope, apperr.ErrNotFound)
		}
		return best, nil
	}
}

// contentAssignable applies the runtime "is assignable to" check used by
// type-filtered queries. A nil filter, an interface{} filter, or a nil
// page type passes everything through.
func contentAssignable(have, want reflect.Type) bool {
	if want == nil || have == nil {
		return true
	}
	if have == want || have.AssignableTo(want) {
		return true
	}
	return want.Kind() == reflect.Interface && have.Implements(want)
}
