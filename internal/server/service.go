// Package server implements the HTTP layer: request paths are parsed into
// pointers, resolved against the current index, and served from storage.
package server

import (
	"fmt"
	"sync"

	"github.com/starford/raido/internal/address"
	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/content"
	"github.com/starford/raido/internal/search"
	"github.com/starford/raido/internal/site"
	"github.com/starford/raido/internal/storage"
)

// Service coordinates the current site snapshot, storage, and search for
// the HTTP and MCP layers. The tree/index pair is replaced wholesale on
// rebuild; readers always see a consistent snapshot.
type Service struct {
	store storage.Provider
	db    *search.DB

	mu    sync.RWMutex
	tree  *content.Tree
	index *site.Index
}

// NewService creates a service around an initial snapshot.
func NewService(store storage.Provider, db *search.DB, tree *content.Tree, index *site.Index) *Service {
	return &Service{store: store, db: db, tree: tree, index: index}
}

// Swap installs a freshly built snapshot.
func (s *Service) Swap(tree *content.Tree, index *site.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = tree
	s.index = index
}

// Snapshot returns the current tree and index.
func (s *Service) Snapshot() (*content.Tree, *site.Index) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree, s.index
}

// Resolution is the outcome of resolving an address string.
type Resolution struct {
	Pointer address.Pointer
	Page    site.Page // nil for external pointers
	Href    string
}

// Resolve parses addr as a pointer of kind k and resolves it against the
// current index, standing at base. External pointers come back with a nil
// page; unresolvable internal pointers surface apperr.ErrNotFound.
func (s *Service) Resolve(addr string, k address.Kind, base address.Location) (Resolution, error) {
	ptr := address.Parse(k, addr)
	res := Resolution{Pointer: ptr, Href: ptr.Href(base)}
	if !ptr.IsInternal() {
		return res, nil
	}

	_, index := s.Snapshot()
	page, err := index.Resolve(ptr, base)
	if err != nil {
		return res, err
	}
	res.Page = page
	return res, nil
}

// PageAt returns the node at loc in the current tree.
func (s *Service) PageAt(loc address.Location) (*content.Node, error) {
	tree, _ := s.Snapshot()
	n, ok := tree.At(loc)
	if !ok {
		return nil, fmt.Errorf("server: no page at %q: %w", loc, apperr.ErrNotFound)
	}
	return n, nil
}

// Pages returns every indexed page in visitation order.
func (s *Service) Pages() []site.Page {
	_, index := s.Snapshot()
	return index.Pages()
}

// Search delegates to the full-text side-car.
func (s *Service) Search(query string, limit int) ([]search.Result, error) {
	return s.db.Search(query, limit)
}

// Asset locates the bytes of an asset pointer: the directory comes from
// the prefix, the filename from the target suffix or, for a symbolic
// search, from the searched name tried against each recognized extension.
func (s *Service) Asset(ptr address.Pointer, base address.Location) ([]byte, string, error) {
	if !ptr.IsInternal() {
		url, _ := ptr.URL()
		return nil, "", fmt.Errorf("server: asset %q: %w", url, apperr.ErrExternal)
	}
	loc, err := ptr.Prefix().Location(base)
	if err != nil {
		return nil, "", fmt.Errorf("server: asset directory: %w", err)
	}

	var candidates []string
	if suffix, ok := ptr.Suffix(); ok {
		candidates = []string{suffix}
	} else if name, ok := ptr.SearchName(); ok {
		for _, ext := range ptr.Kind().Extensions() {
			candidates = append(candidates, name.Normal()+"."+ext)
		}
	}

	for _, filename := range candidates {
		data, err := s.store.Read(loc.String() + filename)
		if err == nil {
			return data, filename, nil
		}
	}
	return nil, "", fmt.Errorf("server: no %s asset under %q: %w", ptr.Kind().Token(), loc, apperr.ErrNotFound)
}
