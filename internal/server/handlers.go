package server

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/address"
	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/content"
	"github.com/starford/raido/internal/site"
)

// Handler holds the HTTP route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// requestKind picks the pointer kind for an incoming path: an extension
// recognized by an asset kind selects that kind, everything else is an
// entity request.
func requestKind(p string) address.Kind {
	last := p
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		last = p[i+1:]
	}
	if strings.Contains(last, ".") {
		return address.KindForExtension(last)
	}
	return address.Entity()
}

// kindForToken maps an API kind parameter to a pointer kind; empty means
// entity.
func kindForToken(token string) (address.Kind, bool) {
	switch token {
	case "", "entity":
		return address.Entity(), true
	case "page":
		return address.Page, true
	case "image":
		return address.Image, true
	case "style", "stylesheet":
		return address.Stylesheet, true
	case "script":
		return address.Script, true
	}
	return address.Kind{}, false
}

// contentKind names the content type a page carries.
func contentKind(p site.Page) string {
	if n, ok := p.(*content.Node); ok {
		switch n.Content().(type) {
		case *content.Article:
			return "article"
		case *content.Section:
			return "section"
		}
	}
	return ""
}

// ServeSite handles every non-API request: the path is parsed as an
// address, resolved against the index, and the document or asset behind
// it is served.
func (h *Handler) ServeSite(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Path
	kind := requestKind(text)

	if !kind.IsEntity() {
		h.serveAsset(w, r, kind, text)
		return
	}

	res, err := h.svc.Resolve(text, kind, address.Root)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, address.ErrEscapesRoot) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("serve site failed", slog.String("path", text), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if res.Page == nil {
		// A request path that parses as an external URL resolves nowhere.
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}

	node, ok := res.Page.(*content.Node)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	doc := node.Document()
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("X-Site-Location", "/"+node.Location().String())
	if doc.Title != "" {
		_, _ = w.Write([]byte("# " + doc.Title + "\n\n"))
	}
	_, _ = w.Write([]byte(doc.Body))
}

func (h *Handler) serveAsset(w http.ResponseWriter, r *http.Request, kind address.Kind, text string) {
	ptr := address.Parse(kind, text)
	data, filename, err := h.svc.Asset(ptr, address.Root)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	ctype := mime.TypeByExtension(path.Ext(filename))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	_, _ = w.Write(data)
}

// Resolve handles GET /api/resolve?addr=&kind=&base=. It reports the
// parsed pointer, its href, and — when it resolves — the target page.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	addr := q.Get("addr")
	if addr == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'addr' is required"))
		return
	}
	kind, ok := kindForToken(q.Get("kind"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown kind"))
		return
	}
	basePath, baseSuffix := address.ParsePath(q.Get("base"))
	if baseSuffix != "" {
		if n, err := address.ParseName(baseSuffix); err == nil {
			basePath = basePath.Append(n)
		}
	}
	base := address.ResolvedLocation(basePath)

	res, err := h.svc.Resolve(addr, kind, base)
	resp := ResolveResponse{
		Address: addr,
		Kind:    res.Pointer.Kind().Token(),
		Variant: res.Pointer.Variant().String(),
		Href:    res.Href,
	}
	switch {
	case err == nil && res.Page != nil:
		resp.Location = "/" + res.Page.Location().String()
		if n, ok := res.Page.(*content.Node); ok {
			resp.Title = n.Document().Title
		}
	case err != nil && !errors.Is(err, apperr.ErrNotFound) && !errors.Is(err, apperr.ErrExternal):
		if errors.Is(err, address.ErrEscapesRoot) {
			writeJSON(w, http.StatusBadRequest, errorBody("reference escapes the site root"))
			return
		}
		slog.Error("resolve failed", slog.String("addr", addr), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListPages handles GET /api/pages.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages := h.svc.Pages()
	items := make([]PageListItem, 0, len(pages))
	for _, p := range pages {
		item := PageListItem{
			Location: "/" + p.Location().String(),
			Name:     p.Name().Normal(),
			Kind:     contentKind(p),
		}
		if n, ok := p.(*content.Node); ok {
			doc := n.Document()
			item.Title = doc.Title
			item.Tags = doc.Tags
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, PageListResponse{Pages: items, Total: len(items)})
}

// pageLocation extracts the page location from the URL wildcard.
// Supports encoded slashes from generated clients (e.g. docs%2Fguide).
func pageLocation(r *http.Request) (address.Location, error) {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	p, suffix := address.ParsePath(raw)
	if suffix != "" {
		if n, err := address.ParseName(suffix); err == nil {
			p = p.Append(n)
		}
	}
	return address.LocationOf(p)
}

// GetPage handles GET /api/pages/*.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	loc, err := pageLocation(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid page location"))
		return
	}
	node, err := h.svc.PageAt(loc)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("get page failed", slog.String("location", loc.String()), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	doc := node.Document()
	children, _ := node.Children(r.Context())
	childLocs := make([]string, 0, len(children))
	for _, c := range children {
		childLocs = append(childLocs, "/"+c.Location().String())
	}
	writeJSON(w, http.StatusOK, PageDetail{
		Location: "/" + node.Location().String(),
		Name:     node.Name().Normal(),
		Title:    doc.Title,
		Titles:   doc.Titles,
		Kind:     contentKind(node),
		Tags:     doc.Tags,
		Body:     doc.Body,
		Children: childLocs,
	})
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	hits := make([]SearchHit, len(results))
	for i, res := range results {
		hits[i] = SearchHit{Location: "/" + res.Location, Title: res.Title, Snippet: res.Snippet}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: hits})
}
