package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/starford/raido/internal/address"
	"github.com/starford/raido/internal/search"
	"github.com/starford/raido/internal/testutil"
)

func testService(t *testing.T) *Service {
	t.Helper()
	_, store := testutil.TestSite(t)
	testutil.Seed(t, store, map[string]string{
		"index.md":      "---\ntitle: Home\n---\nWelcome to the site.",
		"docs/index.md": "---\ntitle: Docs\n---\nDocumentation overview.",
		"docs/setup.md": "---\ntitle: Setup\ntags:\n  - howto\n---\nInstall the binary.",
		"style.css":     "body { margin: 0 }",
	})
	db := testutil.TestDB(t)
	tree, index := testutil.Snapshot(t, store)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := search.SyncTree(db, tree, logger); err != nil {
		t.Fatalf("sync search: %v", err)
	}
	return NewService(store, db, tree, index)
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(testService(t), false, "", nil)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v (body %q)", err, w.Body.String())
	}
	return v
}

func TestHealthEndpoints(t *testing.T) {
	r := testRouter(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		if w := get(t, r, path); w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}
}

func TestServeSite_Page(t *testing.T) {
	r := testRouter(t)
	w := get(t, r, "/docs/setup")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("content type = %q", ct)
	}
	if loc := w.Header().Get("X-Site-Location"); loc != "/docs/setup/" {
		t.Errorf("X-Site-Location = %q", loc)
	}
	body := w.Body.String()
	if !strings.Contains(body, "# Setup") || !strings.Contains(body, "Install the binary.") {
		t.Errorf("body = %q", body)
	}
}

func TestServeSite_Root(t *testing.T) {
	r := testRouter(t)
	w := get(t, r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Welcome to the site.") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestServeSite_SearchByName(t *testing.T) {
	// A bare name resolves through the index regardless of directory.
	r := testRouter(t)
	w := get(t, r, "/setup")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("X-Site-Location"); loc != "/docs/setup/" {
		t.Errorf("X-Site-Location = %q", loc)
	}
}

func TestServeSite_NotFound(t *testing.T) {
	r := testRouter(t)
	if w := get(t, r, "/no-such-page"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestServeSite_Asset(t *testing.T) {
	r := testRouter(t)
	w := get(t, r, "/style.css")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "css") {
		t.Errorf("content type = %q", ct)
	}
	if w.Body.String() != "body { margin: 0 }" {
		t.Errorf("body = %q", w.Body.String())
	}

	if w := get(t, r, "/missing.css"); w.Code != http.StatusNotFound {
		t.Errorf("missing asset status = %d", w.Code)
	}
}

func TestResolveAPI(t *testing.T) {
	r := testRouter(t)

	w := get(t, r, "/api/resolve?addr=setup")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", w.Code, w.Body.String())
	}
	resp := decode[ResolveResponse](t, w)
	if resp.Variant != "search" {
		t.Errorf("variant = %q", resp.Variant)
	}
	if resp.Location != "/docs/setup/" {
		t.Errorf("location = %q", resp.Location)
	}
	if resp.Title != "Setup" {
		t.Errorf("title = %q", resp.Title)
	}

	// Resolution is base-sensitive.
	w = get(t, r, "/api/resolve?addr=.&base=docs")
	resp = decode[ResolveResponse](t, w)
	if resp.Variant != "target" || resp.Location != "/docs/" {
		t.Errorf("base-relative resolve = %+v", resp)
	}

	// Unresolvable addresses still report the parsed pointer.
	w = get(t, r, "/api/resolve?addr=missing")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp = decode[ResolveResponse](t, w)
	if resp.Location != "" || resp.Variant != "search" {
		t.Errorf("miss = %+v", resp)
	}

	// External addresses echo their href with no location.
	w = get(t, r, "/api/resolve?addr=https://example.com/x")
	resp = decode[ResolveResponse](t, w)
	if resp.Variant != "external" || resp.Href != "https://example.com/x" {
		t.Errorf("external = %+v", resp)
	}
}

func TestResolveAPI_Errors(t *testing.T) {
	r := testRouter(t)
	if w := get(t, r, "/api/resolve"); w.Code != http.StatusBadRequest {
		t.Errorf("missing addr status = %d", w.Code)
	}
	if w := get(t, r, "/api/resolve?addr=x&kind=widget"); w.Code != http.StatusBadRequest {
		t.Errorf("unknown kind status = %d", w.Code)
	}
	if w := get(t, r, "/api/resolve?addr=../x"); w.Code != http.StatusBadRequest {
		t.Errorf("escaping reference status = %d", w.Code)
	}
}

func TestListPages(t *testing.T) {
	r := testRouter(t)
	w := get(t, r, "/api/pages")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[PageListResponse](t, w)
	// Root, docs, docs/setup.
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
	if resp.Pages[0].Location != "/" {
		t.Errorf("first location = %q", resp.Pages[0].Location)
	}
}

func TestGetPage(t *testing.T) {
	r := testRouter(t)
	w := get(t, r, "/api/pages/docs/setup")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", w.Code, w.Body.String())
	}
	resp := decode[PageDetail](t, w)
	if resp.Location != "/docs/setup/" || resp.Title != "Setup" || resp.Kind != "article" {
		t.Errorf("detail = %+v", resp)
	}
	if len(resp.Tags) != 1 || resp.Tags[0] != "howto" {
		t.Errorf("tags = %v", resp.Tags)
	}

	w = get(t, r, "/api/pages/docs")
	resp = decode[PageDetail](t, w)
	if len(resp.Children) != 1 || resp.Children[0] != "/docs/setup/" {
		t.Errorf("children = %v", resp.Children)
	}

	if w := get(t, r, "/api/pages/nope"); w.Code != http.StatusNotFound {
		t.Errorf("missing page status = %d", w.Code)
	}
}

func TestSearchAPI(t *testing.T) {
	r := testRouter(t)

	if w := get(t, r, "/api/search"); w.Code != http.StatusBadRequest {
		t.Errorf("missing query status = %d", w.Code)
	}

	w := get(t, r, "/api/search?q=Install")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", w.Code, w.Body.String())
	}
	resp := decode[SearchResponse](t, w)
	if len(resp.Results) != 1 || resp.Results[0].Location != "/docs/setup/" {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestAuthMiddleware(t *testing.T) {
	r := NewRouter(testService(t), true, "secret", nil)

	if w := get(t, r, "/api/pages"); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("authenticated status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token status = %d", w.Code)
	}

	// The site itself and health stay open.
	if w := get(t, r, "/"); w.Code != http.StatusOK {
		t.Errorf("site status = %d", w.Code)
	}
	if w := get(t, r, "/health/live"); w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
}

func TestRequestKind(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/docs/setup", "entity"},
		{"/docs/", "entity"},
		{"/style.css", "style"},
		{"/assets/app.js", "script"},
		{"/img/logo.png", "image"},
		{"/file.unknown", "entity"},
	}
	for _, tc := range cases {
		if got := requestKind(tc.path); got.Token() != tc.want {
			t.Errorf("requestKind(%q) = %q, want %q", tc.path, got.Token(), tc.want)
		}
	}
}

func TestServiceResolve_External(t *testing.T) {
	svc := testService(t)
	res, err := svc.Resolve("https://example.com/", address.Entity(), address.Root)
	if err != nil {
		t.Fatalf("external resolve should not error: %v", err)
	}
	if res.Page != nil {
		t.Error("external pointers resolve to no page")
	}
	if res.Href != "https://example.com/" {
		t.Errorf("href = %q", res.Href)
	}
}
