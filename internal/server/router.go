package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates the root chi router: health checks, the JSON API under
// /api (auth-protected), and the catch-all site handler.
// sseHandler, if non-nil, is mounted at GET /api/events inside the auth
// group.
func NewRouter(svc *Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", healthOK)
	r.Get("/health/ready", healthOK)

	api := chi.NewRouter()
	api.Use(AuthMiddleware(authEnabled, token))
	api.Get("/resolve", h.Resolve)
	api.Get("/pages", h.ListPages)
	api.Get("/pages/*", h.GetPage)
	api.Get("/search", h.Search)
	if sseHandler != nil {
		api.Get("/events", sseHandler.ServeHTTP)
	}
	r.Mount("/api", api)

	// Everything else is a site address.
	r.Get("/*", h.ServeSite)

	return r
}

func healthOK(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
