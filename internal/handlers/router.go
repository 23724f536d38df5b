package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/michael-berardi/expatsargentina/internal/middleware"
)

const defaultTimeout = 30 * time.Second

type routerConfig struct {
	middlewares []func(http.Handler) http.Handler
}

// RouterOption customises the router before construction.
type RouterOption func(*routerConfig)

// WithMiddlewares appends global middleware after the defaults.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) RouterOption {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithoutDefaultMiddlewares drops RequestID, RealIP and Timeout.
func WithoutDefaultMiddlewares() RouterOption {
	return func(cfg *routerConfig) {
		cfg.middlewares = nil
	}
}

// NewRouter mounts every route of h behind the shared middleware.
func NewRouter(h *Handlers, opts ...RouterOption) chi.Router {
	cfg := routerConfig{
		middlewares: []func(http.Handler) http.Handler{
			chimw.RequestID,
			chimw.RealIP,
			chimw.Timeout(defaultTimeout),
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()
	for _, mw := range cfg.middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, newError("route_not_found", fmt.Sprintf("no route for %s", clip(req.URL.Path, 120)), http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, newError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, clip(req.URL.Path, 120)), http.StatusMethodNotAllowed))
	})

	h.Register(r)
	return r
}

// Register mounts the routes on r. Only the visitor-facing API routes carry
// locale state; the sitemap and robots.txt are the same for everyone.
func (h *Handlers) Register(r chi.Router) {
	r.Get("/healthz", Healthz)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)

	r.Route("/api", func(api chi.Router) {
		api.Get("/sitemap/audit", h.SitemapAudit)
		api.Get("/i18n/{locale}", h.Translations)
		api.Get("/i18n/{locale}/t", h.Translate)

		api.Group(func(lr chi.Router) {
			lr.Use(middleware.VaryLocale)
			lr.Use(middleware.Locale(h.bundle))
			lr.Get("/locale", h.GetLocale)
			lr.Post("/locale", h.SetLocale)
			lr.Get("/nav", h.Nav)
		})
	})
}
