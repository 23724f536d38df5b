// Package handlers serves the sitemap, robots.txt and the translation,
// locale and navigation JSON endpoints.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/michael-berardi/expatsargentina/internal/i18n"
	"github.com/michael-berardi/expatsargentina/internal/middleware"
	"github.com/michael-berardi/expatsargentina/internal/nav"
	"github.com/michael-berardi/expatsargentina/internal/observability"
	"github.com/michael-berardi/expatsargentina/internal/sitemap"
)

const maxLocaleBody = 1 << 10

// Handlers holds the read-only state every route shares.
type Handlers struct {
	plan    sitemap.Plan
	bundle  *i18n.Bundle
	now     func() time.Time
	meter   metric.Meter
	metrics instruments
}

// Option customises Handlers.
type Option func(*Handlers)

// WithClock overrides the build time source.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		if now != nil {
			h.now = now
		}
	}
}

// New wires handlers for a fixed plan and translation bundle.
func New(plan sitemap.Plan, bundle *i18n.Bundle, opts ...Option) *Handlers {
	h := &Handlers{plan: plan, bundle: bundle, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	h.metrics = newInstruments(h.meter)
	return h
}

// Sitemap builds the sitemap for the current time and writes it as XML.
func (h *Handlers) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx, span := observability.StartSpan(r.Context(), "sitemap.build")
	start := time.Now()
	entries := sitemap.Build(h.plan, h.now().UTC())
	span.SetAttributes(attribute.Int("sitemap.entries", len(entries)))

	var buf bytes.Buffer
	err := sitemap.WriteXML(&buf, entries)
	span.End()
	h.metrics.recordBuild(ctx, time.Since(start), len(entries))
	if err != nil {
		observability.FromContext(ctx).Error("encode sitemap", zap.Error(err))
		writeError(ctx, w, newError("sitemap_unavailable", "sitemap could not be generated", http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", sitemap.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(buf.Bytes())
}

// Robots allows every crawler and points at the sitemap.
func (h *Handlers) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", strings.TrimRight(h.plan.BaseURL, "/"))
}

// SitemapAudit lists the data problems the sitemap build passes through.
func (h *Handlers) SitemapAudit(w http.ResponseWriter, r *http.Request) {
	issues := sitemap.Audit(h.plan)
	type issue struct {
		Kind  sitemap.IssueKind `json:"kind"`
		Group string            `json:"group"`
		Value string            `json:"value"`
	}
	out := make([]issue, 0, len(issues))
	for _, is := range issues {
		out = append(out, issue{Kind: is.Kind, Group: is.Group, Value: is.Value})
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"entries": sitemap.Count(h.plan),
		"issues":  out,
	})
}

// Translations returns the whole tree of one locale.
func (h *Handlers) Translations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale, err := i18n.ParseLocale(chi.URLParam(r, "locale"))
	if err != nil {
		writeError(ctx, w, newError("unsupported_locale", err.Error(), http.StatusNotFound))
		return
	}
	tree, ok := h.bundle.Tree(locale)
	if !ok {
		writeError(ctx, w, newError("not_found", "no translations for "+locale.String(), http.StatusNotFound))
		return
	}
	w.Header().Set("Content-Language", locale.String())
	writeJSON(ctx, w, http.StatusOK, tree)
}

// Translate resolves ?key= for one locale. The response mirrors what the
// resolver returns: text, a sub-tree, or the key itself on a miss.
func (h *Handlers) Translate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale, err := i18n.ParseLocale(chi.URLParam(r, "locale"))
	if err != nil {
		writeError(ctx, w, newError("unsupported_locale", err.Error(), http.StatusNotFound))
		return
	}
	key := strings.TrimSpace(r.URL.Query().Get("key"))
	if key == "" {
		writeError(ctx, w, newError("invalid_request", "key is required", http.StatusBadRequest))
		return
	}
	v := h.bundle.Resolve(locale, key)
	h.metrics.recordLookup(ctx, locale.String(), v.Locale().String(), v.Found())
	w.Header().Set("Content-Language", locale.String())
	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"key":        key,
		"locale":     locale,
		"value":      v,
		"found":      v.Found(),
		"resolvedIn": v.Locale(),
	})
}

type localeResponse struct {
	Locale    i18n.Locale   `json:"locale"`
	Supported []i18n.Locale `json:"supported"`
}

// GetLocale reports the visitor's current locale.
func (h *Handlers) GetLocale(w http.ResponseWriter, r *http.Request) {
	state := middleware.LocaleState(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, localeResponse{Locale: state.Locale(), Supported: i18n.Supported()})
}

// SetLocale applies a new locale from a form field or JSON body. Unsupported
// values are rejected and the previous locale stays in effect.
func (h *Handlers) SetLocale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	value, err := localeFromRequest(w, r)
	if err != nil {
		writeError(ctx, w, newError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	state := middleware.LocaleState(ctx)
	if !state.SetLocale(value) {
		observability.FromContext(ctx).Info("unsupported locale rejected", zap.String("requested", clip(value, 16)))
		writeError(ctx, w, newError("unsupported_locale", "unsupported locale", http.StatusBadRequest).
			with("locale", state.Locale()))
		return
	}
	w.Header().Set("Content-Language", state.Locale().String())
	writeJSON(ctx, w, http.StatusOK, localeResponse{Locale: state.Locale(), Supported: i18n.Supported()})
}

func localeFromRequest(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLocaleBody)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body struct {
			Locale string `json:"locale"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return "", errors.New("malformed json body")
		}
		return body.Locale, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", errors.New("malformed form body")
	}
	return r.PostForm.Get("locale"), nil
}

// Nav returns the main navigation and breadcrumbs for ?path= with labels in
// the visitor's locale.
func (h *Handlers) Nav(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := middleware.LocaleState(ctx)
	path := r.URL.Query().Get("path")
	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"locale":      state.Locale(),
		"items":       nav.Build(path, state),
		"breadcrumbs": nav.Breadcrumbs(path, state),
	})
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
