package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/michael-berardi/expatsargentina/internal/i18n"
	"github.com/michael-berardi/expatsargentina/internal/observability"
)

// LocaleCookie holds the visitor's chosen locale.
const LocaleCookie = "locale"

const localeCookieMaxAge = 365 * 24 * time.Hour

type ctxKey string

const ctxKeyLocaleState ctxKey = "locale_state"

// CookieStore persists the locale preference in a cookie. Save writes a
// Set-Cookie header on the response being built.
type CookieStore struct {
	r *http.Request
	w http.ResponseWriter
}

// NewCookieStore binds a store to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{r: r, w: w}
}

// Load implements i18n.PreferenceStore.
func (s *CookieStore) Load() (string, bool) {
	c, err := s.r.Cookie(LocaleCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Save implements i18n.PreferenceStore.
func (s *CookieStore) Save(value string) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     LocaleCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(localeCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// Locale builds the visitor's locale state from the cookie or Accept-Language,
// stores it on the request context and mirrors it in Content-Language.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := i18n.NewState(bundle, NewCookieStore(w, r), r.Header.Get("Accept-Language"))
			ctx := WithLocaleState(r.Context(), state)
			logger := observability.FromContext(ctx).With(zap.String("locale", state.Locale().String()))
			ctx = observability.WithLogger(ctx, logger)

			w.Header().Set("Content-Language", state.Locale().String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithLocaleState stores state on ctx.
func WithLocaleState(ctx context.Context, state *i18n.State) context.Context {
	return context.WithValue(ctx, ctxKeyLocaleState, state)
}

// LocaleState returns the request's locale state. It is nil outside the
// Locale middleware; i18n.State methods tolerate nil.
func LocaleState(ctx context.Context) *i18n.State {
	s, _ := ctx.Value(ctxKeyLocaleState).(*i18n.State)
	return s
}

// VaryLocale marks responses as varying by the inputs locale resolution reads.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		w.Header().Add("Vary", "Cookie")
		next.ServeHTTP(w, r)
	})
}
