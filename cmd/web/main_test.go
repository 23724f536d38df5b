package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/michael-berardi/expatsargentina/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(config.WithEnvMap(map[string]string{
		"SITE_BASE_URL":         "https://staging.expatsargentina.com",
		"SITE_TRACE_PROJECT_ID": "expats-test",
	}), config.WithoutSystemEnv(), config.WithEnvFile(""))
	require.NoError(t, err)
	return cfg
}

func TestRouterServesSitemap(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	router, err := newRouter(testConfig(t), zap.New(core))
	require.NoError(t, err)

	require.Len(t, logs.FilterMessage("sitemap audit").All(), 12)
	loaded := logs.FilterMessage("site loaded").All()
	require.Len(t, loaded, 1)
	require.EqualValues(t, 562, loaded[0].ContextMap()["sitemap_entries"])

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	req.Header.Set("X-Cloud-Trace-Context", "105445aa7843bc8bf206b12000100000/1;o=1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<loc>https://staging.expatsargentina.com/visas-matrix/work/canada/</loc>")
	require.NotEmpty(t, rec.Header().Get("X-Cloud-Trace-Context"))
}

func TestRouterLocaleEndpoints(t *testing.T) {
	t.Parallel()

	router, err := newRouter(testConfig(t), zap.NewNop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/locale", nil)
	req.Header.Set("Accept-Language", "es-AR,es;q=0.9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"locale":"es","supported":["en","es"]}`, rec.Body.String())
}

func TestRouterBadContentDir(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Site.ContentDir = t.TempDir()
	_, err := newRouter(cfg, zap.NewNop())
	require.Error(t, err)
}
