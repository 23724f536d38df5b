package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.IdleTimeout != 60*time.Second {
		t.Errorf("unexpected idle timeout: %s", cfg.Server.IdleTimeout)
	}
	if cfg.Site.BaseURL != "https://expatsargentina.com" {
		t.Errorf("unexpected base url %s", cfg.Site.BaseURL)
	}
	if !cfg.Site.TrailingSlash {
		t.Error("expected trailing slash by default")
	}
	if cfg.I18n.Dir != "" {
		t.Errorf("expected embedded locales by default, got %s", cfg.I18n.Dir)
	}
	if cfg.Publish.Object != "sitemap.xml" {
		t.Errorf("unexpected publish object %s", cfg.Publish.Object)
	}
	if cfg.Sitemap.Strict {
		t.Error("expected non-strict sitemap by default")
	}
	if cfg.Env != "local" {
		t.Errorf("expected local env, got %s", cfg.Env)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"SITE_SERVER_PORT":              "9090",
		"SITE_SERVER_WRITE_TIMEOUT":     "20s",
		"SITE_BASE_URL":                 "https://Staging.ExpatsArgentina.com/",
		"SITE_TRAILING_SLASH":           "false",
		"SITE_CONTENT_DIR":              "/srv/content",
		"SITE_I18N_DIR":                 "/srv/i18n",
		"SITE_PUBLISH_BUCKET":           "expats-public",
		"SITE_PUBLISH_CREDENTIALS_FILE": "/secrets/sa.json",
		"SITE_SITEMAP_STRICT":           "yes",
		"SITE_ENV":                      "Prod",
		"SITE_TRACE_PROJECT_ID":         "expats-prod",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Server.WriteTimeout != 20*time.Second {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Site.BaseURL != "https://staging.expatsargentina.com" {
		t.Errorf("expected normalised base url, got %s", cfg.Site.BaseURL)
	}
	if cfg.Site.TrailingSlash {
		t.Error("expected trailing slash disabled")
	}
	if cfg.Site.ContentDir != "/srv/content" || cfg.I18n.Dir != "/srv/i18n" {
		t.Errorf("unexpected dirs %q %q", cfg.Site.ContentDir, cfg.I18n.Dir)
	}
	if cfg.Publish.Bucket != "expats-public" || cfg.Publish.CredentialsFile != "/secrets/sa.json" {
		t.Errorf("unexpected publish config %+v", cfg.Publish)
	}
	if !cfg.Sitemap.Strict {
		t.Error("expected strict sitemap")
	}
	if cfg.Env != "prod" || cfg.Trace.ProjectID != "expats-prod" {
		t.Errorf("unexpected env/trace %s %s", cfg.Env, cfg.Trace.ProjectID)
	}
}

func TestLoadValidationError(t *testing.T) {
	env := map[string]string{
		"SITE_SERVER_READ_TIMEOUT": "-1s",
		"SITE_BASE_URL":            "ftp://expatsargentina.com",
		"SITE_SERVER_PORT":         " ",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string]bool{"Server.ReadTimeout": true, "Site.BaseURL": true, "Server.Port": true}
	fields := vErr.Fields()
	if len(fields) != len(want) {
		t.Fatalf("unexpected fields %v", fields)
	}
	for _, f := range fields {
		if !want[f] {
			t.Errorf("unexpected field %s", f)
		}
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# local overrides\nexport SITE_SERVER_PORT=7070\nSITE_PUBLISH_BUCKET=\"from-dotenv\"\nSITE_ENV=staging\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("SITE_PUBLISH_BUCKET", "from-system")
	t.Setenv("SITE_ENV", "from-system")

	cfg, err := Load(WithEnvFile(envPath), WithEnvMap(map[string]string{"SITE_ENV": "from-map"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected dotenv port, got %s", cfg.Server.Port)
	}
	if cfg.Publish.Bucket != "from-system" {
		t.Errorf("expected system env to beat dotenv, got %s", cfg.Publish.Bucket)
	}
	if cfg.Env != "from-map" {
		t.Errorf("expected explicit map to win, got %s", cfg.Env)
	}
}

func TestLoadMissingDotEnvIgnored(t *testing.T) {
	_, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "absent.env")), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}

func TestLoadIgnoresFallbackLocaleKey(t *testing.T) {
	env := map[string]string{"SITE_I18N_FALLBACK": "pt"}
	if _, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile("")); err != nil {
		t.Fatalf("expected fallback locale key to be ignored, got %v", err)
	}
}
