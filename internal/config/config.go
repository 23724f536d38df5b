package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/michael-berardi/expatsargentina/internal/sitemap"
)

const (
	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 15 * time.Second
	defaultIdleTimeout   = 60 * time.Second
	defaultBaseURL       = "https://expatsargentina.com"
	defaultPublishObject = "sitemap.xml"
	defaultEnvironment   = "local"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	I18n    I18nConfig
	Publish PublishConfig
	Sitemap SitemapConfig
	Env     string
	Trace   TraceConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SiteConfig describes the published origin and where content comes from.
type SiteConfig struct {
	BaseURL       string
	TrailingSlash bool
	// ContentDir overrides the embedded catalog when set.
	ContentDir string
}

// I18nConfig locates translation trees. The fallback locale is always i18n.Fallback.
type I18nConfig struct {
	// Dir overrides the embedded locale trees when set.
	Dir string
}

// PublishConfig controls where the offline build uploads the sitemap.
type PublishConfig struct {
	Bucket          string
	Object          string
	CredentialsFile string
}

// SitemapConfig tunes sitemap generation.
type SitemapConfig struct {
	// Strict turns audit issues into build failures.
	Strict bool
}

// TraceConfig carries the Cloud Trace project used to format trace ids in logs.
type TraceConfig struct {
	ProjectID string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, environment
// variables and the explicit map, in increasing precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "SITE_SERVER_PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "SITE_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SITE_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SITE_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Site: SiteConfig{
			BaseURL:       stringWithDefault(lookup, "SITE_BASE_URL", defaultBaseURL),
			TrailingSlash: boolWithDefault(lookup, "SITE_TRAILING_SLASH", true),
			ContentDir:    stringWithDefault(lookup, "SITE_CONTENT_DIR", ""),
		},
		I18n: I18nConfig{
			Dir: stringWithDefault(lookup, "SITE_I18N_DIR", ""),
		},
		Publish: PublishConfig{
			Bucket:          stringWithDefault(lookup, "SITE_PUBLISH_BUCKET", ""),
			Object:          stringWithDefault(lookup, "SITE_PUBLISH_OBJECT", defaultPublishObject),
			CredentialsFile: stringWithDefault(lookup, "SITE_PUBLISH_CREDENTIALS_FILE", ""),
		},
		Sitemap: SitemapConfig{
			Strict: boolWithDefault(lookup, "SITE_SITEMAP_STRICT", false),
		},
		Env: strings.ToLower(stringWithDefault(lookup, "SITE_ENV", defaultEnvironment)),
		Trace: TraceConfig{
			ProjectID: stringWithDefault(lookup, "SITE_TRACE_PROJECT_ID", ""),
		},
	}

	if err := validateConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validateConfig also normalises the base URL in place.
func validateConfig(cfg *Config) error {
	var invalid []string
	if strings.TrimSpace(cfg.Server.Port) == "" {
		invalid = append(invalid, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		invalid = append(invalid, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		invalid = append(invalid, "Server.WriteTimeout")
	}
	if cfg.Server.IdleTimeout <= 0 {
		invalid = append(invalid, "Server.IdleTimeout")
	}
	if base, err := sitemap.NormalizeBaseURL(cfg.Site.BaseURL); err != nil || base == "" {
		invalid = append(invalid, "Site.BaseURL")
	} else {
		cfg.Site.BaseURL = base
	}
	if strings.TrimSpace(cfg.Publish.Object) == "" {
		invalid = append(invalid, "Publish.Object")
	}
	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return parsed
		}
		switch strings.ToLower(value) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		}
	}
	return fallback
}
