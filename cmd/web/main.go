package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/michael-berardi/expatsargentina/internal/config"
	"github.com/michael-berardi/expatsargentina/internal/content"
	"github.com/michael-berardi/expatsargentina/internal/handlers"
	"github.com/michael-berardi/expatsargentina/internal/i18n"
	"github.com/michael-berardi/expatsargentina/internal/observability"
	"github.com/michael-berardi/expatsargentina/internal/site"
	"github.com/michael-berardi/expatsargentina/internal/sitemap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	cfg, err := config.Load()
	if err != nil {
		var vErr *config.ValidationError
		if errors.As(err, &vErr) {
			logger.Fatal("invalid configuration", zap.Strings("fields", vErr.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	router, err := newRouter(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialise site", zap.Error(err))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr), zap.String("env", cfg.Env))
	go func() {
		serverLogger.Info("expatsargentina web listening", zap.String("base_url", cfg.Site.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newRouter loads content and translations and assembles the HTTP stack.
// Audit findings are logged and never block startup.
func newRouter(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	catalog, err := content.Dir(cfg.Site.ContentDir)
	if err != nil {
		return nil, err
	}
	trees, err := loadTrees(cfg.I18n.Dir)
	if err != nil {
		return nil, err
	}
	bundle := i18n.NewBundle(trees, i18n.WithLogger(logger.Named("i18n")))
	for _, locale := range i18n.Supported() {
		if missing := bundle.Missing(locale); len(missing) > 0 {
			logger.Debug("translations fall back", zap.String("locale", locale.String()), zap.Strings("keys", missing))
		}
	}

	plan := site.Plan(catalog, cfg.Site.BaseURL, cfg.Site.TrailingSlash)
	for _, issue := range sitemap.Audit(plan) {
		logger.Warn("sitemap audit",
			zap.String("kind", string(issue.Kind)),
			zap.String("group", issue.Group),
			zap.String("value", issue.Value),
		)
	}
	logger.Info("site loaded",
		zap.Int("sitemap_entries", sitemap.Count(plan)),
		zap.Int("blog_posts", catalog.Blog.Len()),
	)

	h := handlers.New(plan, bundle)
	return handlers.NewRouter(h,
		handlers.WithoutDefaultMiddlewares(),
		handlers.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			observability.InjectLoggerMiddleware(logger),
			observability.TraceMiddleware(cfg.Trace.ProjectID),
			observability.RecoveryMiddleware(logger),
			observability.RequestLoggerMiddleware(),
			middleware.Compress(5),
			middleware.Timeout(30*time.Second),
		),
	), nil
}

func loadTrees(dir string) (map[i18n.Locale]i18n.Tree, error) {
	if dir == "" {
		return i18n.EmbeddedTrees()
	}
	return i18n.DirTrees(dir)
}
