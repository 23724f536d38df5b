// Command sitemap builds sitemap.xml offline and publishes it to a file,
// stdout or a Cloud Storage object.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/michael-berardi/expatsargentina/internal/config"
	"github.com/michael-berardi/expatsargentina/internal/content"
	"github.com/michael-berardi/expatsargentina/internal/observability"
	"github.com/michael-berardi/expatsargentina/internal/publish"
	"github.com/michael-berardi/expatsargentina/internal/site"
	"github.com/michael-berardi/expatsargentina/internal/sitemap"
)

// errAuditFailed is returned in strict mode when the audit reports issues.
var errAuditFailed = errors.New("sitemap audit reported issues")

type options struct {
	out    string
	bucket string
	object string
	strict bool
	now    time.Time
}

func main() {
	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	logger := baseLogger.Named("sitemap")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	opts, err := parseFlags(flag.CommandLine, os.Args[1:], cfg)
	if err != nil {
		logger.Fatal("parse flags", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, opts, logger, os.Stdout)
	stop()
	_ = baseLogger.Sync()
	if err != nil {
		logger.Error("sitemap build failed", zap.Error(err))
		os.Exit(1)
	}
}

// parseFlags reads the command line. Config values seed the flag defaults.
func parseFlags(fs *flag.FlagSet, args []string, cfg config.Config) (options, error) {
	var (
		opts options
		now  string
	)
	fs.StringVar(&opts.out, "out", "", `output file; "-" writes to stdout (default when no bucket is set)`)
	fs.StringVar(&opts.bucket, "bucket", cfg.Publish.Bucket, "Cloud Storage bucket to upload to")
	fs.StringVar(&opts.object, "object", cfg.Publish.Object, "object name inside the bucket")
	fs.BoolVar(&opts.strict, "strict", cfg.Sitemap.Strict, "fail when the audit reports issues")
	fs.StringVar(&now, "now", "", "RFC3339 build time for reproducible output")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if now != "" {
		t, err := time.Parse(time.RFC3339, now)
		if err != nil {
			return options{}, fmt.Errorf("invalid -now %q: %w", now, err)
		}
		opts.now = t.UTC()
	}
	if opts.out == "" && strings.TrimSpace(opts.bucket) == "" {
		opts.out = "-"
	}
	return opts, nil
}

func run(ctx context.Context, cfg config.Config, opts options, logger *zap.Logger, stdout io.Writer) error {
	catalog, err := content.Dir(cfg.Site.ContentDir)
	if err != nil {
		return err
	}
	plan := site.Plan(catalog, cfg.Site.BaseURL, cfg.Site.TrailingSlash)

	issues := sitemap.Audit(plan)
	for _, issue := range issues {
		logger.Warn("sitemap audit",
			zap.String("kind", string(issue.Kind)),
			zap.String("group", issue.Group),
			zap.String("value", issue.Value),
		)
	}
	if opts.strict && len(issues) > 0 {
		return fmt.Errorf("%w: %d", errAuditFailed, len(issues))
	}

	now := opts.now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	body, err := sitemap.Encode(sitemap.Build(plan, now))
	if err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}

	var dest publish.Multi
	if opts.out != "" {
		dest = append(dest, publish.FilePublisher{Path: opts.out, Stdout: stdout})
	}
	if strings.TrimSpace(opts.bucket) != "" {
		gcsPub, err := publish.NewGCSPublisher(ctx, opts.bucket, opts.object, cfg.Publish.CredentialsFile)
		if err != nil {
			return err
		}
		defer func() {
			if err := gcsPub.Close(); err != nil {
				logger.Warn("storage close error", zap.Error(err))
			}
		}()
		dest = append(dest, gcsPub)
	}

	if err := dest.Publish(ctx, body); err != nil {
		return fmt.Errorf("publish to %s: %w", dest.Location(), err)
	}
	logger.Info("sitemap published",
		zap.String("location", dest.Location()),
		zap.Int("entries", sitemap.Count(plan)),
		zap.Int("issues", len(issues)),
		zap.Int("bytes", len(body)),
	)
	return nil
}
