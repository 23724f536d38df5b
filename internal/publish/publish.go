// Package publish writes a built sitemap to its destination: a local file,
// stdout, or a Cloud Storage object.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const (
	contentType  = "application/xml; charset=utf-8"
	cacheControl = "public, max-age=3600"
)

// ErrNoDestination is returned when neither a file nor a bucket is configured.
var ErrNoDestination = errors.New("publish: no destination configured")

// Publisher stores one sitemap document.
type Publisher interface {
	Publish(ctx context.Context, body []byte) error
	// Location describes the destination for logs.
	Location() string
}

// FilePublisher writes to a path. "-" writes to Stdout.
type FilePublisher struct {
	Path   string
	Stdout io.Writer
}

// Publish implements Publisher. Files are written to a temporary sibling and
// renamed so readers never see a partial sitemap.
func (p FilePublisher) Publish(ctx context.Context, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Path == "-" {
		out := p.Stdout
		if out == nil {
			out = os.Stdout
		}
		_, err := out.Write(body)
		return err
	}
	dir := filepath.Dir(p.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("publish: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".sitemap-*.xml")
	if err != nil {
		return fmt.Errorf("publish: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("publish: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("publish: close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("publish: chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), p.Path); err != nil {
		return fmt.Errorf("publish: rename to %s: %w", p.Path, err)
	}
	return nil
}

// Location implements Publisher.
func (p FilePublisher) Location() string {
	if p.Path == "-" {
		return "stdout"
	}
	return p.Path
}

// objectWriterFunc opens a writer for bucket/object with the given attributes.
type objectWriterFunc func(ctx context.Context, bucket, object string) io.WriteCloser

// GCSPublisher uploads the sitemap to a Cloud Storage object.
type GCSPublisher struct {
	bucket string
	object string
	client *gcs.Client
	open   objectWriterFunc
}

// NewGCSPublisher creates a Cloud Storage client. credentialsFile may be empty
// to use application default credentials.
func NewGCSPublisher(ctx context.Context, bucket, object, credentialsFile string) (*GCSPublisher, error) {
	bucket = strings.TrimSpace(bucket)
	object = strings.TrimPrefix(strings.TrimSpace(object), "/")
	if bucket == "" || object == "" {
		return nil, errors.New("publish: bucket and object are required")
	}
	var opts []option.ClientOption
	if credentialsFile = strings.TrimSpace(credentialsFile); credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("publish: storage client: %w", err)
	}
	p := &GCSPublisher{bucket: bucket, object: object, client: client}
	p.open = func(ctx context.Context, bucket, object string) io.WriteCloser {
		w := client.Bucket(bucket).Object(object).NewWriter(ctx)
		w.ContentType = contentType
		w.CacheControl = cacheControl
		return w
	}
	return p, nil
}

// Publish implements Publisher.
func (p *GCSPublisher) Publish(ctx context.Context, body []byte) error {
	w := p.open(ctx, p.bucket, p.object)
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("publish: upload %s: %w", p.Location(), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("publish: finalize %s: %w", p.Location(), err)
	}
	return nil
}

// Location implements Publisher.
func (p *GCSPublisher) Location() string {
	return "gs://" + p.bucket + "/" + p.object
}

// Close releases the storage client.
func (p *GCSPublisher) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Close()
}

// Multi publishes to every destination in order and stops at the first error.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(ctx context.Context, body []byte) error {
	if len(m) == 0 {
		return ErrNoDestination
	}
	for _, p := range m {
		if err := p.Publish(ctx, body); err != nil {
			return err
		}
	}
	return nil
}

// Location implements Publisher.
func (m Multi) Location() string {
	locs := make([]string, 0, len(m))
	for _, p := range m {
		locs = append(locs, p.Location())
	}
	return strings.Join(locs, ", ")
}
