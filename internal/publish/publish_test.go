package publish

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilePublisherWritesAtomically(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "public", "sitemap.xml")
	p := FilePublisher{Path: path}
	require.NoError(t, p.Publish(context.Background(), []byte("<urlset/>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<urlset/>", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, path, p.Location())
}

func TestFilePublisherStdout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := FilePublisher{Path: "-", Stdout: &buf}
	require.NoError(t, p.Publish(context.Background(), []byte("xml")))
	require.Equal(t, "xml", buf.String())
	require.Equal(t, "stdout", p.Location())
}

func TestFilePublisherCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := FilePublisher{Path: filepath.Join(t.TempDir(), "s.xml")}.Publish(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

type fakeObject struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (f *fakeObject) Close() error {
	f.closed = true
	return f.closeErr
}

func TestGCSPublisherUploads(t *testing.T) {
	t.Parallel()

	obj := &fakeObject{}
	var gotBucket, gotObject string
	p := &GCSPublisher{bucket: "expats-public", object: "sitemap.xml", open: func(_ context.Context, bucket, object string) io.WriteCloser {
		gotBucket, gotObject = bucket, object
		return obj
	}}

	require.NoError(t, p.Publish(context.Background(), []byte("<urlset/>")))
	require.Equal(t, "expats-public", gotBucket)
	require.Equal(t, "sitemap.xml", gotObject)
	require.Equal(t, "<urlset/>", obj.String())
	require.True(t, obj.closed)
	require.Equal(t, "gs://expats-public/sitemap.xml", p.Location())
	require.NoError(t, p.Close())
}

func TestGCSPublisherFinalizeError(t *testing.T) {
	t.Parallel()

	obj := &fakeObject{closeErr: errors.New("precondition failed")}
	p := &GCSPublisher{bucket: "b", object: "o", open: func(context.Context, string, string) io.WriteCloser { return obj }}
	err := p.Publish(context.Background(), []byte("x"))
	require.ErrorContains(t, err, "finalize gs://b/o")
}

func TestNewGCSPublisherRequiresBucket(t *testing.T) {
	t.Parallel()

	_, err := NewGCSPublisher(context.Background(), " ", "sitemap.xml", "")
	require.Error(t, err)
}

type recordingPublisher struct {
	name string
	got  *[]string
	err  error
}

func (r recordingPublisher) Publish(context.Context, []byte) error {
	*r.got = append(*r.got, r.name)
	return r.err
}

func (r recordingPublisher) Location() string { return r.name }

func TestMulti(t *testing.T) {
	t.Parallel()

	var got []string
	boom := errors.New("boom")
	m := Multi{
		recordingPublisher{name: "a", got: &got},
		recordingPublisher{name: "b", got: &got, err: boom},
		recordingPublisher{name: "c", got: &got},
	}
	require.ErrorIs(t, m.Publish(context.Background(), nil), boom)
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, "a, b, c", m.Location())

	require.ErrorIs(t, Multi{}.Publish(context.Background(), nil), ErrNoDestination)
}
