package sitemap

import "time"

// ChangeFrequency is the crawl hint attached to each entry.
type ChangeFrequency string

const (
	Weekly  ChangeFrequency = "weekly"
	Monthly ChangeFrequency = "monthly"
)

// Entry is a single crawlable URL with its SEO hints.
type Entry struct {
	URL             string
	LastModified    time.Time
	ChangeFrequency ChangeFrequency
	Priority        float64
}

// Record is any content record addressable by a slug.
type Record interface {
	RecordSlug() string
}

// Timestamped is implemented by records that carry their own modification time.
// A false second return means the build time is used instead.
type Timestamped interface {
	LastModified() (time.Time, bool)
}

// Records adapts a typed collection to the slice form a Family expects.
func Records[S ~[]T, T Record](items S) []Record {
	out := make([]Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Slug is a bare Record, handy for families assembled from plain string lists.
type Slug string

// RecordSlug implements Record.
func (s Slug) RecordSlug() string { return string(s) }

// Slugs wraps plain strings as records.
func Slugs(values ...string) []Record {
	out := make([]Record, len(values))
	for i, v := range values {
		out[i] = Slug(v)
	}
	return out
}

func lastModified(rec Record, now time.Time) time.Time {
	if ts, ok := rec.(Timestamped); ok {
		if t, ok := ts.LastModified(); ok && !t.IsZero() {
			return t
		}
	}
	return now
}
