package sitemap

import (
	"strings"
	"time"
)

// Build enumerates every URL of the plan in declared order.
//
// Build performs no validation: empty or repeated slugs yield malformed or
// duplicate URLs. Use Audit to report them. now is shared by every entry
// that has no record-level timestamp.
func Build(plan Plan, now time.Time) []Entry {
	b := builder{
		base:     strings.TrimRight(plan.BaseURL, "/"),
		trailing: plan.TrailingSlash,
		now:      now,
		out:      make([]Entry, 0, Count(plan)),
	}
	for _, g := range plan.Groups {
		switch g.kind {
		case kindStatic:
			b.static(g.static)
		case kindFamily:
			b.family(g.family)
		case kindMatrix:
			b.matrix(g.matrix)
		}
	}
	return b.out
}

type builder struct {
	base     string
	trailing bool
	now      time.Time
	out      []Entry
}

func (b *builder) static(routes []StaticRoute) {
	for _, r := range routes {
		b.out = append(b.out, Entry{
			URL:             b.url(r.Path),
			LastModified:    b.now,
			ChangeFrequency: r.ChangeFrequency,
			Priority:        r.Priority,
		})
	}
}

func (b *builder) family(f Family) {
	freq := frequencyOr(f.ChangeFrequency)
	for _, rec := range f.Records {
		b.out = append(b.out, Entry{
			URL:             b.url(f.Base, rec.RecordSlug()),
			LastModified:    lastModified(rec, b.now),
			ChangeFrequency: freq,
			Priority:        f.Priority,
		})
	}
}

func (b *builder) matrix(m Matrix) {
	freq := frequencyOr(m.ChangeFrequency)
	for _, p := range m.Pairs {
		b.out = append(b.out, Entry{
			URL:             b.url(m.Base, p.Outer, p.Inner),
			LastModified:    b.now,
			ChangeFrequency: freq,
			Priority:        m.Priority,
		})
	}
}

func (b *builder) url(prefix string, segments ...string) string {
	return b.base + routePath(b.trailing, prefix, segments...)
}

// routePath joins prefix and segments verbatim; segments are not escaped.
func routePath(trailing bool, prefix string, segments ...string) string {
	var sb strings.Builder
	p := strings.TrimRight(prefix, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		sb.WriteByte('/')
	}
	sb.WriteString(p)
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(s)
	}
	if sb.Len() == 0 {
		return "/"
	}
	if trailing {
		sb.WriteByte('/')
	}
	return sb.String()
}

func frequencyOr(f ChangeFrequency) ChangeFrequency {
	if f == "" {
		return Monthly
	}
	return f
}
