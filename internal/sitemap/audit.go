package sitemap

import (
	"fmt"
	"strings"
	"time"
)

// IssueKind classifies a problem found by Audit.
type IssueKind string

const (
	IssueEmptySlug     IssueKind = "empty_slug"
	IssueDuplicateSlug IssueKind = "duplicate_slug"
	IssueDuplicatePair IssueKind = "duplicate_pair"
	IssueUnknownValue  IssueKind = "unknown_value"
	IssueDuplicateURL  IssueKind = "duplicate_url"
)

// Issue describes one suspicious record or URL in a plan.
type Issue struct {
	Kind  IssueKind
	Group string
	Value string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s %q", i.Group, i.Kind, i.Value)
}

// Audit reports data-authoring problems that Build passes through silently.
// It never modifies the plan; callers decide whether issues are fatal.
func Audit(plan Plan) []Issue {
	var issues []Issue
	for _, g := range plan.Groups {
		switch g.kind {
		case kindFamily:
			issues = append(issues, auditFamily(g.family)...)
		case kindMatrix:
			issues = append(issues, auditMatrix(g.matrix)...)
		}
	}

	// Build is pure, so any timestamp works for URL collisions.
	seen := make(map[string]string)
	entries := Build(plan, time.Time{})
	idx := 0
	for _, g := range plan.Groups {
		for n := g.Len(); n > 0; n-- {
			u := entries[idx].URL
			idx++
			if first, ok := seen[u]; ok {
				issues = append(issues, Issue{Kind: IssueDuplicateURL, Group: g.name, Value: u + " (first in " + first + ")"})
				continue
			}
			seen[u] = g.name
		}
	}
	return issues
}

func auditFamily(f Family) []Issue {
	var issues []Issue
	seen := make(map[string]struct{}, len(f.Records))
	for _, rec := range f.Records {
		slug := rec.RecordSlug()
		if strings.TrimSpace(slug) == "" {
			issues = append(issues, Issue{Kind: IssueEmptySlug, Group: f.Name})
			continue
		}
		if _, ok := seen[slug]; ok {
			issues = append(issues, Issue{Kind: IssueDuplicateSlug, Group: f.Name, Value: slug})
			continue
		}
		seen[slug] = struct{}{}
	}
	return issues
}

func auditMatrix(m Matrix) []Issue {
	var issues []Issue
	outerRef := setOf(m.OuterRef)
	innerRef := setOf(m.InnerRef)
	reported := make(map[string]struct{})
	report := func(kind IssueKind, value string) {
		key := string(kind) + "|" + value
		if _, ok := reported[key]; ok {
			return
		}
		reported[key] = struct{}{}
		issues = append(issues, Issue{Kind: kind, Group: m.Name, Value: value})
	}

	seen := make(map[Pair]struct{}, len(m.Pairs))
	for _, p := range m.Pairs {
		if strings.TrimSpace(p.Outer) == "" || strings.TrimSpace(p.Inner) == "" {
			issues = append(issues, Issue{Kind: IssueEmptySlug, Group: m.Name, Value: p.Outer + "/" + p.Inner})
			continue
		}
		if _, ok := seen[p]; ok {
			issues = append(issues, Issue{Kind: IssueDuplicatePair, Group: m.Name, Value: p.Outer + "/" + p.Inner})
			continue
		}
		seen[p] = struct{}{}
		if outerRef != nil {
			if _, ok := outerRef[p.Outer]; !ok {
				report(IssueUnknownValue, p.Outer)
			}
		}
		if innerRef != nil {
			if _, ok := innerRef[p.Inner]; !ok {
				report(IssueUnknownValue, p.Inner)
			}
		}
	}
	return issues
}

func setOf(values []string) map[string]struct{} {
	if values == nil {
		return nil
	}
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
