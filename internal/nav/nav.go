// Package nav builds the primary navigation and breadcrumbs. Labels are
// i18n keys until a Translator resolves them.
package nav

import (
	"path"
	"strings"
)

// Item is a top-level navigation entry.
type Item struct {
	Path     string `json:"path"`
	LabelKey string `json:"labelKey"`
}

// RenderedItem is an Item with its active state and resolved label.
type RenderedItem struct {
	Href     string `json:"href"`
	LabelKey string `json:"labelKey"`
	Label    string `json:"label,omitempty"`
	Active   bool   `json:"active"`
}

// Crumb is one breadcrumb. LabelKey is empty for segments without a nav key;
// Label then holds the prettified segment.
type Crumb struct {
	Href     string `json:"href"`
	LabelKey string `json:"labelKey,omitempty"`
	Label    string `json:"label"`
	Active   bool   `json:"active"`
}

// Translator resolves a dotted label key.
type Translator interface {
	T(key string) string
}

// Main is the primary navigation in display order.
var Main = []Item{
	{Path: "/visas", LabelKey: "nav.visas"},
	{Path: "/cities", LabelKey: "nav.cities"},
	{Path: "/provinces", LabelKey: "nav.provinces"},
	{Path: "/neighborhoods", LabelKey: "nav.neighborhoods"},
	{Path: "/cost-of-living", LabelKey: "nav.costOfLiving"},
	{Path: "/food", LabelKey: "nav.food"},
	{Path: "/investments", LabelKey: "nav.investments"},
	{Path: "/blog", LabelKey: "nav.blog"},
}

// sections labels top-level segments that are not in Main.
var sections = map[string]string{
	"profession":  "nav.profession",
	"nationality": "nav.nationality",
	"resources":   "nav.resources",
	"stories":     "nav.stories",
	"site-map":    "nav.siteMap",
}

// Build renders Main with active state for currentPath.
func Build(currentPath string, tr Translator) []RenderedItem {
	currentPath = cleanPath(currentPath)
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Label:    translate(tr, it.LabelKey, ""),
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs starts with Home, labels known top-level sections with their
// nav key and prettifies deeper segments.
func Breadcrumbs(currentPath string, tr Translator) []Crumb {
	currentPath = cleanPath(currentPath)
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Label: translate(tr, "nav.home", "Home"), Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	parts := strings.Split(strings.TrimPrefix(currentPath, "/"), "/")
	href := ""
	for i, seg := range parts {
		href += "/" + seg
		c := Crumb{Href: href, Label: titleFromSegment(seg), Active: i == len(parts)-1}
		if i == 0 {
			if key := sectionKey(href); key != "" {
				c.LabelKey = key
				c.Label = translate(tr, key, c.Label)
			}
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

func sectionKey(top string) string {
	for _, it := range Main {
		if it.Path == top {
			return it.LabelKey
		}
	}
	return sections[strings.TrimPrefix(top, "/")]
}

// translate falls back to fallback when no translator is given or the key is
// unresolved.
func translate(tr Translator, key, fallback string) string {
	if tr == nil {
		return fallback
	}
	if v := tr.T(key); v != "" && v != key {
		return v
	}
	if fallback != "" {
		return fallback
	}
	return key
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
