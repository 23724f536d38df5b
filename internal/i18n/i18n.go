package i18n

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// Bundle resolves dotted keys against per-locale translation trees.
// It is read-only after construction and safe for concurrent use.
type Bundle struct {
	trees  map[Locale]Tree
	logger *zap.Logger
}

// Option customises a Bundle.
type Option func(*Bundle)

// WithLogger sets the logger that receives missing-key warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bundle) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBundle wraps already-loaded trees. A missing fallback tree is tolerated:
// every lookup then degrades to the raw key.
func NewBundle(trees map[Locale]Tree, opts ...Option) *Bundle {
	b := &Bundle{trees: make(map[Locale]Tree, len(trees)), logger: zap.NewNop()}
	for l, t := range trees {
		b.trees[l] = t
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Value is the result of a lookup: either a text leaf or a sub-tree.
type Value struct {
	key    string
	text   string
	tree   Tree
	locale Locale
	found  bool
}

// String returns the text leaf. Sub-tree and missed lookups return the key.
func (v Value) String() string {
	if v.tree != nil {
		return v.key
	}
	return v.text
}

// Key returns the key that was looked up.
func (v Value) Key() string { return v.key }

// Found reports whether any tree held the key.
func (v Value) Found() bool { return v.found }

// Locale returns the locale whose tree supplied the value. Empty on a miss.
func (v Value) Locale() Locale { return v.locale }

// IsTree reports whether the key addressed a nested group of strings.
func (v Value) IsTree() bool { return v.tree != nil }

// Tree returns the sub-tree unchanged, or nil for leaves and misses.
func (v Value) Tree() Tree { return v.tree }

// Strings returns the direct string children of a sub-tree, for callers
// that destructure several related labels from one lookup.
func (v Value) Strings() map[string]string {
	if v.tree == nil {
		return nil
	}
	out := make(map[string]string, len(v.tree))
	for k, child := range v.tree {
		if s, ok := child.(string); ok {
			out[k] = s
		}
	}
	return out
}

// MarshalJSON encodes leaves as strings and sub-trees as objects.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.tree != nil {
		return json.Marshal(v.tree)
	}
	return json.Marshal(v.text)
}

// Resolve looks key up in locale's tree, then in the fallback tree. When both
// miss it returns the key itself as text and logs a warning. It never fails.
func (b *Bundle) Resolve(locale Locale, key string) Value {
	if b == nil {
		return Value{key: key, text: key}
	}
	if t, ok := b.trees[locale]; ok {
		if v, ok := lookup(t, key); ok {
			return b.value(key, locale, v)
		}
	}
	if locale != Fallback {
		if t, ok := b.trees[Fallback]; ok {
			if v, ok := lookup(t, key); ok {
				return b.value(key, Fallback, v)
			}
		}
	}
	b.logger.Warn("translation key not found",
		zap.String("key", key),
		zap.String("locale", string(locale)),
	)
	return Value{key: key, text: key}
}

// T returns the text for key, falling back to the fallback locale and finally the key.
func (b *Bundle) T(locale Locale, key string) string {
	return b.Resolve(locale, key).String()
}

// Tree returns the full tree for a locale.
func (b *Bundle) Tree(locale Locale) (Tree, bool) {
	if b == nil {
		return nil, false
	}
	t, ok := b.trees[locale]
	return t, ok
}

// Missing lists the fallback keys that locale does not translate.
func (b *Bundle) Missing(locale Locale) []string {
	fb, ok := b.Tree(Fallback)
	if !ok || locale == Fallback {
		return nil
	}
	t, _ := b.Tree(locale)
	var out []string
	for _, key := range fb.Keys() {
		if _, ok := lookup(t, key); !ok {
			out = append(out, key)
		}
	}
	return out
}

func (b *Bundle) value(key string, locale Locale, v any) Value {
	switch val := v.(type) {
	case string:
		return Value{key: key, text: val, locale: locale, found: true}
	case Tree:
		return Value{key: key, tree: val, locale: locale, found: true}
	}
	return Value{key: key, text: key}
}

// lookup walks t segment by segment. Any missing segment, or descending into
// a leaf, is a miss.
func lookup(t Tree, key string) (any, bool) {
	if t == nil {
		return nil, false
	}
	var cur any = t
	for _, seg := range strings.Split(key, ".") {
		node, ok := cur.(Tree)
		if !ok {
			return nil, false
		}
		cur, ok = node[seg]
		if !ok {
			return nil, false
		}
	}
	switch cur.(type) {
	case string, Tree:
		return cur, true
	}
	return nil, false
}
