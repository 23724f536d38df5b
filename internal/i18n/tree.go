package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"regexp"
	"sort"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed locales/*.json
var embedded embed.FS

// Tree is a nested translation mapping. Values are string leaves or nested Trees.
type Tree map[string]any

// Keys returns every leaf key in dotted form, sorted.
func (t Tree) Keys() []string {
	var out []string
	var walk func(prefix string, node Tree)
	walk = func(prefix string, node Tree) {
		for k, v := range node {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			switch val := v.(type) {
			case string:
				out = append(out, key)
			case Tree:
				walk(key, val)
			}
		}
	}
	walk("", t)
	sort.Strings(out)
	return out
}

// LoadTrees reads <locale>.json for every supported locale from fsys.
// The fallback locale is required; other locales may be absent.
func LoadTrees(fsys fs.FS) (map[Locale]Tree, error) {
	policy := leafPolicy()
	trees := make(map[Locale]Tree, len(supported))
	for _, l := range supported {
		raw, err := fs.ReadFile(fsys, "locales/"+string(l)+".json")
		if err != nil {
			if l != Fallback && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load locale %s: %w", l, err)
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		tree, err := toTree(m, "", policy)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", l, err)
		}
		trees[l] = tree
	}
	return trees, nil
}

// EmbeddedTrees loads the locale trees compiled into the binary.
func EmbeddedTrees() (map[Locale]Tree, error) {
	return LoadTrees(embedded)
}

// DirTrees loads locale trees from dir/locales/*.json.
func DirTrees(dir string) (map[Locale]Tree, error) {
	return LoadTrees(os.DirFS(dir))
}

func toTree(m map[string]any, prefix string, policy *bluemonday.Policy) (Tree, error) {
	out := make(Tree, len(m))
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[k] = sanitizeLeaf(val, policy)
		case map[string]any:
			sub, err := toTree(val, key, policy)
			if err != nil {
				return nil, err
			}
			out[k] = sub
		default:
			return nil, fmt.Errorf("key %s: unsupported value type %T", key, v)
		}
	}
	return out, nil
}

// leafPolicy allows the inline markup translators use (emphasis, links) and
// strips everything executable.
func leafPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(false)
	return policy
}

// markupTag matches the start of an element, comment or processing
// instruction. A bare "<18" is text.
var markupTag = regexp.MustCompile(`<[A-Za-z!/?]`)

// sanitizeLeaf strips disallowed markup and keeps text characters as written.
// Plain leaves are returned untouched. When unescaping the sanitised leaf
// would produce markup the policy rejects (entity-encoded tags), the escaped
// sanitised form is kept instead.
func sanitizeLeaf(s string, policy *bluemonday.Policy) string {
	if !markupTag.MatchString(s) {
		return s
	}
	safe := policy.Sanitize(s)
	out := html.UnescapeString(safe)
	if html.UnescapeString(policy.Sanitize(out)) != out {
		return safe
	}
	return out
}
