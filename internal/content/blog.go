package content

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

const wordsPerMinute = 200

type blogFrontMatter struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Excerpt     string   `yaml:"excerpt"`
	Category    string   `yaml:"category"`
	Author      string   `yaml:"author"`
	PublishedAt string   `yaml:"published_at"`
	UpdatedAt   string   `yaml:"updated_at"`
	Tags        []string `yaml:"tags"`
}

var (
	markdown    = goldmark.New()
	stripPolicy = bluemonday.StrictPolicy()
)

func parseBlogPost(fileSlug string, raw []byte) (BlogPost, error) {
	fm, body := splitFrontMatter(string(raw))
	front := blogFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return BlogPost{}, fmt.Errorf("parse front matter: %w", err)
		}
	}

	src := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(src))

	post := BlogPost{
		Slug:        firstNonEmpty(strings.TrimSpace(front.Slug), fileSlug),
		Title:       strings.TrimSpace(front.Title),
		Excerpt:     strings.TrimSpace(front.Excerpt),
		Category:    strings.TrimSpace(front.Category),
		Author:      strings.TrimSpace(front.Author),
		Tags:        front.Tags,
		PublishedAt: parseContentDate(front.PublishedAt),
		UpdatedAt:   parseContentDate(front.UpdatedAt),
		ReadTime:    readTime(body),
		Body:        body,
	}
	if post.Title == "" {
		post.Title = firstHeading(doc, src)
	}
	if post.Title == "" {
		post.Title = prettifySlug(post.Slug)
	}
	if post.Excerpt == "" {
		excerpt, err := firstParagraph(doc, src)
		if err != nil {
			return BlogPost{}, err
		}
		post.Excerpt = excerpt
	}
	return post, nil
}

// firstHeading returns the text of the first level-one heading.
func firstHeading(doc ast.Node, src []byte) string {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			return strings.TrimSpace(inlineText(h, src))
		}
	}
	return ""
}

// firstParagraph renders the first top-level paragraph and strips it to text.
func firstParagraph(doc ast.Node, src []byte) (string, error) {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() != ast.KindParagraph {
			continue
		}
		var buf bytes.Buffer
		if err := markdown.Renderer().Render(&buf, src, n); err != nil {
			return "", fmt.Errorf("render excerpt: %w", err)
		}
		plain := html.UnescapeString(stripPolicy.Sanitize(buf.String()))
		return strings.Join(strings.Fields(plain), " "), nil
	}
	return "", nil
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func readTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
