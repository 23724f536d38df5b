package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/michael-berardi/expatsargentina/internal/sitemap"
)

//go:embed data
var embedded embed.FS

const (
	dataDir = "data"
	blogDir = "data/blog"
)

// Embedded loads the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	return Load(embedded)
}

// Dir loads the catalog from dir/data. An empty dir uses the embedded copy.
func Dir(dir string) (*Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return Embedded()
	}
	return Load(os.DirFS(dir))
}

// Load reads every collection from fsys. Missing or malformed files are errors;
// slug problems are left for the sitemap audit.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}
	steps := []struct {
		file string
		dst  any
	}{
		{"provinces.yaml", &c.Provinces},
		{"cities.yaml", &c.Cities},
		{"neighborhoods.yaml", &c.Neighborhoods},
		{"recipes.yaml", &c.Recipes},
		{"investments.yaml", &c.Investments},
		{"city-comparisons.yaml", &c.CityComparisons},
		{"visa-comparisons.yaml", &c.VisaComparisons},
		{"professions.yaml", &c.Professions},
		{"nationalities.yaml", &c.Nationalities},
		{"visa-types.yaml", &c.VisaTypes},
		{"city-services.yaml", &c.CityServices},
	}
	for _, step := range steps {
		if err := decodeYAML(fsys, path.Join(dataDir, step.file), step.dst); err != nil {
			return nil, err
		}
	}

	var matrices struct {
		VisasMatrix    sitemap.Table `yaml:"visas_matrix"`
		CitiesServices sitemap.Table `yaml:"cities_services"`
	}
	if err := decodeYAML(fsys, path.Join(dataDir, "matrices.yaml"), &matrices); err != nil {
		return nil, err
	}
	c.VisaMatrix = matrices.VisasMatrix
	c.CitiesServices = matrices.CitiesServices

	posts, err := loadBlog(fsys)
	if err != nil {
		return nil, err
	}
	c.Blog = posts
	return c, nil
}

func decodeYAML(fsys fs.FS, name string, dst any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("content: decode %s: %w", name, err)
	}
	return nil
}

// loadBlog parses every markdown file under data/blog, newest first.
func loadBlog(fsys fs.FS) (Collection[BlogPost], error) {
	entries, err := fs.ReadDir(fsys, blogDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: read %s: %w", blogDir, err)
	}
	posts := make(Collection[BlogPost], 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		name := path.Join(blogDir, entry.Name())
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", name, err)
		}
		post, err := parseBlogPost(strings.TrimSuffix(entry.Name(), ".md"), raw)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", name, err)
		}
		posts = append(posts, post)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PublishedAt.Equal(posts[j].PublishedAt) {
			return posts[i].PublishedAt.After(posts[j].PublishedAt)
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}
