package content

import (
	"errors"
	"time"

	"github.com/michael-berardi/expatsargentina/internal/sitemap"
)

// ErrNotFound is returned when a slug is not present in a collection.
var ErrNotFound = errors.New("content: not found")

// Record is anything addressable by slug.
type Record interface {
	RecordSlug() string
}

// Collection is an ordered list of records of one type. Order is the
// authoring order and is preserved by every consumer.
type Collection[T Record] []T

// Len returns the number of records.
func (c Collection[T]) Len() int { return len(c) }

// Slugs returns every slug in order, duplicates included.
func (c Collection[T]) Slugs() []string {
	out := make([]string, len(c))
	for i, item := range c {
		out[i] = item.RecordSlug()
	}
	return out
}

// Find returns the first record with slug.
func (c Collection[T]) Find(slug string) (T, error) {
	for _, item := range c {
		if item.RecordSlug() == slug {
			return item, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

type Province struct {
	Slug    string `yaml:"slug"`
	Name    string `yaml:"name"`
	Capital string `yaml:"capital"`
	Region  string `yaml:"region"`
}

func (p Province) RecordSlug() string { return p.Slug }

type City struct {
	Slug     string `yaml:"slug"`
	Name     string `yaml:"name"`
	Province string `yaml:"province"`
}

func (c City) RecordSlug() string { return c.Slug }

type Neighborhood struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
	City string `yaml:"city"`
}

func (n Neighborhood) RecordSlug() string { return n.Slug }

type Recipe struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	SpanishName string `yaml:"spanish_name"`
}

func (r Recipe) RecordSlug() string { return r.Slug }

type InvestmentSector struct {
	Slug      string `yaml:"slug"`
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
}

func (s InvestmentSector) RecordSlug() string { return s.Slug }

// CityComparison pairs two city slugs on one comparison page.
type CityComparison struct {
	Slug  string `yaml:"slug"`
	CityA string `yaml:"city_a"`
	CityB string `yaml:"city_b"`
}

func (c CityComparison) RecordSlug() string { return c.Slug }

type VisaComparison struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	VisaA string `yaml:"visa_a"`
	VisaB string `yaml:"visa_b"`
}

func (c VisaComparison) RecordSlug() string { return c.Slug }

type Profession struct {
	Slug     string `yaml:"slug"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

func (p Profession) RecordSlug() string { return p.Slug }

type Nationality struct {
	Slug    string `yaml:"slug"`
	Name    string `yaml:"name"`
	Demonym string `yaml:"demonym"`
	Region  string `yaml:"region"`
}

func (n Nationality) RecordSlug() string { return n.Slug }

type VisaType struct {
	Slug      string `yaml:"slug"`
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
}

func (v VisaType) RecordSlug() string { return v.Slug }

type CityService struct {
	Slug     string `yaml:"slug"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

func (s CityService) RecordSlug() string { return s.Slug }

// BlogPost is a markdown article. Body holds the markdown after front matter.
type BlogPost struct {
	Slug        string
	Title       string
	Excerpt     string
	Category    string
	Author      string
	Tags        []string
	PublishedAt time.Time
	UpdatedAt   time.Time
	ReadTime    int
	Body        string
}

func (p BlogPost) RecordSlug() string { return p.Slug }

// LastModified prefers the update date and falls back to the publish date.
func (p BlogPost) LastModified() (time.Time, bool) {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt, true
	}
	return p.PublishedAt, !p.PublishedAt.IsZero()
}

// Catalog is every collection and matrix table the site publishes.
type Catalog struct {
	Provinces       Collection[Province]
	Cities          Collection[City]
	Neighborhoods   Collection[Neighborhood]
	Recipes         Collection[Recipe]
	Investments     Collection[InvestmentSector]
	CityComparisons Collection[CityComparison]
	VisaComparisons Collection[VisaComparison]
	Blog            Collection[BlogPost]
	Professions     Collection[Profession]
	Nationalities   Collection[Nationality]
	VisaTypes       Collection[VisaType]
	CityServices    Collection[CityService]

	VisaMatrix     sitemap.Table
	CitiesServices sitemap.Table
}
