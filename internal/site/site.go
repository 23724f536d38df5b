// Package site declares the expatsargentina URL space: the hand-written
// routes and the content-driven families and matrices, in publication order.
package site

import (
	"github.com/michael-berardi/expatsargentina/internal/content"
	"github.com/michael-berardi/expatsargentina/internal/sitemap"
)

// DefaultBaseURL is the production origin.
const DefaultBaseURL = "https://expatsargentina.com"

func weekly(path string, priority float64) sitemap.StaticRoute {
	return sitemap.StaticRoute{Path: path, Priority: priority, ChangeFrequency: sitemap.Weekly}
}

func monthly(path string, priority float64) sitemap.StaticRoute {
	return sitemap.StaticRoute{Path: path, Priority: priority, ChangeFrequency: sitemap.Monthly}
}

// StaticRoutes returns the hand-written pages with their SEO hints.
func StaticRoutes() []sitemap.StaticRoute {
	return []sitemap.StaticRoute{
		weekly("/", 1.0),
		monthly("/about", 0.6),
		monthly("/banking", 0.8),
		monthly("/contact", 0.5),
		monthly("/cost-of-living", 0.9),
		monthly("/culture", 0.7),
		monthly("/first-30-days", 0.8),
		monthly("/healthcare", 0.9),
		monthly("/housing", 0.9),
		monthly("/learn-spanish", 0.7),
		monthly("/leaving", 0.6),
		weekly("/neighborhoods", 0.9),
		monthly("/newsletter", 0.5),
		monthly("/pet-importation", 0.6),
		monthly("/remote-work", 0.8),
		monthly("/resources", 0.7),
		monthly("/safety", 0.8),
		monthly("/social-life", 0.7),
		monthly("/stories", 0.6),
		monthly("/transportation", 0.7),

		monthly("/visas", 0.9),
		monthly("/visas/digital-nomad", 0.8),
		monthly("/visas/work", 0.8),
		monthly("/visas/retirement", 0.8),
		monthly("/visas/student", 0.7),
		monthly("/visas/investment", 0.8),
		monthly("/visas/tourist", 0.8),
		monthly("/visas/temporary", 0.8),
		monthly("/visas/permanent", 0.8),
		monthly("/visas/citizenship", 0.8),

		weekly("/food", 0.7),
		weekly("/food/recipes", 0.7),
		weekly("/food/restaurants", 0.7),
		monthly("/food/restaurants/buenos-aires", 0.7),
		monthly("/food/restaurants/best-parrillas", 0.7),
		monthly("/food/restaurants/cordoba", 0.6),
		monthly("/food/restaurants/mendoza", 0.6),
		monthly("/food/restaurants/bariloche", 0.6),
		monthly("/food/restaurants/rosario", 0.6),
		monthly("/food/restaurants/salta", 0.6),

		weekly("/provinces", 0.9),
		weekly("/cities", 0.9),
		monthly("/investments", 0.8),

		weekly("/cities/compare", 0.8),
		weekly("/visas/compare", 0.8),
	}
}

// Plan assembles the full sitemap plan from a loaded catalog.
func Plan(c *content.Catalog, baseURL string, trailingSlash bool) sitemap.Plan {
	if c == nil {
		c = &content.Catalog{}
	}
	family := func(name, base string, priority float64, records []sitemap.Record) sitemap.Group {
		return sitemap.FamilyGroup(sitemap.Family{
			Name:            name,
			Base:            base,
			Priority:        priority,
			ChangeFrequency: sitemap.Monthly,
			Records:         records,
		})
	}
	return sitemap.Plan{
		BaseURL:       baseURL,
		TrailingSlash: trailingSlash,
		Groups: []sitemap.Group{
			sitemap.StaticGroup("static", StaticRoutes()...),
			family("provinces", "/provinces", 0.8, sitemap.Records(c.Provinces)),
			family("cities", "/cities", 0.8, sitemap.Records(c.Cities)),
			family("neighborhoods", "/neighborhoods", 0.8, sitemap.Records(c.Neighborhoods)),
			family("recipes", "/food/recipes", 0.7, sitemap.Records(c.Recipes)),
			family("investments", "/investments", 0.7, sitemap.Records(c.Investments)),
			family("city-comparisons", "/cities/compare", 0.7, sitemap.Records(c.CityComparisons)),
			family("visa-comparisons", "/visas/compare", 0.7, sitemap.Records(c.VisaComparisons)),
			family("blog", "/blog", 0.7, sitemap.Records(c.Blog)),
			family("professions", "/profession", 0.7, sitemap.Records(c.Professions)),
			family("nationalities", "/nationality", 0.7, sitemap.Records(c.Nationalities)),
			sitemap.MatrixGroup(sitemap.Matrix{
				Name:            "visas-matrix",
				Base:            "/visas-matrix",
				Priority:        0.6,
				ChangeFrequency: sitemap.Monthly,
				Pairs:           c.VisaMatrix.Pairs(),
				OuterRef:        c.VisaTypes.Slugs(),
				InnerRef:        c.Nationalities.Slugs(),
			}),
			sitemap.MatrixGroup(sitemap.Matrix{
				Name:            "cities-services",
				Base:            "/cities-services",
				Priority:        0.6,
				ChangeFrequency: sitemap.Monthly,
				Pairs:           c.CitiesServices.Pairs(),
				OuterRef:        c.Cities.Slugs(),
				InnerRef:        c.CityServices.Slugs(),
			}),
		},
	}
}
