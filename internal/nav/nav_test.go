package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michael-berardi/expatsargentina/internal/i18n"
)

func spanish(t *testing.T) *i18n.State {
	t.Helper()
	trees, err := i18n.EmbeddedTrees()
	require.NoError(t, err)
	s := i18n.NewState(i18n.NewBundle(trees), &i18n.MemoryStore{}, "")
	require.True(t, s.SetLocale("es"))
	return s
}

func TestBuildActiveState(t *testing.T) {
	t.Parallel()

	items := Build("/visas/work/", nil)
	require.Len(t, items, len(Main))
	for _, it := range items {
		require.Equal(t, it.Href == "/visas", it.Active, it.Href)
	}

	for _, it := range Build("/visas-matrix/work/canada", nil) {
		require.False(t, it.Active, it.Href)
	}
}

func TestBuildResolvesLabels(t *testing.T) {
	t.Parallel()

	items := Build("/", spanish(t))
	require.Equal(t, "Visas", items[0].Label)
	require.Equal(t, "Ciudades", items[1].Label)
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("/cities/compare/buenos-aires-vs-mendoza/", spanish(t))
	require.Len(t, crumbs, 4)
	require.Equal(t, Crumb{Href: "/", LabelKey: "nav.home", Label: "Inicio"}, crumbs[0])
	require.Equal(t, Crumb{Href: "/cities", LabelKey: "nav.cities", Label: "Ciudades"}, crumbs[1])
	require.Equal(t, Crumb{Href: "/cities/compare", Label: "Compare"}, crumbs[2])
	require.Equal(t, Crumb{Href: "/cities/compare/buenos-aires-vs-mendoza", Label: "Buenos aires vs mendoza", Active: true}, crumbs[3])
}

func TestBreadcrumbsSectionsAndFallback(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("/stories", spanish(t))
	require.Len(t, crumbs, 2)
	// es has no nav.stories, so the English label is used.
	require.Equal(t, "Expat Stories", crumbs[1].Label)
	require.True(t, crumbs[1].Active)

	crumbs = Breadcrumbs("/wine", nil)
	require.Equal(t, "Home", crumbs[0].Label)
	require.Equal(t, Crumb{Href: "/wine", Label: "Wine", Active: true}, crumbs[1])
}

func TestBreadcrumbsHome(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"", "/", "//"} {
		crumbs := Breadcrumbs(p, nil)
		require.Len(t, crumbs, 1, p)
		require.True(t, crumbs[0].Active)
	}
}
