package sitemap

// StaticRoute is a hand-written route published with author-assigned hints.
type StaticRoute struct {
	Path            string
	Priority        float64
	ChangeFrequency ChangeFrequency
}

// Family publishes one URL per record under Base.
type Family struct {
	Name            string
	Base            string
	Priority        float64
	ChangeFrequency ChangeFrequency
	Records         []Record
}

// Matrix publishes one URL per pair under Base, as Base/outer/inner.
type Matrix struct {
	Name            string
	Base            string
	Priority        float64
	ChangeFrequency ChangeFrequency
	Pairs           []Pair

	// Optional reference sets consulted by Audit only.
	OuterRef []string
	InnerRef []string
}

type groupKind int

const (
	kindStatic groupKind = iota
	kindFamily
	kindMatrix
)

// Group is one block of the plan. Groups are emitted in declared order.
type Group struct {
	kind   groupKind
	name   string
	static []StaticRoute
	family Family
	matrix Matrix
}

// StaticGroup declares a block of static routes.
func StaticGroup(name string, routes ...StaticRoute) Group {
	return Group{kind: kindStatic, name: name, static: routes}
}

// FamilyGroup declares a simple dynamic family.
func FamilyGroup(f Family) Group {
	return Group{kind: kindFamily, name: f.Name, family: f}
}

// MatrixGroup declares a combinatorial family.
func MatrixGroup(m Matrix) Group {
	return Group{kind: kindMatrix, name: m.Name, matrix: m}
}

// Name returns the group's declared name.
func (g Group) Name() string { return g.name }

// Len returns the number of entries the group emits.
func (g Group) Len() int {
	switch g.kind {
	case kindStatic:
		return len(g.static)
	case kindFamily:
		return len(g.family.Records)
	case kindMatrix:
		return len(g.matrix.Pairs)
	}
	return 0
}

// Plan is the full, ordered description of the site's URL space.
type Plan struct {
	// BaseURL is prefixed to every path. Empty yields site-relative URLs.
	BaseURL       string
	TrailingSlash bool
	Groups        []Group
}

// Count returns the number of entries Build would produce.
func Count(plan Plan) int {
	n := 0
	for _, g := range plan.Groups {
		n += g.Len()
	}
	return n
}
