package sitemap

// Axis is a named, ordered set of values used to build combinatorial URL spaces.
type Axis struct {
	Name   string
	Values []string
}

// Pair is one (outer, inner) combination emitted by a matrix family.
type Pair struct {
	Outer string
	Inner string
}

// Row lists the inner values published for one outer value.
type Row struct {
	Key    string   `yaml:"key"`
	Values []string `yaml:"values"`
}

// Table is a declarative matrix: each row pairs one outer value with its own
// ordered inner values. Unlike Cross, rows need not share the same inner set.
type Table struct {
	Outer string `yaml:"outer"`
	Inner string `yaml:"inner"`
	Rows  []Row  `yaml:"rows"`
}

// Cross returns the full cross-product of two axes, outer-major and inner-minor.
func Cross(outer, inner Axis) []Pair {
	pairs := make([]Pair, 0, len(outer.Values)*len(inner.Values))
	for _, o := range outer.Values {
		for _, in := range inner.Values {
			pairs = append(pairs, Pair{Outer: o, Inner: in})
		}
	}
	return pairs
}

// Pairs flattens the table in declared row order.
func (t Table) Pairs() []Pair {
	n := 0
	for _, row := range t.Rows {
		n += len(row.Values)
	}
	pairs := make([]Pair, 0, n)
	for _, row := range t.Rows {
		for _, v := range row.Values {
			pairs = append(pairs, Pair{Outer: row.Key, Inner: v})
		}
	}
	return pairs
}

// OuterAxis returns the table's row keys as an axis.
func (t Table) OuterAxis() Axis {
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row.Key)
	}
	return Axis{Name: t.Outer, Values: values}
}
