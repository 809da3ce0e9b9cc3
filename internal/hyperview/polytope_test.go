package hyperview

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestPolytopeCounts(t *testing.T) {
	for _, tc := range []struct {
		name  string
		verts int
		edges int
	}{
		{"5-cell", 5, 10},
		{"8-cell", 16, 32},
		{"16-cell", 8, 24},
		{"24-cell", 24, 96},
		{"600-cell", 120, 720},
		{"120-cell", 600, 1200},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPolytope(tc.name, 1)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, p.Name, test.ShouldEqual, tc.name)
			test.That(t, p.Verts, test.ShouldHaveLength, tc.verts)
			test.That(t, p.Edges, test.ShouldHaveLength, tc.edges)
			for _, v := range p.Verts {
				test.That(t, v.Len(), test.ShouldAlmostEqual, 1, 1e-9)
			}
			// every vertex of a regular polytope has the same degree
			deg := make([]int, len(p.Verts))
			for _, e := range p.Edges {
				test.That(t, e[0], test.ShouldBeLessThan, e[1])
				deg[e[0]]++
				deg[e[1]]++
			}
			for _, d := range deg {
				test.That(t, d, test.ShouldEqual, 2*tc.edges/tc.verts)
			}
		})
	}
}

func TestPolytopeAliasesAndScale(t *testing.T) {
	a, err := NewPolytope("  Tesseract ", 2.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.Name, test.ShouldEqual, "8-cell")
	for _, v := range a.Verts {
		test.That(t, v.Len(), test.ShouldAlmostEqual, 2.5, 1e-12)
		test.That(t, math.Abs(v.X), test.ShouldAlmostEqual, 1.25, 1e-12)
	}
	b, err := NewPolytope("simplex", 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Name, test.ShouldEqual, "5-cell")
}

func TestPolytopeErrors(t *testing.T) {
	_, err := NewPolytope("dodecahedron", 1)
	test.That(t, errors.Is(err, ErrUnknownPolytope), test.ShouldBeTrue)

	for _, s := range []Real{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewPolytope("8-cell", s)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestPolytopesListing(t *testing.T) {
	infos, err := Polytopes()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, infos, test.ShouldHaveLength, len(PolytopeNames()))
	test.That(t, infos[0], test.ShouldResemble, PolytopeInfo{Name: "5-cell", Vertices: 5, Edges: 10})
}
