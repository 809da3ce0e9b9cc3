package hyperview

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// Hull is a 3D convex hull. Each face lists indices into Points in
// counter-clockwise order seen from outside; coplanar triangles are merged,
// so faces may have more than three vertices.
type Hull struct {
	Points []r3.Vector
	Faces  [][]int
}

type hullFace struct {
	v    [3]int
	n    r3.Vector // unit outward normal, zero for sliver faces
	d    Real
	dead bool
}

// ConvexHull builds the hull incrementally: a seed tetrahedron from extreme
// points, then each remaining point in input order replaces the faces it
// sees with a fan to the horizon. ok is false for fewer than four points or
// a collinear/coplanar set.
func ConvexHull(pts []r3.Vector) (Hull, bool) {
	if len(pts) < 4 {
		return Hull{}, false
	}
	b := BoundsOf(pts)
	scale := b.MaxExtent()
	if !(scale > 0) || !isFinite(scale) {
		return Hull{}, false
	}
	eps := hullEpsilon * scale

	seed, ok := hullSeed(pts, eps)
	if !ok {
		return Hull{}, false
	}
	interior := pts[seed[0]].Add(pts[seed[1]]).Add(pts[seed[2]]).Add(pts[seed[3]]).Mul(0.25)

	faces := make([]hullFace, 0, 4*len(pts))
	addFace := func(a, b, c int) {
		faces = append(faces, newHullFace(pts, a, b, c))
	}
	orient := func(a, b, c int) {
		n := pts[b].Sub(pts[a]).Cross(pts[c].Sub(pts[a]))
		if n.Dot(interior.Sub(pts[a])) > 0 {
			b, c = c, b
		}
		addFace(a, b, c)
	}
	s := seed
	orient(s[0], s[1], s[2])
	orient(s[0], s[1], s[3])
	orient(s[0], s[2], s[3])
	orient(s[1], s[2], s[3])

	inSeed := map[int]bool{s[0]: true, s[1]: true, s[2]: true, s[3]: true}
	for i, p := range pts {
		if inSeed[i] {
			continue
		}
		var visible []int
		for fi := range faces {
			f := &faces[fi]
			if !f.dead && f.n.Dot(p)-f.d > eps {
				visible = append(visible, fi)
			}
		}
		if len(visible) == 0 {
			continue
		}
		directed := make(map[Edge]bool, 3*len(visible))
		for _, fi := range visible {
			v := faces[fi].v
			directed[Edge{v[0], v[1]}] = true
			directed[Edge{v[1], v[2]}] = true
			directed[Edge{v[2], v[0]}] = true
		}
		var horizon []Edge
		for _, fi := range visible {
			v := faces[fi].v
			for _, e := range [3]Edge{{v[0], v[1]}, {v[1], v[2]}, {v[2], v[0]}} {
				if !directed[Edge{e[1], e[0]}] {
					horizon = append(horizon, e)
				}
			}
			faces[fi].dead = true
		}
		for _, e := range horizon {
			addFace(e[0], e[1], i)
		}
	}

	return Hull{Points: pts, Faces: mergeCoplanar(pts, faces, eps)}, true
}

func newHullFace(pts []r3.Vector, a, b, c int) hullFace {
	n := pts[b].Sub(pts[a]).Cross(pts[c].Sub(pts[a]))
	l := n.Norm()
	f := hullFace{v: [3]int{a, b, c}}
	if l > 0 && isFinite(l) {
		f.n = n.Mul(1 / l)
		f.d = f.n.Dot(pts[a])
	}
	return f
}

// hullSeed picks four affinely independent extreme points.
func hullSeed(pts []r3.Vector, eps Real) ([4]int, bool) {
	var s [4]int
	for i, p := range pts {
		if p.X < pts[s[0]].X {
			s[0] = i
		}
	}
	p0 := pts[s[0]]
	best := -1.0
	for i, p := range pts {
		if d := p.Sub(p0).Norm(); d > best {
			best, s[1] = d, i
		}
	}
	if best <= eps {
		return s, false
	}
	dir := pts[s[1]].Sub(p0).Normalize()
	best = -1
	for i, p := range pts {
		if d := p.Sub(p0).Cross(dir).Norm(); d > best {
			best, s[2] = d, i
		}
	}
	if best <= eps {
		return s, false
	}
	n := pts[s[1]].Sub(p0).Cross(pts[s[2]].Sub(p0)).Normalize()
	best = -1
	for i, p := range pts {
		if d := math.Abs(n.Dot(p.Sub(p0))); d > best {
			best, s[3] = d, i
		}
	}
	if best <= eps {
		return s, false
	}
	return s, true
}

// mergeCoplanar groups live faces by supporting plane and returns each group
// as one polygon ordered counter-clockwise around its outward normal.
func mergeCoplanar(pts []r3.Vector, faces []hullFace, eps Real) [][]int {
	type group struct {
		n     r3.Vector
		d     Real
		verts []int
		seen  map[int]bool
	}
	var groups []*group
	for _, f := range faces {
		if f.dead || f.n == (r3.Vector{}) {
			continue
		}
		var g *group
		for _, c := range groups {
			if c.n.Dot(f.n) > 1-hullEpsilon && math.Abs(c.d-f.d) <= eps {
				g = c
				break
			}
		}
		if g == nil {
			g = &group{n: f.n, d: f.d, seen: make(map[int]bool)}
			groups = append(groups, g)
		}
		for _, v := range f.v {
			if !g.seen[v] {
				g.seen[v] = true
				g.verts = append(g.verts, v)
			}
		}
	}

	out := make([][]int, 0, len(groups))
	for _, g := range groups {
		if len(g.verts) < 3 {
			continue
		}
		if poly := orderPolygon(pts, g.verts, g.n, eps); len(poly) >= 3 {
			out = append(out, poly)
		}
	}
	return out
}

// orderPolygon returns the 2D convex hull of coplanar vertices, counter-
// clockwise around n, starting at the lowest index. Points inside the face
// or on its edges are dropped.
func orderPolygon(pts []r3.Vector, verts []int, n r3.Vector, eps Real) []int {
	u := n.Ortho()
	w := n.Cross(u)
	type p2 struct {
		x, y Real
		idx  int
	}
	ps := make([]p2, len(verts))
	for i, v := range verts {
		ps[i] = p2{pts[v].Dot(u), pts[v].Dot(w), v}
	}
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].x != ps[j].x {
			return ps[i].x < ps[j].x
		}
		if ps[i].y != ps[j].y {
			return ps[i].y < ps[j].y
		}
		return ps[i].idx < ps[j].idx
	})
	cross := func(o, a, b p2) Real { return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x) }
	tol := eps * eps
	chain := make([]p2, 0, 2*len(ps))
	for _, p := range ps {
		for len(chain) >= 2 && cross(chain[len(chain)-2], chain[len(chain)-1], p) <= tol {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, p)
	}
	lower := len(chain) + 1
	for i := len(ps) - 2; i >= 0; i-- {
		p := ps[i]
		for len(chain) >= lower && cross(chain[len(chain)-2], chain[len(chain)-1], p) <= tol {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, p)
	}
	chain = chain[:len(chain)-1]

	poly := make([]int, len(chain))
	start := 0
	for i, p := range chain {
		poly[i] = p.idx
		if p.idx < poly[start] {
			start = i
		}
	}
	return append(poly[start:], poly[:start]...)
}

// Triangulate fans each face from its first vertex; zero-area triangles from
// collinear boundary points are dropped.
func (h Hull) Triangulate() [][3]int {
	var tris [][3]int
	for _, f := range h.Faces {
		for k := 1; k+1 < len(f); k++ {
			t := [3]int{f[0], f[k], f[k+1]}
			a := h.Points[t[1]].Sub(h.Points[t[0]]).Cross(h.Points[t[2]].Sub(h.Points[t[0]]))
			if a.Norm() == 0 {
				continue
			}
			tris = append(tris, t)
		}
	}
	return tris
}

// Volume is the enclosed volume from the divergence theorem.
func (h Hull) Volume() Real {
	return meshVolume(h.Points, h.Triangulate())
}

func meshVolume(pts []r3.Vector, tris [][3]int) Real {
	v := 0.0
	for _, t := range tris {
		v += pts[t[0]].Dot(pts[t[1]].Cross(pts[t[2]]))
	}
	return v / 6
}
