package hyperview

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Mesh is a triangulated surface: a flat vertex buffer and triangles
// indexing into it, counter-clockwise seen from outside.
type Mesh struct {
	Vertices  []r3.Vector
	Triangles [][3]int
}

// Volume is the enclosed volume of a closed outward-oriented mesh.
func (m Mesh) Volume() Real { return meshVolume(m.Vertices, m.Triangles) }

// halfSpace is the set n·p <= d.
type halfSpace struct {
	n r3.Vector
	d Real
}

func (h halfSpace) dist(p r3.Vector) Real { return h.n.Dot(p) - h.d }

// ReconstructSolid turns projected points of a Solid group into a surface.
// When a point leaves the safety cube of the given half-extent around center,
// the hull is first intersected with the cube; the convex hull is then fan
// triangulated per face. ok is false ("no solid") for fewer than four points
// or a degenerate hull.
func ReconstructSolid(points []r3.Vector, center r3.Vector, half Real) (Mesh, bool) {
	if len(points) < 4 {
		return Mesh{}, false
	}
	if degenerate(points) {
		DebugLog("no solid: %d points span less than three dimensions", len(points))
		return Mesh{}, false
	}
	cube := CubeAround(center, half)
	pts := points
	for _, p := range points {
		if !cube.Contains(p, 0) {
			pts = safetyClip(points, center, cube)
			break
		}
	}
	hull, ok := ConvexHull(pts)
	if !ok {
		DebugLog("no solid: hull of %d points is degenerate", len(pts))
		return Mesh{}, false
	}
	return compactMesh(hull), true
}

// degenerate reports whether points are coincident, collinear or coplanar;
// such input has no solid whatever the safety clip would make of it.
func degenerate(points []r3.Vector) bool {
	scale := BoundsOf(points).MaxExtent()
	if !(scale > 0) || !isFinite(scale) {
		return true
	}
	_, ok := hullSeed(points, hullEpsilon*scale)
	return !ok
}

// compactMesh keeps only the hull's vertices, renumbered in first-use order.
func compactMesh(h Hull) Mesh {
	tris := h.Triangulate()
	remap := make(map[int]int)
	var m Mesh
	for _, t := range tris {
		var nt [3]int
		for k, v := range t {
			idx, ok := remap[v]
			if !ok {
				idx = len(m.Vertices)
				remap[v] = idx
				m.Vertices = append(m.Vertices, h.Points[v])
			}
			nt[k] = idx
		}
		m.Triangles = append(m.Triangles, nt)
	}
	return m
}

// safetyClip intersects the convex hull of pts with the cube. The half-spaces
// are the cube faces plus every supporting plane of pts; the result is every
// pairwise-triple plane intersection inside all of them, de-duplicated.
func safetyClip(pts []r3.Vector, center r3.Vector, cube Bounds3) []r3.Vector {
	if len(pts) > maxSafetyClipPoints {
		DebugLog("safety clip skipped: %d points exceed %d", len(pts), maxSafetyClipPoints)
		return pts
	}
	planes := cube.planes()
	planes = append(planes, supportingPlanes(pts, center)...)
	if len(planes) > maxSafetyClipPlanes {
		DebugLog("safety clip skipped: %d planes exceed %d", len(planes), maxSafetyClipPlanes)
		return pts
	}

	set := make(map[[3]int64]struct{})
	var out []r3.Vector
	for i := 0; i < len(planes); i++ {
		for j := i + 1; j < len(planes); j++ {
			for k := j + 1; k < len(planes); k++ {
				p, ok := intersect3(planes[i], planes[j], planes[k])
				if !ok || !insideAll(planes, p) {
					continue
				}
				pushUnique3(set, &out, p)
			}
		}
	}
	DebugLog("safety clip: %d points -> %d points from %d planes", len(pts), len(out), len(planes))
	return out
}

// supportingPlanes returns the planes through point triples with every other
// point on one side, oriented so those points are inside. A plane with all
// points on it is oriented by center.
func supportingPlanes(pts []r3.Vector, center r3.Vector) []halfSpace {
	scale := 0.0
	for _, p := range pts {
		scale = math.Max(scale, p.Sub(center).Norm())
	}
	tol := hullEpsilon * math.Max(scale, 1)

	var out []halfSpace
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				n := pts[j].Sub(pts[i]).Cross(pts[k].Sub(pts[i]))
				l := n.Norm()
				if !(l > tol*tol) || !isFinite(l) {
					continue
				}
				h := halfSpace{n: n.Mul(1 / l)}
				h.d = h.n.Dot(pts[i])
				above, below := false, false
				for _, p := range pts {
					s := h.dist(p)
					if s > tol {
						above = true
					} else if s < -tol {
						below = true
					}
				}
				switch {
				case above && below:
					continue
				case above, !below && h.dist(center) > 0:
					h = halfSpace{n: h.n.Mul(-1), d: -h.d}
				}
				if !containsPlane(out, h, tol) {
					out = append(out, h)
				}
			}
		}
	}
	return out
}

func containsPlane(hs []halfSpace, h halfSpace, tol Real) bool {
	for _, o := range hs {
		if o.n.Dot(h.n) > 1-hullEpsilon && math.Abs(o.d-h.d) <= tol {
			return true
		}
	}
	return false
}

// intersect3 solves the 3x3 system of the three plane equations; near-singular
// triples are skipped.
func intersect3(a, b, c halfSpace) (r3.Vector, bool) {
	A := mat.NewDense(3, 3, []float64{
		a.n.X, a.n.Y, a.n.Z,
		b.n.X, b.n.Y, b.n.Z,
		c.n.X, c.n.Y, c.n.Z,
	})
	if math.Abs(mat.Det(A)) < singularDet {
		return r3.Vector{}, false
	}
	var x mat.VecDense
	if err := x.SolveVec(A, mat.NewVecDense(3, []float64{a.d, b.d, c.d})); err != nil {
		return r3.Vector{}, false
	}
	p := r3.Vector{X: x.AtVec(0), Y: x.AtVec(1), Z: x.AtVec(2)}
	if !isFinite(p.X) || !isFinite(p.Y) || !isFinite(p.Z) {
		return r3.Vector{}, false
	}
	return p, true
}

func insideAll(hs []halfSpace, p r3.Vector) bool {
	for _, h := range hs {
		if h.dist(p) > 1e-7*math.Max(1, math.Abs(h.d)) {
			return false
		}
	}
	return true
}

func pushUnique3(set map[[3]int64]struct{}, out *[]r3.Vector, p r3.Vector) {
	k := [3]int64{
		int64(math.Round(p.X * dedupeQuantum)),
		int64(math.Round(p.Y * dedupeQuantum)),
		int64(math.Round(p.Z * dedupeQuantum)),
	}
	if _, ok := set[k]; ok {
		return
	}
	set[k] = struct{}{}
	*out = append(*out, p)
}
