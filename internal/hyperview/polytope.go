package hyperview

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Polytope is a regular convex 4-polytope at unit circumradius: its vertices
// and the edges joining vertex pairs at the minimal distance.
type Polytope struct {
	Name  string
	Verts []Vector4
	Edges []Edge
}

type polytopeEntry struct {
	name    string
	aliases []string
	verts   func() []Vector4
}

var catalogue = []polytopeEntry{
	{name: "5-cell", aliases: []string{"cell5", "simplex", "pentachoron"}, verts: verts5Unit},
	{name: "8-cell", aliases: []string{"cell8", "tesseract", "hypercube"}, verts: verts8Unit},
	{name: "16-cell", aliases: []string{"cell16", "orthoplex"}, verts: verts16Unit},
	{name: "24-cell", aliases: []string{"cell24", "octaplex"}, verts: verts24Unit},
	{name: "600-cell", aliases: []string{"cell600"}, verts: verts600Unit},
	{name: "120-cell", aliases: []string{"cell120"}, verts: verts120Unit},
}

// PolytopeNames lists the catalogue in ascending vertex count order.
func PolytopeNames() []string {
	out := make([]string, len(catalogue))
	for i, e := range catalogue {
		out[i] = e.name
	}
	return out
}

// NewPolytope builds a catalogue polytope scaled to the given circumradius.
func NewPolytope(name string, scale Real) (Polytope, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, e := range catalogue {
		if key != e.name && !lo.Contains(e.aliases, key) {
			continue
		}
		if !(scale > 0) || !isFinite(scale) {
			return Polytope{}, errors.Errorf("polytope %q: scale must be > 0, got %.6g", e.name, scale)
		}
		vs := e.verts()
		edges := minDistanceEdges(vs)
		for i := range vs {
			vs[i] = vs[i].Mul(scale)
		}
		DebugLog("polytope %s: %d vertices, %d edges", e.name, len(vs), len(edges))
		return Polytope{Name: e.name, Verts: vs, Edges: edges}, nil
	}
	return Polytope{}, errors.Wrapf(ErrUnknownPolytope, "%q", name)
}

// minDistanceEdges joins every pair whose distance equals the smallest
// non-zero pairwise distance, with a relative tolerance.
func minDistanceEdges(vs []Vector4) []Edge {
	best := math.Inf(1)
	for i := range vs {
		for j := i + 1; j < len(vs); j++ {
			if d := vs[i].Sub(vs[j]).Len(); d > epsDegenerate && d < best {
				best = d
			}
		}
	}
	if math.IsInf(best, 1) {
		return nil
	}
	limit := best * (1 + 1e-6)
	var out []Edge
	for i := range vs {
		for j := i + 1; j < len(vs); j++ {
			if d := vs[i].Sub(vs[j]).Len(); d > epsDegenerate && d <= limit {
				out = append(out, Edge{i, j})
			}
		}
	}
	return out
}

// ---- canonical vertex sets (unit circumradius) ----

// verts5Unit places the five unit vectors of R^5, minus their centroid, in
// the hyperplane orthogonal to (1,1,1,1,1) via an orthonormal basis.
func verts5Unit() []Vector4 {
	B := [4][5]Real{
		{1 / math.Sqrt2, -1 / math.Sqrt2, 0, 0, 0},
		{1 / math.Sqrt(6), 1 / math.Sqrt(6), -2 / math.Sqrt(6), 0, 0},
		{1 / math.Sqrt(12), 1 / math.Sqrt(12), 1 / math.Sqrt(12), -3 / math.Sqrt(12), 0},
		{1 / math.Sqrt(20), 1 / math.Sqrt(20), 1 / math.Sqrt(20), 1 / math.Sqrt(20), -4 / math.Sqrt(20)},
	}
	out := make([]Vector4, 5)
	for i := 0; i < 5; i++ {
		var e [5]Real
		for k := range e {
			e[k] = -0.2
		}
		e[i] += 1
		var v [4]Real
		for r := 0; r < 4; r++ {
			for k := 0; k < 5; k++ {
				v[r] += B[r][k] * e[k]
			}
		}
		out[i] = vec4(v).Norm()
	}
	return out
}

func verts8Unit() []Vector4 {
	out := make([]Vector4, 0, 16)
	for _, v := range signVariants([4]Real{0.5, 0.5, 0.5, 0.5}, [4]bool{true, true, true, true}) {
		out = append(out, vec4(v))
	}
	return out
}

func verts16Unit() []Vector4 {
	out := make([]Vector4, 0, 8)
	for a := 0; a < 4; a++ {
		for _, s := range []Real{1, -1} {
			var v [4]Real
			v[a] = s
			out = append(out, vec4(v))
		}
	}
	return out
}

// verts24Unit: all permutations of (±1, ±1, 0, 0) scaled by 1/√2.
func verts24Unit() []Vector4 {
	set := make(map[[4]int64]struct{}, 32)
	out := make([]Vector4, 0, 24)
	addPerms(set, &out, [4]Real{1, 1, 0, 0}, allPerms4Distinct)
	return normalizeAll(out)
}

// verts600Unit:
// 8 of (±1, 0, 0, 0) permuted; 16 of (±1/2, ±1/2, ±1/2, ±1/2); and
// 96 even permutations of ½(±φ, ±1, ±1/φ, 0) with all sign combinations.
func verts600Unit() []Vector4 {
	phi := (1 + math.Sqrt(5)) / 2
	set := make(map[[4]int64]struct{}, 128)
	out := make([]Vector4, 0, 120)

	addPerms(set, &out, [4]Real{1, 0, 0, 0}, allPerms4Distinct)
	addPerms(set, &out, [4]Real{0.5, 0.5, 0.5, 0.5}, allPerms4Distinct)
	addPerms(set, &out, [4]Real{phi / 2, 0.5, 0.5 / phi, 0}, evenPerms4)

	if len(out) != 120 {
		DebugLog("verts600Unit: expected 120, got %d", len(out))
	}
	return normalizeAll(out)
}

// verts120Unit uses the circumradius √8 coordinates:
//
//	24  all permutations of (0, 0, ±2, ±2)
//	64  all permutations of (±φ⁻², ±φ, ±φ, ±φ)
//	64  all permutations of (±1, ±1, ±1, ±√5)
//	64  all permutations of (±φ⁻¹, ±φ⁻¹, ±φ⁻¹, ±φ²)
//	96  even permutations of (0, ±φ⁻², ±1, ±φ²)
//	96  even permutations of (0, ±φ⁻¹, ±φ, ±√5)
//	192 even permutations of (±φ⁻¹, ±1, ±φ, ±2)
func verts120Unit() []Vector4 {
	phi := (1 + math.Sqrt(5)) / 2
	inv := 1 / phi
	rt5 := math.Sqrt(5)

	set := make(map[[4]int64]struct{}, 640)
	out := make([]Vector4, 0, 600)

	addPerms(set, &out, [4]Real{0, 0, 2, 2}, allPerms4Distinct)
	addPerms(set, &out, [4]Real{inv * inv, phi, phi, phi}, allPerms4Distinct)
	addPerms(set, &out, [4]Real{1, 1, 1, rt5}, allPerms4Distinct)
	addPerms(set, &out, [4]Real{inv, inv, inv, phi * phi}, allPerms4Distinct)
	addPerms(set, &out, [4]Real{0, inv * inv, 1, phi * phi}, evenPerms4)
	addPerms(set, &out, [4]Real{0, inv, phi, rt5}, evenPerms4)
	addPerms(set, &out, [4]Real{inv, 1, phi, 2}, evenPerms4)

	if len(out) != 600 {
		DebugLog("verts120Unit: expected 600, got %d", len(out))
	}
	return normalizeAll(out)
}

// ---- helpers ----

func normalizeAll(vs []Vector4) []Vector4 {
	for i := range vs {
		vs[i] = vs[i].Norm()
	}
	return vs
}

// addPerms adds every permutation (from perms) of base, with every sign
// choice on its non-zero entries, skipping duplicates.
func addPerms(set map[[4]int64]struct{}, out *[]Vector4, base [4]Real, perms func() [][]int) {
	for _, p := range perms() {
		v := [4]Real{base[p[0]], base[p[1]], base[p[2]], base[p[3]]}
		mask := [4]bool{v[0] != 0, v[1] != 0, v[2] != 0, v[3] != 0}
		for _, s := range signVariants(v, mask) {
			pushUnique(set, out, s)
		}
	}
}

// evenPerms4 lists the 12 even permutations of (0,1,2,3).
func evenPerms4() [][]int {
	return [][]int{
		{0, 1, 2, 3}, {0, 2, 3, 1}, {0, 3, 1, 2},
		{1, 0, 3, 2}, {1, 2, 0, 3}, {1, 3, 2, 0},
		{2, 0, 1, 3}, {2, 1, 3, 0}, {2, 3, 0, 1},
		{3, 0, 2, 1}, {3, 1, 0, 2}, {3, 2, 1, 0},
	}
}

// allPerms4Distinct lists all 24 permutations of (0,1,2,3).
func allPerms4Distinct() [][]int {
	out := make([][]int, 0, 24)
	var rec func(cur []int, used [4]bool)
	rec = func(cur []int, used [4]bool) {
		if len(cur) == 4 {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := 0; i < 4; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			rec(append(cur, i), used)
			used[i] = false
		}
	}
	rec(make([]int, 0, 4), [4]bool{})
	return out
}

// signVariants flips the signs of the masked entries in all 2^k ways.
func signVariants(vals [4]Real, mask [4]bool) [][4]Real {
	out := make([][4]Real, 0, 16)
	for s := 0; s < 16; s++ {
		v := vals
		skip := false
		for i := 0; i < 4; i++ {
			if (s>>i)&1 == 0 {
				continue
			}
			if !mask[i] {
				skip = true
				break
			}
			v[i] = -v[i]
		}
		if !skip {
			out = append(out, v)
		}
	}
	return out
}

func pushUnique(set map[[4]int64]struct{}, out *[]Vector4, v [4]Real) {
	const q = 1e9
	k := [4]int64{
		int64(math.Round(v[0] * q)),
		int64(math.Round(v[1] * q)),
		int64(math.Round(v[2] * q)),
		int64(math.Round(v[3] * q)),
	}
	if _, ok := set[k]; ok {
		return
	}
	set[k] = struct{}{}
	*out = append(*out, vec4(v))
}
