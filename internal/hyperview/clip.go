package hyperview

// Edge is a pair of vertex indices.
type Edge [2]int

// ClipNear cuts an edge list at the frame's near hyperplane. Vertices with
// depth >= near are in front; an edge with both ends in front is kept, one
// with both ends behind is dropped, and a crossing edge is shortened to end
// at the linear interpolation point on the boundary.
//
// Output vertices are emitted in order of first reference by the output
// edges, each source vertex at most once, and intersection vertices are
// shared per unordered (behind, front) pair. Running ClipNear on its own
// output therefore returns it unchanged.
func ClipNear(frame ViewingFrame, near Real, verts []Vector4, edges []Edge) ([]Vector4, []Edge) {
	depth := make([]Real, len(verts))
	front := make([]bool, len(verts))
	for i, v := range verts {
		depth[i] = frame.Depth(v)
		front[i] = depth[i] >= near-clipEpsilon
	}

	outV := make([]Vector4, 0, len(verts))
	outE := make([]Edge, 0, len(edges))
	remap := make([]int, len(verts))
	for i := range remap {
		remap[i] = -1
	}
	cuts := make(map[Edge]int)

	emit := func(i int) int {
		if remap[i] < 0 {
			remap[i] = len(outV)
			outV = append(outV, verts[i])
		}
		return remap[i]
	}
	cut := func(behind, ahead int) int {
		key := Edge{behind, ahead}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if idx, ok := cuts[key]; ok {
			return idx
		}
		t := (near - depth[behind]) / (depth[ahead] - depth[behind])
		idx := len(outV)
		outV = append(outV, verts[behind].Lerp(verts[ahead], t))
		cuts[key] = idx
		return idx
	}

	for _, e := range edges {
		a, b := e[0], e[1]
		var ia, ib int
		switch {
		case front[a] && front[b]:
			ia = emit(a)
			ib = emit(b)
		case !front[a] && !front[b]:
			continue
		case front[a]:
			ia = emit(a)
			ib = cut(b, a)
		default:
			ia = cut(a, b)
			ib = emit(b)
		}
		outE = append(outE, Edge{ia, ib})
	}
	return outV, outE
}
