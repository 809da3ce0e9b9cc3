package hyperview

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func unitCube() []r3.Vector {
	var pts []r3.Vector
	for i := 0; i < 8; i++ {
		pts = append(pts, r3.Vector{X: Real(i & 1), Y: Real(i >> 1 & 1), Z: Real(i >> 2 & 1)})
	}
	return pts
}

func TestConvexHullCube(t *testing.T) {
	h, ok := ConvexHull(unitCube())
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, h.Faces, test.ShouldHaveLength, 6)
	for _, f := range h.Faces {
		test.That(t, f, test.ShouldHaveLength, 4)
	}
	test.That(t, h.Triangulate(), test.ShouldHaveLength, 12)
	test.That(t, h.Volume(), test.ShouldAlmostEqual, 1, 1e-12)
}

func TestConvexHullTetrahedron(t *testing.T) {
	pts := []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1}}
	h, ok := ConvexHull(pts)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, h.Triangulate(), test.ShouldHaveLength, 4)
	test.That(t, h.Volume(), test.ShouldAlmostEqual, 1.0/6, 1e-12)
}

func TestConvexHullDegenerate(t *testing.T) {
	_, ok := ConvexHull([]r3.Vector{{}, {X: 1}, {Y: 1}})
	test.That(t, ok, test.ShouldBeFalse)

	_, ok = ConvexHull([]r3.Vector{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}, {X: 0.5, Y: 0.2}})
	test.That(t, ok, test.ShouldBeFalse)

	_, ok = ConvexHull([]r3.Vector{{}, {X: 1}, {X: 2}, {X: 3}})
	test.That(t, ok, test.ShouldBeFalse)

	_, ok = ConvexHull([]r3.Vector{{X: 1}, {X: 1}, {X: 1}, {X: 1}})
	test.That(t, ok, test.ShouldBeFalse)
}

func TestReconstructSolidDropsInterior(t *testing.T) {
	pts := append(unitCube(), r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, r3.Vector{X: 0.5, Y: 0.5, Z: 1})
	m, ok := ReconstructSolid(pts, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, DefaultSafetyHalf)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, m.Vertices, test.ShouldHaveLength, 8)
	test.That(t, m.Triangles, test.ShouldHaveLength, 12)
	test.That(t, m.Volume(), test.ShouldAlmostEqual, 1, 1e-12)
	for _, tri := range m.Triangles {
		for _, i := range tri {
			test.That(t, i, test.ShouldBeBetweenOrEqual, 0, len(m.Vertices)-1)
		}
	}
}

func TestReconstructSolidTooFew(t *testing.T) {
	_, ok := ReconstructSolid([]r3.Vector{{}, {X: 1}, {Y: 1}}, r3.Vector{}, DefaultSafetyHalf)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = ReconstructSolid(nil, r3.Vector{}, DefaultSafetyHalf)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestReconstructSolidDegenerateOutsideCube(t *testing.T) {
	far := DefaultSafetyHalf * 10
	for _, tc := range []struct {
		name   string
		points []r3.Vector
	}{
		{"collinear", []r3.Vector{{}, {X: 1}, {X: 2}, {X: far}}},
		{"coplanar", []r3.Vector{{}, {X: 1}, {Y: 1}, {X: far, Y: far}}},
		{"coincident", []r3.Vector{{X: far}, {X: far}, {X: far}, {X: far}}},
		{"duplicated triangle", []r3.Vector{{}, {}, {X: 1}, {X: 1}, {Y: far}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := ReconstructSolid(tc.points, r3.Vector{Z: 0.5}, DefaultSafetyHalf)
			test.That(t, ok, test.ShouldBeFalse)
			test.That(t, m.Triangles, test.ShouldBeEmpty)
		})
	}
}

func TestReconstructSolidSafetyClip(t *testing.T) {
	center := r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}
	pts := append(unitCube(), r3.Vector{X: 50, Y: 0.5, Z: 0.5})
	m, ok := ReconstructSolid(pts, center, DefaultSafetyHalf)
	test.That(t, ok, test.ShouldBeTrue)

	cube := CubeAround(center, DefaultSafetyHalf)
	for _, v := range m.Vertices {
		test.That(t, cube.Contains(v, 1e-6), test.ShouldBeTrue)
	}
	test.That(t, m.Volume(), test.ShouldBeGreaterThan, 1)

	unclipped, ok := ConvexHull(pts)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, m.Volume(), test.ShouldBeLessThan, unclipped.Volume())
}

func TestRawMeshRoundTrip(t *testing.T) {
	m, ok := ReconstructSolid(unitCube(), r3.Vector{}, DefaultSafetyHalf)
	test.That(t, ok, test.ShouldBeTrue)

	var buf bytes.Buffer
	test.That(t, WriteRawMesh(&buf, m), test.ShouldBeNil)
	test.That(t, buf.Len(), test.ShouldEqual, 8+8*3*8+12*3*4)
	got, err := ReadRawMesh(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldResemble, m)

	path := filepath.Join(t.TempDir(), "sub", "cube.raw")
	test.That(t, SaveRawMesh(path, m), test.ShouldBeNil)
	got, err = LoadRawMesh(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldResemble, m)

	_, err = ReadRawMesh(bytes.NewReader([]byte{1, 2, 3}))
	test.That(t, err, test.ShouldNotBeNil)
}
