package hyperview

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func vec4AlmostEqual(t *testing.T, got, want Vector4, tol Real) {
	t.Helper()
	test.That(t, got.X, test.ShouldAlmostEqual, want.X, tol)
	test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, tol)
	test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, tol)
	test.That(t, got.W, test.ShouldAlmostEqual, want.W, tol)
}

func randVec4(rng *rand.Rand) Vector4 {
	return Vector4{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
}

func TestVectorOps(t *testing.T) {
	v := Vector4{1, 2, 3, 4}
	w := Vector4{-1, 0.5, 2, -2}

	test.That(t, v.Add(w), test.ShouldResemble, Vector4{0, 2.5, 5, 2})
	test.That(t, v.Sub(w), test.ShouldResemble, Vector4{2, 1.5, 1, 6})
	test.That(t, v.Mul(3), test.ShouldResemble, Vector4{3, 6, 9, 12})
	test.That(t, v.Dot(w), test.ShouldEqual, Real(1*(-1)+2*0.5+3*2+4*(-2)))
	test.That(t, v.Len(), test.ShouldAlmostEqual, math.Sqrt(30))
	test.That(t, v.Norm().Len(), test.ShouldAlmostEqual, 1.0)
	test.That(t, Vector4{}.Norm(), test.ShouldResemble, Vector4{})
	test.That(t, v.Lerp(w, 0.5), test.ShouldResemble, Vector4{0, 1.25, 2.5, 1})
	test.That(t, Vector4{W: math.Inf(1)}.IsFinite(), test.ShouldBeFalse)
}

func TestCross4Orthogonal(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		a, b, c := randVec4(rng), randVec4(rng), randVec4(rng)
		n, err := Cross4(a, b, c)
		test.That(t, err, test.ShouldBeNil)
		scale := n.Len() * (a.Len() + b.Len() + c.Len())
		test.That(t, n.Dot(a), test.ShouldAlmostEqual, 0, 1e-12*scale)
		test.That(t, n.Dot(b), test.ShouldAlmostEqual, 0, 1e-12*scale)
		test.That(t, n.Dot(c), test.ShouldAlmostEqual, 0, 1e-12*scale)
	}
}

func TestCross4Basis(t *testing.T) {
	// e_x, e_y, e_z span the hyperplane orthogonal to e_w.
	n, err := Cross4(Vector4{X: 1}, Vector4{Y: 1}, Vector4{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, math.Abs(n.W), test.ShouldAlmostEqual, 1.0)
	test.That(t, n.X, test.ShouldAlmostEqual, 0)
	test.That(t, n.Y, test.ShouldAlmostEqual, 0)
	test.That(t, n.Z, test.ShouldAlmostEqual, 0)

	// Swapping two inputs flips the sign.
	m, err := Cross4(Vector4{Y: 1}, Vector4{X: 1}, Vector4{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	vec4AlmostEqual(t, m, n.Mul(-1), 1e-15)
}

func TestCross4Degenerate(t *testing.T) {
	a := Vector4{1, 2, 3, 4}
	for _, tc := range []struct {
		name string
		b, c Vector4
	}{
		{"parallel", a.Mul(2), Vector4{0, 1, 0, 0}},
		{"dependent", Vector4{0, 1, 0, 0}, a.Add(Vector4{0, 3, 0, 0})},
		{"zero", Vector4{}, Vector4{0, 0, 1, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Cross4(a, tc.b, tc.c)
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, errors.Is(err, ErrDegenerateBasis), test.ShouldBeTrue)
		})
	}
}
