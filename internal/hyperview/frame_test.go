package hyperview

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func checkOrthonormal(t *testing.T, f ViewingFrame) {
	t.Helper()
	axes := []Vector4{f.Wa, f.Wb, f.Wc, f.Wd}
	for i, a := range axes {
		test.That(t, a.Len(), test.ShouldAlmostEqual, 1.0, 1e-12)
		for _, b := range axes[i+1:] {
			test.That(t, a.Dot(b), test.ShouldAlmostEqual, 0, 1e-12)
		}
	}
}

func TestDefaultViewingFrame(t *testing.T) {
	f := DefaultViewingFrame()
	checkOrthonormal(t, f)
	vec4AlmostEqual(t, f.Wd, Vector4{W: -1}, 1e-15)
	vec4AlmostEqual(t, f.Wa, Vector4{X: -1}, 1e-15)
	vec4AlmostEqual(t, f.Wb, Vector4{Y: -1}, 1e-15)
	vec4AlmostEqual(t, f.Wc, Vector4{Z: -1}, 1e-15)
	test.That(t, f.Depth(Point4{W: -2}), test.ShouldAlmostEqual, 2.0)
}

func TestViewingFrameOrthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 100; i++ {
		from := randVec4(rng).Mul(5)
		to := from.Add(randVec4(rng).Norm().Mul(3))
		f, err := NewViewingFrame(from, to, randVec4(rng), randVec4(rng))
		test.That(t, err, test.ShouldBeNil)
		checkOrthonormal(t, f)
		test.That(t, f.Depth(to), test.ShouldAlmostEqual, 3.0, 1e-9)
		l := f.Local(to)
		test.That(t, l.W, test.ShouldAlmostEqual, 3.0, 1e-9)
		test.That(t, l.X, test.ShouldAlmostEqual, 0, 1e-9)
	}
}

func TestViewingFrameDegenerate(t *testing.T) {
	for _, tc := range []struct {
		name               string
		from, to, up, over Vector4
	}{
		{"coincident", Point4{1, 2, 3, 4}, Point4{1, 2, 3, 4}, Vector4{Y: 1}, Vector4{Z: 1}},
		{"up parallel to sight", Point4{}, Point4{W: -1}, Vector4{W: 2}, Vector4{Z: 1}},
		{"up parallel to over", Point4{}, Point4{W: -1}, Vector4{Y: 1}, Vector4{Y: -3}},
		{"over parallel to sight", Point4{}, Point4{W: -1}, Vector4{Y: 1}, Vector4{W: 1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewViewingFrame(tc.from, tc.to, tc.up, tc.over)
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, errors.Is(err, ErrDegenerateBasis), test.ShouldBeTrue)
		})
	}
}

func TestCameraToCameraSpace(t *testing.T) {
	cam := NewCamera(Point4{0, 0, 0, 3})
	test.That(t, cam.Validate(), test.ShouldBeNil)
	vec4AlmostEqual(t, cam.ToCameraSpace(Point4{1, 0, 0, 0}), Vector4{1, 0, 0, -3}, 1e-15)

	// Turning the camera by +90° in xy makes a world +y point appear at +x.
	cam = cam.Turn(Rot4{XY: 1.5707963267948966})
	vec4AlmostEqual(t, cam.ToCameraSpace(Point4{0, 1, 0, 3}), Vector4{X: 1}, 1e-12)

	// Moving forward along camera -w brings the camera closer to the origin.
	moved := NewCamera(Point4{0, 0, 0, 3}).Move(Vector4{W: -1})
	vec4AlmostEqual(t, moved.Position, Point4{W: 2}, 1e-15)

	bad := NewCamera(Point4{})
	bad.FOV = 0
	test.That(t, bad.Validate(), test.ShouldNotBeNil)
	bad = NewCamera(Point4{})
	bad.Near = -1
	test.That(t, bad.Validate(), test.ShouldNotBeNil)
}
