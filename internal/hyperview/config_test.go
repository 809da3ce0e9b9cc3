package hyperview

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func writeScene(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, []byte(body), 0o644), test.ShouldBeNil)
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"objects":[{"groups":[{"polytope":"16-cell"},{"vertices":[{"x":1},{"y":1}]}]}]}`), ".json")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.FOVDeg, test.ShouldEqual, DefaultFOVDeg)
	test.That(t, cfg.Near, test.ShouldEqual, DefaultNear)
	test.That(t, cfg.Frames, test.ShouldEqual, DefaultFrames)
	test.That(t, cfg.Size, test.ShouldEqual, DefaultImageSize)
	test.That(t, cfg.GIFOut, test.ShouldEqual, GIFOut)
	o := cfg.Objects[0]
	test.That(t, o.Name, test.ShouldEqual, "object0")
	test.That(t, o.Groups[0].Name, test.ShouldEqual, "16-cell")
	test.That(t, o.Groups[1].Name, test.ShouldEqual, "group1")
	test.That(t, o.Groups[1].Size, test.ShouldEqual, 1.0)
	test.That(t, o.Groups[1].Color, test.ShouldEqual, "#cccccc")
}

func TestParseConfigYAML(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
frames: 4
camera:
  position: {w: 3}
  rotDeg: {xw: 90}
objects:
  - name: tri
    spinDeg: {zw: 180}
    groups:
      - vertices: [{x: 1}, {y: 1}, {z: 1}]
        edges: [[0, 1], [1, 2]]
        size: 2
        mode: points
        pointScale: 0.5
`), ".yml")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Frames, test.ShouldEqual, 4)
	test.That(t, cfg.Camera.Position, test.ShouldResemble, Point4{W: 3})
	test.That(t, cfg.Camera.RotDeg.Radians().XW, test.ShouldAlmostEqual, math.Pi/2, 1e-15)
	test.That(t, cfg.Objects[0].Groups[0].Edges, test.ShouldResemble, []Edge{{0, 1}, {1, 2}})

	obj, err := cfg.Objects[0].Build()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, obj.Spin.ZW, test.ShouldAlmostEqual, math.Pi, 1e-15)
	g := obj.Groups[0]
	test.That(t, g.Mode, test.ShouldEqual, PointCloud)
	test.That(t, g.Template[2], test.ShouldResemble, Point4{Z: 2})
	test.That(t, g.Scale, test.ShouldResemble, []Real{0.5, 0.5, 0.5})
}

func TestParseConfigValidation(t *testing.T) {
	_, err := ParseConfig([]byte(`{
		"fovDeg": 200,
		"background": "nope",
		"objects": [
			{"name": "a", "groups": [{"polytope": "8-cell", "vertices": [{"x": 1}], "mode": "voxels", "color": "red"}]},
			{"name": "a", "groups": []}
		]
	}`), ".json")
	test.That(t, errors.Is(err, ErrInvalidScene), test.ShouldBeTrue)
	for _, want := range []string{"fovDeg", "background", "exclusive", "voxels", "color", "duplicate object", "no groups"} {
		test.That(t, err.Error(), test.ShouldContainSubstring, want)
	}

	_, err = ParseConfig([]byte(`{"objects": []}`), ".json")
	test.That(t, errors.Is(err, ErrInvalidScene), test.ShouldBeTrue)

	_, err = ParseConfig([]byte(`{`), ".json")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrInvalidScene), test.ShouldBeFalse)
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("HYPERVIEW_TEST_FRAMES", "9")
	path := writeScene(t, "scene.yaml", `
frames: ${HYPERVIEW_TEST_FRAMES}
gifOut: ${HYPERVIEW_TEST_UNSET:-out/test.gif}
objects:
  - groups: [{polytope: tesseract}]
`)
	cfg, err := LoadConfig(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Frames, test.ShouldEqual, 9)
	test.That(t, cfg.GIFOut, test.ShouldEqual, "out/test.gif")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConfigBuild(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "scenes", "tesseract.json"))
	test.That(t, err, test.ShouldBeNil)
	s, err := cfg.Build()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Camera.FOV, test.ShouldAlmostEqual, math.Pi/4, 1e-15)
	test.That(t, s.Camera.Near, test.ShouldEqual, 0.0625)
	test.That(t, s.Camera.Position, test.ShouldResemble, Point4{W: 3})
	test.That(t, s.Frames, test.ShouldEqual, 72)
	test.That(t, s.Background.Hex(), test.ShouldEqual, "#101018")
	test.That(t, s.Objects, test.ShouldHaveLength, 1)
	test.That(t, s.Objects[0].Groups, test.ShouldHaveLength, 2)
	test.That(t, s.Objects[0].Groups[1].ScaleAt(0, 1), test.ShouldEqual, 0.03)

	cfg.Camera.View = &ViewCfg{To: Point4{}, Up: Vector4{Y: 1}, Over: Vector4{Z: 1}}
	_, err = cfg.Build()
	test.That(t, errors.Is(err, ErrDegenerateBasis), test.ShouldBeTrue)

	cfg.Camera.View = nil
	cfg.Objects[0].Groups[0].Scales = []Real{1, 2}
	_, err = cfg.Build()
	test.That(t, err, test.ShouldNotBeNil)
}

func keyframedScene(t *testing.T) *Scene {
	t.Helper()
	cfg, err := ParseConfig([]byte(`
frames: 5
keyframes:
  - {position: {w: 4}}
  - {position: {w: 2}, rotDeg: {xz: 40}}
  - {position: {x: 1, w: 2}, rotDeg: {xz: 80}}
objects:
  - name: obj
    spinDeg: {xw: 3}
    groups:
      - {name: wire, polytope: 16-cell, mode: wireframe}
      - {name: body, polytope: 16-cell, mode: solid, size: 0.5}
`), ".yaml")
	test.That(t, err, test.ShouldBeNil)
	s, err := cfg.Build()
	test.That(t, err, test.ShouldBeNil)
	return s
}

func TestSceneCameraAt(t *testing.T) {
	s := keyframedScene(t)
	test.That(t, s.CameraAt(0).Position, test.ShouldResemble, Point4{W: 4})
	test.That(t, s.CameraAt(0).Orientation.ApproxEqual(IdentityOrientation(), 1e-12), test.ShouldBeTrue)
	vec4AlmostEqual(t, s.CameraAt(1).Position, Point4{W: 3}, 1e-12)
	vec4AlmostEqual(t, s.CameraAt(2).Position, Point4{W: 2}, 1e-12)
	test.That(t, s.CameraAt(2).Orientation.ApproxEqual(s.Keyframes[1].Orientation, 1e-9), test.ShouldBeTrue)
	vec4AlmostEqual(t, s.CameraAt(4).Position, Point4{X: 1, W: 2}, 1e-12)
	vec4AlmostEqual(t, s.CameraAt(99).Position, Point4{X: 1, W: 2}, 1e-12)

	s.Keyframes = nil
	test.That(t, s.CameraAt(3).Position, test.ShouldResemble, s.Camera.Position)
}

func TestSceneRun(t *testing.T) {
	s := keyframedScene(t)
	start := s.Objects[0].Orientation
	frames, err := s.Run(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, frames, test.ShouldHaveLength, 5)

	ids := []string{"obj/body", "obj/wire"}
	test.That(t, frames[0].Changes.Destroy, test.ShouldBeEmpty)
	test.That(t, frames[0].Changes.Create, test.ShouldHaveLength, 2)
	for _, f := range frames[1:] {
		test.That(t, f.Changes.Destroy, test.ShouldResemble, ids)
	}
	for i, f := range frames {
		test.That(t, f.Index, test.ShouldEqual, i)
		test.That(t, f.Commands, test.ShouldHaveLength, 2)
	}
	test.That(t, s.Objects[0].Orientation.ApproxEqual(start, 1e-6), test.ShouldBeFalse)
	test.That(t, s.Release(), test.ShouldHaveLength, 2)
	test.That(t, s.Release(), test.ShouldBeEmpty)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}
