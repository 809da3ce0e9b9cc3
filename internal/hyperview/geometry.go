package hyperview

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// RenderMode selects how a GeometryGroup is turned into render commands.
type RenderMode int

const (
	PointCloud RenderMode = iota
	Wireframe
	Solid
)

var renderModeNames = [...]string{"points", "wireframe", "solid"}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(renderModeNames) {
		return "unknown"
	}
	return renderModeNames[m]
}

// ParseRenderMode accepts the String form and a few common synonyms.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "points", "pointcloud", "point-cloud", "point_cloud":
		return PointCloud, nil
	case "wireframe", "wire", "lines", "":
		return Wireframe, nil
	case "solid", "filled", "hull":
		return Solid, nil
	}
	return 0, errors.Errorf("unknown render mode %q", s)
}

// poseKey identifies the camera and object pose a transformed cache was
// computed for.
type poseKey struct {
	camPos Point4
	camOri Orientation
	objPos Point4
	objOri Orientation
}

// GeometryGroup is one named part of a Hyperobject: an immutable vertex
// template, optional edges, a render mode, a color and an optional
// per-vertex display scale. The camera-space vertices are cached until the
// camera or the owning object moves.
type GeometryGroup struct {
	Name     string
	Template []Point4
	Edges    []Edge
	Mode     RenderMode
	Color    colorful.Color
	Scale    []Real

	cacheKey   poseKey
	cacheValid bool
	cache      []Vector4
	recomputes int

	clipCapLogged bool
}

// NewGeometryGroup validates edges and the scale hint against the template.
func NewGeometryGroup(name string, verts []Point4, edges []Edge, mode RenderMode, color colorful.Color) (*GeometryGroup, error) {
	for i, v := range verts {
		if !v.IsFinite() {
			return nil, errors.Errorf("group %q: vertex %d is not finite", name, i)
		}
	}
	for i, e := range edges {
		if e[0] < 0 || e[1] < 0 || e[0] >= len(verts) || e[1] >= len(verts) {
			return nil, errors.Errorf("group %q: edge %d (%d,%d) out of range [0,%d)", name, i, e[0], e[1], len(verts))
		}
		if e[0] == e[1] {
			return nil, errors.Errorf("group %q: edge %d is a loop on vertex %d", name, i, e[0])
		}
	}
	return &GeometryGroup{
		Name:     name,
		Template: append([]Point4(nil), verts...),
		Edges:    append([]Edge(nil), edges...),
		Mode:     mode,
		Color:    color,
	}, nil
}

// SetScale sets the per-vertex display scale hint; it must be empty or have
// one entry per template vertex.
func (g *GeometryGroup) SetScale(scale []Real) error {
	if len(scale) != 0 && len(scale) != len(g.Template) {
		return errors.Errorf("group %q: %d scale entries for %d vertices", g.Name, len(scale), len(g.Template))
	}
	g.Scale = append([]Real(nil), scale...)
	return nil
}

// ScaleAt is the display scale of vertex i, or def without a hint.
func (g *GeometryGroup) ScaleAt(i int, def Real) Real {
	if i < len(g.Scale) {
		return g.Scale[i]
	}
	return def
}

// Transformed returns the group's vertices in camera space for the given
// owner and camera, recomputing only when either pose changed.
func (g *GeometryGroup) Transformed(obj *Hyperobject, cam Camera) []Vector4 {
	key := poseKey{camPos: cam.Position, camOri: cam.Orientation, objPos: obj.Position, objOri: obj.Orientation}
	if g.cacheValid && g.cacheKey == key {
		return g.cache
	}
	if cap(g.cache) < len(g.Template) {
		g.cache = make([]Vector4, len(g.Template))
	}
	g.cache = g.cache[:len(g.Template)]
	for i, v := range g.Template {
		g.cache[i] = cam.ToCameraSpace(obj.Orientation.Apply(v).Add(obj.Position))
	}
	g.cacheKey = key
	g.cacheValid = true
	g.recomputes++
	return g.cache
}

// Invalidate drops the cached camera-space vertices.
func (g *GeometryGroup) Invalidate() { g.cacheValid = false }

// Hyperobject is a positioned, oriented set of geometry groups. Spin is an
// optional rotation composed into Orientation by every Step.
type Hyperobject struct {
	Name        string
	Position    Point4
	Orientation Orientation
	Spin        Rot4
	Groups      []*GeometryGroup
}

func NewHyperobject(name string, position Point4, groups ...*GeometryGroup) *Hyperobject {
	return &Hyperobject{
		Name:        name,
		Position:    position,
		Orientation: IdentityOrientation(),
		Groups:      groups,
	}
}

// Step advances the object by one tick of its spin.
func (o *Hyperobject) Step() {
	if o.Spin.IsZero() {
		return
	}
	o.Orientation = o.Orientation.Rotate(o.Spin)
}

// Center is the object's position in camera space.
func (o *Hyperobject) Center(cam Camera) Vector4 {
	return cam.ToCameraSpace(o.Position)
}

// PolytopeGroup wraps a catalogue polytope as a geometry group.
func PolytopeGroup(name string, scale Real, mode RenderMode, color colorful.Color) (*GeometryGroup, error) {
	p, err := NewPolytope(name, scale)
	if err != nil {
		return nil, err
	}
	return NewGeometryGroup(p.Name, p.Verts, p.Edges, mode, color)
}
