package hyperview

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Vertex3 is one projected vertex. Visible is false when the source point is
// behind the camera or projects to a non-finite position; the slot is kept so
// edge and triangle indices stay aligned with the input.
type Vertex3 struct {
	Pos     r3.Vector
	Visible bool
}

// Projector maps 4D points to 3D.
type Projector interface {
	Project(v Vector4) Vertex3
}

// Perspective divides by depth along the frame's line of sight, scaled by
// cot(fov/2).
type Perspective struct {
	Frame ViewingFrame
	FOV   Real
	t     Real
}

func NewPerspective(frame ViewingFrame, fov Real) (Perspective, error) {
	if !(fov > 0 && fov < math.Pi) {
		return Perspective{}, errors.Errorf("field of view must be in (0, π), got %.6g", fov)
	}
	return Perspective{Frame: frame, FOV: fov, t: 1 / math.Tan(fov/2)}, nil
}

func (p Perspective) Project(v Vector4) Vertex3 {
	l := p.Frame.Local(v)
	if !(l.W > 0) {
		return Vertex3{}
	}
	s := p.t / l.W
	pos := r3.Vector{X: l.X * s, Y: l.Y * s, Z: l.Z * s}
	if !isFinite(pos.X) || !isFinite(pos.Y) || !isFinite(pos.Z) {
		return Vertex3{}
	}
	return Vertex3{Pos: pos, Visible: true}
}

// Orthographic drops w without any divide; used by fixed auxiliary views.
type Orthographic struct{}

func (Orthographic) Project(v Vector4) Vertex3 {
	pos := r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
	return Vertex3{Pos: pos, Visible: isFinite(pos.X) && isFinite(pos.Y) && isFinite(pos.Z)}
}

// ProjectAll projects every vertex, keeping index correspondence.
func ProjectAll(p Projector, vs []Vector4) []Vertex3 {
	out := make([]Vertex3, len(vs))
	for i, v := range vs {
		out[i] = p.Project(v)
	}
	return out
}

// VisiblePositions returns the positions of visible vertices only.
func VisiblePositions(vs []Vertex3) []r3.Vector {
	out := make([]r3.Vector, 0, len(vs))
	for _, v := range vs {
		if v.Visible {
			out = append(out, v.Pos)
		}
	}
	return out
}
