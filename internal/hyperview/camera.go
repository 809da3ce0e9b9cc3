package hyperview

import (
	"math"

	"github.com/pkg/errors"
)

// Camera is the interactive 4D camera: a position and an orientation in the
// world, plus the camera-space frame and perspective used for projection.
type Camera struct {
	Position    Point4
	Orientation Orientation
	FOV         Real // radians, in (0, π)
	Near        Real // near hyperplane depth
	Frame       ViewingFrame
}

// NewCamera returns a camera at position with identity orientation and
// default viewing parameters.
func NewCamera(position Point4) Camera {
	return Camera{
		Position:    position,
		Orientation: IdentityOrientation(),
		FOV:         DefaultFOVDeg * math.Pi / 180,
		Near:        DefaultNear,
		Frame:       DefaultViewingFrame(),
	}
}

func (c Camera) Validate() error {
	if !(c.FOV > 0 && c.FOV < math.Pi) {
		return errors.Errorf("field of view must be in (0, π), got %.6g", c.FOV)
	}
	if !(c.Near > 0) {
		return errors.Errorf("near plane must be > 0, got %.6g", c.Near)
	}
	return nil
}

// Move translates the camera along its own axes.
func (c Camera) Move(local Vector4) Camera {
	c.Position = c.Position.Add(c.Orientation.Apply(local))
	return c
}

// Turn composes an incremental rotation into the camera orientation.
func (c Camera) Turn(delta Rot4) Camera {
	c.Orientation = c.Orientation.Rotate(delta)
	return c
}

// ToCameraSpace maps a world point into camera space: it is taken relative
// to the camera position and rotated by the inverse camera orientation.
func (c Camera) ToCameraSpace(p Point4) Vector4 {
	return c.Orientation.Inverse().Apply(p.Sub(c.Position))
}
