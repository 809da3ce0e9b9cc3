package hyperview

import (
	"context"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Keyframe is one camera pose on an animated path.
type Keyframe struct {
	Position    Point4
	Orientation Orientation
}

// Frame is the output of one tick.
type Frame struct {
	Index    int
	Camera   Camera
	Commands []RenderCommand
	Changes  ResourceChanges
}

// Scene owns the camera, the objects and the pipeline driving them.
type Scene struct {
	Camera     Camera
	Objects    []*Hyperobject
	Keyframes  []Keyframe
	Pipeline   *Pipeline
	Frames     int
	Background colorful.Color

	ledger ResourceLedger
}

// CameraAt returns the camera for a frame of the animation: keyframes are
// spread evenly over Frames, positions interpolate linearly and orientations
// by double-quaternion slerp. Without keyframes the scene camera is fixed.
func (s *Scene) CameraAt(frame int) Camera {
	cam := s.Camera
	switch n := len(s.Keyframes); {
	case n == 0:
		return cam
	case n == 1 || s.Frames <= 1:
		cam.Position = s.Keyframes[0].Position
		cam.Orientation = s.Keyframes[0].Orientation
		return cam
	}
	u := clamp(Real(frame)/Real(s.Frames-1), 0, 1) * Real(len(s.Keyframes)-1)
	i := int(math.Floor(u))
	if i >= len(s.Keyframes)-1 {
		i = len(s.Keyframes) - 2
	}
	t := u - Real(i)
	a, b := s.Keyframes[i], s.Keyframes[i+1]
	cam.Position = a.Position.Lerp(b.Position, t)
	cam.Orientation = Slerp(a.Orientation, b.Orientation, t)
	return cam
}

// Tick renders one frame with the frame's camera, records the resource
// changes and then advances every object by its spin.
func (s *Scene) Tick(frame int) (Frame, error) {
	cam := s.CameraAt(frame)
	cmds, err := s.Pipeline.Update(cam, s.Objects)
	if err != nil {
		return Frame{}, err
	}
	ch := s.ledger.Apply(cmds)
	for _, o := range s.Objects {
		o.Step()
	}
	return Frame{Index: frame, Camera: cam, Commands: cmds, Changes: ch}, nil
}

// Run ticks through all frames in order.
func (s *Scene) Run(ctx context.Context) ([]Frame, error) {
	out := make([]Frame, 0, s.Frames)
	for i := 0; i < s.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		f, err := s.Tick(i)
		if err != nil {
			return out, err
		}
		DebugLog("frame %d: %d commands, create=%d destroy=%d", i, len(f.Commands), len(f.Changes.Create), len(f.Changes.Destroy))
		out = append(out, f)
	}
	return out, nil
}

// Release forgets every live resource id, returning them for the collaborator
// to release on scene unload.
func (s *Scene) Release() []string { return s.ledger.Reset() }
