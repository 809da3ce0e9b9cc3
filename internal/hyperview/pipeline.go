package hyperview

import (
	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// RenderCommand is the per-group output of one tick. PointCloud and
// Wireframe commands carry index-aligned optional points; Wireframe also
// carries the surviving edges. Solid commands carry a mesh.
type RenderCommand struct {
	ID     string
	Object string
	Group  string
	Mode   RenderMode
	Color  colorful.Color
	Points []Vertex3
	Scales []Real
	Edges  []Edge
	Mesh   *Mesh
}

// CommandID is the stable resource id of a group: "<object>/<group>".
func CommandID(object, group string) string { return object + "/" + group }

// Pipeline turns camera state and objects into render commands.
type Pipeline struct {
	// SafetyHalf is the half-extent of the numeric-safety cube used by
	// solid reconstruction; zero means DefaultSafetyHalf.
	SafetyHalf Real
	// Orthographic drops w instead of dividing by depth and skips the near
	// clip; used by fixed auxiliary views.
	Orthographic bool
}

func NewPipeline() *Pipeline { return &Pipeline{SafetyHalf: DefaultSafetyHalf} }

// Update runs transform, clip, project and reconstruct for every group of
// every object. Groups with nothing to show produce no command. The only
// errors are invalid camera parameters.
func (p *Pipeline) Update(cam Camera, objects []*Hyperobject) ([]RenderCommand, error) {
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	var proj Projector = Orthographic{}
	if !p.Orthographic {
		persp, err := NewPerspective(cam.Frame, cam.FOV)
		if err != nil {
			return nil, errors.Wrap(err, "camera projection")
		}
		proj = persp
	}
	half := p.SafetyHalf
	if !(half > 0) {
		half = DefaultSafetyHalf
	}

	var cmds []RenderCommand
	for _, obj := range objects {
		for _, g := range obj.Groups {
			verts := g.Transformed(obj, cam)
			cmd := RenderCommand{
				ID:     CommandID(obj.Name, g.Name),
				Object: obj.Name,
				Group:  g.Name,
				Mode:   g.Mode,
				Color:  g.Color,
			}
			var ok bool
			switch g.Mode {
			case PointCloud:
				ok = p.points(&cmd, proj, g, verts)
			case Wireframe:
				ok = p.wireframe(&cmd, proj, cam, g, verts)
			case Solid:
				ok = p.solid(&cmd, proj, cam, obj, g, verts, half)
			}
			if ok {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds, nil
}

func (p *Pipeline) points(cmd *RenderCommand, proj Projector, g *GeometryGroup, verts []Vector4) bool {
	cmd.Points = ProjectAll(proj, verts)
	cmd.Scales = make([]Real, len(verts))
	for i := range verts {
		cmd.Scales[i] = g.ScaleAt(i, DefaultPointScale)
	}
	return anyVisible(cmd.Points)
}

func (p *Pipeline) clip(cam Camera, g *GeometryGroup, verts []Vector4) ([]Vector4, []Edge) {
	if p.Orthographic || len(g.Edges) == 0 {
		return verts, g.Edges
	}
	return ClipNear(cam.Frame, cam.Near, verts, g.Edges)
}

func (p *Pipeline) wireframe(cmd *RenderCommand, proj Projector, cam Camera, g *GeometryGroup, verts []Vector4) bool {
	cv, ce := p.clip(cam, g, verts)
	cmd.Points = ProjectAll(proj, cv)
	cmd.Edges = lo.Filter(ce, func(e Edge, _ int) bool {
		return cmd.Points[e[0]].Visible && cmd.Points[e[1]].Visible
	})
	if len(g.Edges) == 0 {
		return anyVisible(cmd.Points)
	}
	return len(cmd.Edges) > 0
}

func (p *Pipeline) solid(cmd *RenderCommand, proj Projector, cam Camera, obj *Hyperobject, g *GeometryGroup, verts []Vector4, half Real) bool {
	cv, _ := p.clip(cam, g, verts)
	pts := VisiblePositions(ProjectAll(proj, cv))
	if len(pts) == 0 {
		return false
	}
	if len(pts) > maxSafetyClipPoints && !g.clipCapLogged {
		g.clipCapLogged = true
		Logger().Infof("%s: %d points exceed the safety clip limit of %d, solids near the camera are hulled unclipped",
			cmd.ID, len(pts), maxSafetyClipPoints)
	}
	center := proj.Project(obj.Center(cam))
	if !center.Visible {
		center.Pos = centroid(pts)
	}
	mesh, ok := ReconstructSolid(pts, center.Pos, half)
	if !ok {
		DebugLog("%s: no solid from %d points", cmd.ID, len(pts))
		return false
	}
	cmd.Mesh = &mesh
	return true
}

func anyVisible(vs []Vertex3) bool {
	return lo.ContainsBy(vs, func(v Vertex3) bool { return v.Visible })
}

func centroid(pts []r3.Vector) r3.Vector {
	var c r3.Vector
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Mul(1 / Real(len(pts)))
}
