package hyperview

import (
	"context"
	"image"
	"math"
	"runtime"
	"sort"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"
)

// Previewer rasterizes render commands into a square image: the projected
// 3D output is turned by a fixed 3/4 view, fitted to the image and drawn
// with gg. Solid triangles are painter-sorted and flat-shaded.
type Previewer struct {
	Size       int
	Background colorful.Color
	LineWidth  Real

	view mgl64.Mat4
	fit  Bounds3
}

// NewPreviewer looks at the projected volume from yaw/pitch (radians).
func NewPreviewer(size int, bg colorful.Color, yaw, pitch Real) *Previewer {
	if size <= 0 {
		size = DefaultImageSize
	}
	return &Previewer{
		Size:       size,
		Background: bg,
		LineWidth:  1.5,
		view:       mgl64.HomogRotate3DX(pitch).Mul4(mgl64.HomogRotate3DY(yaw)),
	}
}

func (p *Previewer) toView(v r3.Vector) r3.Vector {
	o := p.view.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
	return r3.Vector{X: o[0], Y: o[1], Z: o[2]}
}

// Fit sets the view-space bounds mapped onto the image from every visible
// point in frames, so that an animation does not jump between frames.
func (p *Previewer) Fit(frames ...[]RenderCommand) {
	var b Bounds3
	for _, cmds := range frames {
		for _, c := range cmds {
			for _, v := range c.Points {
				if v.Visible {
					b.Extend(p.toView(v.Pos))
				}
			}
			if c.Mesh != nil {
				for _, v := range c.Mesh.Vertices {
					b.Extend(p.toView(v))
				}
			}
		}
	}
	p.fit = b
}

type screen struct {
	cx, cy, k, half Real
}

func (p *Previewer) screen() screen {
	s := Real(p.Size)
	sc := screen{cx: 0, cy: 0, k: s / 4, half: s / 2}
	if !p.fit.Empty() {
		c := p.fit.Center()
		sz := p.fit.Size()
		ext := math.Max(sz.X, sz.Y)
		sc.cx, sc.cy = c.X, c.Y
		if ext > epsDegenerate {
			sc.k = 0.9 * s / ext
		}
	}
	return sc
}

func (s screen) xy(v r3.Vector) (Real, Real) {
	return s.half + (v.X-s.cx)*s.k, s.half - (v.Y-s.cy)*s.k
}

type previewTri struct {
	a, b, c r3.Vector
	depth   Real
	col     colorful.Color
}

// Draw renders one tick.
func (p *Previewer) Draw(cmds []RenderCommand) image.Image {
	dc := gg.NewContext(p.Size, p.Size)
	dc.SetColor(p.Background)
	dc.Clear()
	sc := p.screen()

	var tris []previewTri
	for _, c := range cmds {
		if c.Mesh == nil {
			continue
		}
		for _, t := range c.Mesh.Triangles {
			a := p.toView(c.Mesh.Vertices[t[0]])
			b := p.toView(c.Mesh.Vertices[t[1]])
			cc := p.toView(c.Mesh.Vertices[t[2]])
			n := b.Sub(a).Cross(cc.Sub(a))
			light := 0.35
			if l := n.Norm(); l > 0 {
				light += 0.65 * math.Abs(n.Z/l)
			}
			tris = append(tris, previewTri{
				a: a, b: b, c: cc,
				depth: (a.Z + b.Z + cc.Z) / 3,
				col:   shade(c.Color, light),
			})
		}
	}
	sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth < tris[j].depth })
	for _, t := range tris {
		x, y := sc.xy(t.a)
		dc.MoveTo(x, y)
		x, y = sc.xy(t.b)
		dc.LineTo(x, y)
		x, y = sc.xy(t.c)
		dc.LineTo(x, y)
		dc.ClosePath()
		dc.SetColor(t.col)
		dc.Fill()
	}

	dc.SetLineWidth(p.LineWidth)
	for _, c := range cmds {
		switch c.Mode {
		case Wireframe:
			dc.SetColor(c.Color)
			for _, e := range c.Edges {
				x1, y1 := sc.xy(p.toView(c.Points[e[0]].Pos))
				x2, y2 := sc.xy(p.toView(c.Points[e[1]].Pos))
				dc.DrawLine(x1, y1, x2, y2)
				dc.Stroke()
			}
		case PointCloud:
			dc.SetColor(c.Color)
			for i, v := range c.Points {
				if !v.Visible {
					continue
				}
				r := DefaultPointScale
				if i < len(c.Scales) {
					r = c.Scales[i]
				}
				x, y := sc.xy(p.toView(v.Pos))
				dc.DrawCircle(x, y, math.Max(1, r*sc.k))
				dc.Fill()
			}
		}
	}
	return dc.Image()
}

func shade(c colorful.Color, k Real) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()
}

// RasterizeFrames draws every frame in parallel; image i belongs to frame i.
func RasterizeFrames(ctx context.Context, p *Previewer, frames []Frame) ([]image.Image, error) {
	imgs := make([]image.Image, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range frames {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			imgs[i] = p.Draw(frames[i].Commands)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	DebugLog("rasterized %d frames at %dx%d", len(imgs), p.Size, p.Size)
	return imgs, nil
}
