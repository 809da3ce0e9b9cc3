package hyperview

import (
	"math"

	"github.com/golang/geo/r3"
)

// Bounds3 is an axis-aligned 3D box. The zero value is empty.
type Bounds3 struct {
	Min, Max r3.Vector
	ok       bool
}

// CubeAround returns the cube of the given half-extent centered at c.
func CubeAround(c r3.Vector, half Real) Bounds3 {
	h := r3.Vector{X: half, Y: half, Z: half}
	return Bounds3{Min: c.Sub(h), Max: c.Add(h), ok: true}
}

func BoundsOf(pts []r3.Vector) Bounds3 {
	var b Bounds3
	for _, p := range pts {
		b.Extend(p)
	}
	return b
}

func (b *Bounds3) Extend(p r3.Vector) {
	if !b.ok {
		b.Min, b.Max, b.ok = p, p, true
		return
	}
	b.Min = r3.Vector{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
	b.Max = r3.Vector{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
}

func (b Bounds3) Empty() bool { return !b.ok }

// Contains reports whether p lies inside the box grown by tol.
func (b Bounds3) Contains(p r3.Vector, tol Real) bool {
	if !b.ok {
		return false
	}
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol &&
		p.Z >= b.Min.Z-tol && p.Z <= b.Max.Z+tol
}

func (b Bounds3) Center() r3.Vector { return b.Min.Add(b.Max).Mul(0.5) }

func (b Bounds3) Size() r3.Vector { return b.Max.Sub(b.Min) }

// MaxExtent is the largest side length.
func (b Bounds3) MaxExtent() Real {
	s := b.Size()
	return math.Max(s.X, math.Max(s.Y, s.Z))
}

// planes returns the six faces as inward-facing half-spaces n·p <= d.
func (b Bounds3) planes() []halfSpace {
	return []halfSpace{
		{n: r3.Vector{X: 1}, d: b.Max.X},
		{n: r3.Vector{X: -1}, d: -b.Min.X},
		{n: r3.Vector{Y: 1}, d: b.Max.Y},
		{n: r3.Vector{Y: -1}, d: -b.Min.Y},
		{n: r3.Vector{Z: 1}, d: b.Max.Z},
		{n: r3.Vector{Z: -1}, d: -b.Min.Z},
	}
}
