package hyperview

import (
	"math"

	"github.com/pkg/errors"
)

// Vector4 is a point or a direction in 4D space. W takes part in every
// rotation and projection like the other three components.
type Vector4 struct {
	X Real `json:"x" yaml:"x"`
	Y Real `json:"y" yaml:"y"`
	Z Real `json:"z" yaml:"z"`
	W Real `json:"w" yaml:"w"`
}

// Point4 names a Vector4 used as a position.
type Point4 = Vector4

// Vector functions
func (a Vector4) Add(b Vector4) Vector4 { return Vector4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W} }
func (a Vector4) Sub(b Vector4) Vector4 { return Vector4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W} }
func (v Vector4) Mul(s Real) Vector4    { return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s} }

// Dot returns the dot product between two 4D vectors.
func (a Vector4) Dot(b Vector4) Real {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Len returns the Euclidean length of the vector.
func (v Vector4) Len() Real { return math.Sqrt(v.Dot(v)) }

// Norm returns a unit-length version of the vector.
func (v Vector4) Norm() Vector4 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vector4{v.X / l, v.Y / l, v.Z / l, v.W / l}
}

// Lerp interpolates from a (t=0) to b (t=1).
func (a Vector4) Lerp(b Vector4, t Real) Vector4 {
	return a.Add(b.Sub(a).Mul(t))
}

func (v Vector4) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) && isFinite(v.W)
}

func (v Vector4) arr() [4]Real { return [4]Real{v.X, v.Y, v.Z, v.W} }

func vec4(a [4]Real) Vector4 { return Vector4{a[0], a[1], a[2], a[3]} }

// Cross4 returns the direction orthogonal to a, b and c. It is built from
// the six 2x2 minors of b and c expanded along a, so the result is zero
// exactly when the three inputs are linearly dependent; that case fails with
// ErrDegenerateBasis.
func Cross4(a, b, c Vector4) (Vector4, error) {
	r := cross4(a, b, c)
	scale := a.Len() * b.Len() * c.Len()
	if !(r.Len() > epsDegenerate*scale) {
		return Vector4{}, errors.Wrapf(ErrDegenerateBasis, "cross4 of %+v, %+v, %+v", a, b, c)
	}
	return r, nil
}

func cross4(u, v, w Vector4) Vector4 {
	A := v.X*w.Y - v.Y*w.X
	B := v.X*w.Z - v.Z*w.X
	C := v.X*w.W - v.W*w.X
	D := v.Y*w.Z - v.Z*w.Y
	E := v.Y*w.W - v.W*w.Y
	F := v.Z*w.W - v.W*w.Z
	return Vector4{
		X: u.Y*F - u.Z*E + u.W*D,
		Y: -u.X*F + u.Z*C - u.W*B,
		Z: u.X*E - u.Y*C + u.W*A,
		W: -u.X*D + u.Y*B - u.Z*A,
	}
}
