package hyperview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// Orientation is a 4D rotation stored as a pair of unit quaternions acting
// on p = w + xi + yj + zk as p' = L p R. Both halves are renormalized after
// every composition, so it is the form used for accumulated state; Rot4 is
// only converted into it at the Rotate boundary.
type Orientation struct {
	L quat.Number
	R quat.Number
}

// IdentityOrientation is the zero rotation.
func IdentityOrientation() Orientation {
	return Orientation{L: quat.Number{Real: 1}, R: quat.Number{Real: 1}}
}

func toQuat(v Vector4) quat.Number {
	return quat.Number{Real: v.W, Imag: v.X, Jmag: v.Y, Kmag: v.Z}
}

func fromQuat(q quat.Number) Vector4 {
	return Vector4{X: q.Imag, Y: q.Jmag, Z: q.Kmag, W: q.Real}
}

func unitQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 || !isFinite(n) {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// expQuat returns cos(a) + u sin(a) for a unit imaginary axis u.
func expQuat(u quat.Number, a Real) quat.Number {
	s := math.Sin(a)
	return quat.Number{Real: math.Cos(a), Imag: u.Imag * s, Jmag: u.Jmag * s, Kmag: u.Kmag * s}
}

var (
	qi = quat.Number{Imag: 1}
	qj = quat.Number{Jmag: 1}
	qk = quat.Number{Kmag: 1}
)

// PlaneOrientation returns the double quaternion of a single-plane rotation,
// matching RotatePlane for the same plane and angle.
func PlaneOrientation(p Plane, a Real) Orientation {
	h := a / 2
	switch p {
	case PlaneXY:
		return Orientation{L: expQuat(qk, h), R: expQuat(qk, -h)}
	case PlaneXZ:
		return Orientation{L: expQuat(qj, -h), R: expQuat(qj, h)}
	case PlaneYZ:
		return Orientation{L: expQuat(qi, h), R: expQuat(qi, -h)}
	case PlaneXW:
		return Orientation{L: expQuat(qi, -h), R: expQuat(qi, -h)}
	case PlaneYW:
		return Orientation{L: expQuat(qj, -h), R: expQuat(qj, -h)}
	default:
		return Orientation{L: expQuat(qk, -h), R: expQuat(qk, -h)}
	}
}

// OrientationFromRot4 realizes r by applying its six plane rotations, in
// RotationOrder, to the identity.
func OrientationFromRot4(r Rot4) Orientation {
	o := IdentityOrientation()
	for _, p := range RotationOrder {
		if a := r.Angle(p); a != 0 {
			o = o.Then(PlaneOrientation(p, a))
		}
	}
	return o
}

// Then returns the rotation that applies o first and next second:
// L' = next.L·L and R' = R·next.R. The left half multiplies on the left and
// the right half on the right; swapping them yields a different rotation.
func (o Orientation) Then(next Orientation) Orientation {
	return Orientation{
		L: unitQuat(quat.Mul(next.L, o.L)),
		R: unitQuat(quat.Mul(o.R, next.R)),
	}
}

// Rotate composes the incremental rotation delta after o.
func (o Orientation) Rotate(delta Rot4) Orientation {
	return o.Then(OrientationFromRot4(delta))
}

func (o Orientation) Inverse() Orientation {
	return Orientation{L: quat.Inv(o.L), R: quat.Inv(o.R)}
}

func (o Orientation) Apply(v Vector4) Vector4 {
	return fromQuat(quat.Mul(quat.Mul(o.L, toQuat(v)), o.R))
}

// Matrix returns the 4x4 rotation matrix; column c is the image of basis vector c.
func (o Orientation) Matrix() Mat4 {
	var M Mat4
	basis := [4]Vector4{{X: 1}, {Y: 1}, {Z: 1}, {W: 1}}
	for c, e := range basis {
		M.SetCol(c, o.Apply(e))
	}
	return M
}

// Euler converts back to six plane angles. Rot4FromMatrix decomposes the
// matrix for the fixed order, so OrientationFromRot4(o.Euler()) equals o up
// to the global sign of (L, R).
func (o Orientation) Euler() Rot4 {
	return Rot4FromMatrix(o.Matrix())
}

// SideEuler returns roll/pitch/yaw of each quaternion half taken on its own.
func (o Orientation) SideEuler() (left, right [3]Real) {
	return quatEuler(o.L), quatEuler(o.R)
}

func quatEuler(q quat.Number) [3]Real {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	roll := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	pitch := math.Asin(clamp(2*(w*y-z*x), -1, 1))
	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return [3]Real{roll, pitch, yaw}
}

// ApproxEqual compares the rotations, not the quaternion signs.
func (o Orientation) ApproxEqual(b Orientation, tol Real) bool {
	return o.Matrix().ApproxEqual(b.Matrix(), tol)
}

func toMgl(q quat.Number) mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
}

func fromMgl(q mgl64.Quat) quat.Number {
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

func quatDot(a, b quat.Number) Real {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// Slerp interpolates each quaternion half independently. (L, R) and (-L, -R)
// are the same rotation, so b's sign is chosen once for both halves to keep
// the combined path short.
func Slerp(a, b Orientation, t Real) Orientation {
	t = clamp(t, 0, 1)
	if quatDot(a.L, b.L)+quatDot(a.R, b.R) < 0 {
		b = Orientation{L: quat.Scale(-1, b.L), R: quat.Scale(-1, b.R)}
	}
	return Orientation{
		L: unitQuat(fromMgl(mgl64.QuatSlerp(toMgl(a.L), toMgl(b.L), t))),
		R: unitQuat(fromMgl(mgl64.QuatSlerp(toMgl(a.R), toMgl(b.R), t))),
	}
}
