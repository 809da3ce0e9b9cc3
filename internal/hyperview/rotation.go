package hyperview

import "math"

// Plane names one of the six coordinate rotation planes.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
	PlaneXW
	PlaneYW
	PlaneZW
)

// RotationOrder is the order in which the six plane rotations of a Rot4 are
// applied. It is not commutative and must not change.
var RotationOrder = [6]Plane{PlaneZW, PlaneYW, PlaneXW, PlaneXY, PlaneYZ, PlaneXZ}

var planeNames = [6]string{"xy", "xz", "yz", "xw", "yw", "zw"}

func (p Plane) String() string { return planeNames[p] }

// axes returns the component indices (0=x .. 3=w) spanning the plane.
func (p Plane) axes() (int, int) {
	switch p {
	case PlaneXY:
		return 0, 1
	case PlaneXZ:
		return 0, 2
	case PlaneYZ:
		return 1, 2
	case PlaneXW:
		return 0, 3
	case PlaneYW:
		return 1, 3
	default:
		return 2, 3
	}
}

// Rot4 holds one angle (radians) per rotation plane. Depending on context it
// is an increment (a per-tick spin, a UI delta) or an absolute orientation.
type Rot4 struct {
	XY, XZ, XW, YZ, YW, ZW Real
}

func (r Rot4) Angle(p Plane) Real {
	switch p {
	case PlaneXY:
		return r.XY
	case PlaneXZ:
		return r.XZ
	case PlaneYZ:
		return r.YZ
	case PlaneXW:
		return r.XW
	case PlaneYW:
		return r.YW
	default:
		return r.ZW
	}
}

// Normalized wraps every angle into [-π, π).
func (r Rot4) Normalized() Rot4 {
	return Rot4{
		XY: wrapAngle(r.XY), XZ: wrapAngle(r.XZ), XW: wrapAngle(r.XW),
		YZ: wrapAngle(r.YZ), YW: wrapAngle(r.YW), ZW: wrapAngle(r.ZW),
	}
}

func (r Rot4) Neg() Rot4 {
	return Rot4{XY: -r.XY, XZ: -r.XZ, XW: -r.XW, YZ: -r.YZ, YW: -r.YW, ZW: -r.ZW}
}

func (r Rot4) Scale(s Real) Rot4 {
	return Rot4{XY: r.XY * s, XZ: r.XZ * s, XW: r.XW * s, YZ: r.YZ * s, YW: r.YW * s, ZW: r.ZW * s}
}

func (r Rot4) IsZero() bool { return r == Rot4{} }

// RotatePlane rotates the two components of v spanning p by angle a:
// vi' = c*vi - s*vj, vj' = s*vi + c*vj. The other two components are kept.
func RotatePlane(v Vector4, p Plane, a Real) Vector4 {
	if a == 0 {
		return v
	}
	c, s := math.Cos(a), math.Sin(a)
	i, j := p.axes()
	x := v.arr()
	x[i], x[j] = c*x[i]-s*x[j], s*x[i]+c*x[j]
	return vec4(x)
}

// Rotate applies the six plane rotations in RotationOrder.
func (r Rot4) Rotate(v Vector4) Vector4 {
	for _, p := range RotationOrder {
		v = RotatePlane(v, p, r.Angle(p))
	}
	return v
}

// RotateInverse undoes Rotate: negated angles in reverse order.
func (r Rot4) RotateInverse(v Vector4) Vector4 {
	for k := len(RotationOrder) - 1; k >= 0; k-- {
		p := RotationOrder[k]
		v = RotatePlane(v, p, -r.Angle(p))
	}
	return v
}

func planeMatrix(p Plane, a Real) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	i, j := p.axes()
	M := I4()
	M.M[i][i], M.M[i][j] = c, -s
	M.M[j][i], M.M[j][j] = s, c
	return M
}

// Matrix composes the rotation in RotationOrder; Matrix().MulVec(v) == Rotate(v).
func (r Rot4) Matrix() Mat4 {
	R := I4()
	for _, p := range RotationOrder {
		R = planeMatrix(p, r.Angle(p)).Mul(R)
	}
	return R
}

// Rot4FromMatrix decomposes a rotation matrix into the six plane angles that
// reproduce it under RotationOrder. The w row fixes zw, yw and xw; what is
// left is a 3D rotation split into xy, yz and xz.
func Rot4FromMatrix(M Mat4) Rot4 {
	var r Rot4
	m := M.M
	r.XW = math.Atan2(m[3][0], math.Sqrt(m[3][1]*m[3][1]+m[3][2]*m[3][2]+m[3][3]*m[3][3]))
	r.YW = math.Atan2(m[3][1], math.Hypot(m[3][2], m[3][3]))
	r.ZW = math.Atan2(m[3][2], m[3][3])

	W := planeMatrix(PlaneXW, r.XW).Mul(planeMatrix(PlaneYW, r.YW)).Mul(planeMatrix(PlaneZW, r.ZW))
	N := M.Mul(W.Transpose()).M

	r.YZ = math.Atan2(-N[1][2], math.Hypot(N[1][0], N[1][1]))
	r.XY = math.Atan2(N[1][0], N[1][1])

	C := planeMatrix(PlaneXY, r.XY)
	B := planeMatrix(PlaneYZ, r.YZ)
	A := Mat4{M: N}.Mul(C.Transpose()).Mul(B.Transpose()).M
	r.XZ = math.Atan2(A[2][0], A[0][0])
	return r
}
