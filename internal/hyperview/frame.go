package hyperview

import "github.com/pkg/errors"

// ViewingFrame is an orthonormal 4D camera basis located at From. Wa, Wb and
// Wc span the projected 3D volume, Wd points along the line of sight.
type ViewingFrame struct {
	From           Point4
	Wa, Wb, Wc, Wd Vector4
}

// NewViewingFrame builds the 4D analogue of a look-at matrix:
//
//	Wd = |to - from|, Wa = |up × over × Wd|, Wb = |over × Wd × Wa|, Wc = Wd × Wa × Wb
//
// Wc needs no renormalization since its three factors are orthonormal.
func NewViewingFrame(from, to, up, over Vector4) (ViewingFrame, error) {
	d := to.Sub(from)
	if !(d.Len() > epsDegenerate) {
		return ViewingFrame{}, errors.Wrapf(ErrDegenerateBasis, "look target %+v coincides with camera %+v", to, from)
	}
	wd := d.Norm()
	wa, err := Cross4(up, over, wd)
	if err != nil {
		return ViewingFrame{}, errors.Wrap(err, "up/over are parallel to the line of sight or to each other")
	}
	wa = wa.Norm()
	wb, err := Cross4(over, wd, wa)
	if err != nil {
		return ViewingFrame{}, errors.Wrap(err, "over is parallel to the line of sight")
	}
	wb = wb.Norm()
	return ViewingFrame{
		From: from,
		Wa:   wa,
		Wb:   wb,
		Wc:   cross4(wd, wa, wb),
		Wd:   wd,
	}, nil
}

// DefaultViewingFrame is the camera-space frame of the interactive camera:
// at the origin looking toward -w, with y up and z over.
func DefaultViewingFrame() ViewingFrame {
	f, err := NewViewingFrame(Point4{}, Point4{W: -1}, Vector4{Y: 1}, Vector4{Z: 1})
	if err != nil {
		panic(err)
	}
	return f
}

// Depth is the signed distance of p in front of the frame along Wd.
func (f ViewingFrame) Depth(p Point4) Real {
	return p.Sub(f.From).Dot(f.Wd)
}

// Local returns p relative to From in frame coordinates (a, b, c, d).
func (f ViewingFrame) Local(p Point4) Vector4 {
	v := p.Sub(f.From)
	return Vector4{v.Dot(f.Wa), v.Dot(f.Wb), v.Dot(f.Wc), v.Dot(f.Wd)}
}
