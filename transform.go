package texemit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform places an object in its parent's space: scale, then rotate, then
// translate.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// EulerRotation builds a rotation from angles in degrees, applied around z,
// then x, then y.
func EulerRotation(degrees mgl64.Vec3) mgl64.Quat {
	x := mgl64.QuatRotate(mgl64.DegToRad(degrees[0]), mgl64.Vec3{1, 0, 0})
	y := mgl64.QuatRotate(mgl64.DegToRad(degrees[1]), mgl64.Vec3{0, 1, 0})
	z := mgl64.QuatRotate(mgl64.DegToRad(degrees[2]), mgl64.Vec3{0, 0, 1})
	return y.Mul(x).Mul(z)
}

// Matrix returns the local to parent matrix.
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

func (t Transform) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.Matrix().Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection rotates d. Scale and translation are ignored.
func (t Transform) TransformDirection(d mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(d)
}

const parallelEpsilon = 1e-12

// LookRotation returns the rotation that turns +z towards forward with +y as
// close to up as possible. A zero forward gives the identity.
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	if forward.Len() == 0 {
		return mgl64.QuatIdent()
	}
	z := forward.Normalize()
	x := up.Cross(z)
	if x.Len() < parallelEpsilon {
		// forward is parallel to up, pick any perpendicular axis
		alt := mgl64.Vec3{0, 0, 1}
		if math.Abs(z[2]) > 0.9 {
			alt = mgl64.Vec3{1, 0, 0}
		}
		x = alt.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)
	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(x, y, z).Mat4()).Normalize()
}
