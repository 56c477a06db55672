package texemit

import "github.com/go-gl/mathgl/mgl64"

// SignedArea returns the signed area of the triangle p1, p2, p3 using a 2D
// cross product of the edges relative to p3. The sign follows the winding
// order; collinear points give zero.
func SignedArea(p1, p2, p3 mgl64.Vec2) float64 {
	v1 := p1.Sub(p3)
	v2 := p2.Sub(p3)
	return (v1.X()*v2.Y() - v1.Y()*v2.X()) / 2
}

// Barycentric returns the weights of q relative to the UV triangle u1, u2, u3.
// ok is false when the triangle has zero area.
func Barycentric(u1, u2, u3, q mgl64.Vec2) (w mgl64.Vec3, ok bool) {
	a := SignedArea(u1, u2, u3)
	if a == 0 {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{
		SignedArea(u2, u3, q) / a,
		SignedArea(u3, u1, q) / a,
		SignedArea(u1, u2, q) / a,
	}, true
}

// uvBounds returns the min and max corners of a set of uv points.
func uvBounds(uvs []mgl64.Vec2) (mgl64.Vec2, mgl64.Vec2) {
	if len(uvs) == 0 {
		return mgl64.Vec2{}, mgl64.Vec2{}
	}
	lo, hi := uvs[0], uvs[0]
	for _, p := range uvs[1:] {
		if p[0] < lo[0] {
			lo[0] = p[0]
		} else if p[0] > hi[0] {
			hi[0] = p[0]
		}
		if p[1] < lo[1] {
			lo[1] = p[1]
		} else if p[1] > hi[1] {
			hi[1] = p[1]
		}
	}
	return lo, hi
}
