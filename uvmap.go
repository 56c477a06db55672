package texemit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SurfacePoint is a position on the mesh surface found from a uv coordinate.
type SurfacePoint struct {
	Position mgl64.Vec3
	// Triangle is the ordinal of the containing triangle in the index list.
	Triangle int
	// Weights are the barycentric weights of the triangle's three vertices.
	Weights mgl64.Vec3
}

// UVMapper finds the surface point for a uv coordinate.
type UVMapper interface {
	UVTo3D(uv mgl64.Vec2) (SurfacePoint, bool)
}

// UVTo3D finds the first triangle, in index list order, whose uv footprint
// contains uv and interpolates its vertex positions. Triangles with zero uv
// area are skipped. ok is false when no triangle contains uv, and for NaN or
// infinite coordinates.
//
// No tolerance is applied, so a uv exactly on an edge shared by two triangles
// may be assigned to either of them under rounding.
func (m *Mesh) UVTo3D(uv mgl64.Vec2) (SurfacePoint, bool) {
	if !finite(uv) {
		return SurfacePoint{}, false
	}
	for t := 0; t < m.TriangleCount(); t++ {
		if p, ok := m.triangleUVTo3D(t, uv); ok {
			return p, true
		}
	}
	return SurfacePoint{}, false
}

// UVTo3DOrZero returns the mapped position, or the origin when uv is not on
// the mesh.
func (m *Mesh) UVTo3DOrZero(uv mgl64.Vec2) mgl64.Vec3 {
	p, _ := m.UVTo3D(uv)
	return p.Position
}

func (m *Mesh) triangleUVTo3D(t int, uv mgl64.Vec2) (SurfacePoint, bool) {
	i1, i2, i3 := m.Triangle(t)
	u1, u2, u3 := m.UVs[i1], m.UVs[i2], m.UVs[i3]

	a := SignedArea(u1, u2, u3)
	if a == 0 {
		return SurfacePoint{}, false
	}
	a1 := SignedArea(u2, u3, uv) / a
	if a1 < 0 {
		return SurfacePoint{}, false
	}
	a2 := SignedArea(u3, u1, uv) / a
	if a2 < 0 {
		return SurfacePoint{}, false
	}
	a3 := SignedArea(u1, u2, uv) / a
	if a3 < 0 {
		return SurfacePoint{}, false
	}

	pos := m.Vertices[i1].Mul(a1).
		Add(m.Vertices[i2].Mul(a2)).
		Add(m.Vertices[i3].Mul(a3))
	return SurfacePoint{
		Position: pos,
		Triangle: t,
		Weights:  mgl64.Vec3{a1, a2, a3},
	}, true
}

func finite(uv mgl64.Vec2) bool {
	return !math.IsNaN(uv[0]) && !math.IsNaN(uv[1]) && !math.IsInf(uv[0], 0) && !math.IsInf(uv[1], 0)
}
