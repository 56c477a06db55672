package texemit

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a triangulated surface with per vertex uvs. It is not modified by
// any query, so a built Mesh can be shared between goroutines.
type Mesh struct {
	Vertices  []mgl64.Vec3
	UVs       []mgl64.Vec2
	Normals   []mgl64.Vec3
	Triangles []int
}

// MeshProvider supplies the mesh an emitter is attached to.
type MeshProvider interface {
	Mesh() *Mesh
}

func (m *Mesh) Mesh() *Mesh {
	return m
}

// NewMesh validates the arrays and wraps them in a Mesh. The slices are not copied.
func NewMesh(vertices []mgl64.Vec3, uvs []mgl64.Vec2, normals []mgl64.Vec3, triangles []int) (*Mesh, error) {
	m := &Mesh{
		Vertices:  vertices,
		UVs:       uvs,
		Normals:   normals,
		Triangles: triangles,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mesh) Validate() error {
	if len(m.UVs) != len(m.Vertices) {
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrInvalidMesh, len(m.UVs), len(m.Vertices))
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(m.Normals), len(m.Vertices))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%w: triangle index count %d is not a multiple of 3", ErrInvalidMesh, len(m.Triangles))
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: triangle index %d at position %d out of range", ErrInvalidMesh, idx, i)
		}
	}
	return nil
}

func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (int, int, int) {
	i := t * 3
	return m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
}

// Extents returns the size of the mesh's bounding box on each axis.
func (m *Mesh) Extents() mgl64.Vec3 {
	if len(m.Vertices) == 0 {
		return mgl64.Vec3{}
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, p := range m.Vertices {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < lo[axis] {
				lo[axis] = p[axis]
			} else if p[axis] > hi[axis] {
				hi[axis] = p[axis]
			}
		}
	}
	return hi.Sub(lo)
}
