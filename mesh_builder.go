package texemit

import "github.com/go-gl/mathgl/mgl64"

type vertexKey [8]float64

// MeshBuilder accumulates vertices and triangles. Identical vertex records
// (position, uv and normal) are stored once.
type MeshBuilder struct {
	vertices    []mgl64.Vec3
	uvs         []mgl64.Vec2
	normals     []mgl64.Vec3
	triangles   []int
	vertexIndex map[vertexKey]int
}

func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{
		vertexIndex: make(map[vertexKey]int),
	}
}

// AddVertex returns the index of the vertex, reusing an existing one when the
// same record was added before.
func (b *MeshBuilder) AddVertex(pos mgl64.Vec3, uv mgl64.Vec2, normal mgl64.Vec3) int {
	key := vertexKey{pos[0], pos[1], pos[2], uv[0], uv[1], normal[0], normal[1], normal[2]}
	if index, found := b.vertexIndex[key]; found {
		return index
	}

	b.vertices = append(b.vertices, pos)
	b.uvs = append(b.uvs, uv)
	b.normals = append(b.normals, normal)
	index := len(b.vertices) - 1
	b.vertexIndex[key] = index
	return index
}

func (b *MeshBuilder) AddTriangle(i, j, k int) {
	b.triangles = append(b.triangles, i, j, k)
}

// AddPolygon fan triangulates a convex polygon given as vertex indices.
func (b *MeshBuilder) AddPolygon(indices []int) {
	for i := 2; i < len(indices); i++ {
		b.AddTriangle(indices[0], indices[i-1], indices[i])
	}
}

func (b *MeshBuilder) VertexCount() int {
	return len(b.vertices)
}

// Build validates and returns the mesh. The builder must not be reused afterwards.
func (b *MeshBuilder) Build() (*Mesh, error) {
	return NewMesh(b.vertices, b.uvs, b.normals, b.triangles)
}
