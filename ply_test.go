package texemit

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const quadPLY = `ply
format ascii 1.0
comment exported quad
element vertex 4
property float x
property float y
property float z
property float nx
property float ny
property float nz
property float s
property float t
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 0 1 0 0
2 0 0 0 0 1 1 0
2 2 0 0 0 1 1 1
0 2 0 0 0 1 0 1
4 0 1 2 3
`

func TestLoadMeshFromPLYReader(t *testing.T) {
	m, err := LoadMeshFromPLYReader(strings.NewReader(quadPLY))
	if err != nil {
		t.Fatalf("LoadMeshFromPLYReader() error: %v", err)
	}
	if len(m.Vertices) != 4 || len(m.Normals) != 4 {
		t.Fatalf("got %d vertices and %d normals", len(m.Vertices), len(m.Normals))
	}
	want := []int{0, 1, 2, 0, 2, 3}
	for i, idx := range want {
		if m.Triangles[i] != idx {
			t.Fatalf("Triangles = %v, want %v", m.Triangles, want)
		}
	}
	if m.UVs[2] != (mgl64.Vec2{1, 1}) {
		t.Errorf("UVs[2] = %v", m.UVs[2])
	}
	p, ok := m.UVTo3D(mgl64.Vec2{0.25, 0.75})
	if !ok || !vecAlmostEqual(p.Position, mgl64.Vec3{0.5, 1.5, 0}) {
		t.Errorf("UVTo3D() = %v, %v", p.Position, ok)
	}
}

func TestLoadMeshFromPLYReaderUVNames(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 3
property float texture_u
property float texture_v
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 1 1 1
1 0 2 1 1
0 1 1 2 1
3 0 1 2
`
	m, err := LoadMeshFromPLYReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadMeshFromPLYReader() error: %v", err)
	}
	if m.Vertices[1] != (mgl64.Vec3{2, 1, 1}) || m.UVs[1] != (mgl64.Vec2{1, 0}) {
		t.Errorf("vertex 1 = %v uv %v", m.Vertices[1], m.UVs[1])
	}
	if len(m.Normals) != 0 {
		t.Errorf("expected no normals, got %d", len(m.Normals))
	}
}

func TestLoadMeshFromPLYReaderErrors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		invalidMesh bool
	}{
		{"not ply", "obj\n", false},
		{"binary", "ply\nformat binary_little_endian 1.0\nend_header\n", false},
		{"no uvs", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n", true},
		{"truncated vertices", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nproperty float u\nproperty float v\nend_header\n0 0 0 0 0\n", false},
		{"bad index", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nproperty float u\nproperty float v\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0 0 0\n3 0 1 2\n", true},
		{"short face", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nproperty float u\nproperty float v\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0 0 0\n2 0 0\n", false},
		{"no end_header", "ply\nformat ascii 1.0\nelement vertex 1\n", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadMeshFromPLYReader(strings.NewReader(tc.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.invalidMesh && !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("error %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestWritePLYRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		mesh *Mesh
	}{
		{"sphere", NewUVSphere(0.5, 8, 6)},
		{"no normals", &Mesh{
			Vertices:  []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			UVs:       []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}},
			Triangles: []int{0, 1, 2},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf strings.Builder
			if err := tc.mesh.WritePLY(&buf); err != nil {
				t.Fatalf("WritePLY() error: %v", err)
			}
			got, err := LoadMeshFromPLYReader(strings.NewReader(buf.String()))
			if err != nil {
				t.Fatalf("LoadMeshFromPLYReader() error: %v", err)
			}
			if len(got.Vertices) != len(tc.mesh.Vertices) || len(got.Normals) != len(tc.mesh.Normals) || len(got.Triangles) != len(tc.mesh.Triangles) {
				t.Fatalf("sizes changed: %d/%d/%d vertices/normals/indices", len(got.Vertices), len(got.Normals), len(got.Triangles))
			}
			for i := range got.Vertices {
				if got.Vertices[i] != tc.mesh.Vertices[i] || got.UVs[i] != tc.mesh.UVs[i] {
					t.Fatalf("vertex %d = %v %v, want %v %v", i, got.Vertices[i], got.UVs[i], tc.mesh.Vertices[i], tc.mesh.UVs[i])
				}
			}
			for i := range got.Triangles {
				if got.Triangles[i] != tc.mesh.Triangles[i] {
					t.Fatalf("index %d = %d, want %d", i, got.Triangles[i], tc.mesh.Triangles[i])
				}
			}
		})
	}
}
