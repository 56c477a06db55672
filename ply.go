package texemit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// uv property names, in order of preference, as written by common exporters.
var plyUVNames = [][2]string{
	{"u", "v"},
	{"s", "t"},
	{"texture_u", "texture_v"},
	{"texture_s", "texture_t"},
}

func LoadMeshFromPLYFile(fileName string) (*Mesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	mesh, err := LoadMeshFromPLYReader(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}
	return mesh, nil
}

type plyHeader struct {
	vertexCount int
	faceCount   int
	props       map[string]int
	propCount   int
}

func (h *plyHeader) column(names ...string) (int, bool) {
	for _, n := range names {
		if c, ok := h.props[n]; ok {
			return c, true
		}
	}
	return 0, false
}

// LoadMeshFromPLYReader reads an ASCII PLY mesh with per vertex texture
// coordinates. Normals are optional. Polygon faces are fan triangulated.
func LoadMeshFromPLYReader(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)

	header, err := readPLYHeader(scanner)
	if err != nil {
		return nil, err
	}

	xc, okX := header.column("x")
	yc, okY := header.column("y")
	zc, okZ := header.column("z")
	if !okX || !okY || !okZ {
		return nil, fmt.Errorf("%w: PLY vertices need x, y and z", ErrInvalidMesh)
	}
	uc, vc, hasUV := -1, -1, false
	for _, names := range plyUVNames {
		u, okU := header.column(names[0])
		v, okV := header.column(names[1])
		if okU && okV {
			uc, vc, hasUV = u, v, true
			break
		}
	}
	if !hasUV {
		return nil, fmt.Errorf("%w: PLY vertices have no texture coordinates", ErrInvalidMesh)
	}
	nxc, okNX := header.column("nx")
	nyc, okNY := header.column("ny")
	nzc, okNZ := header.column("nz")
	hasNormals := okNX && okNY && okNZ

	vertices := make([]mgl64.Vec3, 0, header.vertexCount)
	uvs := make([]mgl64.Vec2, 0, header.vertexCount)
	var normals []mgl64.Vec3
	if hasNormals {
		normals = make([]mgl64.Vec3, 0, header.vertexCount)
	}

	for i := 0; i < header.vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < header.propCount {
			return nil, fmt.Errorf("invalid vertex data on line %d: want %d values, got %d", i, header.propCount, len(parts))
		}
		vals := make([]float64, len(parts))
		for j, p := range parts {
			vals[j], err = strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("could not parse vertex %d value '%s': %w", i, p, err)
			}
		}
		vertices = append(vertices, mgl64.Vec3{vals[xc], vals[yc], vals[zc]})
		uvs = append(uvs, mgl64.Vec2{vals[uc], vals[vc]})
		if hasNormals {
			normals = append(normals, mgl64.Vec3{vals[nxc], vals[nyc], vals[nzc]})
		}
	}

	var triangles []int
	for i := 0; i < header.faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face on line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || numFaceVerts < 3 || len(parts) < numFaceVerts+1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}
		indices := make([]int, numFaceVerts)
		for j := range indices {
			indices[j], err = strconv.Atoi(parts[j+1])
			if err != nil {
				return nil, fmt.Errorf("could not parse face %d index '%s': %w", i, parts[j+1], err)
			}
		}
		for j := 2; j < numFaceVerts; j++ {
			triangles = append(triangles, indices[0], indices[j-1], indices[j])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	return NewMesh(vertices, uvs, normals, triangles)
}

func readPLYHeader(scanner *bufio.Scanner) (*plyHeader, error) {
	h := &plyHeader{props: make(map[string]int)}
	var currentElement string

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, fmt.Errorf("missing ply magic")
	}
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("unsupported PLY format %q", strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			currentElement = parts[1]
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("bad %s count: %w", parts[1], err)
			}
			switch parts[1] {
			case "vertex":
				h.vertexCount = n
			case "face":
				h.faceCount = n
			}
		case "property":
			if currentElement == "vertex" && len(parts) == 3 {
				h.props[parts[2]] = h.propCount
				h.propCount++
			}
		case "end_header":
			return h, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading PLY header: %w", err)
	}
	return nil, fmt.Errorf("unexpected end of file in PLY header")
}

// SavePLYFile writes the mesh as ASCII PLY with u/v and, when present, normals.
func (m *Mesh) SavePLYFile(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	if err := m.WritePLY(file); err != nil {
		return fmt.Errorf("error writing PLY file %s: %w", fileName, err)
	}
	return nil
}

// WritePLY writes the mesh in the form LoadMeshFromPLYReader reads back.
func (m *Mesh) WritePLY(w io.Writer) error {
	writer := bufio.NewWriter(w)
	hasNormals := len(m.Normals) == len(m.Vertices) && len(m.Normals) > 0

	_, _ = fmt.Fprintln(writer, "ply")
	_, _ = fmt.Fprintln(writer, "format ascii 1.0")
	_, _ = fmt.Fprintln(writer, "comment Generated by texemit")
	_, _ = fmt.Fprintf(writer, "element vertex %d\n", len(m.Vertices))
	_, _ = fmt.Fprintln(writer, "property float x")
	_, _ = fmt.Fprintln(writer, "property float y")
	_, _ = fmt.Fprintln(writer, "property float z")
	if hasNormals {
		_, _ = fmt.Fprintln(writer, "property float nx")
		_, _ = fmt.Fprintln(writer, "property float ny")
		_, _ = fmt.Fprintln(writer, "property float nz")
	}
	_, _ = fmt.Fprintln(writer, "property float u")
	_, _ = fmt.Fprintln(writer, "property float v")
	_, _ = fmt.Fprintf(writer, "element face %d\n", m.TriangleCount())
	_, _ = fmt.Fprintln(writer, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintln(writer, "end_header")

	for i, p := range m.Vertices {
		_, _ = fmt.Fprintf(writer, "%s %s %s", plyFloat(p[0]), plyFloat(p[1]), plyFloat(p[2]))
		if hasNormals {
			n := m.Normals[i]
			_, _ = fmt.Fprintf(writer, " %s %s %s", plyFloat(n[0]), plyFloat(n[1]), plyFloat(n[2]))
		}
		uv := m.UVs[i]
		_, _ = fmt.Fprintf(writer, " %s %s\n", plyFloat(uv[0]), plyFloat(uv[1]))
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		_, _ = fmt.Fprintf(writer, "3 %d %d %d\n", a, b, c)
	}

	return writer.Flush()
}

func plyFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
