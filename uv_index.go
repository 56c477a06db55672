package texemit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// UVIndex buckets a mesh's triangles into a regular grid over uv space so a
// query only tests the triangles overlapping its cell. Candidates are tested in
// index list order, so results match Mesh.UVTo3D exactly.
type UVIndex struct {
	mesh  *Mesh
	cells int
	lo    mgl64.Vec2
	hi    mgl64.Vec2
	size  mgl64.Vec2
	grid  [][]int
}

// NewUVIndex builds a cells x cells grid. cells below 1 is treated as 1.
func NewUVIndex(mesh *Mesh, cells int) *UVIndex {
	if cells < 1 {
		cells = 1
	}
	lo, hi := uvBounds(mesh.UVs)
	idx := &UVIndex{
		mesh:  mesh,
		cells: cells,
		lo:    lo,
		hi:    hi,
		size:  hi.Sub(lo),
		grid:  make([][]int, cells*cells),
	}

	for t := 0; t < mesh.TriangleCount(); t++ {
		i1, i2, i3 := mesh.Triangle(t)
		u1, u2, u3 := mesh.UVs[i1], mesh.UVs[i2], mesh.UVs[i3]
		if SignedArea(u1, u2, u3) == 0 {
			continue
		}
		minX := math.Min(u1[0], math.Min(u2[0], u3[0]))
		maxX := math.Max(u1[0], math.Max(u2[0], u3[0]))
		minY := math.Min(u1[1], math.Min(u2[1], u3[1]))
		maxY := math.Max(u1[1], math.Max(u2[1], u3[1]))

		x0, y0 := idx.cell(mgl64.Vec2{minX, minY})
		x1, y1 := idx.cell(mgl64.Vec2{maxX, maxY})
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				// t only grows, so each bucket stays sorted.
				idx.grid[y*cells+x] = append(idx.grid[y*cells+x], t)
			}
		}
	}
	return idx
}

// cell returns the clamped grid cell containing uv.
func (idx *UVIndex) cell(uv mgl64.Vec2) (int, int) {
	return idx.axisCell(uv[0], 0), idx.axisCell(uv[1], 1)
}

func (idx *UVIndex) axisCell(v float64, axis int) int {
	if idx.size[axis] == 0 {
		return 0
	}
	c := int(math.Floor((v - idx.lo[axis]) / idx.size[axis] * float64(idx.cells)))
	if c < 0 {
		return 0
	}
	if c >= idx.cells {
		return idx.cells - 1
	}
	return c
}

func (idx *UVIndex) contains(uv mgl64.Vec2) bool {
	return uv[0] >= idx.lo[0] && uv[0] <= idx.hi[0] && uv[1] >= idx.lo[1] && uv[1] <= idx.hi[1]
}

// UVTo3D answers the same query as Mesh.UVTo3D using the grid.
func (idx *UVIndex) UVTo3D(uv mgl64.Vec2) (SurfacePoint, bool) {
	if !finite(uv) || !idx.contains(uv) {
		return SurfacePoint{}, false
	}
	x, y := idx.cell(uv)
	for _, t := range idx.grid[y*idx.cells+x] {
		if p, ok := idx.mesh.triangleUVTo3D(t, uv); ok {
			return p, true
		}
	}
	return SurfacePoint{}, false
}

func (idx *UVIndex) Mesh() *Mesh {
	return idx.mesh
}
