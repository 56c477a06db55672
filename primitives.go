package texemit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewQuad returns a size x size quad in the xy plane facing +z, centred on the
// origin, with uv (0,0) at the bottom-left corner.
func NewQuad(size float64) *Mesh {
	h := size / 2
	n := mgl64.Vec3{0, 0, 1}
	b := NewMeshBuilder()
	bl := b.AddVertex(mgl64.Vec3{-h, -h, 0}, mgl64.Vec2{0, 0}, n)
	br := b.AddVertex(mgl64.Vec3{h, -h, 0}, mgl64.Vec2{1, 0}, n)
	tr := b.AddVertex(mgl64.Vec3{h, h, 0}, mgl64.Vec2{1, 1}, n)
	tl := b.AddVertex(mgl64.Vec3{-h, h, 0}, mgl64.Vec2{0, 1}, n)
	b.AddPolygon([]int{bl, br, tr, tl})

	m, _ := b.Build()
	return m
}

// NewUVSphere returns a latitude/longitude sphere. u wraps around the y axis
// and v runs from the south pole (0) to the north pole (1). The seam column
// and the pole rows are duplicated per slice, so every cell of the uv grid is
// covered by two triangles even where they collapse to a point in 3D.
func NewUVSphere(radius float64, slices, stacks int) *Mesh {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}
	b := NewMeshBuilder()
	ring := make([][]int, stacks+1)
	for st := 0; st <= stacks; st++ {
		v := float64(st) / float64(stacks)
		phi := v * math.Pi
		ring[st] = make([]int, slices+1)
		for sl := 0; sl <= slices; sl++ {
			u := float64(sl) / float64(slices)
			theta := u * 2 * math.Pi
			n := mgl64.Vec3{
				math.Sin(phi) * math.Cos(theta),
				-math.Cos(phi),
				math.Sin(phi) * math.Sin(theta),
			}
			ring[st][sl] = b.AddVertex(n.Mul(radius), mgl64.Vec2{u, v}, n)
		}
	}

	for st := 0; st < stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			a := ring[st][sl]
			c := ring[st][sl+1]
			d := ring[st+1][sl+1]
			e := ring[st+1][sl]
			b.AddTriangle(a, c, e)
			b.AddTriangle(c, d, e)
		}
	}

	m, _ := b.Build()
	return m
}
