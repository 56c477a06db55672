package texemit

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func vecAlmostEqual(a, b mgl64.Vec3) bool {
	return almostEqual(a[0], b[0]) && almostEqual(a[1], b[1]) && almostEqual(a[2], b[2])
}

// unitTriangle has uv corners (0,0), (1,0), (0,1) over the same 3D corners.
func unitTriangle() *Mesh {
	return &Mesh{
		Vertices:  []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		UVs:       []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}},
		Normals:   []mgl64.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Triangles: []int{0, 1, 2},
	}
}

// solidTexture returns a w x h emission map of one colour.
func solidTexture(w, h int, c color.NRGBA) *EmissionMap {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return NewEmissionMap(img)
}

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
