package texemit

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	noiseScale  = 4.0
)

// NewNoiseEmissionMap builds a width x height emission map from Perlin noise.
// Texels whose noise value, remapped to [0,1], is below threshold are opaque
// black; the rest are tinted with c scaled by their brightness.
func NewNoiseEmissionMap(width, height int, threshold float64, c color.NRGBA, seed int64) *EmissionMap {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := p.Noise2D(float64(x)/float64(width)*noiseScale, float64(y)/float64(height)*noiseScale)
			v := math.Max(0, math.Min(1, (n+1)/2))
			if v < threshold {
				img.SetNRGBA(x, y, opaqueBlack)
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(float64(c.R) * v),
				G: uint8(float64(c.G) * v),
				B: uint8(float64(c.B) * v),
				A: 255,
			})
		}
	}
	return NewEmissionMap(img)
}
