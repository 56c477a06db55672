package texemit

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// TextureSampler reads texels by integer pixel coordinate. The origin is the
// bottom-left texel and y grows upwards.
type TextureSampler interface {
	Width() int
	Height() int
	Pixel(x, y int) color.NRGBA
}

var opaqueBlack = color.NRGBA{A: 255}

// IsBlack reports whether c is exactly opaque black. Such texels emit nothing.
func IsBlack(c color.NRGBA) bool {
	return c == opaqueBlack
}

// EmissionMap samples an image as an emission texture. Coordinates outside
// the image clamp to the nearest edge texel.
type EmissionMap struct {
	img    image.Image
	bounds image.Rectangle
}

func NewEmissionMap(img image.Image) *EmissionMap {
	return &EmissionMap{img: img, bounds: img.Bounds()}
}

// Width is zero for a nil map.
func (e *EmissionMap) Width() int {
	if e == nil {
		return 0
	}
	return e.bounds.Dx()
}

func (e *EmissionMap) Height() int {
	if e == nil {
		return 0
	}
	return e.bounds.Dy()
}

func (e *EmissionMap) Pixel(x, y int) color.NRGBA {
	x = clamp(x, 0, e.Width()-1)
	y = clamp(y, 0, e.Height()-1)
	// flip: image rows run top to bottom
	c := e.img.At(e.bounds.Min.X+x, e.bounds.Max.Y-1-y)
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (e *EmissionMap) Image() image.Image {
	return e.img
}

func LoadEmissionMap(fileName string) (*EmissionMap, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open emission map %s: %w", fileName, err)
	}
	defer file.Close()

	em, err := ReadEmissionMap(file)
	if err != nil {
		return nil, fmt.Errorf("error decoding emission map %s: %w", fileName, err)
	}
	return em, nil
}

// ReadEmissionMap decodes PNG, JPEG, GIF, BMP, TIFF or WebP data.
func ReadEmissionMap(r io.Reader) (*EmissionMap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("emission map has no pixels")
	}
	return NewEmissionMap(img), nil
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
