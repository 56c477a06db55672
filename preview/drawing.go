package preview

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

const circleSegments = 12

func fillConvexPolygon(screen *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(xp)-2)*3)
	for i := 2; i < len(xp); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	vertices := make([]ebiten.Vertex, len(xp))
	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	for i := range xp {
		vertices[i] = ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vertices, indices, whiteSub, op)
}

// drawPolygonOutline strokes a closed polygon.
func drawPolygonOutline(screen *ebiten.Image, xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	strokeOp := &vector.StrokeOptions{Width: strokeWidth}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// screenDrawer draws gizmos onto an ebiten image through a camera.
type screenDrawer struct {
	screen        *ebiten.Image
	vp            mgl64.Mat4
	width, height int
	pixelsPerUnit float64
}

func (d *screenDrawer) DrawSphere(center mgl64.Vec3, radius float64, c color.RGBA) {
	x, y, depth, ok := project(d.vp, center, d.width, d.height)
	if !ok {
		return
	}
	r := math.Max(1.5, radius*d.pixelsPerUnit/depth)
	xp := make([]float32, circleSegments)
	yp := make([]float32, circleSegments)
	for i := 0; i < circleSegments; i++ {
		a := float64(i) / circleSegments * 2 * math.Pi
		xp[i] = float32(x + r*math.Cos(a))
		yp[i] = float32(y + r*math.Sin(a))
	}
	fillConvexPolygon(d.screen, xp, yp, c)
}

func (d *screenDrawer) DrawLine(from, to mgl64.Vec3, c color.RGBA) {
	x0, y0, _, ok0 := project(d.vp, from, d.width, d.height)
	x1, y1, _, ok1 := project(d.vp, to, d.width, d.height)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(d.screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, true)
}
