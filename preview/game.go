// Package preview shows an emitter's scanned points over its mesh in a window.
package preview

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/texemit"
)

var wireColor = color.RGBA{R: 70, G: 70, B: 80, A: 255}

type Game struct {
	emitter       *texemit.Emitter
	mesh          *texemit.Mesh
	camera        *Camera
	width, height int

	dragging     bool
	lastX, lastY int
}

func NewGame(emitter *texemit.Emitter, mesh *texemit.Mesh, width, height int, distance float64) *Game {
	return &Game{
		emitter: emitter,
		mesh:    mesh,
		camera:  NewCamera(emitter.Transform.Position, distance),
		width:   width,
		height:  height,
	}
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragging {
		x, y := ebiten.CursorPosition()
		dx := float64(x-g.lastX) / 200.0
		dy := float64(y-g.lastY) / 200.0
		g.camera.AddAngle(dy, -dx)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.camera.Zoom(math.Pow(0.9, wy))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	vp := g.camera.ViewProjection(g.width, g.height)
	g.drawWireframe(screen, vp)

	d := &screenDrawer{
		screen:        screen,
		vp:            vp,
		width:         g.width,
		height:        g.height,
		pixelsPerUnit: float64(g.height) / (2 * math.Tan(mgl64.DegToRad(fovY)/2)),
	}
	g.emitter.DrawGizmos(d)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("points: %d  FPS: %0.2f", len(g.emitter.Points()), ebiten.ActualFPS()))
}

func (g *Game) drawWireframe(screen *ebiten.Image, vp mgl64.Mat4) {
	m := g.emitter.Transform
	for t := 0; t < g.mesh.TriangleCount(); t++ {
		i1, i2, i3 := g.mesh.Triangle(t)
		xp := make([]float32, 0, 3)
		yp := make([]float32, 0, 3)
		for _, i := range []int{i1, i2, i3} {
			x, y, _, ok := project(vp, m.TransformPoint(g.mesh.Vertices[i]), g.width, g.height)
			if !ok {
				break
			}
			xp = append(xp, float32(x))
			yp = append(yp, float32(y))
		}
		if len(xp) == 3 {
			drawPolygonOutline(screen, xp, yp, 1, wireColor)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the preview window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("texemit preview")
	slog.Info("opening preview", "width", g.width, "height", g.height)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
