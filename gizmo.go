package texemit

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	gizmoSphereRadius = 0.01
	gizmoNormalScale  = 0.1
)

// GizmoDrawer draws editor overlays in world space.
type GizmoDrawer interface {
	DrawSphere(center mgl64.Vec3, radius float64, c color.RGBA)
	DrawLine(from, to mgl64.Vec3, c color.RGBA)
}

var (
	GizmoPointColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	GizmoNormalColor = color.RGBA{R: 0, G: 200, B: 255, A: 255}
)

// DrawGizmos draws a small sphere on every scanned point and a short line
// along its normal, both in world space.
func (e *Emitter) DrawGizmos(d GizmoDrawer) {
	m := e.Transform.Matrix()
	for _, p := range e.points {
		pos := p.Position
		normDir := p.Normal.Mul(gizmoNormalScale * float64(e.NormalsDirection))

		worldPos := m.Mul4x1(pos.Vec4(1)).Vec3()
		worldTip := m.Mul4x1(pos.Add(normDir).Vec4(1)).Vec3()
		d.DrawSphere(worldPos, gizmoSphereRadius, GizmoPointColor)
		d.DrawLine(worldPos, worldTip, GizmoNormalColor)
	}
}
