package preview

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCameraPosition(t *testing.T) {
	c := NewCamera(mgl64.Vec3{1, 0, 0}, 2)
	if got := c.Position(); !got.ApproxEqualThreshold(mgl64.Vec3{1, 0, 2}, 1e-9) {
		t.Errorf("Position() = %v", got)
	}
	c.AddAngle(0, math.Pi/2)
	if got := c.Position(); !got.ApproxEqualThreshold(mgl64.Vec3{3, 0, 0}, 1e-9) {
		t.Errorf("Position() after yaw = %v", got)
	}
}

func TestCameraPitchLimit(t *testing.T) {
	c := NewCamera(mgl64.Vec3{}, 1)
	c.AddAngle(10, 0)
	if c.Pitch >= math.Pi/2 {
		t.Errorf("pitch %v reached the pole", c.Pitch)
	}
	c.AddAngle(-20, 0)
	if c.Pitch <= -math.Pi/2 {
		t.Errorf("pitch %v reached the pole", c.Pitch)
	}
}

func TestCameraZoom(t *testing.T) {
	c := NewCamera(mgl64.Vec3{}, 1)
	c.Zoom(0.5)
	if c.Distance != 0.5 {
		t.Errorf("Distance = %v, want 0.5", c.Distance)
	}
	c.Zoom(0)
	if c.Distance != nearPlane*10 {
		t.Errorf("Distance = %v, want clamp at %v", c.Distance, nearPlane*10)
	}
}

func TestProject(t *testing.T) {
	c := NewCamera(mgl64.Vec3{}, 3)
	vp := c.ViewProjection(800, 600)

	x, y, depth, ok := project(vp, mgl64.Vec3{}, 800, 600)
	if !ok {
		t.Fatal("target not visible")
	}
	if math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 || math.Abs(depth-3) > 1e-6 {
		t.Errorf("project(target) = %v, %v, %v", x, y, depth)
	}

	// above the target lands above the centre of the screen
	_, y, _, ok = project(vp, mgl64.Vec3{0, 0.5, 0}, 800, 600)
	if !ok || y >= 300 {
		t.Errorf("point above target at y=%v", y)
	}

	if _, _, _, ok := project(vp, mgl64.Vec3{0, 0, 10}, 800, 600); ok {
		t.Error("point behind the camera reported visible")
	}
}
