package preview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	fovY      = 60.0
	nearPlane = 0.01
	farPlane  = 100.0
)

// Camera orbits a target point.
type Camera struct {
	Target   mgl64.Vec3
	Distance float64
	Yaw      float64
	Pitch    float64
}

func NewCamera(target mgl64.Vec3, distance float64) *Camera {
	return &Camera{Target: target, Distance: distance}
}

// AddAngle turns the camera around the target. Pitch stops short of the poles.
func (c *Camera) AddAngle(pitch, yaw float64) {
	c.Yaw += yaw
	c.Pitch += pitch
	limit := math.Pi/2 - 0.01
	if c.Pitch > limit {
		c.Pitch = limit
	} else if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

func (c *Camera) Zoom(factor float64) {
	c.Distance *= factor
	if c.Distance < nearPlane*10 {
		c.Distance = nearPlane * 10
	}
}

func (c *Camera) Position() mgl64.Vec3 {
	offset := mgl64.Vec3{
		math.Cos(c.Pitch) * math.Sin(c.Yaw),
		math.Sin(c.Pitch),
		math.Cos(c.Pitch) * math.Cos(c.Yaw),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// ViewProjection returns the combined matrix for a screen of the given size.
func (c *Camera) ViewProjection(width, height int) mgl64.Mat4 {
	proj := mgl64.Perspective(mgl64.DegToRad(fovY), float64(width)/float64(height), nearPlane, farPlane)
	view := mgl64.LookAtV(c.Position(), c.Target, mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// project maps a world point to screen pixels. ok is false behind the camera.
func project(vp mgl64.Mat4, p mgl64.Vec3, width, height int) (x, y, depth float64, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip[3] <= nearPlane {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	x = (ndc[0] + 1) / 2 * float64(width)
	y = (1 - ndc[1]) / 2 * float64(height)
	return x, y, clip[3], true
}
