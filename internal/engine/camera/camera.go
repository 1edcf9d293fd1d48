// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/boxedit/pkg/math"
)

// pitchEpsilon keeps the camera off the pole, where LookAt with a Y up
// vector degenerates.
const pitchEpsilon = 1e-6

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	// Point to orbit around
	Target math.Vec3

	// Spherical coordinates
	Distance float64 // Distance from target
	Pitch    float64 // Elevation above the target's horizontal plane, radians
	Yaw      float64 // Horizontal angle from +Z, radians

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64

	// Damping is the fraction of pending rotation applied per Update.
	// Zero applies drags immediately.
	Damping float64

	// Projection
	FieldOfView float64 // vertical, radians
	Near, Far   float64

	pendingYaw, pendingPitch float64
}

// NewOrbitCamera creates a new orbit camera looking at the world origin.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        2.0,
		Pitch:           0.3,
		Yaw:             0.0,
		MinDistance:     0.01,
		MaxDistance:     1000.0,
		MinPitch:        0.0,
		MaxPitch:        gomath.Pi/2 - pitchEpsilon,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Damping:         0.05,
		FieldOfView:     math.DegToRad(75),
		Near:            0.1,
		Far:             1000.0,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := gomath.Cos(c.Pitch)
	return c.Target.Add(math.Vec3{
		X: c.Distance * cp * gomath.Sin(c.Yaw),
		Y: c.Distance * gomath.Sin(c.Pitch),
		Z: c.Distance * cp * gomath.Cos(c.Yaw),
	})
}

// PlaceAt moves the camera to pos while keeping the target. The spherical
// coordinates are derived from pos, then clamped, so the final position may
// differ when pos lies outside the allowed pitch or distance. It returns
// false and leaves the camera unchanged if pos coincides with the target.
func (c *OrbitCamera) PlaceAt(pos math.Vec3) bool {
	rel := pos.Sub(c.Target)
	d := rel.Length()
	if d == 0 || !rel.IsFinite() {
		return false
	}
	c.Distance = d
	c.Pitch = gomath.Asin(gomath.Max(-1, gomath.Min(1, rel.Y/d)))
	c.Yaw = gomath.Atan2(rel.X, rel.Z)
	c.pendingYaw, c.pendingPitch = 0, 0
	c.clamp()
	return true
}

// FitToBounds places the camera so the whole box is in view, keeping the
// current yaw and pitch. The target becomes the box center.
func (c *OrbitCamera) FitToBounds(b math.Bounds3) {
	if b.IsEmpty() {
		return
	}
	c.Target = b.Center()
	radius := b.Size().Length() / 2
	c.Distance = radius / gomath.Sin(c.FieldOfView/2)
	if c.Distance == 0 {
		c.Distance = 1
	}
	c.clamp()
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for a viewport of the
// given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float64) math.Mat4 {
	return math.Perspective(c.FieldOfView, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float64) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag queues rotation from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64) {
	c.pendingYaw -= deltaX * c.DragSensitivity
	c.pendingPitch += deltaY * c.DragSensitivity
	if c.Damping <= 0 {
		c.Update()
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float64) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

// Update applies queued rotation. Call it once per frame. With damping the
// rotation eases out over several frames.
func (c *OrbitCamera) Update() {
	f := c.Damping
	if f <= 0 || f > 1 {
		f = 1
	}
	c.Yaw += c.pendingYaw * f
	c.Pitch += c.pendingPitch * f
	c.pendingYaw *= 1 - f
	c.pendingPitch *= 1 - f
	if gomath.Abs(c.pendingYaw) < 1e-9 {
		c.pendingYaw = 0
	}
	if gomath.Abs(c.pendingPitch) < 1e-9 {
		c.pendingPitch = 0
	}
	c.clamp()
}

// Settled reports whether no rotation is pending.
func (c *OrbitCamera) Settled() bool {
	return c.pendingYaw == 0 && c.pendingPitch == 0
}

func (c *OrbitCamera) clamp() {
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
		c.pendingPitch = 0
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
		c.pendingPitch = 0
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
