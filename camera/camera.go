// Package camera owns the view and projection matrices for a window.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glazegl/glaze/vecmath"
)

func cos(v float32) float32 { return float32(math.Cos(float64(v))) }
func sin(v float32) float32 { return float32(math.Sin(float64(v))) }

// Projection selects how the projection matrix is built.
type Projection int

const (
	// None leaves the projection as identity until SetPerspective or
	// SetOrthographic is called.
	None Projection = iota
	Perspective
	Orthographic
)

// Camera holds a caller-controlled view transform and a projection matrix
// that tracks the window's aspect ratio. Bind it to a window with
// (*window.Window).SetCamera and the projection follows resizes.
type Camera struct {
	position vecmath.Vec3
	up       vecmath.Vec3
	yaw      float32 // degrees, -90 looks down -Z
	pitch    float32 // degrees, clamped to (-90, 90)

	mode       Projection
	projection vecmath.Mat4
	aspect     float32

	// Perspective parameters, kept for recomputation on resize.
	fovDeg float32
	near   float32
	far    float32
}

// New returns a camera at the origin looking down -Z with an identity
// projection.
func New() *Camera {
	return &Camera{
		up:         vecmath.Vec3{0, 1, 0},
		yaw:        -90,
		projection: mgl32.Ident4(),
		aspect:     1,
	}
}

// SetPerspective switches to a perspective projection with the given
// vertical field of view in degrees and near/far planes.
func (c *Camera) SetPerspective(fovDeg, aspect, near, far float32) {
	c.mode = Perspective
	c.fovDeg = fovDeg
	c.aspect = aspect
	c.near = near
	c.far = far
	c.projection = mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far)
}

// SetOrthographic switches to an orthographic projection over the given
// bounds. Orthographic projections do not track aspect-ratio changes.
func (c *Camera) SetOrthographic(left, right, bottom, top, near, far float32) {
	c.mode = Orthographic
	c.projection = mgl32.Ortho(left, right, bottom, top, near, far)
}

// UpdateAspectRatio recomputes the projection for a new framebuffer size.
// Only perspective projections depend on aspect; orthographic and unset
// projections are left alone. The window calls this from its resize
// callback.
func (c *Camera) UpdateAspectRatio(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
	if c.mode == Perspective {
		c.projection = mgl32.Perspective(mgl32.DegToRad(c.fovDeg), c.aspect, c.near, c.far)
	}
}

// ProjectionMatrix returns the current projection matrix.
func (c *Camera) ProjectionMatrix() vecmath.Mat4 { return c.projection }

// Mode returns the current projection mode.
func (c *Camera) Mode() Projection { return c.mode }

// AspectRatio returns the aspect ratio last supplied via SetPerspective or
// UpdateAspectRatio.
func (c *Camera) AspectRatio() float32 { return c.aspect }

// ViewMatrix recomputes the view transform from the current position and
// orientation.
func (c *Camera) ViewMatrix() vecmath.Mat4 {
	front := c.Front()
	return mgl32.LookAtV(c.position, c.position.Add(front), c.up)
}

// Front returns the unit vector the camera is facing.
func (c *Camera) Front() vecmath.Vec3 {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	front := vecmath.Vec3{
		cos(yaw) * cos(pitch),
		sin(pitch),
		sin(yaw) * cos(pitch),
	}
	return front.Normalize()
}

// Position returns the camera position.
func (c *Camera) Position() vecmath.Vec3 { return c.position }

// SetPosition places the camera.
func (c *Camera) SetPosition(p vecmath.Vec3) { c.position = p }

// Move offsets the camera position.
func (c *Camera) Move(delta vecmath.Vec3) { c.position = c.position.Add(delta) }

// Rotation returns the yaw and pitch, in degrees.
func (c *Camera) Rotation() (yaw, pitch float32) { return c.yaw, c.pitch }

// SetRotation sets yaw and pitch in degrees. Pitch is clamped short of the
// poles so the view basis never degenerates.
func (c *Camera) SetRotation(yaw, pitch float32) {
	const maxPitch = 89.0
	if pitch > maxPitch {
		pitch = maxPitch
	} else if pitch < -maxPitch {
		pitch = -maxPitch
	}
	c.yaw = yaw
	c.pitch = pitch
}

// Rotate offsets yaw and pitch in degrees, with the same pitch clamp as
// SetRotation.
func (c *Camera) Rotate(dyaw, dpitch float32) {
	c.SetRotation(c.yaw+dyaw, c.pitch+dpitch)
}
