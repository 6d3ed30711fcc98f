// Package vecmath provides the vector and matrix value types used by the
// camera and rendering calls. The types alias mgl32 so the full mathgl API
// stays available on them.
package vecmath

import "github.com/go-gl/mathgl/mgl32"

type (
	Vec2 = mgl32.Vec2
	Vec3 = mgl32.Vec3
	Vec4 = mgl32.Vec4
	Mat3 = mgl32.Mat3
	Mat4 = mgl32.Mat4
)

// RGB builds a color vector, clamping each channel to [0, 1].
func RGB(r, g, b float32) Vec3 {
	return Vec3{clamp01(r), clamp01(g), clamp01(b)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 { return mgl32.DegToRad(deg) }

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 { return mgl32.RadToDeg(rad) }

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 { return mgl32.Ident4() }
