package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glazegl/glaze/vecmath"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestPerspectiveAspectEntries(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "4:3", width: 800, height: 600},
		{name: "16:9", width: 1920, height: 1080},
		{name: "square", width: 512, height: 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.SetPerspective(60, 1, 0.1, 100)
			c.UpdateAspectRatio(tt.width, tt.height)

			aspect := float32(tt.width) / float32(tt.height)
			f := float32(1 / math.Tan(float64(mgl32.DegToRad(60))/2))

			proj := c.ProjectionMatrix()
			// Column-major: At(row, col). [0][0] = f/aspect, [1][1] = f.
			if got := proj.At(0, 0); !almostEqual(got, f/aspect) {
				t.Errorf("proj[0][0] = %v, want %v", got, f/aspect)
			}
			if got := proj.At(1, 1); !almostEqual(got, f) {
				t.Errorf("proj[1][1] = %v, want %v", got, f)
			}
		})
	}
}

func TestOrthographicIgnoresAspectChanges(t *testing.T) {
	c := New()
	c.SetOrthographic(-2, 2, -1, 1, 0.1, 10)
	before := c.ProjectionMatrix()

	c.UpdateAspectRatio(1920, 1080)

	if c.ProjectionMatrix() != before {
		t.Error("orthographic projection changed on aspect update")
	}
	if got := c.ProjectionMatrix().At(0, 0); !almostEqual(got, 0.5) {
		t.Errorf("ortho proj[0][0] = %v, want 0.5 for bounds [-2,2]", got)
	}
}

func TestUpdateAspectRatioIgnoresDegenerateSizes(t *testing.T) {
	c := New()
	c.SetPerspective(45, 2, 0.1, 100)
	before := c.ProjectionMatrix()

	c.UpdateAspectRatio(0, 600)
	c.UpdateAspectRatio(800, 0)

	if c.ProjectionMatrix() != before {
		t.Error("projection changed for zero-sized framebuffer")
	}
}

func TestViewMatrixTracksPosition(t *testing.T) {
	c := New()
	c.SetPosition(vecmath.Vec3{0, 0, 5})

	view := c.ViewMatrix()
	// Default orientation looks down -Z, so the view transform must map the
	// camera position to the origin.
	eye := view.Mul4x1(vecmath.Vec4{0, 0, 5, 1})
	for i := 0; i < 3; i++ {
		if !almostEqual(eye[i], 0) {
			t.Fatalf("view * position = %v, want origin", eye)
		}
	}
}

func TestFrontDefaultOrientation(t *testing.T) {
	c := New()
	front := c.Front()
	want := vecmath.Vec3{0, 0, -1}
	for i := 0; i < 3; i++ {
		if !almostEqual(front[i], want[i]) {
			t.Fatalf("Front() = %v, want %v", front, want)
		}
	}
}

func TestPitchClamp(t *testing.T) {
	c := New()
	c.SetRotation(0, 200)
	if _, pitch := c.Rotation(); pitch != 89 {
		t.Errorf("pitch = %v, want clamp at 89", pitch)
	}
	c.Rotate(0, -500)
	if _, pitch := c.Rotation(); pitch != -89 {
		t.Errorf("pitch = %v, want clamp at -89", pitch)
	}
}

func TestModeTransitions(t *testing.T) {
	c := New()
	if c.Mode() != None {
		t.Fatalf("new camera mode = %v, want None", c.Mode())
	}
	c.SetPerspective(45, 1.5, 0.1, 100)
	if c.Mode() != Perspective {
		t.Fatalf("mode = %v, want Perspective", c.Mode())
	}
	c.SetOrthographic(-1, 1, -1, 1, 0, 1)
	if c.Mode() != Orthographic {
		t.Fatalf("mode = %v, want Orthographic", c.Mode())
	}
}
