package text

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glazegl/glaze/shader"
	"github.com/glazegl/glaze/vecmath"
	"github.com/glazegl/glaze/window"
)

// Renderer draws text as glyph quads sampled from the atlas texture.
// Coordinates are pixels with the origin at the window's bottom-left; y is
// the baseline. The renderer registers itself as the window's viewport
// listener so its projection tracks framebuffer resizes.
type Renderer struct {
	atlas   *Atlas
	atlasID uint32
	program *shader.Program
	vao     uint32
	vbo     uint32

	projection vecmath.Mat4

	// Scratch vertex buffer reused across Draw calls.
	verts []float32
}

// floats per vertex: x, y, u, v
const vertexStride = 4

// New bakes the face into an atlas, uploads it, and wires the renderer to
// the window's viewport.
//
// Requires the window to be initialized and its context current.
func New(win *window.Window, atlas *Atlas) (*Renderer, error) {
	if !win.IsInitialized() {
		return nil, fmt.Errorf("text: window not initialized")
	}

	r := &Renderer{atlas: atlas}

	program, err := shader.NewProgram(shader.TextVertexSource, shader.TextFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to build text program: %w", err)
	}
	r.program = program

	img := atlas.Image()
	gl.GenTextures(1, &r.atlasID)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, vertexStride*4, gl.PtrOffset(2*4))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.UpdateViewport(win.BufferWidth(), win.BufferHeight())
	win.SetViewportListener(r)
	return r, nil
}

// NewDefault builds a renderer around the built-in Go Regular face.
func NewDefault(win *window.Window, pixelHeight float64) (*Renderer, error) {
	face, err := DefaultFace(pixelHeight)
	if err != nil {
		return nil, err
	}
	atlas, err := BuildAtlas(face)
	if err != nil {
		return nil, err
	}
	return New(win, atlas)
}

// UpdateViewport rebuilds the pixel-space projection. The window calls
// this from its framebuffer-size callback.
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.projection = mgl32.Ortho2D(0, float32(width), 0, float32(height))
}

// Measure returns the pixel size of one line of text at the given scale.
func (r *Renderer) Measure(s string, scale float32) (w, h float32) {
	return r.atlas.Measure(s, scale)
}

// Draw renders one line of text with its baseline at (x, y), in pixels
// from the window's bottom-left corner.
func (r *Renderer) Draw(s string, x, y, scale float32, color vecmath.Vec4) {
	r.verts = r.verts[:0]
	penX := x

	for _, ch := range s {
		g, ok := r.atlas.Glyph(ch)
		if !ok {
			continue
		}
		if g.Width > 0 && g.Height > 0 {
			x0 := penX + g.BearingX*scale
			y1 := y + g.BearingY*scale
			x1 := x0 + g.Width*scale
			y0 := y1 - g.Height*scale

			// Two triangles; atlas V runs top-down, screen Y bottom-up.
			r.verts = append(r.verts,
				x0, y1, g.U0, g.V0,
				x0, y0, g.U0, g.V1,
				x1, y0, g.U1, g.V1,

				x0, y1, g.U0, g.V0,
				x1, y0, g.U1, g.V1,
				x1, y1, g.U1, g.V0,
			)
		}
		penX += g.Advance * scale
	}
	if len(r.verts) == 0 {
		return
	}

	depthWasEnabled := gl.IsEnabled(gl.DEPTH_TEST)
	if depthWasEnabled {
		gl.Disable(gl.DEPTH_TEST)
	}

	r.program.Use()
	r.program.SetMat4("u_projection", r.projection)
	r.program.SetVec4("u_color", color)
	r.program.SetInt("u_atlas", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasID)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.verts)*4, gl.Ptr(r.verts), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.verts)/vertexStride))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if depthWasEnabled {
		gl.Enable(gl.DEPTH_TEST)
	}
}

// Dispose releases the atlas texture, vertex buffers, and program.
// Idempotent.
func (r *Renderer) Dispose() {
	if r.atlasID != 0 {
		gl.DeleteTextures(1, &r.atlasID)
		r.atlasID = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != nil {
		r.program.Dispose()
		r.program = nil
	}
}
