// The glaze demo: a spinning textured quad with a text overlay,
// optionally recorded to video.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glazegl/glaze/camera"
	"github.com/glazegl/glaze/capture"
	"github.com/glazegl/glaze/errorhandler"
	"github.com/glazegl/glaze/input"
	"github.com/glazegl/glaze/options"
	"github.com/glazegl/glaze/shader"
	"github.com/glazegl/glaze/text"
	"github.com/glazegl/glaze/texture"
	"github.com/glazegl/glaze/vecmath"
	"github.com/glazegl/glaze/window"
)

func init() {
	runtime.LockOSThread()
}

// x, y, z, u, v
var quadVertices = []float32{
	-1, 1, 0, 0, 1,
	-1, -1, 0, 0, 0,
	1, -1, 0, 1, 0,

	-1, 1, 0, 0, 1,
	1, -1, 0, 1, 0,
	1, 1, 0, 1, 1,
}

func makeQuad() (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// checkerboard generates the fallback texture used when no image file is
// given.
func checkerboard() *texture.ImageData {
	const size, cell = 256, 32
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			off := (y*size + x) * 4
			var c byte = 40
			if (x/cell+y/cell)%2 == 0 {
				c = 220
			}
			pix[off], pix[off+1], pix[off+2], pix[off+3] = c, c, c, 255
		}
	}
	img, err := texture.NewImageData(pix, size, size, 4)
	if err != nil {
		log.Fatalf("Failed to build checkerboard: %v", err)
	}
	return img
}

func demoImage(path string) *texture.ImageData {
	if path == "" {
		return checkerboard()
	}
	img, err := texture.Load(path)
	if err != nil {
		log.Fatalf("Failed to load texture: %v", err)
	}
	return img
}

func moveCamera(in *input.Handler, cam *camera.Camera, dt float32) {
	const speed = 2.5
	front := cam.Front()
	right := front.Cross(vecmath.Vec3{0, 1, 0}).Normalize()

	step := speed * dt
	if in.IsKeyDown(glfw.KeyW) {
		cam.Move(front.Mul(step))
	}
	if in.IsKeyDown(glfw.KeyS) {
		cam.Move(front.Mul(-step))
	}
	if in.IsKeyDown(glfw.KeyA) {
		cam.Move(right.Mul(-step))
	}
	if in.IsKeyDown(glfw.KeyD) {
		cam.Move(right.Mul(step))
	}
}

func main() {
	opts := options.Bind(flag.CommandLine)
	flag.Parse()

	handler := errorhandler.New(true, *opts.AbortOnErrors)
	if err := window.Init(handler); err != nil {
		log.Fatalf("Failed to initialize backend: %v", err)
	}
	defer window.Terminate()

	win := window.New(*opts.Title, *opts.Width, *opts.Height)
	if err := win.Init(); err != nil {
		log.Fatalf("Failed to initialize window: %v", err)
	}
	defer win.Dispose()
	win.SetBackgroundColor(vecmath.RGB(0.08, 0.09, 0.12))

	in := input.New()
	win.SetInputHandler(in)

	cam := camera.New()
	cam.SetPerspective(60, float32(win.BufferWidth())/float32(win.BufferHeight()), 0.1, 100)
	cam.SetPosition(vecmath.Vec3{0, 0, 3})
	win.SetCamera(cam)

	if *opts.Fullscreen {
		win.SetFullscreen()
	}

	tex, err := texture.New(demoImage(*opts.TexturePath))
	if err != nil {
		log.Fatalf("Failed to upload texture: %v", err)
	}
	defer tex.Dispose()

	program, err := shader.NewProgram(shader.SceneVertexSource, shader.SceneFragmentSource)
	if err != nil {
		log.Fatalf("Failed to build scene program: %v", err)
	}
	defer program.Dispose()

	vao, vbo := makeQuad()
	defer gl.DeleteVertexArrays(1, &vao)
	defer gl.DeleteBuffers(1, &vbo)

	txt, err := text.NewDefault(win, 20)
	if err != nil {
		log.Fatalf("Failed to create text renderer: %v", err)
	}
	defer txt.Dispose()

	var rec *capture.Recorder
	if *opts.Record {
		rec, err = capture.NewRecorder(capture.Options{
			Width:      win.BufferWidth(),
			Height:     win.BufferHeight(),
			FPS:        *opts.FPS,
			OutputFile: *opts.OutputFile,
			FFmpegPath: *opts.FFmpegPath,
		})
		if err != nil {
			log.Fatalf("Failed to start recorder: %v", err)
		}
	}

	start := glfw.GetTime()
	last := start
	for win.IsOpen() {
		win.StartRender()

		now := glfw.GetTime()
		dt := now - last
		last = now

		if in.WasKeyPressed(glfw.KeyEscape) {
			win.Close()
		}
		if in.WasKeyPressed(glfw.KeyF) {
			win.ToggleFullscreen()
		}
		moveCamera(in, cam, float32(dt))

		program.Use()
		program.SetMat4("u_model", mgl32.HomogRotate3DY(float32(now)))
		program.SetMat4("u_view", cam.ViewMatrix())
		program.SetMat4("u_projection", cam.ProjectionMatrix())
		program.SetInt("u_texture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		tex.Bind()
		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
		gl.BindVertexArray(0)

		overlay := fmt.Sprintf("%s  %.1f ms", *opts.Title, dt*1000)
		txt.Draw(overlay, 10, 14, 1, vecmath.Vec4{1, 1, 1, 1})

		win.EndRender()
		handler.CheckGL("frame")

		if rec != nil {
			if err := rec.CaptureFrame(); err != nil {
				log.Printf("Capture failed: %v", err)
				win.Close()
			}
			if now-start >= *opts.Duration {
				win.Close()
			}
		}
	}

	if rec != nil {
		if err := rec.Stop(); err != nil {
			log.Printf("Recording failed: %v", err)
		}
	}
}
