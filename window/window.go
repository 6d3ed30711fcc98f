// Package window owns the native GLFW window and GL context and drives the
// per-frame loop: clear, poll events, draw, swap buffers.
//
// A window must be created and initialized before anything else touches
// OpenGL. Init the backend first with window.Init, then create and Init a
// Window; every GL call in the other packages assumes the context this
// sets up is current.
package window

import (
	"errors"
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/glazegl/glaze/camera"
	"github.com/glazegl/glaze/errorhandler"
	"github.com/glazegl/glaze/input"
	"github.com/glazegl/glaze/vecmath"
)

// Defaults used by NewDefault.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultTitle  = "Glaze Window"
)

var backendReady bool

// Init locks the calling goroutine to its OS thread and initializes GLFW.
// Must be called from the main goroutine before any Window is initialized.
// Failures are reported to the handler and returned.
func Init(h *errorhandler.Handler) error {
	if h != nil {
		errorhandler.SetDefault(h)
	}
	if backendReady {
		return nil
	}
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		report(err, "failed to initialize GLFW")
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	backendReady = true
	log.Printf("GLFW initialized")
	return nil
}

// Terminate shuts the backend down. All windows must be disposed first.
func Terminate() {
	if !backendReady {
		return
	}
	glfw.Terminate()
	backendReady = false
	log.Printf("GLFW terminated")
}

// report funnels a GLFW error into the process-wide sink, preserving the
// native error code when one is attached.
func report(err error, msg string) {
	code := 0
	var glfwErr *glfw.Error
	if errors.As(err, &glfwErr) {
		code = int(glfwErr.Code)
	}
	errorhandler.Report(code, fmt.Sprintf("%s: %v", msg, err))
}

// ViewportListener is notified when the window's framebuffer size changes.
// The text renderer implements it to keep its projection in step.
type ViewportListener interface {
	UpdateViewport(width, height int)
}

type geometry struct {
	x, y          int
	width, height int
}

// Window wraps one native window and its GL context. It exclusively owns
// the handle; the input handler, camera, and viewport listener are
// back-references set by the caller, not owned.
type Window struct {
	handle *glfw.Window

	title        string
	width        int
	height       int
	bufferWidth  int
	bufferHeight int
	background   vecmath.Vec3

	fullscreen  bool
	initialized bool
	disposed    bool
	closed      bool

	// Windowed geometry saved on entering fullscreen, restored on exit.
	windowed geometry

	inputHandler *input.Handler
	cam          *camera.Camera
	viewport     ViewportListener
}

// New returns an uninitialized window with the given title and logical
// size. Nothing touches GLFW or GL until Init.
func New(title string, width, height int) *Window {
	return &Window{
		title:  title,
		width:  width,
		height: height,
	}
}

// NewDefault returns an uninitialized 800x600 window with the default
// title.
func NewDefault() *Window {
	return New(DefaultTitle, DefaultWidth, DefaultHeight)
}

// Init creates the native window and GL context. It succeeds at most once
// per Window; failures are reported to the error handler and returned.
func (w *Window) Init() error {
	if w.initialized {
		return fmt.Errorf("window %q already initialized", w.title)
	}
	if w.disposed {
		return fmt.Errorf("window %q has been disposed", w.title)
	}
	if !backendReady {
		err := fmt.Errorf("backend not initialized; call window.Init first")
		errorhandler.Report(0, err.Error())
		return err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		report(err, "failed to create window")
		return fmt.Errorf("failed to create window: %w", err)
	}
	w.handle = handle

	handle.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		handle.Destroy()
		w.handle = nil
		errorhandler.Report(0, fmt.Sprintf("failed to initialize OpenGL: %v", err))
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	glfw.SwapInterval(1)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	w.bufferWidth, w.bufferHeight = handle.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w.bufferWidth), int32(w.bufferHeight))

	register(handle, w)
	handle.SetFramebufferSizeCallback(onFramebufferSize)
	handle.SetSizeCallback(onSize)
	handle.SetKeyCallback(onKey)
	handle.SetMouseButtonCallback(onMouseButton)
	handle.SetCursorPosCallback(onCursorPos)

	w.initialized = true
	log.Printf("window %q initialized with %s", w.title, gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

// StartRender prepares the frame: clears the color and depth buffers to
// the background color and polls input events. All callback dispatch
// happens inside the poll.
func (w *Window) StartRender() {
	if w.inputHandler != nil {
		w.inputHandler.NewFrame()
	}
	gl.ClearColor(w.background[0], w.background[1], w.background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	glfw.PollEvents()
}

// EndRender finishes the frame by swapping buffers.
func (w *Window) EndRender() {
	w.handle.SwapBuffers()
}

// Close marks the window for closure; IsOpen reports false from here on.
func (w *Window) Close() {
	w.closed = true
	if w.handle != nil {
		w.handle.SetShouldClose(true)
	}
}

// IsOpen reports whether the window is initialized and not flagged for
// closure, by Close or by the native close button.
func (w *Window) IsOpen() bool {
	if !w.initialized || w.closed || w.handle == nil {
		return false
	}
	return !w.handle.ShouldClose()
}

// SetFullscreen moves the window to the primary monitor, saving the
// current windowed geometry for restore.
func (w *Window) SetFullscreen() {
	if w.handle == nil || w.fullscreen {
		return
	}
	x, y := w.handle.GetPos()
	w.windowed = geometry{x: x, y: y, width: w.width, height: w.height}

	monitor := glfw.GetPrimaryMonitor()
	mode := monitor.GetVideoMode()
	w.handle.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	w.fullscreen = true
}

// SetWindowed restores the geometry saved when fullscreen was entered.
func (w *Window) SetWindowed() {
	if w.handle == nil || !w.fullscreen {
		return
	}
	g := w.restoreGeometry()
	w.handle.SetMonitor(nil, g.x, g.y, g.width, g.height, glfw.DontCare)
	w.fullscreen = false
}

// ToggleFullscreen flips between fullscreen and windowed mode. Toggling
// twice lands back on the original windowed geometry.
func (w *Window) ToggleFullscreen() {
	if w.fullscreen {
		w.SetWindowed()
	} else {
		w.SetFullscreen()
	}
}

// restoreGeometry picks the geometry to apply when leaving fullscreen,
// falling back to the logical size if nothing was saved.
func (w *Window) restoreGeometry() geometry {
	if w.windowed.width <= 0 || w.windowed.height <= 0 {
		return geometry{width: w.width, height: w.height}
	}
	return w.windowed
}

// Handle exposes the native GLFW window for advanced use.
func (w *Window) Handle() *glfw.Window { return w.handle }

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// Width returns the logical window width in screen coordinates.
func (w *Window) Width() int { return w.width }

// Height returns the logical window height in screen coordinates.
func (w *Window) Height() int { return w.height }

// BufferWidth returns the framebuffer width in pixels, which differs from
// Width on high-DPI displays.
func (w *Window) BufferWidth() int { return w.bufferWidth }

// BufferHeight returns the framebuffer height in pixels.
func (w *Window) BufferHeight() int { return w.bufferHeight }

// IsInitialized reports whether Init has succeeded.
func (w *Window) IsInitialized() bool { return w.initialized }

// IsFullscreen reports whether the window currently occupies a monitor.
func (w *Window) IsFullscreen() bool { return w.fullscreen }

// SetBackgroundColor sets the color the window clears to each frame,
// channels in [0, 1].
func (w *Window) SetBackgroundColor(rgb vecmath.Vec3) { w.background = rgb }

// BackgroundColor returns the current clear color.
func (w *Window) BackgroundColor() vecmath.Vec3 { return w.background }

// SetInputHandler binds the handler that receives this window's key,
// mouse button, and cursor events.
func (w *Window) SetInputHandler(h *input.Handler) { w.inputHandler = h }

// InputHandler returns the bound input handler, nil if none.
func (w *Window) InputHandler() *input.Handler { return w.inputHandler }

// SetCamera binds the camera whose projection follows this window's
// framebuffer size.
func (w *Window) SetCamera(c *camera.Camera) {
	w.cam = c
	if c != nil && w.initialized {
		c.UpdateAspectRatio(w.bufferWidth, w.bufferHeight)
	}
}

// Camera returns the bound camera, nil if none.
func (w *Window) Camera() *camera.Camera { return w.cam }

// SetViewportListener binds a listener notified on framebuffer resizes.
func (w *Window) SetViewportListener(l ViewportListener) {
	w.viewport = l
	if l != nil && w.initialized {
		l.UpdateViewport(w.bufferWidth, w.bufferHeight)
	}
}

// Dispose destroys the native window and nulls the handle. Idempotent.
func (w *Window) Dispose() {
	if w.handle != nil {
		unregister(w.handle)
		w.handle.Destroy()
		w.handle = nil
	}
	w.initialized = false
	w.disposed = true
}
