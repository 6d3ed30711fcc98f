package window

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

// GLFW accepts per-window callbacks, but the functions below are installed
// as plain package-level functions and find their Window through a
// handle-to-instance registry, populated at Init and erased at Dispose.
// Everything runs on the render thread during the event poll, so the map
// needs no lock.
var registry = make(map[*glfw.Window]*Window)

func register(handle *glfw.Window, w *Window) { registry[handle] = w }

func unregister(handle *glfw.Window) { delete(registry, handle) }

func lookup(handle *glfw.Window) *Window { return registry[handle] }

func onFramebufferSize(handle *glfw.Window, width, height int) {
	w := lookup(handle)
	if w == nil {
		return
	}
	w.bufferWidth = width
	w.bufferHeight = height
	gl.Viewport(0, 0, int32(width), int32(height))
	if w.cam != nil {
		w.cam.UpdateAspectRatio(width, height)
	}
	if w.viewport != nil {
		w.viewport.UpdateViewport(width, height)
	}
}

func onSize(handle *glfw.Window, width, height int) {
	w := lookup(handle)
	if w == nil {
		return
	}
	w.width = width
	w.height = height
}

func onKey(handle *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	w := lookup(handle)
	if w == nil || w.inputHandler == nil {
		return
	}
	w.inputHandler.HandleKey(key, action)
}

func onMouseButton(handle *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	w := lookup(handle)
	if w == nil || w.inputHandler == nil {
		return
	}
	w.inputHandler.HandleMouseButton(button, action)
}

func onCursorPos(handle *glfw.Window, x, y float64) {
	w := lookup(handle)
	if w == nil || w.inputHandler == nil {
		return
	}
	w.inputHandler.HandleCursorPos(x, y)
}
