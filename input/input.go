// Package input tracks keyboard, mouse button, and cursor state for one
// window. State is mutated only by the window's event callbacks during the
// per-frame poll and read by application code between frames, all on the
// render thread, so no locking is involved.
package input

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

// Handler is the per-window registry of input state as of the last polled
// frame.
type Handler struct {
	keys    map[glfw.Key]bool
	buttons map[glfw.MouseButton]bool

	// Keys that transitioned to pressed during the current poll; cleared
	// by NewFrame.
	pressed map[glfw.Key]bool

	cursorX float64
	cursorY float64
}

// New returns an empty Handler ready to be bound to a window with
// (*window.Window).SetInputHandler.
func New() *Handler {
	return &Handler{
		keys:    make(map[glfw.Key]bool),
		buttons: make(map[glfw.MouseButton]bool),
		pressed: make(map[glfw.Key]bool),
	}
}

// IsKeyDown reports whether the key was held as of the last event poll.
func (h *Handler) IsKeyDown(key glfw.Key) bool {
	return h.keys[key]
}

// WasKeyPressed reports whether the key transitioned to pressed during the
// current frame. The edge is cleared at the next poll.
func (h *Handler) WasKeyPressed(key glfw.Key) bool {
	return h.pressed[key]
}

// IsMouseButtonDown reports whether the button was held as of the last
// event poll.
func (h *Handler) IsMouseButtonDown(button glfw.MouseButton) bool {
	return h.buttons[button]
}

// CursorPos returns the last cursor position, in screen coordinates
// relative to the window's top-left corner.
func (h *Handler) CursorPos() (x, y float64) {
	return h.cursorX, h.cursorY
}

// NewFrame clears per-frame edge state. The window calls this at the start
// of each event poll.
func (h *Handler) NewFrame() {
	for k := range h.pressed {
		delete(h.pressed, k)
	}
}

// HandleKey records one key event. Called by the window's key callback;
// exported so tests can feed synthetic events.
func (h *Handler) HandleKey(key glfw.Key, action glfw.Action) {
	switch action {
	case glfw.Press:
		h.keys[key] = true
		h.pressed[key] = true
	case glfw.Release:
		h.keys[key] = false
	}
	// glfw.Repeat leaves the held state as-is.
}

// HandleMouseButton records one mouse button event.
func (h *Handler) HandleMouseButton(button glfw.MouseButton, action glfw.Action) {
	switch action {
	case glfw.Press:
		h.buttons[button] = true
	case glfw.Release:
		h.buttons[button] = false
	}
}

// HandleCursorPos records the cursor position.
func (h *Handler) HandleCursorPos(x, y float64) {
	h.cursorX = x
	h.cursorY = y
}
