package input

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

func TestKeyDownUp(t *testing.T) {
	h := New()

	if h.IsKeyDown(glfw.KeyW) {
		t.Fatal("key down before any event")
	}

	h.HandleKey(glfw.KeyW, glfw.Press)
	if !h.IsKeyDown(glfw.KeyW) {
		t.Error("key not down after press event in the same frame")
	}

	h.HandleKey(glfw.KeyW, glfw.Release)
	if h.IsKeyDown(glfw.KeyW) {
		t.Error("key still down after release event")
	}
}

func TestKeyRepeatKeepsHeldState(t *testing.T) {
	h := New()
	h.HandleKey(glfw.KeySpace, glfw.Press)
	h.HandleKey(glfw.KeySpace, glfw.Repeat)
	if !h.IsKeyDown(glfw.KeySpace) {
		t.Error("repeat event cleared held state")
	}
}

func TestWasKeyPressedEdge(t *testing.T) {
	h := New()

	h.HandleKey(glfw.KeyEscape, glfw.Press)
	if !h.WasKeyPressed(glfw.KeyEscape) {
		t.Error("press edge not visible in the same frame")
	}

	h.NewFrame()
	if h.WasKeyPressed(glfw.KeyEscape) {
		t.Error("press edge survived NewFrame")
	}
	if !h.IsKeyDown(glfw.KeyEscape) {
		t.Error("held state cleared by NewFrame")
	}
}

func TestMouseButton(t *testing.T) {
	h := New()

	h.HandleMouseButton(glfw.MouseButtonLeft, glfw.Press)
	if !h.IsMouseButtonDown(glfw.MouseButtonLeft) {
		t.Error("left button not down after press")
	}
	if h.IsMouseButtonDown(glfw.MouseButtonRight) {
		t.Error("right button down without any event")
	}

	h.HandleMouseButton(glfw.MouseButtonLeft, glfw.Release)
	if h.IsMouseButtonDown(glfw.MouseButtonLeft) {
		t.Error("left button still down after release")
	}
}

func TestCursorPos(t *testing.T) {
	h := New()

	if x, y := h.CursorPos(); x != 0 || y != 0 {
		t.Errorf("initial cursor = (%v, %v), want origin", x, y)
	}

	h.HandleCursorPos(123.5, 456.25)
	if x, y := h.CursorPos(); x != 123.5 || y != 456.25 {
		t.Errorf("cursor = (%v, %v), want (123.5, 456.25)", x, y)
	}
}
