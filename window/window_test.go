package window

import (
	"testing"

	"github.com/glazegl/glaze/camera"
	"github.com/glazegl/glaze/input"
	"github.com/glazegl/glaze/vecmath"
)

// These tests cover the window's state bookkeeping, which does not need a
// display. Context creation itself is exercised by the demo binary.

func TestNewIsUninitialized(t *testing.T) {
	w := New("test", 800, 600)

	if w.IsInitialized() {
		t.Error("IsInitialized true before Init")
	}
	if w.IsOpen() {
		t.Error("IsOpen true before Init")
	}
	if w.Title() != "test" || w.Width() != 800 || w.Height() != 600 {
		t.Errorf("got %q %dx%d, want test 800x600", w.Title(), w.Width(), w.Height())
	}
	if w.Handle() != nil {
		t.Error("handle non-nil before Init")
	}
}

func TestNewDefault(t *testing.T) {
	w := NewDefault()
	if w.Width() != DefaultWidth || w.Height() != DefaultHeight {
		t.Errorf("default size = %dx%d, want %dx%d", w.Width(), w.Height(), DefaultWidth, DefaultHeight)
	}
	if w.Title() != DefaultTitle {
		t.Errorf("default title = %q", w.Title())
	}
}

func TestInitWithoutBackendFails(t *testing.T) {
	w := New("test", 100, 100)
	if err := w.Init(); err == nil {
		t.Fatal("Init succeeded without backend initialization")
	}
	if w.IsInitialized() {
		t.Error("IsInitialized true after failed Init")
	}
}

func TestCloseMarksClosed(t *testing.T) {
	w := New("test", 100, 100)
	w.Close()
	if w.IsOpen() {
		t.Error("IsOpen true after Close")
	}
}

func TestDisposeIdempotentBeforeInit(t *testing.T) {
	w := New("test", 100, 100)
	w.Dispose()
	w.Dispose()
	if w.Handle() != nil {
		t.Error("handle non-nil after Dispose")
	}
	if err := w.Init(); err == nil {
		t.Error("Init succeeded on a disposed window")
	}
}

func TestBackgroundColor(t *testing.T) {
	w := NewDefault()
	want := vecmath.RGB(0.1, 0.2, 0.3)
	w.SetBackgroundColor(want)
	if got := w.BackgroundColor(); got != want {
		t.Errorf("background = %v, want %v", got, want)
	}
}

func TestAssociations(t *testing.T) {
	w := NewDefault()
	h := input.New()
	c := camera.New()

	w.SetInputHandler(h)
	w.SetCamera(c)

	if w.InputHandler() != h {
		t.Error("input handler association lost")
	}
	if w.Camera() != c {
		t.Error("camera association lost")
	}
}

func TestRestoreGeometryFallsBackToLogicalSize(t *testing.T) {
	w := New("test", 800, 600)
	g := w.restoreGeometry()
	if g.width != 800 || g.height != 600 {
		t.Errorf("fallback geometry = %dx%d, want 800x600", g.width, g.height)
	}
}

func TestRestoreGeometryAfterFullscreenRoundtrip(t *testing.T) {
	// Simulate the bookkeeping SetFullscreen performs, then check that the
	// windowed geometry survives for the restore.
	w := New("test", 1024, 768)
	w.windowed = geometry{x: 40, y: 60, width: 1024, height: 768}
	w.fullscreen = true

	g := w.restoreGeometry()
	if g != (geometry{x: 40, y: 60, width: 1024, height: 768}) {
		t.Errorf("restore geometry = %+v", g)
	}
}

func TestRegistry(t *testing.T) {
	w := NewDefault()
	register(nil, w)
	defer unregister(nil)

	if lookup(nil) != w {
		t.Error("registry lookup failed after register")
	}
	unregister(nil)
	if lookup(nil) != nil {
		t.Error("registry lookup found window after unregister")
	}
}
