// Package errorhandler is the process-wide sink for backend errors.
//
// GLFW and OpenGL report failures as (code, message) pairs rather than Go
// errors; everything funnels through a Handler, which logs and/or aborts
// per flags set at construction. This is a report-and-optionally-terminate
// model for a demo harness, not a recovery mechanism.
package errorhandler

import (
	"log"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Handler receives (code, message) pairs from the windowing and graphics
// backends. Zero value neither logs nor aborts.
type Handler struct {
	logErrors   bool
	abortErrors bool

	// exit is swapped out in tests.
	exit func(int)
}

// New returns a Handler with the two policy axes fixed: whether reported
// errors are logged to the console, and whether the first report terminates
// the process.
func New(logErrors, abortOnErrors bool) *Handler {
	return &Handler{
		logErrors:   logErrors,
		abortErrors: abortOnErrors,
		exit:        os.Exit,
	}
}

// Report delivers one backend error to the sink.
func (h *Handler) Report(code int, msg string) {
	if h == nil {
		return
	}
	if h.logErrors {
		log.Printf("backend error 0x%x: %s", code, msg)
	}
	if h.abortErrors {
		h.exit(1)
	}
}

// LogsErrors reports whether the console-logging axis is enabled.
func (h *Handler) LogsErrors() bool { return h != nil && h.logErrors }

// AbortsOnErrors reports whether the abort axis is enabled.
func (h *Handler) AbortsOnErrors() bool { return h != nil && h.abortErrors }

var defaultHandler = New(true, false)

// Default returns the process-wide handler used when no explicit handler is
// bound. It logs and does not abort.
func Default() *Handler { return defaultHandler }

// SetDefault replaces the process-wide handler. A nil handler silences
// reporting entirely.
func SetDefault(h *Handler) { defaultHandler = h }

// Report delivers an error to the process-wide handler.
func Report(code int, msg string) { defaultHandler.Report(code, msg) }

// CheckGL drains the GL error queue into the handler, tagging each report
// with where the check happened. OpenGL 4.1 has no debug callback, so errors
// have to be polled. Returns the number of errors seen.
//
// Must be called from the render thread with a current context.
func (h *Handler) CheckGL(where string) int {
	n := 0
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return n
		}
		n++
		h.Report(int(code), where+": "+glErrorString(code))
	}
}

func glErrorString(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return "unknown GL error"
	}
}
