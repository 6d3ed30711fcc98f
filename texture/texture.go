// Package texture uploads decoded image data as 2D OpenGL textures.
//
// Ownership is a single transfer: New consumes its ImageData, disposing the
// CPU-side bytes once the pixels live on the GPU. Callers that still need
// the bytes pass img.Clone().
package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture owns one GPU texture handle. The zero handle is the
// unbound/disposed sentinel; no method besides Dispose and IsDisposed is
// valid once the handle is released.
type Texture struct {
	id uint32
}

// glFormat maps a channel count to the matching GL pixel format.
func glFormat(channels int) uint32 {
	if channels == 4 {
		return gl.RGBA
	}
	return gl.RGB
}

// New uploads the image as a 2D texture with mirrored-repeat wrapping,
// nearest minification / linear magnification, and generated mipmaps. The
// ImageData is consumed: its pixel bytes are disposed after the upload.
//
// Requires a current GL context.
func New(img *ImageData) (*Texture, error) {
	if img == nil || img.IsDisposed() {
		return nil, fmt.Errorf("texture: image data is nil or disposed")
	}

	format := glFormat(img.Channels())
	if img.Channels() == 3 {
		// Tightly packed RGB rows are not 4-byte aligned.
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		defer gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	}

	t := &Texture{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.MIRRORED_REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.MIRRORED_REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		int32(format),
		int32(img.Width()),
		int32(img.Height()),
		0,
		format,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix()),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	img.Dispose()
	return t, nil
}

// Bind makes the texture current on GL_TEXTURE_2D.
func (t *Texture) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// ID returns the GPU handle, zero if disposed.
func (t *Texture) ID() uint32 { return t.id }

// IsDisposed reports whether the GPU handle has been released.
func (t *Texture) IsDisposed() bool { return t.id == 0 }

// Dispose releases the GPU handle and resets it to the sentinel.
// Idempotent.
func (t *Texture) Dispose() {
	if t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}
