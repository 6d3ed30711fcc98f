package texture

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	// Decoders for the formats Load accepts.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// ImageData holds decoded pixel bytes ready for GPU upload, together with
// the metadata the upload needs. Channels is 3 for tightly packed RGB and 4
// for RGBA.
type ImageData struct {
	pix      []byte
	width    int
	height   int
	channels int
}

// NewImageData wraps raw decoded pixels. The slice is taken over, not
// copied.
func NewImageData(pix []byte, width, height, channels int) (*ImageData, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("unsupported channel count %d (want 3 or 4)", channels)
	}
	if want := width * height * channels; len(pix) != want {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%dx%d", len(pix), want, width, height, channels)
	}
	return &ImageData{pix: pix, width: width, height: height, channels: channels}, nil
}

// FromImage converts any decoded image to 4-channel RGBA pixel data.
func FromImage(img image.Image) *ImageData {
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return &ImageData{
		pix:      rgba.Pix,
		width:    rgba.Rect.Dx(),
		height:   rgba.Rect.Dy(),
		channels: 4,
	}
}

// Decode reads and decodes an image stream (PNG, JPEG, or BMP).
func Decode(r io.Reader) (*ImageData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// Load reads and decodes an image file.
func Load(path string) (*ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Width returns the image width in pixels.
func (d *ImageData) Width() int { return d.width }

// Height returns the image height in pixels.
func (d *ImageData) Height() int { return d.height }

// Channels returns the number of color channels per pixel.
func (d *ImageData) Channels() int { return d.channels }

// Pix returns the pixel bytes, or nil after Dispose.
func (d *ImageData) Pix() []byte { return d.pix }

// Clone returns an independent copy of the pixel data. Use it to keep the
// bytes past a texture upload, since New consumes its argument.
func (d *ImageData) Clone() *ImageData {
	if d.pix == nil {
		return &ImageData{width: d.width, height: d.height, channels: d.channels}
	}
	pix := make([]byte, len(d.pix))
	copy(pix, d.pix)
	return &ImageData{pix: pix, width: d.width, height: d.height, channels: d.channels}
}

// Dispose releases the pixel bytes. Idempotent.
func (d *ImageData) Dispose() { d.pix = nil }

// IsDisposed reports whether the pixel bytes have been released.
func (d *ImageData) IsDisposed() bool { return d.pix == nil }
