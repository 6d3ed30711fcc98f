// Package capture reads rendered frames back from the default framebuffer,
// either as one-shot PNG screenshots or as a raw RGBA stream piped to
// ffmpeg for video recording.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// numPBOs is the readback ring depth: ReadPixels targets one buffer while
// the frame from numPBOs-1 calls ago is mapped and drained.
const numPBOs = 3

// Options configures a Recorder.
type Options struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFmpegPath string // optional explicit ffmpeg binary
}

func (o *Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid recording size %dx%d", o.Width, o.Height)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", o.FPS)
	}
	if o.OutputFile == "" {
		return fmt.Errorf("no output file")
	}
	return nil
}

// Recorder streams the framebuffer to an ffmpeg process as rawvideo frames.
// Readback goes through a ring of pixel-pack buffers so the GPU transfer of
// one frame overlaps the drain of an earlier one.
type Recorder struct {
	opts      Options
	frameSize int

	pbos     []uint32
	index    int
	captured int

	pipeWriter *io.PipeWriter
	errc       chan error
}

// NewRecorder allocates the readback ring and starts the ffmpeg process.
//
// Requires a current GL context.
func NewRecorder(opts Options) (*Recorder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	r := &Recorder{
		opts:      opts,
		frameSize: opts.Width * opts.Height * 4,
		pbos:      make([]uint32, numPBOs),
		errc:      make(chan error, 1),
	}

	gl.GenBuffers(numPBOs, &r.pbos[0])
	for _, pbo := range r.pbos {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, pbo)
		gl.BufferData(gl.PIXEL_PACK_BUFFER, r.frameSize, nil, gl.STREAM_READ)
	}
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)

	inputArgs := ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": opts.FPS,
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
		"r":       opts.FPS,
		// GL reads rows bottom-up.
		"vf": "vflip",
	}

	pipeReader, pipeWriter := io.Pipe()
	r.pipeWriter = pipeWriter

	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFmpegPath)
	}

	go func() {
		r.errc <- cmd.Run()
	}()

	log.Printf("recording %dx%d@%d to %s", opts.Width, opts.Height, opts.FPS, opts.OutputFile)
	return r, nil
}

// CaptureFrame queues a readback of the current back buffer and drains the
// oldest completed one into the encoder. Call it after EndRender, before
// the next StartRender.
func (r *Recorder) CaptureFrame() error {
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, r.pbos[r.index])
	gl.ReadPixels(0, 0, int32(r.opts.Width), int32(r.opts.Height), gl.RGBA, gl.UNSIGNED_BYTE, nil)

	r.index = (r.index + 1) % numPBOs
	r.captured++

	// Nothing to drain until the ring has wrapped once.
	if r.captured < numPBOs {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		return nil
	}

	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, r.pbos[r.index])
	ptr := gl.MapBuffer(gl.PIXEL_PACK_BUFFER, gl.READ_ONLY)
	if ptr == nil {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		return fmt.Errorf("failed to map readback buffer")
	}
	pixels := unsafe.Slice((*byte)(ptr), r.frameSize)
	_, err := r.pipeWriter.Write(pixels)
	gl.UnmapBuffer(gl.PIXEL_PACK_BUFFER)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	if err != nil {
		return fmt.Errorf("failed to feed encoder: %w", err)
	}
	return nil
}

// Stop closes the stream, waits for ffmpeg to finish, and releases the
// readback ring.
func (r *Recorder) Stop() error {
	r.pipeWriter.Close()
	err := <-r.errc

	if r.pbos != nil {
		gl.DeleteBuffers(numPBOs, &r.pbos[0])
		r.pbos = nil
	}
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	log.Printf("recording finished: %s", r.opts.OutputFile)
	return nil
}

// Screenshot reads the framebuffer once and writes it as a PNG.
//
// Requires a current GL context.
func Screenshot(path string, width, height int) error {
	pix := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	img := &image.RGBA{
		Pix:    flipRows(pix, width, height),
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// flipRows reverses the row order of a tightly packed RGBA buffer, turning
// GL's bottom-up readback into a top-down image.
func flipRows(pix []byte, width, height int) []byte {
	rowSize := width * 4
	flipped := make([]byte, len(pix))
	for y := 0; y < height; y++ {
		src := pix[(height-1-y)*rowSize : (height-y)*rowSize]
		copy(flipped[y*rowSize:], src)
	}
	return flipped
}
