// Package options holds the demo binary's flag-backed configuration.
package options

import "flag"

// DemoOptions mirrors the demo's command-line flags. Fields are pointers
// so they can be bound directly to the flag package.
type DemoOptions struct {
	Title      *string
	Width      *int
	Height     *int
	Fullscreen *bool

	TexturePath *string

	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFmpegPath *string

	AbortOnErrors *bool
}

// Bind registers the demo flags on the given FlagSet and returns the
// options struct they populate.
func Bind(fs *flag.FlagSet) *DemoOptions {
	return &DemoOptions{
		Title:      fs.String("title", "Glaze Demo", "window title"),
		Width:      fs.Int("width", 800, "window width in pixels"),
		Height:     fs.Int("height", 600, "window height in pixels"),
		Fullscreen: fs.Bool("fullscreen", false, "start fullscreen"),

		TexturePath: fs.String("texture", "", "image file for the demo quad (PNG, JPEG, or BMP); a checkerboard is generated if empty"),

		Record:     fs.Bool("record", false, "record the run to a video file"),
		Duration:   fs.Float64("duration", 10.0, "seconds to record before exiting"),
		FPS:        fs.Int("fps", 60, "recording frame rate"),
		OutputFile: fs.String("output", "demo.mp4", "recording output file"),
		FFmpegPath: fs.String("ffmpeg", "", "path to the ffmpeg executable"),

		AbortOnErrors: fs.Bool("abort-on-errors", false, "terminate on the first backend error"),
	}
}
