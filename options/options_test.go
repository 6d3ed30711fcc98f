package options

import (
	"flag"
	"testing"
)

func TestBindDefaults(t *testing.T) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	opts := Bind(fs)

	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *opts.Width != 800 || *opts.Height != 600 {
		t.Errorf("default size = %dx%d, want 800x600", *opts.Width, *opts.Height)
	}
	if *opts.Record || *opts.Fullscreen {
		t.Error("record/fullscreen default to true")
	}
	if *opts.FPS != 60 {
		t.Errorf("default fps = %d", *opts.FPS)
	}
}

func TestBindParsesFlags(t *testing.T) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	opts := Bind(fs)

	args := []string{"-width", "1280", "-height", "720", "-record", "-output", "run.mp4", "-title", "t"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if *opts.Width != 1280 || *opts.Height != 720 {
		t.Errorf("size = %dx%d, want 1280x720", *opts.Width, *opts.Height)
	}
	if !*opts.Record || *opts.OutputFile != "run.mp4" {
		t.Errorf("record = %v output = %q", *opts.Record, *opts.OutputFile)
	}
	if *opts.Title != "t" {
		t.Errorf("title = %q", *opts.Title)
	}
}
