/*
DESCRIPTION
  cli_test.go provides testing of command line parsing and running.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/videoloop/internal/testclip"
	"github.com/ausocean/videoloop/loop/config"
	"github.com/ausocean/videoloop/report"
)

var (
	canny  = Program{Name: "canny", Filter: config.FilterCanny, DefaultInput: "resources/traffic.mp4", DefaultOutput: "output/canny.avi"}
	motion = Program{Name: "motiondetect", Filter: config.FilterMotion, DefaultInput: "resources/traffic.mp4"}
)

type want struct {
	Filter     uint8
	Input      uint8
	InputPath  string
	Output     uint8
	OutputPath string
	Loop       bool
	MaxFrames  uint
	LogLevel   int8
}

func got(c config.Config) want {
	return want{c.Filter, c.Input, c.InputPath, c.Output, c.OutputPath, c.Loop, c.MaxFrames, c.LogLevel}
}

func TestConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "videoloop.env")
	err := os.WriteFile(file, []byte("InputPath=from/file.mp4\nMaxFrames=7\nlogging=Debug\n"), 0644)
	if err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	tests := []struct {
		name string
		prog Program
		args []string
		want want
	}{
		{
			name: "canny defaults",
			prog: canny,
			want: want{Filter: config.FilterCanny, Input: config.InputFile, InputPath: "resources/traffic.mp4", Output: config.OutputFile, OutputPath: "output/canny.avi", LogLevel: logging.Info},
		},
		{
			name: "motion defaults",
			prog: motion,
			want: want{Filter: config.FilterMotion, Input: config.InputFile, InputPath: "resources/traffic.mp4", Output: config.OutputNone, LogLevel: logging.Info},
		},
		{
			name: "flags",
			prog: motion,
			args: []string{"-out", "out/motion.avi", "-loop", "-max-frames", "20", "-verbosity", "Warning", "cars.mp4"},
			want: want{Filter: config.FilterMotion, Input: config.InputFile, InputPath: "cars.mp4", Output: config.OutputFile, OutputPath: "out/motion.avi", Loop: true, MaxFrames: 20, LogLevel: logging.Warning},
		},
		{
			name: "no output",
			prog: canny,
			args: []string{"-out", ""},
			want: want{Filter: config.FilterCanny, Input: config.InputFile, InputPath: "resources/traffic.mp4", Output: config.OutputNone, LogLevel: logging.Info},
		},
		{
			name: "webcam",
			prog: motion,
			args: []string{"-webcam"},
			want: want{Filter: config.FilterMotion, Input: config.InputWebcam, InputPath: "0", Output: config.OutputNone, LogLevel: logging.Info},
		},
		{
			name: "config file",
			prog: motion,
			args: []string{"-config", file},
			want: want{Filter: config.FilterMotion, Input: config.InputFile, InputPath: "from/file.mp4", Output: config.OutputNone, MaxFrames: 7, LogLevel: logging.Debug},
		},
		{
			name: "flags override config file",
			prog: motion,
			args: []string{"-config", file, "-max-frames", "3", "cars.mp4"},
			want: want{Filter: config.FilterMotion, Input: config.InputFile, InputPath: "cars.mp4", Output: config.OutputNone, MaxFrames: 3, LogLevel: logging.Debug},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			o, err := parseFlags(test.prog, test.args)
			if err != nil {
				t.Fatalf("could not parse flags: %v", err)
			}
			c, err := o.config(test.prog, (*logging.TestLogger)(t))
			if err != nil {
				t.Fatalf("could not build config: %v", err)
			}
			if !cmp.Equal(got(c), test.want) {
				t.Errorf("unexpected config\n%s", cmp.Diff(test.want, got(c)))
			}
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	if _, err := parseFlags(canny, []string{"a.mp4", "b.mp4"}); err == nil {
		t.Error("expected error for two inputs")
	}
	if _, err := parseFlags(canny, []string{"-max-frames", "lots"}); err == nil {
		t.Error("expected error for bad max-frames")
	}

	o, err := parseFlags(canny, []string{"-config", filepath.Join(t.TempDir(), "missing.env")})
	if err != nil {
		t.Fatalf("could not parse flags: %v", err)
	}
	if _, err := o.config(canny, (*logging.TestLogger)(t)); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDerivedPath(t *testing.T) {
	tests := []struct{ path, input, want string }{
		{"output/canny.avi", "in/cars.mp4", "output/canny-cars.avi"},
		{"scores.png", "/videos/walking.mp4", "scores-walking.png"},
		{"out/noext", "clip.avi", "out/noext-clip"},
	}
	for _, test := range tests {
		got := derivedPath(test.path, test.input)
		if got != test.want {
			t.Errorf("unexpected path for %s and %s\nwant: %s\ngot: %s", test.path, test.input, test.want, got)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	clip := testclip.Spec{Frames: 10, Width: 160, Height: 120, FPS: 10}
	in := filepath.Join(dir, "clip.avi")
	err := testclip.Write(in, clip)
	if err != nil {
		t.Fatalf("could not write clip: %v", err)
	}

	store, err := report.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatalf("could not open store: %v", err)
	}
	defer store.Close()

	log := (*logging.TestLogger)(t)
	r := &runner{prog: motion, log: log, store: store}
	c := config.Config{
		Logger:      log,
		Filter:      config.FilterMotion,
		InputPath:   in,
		Output:      config.OutputFile,
		OutputPath:  filepath.Join(dir, "out", "motion.avi"),
		OutputCodec: testclip.Codec,
	}
	plot := filepath.Join(dir, "scores.png")
	err = r.run(context.Background(), c, plot)
	if err != nil {
		t.Fatalf("could not run: %v", err)
	}

	runs, err := store.List(0)
	if err != nil {
		t.Fatalf("could not list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Frames != uint(clip.Frames) || runs[0].Program != motion.Name {
		t.Errorf("unexpected runs: %+v", runs)
	}
	if _, err := os.Stat(plot); err != nil {
		t.Errorf("plot not written: %v", err)
	}
	frames, _, _, err := testclip.Inspect(c.OutputPath)
	if err != nil {
		t.Fatalf("could not inspect output: %v", err)
	}
	if frames != clip.Frames {
		t.Errorf("unexpected output frames\nwant: %d\ngot: %d", clip.Frames, frames)
	}

	c.InputPath = filepath.Join(dir, "missing.avi")
	if err := r.run(context.Background(), c, ""); err == nil {
		t.Error("expected error for missing input")
	}
}
