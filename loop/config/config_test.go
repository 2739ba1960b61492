/*
DESCRIPTION
  config_test.go provides testing for the Config struct methods (Validate,
  Update and UpdateFromFile).

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidate(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:          dl,
		Input:           defaultInput,
		Output:          defaultOutput,
		OutputCodec:     defaultOutputCodec,
		LogLevel:        defaultVerbosity,
		Filter:          defaultFilter,
		MotionAlgorithm: defaultMotionAlg,
	}

	got := Config{Logger: dl}
	err := (&got).Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestValidateOutput(t *testing.T) {
	tests := []struct {
		in   Config
		want uint8
	}{
		{in: Config{Output: OutputFile, OutputPath: "out.avi"}, want: OutputFile},
		{in: Config{Output: OutputFile}, want: OutputNone},
		{in: Config{Output: OutputNone}, want: OutputNone},
		{in: Config{Output: InputWebcam}, want: OutputNone},
	}

	for i, test := range tests {
		test.in.Logger = &dumbLogger{}
		err := test.in.Validate()
		if err != nil {
			t.Fatalf("did not expect error for test %d: %v", i, err)
		}
		if test.in.Output != test.want {
			t.Errorf("unexpected output for test %d\nwant: %d\ngot: %d", i, test.want, test.in.Output)
		}
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"Annotate":          "true",
		"CannyHigh":         "150",
		"CannyKernel":       "5",
		"CannyLow":          "50",
		"Filter":            "Motion",
		"HOGFinalThreshold": "1.5",
		"HOGPadding":        "16",
		"HOGScale":          "1.1",
		"HOGWinStride":      "4",
		"Input":             "webcam",
		"InputPath":         "/inputpath",
		"logging":           "Error",
		"Loop":              "true",
		"MaxFrames":         "250",
		"MotionAlgorithm":   "KNN",
		"MotionAlpha":       "0.05",
		"MotionBlur":        "6",
		"MotionDilations":   "12",
		"MotionErosions":    "8",
		"MotionHistory":     "4",
		"MotionKernel":      "2",
		"MotionMinArea":     "9",
		"MotionReset":       "30",
		"MotionThreshold":   "34",
		"MotionTrigger":     "1.5",
		"Output":            "File",
		"OutputCodec":       "mjpg",
		"OutputPath":        "/outputpath",
	}

	dl := &dumbLogger{}

	want := Config{
		Logger:            dl,
		Annotate:          true,
		CannyHigh:         150,
		CannyKernel:       5,
		CannyLow:          50,
		Filter:            FilterMotion,
		HOGFinalThreshold: 1.5,
		HOGPadding:        16,
		HOGScale:          1.1,
		HOGWinStride:      4,
		Input:             InputWebcam,
		InputPath:         "/inputpath",
		LogLevel:          logging.Error,
		Loop:              true,
		MaxFrames:         250,
		MotionAlgorithm:   MotionKNN,
		MotionAlpha:       0.05,
		MotionBlur:        6,
		MotionDilations:   12,
		MotionErosions:    8,
		MotionHistory:     4,
		MotionKernel:      2,
		MotionMinArea:     9,
		MotionReset:       30,
		MotionThreshold:   34,
		MotionTrigger:     1.5,
		Output:            OutputFile,
		OutputCodec:       "MJPG",
		OutputPath:        "/outputpath",
	}

	got := Config{Logger: dl}
	got.Update(updateMap)
	if !cmp.Equal(want, got) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestUpdateFromFile(t *testing.T) {
	const vars = `# Motion settings.
Filter=Motion
MotionAlgorithm=MOG
MotionThreshold=20
OutputPath="out/motion.avi"
Output=File
`
	path := filepath.Join(t.TempDir(), "videoloop.env")
	err := os.WriteFile(path, []byte(vars), 0644)
	if err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	dl := &dumbLogger{}
	want := Config{
		Logger:          dl,
		Filter:          FilterMotion,
		MotionAlgorithm: MotionMOG,
		MotionThreshold: 20,
		Output:          OutputFile,
		OutputPath:      "out/motion.avi",
	}

	got := Config{Logger: dl}
	err = got.UpdateFromFile(path)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if !cmp.Equal(want, got) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}

	err = got.UpdateFromFile(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}
