/*
DESCRIPTION
  report_test.go provides testing of the run store and score plot.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ausocean/videoloop/loop"
)

func TestStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("could not open store: %v", err)
	}
	defer s.Close()

	sums := []*loop.Summary{
		{Input: "traffic.mp4", Filter: "motion", Width: 640, Height: 360, Frames: 100, Detected: 12, Elapsed: 3 * time.Second},
		{Input: "walking.mp4", Output: "output/people-detect.avi", Filter: "people", Width: 320, Height: 240, Frames: 50, Detected: 50, Elapsed: time.Second},
	}
	programs := []string{"motiondetect", "peopledetect"}

	var ids []string
	for i, sum := range sums {
		id, err := s.Record(programs[i], sum)
		if err != nil {
			t.Fatalf("could not record run %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	if ids[0] == ids[1] {
		t.Errorf("expected unique ids, got %s twice", ids[0])
	}

	got, err := s.List(0)
	if err != nil {
		t.Fatalf("could not list runs: %v", err)
	}
	want := []Run{
		{ID: ids[1], Program: "peopledetect", Input: "walking.mp4", Output: "output/people-detect.avi", Filter: "people", Width: 320, Height: 240, Frames: 50, Detected: 50, Elapsed: time.Second},
		{ID: ids[0], Program: "motiondetect", Input: "traffic.mp4", Filter: "motion", Width: 640, Height: 360, Frames: 100, Detected: 12, Elapsed: 3 * time.Second},
	}
	if !cmp.Equal(got, want, cmpopts.IgnoreFields(Run{}, "Created")) {
		t.Errorf("unexpected runs\n%s", cmp.Diff(want, got, cmpopts.IgnoreFields(Run{}, "Created")))
	}

	got, err = s.List(1)
	if err != nil {
		t.Fatalf("could not list runs: %v", err)
	}
	if len(got) != 1 || got[0].ID != ids[1] {
		t.Errorf("expected only the latest run, got %v", got)
	}

	if _, err := s.Record("canny", nil); err == nil {
		t.Error("expected error recording nil summary")
	}
}

func TestPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "scores.png")
	err := Plot(path, &loop.Summary{Filter: "motion", Frames: 3, Scores: []float64{0.5, 4, 1}})
	if err != nil {
		t.Fatalf("could not plot: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read plot: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Error("plot is not a PNG")
	}

	err = Plot(path, &loop.Summary{})
	if err != ErrNoScores {
		t.Errorf("unexpected error for empty summary\nwant: %v\ngot: %v", ErrNoScores, err)
	}
}
