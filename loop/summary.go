/*
DESCRIPTION
  summary.go provides Summary, the counts and timings collected by a Loop run.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package loop

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/videoloop/filter"
	"github.com/ausocean/videoloop/loop/config"
)

// Summary holds the results of a Loop run.
type Summary struct {
	Input    string
	Output   string
	Filter   string // What the filter detects, e.g. "motion", empty if nothing.
	Width    int
	Height   int
	Frames   uint // Frames read, filtered and written.
	Detected uint // Frames in which the filter detected something.
	Elapsed  time.Duration

	// Scores holds the filter score of each frame in order.
	Scores []float64

	// FrameTimes holds the filter and write time of each frame in seconds.
	FrameTimes []float64
}

func (s *Summary) add(r filter.Result, d time.Duration) {
	s.Frames++
	if r.Detected {
		s.Detected++
	}
	s.Scores = append(s.Scores, r.Score)
	s.FrameTimes = append(s.FrameTimes, d.Seconds())
}

// FrameTime returns the mean and standard deviation of the per frame
// processing time.
func (s *Summary) FrameTime() (mean, std time.Duration) {
	if len(s.FrameTimes) == 0 {
		return 0, 0
	}
	m, sd := stat.MeanStdDev(s.FrameTimes, nil)
	if len(s.FrameTimes) == 1 {
		sd = 0
	}
	return seconds(m), seconds(sd)
}

// FPS returns the rate at which frames were processed.
func (s *Summary) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// String returns the frame counts in the form "N frames, M frames with X".
func (s *Summary) String() string {
	if s.Filter == "" {
		return fmt.Sprintf("%d frames", s.Frames)
	}
	return fmt.Sprintf("%d frames, %d frames with %s", s.Frames, s.Detected, s.Filter)
}

func (s *Summary) log(l logging.Logger) {
	mean, std := s.FrameTime()
	l.Info(s.String(), "frames", s.Frames, "detected", s.Detected)
	l.Info(fmt.Sprintf("Elapse time: %4.2f seconds", s.Elapsed.Seconds()), "fps", s.FPS(), "meanFrameTime", mean.String(), "stdFrameTime", std.String())
}

func seconds(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

// filterName returns what the configured filter detects, for use in logs.
func filterName(c config.Config) string {
	switch c.Filter {
	case config.FilterMotion:
		return "motion"
	case config.FilterPeople:
		return "people"
	default:
		return ""
	}
}
