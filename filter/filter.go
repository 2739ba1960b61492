/*
NAME
  filter.go

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package filter provides the interface and implementations of the filters
// to be applied to decoded video frames.
package filter

import (
	"errors"
	"fmt"
	"image"
	"io"

	"gocv.io/x/gocv"

	"github.com/ausocean/videoloop/loop/config"
)

var errEmptyFrame = errors.New("empty frame")

// Result describes what a filter found in a single frame. It is only valid
// until the next call to Apply.
type Result struct {
	Detected bool              // True if the frame contains what the filter looks for.
	Regions  []image.Rectangle // Regions of the frame where things were found.
	Score    float64           // Filter specific measure, e.g. percentage of changed pixels.
}

// Filter is the interface for all frame filters. Apply transforms img in
// place and reports what was found.
type Filter interface {
	Apply(img *gocv.Mat) (Result, error)
	io.Closer
}

// New returns the filter selected by the Filter field of the given config.
func New(c config.Config) (Filter, error) {
	switch c.Filter {
	case config.FilterNoOp:
		return NewNoOp(), nil
	case config.FilterCanny:
		return NewCanny(c), nil
	case config.FilterMotion:
		switch c.MotionAlgorithm {
		case config.MotionAverage:
			return NewMovingAverage(c), nil
		case config.MotionMOG:
			return NewMOG(c), nil
		case config.MotionKNN:
			return NewKNN(c), nil
		case config.MotionDiff:
			return NewDiff(c), nil
		default:
			return nil, fmt.Errorf("unknown motion algorithm: %d", c.MotionAlgorithm)
		}
	case config.FilterPeople:
		return NewPeople(c)
	default:
		return nil, fmt.Errorf("unknown filter: %d", c.Filter)
	}
}

// The NoOp filter will perform no operation on the frames that it receives.
type NoOp struct{}

func NewNoOp() *NoOp { return &NoOp{} }

func (n *NoOp) Apply(img *gocv.Mat) (Result, error) { return Result{}, nil }

func (n *NoOp) Close() error { return nil }

// toGray converts src to a single channel image in dst. Single channel
// images are copied as is.
func toGray(src gocv.Mat, dst *gocv.Mat) {
	switch src.Channels() {
	case 1:
		src.CopyTo(dst)
	case 4:
		gocv.CvtColor(src, dst, gocv.ColorBGRAToGray)
	default:
		gocv.CvtColor(src, dst, gocv.ColorBGRToGray)
	}
}

// percentNonZero returns the percentage of non zero pixels in a single
// channel image.
func percentNonZero(img gocv.Mat) float64 {
	total := img.Rows() * img.Cols()
	if total == 0 {
		return 0
	}
	return 100 * float64(gocv.CountNonZero(img)) / float64(total)
}
