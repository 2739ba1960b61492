/*
DESCRIPTION
  A filter that detects motion in frames using a supplied motion detection
  algorithm and, if configured, draws the regions of motion onto the frame.

AUTHORS
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package filter

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ausocean/videoloop/loop/config"
)

// MotionAlgorithm is the interface the motion filter expects for
// motion detection algorithms.
type MotionAlgorithm interface {
	Detect(img *gocv.Mat) (Result, error)
	Close() error
}

// Motion is a filter that performs motion detection using a supplied
// motion detection algorithm.
type Motion struct {
	algorithm MotionAlgorithm // Algorithm to use for motion detection.
	annotate  bool            // Draw regions of motion onto frames.
}

// NewMotion returns a pointer to a new Motion filter struct.
func NewMotion(alg MotionAlgorithm, c config.Config) *Motion {
	return &Motion{algorithm: alg, annotate: c.Annotate}
}

// Close frees resources used by the algorithm.
func (m *Motion) Close() error {
	return m.algorithm.Close()
}

// Apply runs motion detection on img. The frame is only modified when
// annotation is enabled.
func (m *Motion) Apply(img *gocv.Mat) (Result, error) {
	if img.Empty() {
		return Result{}, errEmptyFrame
	}

	r, err := m.algorithm.Detect(img)
	if err != nil {
		return r, err
	}

	if m.annotate {
		c := color.RGBA{0, 0, 255, 0}
		if r.Detected {
			c = color.RGBA{255, 0, 0, 0}
		}
		for _, rect := range r.Regions {
			gocv.Rectangle(img, rect, c, 1)
		}
	}
	return r, nil
}

// boundingRects returns the bounding rectangles of the contours of mask
// whose area is larger than minArea.
func boundingRects(mask gocv.Mat, mode gocv.RetrievalMode, minArea float64) []image.Rectangle {
	contours := gocv.FindContours(mask, mode, gocv.ChainApproxSimple)
	defer contours.Close()

	var rects []image.Rectangle
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		if minArea > 0 && gocv.ContourArea(c) <= minArea {
			continue
		}
		rects = append(rects, gocv.BoundingRect(c))
	}
	return rects
}
