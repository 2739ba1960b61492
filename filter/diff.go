/*
DESCRIPTION
  A motion detection algorithm that calculates the absolute difference for
  each pixel between two consecutive frames, then finds the mean. If the mean
  is above a given threshold, then it is considered motion.

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
	"fmt"

	"gocv.io/x/gocv"

	"github.com/ausocean/videoloop/loop/config"
)

const defaultDiffThreshold = 3

// NewDiff returns a pointer to a new difference motion filter.
func NewDiff(c config.Config) *Motion {
	// Validate parameters.
	if c.MotionThreshold <= 0 {
		c.LogInvalidField("MotionThreshold", defaultDiffThreshold)
		c.MotionThreshold = defaultDiffThreshold
	}

	alg := &Diff{
		thresh:    c.MotionThreshold,
		prev:      gocv.NewMat(),
		debugging: newWindows("DIFF"),
	}

	return NewMotion(alg, c)
}

// Diff is a motion detection algorithm. It calculates the absolute
// difference for each pixel between two frames, then finds the mean.
// If the mean is above a given threshold, it is considered motion.
type Diff struct {
	debugging debugWindows
	thresh    float64
	prev      gocv.Mat
}

// Close frees resources used by gocv. It has to be done manually,
// due to gocv using c-go.
func (d *Diff) Close() error {
	d.prev.Close()
	return d.debugging.close()
}

// Detect performs the motion detection on a frame. The Score of the result
// is the mean absolute difference. Diff does not locate regions.
func (d *Diff) Detect(img *gocv.Mat) (Result, error) {
	if d.prev.Empty() {
		img.CopyTo(&d.prev)
		return Result{}, nil
	}

	imgDelta := gocv.NewMat()
	defer imgDelta.Close()

	// Seperate foreground and background.
	gocv.AbsDiff(*img, d.prev, &imgDelta)
	toGray(imgDelta, &imgDelta)

	mean := imgDelta.Mean().Val1

	// Update history.
	img.CopyTo(&d.prev)

	// Draw debug information.
	d.debugging.show(*img, imgDelta, mean > d.thresh, nil, fmt.Sprintf("Mean: %f", mean), fmt.Sprintf("Threshold: %f", d.thresh))

	return Result{Detected: mean > d.thresh, Score: mean}, nil
}
