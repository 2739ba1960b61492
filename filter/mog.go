/*
DESCRIPTION
  A motion detection algorithm that uses a Mixture of Gaussians method (MoG)
  to determine what is background and what is foreground.

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

	"gocv.io/x/gocv"

	"github.com/ausocean/videoloop/loop/config"
)

const (
	defaultMOGMinArea   = 25.0
	defaultMOGThreshold = 20.0
	defaultMOGHistory   = 500
	defaultMOGKernel    = 3
)

// NewMOG returns a pointer to a new MOG motion filter.
func NewMOG(c config.Config) *Motion {
	// Validate parameters.
	if c.MotionMinArea <= 0 {
		c.LogInvalidField("MotionMinArea", defaultMOGMinArea)
		c.MotionMinArea = defaultMOGMinArea
	}
	if c.MotionThreshold <= 0 {
		c.LogInvalidField("MotionThreshold", defaultMOGThreshold)
		c.MotionThreshold = defaultMOGThreshold
	}
	if c.MotionHistory == 0 {
		c.LogInvalidField("MotionHistory", defaultMOGHistory)
		c.MotionHistory = defaultMOGHistory
	}
	if c.MotionKernel <= 0 {
		c.LogInvalidField("MotionKernel", defaultMOGKernel)
		c.MotionKernel = defaultMOGKernel
	}

	k := int(c.MotionKernel)
	bs := gocv.NewBackgroundSubtractorMOG2WithParams(int(c.MotionHistory), c.MotionThreshold, false)
	alg := &MOG{
		area:      c.MotionMinArea,
		bs:        &bs,
		knl:       gocv.GetStructuringElement(gocv.MorphRect, image.Pt(k, k)),
		debugging: newWindows("MOG"),
	}

	return NewMotion(alg, c)
}

// MOG is a motion detection algorithm. MoG is short for
// Mixture of Gaussians method.
type MOG struct {
	debugging debugWindows
	area      float64                        // The minimum area that a contour can be found in.
	bs        *gocv.BackgroundSubtractorMOG2 // Uses the MOG algorithm to find the difference between the current and background frame.
	knl       gocv.Mat                       // Matrix that is used for calculations.
}

// Close frees resources used by gocv. It has to be done manually,
// due to gocv using c-go.
func (m *MOG) Close() error {
	m.bs.Close()
	m.knl.Close()
	return m.debugging.close()
}

// Detect performs the motion detection on a frame. Motion is found when any
// foreground contour is larger than the minimum area.
func (m *MOG) Detect(img *gocv.Mat) (Result, error) {
	imgDelta := gocv.NewMat()
	defer imgDelta.Close()

	// Seperate foreground and background.
	m.bs.Apply(*img, &imgDelta)

	return foreground(imgDelta, m.knl, m.area, img, &m.debugging), nil
}

// foreground cleans up a foreground mask from a background subtractor and
// finds the regions of motion in it.
func foreground(mask, knl gocv.Mat, area float64, img *gocv.Mat, d *debugWindows) Result {
	// Threshold mask, this also drops shadow values.
	gocv.Threshold(mask, &mask, 25, 255, gocv.ThresholdBinary)

	// Remove noise.
	gocv.Erode(mask, &mask, knl)
	gocv.Dilate(mask, &mask, knl)

	// Fill small holes.
	gocv.Dilate(mask, &mask, knl)
	gocv.Erode(mask, &mask, knl)

	// Find contours and reject ones with a small area.
	regions := boundingRects(mask, gocv.RetrievalExternal, area)

	d.show(*img, mask, len(regions) > 0, regions)

	return Result{Detected: len(regions) > 0, Regions: regions, Score: percentNonZero(mask)}
}
