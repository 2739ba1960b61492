/*
DESCRIPTION
  A motion detection algorithm that keeps an exponentially weighted moving
  average of the blurred frames as the background reference. Pixels that
  differ from the background by more than a threshold count as changed, and
  a frame has motion when the percentage of changed pixels passes a trigger
  level. If too much of the frame changes at once, e.g. when the camera
  adjusts exposure, the background is reset to the current frame.

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
	"image"

	"gocv.io/x/gocv"

	"github.com/ausocean/videoloop/loop/config"
)

const (
	defaultAverageAlpha     = 0.03
	defaultAverageBlur      = 8
	defaultAverageThreshold = 25.0
	defaultAverageReset     = 25.0
	defaultAverageTrigger   = 2.0
	defaultAverageDilations = 15
	defaultAverageErosions  = 10
)

// NewMovingAverage returns a pointer to a new moving average motion filter.
func NewMovingAverage(c config.Config) *Motion {
	// Validate parameters.
	if c.MotionAlpha <= 0 || c.MotionAlpha > 1 {
		c.LogInvalidField("MotionAlpha", defaultAverageAlpha)
		c.MotionAlpha = defaultAverageAlpha
	}
	if c.MotionBlur == 0 {
		c.LogInvalidField("MotionBlur", defaultAverageBlur)
		c.MotionBlur = defaultAverageBlur
	}
	if c.MotionThreshold <= 0 || c.MotionThreshold >= 255 {
		c.LogInvalidField("MotionThreshold", defaultAverageThreshold)
		c.MotionThreshold = defaultAverageThreshold
	}
	if c.MotionReset <= 0 || c.MotionReset > 100 {
		c.LogInvalidField("MotionReset", defaultAverageReset)
		c.MotionReset = defaultAverageReset
	}
	if c.MotionTrigger <= 0 || c.MotionTrigger > 100 {
		c.LogInvalidField("MotionTrigger", defaultAverageTrigger)
		c.MotionTrigger = defaultAverageTrigger
	}
	if c.MotionDilations == 0 {
		c.LogInvalidField("MotionDilations", defaultAverageDilations)
		c.MotionDilations = defaultAverageDilations
	}
	if c.MotionErosions == 0 {
		c.LogInvalidField("MotionErosions", defaultAverageErosions)
		c.MotionErosions = defaultAverageErosions
	}

	b := int(c.MotionBlur)
	alg := &MovingAverage{
		alpha:     c.MotionAlpha,
		blur:      image.Pt(b, b),
		thresh:    c.MotionThreshold,
		reset:     c.MotionReset,
		trigger:   c.MotionTrigger,
		dilations: int(c.MotionDilations),
		erosions:  int(c.MotionErosions),
		knl:       gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3)),
		avg:       gocv.NewMat(),
		work:      gocv.NewMat(),
		scaled:    gocv.NewMat(),
		delta:     gocv.NewMat(),
		gray:      gocv.NewMat(),
		morph:     gocv.NewMat(),
		debugging: newWindows("AVERAGE"),
	}

	return NewMotion(alg, c)
}

// MovingAverage is a motion detection algorithm using a moving average
// background.
type MovingAverage struct {
	debugging debugWindows
	alpha     float64     // Weight given to the newest frame in the average.
	blur      image.Point // Box blur kernel applied to frames before comparison.
	thresh    float64     // Per pixel intensity difference that counts as change.
	reset     float64     // Changed pixel percentage above which the average is reset.
	trigger   float64     // Changed pixel percentage above which a frame has motion.
	dilations int
	erosions  int
	knl       gocv.Mat // 3x3 kernel for dilation and erosion.

	avg    gocv.Mat // Floating point moving average, created from the first frame.
	work   gocv.Mat
	scaled gocv.Mat
	delta  gocv.Mat
	gray   gocv.Mat
	morph  gocv.Mat
}

// Close frees resources used by gocv. It has to be done manually,
// due to gocv using c-go.
func (m *MovingAverage) Close() error {
	for _, mat := range []*gocv.Mat{&m.knl, &m.avg, &m.work, &m.scaled, &m.delta, &m.gray, &m.morph} {
		mat.Close()
	}
	return m.debugging.close()
}

// Detect performs the motion detection on a frame. The Score of the result
// is the percentage of changed pixels and Regions bound the areas of change.
func (m *MovingAverage) Detect(img *gocv.Mat) (Result, error) {
	gocv.Blur(*img, &m.work, m.blur)

	// The average is initialised lazily so that it takes the size and
	// channels of the stream.
	if m.avg.Empty() {
		m.resetAverage()
	}
	if m.avg.Rows() != m.work.Rows() || m.avg.Cols() != m.work.Cols() || m.avg.Channels() != m.work.Channels() {
		return Result{}, fmt.Errorf("frame size changed from %dx%d to %dx%d", m.avg.Cols(), m.avg.Rows(), m.work.Cols(), m.work.Rows())
	}

	gocv.AccumulatedWeighted(m.work, &m.avg, m.alpha)
	gocv.ConvertScaleAbs(m.avg, &m.scaled, 1, 0)
	gocv.AbsDiff(m.work, m.scaled, &m.delta)
	toGray(m.delta, &m.gray)
	gocv.Threshold(m.gray, &m.gray, float32(m.thresh), 255, gocv.ThresholdBinary)

	pct := percentNonZero(m.gray)

	// Most of the frame changed, likely the camera adjusting; start again
	// from this frame.
	if pct > m.reset {
		m.resetAverage()
	}

	// Grow the changed areas so that nearby changes merge, then shrink them
	// back before finding their outlines.
	m.gray.CopyTo(&m.morph)
	for i := 0; i < m.dilations; i++ {
		gocv.Dilate(m.morph, &m.morph, m.knl)
	}
	for i := 0; i < m.erosions; i++ {
		gocv.Erode(m.morph, &m.morph, m.knl)
	}
	regions := boundingRects(m.morph, gocv.RetrievalTree, 0)

	motion := pct > m.trigger
	m.debugging.show(*img, m.gray, motion, regions, fmt.Sprintf("Changed: %.2f%%", pct))

	return Result{Detected: motion, Regions: regions, Score: pct}, nil
}

// resetAverage sets the moving average to the current blurred frame.
func (m *MovingAverage) resetAverage() {
	mt := gocv.MatTypeCV32FC3
	switch m.work.Channels() {
	case 1:
		mt = gocv.MatTypeCV32FC1
	case 4:
		mt = gocv.MatTypeCV32FC4
	}
	m.work.ConvertTo(&m.avg, mt)
}
