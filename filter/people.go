/*
DESCRIPTION
  A filter that finds people in frames using OpenCV's pre-trained Histogram
  of Oriented Gradients (HOG) people detector. Each detection is outlined
  and labelled on the frame.

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
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ausocean/videoloop/loop/config"
)

const (
	defaultHOGWinStride      = 8
	defaultHOGPadding        = 32
	defaultHOGScale          = 1.05
	defaultHOGFinalThreshold = 2.0
)

// Drawing parameters for detections.
var (
	boxColour   = color.RGBA{0, 255, 0, 0}
	labelColour = color.RGBA{255, 255, 255, 0}
)

const (
	boxThickness   = 2
	labelScale     = 1.5
	labelThickness = 2
	labelOffset    = 4 // Pixels between the label baseline and the top of the box.
)

// People is a people detection filter.
type People struct {
	debugging  debugWindows
	hog        gocv.HOGDescriptor
	winStride  image.Point
	padding    image.Point
	scale      float64
	finalThold float64
}

// NewPeople returns a pointer to a new People filter using the default
// people detector.
func NewPeople(c config.Config) (*People, error) {
	// Validate parameters.
	if c.HOGWinStride == 0 {
		c.LogInvalidField("HOGWinStride", defaultHOGWinStride)
		c.HOGWinStride = defaultHOGWinStride
	}
	if c.HOGPadding == 0 {
		c.LogInvalidField("HOGPadding", defaultHOGPadding)
		c.HOGPadding = defaultHOGPadding
	}
	if c.HOGScale <= 1 {
		c.LogInvalidField("HOGScale", defaultHOGScale)
		c.HOGScale = defaultHOGScale
	}
	if c.HOGFinalThreshold <= 0 {
		c.LogInvalidField("HOGFinalThreshold", defaultHOGFinalThreshold)
		c.HOGFinalThreshold = defaultHOGFinalThreshold
	}

	hog := gocv.NewHOGDescriptor()
	det := gocv.HOGDefaultPeopleDetector()
	defer det.Close()
	err := hog.SetSVMDetector(det)
	if err != nil {
		hog.Close()
		return nil, fmt.Errorf("could not set people detector: %w", err)
	}

	s, p := int(c.HOGWinStride), int(c.HOGPadding)
	return &People{
		hog:        hog,
		winStride:  image.Pt(s, s),
		padding:    image.Pt(p, p),
		scale:      c.HOGScale,
		finalThold: c.HOGFinalThreshold,
		debugging:  newWindows("PEOPLE"),
	}, nil
}

// Close frees resources used by gocv. It has to be done manually,
// due to gocv using c-go.
func (f *People) Close() error {
	f.hog.Close()
	return f.debugging.close()
}

// Apply detects people in img and draws a labelled box around each. The
// Score of the result is the number of people found.
func (f *People) Apply(img *gocv.Mat) (Result, error) {
	if img.Empty() {
		return Result{}, errEmptyFrame
	}

	found := f.hog.DetectMultiScaleWithParams(*img, 0, f.winStride, f.padding, f.scale, f.finalThold, false)

	for i, r := range found {
		gocv.Rectangle(img, r, boxColour, boxThickness)
		gocv.PutTextWithParams(
			img,
			fmt.Sprintf("person %d", i+1),
			image.Pt(r.Min.X, r.Min.Y-labelOffset),
			gocv.FontHersheyPlain,
			labelScale,
			labelColour,
			labelThickness,
			gocv.LineAA,
			false,
		)
	}

	f.debugging.show(*img, *img, len(found) > 0, found)

	return Result{Detected: len(found) > 0, Regions: found, Score: float64(len(found))}, nil
}
