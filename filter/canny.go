/*
DESCRIPTION
  A filter that keeps only the edges of a frame. Edges are found with the
  Canny detector on a blurred grayscale copy of the frame, then the frame is
  masked with the edge map so that edge pixels keep their original colour
  and everything else is black.

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
	defaultCannyKernel = 3
	defaultCannyLow    = 100.0
	defaultCannyHigh   = 200.0
)

// Canny is an edge detection filter.
type Canny struct {
	debugging debugWindows
	ksize     image.Point // Gaussian blur kernel, must be odd.
	low       float32     // Lower hysteresis threshold.
	high      float32     // Upper hysteresis threshold.
	gray      gocv.Mat
	edges     gocv.Mat
}

// NewCanny returns a pointer to a new Canny filter.
func NewCanny(c config.Config) *Canny {
	// Validate parameters.
	if c.CannyKernel == 0 || c.CannyKernel%2 == 0 {
		c.LogInvalidField("CannyKernel", defaultCannyKernel)
		c.CannyKernel = defaultCannyKernel
	}
	if c.CannyLow <= 0 {
		c.LogInvalidField("CannyLow", defaultCannyLow)
		c.CannyLow = defaultCannyLow
	}
	if c.CannyHigh <= c.CannyLow {
		c.LogInvalidField("CannyHigh", defaultCannyHigh)
		c.CannyHigh = defaultCannyHigh
		if c.CannyLow >= c.CannyHigh {
			c.LogInvalidField("CannyLow", defaultCannyLow)
			c.CannyLow = defaultCannyLow
		}
	}

	k := int(c.CannyKernel)
	return &Canny{
		ksize:     image.Pt(k, k),
		low:       float32(c.CannyLow),
		high:      float32(c.CannyHigh),
		gray:      gocv.NewMat(),
		edges:     gocv.NewMat(),
		debugging: newWindows("CANNY"),
	}
}

// Close frees resources used by gocv. It has to be done manually,
// due to gocv using c-go.
func (f *Canny) Close() error {
	f.gray.Close()
	f.edges.Close()
	return f.debugging.close()
}

// Apply replaces img with its coloured edges. The Score of the result is the
// number of edge pixels; edge detection never reports Detected.
func (f *Canny) Apply(img *gocv.Mat) (Result, error) {
	if img.Empty() {
		return Result{}, errEmptyFrame
	}

	toGray(*img, &f.gray)

	// Reduce noise before edge detection.
	gocv.GaussianBlur(f.gray, &f.gray, f.ksize, 0, 0, gocv.BorderDefault)
	gocv.Canny(f.gray, &f.edges, f.low, f.high)

	// Colour the edges from the original frame.
	dst := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), img.Rows(), img.Cols(), img.Type())
	defer dst.Close()
	gocv.BitwiseAndWithMask(*img, *img, &dst, f.edges)

	f.debugging.show(*img, f.edges, false, nil)

	dst.CopyTo(img)
	return Result{Score: float64(gocv.CountNonZero(f.edges))}, nil
}
