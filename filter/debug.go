//go:build debug
// +build debug

/*
DESCRIPTION
  Displays debug information for the filters.

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
)

// debugWindows is used for displaying debug information for the filters.
type debugWindows struct {
	windows []*gocv.Window
}

// close frees resources used by gocv.
func (d *debugWindows) close() error {
	for _, window := range d.windows {
		err := window.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// newWindows creates debugging windows for a filter.
func newWindows(name string) debugWindows {
	return debugWindows{
		windows: []*gocv.Window{
			gocv.NewWindow(name + ": Video"),
			gocv.NewWindow(name + ": Mask"),
		},
	}
}

// show displays a copy of img with regions and text drawn on it, next to
// the mask the filter worked from.
func (d *debugWindows) show(img, mask gocv.Mat, detected bool, regions []image.Rectangle, text ...string) {
	drkRed := color.RGBA{191, 0, 0, 0}
	lhtRed := color.RGBA{191, 31, 31, 0}

	im := img.Clone()
	defer im.Close()

	for _, r := range regions {
		gocv.Rectangle(&im, r, lhtRed, 1)
	}

	if detected {
		text = append(text, "Detected")
	}
	for i, str := range text {
		gocv.PutText(&im, str, image.Pt(32, 32*(i+1)), gocv.FontHersheyPlain, 2.0, drkRed, 2)
	}

	d.windows[0].IMShow(im)
	d.windows[1].IMShow(mask)
	d.windows[0].WaitKey(1)
}
