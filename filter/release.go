//go:build !debug
// +build !debug

/*
DESCRIPTION
  Replaces the debug windows of the filters when built without the debug tag.

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
)

// debugWindows is used for displaying debug information for the filters.
type debugWindows struct{}

// close frees resources used by gocv.
func (d *debugWindows) close() error { return nil }

// newWindows creates debugging windows for a filter.
func newWindows(name string) debugWindows { return debugWindows{} }

// show displays debug information for the filters.
func (d *debugWindows) show(img, mask gocv.Mat, detected bool, regions []image.Rectangle, text ...string) {
}
