/*
DESCRIPTION
  canny keeps only the edge pixels of each frame of a video, found with
  the Canny edge detector, and writes the result to a new video.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// canny writes an edge detected copy of a video.
package main

import (
	"github.com/ausocean/videoloop/internal/cli"
	"github.com/ausocean/videoloop/loop/config"
)

// Defaults.
const (
	defaultInput  = "resources/traffic.mp4"
	defaultOutput = "output/canny.avi"
)

func main() {
	cli.Main(cli.Program{
		Name:          "canny",
		Filter:        config.FilterCanny,
		DefaultInput:  defaultInput,
		DefaultOutput: defaultOutput,
	})
}
