/*
DESCRIPTION
  motiondetect detects motion in a video by comparing each frame with a
  moving average of previous frames, and logs how many frames had motion.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// motiondetect counts the frames of a video that contain motion.
package main

import (
	"github.com/ausocean/videoloop/internal/cli"
	"github.com/ausocean/videoloop/loop/config"
)

const defaultInput = "resources/traffic.mp4"

func main() {
	// Video is only written, with motion regions drawn, when -out is given.
	cli.Main(cli.Program{
		Name:         "motiondetect",
		Filter:       config.FilterMotion,
		DefaultInput: defaultInput,
		Annotate:     true,
	})
}
