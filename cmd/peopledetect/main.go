/*
DESCRIPTION
  peopledetect finds people in each frame of a video with a HOG
  descriptor and linear SVM, boxes them and writes the result to a new video.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// peopledetect writes a copy of a video with detected people boxed.
package main

import (
	"github.com/ausocean/videoloop/internal/cli"
	"github.com/ausocean/videoloop/loop/config"
)

// Defaults.
const (
	defaultInput  = "resources/walking.mp4"
	defaultOutput = "output/people-detect.avi"
)

func main() {
	cli.Main(cli.Program{
		Name:          "peopledetect",
		Filter:        config.FilterPeople,
		DefaultInput:  defaultInput,
		DefaultOutput: defaultOutput,
	})
}
