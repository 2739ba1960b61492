/*
DESCRIPTION
  testclip.go generates and inspects small synthetic video clips for use in
  tests, so that tests do not depend on sample media being present.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package testclip provides synthetic video clips for tests.
package testclip

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Codec is the FourCC used for generated clips. OpenCV carries its own MJPEG
// AVI writer so this works without any external encoder.
const Codec = "MJPG"

// Spec describes a clip to generate.
type Spec struct {
	Frames int
	Width  int
	Height int
	FPS    float64

	// Still, if true, keeps the block in place so that the clip contains no
	// motion after the first frame.
	Still bool
}

// Frame renders frame i of the clip described by s: a white block moving
// left to right over a dark grey background.
func Frame(s Spec, i int) gocv.Mat {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 40, 40, 0), s.Height, s.Width, gocv.MatTypeCV8UC3)
	size := s.Height / 3
	x := 0
	if !s.Still && s.Frames > 1 {
		x = i * (s.Width - size) / (s.Frames - 1)
	}
	y := (s.Height - size) / 2
	gocv.Rectangle(&img, image.Rect(x, y, x+size, y+size), color.RGBA{255, 255, 255, 0}, -1)
	return img
}

// Write encodes the clip described by s to path.
func Write(path string, s Spec) error {
	w, err := gocv.VideoWriterFile(path, Codec, s.FPS, s.Width, s.Height, true)
	if err != nil {
		return fmt.Errorf("could not create clip writer: %w", err)
	}
	defer w.Close()

	for i := 0; i < s.Frames; i++ {
		img := Frame(s, i)
		err = w.Write(img)
		img.Close()
		if err != nil {
			return fmt.Errorf("could not write frame %d: %w", i, err)
		}
	}
	return nil
}

// Inspect decodes every frame of the clip at path and returns the number of
// frames and the frame dimensions.
func Inspect(path string) (frames, width, height int, err error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("could not open clip: %w", err)
	}
	defer vc.Close()

	img := gocv.NewMat()
	defer img.Close()
	for vc.Read(&img) && !img.Empty() {
		frames++
		width, height = img.Cols(), img.Rows()
	}
	return frames, width, height, nil
}
