/*
DESCRIPTION
  webcam.go provides an implementation of VideoDevice for webcams.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package webcam provides an implementation of VideoDevice for webcams.
package webcam

import (
	"errors"
	"fmt"
	"strconv"

	"gocv.io/x/gocv"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/videoloop/device"
	"github.com/ausocean/videoloop/loop/config"
)

// Used to indicate package in logging.
const pkg = "webcam: "

// Configuration defaults.
const defaultDeviceID = 0

// Configuration field errors.
var errBadDeviceID = errors.New("device index bad or unset, defaulting")

// Webcam is an implementation of the VideoDevice interface for a capture
// device such as a USB webcam.
type Webcam struct {
	vc        *gocv.VideoCapture
	log       logging.Logger
	id        int
	props     device.Properties
	isRunning bool
}

// New returns a new Webcam.
func New(l logging.Logger) *Webcam {
	return &Webcam{log: l}
}

// Name returns the name of the device.
func (w *Webcam) Name() string {
	return "Webcam"
}

// Set will parse the capture device index from the InputPath field of the
// given Config. If the index is not valid, an error is added to the
// MultiError and the default device is used.
func (w *Webcam) Set(c config.Config) error {
	var errs device.MultiError
	id, err := strconv.Atoi(c.InputPath)
	if err != nil || id < 0 {
		errs = append(errs, errBadDeviceID)
		id = defaultDeviceID
	}
	w.id = id
	if len(errs) != 0 {
		return errs
	}
	return nil
}

// Start opens the capture device.
func (w *Webcam) Start() error {
	w.log.Info(pkg+"opening capture device", "id", w.id)
	vc, err := gocv.VideoCaptureDevice(w.id)
	if err != nil {
		return fmt.Errorf("could not open capture device %d: %w", w.id, err)
	}
	w.vc = vc
	w.props = device.Properties{
		Width:  int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(vc.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    vc.Get(gocv.VideoCaptureFPS),
	}
	w.isRunning = true
	w.log.Info(pkg+"webcam started", "width", w.props.Width, "height", w.props.Height)
	return nil
}

// Stop closes the capture device.
func (w *Webcam) Stop() error {
	if !w.isRunning {
		return nil
	}
	w.isRunning = false
	err := w.vc.Close()
	w.vc = nil
	if err != nil {
		return fmt.Errorf("could not close capture device: %w", err)
	}
	return nil
}

// Read grabs the next frame from the device. Empty grabs, which happen while
// a camera is warming up, are retried a bounded number of times.
func (w *Webcam) Read(img *gocv.Mat) error {
	const maxEmpty = 50
	if w.vc == nil {
		return device.ErrNotRunning
	}
	for i := 0; i < maxEmpty; i++ {
		if !w.vc.Read(img) {
			return errors.New("capture device closed")
		}
		if !img.Empty() {
			return nil
		}
	}
	return fmt.Errorf("no frame after %d reads", maxEmpty)
}

// Properties returns the width, height and frame rate reported by the device.
func (w *Webcam) Properties() device.Properties { return w.props }

// IsRunning is used to determine if the webcam is running.
func (w *Webcam) IsRunning() bool {
	return w.isRunning
}
