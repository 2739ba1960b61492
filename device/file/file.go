/*
DESCRIPTION
  file.go provides an implementation of the VideoDevice interface for video
  files and network streams that OpenCV can open.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package file provides an implementation of VideoDevice for files.
package file

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/videoloop/device"
	"github.com/ausocean/videoloop/loop/config"
)

var errNoPath = errors.New("input path bad or unset")

// VideoFile is an implementation of the VideoDevice interface for a file
// containing video data.
type VideoFile struct {
	vc        *gocv.VideoCapture
	path      string
	loop      bool
	isRunning bool
	log       logging.Logger
	set       bool
	props     device.Properties
	mu        sync.Mutex
}

// New returns a new VideoFile.
func New(l logging.Logger) *VideoFile { return &VideoFile{log: l} }

// NewWith returns a new VideoFile with required params provided i.e. the Set
// method does not need to be called.
func NewWith(l logging.Logger, path string, loop bool) *VideoFile {
	return &VideoFile{log: l, path: path, loop: loop, set: true}
}

// Name returns the name of the device.
func (m *VideoFile) Name() string {
	return "File"
}

// Set uses the InputPath and Loop fields of the config.
func (m *VideoFile) Set(c config.Config) error {
	if c.InputPath == "" {
		return errNoPath
	}
	m.path = c.InputPath
	m.loop = c.Loop
	m.set = true
	return nil
}

// Start will open the file at the location of the InputPath field of the
// config struct and read its stream properties.
func (m *VideoFile) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return errors.New("VideoFile has not been set with config")
	}
	vc, err := gocv.OpenVideoCapture(m.path)
	if err != nil {
		return fmt.Errorf("could not open video file: %w", err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return fmt.Errorf("could not open video file: %s", m.path)
	}
	m.vc = vc
	m.props = device.Properties{
		Width:  int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(vc.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    vc.Get(gocv.VideoCaptureFPS),
		Frames: int(vc.Get(gocv.VideoCaptureFrameCount)),
	}
	m.log.Debug("opened video file", "path", m.path, "width", m.props.Width, "height", m.props.Height, "fps", m.props.FPS)
	m.isRunning = true
	return nil
}

// Stop will close the capture such that any further reads will fail.
func (m *VideoFile) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vc == nil {
		return nil
	}
	err := m.vc.Close()
	m.vc = nil
	m.isRunning = false
	return err
}

// Read implements device.VideoDevice. If start has not been called, or Start
// has been called and Stop has since been called, an error is returned. At
// the end of the file io.EOF is returned, unless looping is enabled in which
// case reading continues from the first frame.
func (m *VideoFile) Read(img *gocv.Mat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vc == nil {
		return device.ErrNotRunning
	}

	if m.vc.Read(img) && !img.Empty() {
		return nil
	}

	if !m.loop {
		return io.EOF
	}

	m.log.Info("looping input file")
	m.vc.Set(gocv.VideoCapturePosFrames, 0)
	if !m.vc.Read(img) || img.Empty() {
		return fmt.Errorf("could not read after seek to start of %s", m.path)
	}
	return nil
}

// Properties returns the width, height, frame rate and frame count of the
// opened file.
func (m *VideoFile) Properties() device.Properties {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props
}

// IsRunning is used to determine if the VideoFile device is running.
func (m *VideoFile) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vc != nil && m.isRunning
}
