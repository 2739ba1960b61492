/*
DESCRIPTION
  sink.go provides destinations for processed video frames.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sink provides destinations for processed video frames.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"gocv.io/x/gocv"

	"github.com/ausocean/utils/logging"
)

// Sink is a destination for processed frames.
type Sink interface {
	Write(img gocv.Mat) error
	Close() error
}

// Default writer parameters.
const (
	defaultFourCC = "DIVX"
	defaultFPS    = 25.0
	spaceBuffer   = 50000000 // 50MB.
)

var (
	errBadFourCC = errors.New("fourcc must be four characters")
	errBadFPS    = errors.New("frame rate must be positive")
	errClosed    = errors.New("sink is closed")
)

// Option is a functional option for configuring a VideoFile.
type Option func(s *VideoFile) error

// WithFourCC sets the codec used to encode frames.
func WithFourCC(c string) Option {
	return func(s *VideoFile) error {
		if len(c) != 4 {
			return errBadFourCC
		}
		s.fourcc = c
		return nil
	}
}

// WithFPS sets the frame rate written to the container. Streams that do not
// report a frame rate give 0, which is ignored in favour of the default.
func WithFPS(fps float64) Option {
	return func(s *VideoFile) error {
		if fps < 0 {
			return errBadFPS
		}
		if fps > 0 {
			s.fps = fps
		}
		return nil
	}
}

// WithSize fixes the frame size of the output. Frames of any other size are
// rejected. Without this option the size of the first frame is used.
func WithSize(width, height int) Option {
	return func(s *VideoFile) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("invalid frame size %dx%d", width, height)
		}
		s.width, s.height = width, height
		return nil
	}
}

// VideoFile encodes frames to a video file. The file is created on the
// first write.
type VideoFile struct {
	w      *gocv.VideoWriter
	path   string
	fourcc string
	fps    float64
	width  int
	height int
	frames int
	closed bool
	log    logging.Logger
}

// NewVideoFile returns a new VideoFile that will write to path.
func NewVideoFile(l logging.Logger, path string, opts ...Option) (*VideoFile, error) {
	s := &VideoFile{path: path, log: l, fourcc: defaultFourCC, fps: defaultFPS}
	for _, opt := range opts {
		err := opt(s)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Write encodes img to the file.
func (s *VideoFile) Write(img gocv.Mat) error {
	if s.closed {
		return errClosed
	}
	if s.w == nil {
		err := s.open(img)
		if err != nil {
			return err
		}
	}
	if img.Cols() != s.width || img.Rows() != s.height {
		return fmt.Errorf("frame size %dx%d does not match output size %dx%d", img.Cols(), img.Rows(), s.width, s.height)
	}
	err := s.w.Write(img)
	if err != nil {
		return fmt.Errorf("could not write frame: %w", err)
	}
	s.frames++
	return nil
}

// open creates the output directory and video writer, taking the frame size
// from img if one has not been set.
func (s *VideoFile) open(img gocv.Mat) error {
	if s.width == 0 || s.height == 0 {
		s.width, s.height = img.Cols(), img.Rows()
	}

	dir := filepath.Dir(s.path)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	s.log.Debug("checking disk space")
	var stat syscall.Statfs_t
	if err := syscall.Statfs(dir, &stat); err != nil {
		return fmt.Errorf("could not read system disk space, abandoning write: %w", err)
	}
	availableSpace := stat.Bavail * uint64(stat.Bsize)
	if availableSpace < spaceBuffer {
		return fmt.Errorf("reached limit of disk space with a buffer of %v bytes, abandoning write", spaceBuffer)
	}

	s.log.Debug("creating output file", "path", s.path, "fourcc", s.fourcc, "fps", s.fps, "width", s.width, "height", s.height)
	w, err := gocv.VideoWriterFile(s.path, s.fourcc, s.fps, s.width, s.height, img.Channels() != 1)
	if err != nil {
		return fmt.Errorf("could not create video writer: %w", err)
	}
	if !w.IsOpened() {
		w.Close()
		return fmt.Errorf("could not open %s for writing with codec %s", s.path, s.fourcc)
	}
	s.w = w
	return nil
}

// Frames returns the number of frames written.
func (s *VideoFile) Frames() int { return s.frames }

// Close finalises the file. Close is safe to call more than once.
func (s *VideoFile) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.w == nil {
		return nil
	}
	s.log.Debug("closing output file", "path", s.path, "frames", s.frames)
	return s.w.Close()
}

// Discard is a Sink that drops every frame.
type Discard struct{}

func (Discard) Write(img gocv.Mat) error { return nil }

func (Discard) Close() error { return nil }
