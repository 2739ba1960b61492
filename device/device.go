/*
DESCRIPTION
  device.go provides VideoDevice, an interface that describes a configurable
  video device that can be started and stopped from which decoded frames may
  be obtained.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package device provides an interface and implementations for input devices
// that can be started and stopped from which decoded video frames can be
// obtained.
package device

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ausocean/videoloop/loop/config"
)

// Properties describes the stream provided by a VideoDevice. Fields that the
// device cannot determine are left as zero.
type Properties struct {
	Width  int
	Height int
	FPS    float64
	Frames int // Number of frames in the stream, 0 if unknown or unbounded.
}

// VideoDevice describes a configurable video device from which decoded frames
// can be obtained.
type VideoDevice interface {
	// Name returns the name of the VideoDevice.
	Name() string

	// Set allows for configuration of the VideoDevice using a Config struct. All,
	// some or none of the fields of the Config struct may be used for configuration
	// by an implementation. An implementation should specify what fields are
	// considered.
	Set(c config.Config) error

	// Start will start the VideoDevice; after which the Read method may be
	// called to obtain frames.
	Start() error

	// Stop will stop the VideoDevice. From this point Reads will no longer be
	// successful.
	Stop() error

	// IsRunning is used to determine if the device is running.
	IsRunning() bool

	// Read decodes the next frame into img. io.EOF is returned when the
	// stream has no more frames.
	Read(img *gocv.Mat) error

	// Properties returns the properties of the stream. It is only meaningful
	// after Start has been called.
	Properties() Properties
}

// ErrNotRunning is returned by Read when the device has not been started.
var ErrNotRunning = errors.New("device not running")

// MultiError implements the built in error interface. MultiError is used here
// to collect multiple errors during validation of configuration parameters for
// VideoDevices.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("device: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}

// ManualInput is an implementation of the VideoDevice interface that represents
// a manual input mechanism, i.e. frames are written to this input through
// software (ManualInput also provides Write, unlike other implementations).
// Frames are queued in order of writing and copied out by Read, which blocks
// while the queue is empty. Once stopped, Read drains the queue and then
// returns io.EOF.
type ManualInput struct {
	mu        sync.Mutex
	cond      *sync.Cond
	isRunning bool
	stopped   bool
	props     Properties
	frames    []gocv.Mat
}

// NewManualInput provides a new ManualInput. The given properties are
// reported by Properties, they are not enforced on written frames.
func NewManualInput(p Properties) *ManualInput {
	m := &ManualInput{props: p}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Name returns the name of ManualInput i.e. "ManualInput".
func (m *ManualInput) Name() string { return "ManualInput" }

// Set is a stub to satisfy the VideoDevice interface; no configuration fields
// are required by ManualInput.
func (m *ManualInput) Set(c config.Config) error { return nil }

// Start sets the ManualInput isRunning flag to true.
func (m *ManualInput) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isRunning = true
	m.stopped = false
	return nil
}

// Stop marks the input as finished; queued frames may still be read.
func (m *ManualInput) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if len(m.frames) == 0 {
		m.isRunning = false
	}
	m.cond.Broadcast()
	return nil
}

// IsRunning returns true if Start has been called and the input has not been
// stopped and drained.
func (m *ManualInput) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isRunning
}

// Properties returns the properties given to NewManualInput.
func (m *ManualInput) Properties() Properties { return m.props }

// Write queues a copy of img for reading.
func (m *ManualInput) Write(img gocv.Mat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isRunning || m.stopped {
		return errors.New("manual input has not been started, can't write")
	}
	m.frames = append(m.frames, img.Clone())
	m.cond.Signal()
	return nil
}

// Read copies the oldest queued frame into img, waiting for a frame to be
// written if the queue is empty. If the queue is empty and the input has been
// stopped io.EOF is returned.
func (m *ManualInput) Read(img *gocv.Mat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isRunning {
		return ErrNotRunning
	}
	for len(m.frames) == 0 && !m.stopped {
		m.cond.Wait()
	}
	if len(m.frames) == 0 {
		m.isRunning = false
		return io.EOF
	}
	f := m.frames[0]
	m.frames = m.frames[1:]
	f.CopyTo(img)
	return f.Close()
}
