/*
DESCRIPTION
  loop.go provides Loop, which reads frames from a video device, passes each
  through a filter and writes the result to a sink, keeping count of frames
  and detections.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Alan Noble <alan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package loop provides an API for running a video file or stream through a
// frame filter and writing the processed frames.
package loop

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ausocean/videoloop/device"
	"github.com/ausocean/videoloop/device/file"
	"github.com/ausocean/videoloop/device/webcam"
	"github.com/ausocean/videoloop/filter"
	"github.com/ausocean/videoloop/loop/config"
	"github.com/ausocean/videoloop/sink"
)

// Progress is passed to the progress callback after every frame.
type Progress struct {
	Frames   uint          // Frames processed so far.
	Detected uint          // Frames so far in which the filter detected something.
	Result   filter.Result // Result for the latest frame.
}

// Option is a functional option for a Loop.
type Option func(l *Loop)

// WithProgress sets a callback that is called after each frame is written.
func WithProgress(fn func(Progress)) Option {
	return func(l *Loop) { l.progress = fn }
}

// WithSink sets the destination of processed frames, replacing the one
// chosen by the config.
func WithSink(s sink.Sink) Option {
	return func(l *Loop) { l.output = s }
}

// Loop runs frames from an input through a filter to an output.
type Loop struct {
	cfg      config.Config
	input    device.VideoDevice
	filter   filter.Filter
	output   sink.Sink
	progress func(Progress)

	mu      sync.Mutex
	running bool
	stop    chan struct{}
}

// New returns a pointer to a new Loop with input and filter set up from the
// given config. The output is created when Run is called, once the input's
// frame rate is known.
func New(c config.Config, opts ...Option) (*Loop, error) {
	if c.Logger == nil {
		return nil, errors.New("config has no logger")
	}
	err := c.Validate()
	if err != nil {
		return nil, fmt.Errorf("config struct is bad: %w", err)
	}

	in, err := newInput(c)
	if err != nil {
		return nil, err
	}

	f, err := filter.New(c)
	if err != nil {
		return nil, fmt.Errorf("could not create filter: %w", err)
	}

	return NewWith(c, in, f, opts...), nil
}

// NewWith returns a pointer to a new Loop using the given input and filter.
// The config is assumed to be valid.
func NewWith(c config.Config, in device.VideoDevice, f filter.Filter, opts ...Option) *Loop {
	l := &Loop{cfg: c, input: in, filter: f, stop: make(chan struct{})}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// newInput returns the video device selected by the config.
func newInput(c config.Config) (device.VideoDevice, error) {
	var d device.VideoDevice
	switch c.Input {
	case config.InputFile:
		d = file.New(c.Logger)
	case config.InputWebcam:
		d = webcam.New(c.Logger)
	case config.InputManual:
		d = device.NewManualInput(device.Properties{})
	default:
		return nil, fmt.Errorf("unrecognised input type: %v", c.Input)
	}

	err := d.Set(c)
	var me device.MultiError
	switch {
	case err == nil:
	case errors.As(err, &me):
		c.Logger.Warning("errors from configuring device", "device", d.Name(), "errors", err.Error())
	default:
		return nil, fmt.Errorf("could not set device %s: %w", d.Name(), err)
	}
	return d, nil
}

// newOutput returns the sink selected by the config.
func (l *Loop) newOutput(p device.Properties) (sink.Sink, error) {
	switch l.cfg.Output {
	case config.OutputFile:
		return sink.NewVideoFile(
			l.cfg.Logger,
			l.cfg.OutputPath,
			sink.WithFourCC(l.cfg.OutputCodec),
			sink.WithFPS(p.FPS),
		)
	default:
		return sink.Discard{}, nil
	}
}

// Input returns the loop's input device. For a manual input this is how
// frames are written in.
func (l *Loop) Input() device.VideoDevice { return l.input }

// Running returns true while Run is processing frames.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Stop asks a running loop to finish after the current frame. Frames already
// written are kept and the output is finalised as normal.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	select {
	case <-l.stop:
	default:
		close(l.stop)
	}
}

// Run processes frames until the input is exhausted, the configured maximum
// number of frames has been processed, or Stop is called. The input is
// stopped and the filter and output closed before returning. Run may only be
// called once.
func (l *Loop) Run() (*Summary, error) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil, errors.New("loop already running")
	}
	l.running = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	log := l.cfg.Logger
	defer func() {
		err := l.filter.Close()
		if err != nil {
			log.Error("could not close filter", "error", err.Error())
		}
	}()

	log.Debug("starting input", "device", l.input.Name())
	err := l.input.Start()
	if err != nil {
		return nil, fmt.Errorf("could not start input: %w", err)
	}
	defer func() {
		err := l.input.Stop()
		if err != nil {
			log.Error("could not stop input", "error", err.Error())
		}
	}()

	p := l.input.Properties()
	log.Info("input opened", "input", l.cfg.InputPath, "resolution", fmt.Sprintf("%dx%d", p.Width, p.Height), "fps", p.FPS)

	if l.output == nil {
		l.output, err = l.newOutput(p)
		if err != nil {
			return nil, fmt.Errorf("could not create output: %w", err)
		}
	}
	if l.cfg.Output == config.OutputFile {
		log.Info("output file", "output", l.cfg.OutputPath)
	}

	s := &Summary{
		Input:  l.cfg.InputPath,
		Output: l.cfg.OutputPath,
		Filter: filterName(l.cfg),
		Width:  p.Width,
		Height: p.Height,
	}

	err = l.process(s)
	cerr := l.output.Close()
	if err != nil {
		return s, err
	}
	if cerr != nil {
		return s, fmt.Errorf("could not close output: %w", cerr)
	}

	s.log(log)
	return s, nil
}

// process is the frame loop of Run.
func (l *Loop) process(s *Summary) error {
	img := gocv.NewMat()
	defer img.Close()

	start := time.Now()
	defer func() { s.Elapsed = time.Since(start) }()

	for {
		select {
		case <-l.stop:
			l.cfg.Logger.Info("loop stopped")
			return nil
		default:
		}

		if l.cfg.MaxFrames != 0 && s.Frames >= l.cfg.MaxFrames {
			l.cfg.Logger.Info("reached maximum frames", "frames", s.Frames)
			return nil
		}

		err := l.input.Read(&img)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not read frame %d: %w", s.Frames, err)
		}

		t := time.Now()
		r, err := l.filter.Apply(&img)
		if err != nil {
			return fmt.Errorf("could not filter frame %d: %w", s.Frames, err)
		}

		err = l.output.Write(img)
		if err != nil {
			return fmt.Errorf("could not write frame %d: %w", s.Frames, err)
		}

		s.add(r, time.Since(t))
		if l.progress != nil {
			l.progress(Progress{Frames: s.Frames, Detected: s.Detected, Result: r})
		}
	}
}
