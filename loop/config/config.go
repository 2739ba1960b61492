/*
NAME
  config.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for a video loop.
package config

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/ausocean/utils/logging"
)

// Enums to define inputs, outputs, filters and motion algorithms.
const (
	// Indicates no option has been set.
	NothingDefined = iota

	// Inputs.
	InputFile
	InputWebcam
	InputManual

	// Outputs.
	OutputNone
	OutputFile
)

// The different frame filters.
const (
	FilterNoOp = iota
	FilterCanny
	FilterMotion
	FilterPeople
)

// The different motion detection algorithms used by the motion filter.
const (
	MotionAverage = iota
	MotionMOG
	MotionKNN
	MotionDiff
)

// Config provides parameters relevant to a video loop. Default values for
// these fields are defined in variables.go and applied by Validate.
type Config struct {
	// Annotate enables drawing of detection regions onto output frames
	// for filters that do not always annotate (motion).
	Annotate bool

	CannyKernel uint    // Size of the square Gaussian blur kernel applied before edge detection.
	CannyLow    float64 // Lower hysteresis threshold for edge detection.
	CannyHigh   float64 // Upper hysteresis threshold for edge detection.

	// Filter selects the per frame transform.
	//
	// Valid values are defined by enums:
	// FilterNoOp:
	//		Frames are passed through unchanged.
	// FilterCanny:
	//		Edge detection, only edge pixels keep their colour.
	// FilterMotion:
	//		Motion detection using the algorithm given by MotionAlgorithm.
	// FilterPeople:
	//		HOG people detection, detections are boxed and labelled.
	Filter uint8

	HOGFinalThreshold float64 // Grouping threshold for HOG detections.
	HOGPadding        uint    // Padding added around the frame for HOG detection.
	HOGScale          float64 // Scale step between HOG detection window sizes.
	HOGWinStride      uint    // HOG window stride in pixels.

	// Input defines the video source.
	//
	// Valid values are defined by enums:
	// InputFile:
	//		Read from a video file or stream URL given by InputPath.
	// InputWebcam:
	//		Read from a capture device, InputPath holds the device index.
	// InputManual:
	//		Frames are written to the input by software.
	Input uint8

	// InputPath defines the input file location or stream URL for file input,
	// or the capture device index for webcam input.
	InputPath string

	// Logger holds an implementation of the Logger interface. This must be set
	// for the loop to work correctly.
	Logger logging.Logger

	// LogLevel is the logging verbosity level.
	// Valid values are defined by enums from the logger package: logging.Debug,
	// logging.Info, logging.Warning logging.Error, logging.Fatal.
	LogLevel int8

	Loop      bool // If true will restart reading of input after the end of the stream.
	MaxFrames uint // Maximum number of frames to process. A value of 0 means unlimited.

	MotionAlgorithm uint8   // Motion detection algorithm, one of the Motion* enums.
	MotionAlpha     float64 // Weight of the current frame in the moving average (Average only).
	MotionBlur      uint    // Size of the box blur applied before motion detection (Average only).
	MotionDilations uint    // Dilation iterations before contour extraction (Average only).
	MotionErosions  uint    // Erosion iterations before contour extraction (Average only).
	MotionHistory   uint    // Length of filter's history (KNN & MOG only).
	MotionKernel    uint    // Size of kernel used for filling holes and removing noise (KNN & MOG only).
	MotionMinArea   float64 // Used to ignore small areas of motion detection (KNN & MOG only).
	MotionReset     float64 // Percentage of changed pixels above which the background is reset (Average only).
	MotionThreshold float64 // Intensity value that is considered motion.
	MotionTrigger   float64 // Percentage of changed pixels that counts as a frame with motion (Average only).

	// Output defines where processed frames go.
	//
	// Valid values are defined by enums:
	// OutputNone:
	//		Processed frames are discarded.
	// OutputFile:
	//		Frames are encoded to the file given by OutputPath using OutputCodec.
	Output uint8

	OutputCodec string // FourCC of the output video codec.
	OutputPath  string // Output video file location for file output.
}

// Validate checks for any errors in the config fields and defaults settings
// if particular parameters have not been defined.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values and converting into correct type, and then
// sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

// UpdateFromFile reads configuration variables from a file of KEY=value
// lines (dotenv format) and applies them using Update.
func (c *Config) UpdateFromFile(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("could not read config file %s: %w", path, err)
	}
	c.Update(vars)
	return nil
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
