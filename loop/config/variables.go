/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type in
  a string format, a function for updating the variable in the Config struct
  from a string, and finally, a validation function to check the validity of the
  corresponding field value in the Config.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/utils/logging"
)

// Config map Keys.
const (
	KeyAnnotate          = "Annotate"
	KeyCannyHigh         = "CannyHigh"
	KeyCannyKernel       = "CannyKernel"
	KeyCannyLow          = "CannyLow"
	KeyFilter            = "Filter"
	KeyHOGFinalThreshold = "HOGFinalThreshold"
	KeyHOGPadding        = "HOGPadding"
	KeyHOGScale          = "HOGScale"
	KeyHOGWinStride      = "HOGWinStride"
	KeyInput             = "Input"
	KeyInputPath         = "InputPath"
	KeyLogging           = "logging"
	KeyLoop              = "Loop"
	KeyMaxFrames         = "MaxFrames"
	KeyMotionAlgorithm   = "MotionAlgorithm"
	KeyMotionAlpha       = "MotionAlpha"
	KeyMotionBlur        = "MotionBlur"
	KeyMotionDilations   = "MotionDilations"
	KeyMotionErosions    = "MotionErosions"
	KeyMotionHistory     = "MotionHistory"
	KeyMotionKernel      = "MotionKernel"
	KeyMotionMinArea     = "MotionMinArea"
	KeyMotionReset       = "MotionReset"
	KeyMotionThreshold   = "MotionThreshold"
	KeyMotionTrigger     = "MotionTrigger"
	KeyOutput            = "Output"
	KeyOutputCodec       = "OutputCodec"
	KeyOutputPath        = "OutputPath"
)

// Config map parameter types.
const (
	typeString = "string"
	typeUint   = "uint"
	typeBool   = "bool"
	typeFloat  = "float"
)

// Default variable values.
const (
	defaultInput       = InputFile
	defaultOutput      = OutputNone
	defaultOutputCodec = "DIVX"
	defaultVerbosity   = logging.Info
	defaultFilter      = FilterNoOp
	defaultMotionAlg   = MotionAverage
)

// Variables describes the variables that can be used for loop control.
// These structs provide the name and type of variable, a function for updating
// this variable in a Config, and a function for validating the value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name:   KeyAnnotate,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.Annotate = parseBool(KeyAnnotate, v, c) },
	},
	{
		Name:   KeyCannyHigh,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.CannyHigh = parseFloat(KeyCannyHigh, v, c) },
	},
	{
		Name:   KeyCannyKernel,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.CannyKernel = parseUint(KeyCannyKernel, v, c) },
	},
	{
		Name:   KeyCannyLow,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.CannyLow = parseFloat(KeyCannyLow, v, c) },
	},
	{
		Name: KeyFilter,
		Type: "enum:NoOp,Canny,Motion,People",
		Update: func(c *Config, v string) {
			c.Filter = parseEnum(
				KeyFilter,
				v,
				map[string]uint8{
					"noop":   FilterNoOp,
					"canny":  FilterCanny,
					"motion": FilterMotion,
					"people": FilterPeople,
				},
				c,
			)
		},
		Validate: func(c *Config) {
			switch c.Filter {
			case FilterNoOp, FilterCanny, FilterMotion, FilterPeople:
			default:
				c.LogInvalidField(KeyFilter, defaultFilter)
				c.Filter = defaultFilter
			}
		},
	},
	{
		Name:   KeyHOGFinalThreshold,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.HOGFinalThreshold = parseFloat(KeyHOGFinalThreshold, v, c) },
	},
	{
		Name:   KeyHOGPadding,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.HOGPadding = parseUint(KeyHOGPadding, v, c) },
	},
	{
		Name:   KeyHOGScale,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.HOGScale = parseFloat(KeyHOGScale, v, c) },
	},
	{
		Name:   KeyHOGWinStride,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.HOGWinStride = parseUint(KeyHOGWinStride, v, c) },
	},
	{
		Name: KeyInput,
		Type: "enum:file,webcam,manual",
		Update: func(c *Config, v string) {
			c.Input = parseEnum(
				KeyInput,
				v,
				map[string]uint8{
					"file":   InputFile,
					"webcam": InputWebcam,
					"manual": InputManual,
				},
				c,
			)
		},
		Validate: func(c *Config) {
			switch c.Input {
			case InputFile, InputWebcam, InputManual:
			default:
				c.LogInvalidField(KeyInput, defaultInput)
				c.Input = defaultInput
			}
		},
	},
	{
		Name:   KeyInputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputPath = v },
	},
	{
		Name: KeyLogging,
		Type: "enum:Debug,Info,Warning,Error,Fatal",
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.Logger.Warning("invalid Logging param", "value", v)
			}
		},
		Validate: func(c *Config) {
			switch c.LogLevel {
			case logging.Debug, logging.Info, logging.Warning, logging.Error, logging.Fatal:
			default:
				c.LogInvalidField("LogLevel", defaultVerbosity)
				c.LogLevel = defaultVerbosity
			}
		},
	},
	{
		Name:   KeyLoop,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.Loop = parseBool(KeyLoop, v, c) },
	},
	{
		Name:   KeyMaxFrames,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MaxFrames = parseUint(KeyMaxFrames, v, c) },
	},
	{
		Name: KeyMotionAlgorithm,
		Type: "enum:Average,MOG,KNN,Difference",
		Update: func(c *Config, v string) {
			c.MotionAlgorithm = parseEnum(
				KeyMotionAlgorithm,
				v,
				map[string]uint8{
					"average":    MotionAverage,
					"mog":        MotionMOG,
					"knn":        MotionKNN,
					"difference": MotionDiff,
				},
				c,
			)
		},
		Validate: func(c *Config) {
			switch c.MotionAlgorithm {
			case MotionAverage, MotionMOG, MotionKNN, MotionDiff:
			default:
				c.LogInvalidField(KeyMotionAlgorithm, defaultMotionAlg)
				c.MotionAlgorithm = defaultMotionAlg
			}
		},
	},
	{
		Name:   KeyMotionAlpha,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MotionAlpha = parseFloat(KeyMotionAlpha, v, c) },
	},
	{
		Name:   KeyMotionBlur,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MotionBlur = parseUint(KeyMotionBlur, v, c) },
	},
	{
		Name:   KeyMotionDilations,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MotionDilations = parseUint(KeyMotionDilations, v, c) },
	},
	{
		Name:   KeyMotionErosions,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MotionErosions = parseUint(KeyMotionErosions, v, c) },
	},
	{
		Name:   KeyMotionHistory,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MotionHistory = parseUint(KeyMotionHistory, v, c) },
	},
	{
		Name:   KeyMotionKernel,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MotionKernel = parseUint(KeyMotionKernel, v, c) },
	},
	{
		Name:   KeyMotionMinArea,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MotionMinArea = parseFloat(KeyMotionMinArea, v, c) },
	},
	{
		Name:   KeyMotionReset,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MotionReset = parseFloat(KeyMotionReset, v, c) },
	},
	{
		Name:   KeyMotionThreshold,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MotionThreshold = parseFloat(KeyMotionThreshold, v, c) },
	},
	{
		Name:   KeyMotionTrigger,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MotionTrigger = parseFloat(KeyMotionTrigger, v, c) },
	},
	{
		Name: KeyOutput,
		Type: "enum:None,File",
		Update: func(c *Config, v string) {
			c.Output = parseEnum(
				KeyOutput,
				v,
				map[string]uint8{
					"none": OutputNone,
					"file": OutputFile,
				},
				c,
			)
		},
		Validate: func(c *Config) {
			switch c.Output {
			case OutputNone:
			case OutputFile:
				if c.OutputPath == "" {
					c.LogInvalidField(KeyOutputPath, "no output")
					c.Output = OutputNone
				}
			default:
				c.LogInvalidField(KeyOutput, defaultOutput)
				c.Output = defaultOutput
			}
		},
	},
	{
		Name:   KeyOutputCodec,
		Type:   typeString,
		Update: func(c *Config, v string) { c.OutputCodec = strings.ToUpper(v) },
		Validate: func(c *Config) {
			if len(c.OutputCodec) != 4 {
				c.LogInvalidField(KeyOutputCodec, defaultOutputCodec)
				c.OutputCodec = defaultOutputCodec
			}
		},
	},
	{
		Name:   KeyOutputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.OutputPath = v },
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

func parseFloat(n, v string, c *Config) float64 {
	_v, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
	}
	return _v
}

func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expect bool for param %s", n), "value", v)
	}
	return
}

func parseEnum(n, v string, enums map[string]uint8, c *Config) uint8 {
	_v, ok := enums[strings.ToLower(v)]
	if !ok {
		c.Logger.Warning(fmt.Sprintf("invalid value for %s param", n), "value", v)
	}
	return _v
}
