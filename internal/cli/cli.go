/*
DESCRIPTION
  cli.go provides the command line handling shared by the canny,
  motiondetect and peopledetect programs.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package cli runs a video loop program from command line flags.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/videoloop/loop/config"
	"github.com/ausocean/videoloop/report"
	"github.com/ausocean/videoloop/watch"
)

// Current software version.
const Version = "v0.1.0"

// Logging configuration.
const (
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logSuppress  = true
)

// Program describes one of the video loop programs.
type Program struct {
	Name          string
	Filter        uint8
	DefaultInput  string
	DefaultOutput string // If empty, video is only written when -out is given.
	Annotate      bool
}

// options holds parsed command line flags.
type options struct {
	input     string // Positional input argument, empty if not given.
	output    string
	cfgPath   string
	log       string
	verbosity string
	db        string
	plot      string
	watch     string
	loop      bool
	maxFrames uint
	version   bool
	webcam    bool

	// set holds the names of flags given on the command line.
	set map[string]bool
}

// parseFlags parses the program's flags and optional input path argument.
func parseFlags(p Program, args []string) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet(p.Name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [input]\n", p.Name)
		fs.PrintDefaults()
	}
	fs.StringVar(&o.output, "out", p.DefaultOutput, "output video path, empty for no output")
	fs.StringVar(&o.cfgPath, "config", "", "file of Key=value config variables")
	fs.StringVar(&o.log, "log", filepath.Join("log", p.Name+".log"), "log file path")
	fs.StringVar(&o.verbosity, "verbosity", "Info", "log verbosity: Debug, Info, Warning, Error or Fatal")
	fs.StringVar(&o.db, "db", "", "SQLite database in which to record runs")
	fs.StringVar(&o.plot, "plot", "", "image file in which to plot per frame scores")
	fs.StringVar(&o.watch, "watch", "", "directory to watch for videos to process")
	fs.BoolVar(&o.loop, "loop", false, "rewind the input when it ends")
	fs.UintVar(&o.maxFrames, "max-frames", 0, "stop after this many frames, 0 for no limit")
	fs.BoolVar(&o.version, "version", false, "show version")
	fs.BoolVar(&o.webcam, "webcam", false, "read from the webcam with the id given as input")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	switch fs.NArg() {
	case 0:
	case 1:
		o.input = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected at most one input, got %d", fs.NArg())
	}
	return o, nil
}

// defaults returns the program's default config variables.
func (o *options) defaults(p Program) map[string]string {
	v := map[string]string{
		config.KeyFilter:    filterName(p.Filter),
		config.KeyInput:     "file",
		config.KeyInputPath: p.DefaultInput,
		config.KeyLogging:   "Info",
		config.KeyOutput:    "None",
	}
	if p.Annotate {
		v[config.KeyAnnotate] = "true"
	}
	if p.DefaultOutput != "" {
		v[config.KeyOutput] = "File"
		v[config.KeyOutputPath] = p.DefaultOutput
	}
	return v
}

// flags returns config variables for the flags and argument given on the
// command line.
func (o *options) flags() map[string]string {
	v := make(map[string]string)
	if o.webcam {
		v[config.KeyInput] = "webcam"
		v[config.KeyInputPath] = "0"
	}
	if o.input != "" {
		v[config.KeyInputPath] = o.input
	}
	if o.set["out"] {
		v[config.KeyOutput] = "None"
		v[config.KeyOutputPath] = o.output
		if o.output != "" {
			v[config.KeyOutput] = "File"
		}
	}
	if o.set["verbosity"] {
		v[config.KeyLogging] = o.verbosity
	}
	if o.set["loop"] {
		v[config.KeyLoop] = strconv.FormatBool(o.loop)
	}
	if o.set["max-frames"] {
		v[config.KeyMaxFrames] = strconv.FormatUint(uint64(o.maxFrames), 10)
	}
	return v
}

// config builds the loop config from the program defaults, then the
// optional config file, then the command line.
func (o *options) config(p Program, log logging.Logger) (config.Config, error) {
	cfg := config.Config{Logger: log, LogLevel: logging.Info}
	cfg.Update(o.defaults(p))
	if o.cfgPath != "" {
		err := cfg.UpdateFromFile(o.cfgPath)
		if err != nil {
			return cfg, err
		}
	}
	cfg.Update(o.flags())
	return cfg, nil
}

func filterName(f uint8) string {
	switch f {
	case config.FilterCanny:
		return "Canny"
	case config.FilterMotion:
		return "Motion"
	case config.FilterPeople:
		return "People"
	default:
		return "NoOp"
	}
}

// derivedPath returns path with the base name of input inserted before its
// extension, e.g. output/canny.avi and in/cars.mp4 give output/canny-cars.avi.
func derivedPath(path, input string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return strings.TrimSuffix(path, ext) + "-" + stem + ext
}

// Main runs the program, exiting on error.
func Main(p Program) {
	o, err := parseFlags(p, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if o.version {
		fmt.Println(Version)
		os.Exit(0)
	}

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   o.log,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	defer fileLog.Close()

	log := logging.New(logging.Info, io.MultiWriter(os.Stdout, fileLog), logSuppress)
	log.Info("starting "+p.Name, "version", Version)

	cfg, err := o.config(p, log)
	if err != nil {
		log.Fatal("could not load config", "error", err.Error())
	}
	log.SetLevel(cfg.LogLevel)

	var store *report.Store
	if o.db != "" {
		store, err = report.Open(o.db)
		if err != nil {
			log.Fatal("could not open run database", "error", err.Error())
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := &runner{prog: p, log: log, store: store}
	if o.watch == "" {
		err = r.run(ctx, cfg, o.plot)
		if err != nil {
			log.Fatal("could not run "+p.Name, "error", err.Error())
		}
		return
	}

	w, err := watch.New(log, o.watch)
	if err != nil {
		log.Fatal("could not watch directory", "error", err.Error())
	}
	defer w.Close()
	log.Info("watching for videos", "dir", o.watch)
	err = w.Run(ctx, func(path string) error {
		c := cfg
		c.InputPath = path
		if c.Output == config.OutputFile {
			c.OutputPath = derivedPath(cfg.OutputPath, path)
		}
		plot := o.plot
		if plot != "" {
			plot = derivedPath(plot, path)
		}
		return r.run(ctx, c, plot)
	})
	if err != nil {
		log.Fatal("watcher failed", "error", err.Error())
	}
}
