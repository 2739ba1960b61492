/*
DESCRIPTION
  watch.go provides Watcher, which reports video files written to a directory
  once they have stopped changing.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package watch provides a directory watcher that hands newly written video
// files, one at a time, to a processing function.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"
)

// Default settings.
const (
	defaultSettle = 2 * time.Second
)

// DefaultExts are the file extensions watched by default.
var DefaultExts = []string{".mp4", ".avi", ".mkv", ".mov", ".m4v"}

// Option is a functional option for a Watcher.
type Option func(w *Watcher)

// WithSettle sets how long a file must go unchanged before it is handled.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithExts sets the file extensions that are handled, replacing DefaultExts.
func WithExts(exts ...string) Option {
	return func(w *Watcher) {
		w.exts = make(map[string]bool)
		for _, e := range exts {
			w.exts[strings.ToLower(e)] = true
		}
	}
}

// Watcher watches a single directory.
type Watcher struct {
	log    logging.Logger
	dir    string
	settle time.Duration
	exts   map[string]bool
	fw     *fsnotify.Watcher
}

// New returns a Watcher that is already watching dir, so files written after
// New returns are seen by Run.
func New(l logging.Logger, dir string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %w", err)
	}
	err = fw.Add(dir)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("could not watch %s: %w", dir, err)
	}

	w := &Watcher{log: l, dir: dir, settle: defaultSettle, fw: fw}
	WithExts(DefaultExts...)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run calls fn with the path of each matching file created or written in the
// directory, once the file has gone unchanged for the settle time. Calls are
// made serially from Run's goroutine. Errors from fn are logged and do not
// stop the watcher. Run returns when ctx is done or the Watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(path string) error) error {
	tick := time.NewTicker(w.settle / 4)
	defer tick.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.exts[strings.ToLower(filepath.Ext(ev.Name))] {
				continue
			}
			switch {
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				w.log.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
				pending[ev.Name] = time.Now()
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				delete(pending, ev.Name)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warning("watcher error", "error", err.Error())

		case now := <-tick.C:
			var ready []string
			for path, t := range pending {
				if now.Sub(t) >= w.settle {
					ready = append(ready, path)
				}
			}
			sort.Strings(ready)
			for _, path := range ready {
				delete(pending, path)
				w.log.Info("processing file", "path", path)
				err := fn(path)
				if err != nil {
					w.log.Error("could not process file", "path", path, "error", err.Error())
				}
				if ctx.Err() != nil {
					return nil
				}
			}
		}
	}
}

// Close stops watching the directory.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
