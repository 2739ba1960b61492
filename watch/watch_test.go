/*
DESCRIPTION
  watch_test.go provides testing of the directory watcher.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	w, err := New((*logging.TestLogger)(t), dir, WithSettle(100*time.Millisecond))
	if err != nil {
		t.Fatalf("could not create watcher: %v", err)
	}
	defer w.Close()

	got := make(chan string, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error)
	go func() {
		done <- w.Run(ctx, func(path string) error {
			got <- filepath.Base(path)
			if filepath.Base(path) == "bad.avi" {
				return errors.New("bad file")
			}
			return nil
		})
	}()

	for _, name := range []string{"notes.txt", "bad.avi", "clip.MP4"} {
		err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644)
		if err != nil {
			t.Fatalf("could not write %s: %v", name, err)
		}
	}

	want := map[string]bool{"bad.avi": true, "clip.MP4": true}
	timeout := time.After(5 * time.Second)
	for len(want) > 0 {
		select {
		case name := <-got:
			if !want[name] {
				t.Errorf("unexpected file handled: %s", name)
			}
			delete(want, name)
		case <-timeout:
			t.Fatalf("files not handled: %v", want)
		}
	}

	select {
	case name := <-got:
		t.Errorf("file handled more than once or unexpectedly: %s", name)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error from Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewBadDir(t *testing.T) {
	_, err := New((*logging.TestLogger)(t), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error watching missing directory")
	}
}
