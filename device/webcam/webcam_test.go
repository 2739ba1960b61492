/*
DESCRIPTION
  webcam_test.go tests the webcam VideoDevice.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package webcam

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/videoloop/device"
	"github.com/ausocean/videoloop/loop/config"
)

func TestSet(t *testing.T) {
	tests := []struct {
		path    string
		wantID  int
		wantErr bool
	}{
		{path: "2", wantID: 2},
		{path: "0", wantID: 0},
		{path: "", wantID: defaultDeviceID, wantErr: true},
		{path: "-1", wantID: defaultDeviceID, wantErr: true},
		{path: "/dev/video0", wantID: defaultDeviceID, wantErr: true},
	}

	l := logging.New(logging.Debug, &bytes.Buffer{}, true) // Discard logs.
	for i, test := range tests {
		w := New(l)
		err := w.Set(config.Config{Logger: l, InputPath: test.path})
		if (err != nil) != test.wantErr {
			t.Errorf("unexpected error state for test %d: %v", i, err)
		}
		if err != nil {
			var me device.MultiError
			if !errors.As(err, &me) {
				t.Errorf("expected MultiError for test %d, got: %T", i, err)
			}
		}
		if w.id != test.wantID {
			t.Errorf("unexpected device id for test %d\nwant: %d\ngot: %d", i, test.wantID, w.id)
		}
	}
}

func TestIsRunning(t *testing.T) {
	l := logging.New(logging.Debug, &bytes.Buffer{}, true) // Discard logs.
	d := New(l)

	err := d.Set(config.Config{Logger: l, InputPath: "0"})
	if err != nil {
		t.Fatalf("could not set device: %v", err)
	}

	err = d.Start()
	if err != nil {
		t.Skipf("could not start device: %v", err)
	}

	if !d.IsRunning() {
		t.Error("device isn't running, when it should be")
	}

	err = d.Stop()
	if err != nil {
		t.Error(err.Error())
	}

	if d.IsRunning() {
		t.Error("device is running, when it should not be")
	}
}
