/*
DESCRIPTION
  run.go provides runner, which runs a single video through a loop and
  reports the result.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package cli

import (
	"context"
	"fmt"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/videoloop/loop"
	"github.com/ausocean/videoloop/loop/config"
	"github.com/ausocean/videoloop/report"
)

type runner struct {
	prog  Program
	log   logging.Logger
	store *report.Store // May be nil.
}

// run processes the input named by c. Cancelling ctx stops the loop after
// the current frame, leaving a complete output file. Failures to record or
// plot the run are logged only.
func (r *runner) run(ctx context.Context, c config.Config, plot string) error {
	l, err := loop.New(c)
	if err != nil {
		return fmt.Errorf("could not create loop: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			r.log.Info("interrupted, stopping loop")
			l.Stop()
		case <-done:
		}
	}()

	s, err := l.Run()
	if err != nil {
		return fmt.Errorf("could not process %s: %w", c.InputPath, err)
	}

	if r.store != nil {
		id, err := r.store.Record(r.prog.Name, s)
		if err != nil {
			r.log.Error("could not record run", "error", err.Error())
		} else {
			r.log.Debug("recorded run", "id", id)
		}
	}

	if plot != "" {
		err = report.Plot(plot, s)
		if err != nil {
			r.log.Error("could not plot scores", "error", err.Error())
		} else {
			r.log.Info("plotted scores", "path", plot)
		}
	}
	return nil
}
