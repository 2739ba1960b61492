/*
DESCRIPTION
  plot.go provides Plot, which renders the per frame filter scores of a run.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package report

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/videoloop/loop"
)

// Plot dimensions.
const (
	plotWidth  = 10 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// ErrNoScores is returned by Plot for a run with no frames.
var ErrNoScores = errors.New("no scores to plot")

// Plot saves a line plot of the summary's per frame scores to path. The
// image format is taken from the file extension, e.g. ".png" or ".svg".
func Plot(path string, sum *loop.Summary) error {
	if sum == nil || len(sum.Scores) == 0 {
		return ErrNoScores
	}

	p := plot.New()
	p.Title.Text = sum.String()
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "score"

	pts := make(plotter.XYs, len(sum.Scores))
	for i, s := range sum.Scores {
		pts[i] = plotter.XY{X: float64(i + 1), Y: s}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "could not create score line")
	}
	line.Width = vg.Points(1)
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line, plotter.NewGrid())

	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return errors.Wrap(err, "could not create plot dir")
	}
	return errors.Wrap(p.Save(plotWidth, plotHeight, path), "could not save plot")
}
