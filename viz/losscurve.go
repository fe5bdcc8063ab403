// Package viz renders optimizer loss trajectories with gonum/plot.
package viz

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/linfit/linear"
	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// Default image size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Series is one named loss trajectory, as collected with linear.WithCheckpoint.
type Series struct {
	Name        string
	Checkpoints []linear.Checkpoint
}

// LossCurve plots checkpoint loss against iteration, one line per series.
func LossCurve(title string, series ...Series) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, errors.NewValueError("viz.LossCurve", "no series to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "loss"
	p.Add(plotter.NewGrid())

	var lines []interface{}
	for _, s := range series {
		if len(s.Checkpoints) == 0 {
			return nil, errors.NewValueError("viz.LossCurve", "series "+s.Name+" has no checkpoints")
		}
		pts := make(plotter.XYs, len(s.Checkpoints))
		for i, c := range s.Checkpoints {
			pts[i].X = float64(c.Iteration)
			pts[i].Y = c.Loss
		}
		lines = append(lines, s.Name, pts)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, errors.Wrap(err, "viz.LossCurve")
	}
	return p, nil
}

// SaveLossCurve writes the loss curve to path; the extension selects the
// format (png, svg, pdf, ...).
func SaveLossCurve(path, title string, series ...Series) error {
	p, err := LossCurve(title, series...)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return errors.Wrapf(err, "save loss curve to %s", path)
	}
	return nil
}

// WriteLossCurve encodes the loss curve in the given format to w.
func WriteLossCurve(w io.Writer, format, title string, series ...Series) error {
	p, err := LossCurve(title, series...)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return errors.Wrapf(err, "encode loss curve as %s", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "write loss curve")
	}
	return nil
}
