// Package report renders search traces as charts.
package report

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/selection"
)

// Default chart size.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

var (
	acceptedColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	rejectedColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// TracePoints splits the scored steps of a trace into accepted and rejected
// points, plus the best-so-far curve. The x coordinate is the position in
// the trace. Steps with a NaN score are skipped.
func TracePoints(steps []selection.Step) (accepted, rejected, best plotter.XYs) {
	incumbent := math.Inf(1)
	for i, s := range steps {
		if math.IsNaN(s.Score) {
			continue
		}
		pt := plotter.XY{X: float64(i), Y: s.Score}
		if s.Accepted {
			accepted = append(accepted, pt)
		} else {
			rejected = append(rejected, pt)
		}
		if s.Score < incumbent {
			incumbent = s.Score
		}
		best = append(best, plotter.XY{X: float64(i), Y: incumbent})
	}
	return accepted, rejected, best
}

// PlotTrace draws the scores of steps and saves the chart to path. The image
// format follows the file extension (png, svg, pdf, ...).
//
// Returns a ValueError when no step carries a score, as is the case for
// recursive elimination traces.
func PlotTrace(steps []selection.Step, title, path string) error {
	const op = "report.PlotTrace"

	accepted, rejected, best := TracePoints(steps)
	if len(best) == 0 {
		return errors.NewValueError(op, "trace has no scored steps to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "score"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(best)
	if err != nil {
		return errors.Wrap(err, "failed to build best-score line")
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("best so far", line)

	if err := addScatter(p, accepted, acceptedColor, "accepted"); err != nil {
		return err
	}
	if err := addScatter(p, rejected, rejectedColor, "rejected"); err != nil {
		return err
	}

	if err := p.Save(Width, Height, path); err != nil {
		return errors.Wrapf(err, "failed to save trace plot to %s", path)
	}
	return nil
}

func addScatter(p *plot.Plot, pts plotter.XYs, c color.Color, label string) error {
	if len(pts) == 0 {
		return nil
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrapf(err, "failed to build %s scatter", label)
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(sc)
	p.Legend.Add(label, sc)
	return nil
}
