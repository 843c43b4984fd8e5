package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/selection"
)

func TestTracePoints(t *testing.T) {
	steps := []selection.Step{
		{Round: 0, Feature: -1, Score: 10, Accepted: true},
		{Round: 1, Feature: -1, Score: 12, Accepted: false},
		{Round: 2, Feature: 3, Score: math.NaN(), Accepted: true},
		{Round: 3, Feature: -1, Score: 7, Accepted: true},
	}

	accepted, rejected, best := TracePoints(steps)
	assert.Equal(t, plotter.XYs{{X: 0, Y: 10}, {X: 3, Y: 7}}, accepted)
	assert.Equal(t, plotter.XYs{{X: 1, Y: 12}}, rejected)
	assert.Equal(t, plotter.XYs{{X: 0, Y: 10}, {X: 1, Y: 10}, {X: 3, Y: 7}}, best)
}

func TestPlotTrace(t *testing.T) {
	steps := []selection.Step{
		{Round: 0, Feature: 1, Score: 5, Accepted: true},
		{Round: 1, Feature: 0, Score: 3, Accepted: true},
		{Round: 2, Feature: 2, Score: 2.9, Accepted: false},
	}
	path := filepath.Join(t.TempDir(), "trace.png")

	require.NoError(t, PlotTrace(steps, "forward selection", path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotTraceWithoutScores(t *testing.T) {
	steps := []selection.Step{{Feature: 0, Score: math.NaN(), Accepted: true}}
	err := PlotTrace(steps, "rfe", filepath.Join(t.TempDir(), "trace.png"))

	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))

	err = PlotTrace(nil, "empty", filepath.Join(t.TempDir(), "trace.png"))
	assert.True(t, errors.As(err, &valErr))
}
