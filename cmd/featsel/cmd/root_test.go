package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/featsel/dataset"
	"github.com/YuminosukeSato/featsel/pkg/errors"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

// linearCSV writes a synthetic linear dataset with columns x0..xN and y.
func linearCSV(t *testing.T, coef []float64, noise float64, seed uint64) string {
	t.Helper()
	X, y, err := dataset.Linear(200, coef, noise, seed)
	require.NoError(t, err)
	frame, err := dataset.ToFrame(X, y, "y")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "data.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, dataset.WriteCSV(f, frame))
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, Version, strings.TrimSpace(out))

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "featsel "+Version)
}

func TestForwardCmd(t *testing.T) {
	path := linearCSV(t, []float64{10, 8, 0, 6, 0, 0}, 1, 7)

	out, err := execute(t, "forward", "-d", path, "-t", "y", "--max-features", "6")
	require.NoError(t, err)
	assert.Equal(t, "0\tx0\n1\tx1\n3\tx3\n", out)
}

func TestForwardCmdTracePlotAndMetrics(t *testing.T) {
	path := linearCSV(t, []float64{10, 8, 0, 6, 0, 0}, 1, 7)
	dir := t.TempDir()
	plotPath := filepath.Join(dir, "trace.png")
	metricsPath := filepath.Join(dir, "featsel.prom")

	_, err := execute(t, "forward", "-d", path, "-t", "y", "--max-features", "6",
		"--cache-size", "64", "--trace-plot", plotPath, "--metrics-file", metricsPath)
	require.NoError(t, err)

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "featsel_scorer_evaluations_total")
	assert.Contains(t, string(metrics), `engine="forward_selection"`)
}

func TestForwardCmdConfigurationError(t *testing.T) {
	path := linearCSV(t, []float64{1, 2}, 0.1, 1)

	_, err := execute(t, "forward", "-d", path, "-t", "y", "--min-features", "3", "--max-features", "2")
	assert.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)

	_, err = execute(t, "forward", "-d", path, "-t", "y", "--scorer", "aic")
	assert.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)
}

func TestForwardCmdRequiresData(t *testing.T) {
	_, err := execute(t, "forward", "-t", "y")
	assert.Error(t, err)

	path := linearCSV(t, []float64{1, 2}, 0.1, 1)
	_, err = execute(t, "forward", "-d", path, "-t", "missing")
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument), "got %v", err)
}

func TestRFECmd(t *testing.T) {
	path := linearCSV(t, []float64{10, 8, 2, 6, 5}, 0.5, 3)

	out, err := execute(t, "rfe", "-d", path, "-t", "y", "--n-features", "4")
	require.NoError(t, err)
	assert.Equal(t, "0\tx0\n1\tx1\n3\tx3\n4\tx4\n", out)

	_, err = execute(t, "rfe", "-d", path, "-t", "y", "--n-features", "5")
	assert.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)
}

func TestAnnealCmd(t *testing.T) {
	path := linearCSV(t, []float64{5, 0, 3, 0, 0, 2}, 0.5, 11)
	args := []string{"anneal", "-d", path, "-t", "y", "--iterations", "60", "--seed", "42", "--mask"}

	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)

	mask := strings.TrimSpace(first)
	assert.Equal(t, first, second, "same seed must give the same mask")
	assert.Len(t, mask, 6)
	assert.Contains(t, mask, "1")
	assert.Equal(t, "", strings.Trim(mask, "01"))
}

func TestAnnealCmdInvalidControlRate(t *testing.T) {
	path := linearCSV(t, []float64{1, 2}, 0.1, 1)
	_, err := execute(t, "anneal", "-d", path, "-t", "y", "--control-rate", "0")
	assert.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)
}

func TestVarianceCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c,d\n1,6,0,5\n1,2,4,5\n1,7,8,5\n"), 0o644))

	out, err := execute(t, "variance", "-d", path)
	require.NoError(t, err)
	assert.Equal(t, "1\tb\n2\tc\n", out)

	out, err = execute(t, "variance", "-d", path, "--threshold", "10")
	require.NoError(t, err)
	assert.Equal(t, "2\tc\n", out)
}

func TestConfigFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "featsel.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("forward:\n  max_features: 3\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "max_features: 3")

	t.Setenv("FEATSEL_FORWARD_MAX_FEATURES", "4")
	out, err = execute(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "max_features: 4")

	// 環境変数より設定ファイルのほうが優先度が低い。フラグは最優先
	path := linearCSV(t, []float64{10, 8, 0, 6, 0, 0}, 1, 7)
	out, err = execute(t, "--config", cfgPath, "forward", "-d", path, "-t", "y", "--max-features", "2")
	require.NoError(t, err)
	assert.Equal(t, "0\tx0\n1\tx1\n", out)
}

func TestConfigWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	_, err := execute(t, "config", "write", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stopping_rule: relative")

	_, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
}

func TestLogFlags(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "version")
	assert.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)
}
