package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runningwild/inflex/pkg/config"
	"github.com/runningwild/inflex/pkg/store"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	log.SetOutput(io.Discard)
	t.Cleanup(func() {
		stdout = old
		log.SetOutput(logrus.StandardLogger().Out)
	})
	return &buf
}

func flagsFor(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := SetupFlags(fs)
	require.NoError(t, fs.Parse(args))
	return f
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := flagsFor(t).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := flagsFor(t, "-coeffs", "1, 0, -3, 0", "-min", "-3", "-max", "3", "-step", "0.01",
		"-format", "json", "-onset", "-v").LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, -3, 0}, cfg.Curve.Coefficients)
	assert.Equal(t, config.Sweep{Min: -3, Max: 3, Step: 0.01}, cfg.Sweep)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Onset)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := flagsFor(t, "-coeffs", "1,x").LoadConfig()
	assert.ErrorContains(t, err, "bad coefficient")

	_, err = flagsFor(t, "-step", "0").LoadConfig()
	assert.ErrorContains(t, err, "step must be positive")

	_, err = flagsFor(t, "-config", filepath.Join(t.TempDir(), "missing.yaml")).LoadConfig()
	assert.ErrorContains(t, err, "failed to load config file")
}

func TestWriteConfigThenLoad(t *testing.T) {
	captureStdout(t)
	path := filepath.Join(t.TempDir(), "inflex.yaml")

	f := flagsFor(t, "-coeffs", "1,0,0", "-precision", "0", "-write-config", path)
	cfg, err := f.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Output.Precision)
	f.MaybeWriteConfig(cfg)

	loaded, err := flagsFor(t, "-config", path).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestScanText(t *testing.T) {
	out := captureStdout(t)
	cfg := config.Default()
	cfg.Output.Symbols = "ascii"
	cfg.Output.Precision = 0

	require.NoError(t, scan(context.Background(), cfg))
	assert.Equal(t, `(-8,256)\(-4,128)\(0,0)/`+"\n", out.String())
}

func TestScanStore(t *testing.T) {
	out := captureStdout(t)
	path := filepath.Join(t.TempDir(), "runs.db")

	cfg := config.Default()
	cfg.Curve = config.Curve{Coefficients: []float64{1, 0, -3, 0}}
	cfg.Sweep = config.Sweep{Min: -3, Max: 3, Step: 0.01}
	cfg.Output.Format = "json"
	cfg.Store.Path = path
	require.NoError(t, scan(context.Background(), cfg))
	assert.Equal(t, 3, bytes.Count(out.Bytes(), []byte("\n")))

	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "x^3 - 3x", runs[0].Curve)
	assert.Equal(t, 601, runs[0].Samples)

	events, err := st.Events(context.Background(), runs[0].ID)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestScanCancelled(t *testing.T) {
	captureStdout(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, scan(ctx, config.Default()), context.Canceled)
}

func TestBench(t *testing.T) {
	captureStdout(t)
	cfg := config.Default()
	cfg.Sweep = config.Sweep{Min: -3, Max: 3, Step: 0.01}
	cfg.Curve = config.Curve{Coefficients: []float64{1, 0, -3, 0}}

	res, err := bench(cfg, 3)
	require.NoError(t, err)
	assert.Equal(t, 3*601, res.Samples)
	assert.Equal(t, 9, res.Events)
	assert.Equal(t, int64(3*601), res.Hist.Count())
	assert.Greater(t, res.Throughput, 0.0)

	_, err = bench(cfg, 0)
	assert.Error(t, err)
}
