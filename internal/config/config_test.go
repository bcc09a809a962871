package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "medical_examination.csv", c.Input)
	assert.Equal(t, "catplot.png", c.CatPlotFile)
	assert.Equal(t, "heatmap.png", c.HeatMapFile)
	assert.Equal(t, 25.0, c.OverweightBMI)
	assert.Equal(t, 0.025, c.PercentileLow)
	assert.Equal(t, 0.975, c.PercentileHigh)
	assert.Equal(t, -0.1, c.HeatMapVMin)
	assert.Equal(t, 0.2, c.HeatMapVMax)
	assert.Equal(t, filepath.Join(".", "heatmap.png"), c.HeatMapPath())
}

func TestSaveThenLoadRoundTripsFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	c, err := Load("")
	require.NoError(t, err)
	c.OutputDir = "figures"
	c.OverweightBMI = 27.5
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "figures", got.OutputDir)
	assert.Equal(t, 27.5, got.OverweightBMI)
	assert.Equal(t, filepath.Join("figures", "catplot.png"), got.CatPlotPath())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARDIOVIZ_OUTPUT_DIR", "out")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out", c.OutputDir)
}

func TestLoadRejectsInvertedBand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("percentile_low: 0.9\npercentile_high: 0.1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
