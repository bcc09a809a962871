package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/cardioviz/internal/manifest"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examCSV = `id,age,gender,height,weight,ap_hi,ap_lo,cholesterol,gluc,smoke,alco,active,cardio
0,18393,2,168,62.0,110,80,1,1,0,0,1,0
1,20228,1,156,85.0,140,90,3,1,0,0,1,1
2,18857,1,165,64.0,130,70,3,1,0,0,0,1
3,17623,2,169,82.0,150,100,1,1,0,0,1,1
4,17474,1,156,56.0,100,60,1,1,0,0,0,0
5,21914,1,151,67.0,120,80,2,2,0,0,0,0
6,22113,1,157,93.0,130,80,3,1,0,0,1,0
7,22584,2,178,95.0,130,90,3,3,0,0,1,1
8,17668,1,158,71.0,110,70,1,1,0,0,1,0
9,19834,1,164,68.0,110,60,1,1,0,0,0,0
10,22530,1,169,80.0,120,80,1,1,0,0,1,0
11,18815,2,173,60.0,120,80,1,1,0,0,1,0
12,14791,2,165,60.0,120,80,1,1,0,0,0,0
13,19809,1,158,78.0,110,70,1,1,0,0,1,0
14,14532,2,181,95.0,130,90,1,1,1,1,1,0
15,16782,2,172,112.0,120,80,1,1,0,0,0,1
`

// resetFlags clears values and Changed state that persist across invocations.
func resetFlags() {
	reset := func(fs *pflag.FlagSet, names ...string) {
		for _, n := range names {
			if fl := fs.Lookup(n); fl != nil {
				_ = fl.Value.Set(fl.DefValue)
				fl.Changed = false
			}
		}
	}
	reset(rootCmd.PersistentFlags(), "config", "debug", "input", "output-dir")
	reset(renderCmd.Flags(), "manifest")
	reset(describeCmd.Flags(), "output")
}

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	rootCmd.SetOut(nil)
	return out.String(), err
}

// isolate points HOME at a temp dir and writes the fixture CSV there.
func isolate(t *testing.T) (home, input string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	input = filepath.Join(home, "medical_examination.csv")
	require.NoError(t, os.WriteFile(input, []byte(examCSV), 0o644))
	return home, input
}

func assertPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	c, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, w, c.Width)
	assert.Equal(t, h, c.Height)
}

func TestCLI_RenderWritesBothFiguresAndManifest(t *testing.T) {
	home, input := isolate(t)
	outDir := filepath.Join(home, "figures")
	mpath := filepath.Join(home, "run.json")

	_, err := runCmd(t, "render", "-i", input, "--output-dir", outDir, "--manifest", mpath)
	require.NoError(t, err)

	assertPNG(t, filepath.Join(outDir, "catplot.png"), 1100, 550)
	assertPNG(t, filepath.Join(outDir, "heatmap.png"), 1400, 1400)

	run, err := manifest.Load(mpath)
	require.NoError(t, err)
	assert.Equal(t, input, run.Input)
	assert.Equal(t, 16, run.Rows)
	require.Len(t, run.Figures, 2)
	heat := run.Figure("heatmap")
	require.NotNil(t, heat)
	require.NotNil(t, heat.FilteredRows)
	assert.Less(t, *heat.FilteredRows, 16)
	assert.NotContains(t, heat.Columns, "BMI")
}

func TestCLI_SingleFigureCommands(t *testing.T) {
	home, input := isolate(t)

	_, err := runCmd(t, "catplot", "-i", input, "--output-dir", home)
	require.NoError(t, err)
	assertPNG(t, filepath.Join(home, "catplot.png"), 1100, 550)
	_, err = os.Stat(filepath.Join(home, "heatmap.png"))
	assert.True(t, os.IsNotExist(err))

	_, err = runCmd(t, "heatmap", "-i", input, "--output-dir", home)
	require.NoError(t, err)
	assertPNG(t, filepath.Join(home, "heatmap.png"), 1400, 1400)
}

func TestCLI_ConfigSetDrivesRender(t *testing.T) {
	home, input := isolate(t)
	cfgPath := filepath.Join(home, "cardioviz.yaml")

	_, err := runCmd(t, "--config", cfgPath, "config", "set", "heatmap_size", "500")
	require.NoError(t, err)
	_, err = runCmd(t, "--config", cfgPath, "config", "set", "heatmap_file", "corr.png")
	require.NoError(t, err)
	_, err = runCmd(t, "--config", cfgPath, "config", "set", "heatmap_size", "big")
	assert.Error(t, err)
	_, err = runCmd(t, "--config", cfgPath, "config", "set", "percentile_low", "0.99")
	assert.Error(t, err, "band must stay ordered")
	_, err = runCmd(t, "--config", cfgPath, "config", "set", "colour", "red")
	assert.Error(t, err)

	out, err := runCmd(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "heatmap_size: 500")
	assert.Contains(t, out, "heatmap_file: corr.png")
	assert.Contains(t, out, "percentile_low: 0.025")

	_, err = runCmd(t, "--config", cfgPath, "heatmap", "-i", input, "--output-dir", home)
	require.NoError(t, err)
	assertPNG(t, filepath.Join(home, "corr.png"), 500, 500)
}

func TestCLI_DescribePrintsAndWrites(t *testing.T) {
	home, input := isolate(t)

	out, err := runCmd(t, "describe", "-i", input)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[DATASET SUMMARY]"))
	assert.Contains(t, out, "Rows: 16")
	assert.Contains(t, out, "[HEATMAP FILTER]")

	dst := filepath.Join(home, "notes", "summary.md")
	_, err = runCmd(t, "describe", "-i", input, "-o", dst)
	require.NoError(t, err)
	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[CARDIO GROUPS]")
}

func TestCLI_MissingColumnFails(t *testing.T) {
	home, _ := isolate(t)
	bad := filepath.Join(home, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("id,height,weight\n0,170,70\n"), 0o644))

	_, err := runCmd(t, "render", "-i", bad, "--output-dir", home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
	_, statErr := os.Stat(filepath.Join(home, "catplot.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]rune{"": 0, ",": ',', "tab": '\t', `\t`: '\t', ";": ';', "SEMICOLON": ';'} {
		got, err := parseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseDelimiter("|")
	assert.Error(t, err)
}
