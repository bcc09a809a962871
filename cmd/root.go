package cmd

import (
	"fmt"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/cardioviz/internal/config"
	"github.com/KaramelBytes/cardioviz/internal/dataset"
	"github.com/KaramelBytes/cardioviz/internal/plot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	// Input/output flags (override config if set)
	flagInput     string
	flagOutputDir string

	// Loaded configuration
	cfg *cfgpkg.Global
	// cfgErr is the last load failure, reported by commands that need config
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "cardioviz",
	Short: "cardioviz: charts for the medical examination dataset",
	Long: `cardioviz reads medical_examination.csv, derives BMI and overweight flags,
and draws a categorical bar chart (catplot.png) and a correlation heatmap (heatmap.png).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(setupLogging, loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.cardioviz/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "examination CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "directory for rendered figures (overrides config)")
}

func setupLogging() {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
}

func loadConfig() {
	cfg, cfgErr = nil, nil
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: config show still works without it
		cfgErr = err
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("input") && flagInput != "" {
		cfg.Input = flagInput
	}
	if f.Changed("output-dir") && flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	log.Debug().Str("input", cfg.Input).Str("output_dir", cfg.OutputDir).Msg("configuration loaded")
}

// requireConfig returns the loaded configuration or the reason it is missing.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		if cfgErr != nil {
			return nil, fmt.Errorf("load config: %w", cfgErr)
		}
		return nil, fmt.Errorf("no config loaded")
	}
	return cfg, nil
}

// parseDelimiter maps the delimiter setting onto a rune; "" lets the loader pick.
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case "\t", "\\t", "tab":
		return '\t', nil
	case ";", "semicolon":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',' | ';' | 'tab')", s)
	}
}

// loadTable reads and enriches the configured input file.
func loadTable(c *cfgpkg.Global) (*dataset.Table, error) {
	delim, err := parseDelimiter(c.Delimiter)
	if err != nil {
		return nil, err
	}
	opt := dataset.Options{Delimiter: delim, OverweightBMI: c.OverweightBMI}
	return dataset.Load(c.Input, opt)
}

func catPlotOptions(c *cfgpkg.Global) plot.CatPlotOptions {
	opt := plot.DefaultCatPlotOptions()
	opt.Path = c.CatPlotPath()
	opt.Width, opt.Height = c.CatPlotWidth, c.CatPlotHeight
	opt.DPI = c.DPI
	return opt
}

func heatMapOptions(c *cfgpkg.Global) plot.HeatMapOptions {
	opt := plot.DefaultHeatMapOptions()
	opt.Path = c.HeatMapPath()
	opt.Size = c.HeatMapSize
	opt.DPI = c.DPI
	opt.Filter.Low, opt.Filter.High = c.PercentileLow, c.PercentileHigh
	opt.Scale.VMin, opt.Scale.VMax, opt.Scale.Center = c.HeatMapVMin, c.HeatMapVMax, c.HeatMapCenter
	return opt
}
