package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Input       string `mapstructure:"input" yaml:"input"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	CatPlotFile string `mapstructure:"catplot_file" yaml:"catplot_file"`
	HeatMapFile string `mapstructure:"heatmap_file" yaml:"heatmap_file"`
	Delimiter   string `mapstructure:"delimiter" yaml:"delimiter"`

	// Enrichment and filtering
	OverweightBMI  float64 `mapstructure:"overweight_bmi" yaml:"overweight_bmi"`
	PercentileLow  float64 `mapstructure:"percentile_low" yaml:"percentile_low"`
	PercentileHigh float64 `mapstructure:"percentile_high" yaml:"percentile_high"`

	// Heatmap color scale
	HeatMapVMin   float64 `mapstructure:"heatmap_vmin" yaml:"heatmap_vmin"`
	HeatMapVMax   float64 `mapstructure:"heatmap_vmax" yaml:"heatmap_vmax"`
	HeatMapCenter float64 `mapstructure:"heatmap_center" yaml:"heatmap_center"`

	// Figure geometry (pixels)
	HeatMapSize   int     `mapstructure:"heatmap_size" yaml:"heatmap_size"`
	CatPlotWidth  int     `mapstructure:"catplot_width" yaml:"catplot_width"`
	CatPlotHeight int     `mapstructure:"catplot_height" yaml:"catplot_height"`
	DPI           float64 `mapstructure:"dpi" yaml:"dpi"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.cardioviz/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command-line flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CARDIOVIZ")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input", "medical_examination.csv")
	v.SetDefault("output_dir", ".")
	v.SetDefault("catplot_file", "catplot.png")
	v.SetDefault("heatmap_file", "heatmap.png")
	v.SetDefault("delimiter", "")
	v.SetDefault("overweight_bmi", 25.0)
	v.SetDefault("percentile_low", 0.025)
	v.SetDefault("percentile_high", 0.975)
	v.SetDefault("heatmap_vmin", -0.1)
	v.SetDefault("heatmap_vmax", 0.2)
	v.SetDefault("heatmap_center", 0.0)
	v.SetDefault("heatmap_size", 1400)
	v.SetDefault("catplot_width", 1100)
	v.SetDefault("catplot_height", 550)
	v.SetDefault("dpi", 100.0)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the renderers cannot work with.
func (c *Global) Validate() error {
	if c.PercentileLow < 0 || c.PercentileHigh > 1 || c.PercentileLow >= c.PercentileHigh {
		return fmt.Errorf("invalid percentile band [%g, %g]", c.PercentileLow, c.PercentileHigh)
	}
	if c.HeatMapVMin >= c.HeatMapVMax {
		return fmt.Errorf("invalid heatmap scale: vmin %g >= vmax %g", c.HeatMapVMin, c.HeatMapVMax)
	}
	if c.HeatMapSize <= 0 || c.CatPlotWidth <= 0 || c.CatPlotHeight <= 0 {
		return fmt.Errorf("figure sizes must be positive")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive")
	}
	return nil
}

// CatPlotPath joins the output directory and the catplot file name.
func (c *Global) CatPlotPath() string { return filepath.Join(c.OutputDir, c.CatPlotFile) }

// HeatMapPath joins the output directory and the heatmap file name.
func (c *Global) HeatMapPath() string { return filepath.Join(c.OutputDir, c.HeatMapFile) }

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".cardioviz"), nil
}
