package cmd

import (
	"fmt"

	cfgpkg "github.com/KaramelBytes/cardioviz/internal/config"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set cardioviz configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input: %s\n", cfg.Input)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "catplot_file: %s\n", cfg.CatPlotFile)
		fmt.Fprintf(out, "heatmap_file: %s\n", cfg.HeatMapFile)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		fmt.Fprintf(out, "overweight_bmi: %g\n", cfg.OverweightBMI)
		fmt.Fprintf(out, "percentile_low: %g\n", cfg.PercentileLow)
		fmt.Fprintf(out, "percentile_high: %g\n", cfg.PercentileHigh)
		fmt.Fprintf(out, "heatmap_vmin: %g\n", cfg.HeatMapVMin)
		fmt.Fprintf(out, "heatmap_vmax: %g\n", cfg.HeatMapVMax)
		fmt.Fprintf(out, "heatmap_center: %g\n", cfg.HeatMapCenter)
		fmt.Fprintf(out, "heatmap_size: %d\n", cfg.HeatMapSize)
		fmt.Fprintf(out, "catplot_width: %d\n", cfg.CatPlotWidth)
		fmt.Fprintf(out, "catplot_height: %d\n", cfg.CatPlotHeight)
		fmt.Fprintf(out, "dpi: %g\n", cfg.DPI)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setKey(cfg, key, val); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	floatVal := func(dst *float64) error {
		f, err := cast.ToFloat64E(val)
		if err != nil {
			return fmt.Errorf("invalid float for %s: %w", key, err)
		}
		*dst = f
		return nil
	}
	intVal := func(dst *int) error {
		i, err := cast.ToIntE(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid positive int for %s: %v", key, val)
		}
		*dst = i
		return nil
	}
	switch key {
	case "input":
		c.Input = val
	case "output_dir":
		c.OutputDir = val
	case "catplot_file":
		c.CatPlotFile = val
	case "heatmap_file":
		c.HeatMapFile = val
	case "delimiter":
		if _, err := parseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "overweight_bmi":
		return floatVal(&c.OverweightBMI)
	case "percentile_low":
		return floatVal(&c.PercentileLow)
	case "percentile_high":
		return floatVal(&c.PercentileHigh)
	case "heatmap_vmin":
		return floatVal(&c.HeatMapVMin)
	case "heatmap_vmax":
		return floatVal(&c.HeatMapVMax)
	case "heatmap_center":
		return floatVal(&c.HeatMapCenter)
	case "dpi":
		return floatVal(&c.DPI)
	case "heatmap_size":
		return intVal(&c.HeatMapSize)
	case "catplot_width":
		return intVal(&c.CatPlotWidth)
	case "catplot_height":
		return intVal(&c.CatPlotHeight)
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
