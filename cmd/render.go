package cmd

import (
	"fmt"

	"github.com/KaramelBytes/cardioviz/internal/manifest"
	"github.com/KaramelBytes/cardioviz/internal/plot"
	"github.com/spf13/cobra"
)

var renderManifest string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw catplot.png and heatmap.png",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		t, err := loadTable(c)
		if err != nil {
			return err
		}
		cat, err := plot.DrawCatPlot(t, catPlotOptions(c))
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", cat.Path)
		heat, err := plot.DrawHeatMap(t, heatMapOptions(c))
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", heat.Path)
		warnDegenerate(heat)

		if renderManifest != "" {
			run := manifest.New(c.Input, t.Nrow())
			run.Add(cat)
			run.Add(heat)
			if err := run.Save(renderManifest); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			fmt.Printf("✓ Wrote manifest %s (run %s)\n", renderManifest, run.ID)
		}
		return nil
	},
}

var catplotCmd = &cobra.Command{
	Use:   "catplot",
	Short: "Draw the categorical bar chart only",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		t, err := loadTable(c)
		if err != nil {
			return err
		}
		fig, err := plot.DrawCatPlot(t, catPlotOptions(c))
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", fig.Path)
		return nil
	},
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Draw the correlation heatmap only",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		t, err := loadTable(c)
		if err != nil {
			return err
		}
		fig, err := plot.DrawHeatMap(t, heatMapOptions(c))
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", fig.Path)
		warnDegenerate(fig)
		return nil
	},
}

func warnDegenerate(fig *plot.Figure) {
	if fig.Corr != nil && fig.Corr.Rows < 2 {
		fmt.Printf("⚠ Warning: heatmap filter kept %d rows; cells are blank\n", fig.Corr.Rows)
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(catplotCmd)
	rootCmd.AddCommand(heatmapCmd)
	renderCmd.Flags().StringVar(&renderManifest, "manifest", "", "optional path to write a JSON run manifest")
}
