package cmd

import (
	"fmt"

	"github.com/KaramelBytes/cardioviz/internal/analysis"
	"github.com/KaramelBytes/cardioviz/internal/utils"
	"github.com/spf13/cobra"
)

var describeOutput string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the enriched dataset as Markdown",
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
		rep, err := analysis.Summarize(t, analysis.HeatFilter{Low: c.PercentileLow, High: c.PercentileHigh})
		if err != nil {
			return err
		}
		md := rep.Markdown()

		// --output path or stdout
		if describeOutput != "" {
			if err := utils.SafeWriteFile(describeOutput, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", describeOutput)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&describeOutput, "output", "o", "", "optional path to write the summary (Markdown)")
}
