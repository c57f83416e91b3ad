package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"labelsort/internal/pdfdoc"
	"labelsort/internal/pipeline"
	"labelsort/internal/refsheet"
	"labelsort/internal/report"
)

var sortOutput string

var sortCmd = &cobra.Command{
	Use:   "sort <labels.pdf> <orders.xlsx>",
	Short: "Write a copy of the labels PDF with pages in corrected order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pages, err := pdfdoc.ExtractPages(args[0])
		if err != nil {
			return err
		}

		refData, err := refsheet.Load(args[1])
		if err != nil {
			return err
		}
		printWarnings(refData)

		result, err := pipeline.Run(pages, refData.Records, cfg.Strategy())
		if err != nil {
			return err
		}
		if cfg.Debug {
			printExtractionDebug(result)
		}

		if err := pdfdoc.ReorderFile(args[0], sortOutput, result.Sorted.PageOrder); err != nil {
			return err
		}

		if cfg.OutputFormat == "json" {
			return report.WriteJSON(os.Stdout, result.Report, result.Sorted)
		}

		fmt.Println(report.RenderTable(result.Report))
		fmt.Printf("wrote %s: %d matched, %d unmatched, strategy %s\n",
			sortOutput, result.Sorted.MatchedCount, result.Sorted.UnmatchedCount, result.Sorted.Strategy)
		return nil
	},
}

func init() {
	sortCmd.Flags().StringVarP(&sortOutput, "output", "o", "labels-sorted.pdf", "Output PDF path")
	rootCmd.AddCommand(sortCmd)
}
