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

var matchCmd = &cobra.Command{
	Use:   "match <labels.pdf> <orders.xlsx>",
	Short: "Match scanned labels against the order list and print the report",
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

		result := pipeline.Match(pages, refData.Records)
		if cfg.Debug {
			printExtractionDebug(result)
		}

		if cfg.OutputFormat == "json" {
			return report.WriteJSON(os.Stdout, result.Report, nil)
		}
		fmt.Println(report.RenderTable(result.Report))
		return nil
	},
}

func printWarnings(refData *refsheet.ReferenceData) {
	for _, warning := range refData.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", warning)
	}
}

func printExtractionDebug(result *pipeline.Result) {
	for _, page := range result.Pages {
		if page.ExtractionError {
			fmt.Fprintf(os.Stderr, "debug: page %d: extraction error\n", page.PageNumber)
			continue
		}
		fmt.Fprintf(os.Stderr, "debug: page %d: tracking=%q carrier=%q\n",
			page.PageNumber, page.Tracking, page.Carrier)
	}
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
