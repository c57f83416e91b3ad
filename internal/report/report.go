// Package report renders match results for humans and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"labelsort/internal/models"
)

// RenderTable formats the match report as a terminal table, matched pages
// first, then the unmatched ones with their reasons.
func RenderTable(report *models.MatchReport) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Page", "Tracking", "Carrier", "Tier", "Conf", "Order ID", "Status"})

	for _, r := range report.Matched {
		tw.AppendRow(table.Row{
			r.PageNumber, r.Tracking, r.Carrier, r.Type.String(), r.Confidence, orderID(r), "matched",
		})
	}
	for _, r := range report.Unmatched {
		tw.AppendRow(table.Row{
			r.PageNumber, placeholder(r.Tracking), placeholder(r.Carrier), "", "", "", r.Reason.String(),
		})
	}

	tw.AppendFooter(table.Row{
		"", "", "", "", "", "match rate",
		strconv.FormatFloat(report.MatchRate, 'f', 1, 64) + "%",
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	return tw.Render()
}

// Summary is the JSON document returned to programmatic consumers.
type Summary struct {
	Report *models.MatchReport  `json:"report"`
	Sorted *models.SortedResult `json:"sorted,omitempty"`
}

// WriteJSON encodes the report (and the page ordering, when present) to w.
func WriteJSON(w io.Writer, report *models.MatchReport, sorted *models.SortedResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Summary{Report: report, Sorted: sorted}); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func orderID(r models.MatchResult) string {
	if r.Record != nil {
		return r.Record.OrderID
	}
	return ""
}

func placeholder(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
