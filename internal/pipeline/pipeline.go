// Package pipeline wires extraction, indexing, matching and sorting into one
// pure in-memory run. Each call builds a fresh index and fresh reports, so
// concurrent runs on independent inputs need no locking, and identical inputs
// always produce identical outputs.
package pipeline

import (
	"labelsort/internal/extract"
	"labelsort/internal/match"
	"labelsort/internal/models"
	"labelsort/internal/refindex"
	"labelsort/internal/sortorder"
)

// Result bundles everything one run produces.
type Result struct {
	Pages  []models.PageRecord
	Report *models.MatchReport
	Sorted *models.SortedResult
}

// Run processes a batch of page texts against the reference records and
// computes the final page ordering with the given strategy.
func Run(pages []extract.PageText, records []models.ReferenceRecord, strategy sortorder.Strategy) (*Result, error) {
	pageRecords := extract.NewExtractor().ExtractPages(pages)

	idx := refindex.Build(records)
	report := match.New(idx).MatchAll(pageRecords)

	sorted, err := sortorder.Sort(report, records, strategy)
	if err != nil {
		return nil, err
	}

	return &Result{
		Pages:  pageRecords,
		Report: report,
		Sorted: sorted,
	}, nil
}

// Match runs extraction and matching only, without computing a page ordering.
func Match(pages []extract.PageText, records []models.ReferenceRecord) *Result {
	pageRecords := extract.NewExtractor().ExtractPages(pages)
	idx := refindex.Build(records)
	report := match.New(idx).MatchAll(pageRecords)

	return &Result{
		Pages:  pageRecords,
		Report: report,
	}
}
