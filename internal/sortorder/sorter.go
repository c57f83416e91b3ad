// Package sortorder computes the final page permutation from a match report.
// Whatever the strategy, unmatched pages always land after all matched pages,
// in their original extraction order, so exceptions stay together for review.
package sortorder

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"labelsort/internal/models"
)

// Strategy selects how matched pages are ordered.
type Strategy string

const (
	// ByReferenceOrder follows the row order of the reference list.
	ByReferenceOrder Strategy = "reference"
	// ByNumericSuffix orders by the numeric suffix of the order identifier,
	// falling back to lexicographic order identifiers for rows without one.
	ByNumericSuffix Strategy = "suffix"
)

// ErrUnsupportedStrategy is returned for strategy values that are not known.
// A bad strategy is a configuration error and fails fast; it is never
// silently replaced with a default.
var ErrUnsupportedStrategy = errors.New("unsupported sort strategy")

// ParseStrategy validates a strategy name from configuration or a request.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case ByReferenceOrder, ByNumericSuffix:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStrategy, s)
	}
}

// Sort computes the final page ordering. The result's PageOrder is always a
// permutation of [0, TotalPages).
func Sort(report *models.MatchReport, records []models.ReferenceRecord, strategy Strategy) (*models.SortedResult, error) {
	switch strategy {
	case ByReferenceOrder:
		return sortByReferenceOrder(report, records), nil
	case ByNumericSuffix:
		return sortByNumericSuffix(report), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, string(strategy))
	}
}

// sortByReferenceOrder stable-sorts matched pages by the position of their
// matched record in the reference list. Matches whose record somehow has no
// position sort last among the matched via a sentinel key.
func sortByReferenceOrder(report *models.MatchReport, records []models.ReferenceRecord) *models.SortedResult {
	// Position of each tracking in the reference list; duplicates resolve
	// last-write-wins, consistent with the index.
	positions := make(map[string]int, len(records))
	for i, rec := range records {
		if t := models.NormalizeTracking(rec.Tracking); t != "" {
			positions[t] = i
		}
	}

	position := func(r models.MatchResult) int {
		if r.Record != nil {
			if pos, ok := positions[models.NormalizeTracking(r.Record.Tracking)]; ok {
				return pos
			}
		}
		return math.MaxInt
	}

	matched := append([]models.MatchResult(nil), report.Matched...)
	sort.SliceStable(matched, func(i, j int) bool {
		return position(matched[i]) < position(matched[j])
	})

	return buildResult(matched, report, ByReferenceOrder)
}

// sortByNumericSuffix partitions matched pages into those whose order
// identifier carries a numeric suffix and those without one. The first group
// sorts ascending by integer suffix, the second lexicographically by order
// identifier; the groups concatenate in that order.
func sortByNumericSuffix(report *models.MatchReport) *models.SortedResult {
	var withSuffix, withoutSuffix []models.MatchResult
	for _, r := range report.Matched {
		if r.Record != nil && r.Record.NumericSuffix != nil {
			withSuffix = append(withSuffix, r)
		} else {
			withoutSuffix = append(withoutSuffix, r)
		}
	}

	sort.SliceStable(withSuffix, func(i, j int) bool {
		return *withSuffix[i].Record.NumericSuffix < *withSuffix[j].Record.NumericSuffix
	})
	sort.SliceStable(withoutSuffix, func(i, j int) bool {
		return orderID(withoutSuffix[i]) < orderID(withoutSuffix[j])
	})

	matched := append(withSuffix, withoutSuffix...)
	return buildResult(matched, report, ByNumericSuffix)
}

func orderID(r models.MatchResult) string {
	if r.Record != nil {
		return r.Record.OrderID
	}
	return ""
}

// buildResult assembles the permutation: matched pages in strategy order,
// then every unmatched page in original extraction order.
func buildResult(matched []models.MatchResult, report *models.MatchReport, strategy Strategy) *models.SortedResult {
	pageOrder := make([]int, 0, report.TotalPages)
	for _, r := range matched {
		pageOrder = append(pageOrder, r.PageIndex)
	}
	for _, r := range report.Unmatched {
		pageOrder = append(pageOrder, r.PageIndex)
	}

	return &models.SortedResult{
		PageOrder:      pageOrder,
		MatchedCount:   len(matched),
		UnmatchedCount: len(report.Unmatched),
		Strategy:       string(strategy),
	}
}
