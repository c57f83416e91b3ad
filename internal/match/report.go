package match

import (
	"math"

	"labelsort/internal/models"
)

// MatchAll resolves every page in original extraction order and builds the
// batch report. Pages with an extraction error or no extracted tracking never
// reach the resolver; they are recorded unmatched with the matching reason.
// Every page lands in exactly one of the two result lists.
func (m *Matcher) MatchAll(pages []models.PageRecord) *models.MatchReport {
	report := &models.MatchReport{
		Matched:    []models.MatchResult{},
		Unmatched:  []models.MatchResult{},
		TotalPages: len(pages),
	}

	for _, page := range pages {
		result := m.matchPage(page)
		if result.Matched {
			report.Matched = append(report.Matched, result)
		} else {
			report.Unmatched = append(report.Unmatched, result)
		}
	}

	if report.TotalPages > 0 {
		rate := float64(len(report.Matched)) / float64(report.TotalPages) * 100
		report.MatchRate = math.Round(rate*10) / 10
	}

	return report
}

func (m *Matcher) matchPage(page models.PageRecord) models.MatchResult {
	result := models.MatchResult{
		PageNumber: page.PageNumber,
		PageIndex:  page.PageIndex(),
		Tracking:   page.Tracking,
		Carrier:    page.Carrier,
	}

	if page.ExtractionError {
		result.Tracking = ""
		result.Carrier = ""
		result.Reason = models.ReasonExtractionError
		return result
	}

	if page.Tracking == "" {
		result.Reason = models.ReasonPatternNotRecognized
		return result
	}

	rec, matchType, confidence := m.Resolve(page.Tracking)
	if rec == nil {
		result.Reason = models.ReasonNotInReference
		return result
	}

	result.Matched = true
	result.Record = rec
	result.Type = matchType
	result.Confidence = confidence
	return result
}
