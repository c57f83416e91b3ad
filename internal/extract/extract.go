// Package extract turns the raw text of one scanned label page into a
// normalized tracking code and carrier tag. Extraction is an ordered strategy
// cascade: carrier-specific patterns first, localized label wording second,
// generic shape fallback last. The first strategy that yields an acceptable
// candidate wins.
package extract

import (
	"labelsort/internal/models"
)

// PageText is one page's raw text as delivered by the text-extraction
// collaborator. Err carries a per-page extraction failure; such pages are
// recorded but never abort the batch.
type PageText struct {
	Number int // 1-indexed
	Text   string
	Err    error
}

// rawTextLimit caps how much page text is kept on the record for reporting.
const rawTextLimit = 500

// Extractor runs the strategy cascade over page text.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor builds an extractor with the standard strategy order.
func NewExtractor() *Extractor {
	return &Extractor{
		strategies: []Strategy{
			newCarrierPatternStrategy(),
			newLocalizedPatternStrategy(),
			newGenericPatternStrategy(),
		},
	}
}

// Extract resolves one page's text to a normalized tracking code and carrier
// tag. Both are empty when no strategy produces an acceptable candidate.
func (e *Extractor) Extract(text string) (tracking, carrier string) {
	for _, s := range e.strategies {
		if t, c, ok := s.Try(text); ok {
			return t, c
		}
	}
	return "", ""
}

// ExtractPages applies Extract to every page in order. Pages whose text
// extraction failed, or whose processing panics, become extraction-error
// records; the rest of the batch is unaffected.
func (e *Extractor) ExtractPages(pages []PageText) []models.PageRecord {
	records := make([]models.PageRecord, 0, len(pages))
	for _, page := range pages {
		records = append(records, e.extractPage(page))
	}
	return records
}

func (e *Extractor) extractPage(page PageText) (rec models.PageRecord) {
	if page.Err != nil {
		return models.PageRecord{
			PageNumber:      page.Number,
			ExtractionError: true,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			rec = models.PageRecord{
				PageNumber:      page.Number,
				ExtractionError: true,
			}
		}
	}()

	tracking, carrier := e.Extract(page.Text)
	return models.PageRecord{
		PageNumber: page.Number,
		RawText:    truncate(page.Text, rawTextLimit),
		Tracking:   tracking,
		Carrier:    carrier,
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
