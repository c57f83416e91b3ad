package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelsort/internal/models"
)

func TestMatchAll(t *testing.T) {
	m := New(buildIndex("6332702261", "1ZFC25776800341731"))

	pages := []models.PageRecord{
		{PageNumber: 1, Tracking: "6332702261", Carrier: "DHL"},
		{PageNumber: 2, ExtractionError: true},
		{PageNumber: 3}, // nothing extracted
		{PageNumber: 4, Tracking: "9999999999999", Carrier: "FedEx"},
	}

	report := m.MatchAll(pages)

	assert.Equal(t, 4, report.TotalPages)
	require.Len(t, report.Matched, 1)
	require.Len(t, report.Unmatched, 3)
	assert.Equal(t, 25.0, report.MatchRate)

	matched := report.Matched[0]
	assert.Equal(t, 1, matched.PageNumber)
	assert.Equal(t, 0, matched.PageIndex)
	assert.True(t, matched.Matched)
	assert.Equal(t, models.MatchExact, matched.Type)
	assert.Equal(t, 100, matched.Confidence)
	require.NotNil(t, matched.Record)
	assert.Equal(t, "ORD_6332702261", matched.Record.OrderID)

	assert.Equal(t, models.ReasonExtractionError, report.Unmatched[0].Reason)
	assert.Equal(t, models.ReasonPatternNotRecognized, report.Unmatched[1].Reason)
	assert.Equal(t, models.ReasonNotInReference, report.Unmatched[2].Reason)
}

func TestMatchAllPartitionProperty(t *testing.T) {
	m := New(buildIndex("6332702261", "1ZFC25776800341731"))

	pages := []models.PageRecord{
		{PageNumber: 1, Tracking: "1ZFC25776800341731"},
		{PageNumber: 2, Tracking: "6332702261"},
		{PageNumber: 3, Tracking: "0000000000"},
		{PageNumber: 4, ExtractionError: true},
		{PageNumber: 5},
	}

	report := m.MatchAll(pages)

	// Every page lands exactly once across matched and unmatched.
	seen := make(map[int]int)
	for _, r := range report.Matched {
		seen[r.PageNumber]++
	}
	for _, r := range report.Unmatched {
		seen[r.PageNumber]++
	}

	assert.Len(t, seen, len(pages))
	for page, count := range seen {
		assert.Equal(t, 1, count, "page %d", page)
	}
}

func TestMatchAllErrorPagesSkipResolution(t *testing.T) {
	// A page with an extraction error never reaches the resolver, even when
	// its (stale) tracking field would match.
	m := New(buildIndex("6332702261"))

	pages := []models.PageRecord{
		{PageNumber: 1, Tracking: "6332702261", ExtractionError: true},
	}

	report := m.MatchAll(pages)

	require.Len(t, report.Unmatched, 1)
	assert.Empty(t, report.Matched)
	assert.Equal(t, models.ReasonExtractionError, report.Unmatched[0].Reason)
	assert.Empty(t, report.Unmatched[0].Tracking)
	assert.Equal(t, 1, report.TotalPages)
}

func TestMatchAllRateRounding(t *testing.T) {
	m := New(buildIndex("6332702261"))

	pages := []models.PageRecord{
		{PageNumber: 1, Tracking: "6332702261"},
		{PageNumber: 2},
		{PageNumber: 3},
	}

	report := m.MatchAll(pages)
	assert.Equal(t, 33.3, report.MatchRate)
}

func TestMatchAllEmptyBatch(t *testing.T) {
	m := New(buildIndex("6332702261"))

	report := m.MatchAll(nil)
	assert.Equal(t, 0, report.TotalPages)
	assert.Equal(t, 0.0, report.MatchRate)
	assert.Empty(t, report.Matched)
	assert.Empty(t, report.Unmatched)
}
