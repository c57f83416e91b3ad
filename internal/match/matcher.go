// Package match resolves extracted tracking codes against the reference index
// through an ordered tier cascade: exact, leading-zero-stripped, partial
// containment, fuzzy. Tier precedence is structural: a later tier is only
// attempted when every earlier tier failed, regardless of the confidence a
// later tier could have produced.
package match

import (
	"math"
	"strings"

	"labelsort/internal/models"
	"labelsort/internal/refindex"
)

// Confidence scores per tier. Partial and fuzzy confidences are derived from
// the candidate; the rest are fixed.
const (
	confidenceExact      = 100
	confidenceNormalized = 98
	confidenceDeletion   = 80

	// Partial containment must cover at least this share of the longer code.
	partialMinOverlap = 0.8

	// Equal-length fuzzy comparison tolerates at most this many mismatches.
	fuzzyMaxMismatches = 2
)

// Matcher resolves trackings against a built reference index.
type Matcher struct {
	idx *refindex.Index
}

// New creates a matcher over the given index.
func New(idx *refindex.Index) *Matcher {
	return &Matcher{idx: idx}
}

// Resolve runs the tier cascade for one tracking code. The returned record is
// nil when no tier succeeds; confidence is 0-100.
func (m *Matcher) Resolve(tracking string) (*models.ReferenceRecord, models.MatchType, int) {
	tracking = models.NormalizeTracking(tracking)
	if tracking == "" {
		return nil, models.MatchNone, 0
	}

	if rec, ok := m.idx.Exact(tracking); ok {
		return rec, models.MatchExact, confidenceExact
	}

	if rec, ok := m.idx.Stripped(tracking); ok {
		return rec, models.MatchNormalized, confidenceNormalized
	}

	if rec, conf := m.resolvePartial(tracking); rec != nil {
		return rec, models.MatchPartial, conf
	}

	if rec, conf := m.resolveFuzzy(tracking); rec != nil {
		return rec, models.MatchFuzzy, conf
	}

	return nil, models.MatchNone, 0
}

// resolvePartial scans for containment either way: the extracted code may be a
// truncated read of the reference code, or carry extra OCR noise around it.
// The overlap ratio (shorter length over longer length) must reach the
// threshold; confidence scales linearly from 90 at 0.8 up to a cap of 99.
// The highest confidence wins, ties go to the earlier reference row.
func (m *Matcher) resolvePartial(tracking string) (*models.ReferenceRecord, int) {
	var best *models.ReferenceRecord
	bestConf := 0

	for _, entry := range m.idx.Entries() {
		if !contains(tracking, entry.Tracking) {
			continue
		}

		shorter, longer := len(tracking), len(entry.Tracking)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		overlap := float64(shorter) / float64(longer)
		if overlap < partialMinOverlap {
			continue
		}

		conf := 90 + int(math.Round((overlap-partialMinOverlap)/(1.0-partialMinOverlap)*9))
		if conf > 99 {
			conf = 99
		}
		if conf > bestConf {
			best, bestConf = entry.Record, conf
		}
	}

	return best, bestConf
}

// resolveFuzzy tolerates print/OCR noise: up to two wrong characters at equal
// length, or one dropped character. Only reference entries within one
// character of the query length are considered. Best-of scan over the whole
// list; ties go to the earlier reference row.
func (m *Matcher) resolveFuzzy(tracking string) (*models.ReferenceRecord, int) {
	var best *models.ReferenceRecord
	bestConf := 0

	for _, entry := range m.idx.Entries() {
		delta := len(entry.Tracking) - len(tracking)
		if delta < -1 || delta > 1 {
			continue
		}

		conf := 0
		if delta == 0 {
			if mm, ok := countMismatches(tracking, entry.Tracking, fuzzyMaxMismatches); ok {
				conf = 95 - 10*mm
			}
		} else if deletionAligned(tracking, entry.Tracking) {
			conf = confidenceDeletion
		}

		if conf > bestConf {
			best, bestConf = entry.Record, conf
		}
	}

	return best, bestConf
}

// contains reports whether one code contains the other.
func contains(a, b string) bool {
	if len(a) >= len(b) {
		return strings.Contains(a, b)
	}
	return strings.Contains(b, a)
}

// countMismatches compares equal-length strings position by position,
// giving up once the mismatch budget is exceeded.
func countMismatches(a, b string, budget int) (int, bool) {
	mismatches := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			mismatches++
			if mismatches > budget {
				return 0, false
			}
		}
	}
	return mismatches, true
}

// deletionAligned reports whether removing exactly one character from the
// longer string yields the shorter one.
func deletionAligned(a, b string) bool {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(longer)-len(shorter) != 1 {
		return false
	}
	for i := 0; i < len(longer); i++ {
		if longer[:i]+longer[i+1:] == shorter {
			return true
		}
	}
	return false
}
