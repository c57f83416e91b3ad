package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PageRecord holds what the extractor found on a single scanned label page.
// Records are immutable once created.
type PageRecord struct {
	PageNumber      int    `json:"page_number"` // 1-indexed
	RawText         string `json:"raw_text"`
	Tracking        string `json:"tracking"` // normalized, empty if not recognized
	Carrier         string `json:"carrier"`  // empty if unknown
	ExtractionError bool   `json:"extraction_error"`
}

// PageIndex returns the 0-indexed position of the page in the document.
func (p PageRecord) PageIndex() int {
	return p.PageNumber - 1
}

// ReferenceRecord is one row of the authoritative order list.
type ReferenceRecord struct {
	RowIndex      int    `json:"row_index"` // position in the reference list, 0-indexed
	OrderID       string `json:"order_id"`
	Tracking      string `json:"tracking"` // normalized
	Carrier       string `json:"carrier"`
	NumericSuffix *int   `json:"numeric_suffix,omitempty"`
}

// MatchType identifies which resolution tier produced a match.
type MatchType int

const (
	MatchNone MatchType = iota
	MatchExact
	MatchNormalized
	MatchPartial
	MatchFuzzy
)

// String returns the wire name of the match type.
func (t MatchType) String() string {
	switch t {
	case MatchExact:
		return "exact"
	case MatchNormalized:
		return "normalized"
	case MatchPartial:
		return "partial"
	case MatchFuzzy:
		return "fuzzy"
	case MatchNone:
		return "none"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// MarshalJSON encodes the match type as its string name.
func (t MatchType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmatchedReason explains why a page ended up without a match.
type UnmatchedReason int

const (
	ReasonNone UnmatchedReason = iota
	ReasonNotInReference
	ReasonPatternNotRecognized
	ReasonExtractionError
)

// String returns the wire name of the unmatched reason.
func (r UnmatchedReason) String() string {
	switch r {
	case ReasonNotInReference:
		return "not in reference"
	case ReasonPatternNotRecognized:
		return "pattern not recognized"
	case ReasonExtractionError:
		return "extraction error"
	case ReasonNone:
		return ""
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// MarshalJSON encodes the reason as its string name.
func (r UnmatchedReason) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(r.String())), nil
}

// MatchResult is the outcome of resolving a single page against the reference list.
type MatchResult struct {
	PageNumber int              `json:"page_number"` // 1-indexed
	PageIndex  int              `json:"page_index"`  // 0-indexed
	Tracking   string           `json:"tracking,omitempty"`
	Carrier    string           `json:"carrier,omitempty"`
	Matched    bool             `json:"matched"`
	Record     *ReferenceRecord `json:"record,omitempty"`
	Type       MatchType        `json:"match_type"`
	Confidence int              `json:"confidence"` // 0-100
	Reason     UnmatchedReason  `json:"unmatched_reason,omitempty"`
}

// MatchReport aggregates the match results for a whole batch.
// Every page appears exactly once across Matched and Unmatched.
type MatchReport struct {
	Matched    []MatchResult `json:"matched"`
	Unmatched  []MatchResult `json:"unmatched"`
	TotalPages int           `json:"total_pages"`
	MatchRate  float64       `json:"match_rate"` // percentage, one decimal
}

// SortedResult is the final page ordering computed by the sorter.
type SortedResult struct {
	PageOrder      []int  `json:"page_order"` // 0-indexed, permutation of [0, TotalPages)
	MatchedCount   int    `json:"matched_count"`
	UnmatchedCount int    `json:"unmatched_count"`
	Strategy       string `json:"strategy"`
}

var (
	whitespaceRe     = regexp.MustCompile(`\s+`)
	trailingDigitsRe = regexp.MustCompile(`(\d+)$`)
)

// NormalizeTracking strips all whitespace and uppercases a tracking code.
// Every tracking comparison in the pipeline happens on normalized values.
func NormalizeTracking(tracking string) string {
	return strings.ToUpper(whitespaceRe.ReplaceAllString(tracking, ""))
}

// ParseNumericSuffix extracts the trailing integer of an order identifier,
// e.g. "3501512414_ORIGINS_99" -> 99. The last underscore-delimited segment
// wins when it is fully numeric, otherwise any trailing digit run is used.
func ParseNumericSuffix(orderID string) (int, bool) {
	if orderID == "" {
		return 0, false
	}

	if idx := strings.LastIndex(orderID, "_"); idx >= 0 {
		last := orderID[idx+1:]
		if n, err := strconv.Atoi(last); err == nil {
			return n, true
		}
	}

	if m := trailingDigitsRe.FindStringSubmatch(orderID); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	return 0, false
}
