package extract

import (
	"regexp"
	"strings"
)

// Carrier tags used across the pipeline. The reference list carries its own
// carrier labels; these are only what the extractor can infer from a label.
const (
	CarrierUPS   = "UPS"
	CarrierFedEx = "FedEx"
	CarrierDHL   = "DHL"
)

var (
	nonAlnumRe = regexp.MustCompile(`[^A-Z0-9]`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
)

// minLengths holds per-carrier validation floors. Deliberately permissive so
// uncommon but legitimate formats are not rejected.
var minLengths = map[string]int{
	CarrierUPS:   10,
	CarrierFedEx: 10,
	CarrierDHL:   10,
}

// validateTracking is the per-carrier acceptance predicate for candidates
// found by carrier-specific patterns.
func validateTracking(tracking, carrier string) bool {
	if tracking == "" {
		return false
	}

	// Drop stray punctuation the pattern may have captured.
	cleaned := nonAlnumRe.ReplaceAllString(strings.ToUpper(tracking), "")
	if cleaned == "" {
		return false
	}

	if isPhoneNumber(cleaned) {
		return false
	}

	minLen, ok := minLengths[carrier]
	if !ok {
		minLen = 8
	}

	switch carrier {
	case CarrierUPS:
		if strings.HasPrefix(cleaned, "1Z") {
			return len(cleaned) >= 18
		}
		return len(cleaned) >= minLen
	case CarrierFedEx:
		return len(cleaned) >= minLen
	case CarrierDHL:
		if strings.HasPrefix(cleaned, "JD") {
			return len(cleaned) >= 10
		}
		return len(cleaned) >= minLen
	default:
		return len(cleaned) >= minLen
	}
}

// isPhoneNumber reports whether a digit string looks like an Italian phone
// number. Labels routinely print the recipient's mobile next to the barcode,
// and those digit runs are the main source of false positives.
func isPhoneNumber(number string) bool {
	if number == "" || !digitsRe.MatchString(number) {
		return false
	}

	// International form: 39 prefix, then a mobile starting with 3.
	if strings.HasPrefix(number, "39") && (len(number) == 12 || len(number) == 13) {
		if number[2] == '3' {
			return true
		}
	}

	// Domestic mobile: 3XXXXXXXXX.
	if strings.HasPrefix(number, "3") && len(number) == 10 {
		return true
	}

	return false
}

// DetectCarrier guesses the carrier from the shape of a normalized tracking
// code. Returns "" when the shape is ambiguous.
func DetectCarrier(tracking string) string {
	switch {
	case strings.HasPrefix(tracking, "1Z"):
		return CarrierUPS
	case strings.HasPrefix(tracking, "JD"):
		return CarrierDHL
	case digitsRe.MatchString(tracking):
		if len(tracking) == 10 || len(tracking) == 11 {
			return CarrierDHL
		}
		if len(tracking) >= 12 {
			return CarrierFedEx
		}
	}
	return ""
}
