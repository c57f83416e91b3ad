package extract

import (
	"regexp"

	"labelsort/internal/models"
)

// Strategy is one extraction attempt over a page's raw text. Strategies are
// tried in order until one produces a candidate; they are interchangeable and
// carry no state.
type Strategy interface {
	// Try returns a normalized tracking candidate and its carrier tag, or
	// ok=false when the strategy finds nothing acceptable.
	Try(text string) (tracking, carrier string, ok bool)
}

// carrierPatterns groups the patterns for one carrier, most specific first.
type carrierPatterns struct {
	carrier  string
	patterns []*regexp.Regexp
}

// carrierPatternStrategy tries carrier-specific patterns. A candidate is only
// accepted when it also passes that carrier's validation predicate, so a
// FedEx digit-run pattern cannot claim a phone number printed on the label.
type carrierPatternStrategy struct {
	carriers []carrierPatterns
}

func newCarrierPatternStrategy() *carrierPatternStrategy {
	return &carrierPatternStrategy{
		carriers: []carrierPatterns{
			{
				carrier: CarrierUPS,
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)TRACKING\s*#\s*:?\s*([A-Z0-9\s]+?)(?:\s{2,}|\n|$)`),
					regexp.MustCompile(`(?i)TRACKING\s*NUMBER\s*:?\s*([A-Z0-9\s]+?)(?:\s{2,}|\n|$)`),
					regexp.MustCompile(`(?i)1Z\s*[A-Z0-9]{6}\s*[A-Z0-9]{10}`),
					regexp.MustCompile(`(?i)1Z[A-Z0-9]{16}`),
				},
			},
			{
				carrier: CarrierFedEx,
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)TRK#\s*\[?\d*\]?\s*([\d\s]+?)(?:\s{2,}|\n|$)`),
					regexp.MustCompile(`(?i)TRACKING\s*(?:ID|#|NUMBER)?\s*:?\s*(\d[\d\s]{10,}?)(?:\s{2,}|\n|$)`),
					regexp.MustCompile(`(\d{12,22})`),
					regexp.MustCompile(`(\d{4}\s+\d{4}\s+\d{4}(?:\s+\d{4})?)`),
				},
			},
			{
				carrier: CarrierDHL,
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)WAYBILL\s*:?\s*([\d\s]+?)(?:\s{2,}|\n|$)`),
					regexp.MustCompile(`(?i)AWB\s*:?\s*([\d\s]+?)(?:\s{2,}|\n|$)`),
					regexp.MustCompile(`(?i)SHIPMENT\s*(?:NUMBER|ID|#)?\s*:?\s*([\d\s]+?)(?:\s{2,}|\n|$)`),
					regexp.MustCompile(`(?i)JD\d{18}`),
					regexp.MustCompile(`(\d{10,11})`),
				},
			},
		},
	}
}

func (s *carrierPatternStrategy) Try(text string) (string, string, bool) {
	for _, cp := range s.carriers {
		for _, pattern := range cp.patterns {
			raw, found := firstCapture(pattern, text)
			if !found {
				continue
			}
			tracking := models.NormalizeTracking(raw)
			if validateTracking(tracking, cp.carrier) {
				return tracking, cp.carrier, true
			}
		}
	}
	return "", "", false
}

// localizedPatternStrategy tries Italian shipment-label wording. The carrier
// is unknown at pattern level and gets re-derived from the candidate's shape.
type localizedPatternStrategy struct {
	patterns []*regexp.Regexp
}

func newLocalizedPatternStrategy() *localizedPatternStrategy {
	return &localizedPatternStrategy{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)N\.?\s*SPEDIZIONE\s*:?\s*([A-Z0-9\s]+?)(?:\s{2,}|\n|$)`),
			regexp.MustCompile(`(?i)LETTERA\s*(?:DI)?\s*VETTURA\s*:?\s*([A-Z0-9\s]+?)(?:\s{2,}|\n|$)`),
			regexp.MustCompile(`(?i)CODICE\s*TRACCIAMENTO\s*:?\s*([A-Z0-9\s]+?)(?:\s{2,}|\n|$)`),
			regexp.MustCompile(`(?i)SPEDIZIONE\s*N[°.]?\s*:?\s*([A-Z0-9\s]+?)(?:\s{2,}|\n|$)`),
			regexp.MustCompile(`(?i)NUMERO\s*SPEDIZIONE\s*:?\s*([A-Z0-9\s]+?)(?:\s{2,}|\n|$)`),
		},
	}
}

// localizedMinLength is the floor for candidates found via label wording alone.
const localizedMinLength = 8

func (s *localizedPatternStrategy) Try(text string) (string, string, bool) {
	for _, pattern := range s.patterns {
		raw, found := firstCapture(pattern, text)
		if !found {
			continue
		}
		tracking := models.NormalizeTracking(raw)
		if len(tracking) < localizedMinLength || isPhoneNumber(tracking) {
			continue
		}
		return tracking, DetectCarrier(tracking), true
	}
	return "", "", false
}

// genericPatternStrategy is the last resort: known prefixes with fixed length
// or long digit runs, anywhere on the page.
type genericPatternStrategy struct {
	patterns []*regexp.Regexp
}

func newGenericPatternStrategy() *genericPatternStrategy {
	return &genericPatternStrategy{
		patterns: []*regexp.Regexp{
			// UPS: 1Z + 16 chars
			regexp.MustCompile(`(?i)\b(1Z[A-Z0-9]{16})\b`),
			// Long numeric runs, common for FedEx and DHL
			regexp.MustCompile(`\b(\d{12,22})\b`),
			// DHL eCommerce: JD + 18 digits
			regexp.MustCompile(`(?i)\b(JD\d{18})\b`),
			// Alphanumeric near tracking keywords
			regexp.MustCompile(`(?i)(?:tracking|spedizione|waybill|awb)[^\n]{0,30}?([A-Z0-9]{10,20})`),
		},
	}
}

// genericMinLength is the floor for shape-only candidates.
const genericMinLength = 10

func (s *genericPatternStrategy) Try(text string) (string, string, bool) {
	for _, pattern := range s.patterns {
		raw, found := firstCapture(pattern, text)
		if !found {
			continue
		}
		tracking := models.NormalizeTracking(raw)
		if len(tracking) < genericMinLength || isPhoneNumber(tracking) {
			continue
		}
		return tracking, DetectCarrier(tracking), true
	}
	return "", "", false
}

// firstCapture returns the first capture group of the first match, falling
// back to the whole match for patterns without groups.
func firstCapture(pattern *regexp.Regexp, text string) (string, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) > 1 && m[1] != "" {
		return m[1], true
	}
	return m[0], true
}
