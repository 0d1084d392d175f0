package domain

import "strings"

// Status is the reconciliation outcome for an audit record.
type Status string

const (
	StatusMatch   Status = "match"
	StatusGain    Status = "gain"
	StatusLoss    Status = "loss"
	StatusUnknown Status = "unknown"
)

// StatusKeywords configures the free-text status classifier. Keyword lists
// are substring-matched against lowercased, space-stripped cell text.
type StatusKeywords struct {
	Match []string
	Gain  []string
	Loss  []string
}

// DefaultStatusKeywords covers the spellings and localized variants seen in
// the audit sheets.
func DefaultStatusKeywords() StatusKeywords {
	return StatusKeywords{
		Match: []string{"match", "ok", "مطابق"},
		Gain:  []string{"extra", "gain", "increase", "زيادة", "فائض", "بزيادة"},
		Loss:  []string{"miss", "loss", "decrease", "ناقص", "عجز", "بعجز"},
	}
}

// Classify maps raw status text onto a Status. Match keywords win over
// gain/loss so that strings like "matched" are never misread; a bare "+" or
// "-" is accepted as shorthand. Unrecognized or empty text yields
// StatusUnknown so callers can fall back to quantity comparison.
func (k StatusKeywords) Classify(raw string) Status {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = strings.ReplaceAll(text, " ", "")
	if text == "" {
		return StatusUnknown
	}
	if text == "+" {
		return StatusGain
	}
	if text == "-" {
		return StatusLoss
	}

	for _, kw := range k.Match {
		if strings.Contains(text, kw) {
			return StatusMatch
		}
	}
	for _, kw := range k.Gain {
		if strings.Contains(text, kw) {
			return StatusGain
		}
	}
	for _, kw := range k.Loss {
		if strings.Contains(text, kw) {
			return StatusLoss
		}
	}

	return StatusUnknown
}

// CompareQuantities derives a status from physical vs. system quantity.
func CompareQuantities(physical, system int) Status {
	switch {
	case physical > system:
		return StatusGain
	case physical < system:
		return StatusLoss
	default:
		return StatusMatch
	}
}
