// internal/analytics/resolver.go
package analytics

import (
	"strings"
	"unicode"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

// NormalizeHeader lowercases header text and strips all whitespace so that
// "Final QTY", "finalqty" and "FinalQTY" collide on the same key.
func NormalizeHeader(h string) string {
	var b strings.Builder
	b.Grow(len(h))
	for _, r := range strings.ToLower(h) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RowIndex maps normalized header names to the row's original keys. Building
// it once per row avoids re-scanning the header set for every field lookup.
type RowIndex struct {
	row  domain.RawRow
	keys map[string]string
}

// NewRowIndex indexes a raw row's headers by their normalized form. When two
// headers normalize to the same key the first one indexed wins.
func NewRowIndex(row domain.RawRow) RowIndex {
	ix := RowIndex{row: row, keys: make(map[string]string, len(row))}
	for k := range row {
		nk := NormalizeHeader(k)
		if _, ok := ix.keys[nk]; !ok {
			ix.keys[nk] = k
		}
	}
	return ix
}

// Resolve returns the value of the first candidate header present in the row,
// checked in candidate-list order. Candidates are supplied in descending
// priority so the most specific name wins when several plausible headers
// exist. Returns (nil, false) when no candidate matches.
func (ix RowIndex) Resolve(candidates ...string) (any, bool) {
	for _, c := range candidates {
		if key, ok := ix.keys[NormalizeHeader(c)]; ok {
			v := ix.row[key]
			if v == nil {
				continue
			}
			return v, true
		}
	}
	return nil, false
}

// String resolves a candidate list to a trimmed string, or "" on no match.
func (ix RowIndex) String(candidates ...string) string {
	v, ok := ix.Resolve(candidates...)
	if !ok {
		return ""
	}
	return strings.TrimSpace(cellString(v))
}
