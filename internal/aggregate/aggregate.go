// Package aggregate deduplicates findings across rules and scan passes. The
// same secret reported by two rules, or found twice in the buffer, collapses
// into one finding carrying the highest risk seen.
package aggregate

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/pagesentry/pagesentry/internal/types"
)

// Key identifies a finding for dedup purposes. Values are compared
// case-insensitively with surrounding whitespace stripped, so the stored
// finding keeps its original casing while near-identical repeats collapse.
func Key(category, value string) uint64 {
	return xxhash.Sum64String(category + "|" + strings.ToLower(strings.TrimSpace(value)))
}

// Aggregator accumulates findings in first-seen order. Not safe for
// concurrent use; each scan owns its own instance.
type Aggregator struct {
	index    map[uint64]int
	findings []types.Finding
}

func New() *Aggregator {
	return &Aggregator{index: make(map[uint64]int)}
}

// Add records a finding, merging it into an existing entry when the
// (category, value) pair was already seen. Merging keeps the first-seen
// offset and timestamp, promotes risk and confidence to the maximum
// observed, and appends any rationale lines not already present.
func (a *Aggregator) Add(f types.Finding) {
	k := Key(f.Category, f.Value)
	i, seen := a.index[k]
	if !seen {
		a.index[k] = len(a.findings)
		a.findings = append(a.findings, f)
		return
	}

	cur := &a.findings[i]
	cur.RiskLevel = types.MaxRisk(cur.RiskLevel, f.RiskLevel)
	if f.Confidence > cur.Confidence {
		cur.Confidence = f.Confidence
	}
	for _, r := range f.Rationale {
		if !containsLine(cur.Rationale, r) {
			cur.Rationale = append(cur.Rationale, r)
		}
	}
}

// Findings returns the merged findings in first-seen order. The returned
// slice is a copy; callers may retain it past further Adds.
func (a *Aggregator) Findings() []types.Finding {
	out := make([]types.Finding, len(a.findings))
	copy(out, a.findings)
	return out
}

// Len reports the number of distinct findings so far.
func (a *Aggregator) Len() int { return len(a.findings) }

func containsLine(lines []string, s string) bool {
	for _, l := range lines {
		if l == s {
			return true
		}
	}
	return false
}
