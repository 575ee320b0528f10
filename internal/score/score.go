// Package score turns validated candidates into findings. Base risk comes
// from the rule; confidence modulates the final level through a lookup table
// and can never raise it above the rule's base risk.
package score

import (
	"fmt"
	"strings"
	"time"

	"github.com/pagesentry/pagesentry/internal/rules"
	"github.com/pagesentry/pagesentry/internal/types"
	"github.com/pagesentry/pagesentry/internal/validate"
)

// Per-signal confidence contributions. No single signal may move confidence
// by more than signalCap, so one noisy validator cannot dominate the score.
const (
	baseConfidence    = 0.5
	signalCap         = 0.25
	perValidatorBonus = 0.08
	perKeywordBonus   = 0.10
	minifiedPenalty   = 0.20
)

// Scorer applies the confidence model and the (base risk, bucket) table.
type Scorer struct {
	table rules.ScoreTable
}

// New creates a Scorer. A nil table selects the default table; rule payloads
// may override it because the weights are tuning data.
func New(table rules.ScoreTable) *Scorer {
	if table == nil {
		table = DefaultTable()
	}
	return &Scorer{table: table}
}

// Score builds a Finding from a surviving candidate. validatorsPassed is how
// many chain entries passed; for rules with validators every passed check
// beyond the pattern match itself adds evidence.
func (s *Scorer) Score(c types.Candidate, rule rules.Rule, validatorsPassed int) types.Finding {
	conf := baseConfidence
	rationale := []string{fmt.Sprintf("rule %s matched", rule.ID)}

	if validatorsPassed > 0 {
		bonus := capSignal(float64(validatorsPassed) * perValidatorBonus)
		conf += bonus
		rationale = append(rationale, fmt.Sprintf("%d validators passed", validatorsPassed))
	}

	if hits := keywordHits(rule.Keywords, c.Context); hits > 0 {
		conf += capSignal(float64(hits) * perKeywordBonus)
		rationale = append(rationale, fmt.Sprintf("%d context keywords nearby", hits))
	}

	if validate.LooksMinified(c.Context) {
		conf -= minifiedPenalty
		rationale = append(rationale, "minified surroundings lower confidence")
	}

	if c.Note != "" {
		rationale = append(rationale, c.Note)
	}

	conf = clamp(conf)
	final := s.finalRisk(rule.BaseRisk, conf)

	return types.Finding{
		Category:   c.Category,
		Value:      c.Value,
		Redacted:   Mask(c.Value),
		RuleID:     rule.ID,
		RiskLevel:  final,
		Confidence: conf,
		Rationale:  rationale,
		Source:     c.Source,
		Start:      c.Start,
		Timestamp:  time.Now().UTC(),
	}
}

// finalRisk looks up the table and applies the monotonic cap: the result
// never exceeds the rule's base risk.
func (s *Scorer) finalRisk(base types.RiskLevel, conf float64) types.RiskLevel {
	final := base
	if row, ok := s.table[base]; ok {
		if lvl, ok := row[Bucket(conf)]; ok {
			final = lvl
		}
	}
	if final.Rank() > base.Rank() {
		final = base
	}
	return final
}

// Bucket maps a confidence value to its table bucket.
func Bucket(conf float64) string {
	switch {
	case conf < 0.4:
		return "low"
	case conf < 0.75:
		return "medium"
	default:
		return "high"
	}
}

func keywordHits(keywords []string, context string) int {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(context)
	hits := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			hits++
		}
	}
	return hits
}

func capSignal(v float64) float64 {
	if v > signalCap {
		return signalCap
	}
	return v
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Mask redacts a value for display, keeping the first and last four
// characters of anything long enough to stay unidentifiable.
func Mask(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}
