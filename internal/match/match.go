// Package match runs the rule set against a content buffer and produces raw
// candidates. Matching is stateless and re-entrant: the same content and
// rules always yield the same candidate set, in the same order.
package match

import (
	"context"
	"time"

	"github.com/pagesentry/pagesentry/internal/rules"
	"github.com/pagesentry/pagesentry/internal/types"
)

// Limits bounds a single matching pass. Zero values take the defaults.
type Limits struct {
	// PerRule bounds matching time for one rule; exceeding it abandons
	// that rule's remaining matching but keeps found candidates.
	PerRule time.Duration
	// Total bounds the whole pass across rules.
	Total time.Duration
	// MaxPerRule caps candidates collected per rule.
	MaxPerRule int
	// Window is the context radius in bytes captured around each match.
	Window int
}

const (
	defaultPerRule    = 50 * time.Millisecond
	defaultTotal      = 500 * time.Millisecond
	defaultMaxPerRule = 200
	defaultWindow     = 40
	// budgetCheckEvery bounds how often the clock is read inside a rule.
	budgetCheckEvery = 64
)

func (l Limits) withDefaults() Limits {
	if l.PerRule <= 0 {
		l.PerRule = defaultPerRule
	}
	if l.Total <= 0 {
		l.Total = defaultTotal
	}
	if l.MaxPerRule <= 0 {
		l.MaxPerRule = defaultMaxPerRule
	}
	if l.Window <= 0 {
		l.Window = defaultWindow
	}
	return l
}

// Output is the result of one matching pass. Content is the normalized
// buffer all candidate offsets refer to.
type Output struct {
	Candidates        []types.Candidate
	Content           string
	Truncated         bool
	PatternsEvaluated int
}

// Run matches all rules against content. The content is normalized once up
// front. Budgets and cancellation are checked at rule boundaries (and
// periodically inside long regex rules); matching never stops mid-candidate,
// which keeps the candidate set deterministic for any non-truncated run.
func Run(ctx context.Context, content string, ruleSet []rules.Rule, lim Limits, source string) Output {
	lim = lim.withDefaults()
	normalized := Normalize(content)
	muted := suppressedSpans(normalized)

	out := Output{Content: normalized}
	start := time.Now()
	globalDeadline := start.Add(lim.Total)
	if d, ok := ctx.Deadline(); ok && d.Before(globalDeadline) {
		globalDeadline = d
	}

	for _, rule := range ruleSet {
		if ctx.Err() != nil || time.Now().After(globalDeadline) {
			out.Truncated = true
			break
		}
		out.PatternsEvaluated++

		var found []types.Candidate
		var ruleTruncated bool
		switch rule.Kind {
		case rules.KindStructural:
			found = matchStructural(normalized, rule, lim, muted, source)
		default:
			found, ruleTruncated = matchRegex(normalized, rule, lim, globalDeadline, muted, source)
		}
		out.Candidates = append(out.Candidates, found...)
		if ruleTruncated {
			out.Truncated = true
		}
	}
	return out
}

// matchRegex collects non-overlapping matches left to right. The per-rule
// budget is checked every budgetCheckEvery matches; overruns abandon the
// rest of the rule and flag truncation.
func matchRegex(content string, rule rules.Rule, lim Limits, globalDeadline time.Time, muted []span, source string) ([]types.Candidate, bool) {
	ruleDeadline := time.Now().Add(lim.PerRule)
	if globalDeadline.Before(ruleDeadline) {
		ruleDeadline = globalDeadline
	}

	var out []types.Candidate
	pos := 0
	sinceCheck := 0
	for pos < len(content) {
		m := rule.Pattern.FindStringSubmatchIndex(content[pos:])
		if m == nil {
			break
		}
		// Prefer the first capture group as the secret value when present.
		vs, ve := m[0], m[1]
		if len(m) >= 4 && m[2] >= 0 {
			vs, ve = m[2], m[3]
		}
		vs += pos
		ve += pos

		if !inSpans(muted, vs) {
			out = append(out, candidate(content, rule, vs, ve, lim.Window, source))
			if len(out) >= lim.MaxPerRule {
				return out, true
			}
		}

		next := pos + m[1]
		if next <= pos {
			next = pos + 1
		}
		pos = next

		sinceCheck++
		if sinceCheck >= budgetCheckEvery {
			sinceCheck = 0
			if time.Now().After(ruleDeadline) {
				return out, true
			}
		}
	}
	return out, false
}

func matchStructural(content string, rule rules.Rule, lim Limits, muted []span, source string) []types.Candidate {
	f, ok := rules.StructuralMatcher(rule.Structural)
	if !ok {
		// Unknown matchers are rejected at load; a miss here is isolated
		// to this rule, never fatal to the scan.
		return nil
	}
	var out []types.Candidate
	for _, s := range f(content) {
		if inSpans(muted, s.Start) {
			continue
		}
		c := candidate(content, rule, s.Start, s.End, lim.Window, source)
		c.Note = s.Note
		out = append(out, c)
		if len(out) >= lim.MaxPerRule {
			break
		}
	}
	return out
}

func candidate(content string, rule rules.Rule, start, end, window int, source string) types.Candidate {
	ws := start - window
	if ws < 0 {
		ws = 0
	}
	we := end + window
	if we > len(content) {
		we = len(content)
	}
	return types.Candidate{
		RuleID:   rule.ID,
		Category: rule.Category,
		Value:    content[start:end],
		Start:    start,
		End:      end,
		Source:   source,
		Context:  content[ws:we],
	}
}
