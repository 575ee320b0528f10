package types

import (
	"fmt"
	"time"
)

// RiskLevel is a coarse-grained risk classification for a finding.
// Levels form a total order: low < medium < high < critical.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var riskRank = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Rank returns the position of the level in the total order, or -1 for an
// unknown level.
func (r RiskLevel) Rank() int {
	if n, ok := riskRank[r]; ok {
		return n
	}
	return -1
}

// Valid reports whether the level is one of the four known levels.
func (r RiskLevel) Valid() bool { return r.Rank() >= 0 }

// ParseRisk converts a string to a RiskLevel.
func ParseRisk(s string) (RiskLevel, error) {
	r := RiskLevel(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown risk level %q", s)
	}
	return r, nil
}

// MaxRisk returns the higher of two levels.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Span is a structural match: byte offsets into the scanned buffer plus the
// matched value and a matcher-specific note for the finding rationale.
type Span struct {
	Start int
	End   int
	Value string
	Note  string
}

// StructuralFunc is a non-regex matcher over a content buffer. Structural
// rules reference implementations by ID through the rule registry.
type StructuralFunc func(content string) []Span

// Candidate is a raw pattern match before validation. Offsets are byte
// positions into the normalized content buffer. Candidates live only for the
// duration of a single scan pass.
type Candidate struct {
	RuleID   string
	Category string
	Value    string
	Start    int
	End      int
	Source   string
	// Context is the surrounding window captured at match time so that
	// validators stay pure functions of the candidate.
	Context string
	// Note carries structural-matcher detail for the finding rationale.
	Note string
}

// Finding describes a validated, scored detection. Immutable once created;
// the aggregator may merge duplicates but never mutates a stored value.
type Finding struct {
	Category   string    `json:"category"`
	Value      string    `json:"value"`
	Redacted   string    `json:"redacted"`
	RuleID     string    `json:"rule_id"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Confidence float64   `json:"confidence"`
	Rationale  []string  `json:"rationale,omitempty"`
	Source     string    `json:"source,omitempty"`
	Start      int       `json:"start"`
	Timestamp  time.Time `json:"timestamp"`
}

// State is the terminal state of a scan.
type State string

const (
	StateCompleted State = "completed"
	StateTimedOut  State = "timed_out"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// Metrics captures per-scan counters for reporting.
type Metrics struct {
	Duration          time.Duration `json:"duration"`
	PatternsEvaluated int           `json:"patterns_evaluated"`
	MatchesFound      int           `json:"matches_found"`
	ContentBytes      int           `json:"content_bytes"`
}

// ScanResult is the finalized output of one scan invocation. A TimedOut or
// Cancelled result with Truncated set is valid, partial output, not an error.
type ScanResult struct {
	ScanID   string    `json:"scan_id"`
	State    State     `json:"state"`
	Findings []Finding `json:"findings"`
	Metrics  Metrics   `json:"metrics"`
	// Truncated is set when any rule's matching was abandoned due to a
	// time budget. Already-found candidates are kept.
	Truncated bool `json:"truncated"`
	// Content is the normalized buffer the finding offsets refer to.
	// Hosts must redact against this string, not the raw input.
	Content string `json:"-"`
}
