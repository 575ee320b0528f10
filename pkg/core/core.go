package core

import (
	"context"

	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/redact"
	"github.com/pagesentry/pagesentry/internal/rules"
	"github.com/pagesentry/pagesentry/internal/scan"
	"github.com/pagesentry/pagesentry/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type (
	Options    = config.Options
	Finding    = types.Finding
	ScanResult = types.ScanResult
	RiskLevel  = types.RiskLevel
	State      = types.State
)

const (
	RiskLow      = types.RiskLow
	RiskMedium   = types.RiskMedium
	RiskHigh     = types.RiskHigh
	RiskCritical = types.RiskCritical
)

// ErrBusy and ErrScanFailed are the orchestrator's terminal errors, exposed
// so hosts can branch on them with errors.Is.
var (
	ErrBusy       = scan.ErrBusy
	ErrScanFailed = scan.ErrScanFailed
)

// Defaults returns the default scan options.
func Defaults() Options { return config.Defaults() }

// Scanner wraps the orchestrator and its rule registry for embedding hosts.
type Scanner struct {
	orch *scan.Orchestrator
}

// NewScanner creates a Scanner over the built-in rule set.
func NewScanner(opts Options) *Scanner {
	return &Scanner{orch: scan.New(rules.NewBuiltin(), opts, nil)}
}

// Scan runs one scan over a content buffer. source labels the content in
// findings and reports; a URL or file path works well.
func (s *Scanner) Scan(ctx context.Context, content, source string) (ScanResult, error) {
	return s.orch.Scan(ctx, content, source)
}

// LoadRules replaces the active rule set from a YAML payload. Individual
// invalid rules are reported and skipped; payload-level failures leave the
// active set untouched.
func (s *Scanner) LoadRules(payload []byte) (rejected []error, err error) {
	return s.orch.Registry().Load(payload)
}

// RulesVersion reports the active rule set version.
func (s *Scanner) RulesVersion() string { return s.orch.Registry().Version() }

// RuleIDs returns the IDs of the built-in rules in evaluation order.
// This is exposed for convenience to avoid importing internals directly.
func RuleIDs() []string { return rules.BuiltinIDs() }

// RedactContent returns the scan's normalized content with every finding's
// value masked, including repeats outside the recorded spans. Hosts that
// display scanned content should render this, never the raw buffer.
func RedactContent(res ScanResult) string {
	return redact.ApplyAll(res.Content, res.Findings)
}
