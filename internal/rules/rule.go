// Package rules defines detection rules and the registry that owns them.
// Rules are immutable once loaded; the registry replaces the active set
// wholesale so a running scan never observes a half-updated rule set.
package rules

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/pagesentry/pagesentry/internal/phish"
	"github.com/pagesentry/pagesentry/internal/structured"
	"github.com/pagesentry/pagesentry/internal/types"
	"github.com/pagesentry/pagesentry/internal/validate"
)

// Kind distinguishes how a rule matches content.
type Kind string

const (
	// KindRegex rules match with a compiled regular expression.
	KindRegex Kind = "regex"
	// KindStructural rules delegate to a registered structural matcher.
	KindStructural Kind = "structural"
)

// Categories is the recognized category taxonomy. A rule outside it is
// rejected at load.
var Categories = map[string]bool{
	"aws":         true,
	"github":      true,
	"gcp":         true,
	"slack":       true,
	"stripe":      true,
	"openai":      true,
	"anthropic":   true,
	"sendgrid":    true,
	"twilio":      true,
	"npm":         true,
	"database":    true,
	"private-key": true,
	"jwt":         true,
	"generic":     true,
	"payment":     true,
	"phishing":    true,
}

// Rule is a named detector. BaseRisk caps the final risk of any finding the
// rule produces. Validators is an ordered chain of validate IDs; an empty
// chain means the pattern match alone is sufficient evidence. Keywords are
// context words that raise confidence when found near a match.
type Rule struct {
	ID         string
	Category   string
	Kind       Kind
	Pattern    *regexp.Regexp
	Structural string
	BaseRisk   types.RiskLevel
	Validators []string
	Keywords   []string
}

// structuralMatchers maps structural rule IDs to implementations.
var structuralMatchers = map[string]types.StructuralFunc{
	"idn-homoglyph":     phish.HomoglyphDomains,
	"suspicious-form":   phish.SuspiciousForms,
	"structured-secret": structured.Secrets,
}

// StructuralMatcher resolves a structural matcher by ID.
func StructuralMatcher(id string) (types.StructuralFunc, bool) {
	f, ok := structuralMatchers[id]
	return f, ok
}

// ErrInvalidRule is the sentinel all per-rule load failures wrap.
var ErrInvalidRule = errors.New("invalid rule")

// InvalidRuleError describes why a single rule was rejected at load. It is
// never fatal to the load; the rule is excluded and the rest proceed.
type InvalidRuleError struct {
	RuleID string
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid rule %q: %s", e.RuleID, e.Reason)
}

func (e *InvalidRuleError) Unwrap() error { return ErrInvalidRule }

// Check validates a rule's shape. It is run for every rule entering the
// registry, built-in or loaded.
func (r Rule) Check() error {
	if r.ID == "" {
		return &InvalidRuleError{RuleID: "(empty)", Reason: "missing id"}
	}
	if !Categories[r.Category] {
		return &InvalidRuleError{RuleID: r.ID, Reason: fmt.Sprintf("unrecognized category %q", r.Category)}
	}
	if !r.BaseRisk.Valid() {
		return &InvalidRuleError{RuleID: r.ID, Reason: fmt.Sprintf("unknown base risk %q", r.BaseRisk)}
	}
	switch r.Kind {
	case KindRegex:
		if r.Pattern == nil {
			return &InvalidRuleError{RuleID: r.ID, Reason: "regex rule has no pattern"}
		}
	case KindStructural:
		if _, ok := structuralMatchers[r.Structural]; !ok {
			return &InvalidRuleError{RuleID: r.ID, Reason: fmt.Sprintf("unknown structural matcher %q", r.Structural)}
		}
	default:
		return &InvalidRuleError{RuleID: r.ID, Reason: fmt.Sprintf("unknown kind %q", r.Kind)}
	}
	for _, v := range r.Validators {
		if !validate.Known(v) {
			return &InvalidRuleError{RuleID: r.ID, Reason: fmt.Sprintf("unknown validator %q", v)}
		}
	}
	return nil
}
