package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	reOpenAIProject = regexp.MustCompile(`\bsk-proj-[A-Za-z0-9_-]{40,}\b`)
	reOpenAILegacy  = regexp.MustCompile(`\bsk-[A-Za-z0-9]{40,}\b`)
	reAnthropic     = regexp.MustCompile(`\bsk-ant-[A-Za-z0-9_-]{30,}\b`)
)

func aiRules() []Rule {
	return []Rule{
		{
			ID:         "openai-project-key",
			Category:   "openai",
			Kind:       KindRegex,
			Pattern:    reOpenAIProject,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"not-suppressed"},
			Keywords:   []string{"openai", "api", "key"},
		},
		{
			ID:         "openai-api-key",
			Category:   "openai",
			Kind:       KindRegex,
			Pattern:    reOpenAILegacy,
			BaseRisk:   types.RiskHigh,
			Validators: []string{"min-entropy-3.5", "not-example-context", "not-suppressed"},
			Keywords:   []string{"openai", "api", "key", "secret"},
		},
		{
			ID:         "anthropic-api-key",
			Category:   "anthropic",
			Kind:       KindRegex,
			Pattern:    reAnthropic,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"not-suppressed"},
			Keywords:   []string{"anthropic", "claude", "api"},
		},
	}
}
