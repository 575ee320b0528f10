package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

// PAT formats evolve; cover ghp_, gho_, ghu_, ghs_, ghr_ and fine-grained.
var (
	reGitHubPAT  = regexp.MustCompile(`\bg(?:hp|ho|hu|hs|hr)_[A-Za-z0-9]{36}\b`)
	reGitHubFine = regexp.MustCompile(`\bgithub_pat_[A-Za-z0-9_]{22,}\b`)
)

func githubRules() []Rule {
	return []Rule{
		{
			ID:         "github-token",
			Category:   "github",
			Kind:       KindRegex,
			Pattern:    reGitHubPAT,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"github-token", "not-example-context", "not-suppressed"},
			Keywords:   []string{"github", "token", "pat"},
		},
		{
			ID:         "github-fine-grained-pat",
			Category:   "github",
			Kind:       KindRegex,
			Pattern:    reGitHubFine,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"min-entropy-3.5", "not-suppressed"},
			Keywords:   []string{"github", "token"},
		},
	}
}
