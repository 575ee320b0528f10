package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	reAWSAccess = regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`)
	// Broad 40-char base64ish value; only reported next to a secret-key label.
	reAWSSecret = regexp.MustCompile(`(?i)aws_?secret_?(?:access_?)?key["'\s:=]+([A-Za-z0-9/+=]{40})`)
)

func awsRules() []Rule {
	return []Rule{
		{
			ID:         "aws-access-key",
			Category:   "aws",
			Kind:       KindRegex,
			Pattern:    reAWSAccess,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"aws-access-key", "not-suppressed"},
			Keywords:   []string{"aws", "key", "secret", "access"},
		},
		{
			ID:         "aws-secret-key",
			Category:   "aws",
			Kind:       KindRegex,
			Pattern:    reAWSSecret,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"min-entropy-3.5", "not-example-context", "not-suppressed"},
			Keywords:   []string{"aws", "secret", "key"},
		},
	}
}
