package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	reSlackToken   = regexp.MustCompile(`\bxox[baprs]-[0-9]{10,13}-[0-9]{10,13}[A-Za-z0-9-]*\b`)
	reSlackWebhook = regexp.MustCompile(`https://hooks\.slack\.com/services/T[A-Za-z0-9_]+/B[A-Za-z0-9_]+/[A-Za-z0-9_]+`)
)

func slackRules() []Rule {
	return []Rule{
		{
			ID:         "slack-token",
			Category:   "slack",
			Kind:       KindRegex,
			Pattern:    reSlackToken,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"not-example-context", "not-suppressed"},
			Keywords:   []string{"slack", "token", "bot"},
		},
		{
			ID:       "slack-webhook",
			Category: "slack",
			Kind:     KindRegex,
			Pattern:  reSlackWebhook,
			BaseRisk: types.RiskHigh,
			Keywords: []string{"slack", "webhook"},
		},
	}
}
