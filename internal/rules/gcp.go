package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	reGoogleAPIKey = regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}\b`)
	reGCPSAKey     = regexp.MustCompile(`"type"\s*:\s*"service_account"`)
)

func gcpRules() []Rule {
	return []Rule{
		{
			ID:         "google-api-key",
			Category:   "gcp",
			Kind:       KindRegex,
			Pattern:    reGoogleAPIKey,
			BaseRisk:   types.RiskHigh,
			Validators: []string{"not-example-context", "not-suppressed"},
			Keywords:   []string{"google", "api", "key", "maps", "firebase"},
		},
		{
			ID:       "gcp-service-account",
			Category: "gcp",
			Kind:     KindRegex,
			Pattern:  reGCPSAKey,
			BaseRisk: types.RiskCritical,
			Keywords: []string{"service_account", "private_key", "gcp"},
		},
	}
}
