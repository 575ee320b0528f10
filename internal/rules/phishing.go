package rules

import "github.com/pagesentry/pagesentry/internal/types"

func phishingRules() []Rule {
	return []Rule{
		{
			ID:         "idn-homoglyph",
			Category:   "phishing",
			Kind:       KindStructural,
			Structural: "idn-homoglyph",
			BaseRisk:   types.RiskHigh,
			Keywords:   []string{"login", "verify", "account", "secure"},
		},
		{
			ID:         "suspicious-form",
			Category:   "phishing",
			Kind:       KindStructural,
			Structural: "suspicious-form",
			BaseRisk:   types.RiskMedium,
			Keywords:   []string{"password", "verify", "account"},
		},
		{
			ID:         "structured-secret",
			Category:   "generic",
			Kind:       KindStructural,
			Structural: "structured-secret",
			BaseRisk:   types.RiskHigh,
			Validators: []string{"not-placeholder", "min-entropy-3.5", "not-example-context"},
			Keywords:   []string{"config", "settings", "env"},
		},
	}
}
