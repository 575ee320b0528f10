package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	reBearer     = regexp.MustCompile(`(?i)bearer\s+([A-Za-z0-9_\-.=]{20,})`)
	reGenericKey = regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|access[_-]?token)["'\s:=]+([A-Za-z0-9_-]{20,64})`)
	reEntropyish = regexp.MustCompile(`\b[A-Za-z0-9+/=_-]{32,}\b`)
	reCardNumber = regexp.MustCompile(`\b(?:\d[ -]?){13,19}\b`)
)

func genericRules() []Rule {
	return []Rule{
		{
			ID:         "bearer-token",
			Category:   "generic",
			Kind:       KindRegex,
			Pattern:    reBearer,
			BaseRisk:   types.RiskHigh,
			Validators: []string{"min-entropy-3.5", "not-example-context", "not-suppressed"},
			Keywords:   []string{"authorization", "bearer", "token"},
		},
		{
			ID:         "generic-api-key",
			Category:   "generic",
			Kind:       KindRegex,
			Pattern:    reGenericKey,
			BaseRisk:   types.RiskHigh,
			Validators: []string{"not-placeholder", "min-entropy-3.5", "not-example-context", "not-suppressed"},
			Keywords:   []string{"api", "key", "token", "secret"},
		},
		{
			// Broad entropy sweep; validators carry the full burden here,
			// so base risk stays medium and minified blobs are excluded.
			ID:         "high-entropy-token",
			Category:   "generic",
			Kind:       KindRegex,
			Pattern:    reEntropyish,
			BaseRisk:   types.RiskMedium,
			Validators: []string{"not-placeholder", "min-entropy-4.0", "not-minified", "not-example-context", "not-suppressed"},
			Keywords:   []string{"secret", "token", "password", "key", "credential"},
		},
		{
			ID:         "payment-card-number",
			Category:   "payment",
			Kind:       KindRegex,
			Pattern:    reCardNumber,
			BaseRisk:   types.RiskHigh,
			Validators: []string{"luhn", "not-example-context"},
			Keywords:   []string{"card", "payment", "credit", "cvv"},
		},
	}
}
