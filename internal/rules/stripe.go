package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	reStripeSecret = regexp.MustCompile(`\bsk_live_[A-Za-z0-9]{24,}\b`)
	reStripePub    = regexp.MustCompile(`\bpk_live_[A-Za-z0-9]{24,}\b`)
)

func stripeRules() []Rule {
	return []Rule{
		{
			ID:         "stripe-secret-key",
			Category:   "stripe",
			Kind:       KindRegex,
			Pattern:    reStripeSecret,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"not-suppressed"},
			Keywords:   []string{"stripe", "secret", "live"},
		},
		{
			// Publishable keys are meant to be client-side; low risk, still
			// worth surfacing since they identify the account.
			ID:       "stripe-publishable-key",
			Category: "stripe",
			Kind:     KindRegex,
			Pattern:  reStripePub,
			BaseRisk: types.RiskLow,
			Keywords: []string{"stripe"},
		},
	}
}
