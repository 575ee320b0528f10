package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	reSendGrid  = regexp.MustCompile(`\bSG\.[A-Za-z0-9_-]{22}\.[A-Za-z0-9_-]{43}\b`)
	reTwilioSID = regexp.MustCompile(`\bAC[a-f0-9]{32}\b`)
	reTwilioKey = regexp.MustCompile(`\bSK[a-f0-9]{32}\b`)
	reNPMToken  = regexp.MustCompile(`\bnpm_[A-Za-z0-9]{36}\b`)
)

func saasRules() []Rule {
	return []Rule{
		{
			ID:       "sendgrid-api-key",
			Category: "sendgrid",
			Kind:     KindRegex,
			Pattern:  reSendGrid,
			BaseRisk: types.RiskCritical,
			Keywords: []string{"sendgrid", "api", "key"},
		},
		{
			ID:         "twilio-account-sid",
			Category:   "twilio",
			Kind:       KindRegex,
			Pattern:    reTwilioSID,
			BaseRisk:   types.RiskMedium,
			Validators: []string{"not-example-context"},
			Keywords:   []string{"twilio", "sid", "account"},
		},
		{
			ID:         "twilio-api-key",
			Category:   "twilio",
			Kind:       KindRegex,
			Pattern:    reTwilioKey,
			BaseRisk:   types.RiskHigh,
			Validators: []string{"not-example-context"},
			Keywords:   []string{"twilio", "api", "key"},
		},
		{
			ID:         "npm-token",
			Category:   "npm",
			Kind:       KindRegex,
			Pattern:    reNPMToken,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"not-suppressed"},
			Keywords:   []string{"npm", "token", "registry"},
		},
	}
}
