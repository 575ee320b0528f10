package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	rePrivateKey = regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`)
	reJWT        = regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*\b`)
)

func keyRules() []Rule {
	return []Rule{
		{
			ID:       "private-key-block",
			Category: "private-key",
			Kind:     KindRegex,
			Pattern:  rePrivateKey,
			BaseRisk: types.RiskCritical,
			Keywords: []string{"private", "key", "pem", "ssh"},
		},
		{
			ID:         "jwt",
			Category:   "jwt",
			Kind:       KindRegex,
			Pattern:    reJWT,
			BaseRisk:   types.RiskMedium,
			Validators: []string{"jwt-structure", "not-example-context"},
			Keywords:   []string{"token", "bearer", "authorization", "jwt"},
		},
	}
}
