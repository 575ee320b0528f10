package rules

import (
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	reDBURI    = regexp.MustCompile(`\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|redis|amqps?)://[^\s:@"']+:([^\s@"']+)@[^\s"']+`)
	reMSSQLStr = regexp.MustCompile(`(?i)(?:Server|Data Source)\s*=\s*[^;]+;[^;]*(?:Password|Pwd)\s*=\s*([^;\s]+)`)
)

func databaseRules() []Rule {
	return []Rule{
		{
			ID:         "db-uri-credentials",
			Category:   "database",
			Kind:       KindRegex,
			Pattern:    reDBURI,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"not-example-context", "not-placeholder", "not-suppressed"},
			Keywords:   []string{"database", "connection", "dsn", "uri"},
		},
		{
			ID:         "mssql-connection-string",
			Category:   "database",
			Kind:       KindRegex,
			Pattern:    reMSSQLStr,
			BaseRisk:   types.RiskCritical,
			Validators: []string{"not-example-context", "not-placeholder"},
			Keywords:   []string{"server", "password", "connection"},
		},
	}
}
