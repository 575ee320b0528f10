package score

import (
	"github.com/pagesentry/pagesentry/internal/rules"
	"github.com/pagesentry/pagesentry/internal/types"
)

// DefaultTable is the built-in (base risk, confidence bucket) lookup. Rows
// are monotonic in confidence and never exceed their base risk. Payloads may
// ship a replacement table alongside new rules.
func DefaultTable() rules.ScoreTable {
	return rules.ScoreTable{
		types.RiskCritical: {
			"low":    types.RiskHigh,
			"medium": types.RiskCritical,
			"high":   types.RiskCritical,
		},
		types.RiskHigh: {
			"low":    types.RiskMedium,
			"medium": types.RiskHigh,
			"high":   types.RiskHigh,
		},
		types.RiskMedium: {
			"low":    types.RiskLow,
			"medium": types.RiskMedium,
			"high":   types.RiskMedium,
		},
		types.RiskLow: {
			"low":    types.RiskLow,
			"medium": types.RiskLow,
			"high":   types.RiskLow,
		},
	}
}
