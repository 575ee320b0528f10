// Package report renders scan results for humans and machines: a terminal
// table, SARIF for code-scanning uploads, and a baseline file for accepting
// known findings.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/pagesentry/pagesentry/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
	// ShowValues prints full secret values instead of redacted ones.
	ShowValues bool
}

// PrintTable writes findings as a terminal table, highest risk first.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	findings = append([]types.Finding(nil), findings...)
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].RiskLevel != findings[j].RiskLevel {
			return findings[i].RiskLevel.Rank() > findings[j].RiskLevel.Rank()
		}
		return findings[i].Start < findings[j].Start
	})

	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("RISK", "CATEGORY", "RULE", "VALUE", "CONFIDENCE", "OFFSET")
		for _, f := range findings {
			risk := string(f.RiskLevel)
			if !opts.NoColor {
				risk = colorRisk(f.RiskLevel)
			}
			value := f.Redacted
			if opts.ShowValues {
				value = f.Value
			}
			table.Append([]string{
				risk,
				f.Category,
				f.RuleID,
				value,
				fmt.Sprintf("%.2f", f.Confidence),
				fmt.Sprintf("%d", f.Start),
			})
		}
		_ = table.Render()
	}

	critical, high, med, low := 0, 0, 0, 0
	for _, f := range findings {
		switch f.RiskLevel {
		case types.RiskCritical:
			critical++
		case types.RiskHigh:
			high++
		case types.RiskMedium:
			med++
		default:
			low++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (critical: %d, high: %d, medium: %d, low: %d)\n",
		len(findings), critical, high, med, low)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
}

// ShouldFail reports whether any finding meets the fail-on threshold. An
// unparseable threshold never fails the run.
func ShouldFail(findings []types.Finding, failOn string) bool {
	lvl, err := types.ParseRisk(failOn)
	if err != nil {
		return false
	}
	for _, f := range findings {
		if f.RiskLevel.Rank() >= lvl.Rank() {
			return true
		}
	}
	return false
}

func colorRisk(r types.RiskLevel) string {
	switch r {
	case types.RiskCritical:
		return "\x1b[35mcritical\x1b[0m" // magenta
	case types.RiskHigh:
		return "\x1b[31mhigh\x1b[0m" // red
	case types.RiskMedium:
		return "\x1b[33mmedium\x1b[0m" // yellow
	default:
		return "\x1b[36mlow\x1b[0m" // cyan
	}
}
