package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/pagesentry/pagesentry/internal/types"
)

const toolURI = "https://github.com/pagesentry/pagesentry"

// WriteSARIF writes a scan result as SARIF 2.1.0. Findings become results
// against a synthetic artifact named after the scan source; the region start
// column carries the byte offset into the normalized content.
func WriteSARIF(w io.Writer, res types.ScanResult, version string) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("create sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("pagesentry", toolURI)
	run.Tool.Driver.WithVersion(version)

	seen := map[string]bool{}
	for _, f := range res.Findings {
		if !seen[f.RuleID] {
			seen[f.RuleID] = true
			run.AddRule(f.RuleID).
				WithDescription(f.Category + " detection").
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: riskToLevel(f.RiskLevel),
				})
		}

		uri := f.Source
		if uri == "" {
			uri = "content"
		}
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(uri)).
				WithRegion(sarif.NewRegion().WithStartLine(1).WithStartColumn(f.Start + 1)),
		)

		result := sarif.NewRuleResult(f.RuleID).
			WithMessage(sarif.NewTextMessage(resultMessage(f))).
			WithLevel(riskToLevel(f.RiskLevel)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	doc.AddRun(run)
	return doc.PrettyWrite(w)
}

func resultMessage(f types.Finding) string {
	msg := fmt.Sprintf("%s: %s (confidence %.2f)", f.RuleID, f.Redacted, f.Confidence)
	if len(f.Rationale) > 0 {
		msg += ": " + strings.Join(f.Rationale, "; ")
	}
	return msg
}

func riskToLevel(r types.RiskLevel) string {
	switch r {
	case types.RiskCritical, types.RiskHigh:
		return "error"
	case types.RiskMedium:
		return "warning"
	default:
		return "note"
	}
}
