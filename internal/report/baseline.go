package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pagesentry/pagesentry/internal/aggregate"
	"github.com/pagesentry/pagesentry/internal/types"
)

// Baseline is a set of accepted findings. Entries are keyed by the same
// (category, value) hash the aggregator uses, so a baselined secret stays
// suppressed wherever it reappears in the content.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func key(f types.Finding) string {
	return fmt.Sprintf("%016x", aggregate.Key(f.Category, f.Value))
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	buf, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(buf, &b); err != nil {
		return b, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[key(f)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// FilterNewFindings drops findings already present in the baseline.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[key(f)] {
			out = append(out, f)
		}
	}
	return out
}
