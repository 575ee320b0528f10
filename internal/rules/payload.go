package rules

import (
	"fmt"
	"regexp"

	"github.com/pagesentry/pagesentry/internal/types"
	yaml "gopkg.in/yaml.v3"
)

// Payload is the wire shape of a full rule-set update. Signature checking of
// the payload belongs to the distribution pipeline, not here.
type Payload struct {
	Version    string                       `yaml:"version"`
	ScoreTable map[string]map[string]string `yaml:"score_table,omitempty"`
	Rules      []PayloadRule                `yaml:"rules"`
}

// PayloadRule is one rule record in a payload.
type PayloadRule struct {
	ID         string   `yaml:"id"`
	Category   string   `yaml:"category"`
	Kind       string   `yaml:"kind"`
	Pattern    string   `yaml:"pattern,omitempty"`
	Structural string   `yaml:"structural,omitempty"`
	BaseRisk   string   `yaml:"base_risk"`
	Validators []string `yaml:"validators,omitempty"`
	Keywords   []string `yaml:"keywords,omitempty"`
}

// Load parses a YAML payload and replaces the registry's active set.
// Per-rule failures (bad pattern, unknown category or validator) reject only
// that rule and are returned for reporting; payload-level failures (bad YAML,
// version downgrade, empty set) abort the whole load.
func (r *Registry) Load(data []byte) ([]error, error) {
	var p Payload
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse rule payload: %w", err)
	}
	if p.Version == "" {
		return nil, fmt.Errorf("rule payload missing version")
	}

	var rejected []error
	rs := make([]Rule, 0, len(p.Rules))
	for _, pr := range p.Rules {
		rule, err := pr.compile()
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		rs = append(rs, rule)
	}

	table, err := parseScoreTable(p.ScoreTable)
	if err != nil {
		return rejected, err
	}

	more, err := r.Replace(p.Version, rs, table)
	return append(rejected, more...), err
}

// compile turns a payload record into a Rule. The returned error is always
// an *InvalidRuleError.
func (pr PayloadRule) compile() (Rule, error) {
	rule := Rule{
		ID:         pr.ID,
		Category:   pr.Category,
		Kind:       Kind(pr.Kind),
		Structural: pr.Structural,
		BaseRisk:   types.RiskLevel(pr.BaseRisk),
		Validators: pr.Validators,
		Keywords:   pr.Keywords,
	}
	if rule.Kind == KindRegex {
		if pr.Pattern == "" {
			return Rule{}, &InvalidRuleError{RuleID: pr.ID, Reason: "regex rule has no pattern"}
		}
		re, err := regexp.Compile(pr.Pattern)
		if err != nil {
			return Rule{}, &InvalidRuleError{RuleID: pr.ID, Reason: fmt.Sprintf("unparsable pattern: %v", err)}
		}
		rule.Pattern = re
	}
	if err := rule.Check(); err != nil {
		return Rule{}, err
	}
	return rule, nil
}

func parseScoreTable(raw map[string]map[string]string) (ScoreTable, error) {
	if raw == nil {
		return nil, nil
	}
	table := make(ScoreTable, len(raw))
	for base, buckets := range raw {
		baseRisk, err := types.ParseRisk(base)
		if err != nil {
			return nil, fmt.Errorf("score table: %w", err)
		}
		row := make(map[string]types.RiskLevel, len(buckets))
		for bucket, final := range buckets {
			switch bucket {
			case "low", "medium", "high":
			default:
				return nil, fmt.Errorf("score table: unknown confidence bucket %q", bucket)
			}
			finalRisk, err := types.ParseRisk(final)
			if err != nil {
				return nil, fmt.Errorf("score table: %w", err)
			}
			row[bucket] = finalRisk
		}
		table[baseRisk] = row
	}
	return table, nil
}
