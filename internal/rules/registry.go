package rules

import (
	"fmt"
	"sync/atomic"

	"github.com/blang/semver/v4"
	"github.com/pagesentry/pagesentry/internal/types"
)

// ScoreTable maps (base risk, confidence bucket) to a final risk level.
// Buckets are "low", "medium", "high". The table ships with the rule payload
// because scoring weights are tuning data, not engine logic.
type ScoreTable map[types.RiskLevel]map[string]types.RiskLevel

// ruleSet is the immutable unit the registry swaps atomically.
type ruleSet struct {
	version semver.Version
	rules   []Rule
	table   ScoreTable
}

// Registry owns the active rule set. Loads replace it wholesale; readers see
// either the fully-old or fully-new set, never a mix.
type Registry struct {
	active atomic.Pointer[ruleSet]
}

// New creates a registry seeded with the given rules. Invalid rules are
// rejected and returned as InvalidRuleErrors; the registry keeps the rest.
func New(version string, rs []Rule) (*Registry, []error, error) {
	v, err := semver.Parse(version)
	if err != nil {
		return nil, nil, fmt.Errorf("parse rule set version %q: %w", version, err)
	}
	valid, rejected := checkAll(rs)
	r := &Registry{}
	r.active.Store(&ruleSet{version: v, rules: valid})
	return r, rejected, nil
}

// NewBuiltin creates a registry holding the compiled-in rule set.
func NewBuiltin() *Registry {
	r, rejected, err := New(BuiltinVersion, Builtin())
	if err != nil || len(rejected) > 0 {
		// Built-in rules are checked by tests; reaching this is a bug.
		panic(fmt.Sprintf("builtin rule set invalid: %v %v", rejected, err))
	}
	return r
}

// All returns the active rules in evaluation order. The returned slice is
// shared and must not be mutated.
func (r *Registry) All() []Rule {
	return r.active.Load().rules
}

// Version returns the active rule set version.
func (r *Registry) Version() string {
	return r.active.Load().version.String()
}

// Table returns the active score table override, or nil when the default
// table applies.
func (r *Registry) Table() ScoreTable {
	return r.active.Load().table
}

// Replace installs a new rule set. The version must be >= the active version
// (downgrades are rejected wholesale). Individual invalid rules are excluded
// and reported, not fatal; a payload with no valid rules is rejected.
func (r *Registry) Replace(version string, rs []Rule, table ScoreTable) ([]error, error) {
	v, err := semver.Parse(version)
	if err != nil {
		return nil, fmt.Errorf("parse rule set version %q: %w", version, err)
	}
	if cur := r.active.Load(); v.LT(cur.version) {
		return nil, fmt.Errorf("rule set version %s is older than active %s", v, cur.version)
	}
	valid, rejected := checkAll(rs)
	if len(valid) == 0 {
		return rejected, fmt.Errorf("rule set %s contains no valid rules", v)
	}
	r.active.Store(&ruleSet{version: v, rules: valid, table: table})
	return rejected, nil
}

func checkAll(rs []Rule) (valid []Rule, rejected []error) {
	seen := make(map[string]bool, len(rs))
	for _, rule := range rs {
		if err := rule.Check(); err != nil {
			rejected = append(rejected, err)
			continue
		}
		if seen[rule.ID] {
			rejected = append(rejected, &InvalidRuleError{RuleID: rule.ID, Reason: "duplicate id"})
			continue
		}
		seen[rule.ID] = true
		valid = append(valid, rule)
	}
	return valid, rejected
}
