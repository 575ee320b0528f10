package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/pagesentry/pagesentry/internal/types"
)

// FileConfig is the on-disk YAML configuration shape for PageSentry. All
// fields are pointers so that an absent key is distinguishable from a zero
// value when merging with defaults.
type FileConfig struct {
	EnabledCategories  *string  `yaml:"enabled_categories"`
	DisabledCategories *string  `yaml:"disabled_categories"`
	RiskThreshold      *string  `yaml:"risk_threshold"`
	MinConfidence      *float64 `yaml:"min_confidence"`
	ScanTimeoutMs      *int     `yaml:"scan_timeout_ms"`
	PerRuleTimeoutMs   *int     `yaml:"per_rule_timeout_ms"`
	MaxConcurrentScans *int     `yaml:"max_concurrent_scans"`
	MaxQueuedScans     *int     `yaml:"max_queued_scans"`
	MaxFindingsPerRule *int     `yaml:"max_findings_per_rule"`
	ContextWindow      *int     `yaml:"context_window"`
	TrustedDomains     []string `yaml:"trusted_domains"`
	RulesFile          *string  `yaml:"rules_file"`
	LogLevel           *string  `yaml:"log_level"`
	NoColor            *bool    `yaml:"no_color"`
}

// Options is the resolved, merged runtime configuration handed to the scan
// orchestrator. Unlike FileConfig every field carries a usable value.
type Options struct {
	// EnabledCategories limits matching to these rule categories. Empty
	// means all categories.
	EnabledCategories []string
	// DisabledCategories removes categories after EnabledCategories is
	// applied.
	DisabledCategories []string
	// RiskThreshold drops findings scored below this level.
	RiskThreshold types.RiskLevel
	// MinConfidence drops findings below this confidence, on top of the
	// risk threshold.
	MinConfidence float64
	// ScanTimeoutMs bounds one whole scan pass.
	ScanTimeoutMs int
	// PerRuleTimeoutMs bounds a single rule's matching.
	PerRuleTimeoutMs int
	// MaxConcurrentScans bounds in-flight scans; further requests queue.
	MaxConcurrentScans int
	// MaxQueuedScans bounds the wait queue; beyond it scans are refused.
	MaxQueuedScans int
	// MaxFindingsPerRule caps candidates collected per rule.
	MaxFindingsPerRule int
	// ContextWindow is the byte radius captured around each match.
	ContextWindow int
	// TrustedDomains are glob patterns; phishing findings whose matched
	// domain fits one are suppressed.
	TrustedDomains []string
	RulesFile      string
	LogLevel       string
	NoColor        bool
}

// Defaults returns the baseline Options used when no file or flag overrides
// a field.
func Defaults() Options {
	return Options{
		RiskThreshold:      types.RiskLow,
		MinConfidence:      0,
		ScanTimeoutMs:      500,
		PerRuleTimeoutMs:   50,
		MaxConcurrentScans: 4,
		MaxQueuedScans:     16,
		MaxFindingsPerRule: 200,
		ContextWindow:      40,
		LogLevel:           "info",
	}
}

// Resolve merges a FileConfig over the defaults and validates the result.
func Resolve(fc FileConfig) (Options, error) {
	o := Defaults()

	if fc.EnabledCategories != nil {
		o.EnabledCategories = splitList(*fc.EnabledCategories)
	}
	if fc.DisabledCategories != nil {
		o.DisabledCategories = splitList(*fc.DisabledCategories)
	}
	if fc.RiskThreshold != nil {
		lvl, err := types.ParseRisk(*fc.RiskThreshold)
		if err != nil {
			return o, fmt.Errorf("risk_threshold: %w", err)
		}
		o.RiskThreshold = lvl
	}
	if fc.MinConfidence != nil {
		o.MinConfidence = *fc.MinConfidence
	}
	if fc.ScanTimeoutMs != nil {
		o.ScanTimeoutMs = *fc.ScanTimeoutMs
	}
	if fc.PerRuleTimeoutMs != nil {
		o.PerRuleTimeoutMs = *fc.PerRuleTimeoutMs
	}
	if fc.MaxConcurrentScans != nil {
		o.MaxConcurrentScans = *fc.MaxConcurrentScans
	}
	if fc.MaxQueuedScans != nil {
		o.MaxQueuedScans = *fc.MaxQueuedScans
	}
	if fc.MaxFindingsPerRule != nil {
		o.MaxFindingsPerRule = *fc.MaxFindingsPerRule
	}
	if fc.ContextWindow != nil {
		o.ContextWindow = *fc.ContextWindow
	}
	if len(fc.TrustedDomains) > 0 {
		o.TrustedDomains = append([]string(nil), fc.TrustedDomains...)
	}
	if fc.RulesFile != nil {
		o.RulesFile = *fc.RulesFile
	}
	if fc.LogLevel != nil {
		o.LogLevel = *fc.LogLevel
	}
	if fc.NoColor != nil {
		o.NoColor = *fc.NoColor
	}

	if err := o.validate(); err != nil {
		return o, err
	}
	return o, nil
}

func (o Options) validate() error {
	if o.MinConfidence < 0 || o.MinConfidence > 1 {
		return fmt.Errorf("min_confidence %v outside [0,1]", o.MinConfidence)
	}
	if o.ScanTimeoutMs <= 0 {
		return errors.New("scan_timeout_ms must be positive")
	}
	if o.PerRuleTimeoutMs <= 0 {
		return errors.New("per_rule_timeout_ms must be positive")
	}
	if o.MaxConcurrentScans <= 0 {
		return errors.New("max_concurrent_scans must be positive")
	}
	if o.MaxQueuedScans < 0 {
		return errors.New("max_queued_scans must not be negative")
	}
	for _, pat := range o.TrustedDomains {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("trusted domain pattern %q is invalid", pat)
		}
	}
	return nil
}

// CategoryEnabled applies the enable/disable lists to a rule category.
func (o Options) CategoryEnabled(category string) bool {
	if len(o.EnabledCategories) > 0 && !containsFold(o.EnabledCategories, category) {
		return false
	}
	return !containsFold(o.DisabledCategories, category)
}

// DomainTrusted reports whether a domain matches any trusted glob pattern.
// Domains contain no path separator, so "*.example.com" covers subdomains at
// any depth.
func (o Options) DomainTrusted(domain string) bool {
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))
	for _, pat := range o.TrustedDomains {
		if ok, err := doublestar.Match(strings.ToLower(pat), domain); err == nil && ok {
			return true
		}
	}
	return false
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a project-local config file in the given root.
// It supports .pagesentry.yml/.yaml and pagesentry.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".pagesentry.yml", ".pagesentry.yaml", "pagesentry.yml", "pagesentry.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "pagesentry", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Merge overlays b onto a field by field; set fields in b win.
func Merge(a, b FileConfig) FileConfig {
	if b.EnabledCategories != nil {
		a.EnabledCategories = b.EnabledCategories
	}
	if b.DisabledCategories != nil {
		a.DisabledCategories = b.DisabledCategories
	}
	if b.RiskThreshold != nil {
		a.RiskThreshold = b.RiskThreshold
	}
	if b.MinConfidence != nil {
		a.MinConfidence = b.MinConfidence
	}
	if b.ScanTimeoutMs != nil {
		a.ScanTimeoutMs = b.ScanTimeoutMs
	}
	if b.PerRuleTimeoutMs != nil {
		a.PerRuleTimeoutMs = b.PerRuleTimeoutMs
	}
	if b.MaxConcurrentScans != nil {
		a.MaxConcurrentScans = b.MaxConcurrentScans
	}
	if b.MaxQueuedScans != nil {
		a.MaxQueuedScans = b.MaxQueuedScans
	}
	if b.MaxFindingsPerRule != nil {
		a.MaxFindingsPerRule = b.MaxFindingsPerRule
	}
	if b.ContextWindow != nil {
		a.ContextWindow = b.ContextWindow
	}
	if len(b.TrustedDomains) > 0 {
		a.TrustedDomains = b.TrustedDomains
	}
	if b.RulesFile != nil {
		a.RulesFile = b.RulesFile
	}
	if b.LogLevel != nil {
		a.LogLevel = b.LogLevel
	}
	if b.NoColor != nil {
		a.NoColor = b.NoColor
	}
	return a
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
