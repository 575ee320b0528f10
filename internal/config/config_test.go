package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pagesentry/pagesentry/internal/types"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "pagesentry.yaml", "scan_timeout_ms: 250\nrisk_threshold: high\ntrusted_domains:\n  - '*.example.com'\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ScanTimeoutMs == nil || *cfg.ScanTimeoutMs != 250 {
		t.Fatalf("expected scan_timeout_ms=250, got %#v", cfg.ScanTimeoutMs)
	}
	if cfg.RiskThreshold == nil || *cfg.RiskThreshold != "high" {
		t.Fatalf("expected risk_threshold=high, got %#v", cfg.RiskThreshold)
	}
	if len(cfg.TrustedDomains) != 1 || cfg.TrustedDomains[0] != "*.example.com" {
		t.Fatalf("expected one trusted domain, got %#v", cfg.TrustedDomains)
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "pagesentry.yaml", "scan_timeout_ms: 100\n")
	writeTemp(t, dir, ".pagesentry.yaml", "scan_timeout_ms: 700\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.ScanTimeoutMs == nil || *cfg.ScanTimeoutMs != 700 {
		t.Fatalf("expected scan_timeout_ms=700 from .pagesentry.yaml, got %#v", cfg.ScanTimeoutMs)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); err == nil {
		t.Fatal("expected error when no local config exists")
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "pagesentry")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(cfgDir, "config.yml")
	if err := os.WriteFile(p, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.LogLevel == nil || *cfg.LogLevel != "debug" {
		t.Fatalf("expected log_level=debug from global config, got %#v", cfg.LogLevel)
	}
}

func TestResolveDefaults(t *testing.T) {
	o, err := Resolve(FileConfig{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if o.RiskThreshold != types.RiskLow {
		t.Fatalf("expected default threshold low, got %s", o.RiskThreshold)
	}
	if o.ScanTimeoutMs != 500 || o.MaxConcurrentScans != 4 {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

func TestResolveRejectsBadValues(t *testing.T) {
	bad := -1.0
	if _, err := Resolve(FileConfig{MinConfidence: &bad}); err == nil {
		t.Fatal("expected error for min_confidence outside [0,1]")
	}
	lvl := "severe"
	if _, err := Resolve(FileConfig{RiskThreshold: &lvl}); err == nil {
		t.Fatal("expected error for unknown risk threshold")
	}
	zero := 0
	if _, err := Resolve(FileConfig{MaxConcurrentScans: &zero}); err == nil {
		t.Fatal("expected error for zero max_concurrent_scans")
	}
}

func TestResolveRejectsBadGlob(t *testing.T) {
	fc := FileConfig{TrustedDomains: []string{"[invalid"}}
	if _, err := Resolve(fc); err == nil {
		t.Fatal("expected error for invalid trusted domain pattern")
	}
}

func TestMergePrecedence(t *testing.T) {
	low := "low"
	high := "high"
	base := FileConfig{RiskThreshold: &low}
	over := FileConfig{RiskThreshold: &high}
	merged := Merge(base, over)
	if merged.RiskThreshold == nil || *merged.RiskThreshold != "high" {
		t.Fatalf("expected override to win, got %#v", merged.RiskThreshold)
	}
	// fields absent from the overlay keep the base value
	ms := 250
	base2 := FileConfig{ScanTimeoutMs: &ms}
	merged2 := Merge(base2, FileConfig{})
	if merged2.ScanTimeoutMs == nil || *merged2.ScanTimeoutMs != 250 {
		t.Fatalf("expected base value to survive, got %#v", merged2.ScanTimeoutMs)
	}
}

func TestCategoryEnabled(t *testing.T) {
	o := Defaults()
	o.EnabledCategories = []string{"aws", "github"}
	o.DisabledCategories = []string{"github"}
	if !o.CategoryEnabled("aws") {
		t.Fatal("aws should be enabled")
	}
	if o.CategoryEnabled("github") {
		t.Fatal("disable list should win over enable list")
	}
	if o.CategoryEnabled("slack") {
		t.Fatal("categories outside the enable list should be off")
	}
}

func TestDomainTrusted(t *testing.T) {
	o := Defaults()
	o.TrustedDomains = []string{"*.example.com", "login.corp.net"}
	cases := []struct {
		domain string
		want   bool
	}{
		{"auth.example.com", true},
		{"Auth.Example.COM", true},
		{"login.corp.net", true},
		{"deep.auth.example.com", true}, // star spans labels, domains have no separator
		{"example.com", false},
		{"evil.net", false},
	}
	for _, c := range cases {
		if got := o.DomainTrusted(c.domain); got != c.want {
			t.Fatalf("DomainTrusted(%q) = %v, want %v", c.domain, got, c.want)
		}
	}
}
