package pagesentry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/logger"
	"github.com/pagesentry/pagesentry/internal/redact"
	"github.com/pagesentry/pagesentry/internal/report"
	"github.com/pagesentry/pagesentry/internal/rules"
	"github.com/pagesentry/pagesentry/internal/scan"
	"github.com/pagesentry/pagesentry/internal/types"
)

var (
	flagFile           string
	flagSource         string
	flagCategories     string
	flagDisable        string
	flagRiskThreshold  string
	flagTimeoutMs      int
	flagTrustedDomains []string
	flagRulesFile      string
	flagShowValues     bool
	flagBaseline       string
	flagWriteBaseline  bool
	flagRedact         bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Scan content for secrets and phishing indicators",
		Long:  "Scan reads content from a file argument, --file, or stdin and reports scored findings.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagFile, "file", "f", "", "file to scan (default: stdin)")
	cmd.Flags().StringVar(&flagSource, "source", "", "source label for findings (URL or path)")
	cmd.Flags().StringVar(&flagCategories, "categories", "", "only run these rule categories (comma-separated)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these rule categories (comma-separated)")
	cmd.Flags().StringVar(&flagRiskThreshold, "risk-threshold", "", "drop findings below low|medium|high|critical")
	cmd.Flags().IntVar(&flagTimeoutMs, "timeout-ms", 0, "scan time budget in milliseconds")
	cmd.Flags().StringSliceVar(&flagTrustedDomains, "trusted-domain", nil, "glob pattern for domains exempt from phishing rules (repeatable)")
	cmd.Flags().StringVar(&flagRulesFile, "rules-file", "", "YAML rule payload to load over the built-in set")
	cmd.Flags().BoolVar(&flagShowValues, "show-values", false, "print full secret values instead of redacted ones")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "pagesentry.baseline.json", "baseline file of accepted findings")
	cmd.Flags().BoolVar(&flagWriteBaseline, "write-baseline", false, "write current findings to the baseline file and exit")
	cmd.Flags().BoolVar(&flagRedact, "redact", false, "print the content with findings masked instead of a report")
}

func runScan(cmd *cobra.Command, args []string) error {
	content, source, err := readContent(args)
	if err != nil {
		return err
	}
	if flagSource != "" {
		source = flagSource
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	log := logger.New("pagesentry", opts.LogLevel, os.Stderr)
	registry := rules.NewBuiltin()
	if rf := pick(flagRulesFile, opts.RulesFile); rf != "" {
		payload, err := os.ReadFile(rf)
		if err != nil {
			return fmt.Errorf("read rules file: %w", err)
		}
		rejected, err := registry.Load(payload)
		if err != nil {
			return fmt.Errorf("load rules file: %w", err)
		}
		for _, rerr := range rejected {
			log.Warn("rule rejected", "err", rerr)
		}
	}

	orch := scan.New(registry, opts, log)
	res, err := orch.Scan(context.Background(), content, source)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	findings := res.Findings
	if flagWriteBaseline {
		if err := report.SaveBaseline(flagBaseline, findings); err != nil {
			return fmt.Errorf("write baseline: %w", err)
		}
		fmt.Fprintf(os.Stderr, "baseline written: %d findings accepted\n", len(findings))
		return nil
	}
	if base, err := report.LoadBaseline(flagBaseline); err == nil {
		findings = report.FilterNewFindings(findings, base)
	}
	if findings == nil {
		findings = []types.Finding{}
	} // no `null` in JSON

	switch {
	case flagRedact:
		fmt.Print(redact.ApplyAll(res.Content, findings))
	case flagSARIF:
		res.Findings = findings
		if err := report.WriteSARIF(os.Stdout, res, registry.Version()); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(findings); err != nil {
			return err
		}
	default:
		report.PrintTable(os.Stdout, findings, report.PrintOptions{
			NoColor:    opts.NoColor,
			Duration:   res.Metrics.Duration,
			ShowValues: flagShowValues,
		})
		if res.Truncated {
			fmt.Fprintln(os.Stderr, "warning: scan hit its time budget; results are partial")
		}
		if res.State != types.StateCompleted {
			fmt.Fprintf(os.Stderr, "scan state: %s\n", res.State)
		}
	}

	if report.ShouldFail(findings, flagFailOn) {
		os.Exit(1)
	}
	return nil
}

// readContent loads the scan input. Precedence: positional arg, --file, stdin.
func readContent(args []string) (content, source string, err error) {
	path := flagFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), "stdin", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	abs, _ := filepath.Abs(path)
	return string(b), abs, nil
}

// resolveOptions merges config sources: global file < local file < CLI flags.
func resolveOptions(cmd *cobra.Command) (config.Options, error) {
	var merged config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		merged = c
	}
	cwd, _ := os.Getwd()
	if c, err := config.LoadLocal(cwd); err == nil {
		merged = config.Merge(merged, c)
	}
	merged = config.Merge(merged, flagOverlay(cmd))
	return config.Resolve(merged)
}

// flagOverlay converts changed CLI flags into a FileConfig layer so flags
// always win over files.
func flagOverlay(cmd *cobra.Command) config.FileConfig {
	var fc config.FileConfig
	if flagCategories != "" {
		fc.EnabledCategories = &flagCategories
	}
	if flagDisable != "" {
		fc.DisabledCategories = &flagDisable
	}
	if flagRiskThreshold != "" {
		fc.RiskThreshold = &flagRiskThreshold
	}
	if cmd.Flags().Changed("timeout-ms") {
		fc.ScanTimeoutMs = &flagTimeoutMs
	}
	if cmd.Root().PersistentFlags().Changed("min-confidence") {
		fc.MinConfidence = &flagMinConfidence
	}
	if len(flagTrustedDomains) > 0 {
		fc.TrustedDomains = flagTrustedDomains
	}
	if flagRulesFile != "" {
		fc.RulesFile = &flagRulesFile
	}
	if flagLogLevel != "" {
		fc.LogLevel = &flagLogLevel
	}
	if flagNoColor {
		fc.NoColor = &flagNoColor
	}
	return fc
}

func pick(flag, cfg string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	return cfg
}
