// Package scan orchestrates the detection pipeline: admission control,
// matching, validation, scoring and aggregation, in that order.
package scan

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/pagesentry/pagesentry/internal/aggregate"
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/match"
	"github.com/pagesentry/pagesentry/internal/rules"
	"github.com/pagesentry/pagesentry/internal/score"
	"github.com/pagesentry/pagesentry/internal/types"
	"github.com/pagesentry/pagesentry/internal/validate"
)

// ErrBusy is returned when the concurrency limit and the wait queue are both
// full. The caller owns retry policy; the orchestrator never blocks past the
// queue bound.
var ErrBusy = errors.New("scanner busy")

// ErrScanFailed wraps terminal scan errors, such as invalid input encoding.
var ErrScanFailed = errors.New("scan failed")

// Orchestrator runs scans against the active rule registry. Safe for
// concurrent use; each Scan call is independent.
type Orchestrator struct {
	registry *rules.Registry
	opts     config.Options
	log      hclog.Logger
	slots    chan struct{}
	waiting  atomic.Int64
}

// New creates an Orchestrator. The registry may be swapped underneath via
// its Replace/Load methods; each scan snapshots the rule set once at start.
func New(registry *rules.Registry, opts config.Options, log hclog.Logger) *Orchestrator {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Orchestrator{
		registry: registry,
		opts:     opts,
		log:      log,
		slots:    make(chan struct{}, opts.MaxConcurrentScans),
	}
}

// Registry exposes the active rule registry for payload reloads.
func (o *Orchestrator) Registry() *rules.Registry { return o.registry }

// Scan runs the full pipeline over one content buffer. A timed-out or
// cancelled scan returns the partial result with a nil error; only admission
// refusal and invalid input return errors.
func (o *Orchestrator) Scan(ctx context.Context, content, source string) (types.ScanResult, error) {
	if err := o.acquire(ctx); err != nil {
		return types.ScanResult{}, err
	}
	defer func() { <-o.slots }()

	scanID := uuid.NewString()
	start := time.Now()
	log := o.log.With("scan_id", scanID, "source", source)
	log.Debug("scan starting", "bytes", len(content), "rules_version", o.registry.Version())

	if !utf8.ValidString(content) {
		log.Warn("scan rejected", "reason", "invalid utf-8")
		return types.ScanResult{
			ScanID:  scanID,
			State:   types.StateFailed,
			Metrics: types.Metrics{Duration: time.Since(start), ContentBytes: len(content)},
		}, fmt.Errorf("%w: content is not valid UTF-8", ErrScanFailed)
	}

	ruleSet := o.enabledRules()
	lim := match.Limits{
		PerRule:    time.Duration(o.opts.PerRuleTimeoutMs) * time.Millisecond,
		Total:      time.Duration(o.opts.ScanTimeoutMs) * time.Millisecond,
		MaxPerRule: o.opts.MaxFindingsPerRule,
		Window:     o.opts.ContextWindow,
	}

	sctx, cancel := context.WithTimeout(ctx, lim.Total)
	defer cancel()

	out := match.Run(sctx, content, ruleSet, lim, source)
	findings := o.assess(out.Candidates, ruleSet)

	res := types.ScanResult{
		ScanID:   scanID,
		State:    terminalState(ctx, sctx),
		Findings: findings,
		Metrics: types.Metrics{
			Duration:          time.Since(start),
			PatternsEvaluated: out.PatternsEvaluated,
			MatchesFound:      len(out.Candidates),
			ContentBytes:      len(content),
		},
		Truncated: out.Truncated,
		Content:   out.Content,
	}

	log.Info("scan finished",
		"state", res.State,
		"findings", len(res.Findings),
		"candidates", len(out.Candidates),
		"patterns", out.PatternsEvaluated,
		"truncated", res.Truncated,
		"duration", res.Metrics.Duration,
	)
	return res, nil
}

// acquire takes a run slot, queueing at most MaxQueuedScans callers. When the
// queue is also full it refuses immediately.
func (o *Orchestrator) acquire(ctx context.Context) error {
	select {
	case o.slots <- struct{}{}:
		return nil
	default:
	}
	if o.waiting.Add(1) > int64(o.opts.MaxQueuedScans) {
		o.waiting.Add(-1)
		return ErrBusy
	}
	defer o.waiting.Add(-1)
	select {
	case o.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enabledRules snapshots the registry filtered by the category lists.
func (o *Orchestrator) enabledRules() []rules.Rule {
	all := o.registry.All()
	out := make([]rules.Rule, 0, len(all))
	for _, r := range all {
		if o.opts.CategoryEnabled(r.Category) {
			out = append(out, r)
		}
	}
	return out
}

// assess runs validation, scoring, filtering and aggregation over the raw
// candidates. Candidates arrive in deterministic order, so the aggregator's
// first-seen ordering is deterministic too.
func (o *Orchestrator) assess(candidates []types.Candidate, ruleSet []rules.Rule) []types.Finding {
	byID := make(map[string]rules.Rule, len(ruleSet))
	for _, r := range ruleSet {
		byID[r.ID] = r
	}
	scorer := score.New(o.registry.Table())
	agg := aggregate.New()

	for _, c := range candidates {
		rule, ok := byID[c.RuleID]
		if !ok {
			continue
		}
		passed, ok := validate.Chain(rule.Validators, c.Value, c.Context)
		if !ok {
			continue
		}
		if rule.Category == "phishing" && o.opts.DomainTrusted(c.Value) {
			continue
		}
		f := scorer.Score(c, rule, passed)
		if f.RiskLevel.Rank() < o.opts.RiskThreshold.Rank() {
			continue
		}
		if f.Confidence < o.opts.MinConfidence {
			continue
		}
		agg.Add(f)
	}
	return agg.Findings()
}

// terminalState maps context outcomes to the scan's terminal state. Parent
// cancellation wins over the scan's own deadline.
func terminalState(parent, scan context.Context) types.State {
	if errors.Is(parent.Err(), context.Canceled) {
		return types.StateCancelled
	}
	if errors.Is(scan.Err(), context.DeadlineExceeded) {
		return types.StateTimedOut
	}
	return types.StateCompleted
}
