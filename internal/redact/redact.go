// Package redact rewrites scanned content with finding values masked out.
// Offsets in findings refer to the normalized buffer in ScanResult.Content;
// hosts must redact against that string, not the raw input.
package redact

import (
	"sort"
	"strings"

	"github.com/pagesentry/pagesentry/internal/score"
	"github.com/pagesentry/pagesentry/internal/types"
)

// Apply returns content with every finding's value span replaced by its
// masked form. Spans are applied right to left so earlier offsets stay valid;
// overlapping or out-of-range spans are skipped rather than corrupting the
// output.
func Apply(content string, findings []types.Finding) string {
	spans := make([]types.Finding, 0, len(findings))
	for _, f := range findings {
		end := f.Start + len(f.Value)
		if f.Start < 0 || end > len(content) || content[f.Start:end] != f.Value {
			continue
		}
		spans = append(spans, f)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })

	out := content
	lastStart := len(content) + 1
	for _, f := range spans {
		end := f.Start + len(f.Value)
		if end > lastStart {
			continue
		}
		out = out[:f.Start] + score.Mask(f.Value) + out[end:]
		lastStart = f.Start
	}
	return out
}

// Changed reports whether Apply would alter the content.
func Changed(content string, findings []types.Finding) bool {
	return Apply(content, findings) != content
}

// ApplyAll masks every further occurrence of each finding's value too, for
// values repeated outside their recorded span.
func ApplyAll(content string, findings []types.Finding) string {
	out := Apply(content, findings)
	for _, f := range findings {
		if f.Value == "" {
			continue
		}
		out = strings.ReplaceAll(out, f.Value, score.Mask(f.Value))
	}
	return out
}
