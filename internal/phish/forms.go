package phish

import (
	"regexp"
	"strings"

	"github.com/pagesentry/pagesentry/internal/types"
)

// Credential-harvesting page structure: a password input combined with
// urgency or verification language nearby. Either signal alone is normal web
// content; the combination within one window is the phishing shape.
var (
	rePasswordInput = regexp.MustCompile(`(?i)type\s*=\s*["']?password["']?`)
	reUrgency       = regexp.MustCompile(`(?i)(verify\s+your\s+(account|identity)|account\s+(suspended|locked|limited)|confirm\s+your\s+(password|identity|card)|unusual\s+(activity|sign[- ]?in)|update\s+your\s+payment)`)
	reSensitiveAsk  = regexp.MustCompile(`(?i)(social\s+security|card\s+number|cvv|pin\s+code|mother'?s\s+maiden)`)
)

// proximityWindow bounds how far apart the two signals may sit, in bytes.
const proximityWindow = 600

// SuspiciousForms flags password inputs that co-occur with verification
// urgency or requests for sensitive personal data.
func SuspiciousForms(content string) []types.Span {
	inputs := rePasswordInput.FindAllStringIndex(content, -1)
	if len(inputs) == 0 {
		return nil
	}
	signals := append(reUrgency.FindAllStringIndex(content, -1),
		reSensitiveAsk.FindAllStringIndex(content, -1)...)
	if len(signals) == 0 {
		return nil
	}

	var out []types.Span
	for _, in := range inputs {
		for _, sig := range signals {
			if distance(in, sig) > proximityWindow {
				continue
			}
			start, end := in[0], in[1]
			if sig[0] < start {
				start = sig[0]
			}
			if sig[1] > end {
				end = sig[1]
			}
			snippet := content[sig[0]:sig[1]]
			out = append(out, types.Span{
				Start: start,
				End:   end,
				Value: strings.TrimSpace(snippet),
				Note:  "password input near: " + strings.ToLower(snippet),
			})
			break
		}
	}
	return out
}

func distance(a, b []int) int {
	if a[1] <= b[0] {
		return b[0] - a[1]
	}
	if b[1] <= a[0] {
		return a[0] - b[1]
	}
	return 0
}
