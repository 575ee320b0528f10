// Package validate holds the secondary checks applied to raw candidates
// before they become findings. Validators are pure functions of the candidate
// value and a bounded context window; they never do I/O.
package validate

import (
	"encoding/base64"
	"encoding/hex"
	"math"
	"sort"
	"strings"
)

// Func is a single validation step. It receives the matched value and the
// surrounding context window and reports whether the candidate survives.
type Func func(value, context string) bool

// registry maps validator IDs (as referenced by rules) to implementations.
// Cheap checks should be listed first in a rule's chain; ordering is a
// performance choice, not a correctness requirement.
var registry = map[string]Func{
	"min-entropy-3.5":     entropyAtLeast(3.5),
	"min-entropy-4.0":     entropyAtLeast(4.0),
	"base64":              func(v, _ string) bool { return IsBase64Std(v) },
	"hex":                 func(v, _ string) bool { return IsHex(v) },
	"jwt-structure":       func(v, _ string) bool { return IsJWTStructure(v) },
	"aws-access-key":      func(v, _ string) bool { return LooksLikeAWSAccessKey(v) },
	"github-token":        func(v, _ string) bool { return LooksLikeGitHubToken(v) },
	"luhn":                func(v, _ string) bool { return Luhn(v) },
	"not-example-context": func(_, ctx string) bool { return !ExampleContext(ctx) },
	"not-placeholder":     func(v, _ string) bool { return !Placeholder(v) },
	"not-minified":        func(_, ctx string) bool { return !LooksMinified(ctx) },
	"not-suppressed":      func(_, ctx string) bool { return !InlineSuppressed(ctx) },
}

// Lookup returns the validator registered under id.
func Lookup(id string) (Func, bool) {
	f, ok := registry[id]
	return f, ok
}

// Known reports whether id names a registered validator.
func Known(id string) bool {
	_, ok := registry[id]
	return ok
}

// IDs returns the registered validator IDs in sorted order.
func IDs() []string {
	out := make([]string, 0, len(registry))
	for id := range registry {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Chain runs validators in order and short-circuits on the first failure.
// An empty chain always passes: the pattern match alone is sufficient
// evidence for rules without validators.
func Chain(ids []string, value, context string) (passed int, ok bool) {
	for _, id := range ids {
		f, found := registry[id]
		if !found {
			// Unknown IDs are rejected at rule load; veto if one slips through.
			return passed, false
		}
		if !f(value, context) {
			return passed, false
		}
		passed++
	}
	return passed, true
}

// Entropy returns the Shannon entropy of s in bits per character.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}
	count := map[rune]int{}
	for _, r := range s {
		count[r]++
	}
	h := 0.0
	n := float64(len(s))
	for _, c := range count {
		p := float64(c) / n
		h += -p * math.Log2(p)
	}
	return h
}

func entropyAtLeast(min float64) Func {
	return func(v, _ string) bool { return Entropy(v) >= min }
}

// LengthBetween returns true if len(s) is within [min,max].
func LengthBetween(s string, min, max int) bool {
	n := len(s)
	return n >= min && n <= max
}

// IsAlphabet returns true if every byte of s is in the allowed set.
func IsAlphabet(s, allowed string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(allowed, rune(s[i])) {
			return false
		}
	}
	return true
}

// IsBase64Std reports whether s is valid standard base64, padding optional.
func IsBase64Std(s string) bool {
	if s == "" {
		return false
	}
	if _, err := base64.StdEncoding.DecodeString(s); err == nil {
		return true
	}
	_, err := base64.RawStdEncoding.DecodeString(s)
	return err == nil
}

// IsBase64URLNoPad reports whether s is valid base64url without padding.
func IsBase64URLNoPad(s string) bool {
	if s == "" {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil
}

// IsHex returns true if s is valid even-length hex.
func IsHex(s string) bool {
	if s == "" || len(s)%2 == 1 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

const base62 = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// LooksLikeAWSAccessKey checks AKIA/ASIA + 16 uppercase alphanumerics.
func LooksLikeAWSAccessKey(s string) bool {
	if !(strings.HasPrefix(s, "AKIA") || strings.HasPrefix(s, "ASIA")) {
		return false
	}
	if len(s) != 20 {
		return false
	}
	const upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	return IsAlphabet(s[4:], upperAlnum)
}

// LooksLikeGitHubToken accepts ghp_/gho_/ghu_/ghs_/ghr_ plus 36 base62 chars.
func LooksLikeGitHubToken(s string) bool {
	if len(s) != 4+36 {
		return false
	}
	switch s[:4] {
	case "ghp_", "gho_", "ghu_", "ghs_", "ghr_":
	default:
		return false
	}
	return IsAlphabet(s[4:], base62)
}

// IsJWTStructure verifies three dot-separated segments with base64url header
// and payload. The signature segment may be empty.
func IsJWTStructure(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	return IsBase64URLNoPad(parts[0]) && IsBase64URLNoPad(parts[1])
}

// Luhn reports whether the digits of s satisfy the Luhn checksum. Space and
// dash separators are ignored; any other non-digit fails the check.
func Luhn(s string) bool {
	digits := 0
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c == ' ' || c == '-' {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
		digits++
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return digits >= 12 && sum%10 == 0
}

// exampleMarkers mark a context window as documentation or sample content
// rather than a live credential.
var exampleMarkers = []string{
	"example",
	"sample",
	"dummy",
	"your_api_key",
	"your-api-key",
	"changeme",
	"xxxx",
	"redacted",
	"<key>",
	"lorem ipsum",
}

// ExampleContext reports whether the context window is explicitly marked as
// example or placeholder material.
func ExampleContext(ctx string) bool {
	lower := strings.ToLower(ctx)
	for _, m := range exampleMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// placeholderWords are long dictionary words that commonly survive broad
// token regexes but are never secrets.
var placeholderWords = []string{
	"application", "documentation", "configuration", "implementation",
	"authentication", "authorization", "organization", "notification",
	"specification", "abcdefghijklmnopqrstuvwxyz",
}

// Placeholder reports whether the value itself is an obvious non-secret.
func Placeholder(v string) bool {
	lower := strings.ToLower(v)
	for _, w := range placeholderWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	// All one repeated character: padding, not a secret.
	if len(v) > 0 && strings.Count(v, v[:1]) == len(v) {
		return true
	}
	return false
}

// LooksMinified is a cheap heuristic for minified or obfuscated surroundings:
// a long context window with almost no whitespace.
func LooksMinified(ctx string) bool {
	if len(ctx) < 60 {
		return false
	}
	spaces := 0
	for i := 0; i < len(ctx); i++ {
		switch ctx[i] {
		case ' ', '\t', '\n', '\r':
			spaces++
		}
	}
	return float64(spaces)/float64(len(ctx)) < 0.02
}

// InlineSuppressed reports whether the context carries an inline suppression
// marker ("pagesentry:ignore").
func InlineSuppressed(ctx string) bool {
	return strings.Contains(ctx, "pagesentry:ignore") ||
		strings.Contains(ctx, "pagesentry: ignore")
}
