package phish

import (
	"regexp"
	"strings"

	"github.com/pagesentry/pagesentry/internal/types"
	"golang.org/x/text/unicode/norm"
)

// confusables maps non-Latin runes commonly used in homoglyph attacks to the
// Latin letters they impersonate. This is the working subset of the Unicode
// confusables table that covers Cyrillic and Greek lookalikes seen in
// phishing domains.
var confusables = map[rune]string{
	// Cyrillic
	'а': "a", 'е': "e", 'о': "o", 'р': "p", 'с': "c", 'х': "x", 'у': "y",
	'і': "i", 'ѕ': "s", 'ј': "j", 'һ': "h", 'ԁ': "d", 'ɡ': "g", 'ԛ': "q",
	'ԝ': "w", 'в': "b", 'м': "m", 'н': "h", 'т': "t", 'к': "k",
	// Greek
	'ο': "o", 'α': "a", 'ν': "v", 'ι': "i", 'ρ': "p", 'τ': "t", 'υ': "u",
	'κ': "k", 'η': "n", 'ε': "e",
	// Misc lookalikes
	'ł': "l", 'ı': "i", 'ɩ': "i", 'ﬀ': "ff",
}

// brands are high-value impersonation targets. A homoglyph domain whose
// skeleton contains one of these is treated as an impersonation attempt.
var brands = []string{
	"paypal", "google", "apple", "amazon", "microsoft", "facebook",
	"netflix", "instagram", "twitter", "linkedin", "coinbase", "binance",
	"chase", "wellsfargo", "bankofamerica", "dropbox", "github",
}

// reDomain finds domain-like tokens, including internationalized labels.
var reDomain = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}-]*(?:\.[\p{L}\p{N}-]+)+`)

// Skeleton lowercases s, applies NFKC normalization, and folds confusable
// runes to their Latin targets. Two strings with equal skeletons are visually
// interchangeable for phishing purposes.
func Skeleton(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := confusables[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HomoglyphDomains flags domain-like tokens whose confusable-folded skeleton
// impersonates a known brand, plus mixed-script labels and raw punycode
// labels near brand mentions.
func HomoglyphDomains(content string) []types.Span {
	var out []types.Span
	for _, loc := range reDomain.FindAllStringIndex(content, -1) {
		tok := content[loc[0]:loc[1]]
		lower := strings.ToLower(tok)
		skel := Skeleton(tok)

		if skel != lower {
			// Confusable runes present; only report when the skeleton
			// resolves to a brand, otherwise legit IDNs would drown the host.
			if brand := brandIn(skel); brand != "" {
				out = append(out, types.Span{
					Start: loc[0], End: loc[1], Value: tok,
					Note: "homoglyph impersonation of " + brand,
				})
				continue
			}
			if mixedScript(tok) {
				out = append(out, types.Span{
					Start: loc[0], End: loc[1], Value: tok,
					Note: "mixed-script domain label",
				})
			}
			continue
		}

		if strings.Contains(lower, "xn--") {
			if brand := brandIn(lower); brand != "" {
				out = append(out, types.Span{
					Start: loc[0], End: loc[1], Value: tok,
					Note: "punycode label alongside " + brand,
				})
			}
		}
	}
	return out
}

func brandIn(s string) string {
	for _, b := range brands {
		if strings.Contains(s, b) {
			return b
		}
	}
	return ""
}

// mixedScript reports whether a token mixes Latin letters with Cyrillic or
// Greek ones within the same label, a strong homoglyph signal even when no
// brand is recognized.
func mixedScript(tok string) bool {
	for _, label := range strings.Split(tok, ".") {
		hasLatin, hasOther := false, false
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
				hasLatin = true
			case r >= 0x0400 && r <= 0x04FF || r >= 0x0370 && r <= 0x03FF:
				hasOther = true
			}
		}
		if hasLatin && hasOther {
			return true
		}
	}
	return false
}
