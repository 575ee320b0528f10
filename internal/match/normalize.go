package match

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// invisibleCharReplacer strips zero-width and other invisible Unicode
// characters so tokens split by them still match. Allocated once.
var invisibleCharReplacer = strings.NewReplacer(
	"\u200b", "", // zero-width space
	"\u200c", "", // zero-width non-joiner
	"\u200d", "", // zero-width joiner
	"\ufeff", "", // zero-width no-break space / BOM
	"\u00ad", "", // soft hyphen
	"\u2060", "", // word joiner
	"\u2061", "", // invisible function application
	"\u2062", "", // invisible times
	"\u2063", "", // invisible separator
	"\u2064", "", // invisible plus
)

// Normalize applies zero-width stripping and NFKC normalization. All matching
// runs over the normalized buffer; candidate offsets refer to it.
func Normalize(s string) string {
	s = invisibleCharReplacer.Replace(s)
	return norm.NFKC.String(s)
}
