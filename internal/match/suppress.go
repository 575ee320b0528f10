package match

import "strings"

// Inline suppression markers, mirrored from the line-level markers the CLI
// documents: a bare marker mutes its own line, "ignore-next-line" mutes the
// following line, and start/end markers mute a region.
const (
	markIgnore      = "pagesentry:ignore"
	markIgnoreNext  = "pagesentry:ignore-next-line"
	markIgnoreStart = "pagesentry:ignore-start"
	markIgnoreEnd   = "pagesentry:ignore-end"
)

type span struct{ start, end int }

// suppressedSpans computes the byte ranges of content muted by inline
// markers. Candidates whose value starts inside a muted range are dropped
// before validation.
func suppressedSpans(content string) []span {
	if !strings.Contains(content, markIgnore) {
		return nil
	}
	var out []span
	regionStart := -1
	skipNext := false
	pos := 0
	for pos <= len(content) {
		nl := strings.IndexByte(content[pos:], '\n')
		end := len(content)
		if nl >= 0 {
			end = pos + nl
		}
		line := content[pos:end]

		switch {
		case strings.Contains(line, markIgnoreStart):
			if regionStart < 0 {
				regionStart = pos
			}
		case strings.Contains(line, markIgnoreEnd):
			if regionStart >= 0 {
				out = append(out, span{regionStart, end})
				regionStart = -1
			}
		case regionStart >= 0:
			// inside a region; nothing line-level to do
		case skipNext:
			out = append(out, span{pos, end})
			skipNext = false
		case strings.Contains(line, markIgnoreNext):
			skipNext = true
		case strings.Contains(line, markIgnore):
			out = append(out, span{pos, end})
		}

		if nl < 0 {
			break
		}
		pos = end + 1
	}
	if regionStart >= 0 {
		out = append(out, span{regionStart, len(content)})
	}
	return out
}

func inSpans(spans []span, off int) bool {
	for _, s := range spans {
		if off >= s.start && off < s.end {
			return true
		}
	}
	return false
}
