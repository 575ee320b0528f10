// Package structured extracts key/value fields from JSON or YAML content so
// secret-valued keys can be matched structurally instead of by raw regex.
// Pages frequently embed serialized config state; a key named "api_key" with
// a token-shaped value is strong evidence on its own.
package structured

import (
	"regexp"
	"strings"

	"github.com/pagesentry/pagesentry/internal/types"
	yaml "gopkg.in/yaml.v3"
)

// Field is a flattened key/value with the 1-based line where the value sits.
type Field struct {
	Key   string
	Value string
	Line  int
}

// Fields parses b as YAML (JSON is a YAML subset) and flattens scalar values
// with dotted key paths. Returns nil when the buffer is not structured data.
func Fields(b []byte) []Field {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil
	}
	var out []Field
	var walk func(n *yaml.Node, path []string)
	walk = func(n *yaml.Node, path []string) {
		switch n.Kind {
		case yaml.DocumentNode:
			for _, c := range n.Content {
				walk(c, path)
			}
		case yaml.MappingNode:
			for i := 0; i+1 < len(n.Content); i += 2 {
				walk(n.Content[i+1], append(path, n.Content[i].Value))
			}
		case yaml.SequenceNode:
			for _, c := range n.Content {
				walk(c, path)
			}
		case yaml.ScalarNode:
			if len(path) > 0 {
				out = append(out, Field{Key: strings.Join(path, "."), Value: n.Value, Line: n.Line})
			}
		}
	}
	walk(&root, nil)
	return out
}

var (
	reSecretKey  = regexp.MustCompile(`(?i)(api[_-]?key|secret|token|passwd|password|credential|private[_-]?key|auth)`)
	reTokenValue = regexp.MustCompile(`^[A-Za-z0-9+/=_.-]{16,}$`)
	// Fallback pair scan for structured fragments inside otherwise free text.
	rePair = regexp.MustCompile(`["']?([A-Za-z0-9_-]{3,40})["']?\s*[:=]\s*["']([A-Za-z0-9+/=_.-]{16,})["']`)
)

// Secrets is the structural matcher: it flags token-shaped values stored
// under secret-smelling keys. A full-buffer YAML/JSON parse is attempted
// first; free text falls back to a key/value pair scan.
func Secrets(content string) []types.Span {
	if fields := Fields([]byte(content)); fields != nil {
		return spansFromFields(content, fields)
	}
	var out []types.Span
	for _, m := range rePair.FindAllStringSubmatchIndex(content, -1) {
		key := content[m[2]:m[3]]
		val := content[m[4]:m[5]]
		if !reSecretKey.MatchString(key) {
			continue
		}
		out = append(out, types.Span{
			Start: m[4], End: m[5], Value: val,
			Note: "value of structured key " + strings.ToLower(key),
		})
	}
	return out
}

func spansFromFields(content string, fields []Field) []types.Span {
	var out []types.Span
	searchFrom := 0
	for _, f := range fields {
		if !reSecretKey.MatchString(f.Key) || !reTokenValue.MatchString(f.Value) {
			continue
		}
		// yaml.Node gives lines, not offsets; locate the value in the buffer.
		idx := strings.Index(content[searchFrom:], f.Value)
		if idx < 0 {
			continue
		}
		start := searchFrom + idx
		out = append(out, types.Span{
			Start: start, End: start + len(f.Value), Value: f.Value,
			Note: "value of structured key " + strings.ToLower(f.Key),
		})
		searchFrom = start + len(f.Value)
	}
	return out
}
