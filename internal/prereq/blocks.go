package prereq

import (
	"bytes"
	"regexp"
	"strings"
)

// Occurrence is one <Prerequisites> element found in an MDX body.
type Occurrence struct {
	// Line is the 1-based line of the opening tag.
	Line int
	// Content is the dedented element body; nil for a self-closing element.
	Content []byte
}

var elementRe = regexp.MustCompile(`(?s)<Prerequisites\s*/>|<Prerequisites\s*>(.*?)</Prerequisites\s*>`)

// FindBlocks returns every <Prerequisites> element in body, in document order.
func FindBlocks(body []byte) []Occurrence {
	matches := elementRe.FindAllSubmatchIndex(body, -1)
	out := make([]Occurrence, 0, len(matches))
	for _, m := range matches {
		occ := Occurrence{Line: bytes.Count(body[:m[0]], []byte("\n")) + 1}
		if m[2] >= 0 {
			occ.Content = dedent(body[m[2]:m[3]])
		}
		out = append(out, occ)
	}
	return out
}

// dedent strips the indentation shared by all non-blank lines, so content nested
// inside JSX is not mistaken for an indented code block.
func dedent(b []byte) []byte {
	lines := strings.Split(string(b), "\n")
	prefix := ""
	first := true
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		indent := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, prefix)
	}
	return []byte(strings.Join(lines, "\n"))
}
