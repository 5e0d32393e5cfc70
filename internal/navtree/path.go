package navtree

import (
	"slices"
	"strconv"
	"strings"
)

// Step is one level of a Path: the position among siblings and the entry's name
// (category label or document id, possibly empty when the entry is malformed).
type Step struct {
	Index int
	Name  string
}

// Path locates a declaration in the outline for diagnostics.
type Path []Step

func (p Path) child(index int, name string) Path {
	return append(slices.Clip(p), Step{Index: index, Name: name})
}

// String renders the path as "[0] Guides > [2] guides/setup".
func (p Path) String() string {
	if len(p) == 0 {
		return "<root>"
	}
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteString(" > ")
		}
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(s.Index))
		b.WriteByte(']')
		if s.Name != "" {
			b.WriteByte(' ')
			b.WriteString(s.Name)
		}
	}
	return b.String()
}
