package prereq

import "strings"

// Inline is one piece of rich inline content: Text, Code, Emphasis or Link.
type Inline interface {
	isInline()
}

// Text is literal text.
type Text struct {
	Value string
}

// Code is an inline code span.
type Code struct {
	Value string
}

// Emphasis wraps children in emphasis; Level 2 is strong emphasis.
type Emphasis struct {
	Level    int
	Children []Inline
}

// Link is a hyperlink with inline children as its label.
type Link struct {
	Destination string
	Title       string
	Children    []Inline
}

func (Text) isInline()     {}
func (Code) isInline()     {}
func (Emphasis) isInline() {}
func (Link) isInline()     {}

// Item is one requirement line.
type Item struct {
	Inlines []Inline
	// Degraded marks the placeholder substituted for malformed content.
	Degraded bool
}

// TextItem returns an item made of a single text run.
func TextItem(s string) Item {
	return Item{Inlines: []Inline{Text{Value: s}}}
}

// Plain returns the item text without markup.
func (i Item) Plain() string {
	var b strings.Builder
	writePlain(&b, i.Inlines)
	return b.String()
}

func writePlain(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case Text:
			b.WriteString(v.Value)
		case Code:
			b.WriteString(v.Value)
		case Emphasis:
			writePlain(b, v.Children)
		case Link:
			writePlain(b, v.Children)
		}
	}
}

// Links returns the destinations of all links in the item, in order.
func (i Item) Links() []string {
	var out []string
	var collect func([]Inline)
	collect = func(inlines []Inline) {
		for _, in := range inlines {
			switch v := in.(type) {
			case Link:
				out = append(out, v.Destination)
				collect(v.Children)
			case Emphasis:
				collect(v.Children)
			}
		}
	}
	collect(i.Inlines)
	return out
}

// appendText adds s to inlines, merging with a trailing Text run.
func appendText(inlines []Inline, s string) []Inline {
	if s == "" {
		return inlines
	}
	if n := len(inlines); n > 0 {
		if last, ok := inlines[n-1].(Text); ok {
			inlines[n-1] = Text{Value: last.Value + s}
			return inlines
		}
	}
	return append(inlines, Text{Value: s})
}

// trimEdges drops leading and trailing whitespace of the outer text runs.
func trimEdges(inlines []Inline) []Inline {
	if n := len(inlines); n > 0 {
		if last, ok := inlines[n-1].(Text); ok {
			last.Value = strings.TrimRight(last.Value, " \t")
			if last.Value == "" {
				inlines = inlines[:n-1]
			} else {
				inlines[n-1] = last
			}
		}
	}
	if len(inlines) > 0 {
		if first, ok := inlines[0].(Text); ok {
			first.Value = strings.TrimLeft(first.Value, " \t")
			if first.Value == "" {
				inlines = inlines[1:]
			} else {
				inlines[0] = first
			}
		}
	}
	return inlines
}
