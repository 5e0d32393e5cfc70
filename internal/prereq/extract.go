package prereq

import (
	"bytes"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docnav/internal/markdown"
)

// extractItems walks document -> bullet list -> list items -> inline content.
// Every other shape is reported as a *MalformedInputError.
func extractItems(doc *markdown.Document) ([]Item, error) {
	src := doc.Source
	first := skipEmpty(doc.Root.FirstChild())
	if first == nil {
		return nil, malformedAt(doc.Root, src, "expected a bullet list, found only link reference definitions")
	}

	list, ok := first.(*gmast.List)
	if !ok {
		return nil, malformedAt(first, src, "expected a bullet list, found "+describe(first))
	}
	if list.IsOrdered() {
		return nil, malformedAt(list, src, "ordered lists are not supported, use - or * bullets")
	}
	if next := skipEmpty(list.NextSibling()); next != nil {
		return nil, malformedAt(next, src, "unexpected "+describe(next)+" after the list")
	}

	items := make([]Item, 0, list.ChildCount())
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		li, ok := c.(*gmast.ListItem)
		if !ok {
			return nil, malformedAt(c, src, "unexpected "+describe(c)+" inside the list")
		}
		item, err := listItem(li, src)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func listItem(li *gmast.ListItem, src []byte) (Item, error) {
	var inlines []Inline
	for b := skipEmpty(li.FirstChild()); b != nil; b = skipEmpty(b.NextSibling()) {
		switch b.(type) {
		case *gmast.TextBlock, *gmast.Paragraph:
			if len(inlines) > 0 {
				inlines = appendText(inlines, " ")
			}
			converted, err := convertInlines(b, src)
			if err != nil {
				return Item{}, err
			}
			inlines = append(inlines, converted...)
		default:
			return Item{}, malformedAt(b, src, "list item contains a nested "+describe(b))
		}
	}
	return Item{Inlines: trimEdges(inlines)}, nil
}

func convertInlines(parent gmast.Node, src []byte) ([]Inline, error) {
	var out []Inline
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *gmast.Text:
			out = appendText(out, textValue(v.Segment.Value(src)))
			if v.SoftLineBreak() || v.HardLineBreak() {
				out = appendText(out, " ")
			}
		case *gmast.String:
			out = appendText(out, string(v.Value))
		case *gmast.CodeSpan:
			out = append(out, Code{Value: markdown.Text(v, src)})
		case *gmast.Emphasis:
			children, err := convertInlines(v, src)
			if err != nil {
				return nil, err
			}
			out = append(out, Emphasis{Level: v.Level, Children: children})
		case *gmast.Link:
			children, err := convertInlines(v, src)
			if err != nil {
				return nil, err
			}
			out = append(out, Link{
				Destination: string(v.Destination),
				Title:       string(v.Title),
				Children:    children,
			})
		case *gmast.AutoLink:
			out = append(out, Link{
				Destination: string(v.URL(src)),
				Children:    []Inline{Text{Value: string(v.Label(src))}},
			})
		default:
			bad := malformedAt(parent, src, "unsupported inline "+describe(c))
			bad.Kind = describe(c)
			return nil, bad
		}
	}
	return out, nil
}

// textValue resolves backslash escapes and character references in a raw text segment.
func textValue(raw []byte) string {
	v := util.UnescapePunctuations(raw)
	v = util.ResolveNumericReferences(v)
	return string(util.ResolveEntityNames(v))
}

// skipEmpty returns the first node from n on that is not an empty text block.
// goldmark leaves such blocks behind where it consumed link reference definitions.
func skipEmpty(n gmast.Node) gmast.Node {
	for ; n != nil; n = n.NextSibling() {
		switch n.(type) {
		case *gmast.TextBlock, *gmast.Paragraph:
			if n.Lines().Len() == 0 && !n.HasChildren() {
				continue
			}
		}
		return n
	}
	return nil
}

func describe(n gmast.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Kind().String()
}

func malformedAt(n gmast.Node, src []byte, reason string) *MalformedInputError {
	return &MalformedInputError{Kind: describe(n), Line: lineOf(n, src), Reason: reason}
}

// lineOf returns the 1-based source line of the first block with line info at or
// below n, or 0 when none is known.
func lineOf(n gmast.Node, src []byte) int {
	for c := n; c != nil; c = c.FirstChild() {
		if c.Type() != gmast.TypeBlock {
			break
		}
		if lines := c.Lines(); lines != nil && lines.Len() > 0 {
			start := lines.At(0).Start
			if start > len(src) {
				return 0
			}
			return bytes.Count(src[:start], []byte("\n")) + 1
		}
	}
	return 0
}
