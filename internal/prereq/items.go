package prereq

import (
	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/docnav/internal/markdown"
)

// GettingStartedURL is the link target of the default requirement.
const GettingStartedURL = "/docs/tutorials/getting_started/intro"

// DefaultItems returns the requirement every guide starts with.
func DefaultItems() []Item {
	return []Item{{
		Inlines: []Inline{
			Text{Value: "Completed the "},
			Link{Destination: GettingStartedURL, Children: []Inline{Text{Value: "Getting Started Tutorial"}}},
		},
	}}
}

// ParseContent parses author-supplied Markdown. Blank input returns nil, which
// Merge treats as "no extra prerequisites".
func ParseContent(md []byte) *markdown.Document {
	doc := markdown.ParseBody(md, markdown.Options{})
	if doc.Blank() {
		return nil
	}
	return doc
}

// ParseItem parses a single line of inline Markdown into an Item.
func ParseItem(md string) (Item, error) {
	doc := markdown.ParseBody([]byte(md), markdown.Options{})
	first := doc.Root.FirstChild()
	para, ok := first.(*gmast.Paragraph)
	if !ok {
		return Item{}, malformedAt(first, doc.Source, "expected one line of inline text, found "+describe(first))
	}
	if next := para.NextSibling(); next != nil {
		return Item{}, malformedAt(next, doc.Source, "expected one line of inline text, found an extra "+describe(next))
	}
	inlines, err := convertInlines(para, doc.Source)
	if err != nil {
		return Item{}, err
	}
	return Item{Inlines: trimEdges(inlines)}, nil
}

// ParseItems parses each line with ParseItem.
func ParseItems(lines []string) ([]Item, error) {
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		it, err := ParseItem(l)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
