package navtree

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindDoc Kind = iota
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindDoc:
		return TypeDoc
	case KindCategory:
		return TypeCategory
	default:
		return "unknown"
	}
}

// Node is either a DocRef or a *Category.
type Node interface {
	Kind() Kind
	isNode()
}

// DocRef references a single document by id.
type DocRef struct {
	id    string
	label string
}

func (DocRef) Kind() Kind { return KindDoc }
func (DocRef) isNode()    {}

// ID returns the document identifier.
func (d DocRef) ID() string { return d.id }

// Label returns the authored label override, or "" when none was given.
func (d DocRef) Label() string { return d.label }

var titleCaser = cases.Title(language.English)

// DisplayLabel returns the label override, falling back to a title-cased form of
// the last id segment ("getting_started/connect_to_data" -> "Connect To Data").
func (d DocRef) DisplayLabel() string {
	if d.label != "" {
		return d.label
	}
	last := d.id
	if i := strings.LastIndex(last, "/"); i >= 0 {
		last = last[i+1:]
	}
	last = strings.NewReplacer("_", " ", "-", " ").Replace(last)
	return titleCaser.String(strings.Join(strings.Fields(last), " "))
}

// Category groups an ordered list of child nodes under a label.
type Category struct {
	label     string
	collapsed *bool
	items     []Node
}

func (*Category) Kind() Kind { return KindCategory }
func (*Category) isNode()    {}

// Label returns the category label.
func (c *Category) Label() string { return c.label }

// Collapsed reports the default-collapsed flag and whether the author set it at all.
func (c *Category) Collapsed() (collapsed, set bool) {
	if c.collapsed == nil {
		return false, false
	}
	return *c.collapsed, true
}

// Items returns a copy of the child nodes in authored order.
func (c *Category) Items() []Node { return slices.Clone(c.items) }

// Len returns the number of direct children.
func (c *Category) Len() int { return len(c.items) }
