package navtree

import (
	"iter"
	"slices"
	"strings"
)

// Tree is the built navigation tree. It is immutable: every accessor returns copies.
type Tree struct {
	nodes []Node
}

// Entry is one leaf of the tree together with the labels of its ancestor categories.
type Entry struct {
	Path []string
	Doc  DocRef
}

// Breadcrumb joins the ancestor labels and the document's display label.
func (e Entry) Breadcrumb() string {
	return strings.Join(append(slices.Clone(e.Path), e.Doc.DisplayLabel()), " / ")
}

// Nodes returns the top-level nodes in display order.
func (t *Tree) Nodes() []Node {
	if t == nil {
		return nil
	}
	return slices.Clone(t.nodes)
}

// Len returns the number of top-level nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// All yields every node in pre-order along with its ancestor labels.
func (t *Tree) All() iter.Seq2[[]string, Node] {
	return func(yield func([]string, Node) bool) {
		if t == nil {
			return
		}
		walk(t.nodes, nil, yield)
	}
}

// Walk calls fn for every node in pre-order. Top-level nodes have depth 0.
// Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(depth int, n Node) bool) {
	for path, n := range t.All() {
		if !fn(len(path), n) {
			return
		}
	}
}

// Flatten yields every document reference in pre-order with its ancestor path.
// The sequence can be iterated any number of times.
func (t *Tree) Flatten() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for path, n := range t.All() {
			doc, ok := n.(DocRef)
			if !ok {
				continue
			}
			if !yield(Entry{Path: path, Doc: doc}) {
				return
			}
		}
	}
}

// Resolve finds the document with the given id. ok is false when the id is not in
// the tree, which callers should treat as a broken reference rather than a failure.
func (t *Tree) Resolve(id string) (entry Entry, ok bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, false
	}
	for e := range t.Flatten() {
		if e.Doc.id == id {
			return e, true
		}
	}
	return Entry{}, false
}

func walk(nodes []Node, ancestors []string, yield func([]string, Node) bool) bool {
	for _, n := range nodes {
		if !yield(slices.Clone(ancestors), n) {
			return false
		}
		if c, ok := n.(*Category); ok {
			if !walk(c.items, append(slices.Clip(ancestors), c.label), yield) {
				return false
			}
		}
	}
	return true
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Docs            int
	Categories      int
	EmptyCategories int
	MaxDepth        int
}

// Stats counts nodes by kind. Depth counts top-level nodes as depth 1.
func (t *Tree) Stats() Stats {
	var s Stats
	for path, n := range t.All() {
		s.MaxDepth = max(s.MaxDepth, len(path)+1)
		switch v := n.(type) {
		case DocRef:
			s.Docs++
		case *Category:
			s.Categories++
			if len(v.items) == 0 {
				s.EmptyCategories++
			}
		}
	}
	return s
}

// Outline converts the tree back to declarations. Build(t.Outline()) yields an
// equivalent tree, which makes Outline the canonical serialized form.
func (t *Tree) Outline() []Decl {
	if t == nil {
		return nil
	}
	return toDecls(t.nodes)
}

func toDecls(nodes []Node) []Decl {
	out := make([]Decl, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case DocRef:
			out = append(out, Doc(v.id, v.label))
		case *Category:
			d := Group(v.label, toDecls(v.items)...)
			if v.collapsed != nil {
				d = d.WithCollapsed(*v.collapsed)
			}
			out = append(out, d)
		}
	}
	return out
}
