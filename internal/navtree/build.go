package navtree

import (
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Build validates an outline and returns the navigation tree in authored order.
//
// The first problem found in a depth-first, pre-order walk aborts the build. The
// returned error is a classified outline error whose cause is a
// *MalformedNodeError or a *DuplicateIdentifierError.
func Build(outline []Decl) (*Tree, error) {
	b := &builder{seen: make(map[string]Path)}
	nodes, err := b.items(outline, nil)
	if err != nil {
		return nil, err
	}
	return &Tree{nodes: nodes}, nil
}

type builder struct {
	seen map[string]Path
}

func (b *builder) items(decls []Decl, parent Path) ([]Node, error) {
	nodes := make([]Node, 0, len(decls))
	for i, d := range decls {
		n, err := b.node(d, parent.child(i, d.name()))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (b *builder) node(d Decl, at Path) (Node, error) {
	kind, reason := d.classify()
	if reason != "" {
		return nil, malformed(at, reason)
	}

	if kind == KindDoc {
		id := strings.TrimSpace(d.ID)
		if first, dup := b.seen[id]; dup {
			cause := &DuplicateIdentifierError{ID: id, First: first, Second: at}
			return nil, ferrors.WrapError(cause, ferrors.CategoryOutline, "duplicate document identifier").
				Fatal().
				WithContext("id", id).
				WithContext("first", first.String()).
				WithContext("second", at.String()).
				Build()
		}
		b.seen[id] = at
		return DocRef{id: id, label: strings.TrimSpace(d.Label)}, nil
	}

	children, err := b.items(*d.Items, at)
	if err != nil {
		return nil, err
	}
	c := &Category{label: strings.TrimSpace(d.Label), items: children}
	if d.Collapsed != nil {
		v := *d.Collapsed
		c.collapsed = &v
	}
	return c, nil
}

func malformed(at Path, reason string) error {
	cause := &MalformedNodeError{Path: at, Reason: reason}
	return ferrors.WrapError(cause, ferrors.CategoryOutline, "malformed outline entry").
		Fatal().
		WithContext("path", at.String()).
		Build()
}

// classify decides which node shape d has. A non-empty reason means d is malformed.
func (d Decl) classify() (Kind, string) {
	typ := strings.ToLower(strings.TrimSpace(d.Type))
	if typ == "" {
		switch {
		case d.Items != nil && d.ID != "":
			return 0, "entry has both id and items; set type to doc or category"
		case d.Items != nil:
			typ = TypeCategory
		case d.ID != "":
			typ = TypeDoc
		default:
			return 0, "entry has neither id nor items"
		}
	}

	switch typ {
	case TypeDoc:
		if strings.TrimSpace(d.ID) == "" {
			return 0, "doc entry requires a non-empty id"
		}
		if d.Items != nil {
			return 0, "doc entry cannot declare items"
		}
		return KindDoc, ""
	case TypeCategory:
		if strings.TrimSpace(d.Label) == "" {
			return 0, "category requires a non-empty label"
		}
		if d.Items == nil {
			return 0, "category requires an items list (use [] for an empty section)"
		}
		if d.ID != "" {
			return 0, "category cannot reference a document id"
		}
		return KindCategory, ""
	default:
		return 0, fmt.Sprintf("unsupported entry type %q", d.Type)
	}
}

// name is the best available name for diagnostics.
func (d Decl) name() string {
	if d.Label != "" && d.Items != nil {
		return strings.TrimSpace(d.Label)
	}
	if id := strings.TrimSpace(d.ID); id != "" {
		return id
	}
	return strings.TrimSpace(d.Label)
}
