package navtree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Declaration type names as they appear in outline files.
const (
	TypeDoc      = "doc"
	TypeCategory = "category"
)

// Decl is one outline declaration, the input shape of Build.
//
// Items is a pointer because presence matters: a category must declare items,
// even if the list is empty.
type Decl struct {
	Type      string  `yaml:"type,omitempty" json:"type,omitempty" toml:"type"`
	ID        string  `yaml:"id,omitempty" json:"id,omitempty" toml:"id"`
	Label     string  `yaml:"label,omitempty" json:"label,omitempty" toml:"label"`
	Collapsed *bool   `yaml:"collapsed,omitempty" json:"collapsed,omitempty" toml:"collapsed"`
	Items     *[]Decl `yaml:"items,omitempty" json:"items,omitempty" toml:"items"`
}

// Doc declares a document reference.
func Doc(id, label string) Decl {
	return Decl{Type: TypeDoc, ID: id, Label: label}
}

// Group declares a category with the given children. Items is always present.
func Group(label string, items ...Decl) Decl {
	children := append([]Decl{}, items...)
	return Decl{Type: TypeCategory, Label: label, Items: &children}
}

// WithCollapsed returns a copy of d with the collapsed flag set.
func (d Decl) WithCollapsed(collapsed bool) Decl {
	d.Collapsed = &collapsed
	return d
}

// yamlDecl mirrors Decl with items kept as a node, so a present but null
// items key can be told apart from an absent one.
type yamlDecl struct {
	Type      string    `yaml:"type"`
	ID        string    `yaml:"id"`
	Label     string    `yaml:"label"`
	Collapsed *bool     `yaml:"collapsed"`
	Items     yaml.Node `yaml:"items"`
}

// UnmarshalYAML accepts either a mapping or a bare string, which is shorthand
// for a document reference.
func (d *Decl) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*d = Decl{Type: TypeDoc, ID: value.Value}
		return nil
	case yaml.MappingNode:
		var raw yamlDecl
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*d = Decl{Type: raw.Type, ID: raw.ID, Label: raw.Label, Collapsed: raw.Collapsed}
		if raw.Items.Kind == 0 {
			return nil
		}
		if isNull(&raw.Items) {
			return fmt.Errorf("line %d: items must be a list (use [] for an empty section)", raw.Items.Line)
		}
		items, err := DecodeYAMLList(&raw.Items)
		if err != nil {
			return err
		}
		d.Items = &items
		return nil
	default:
		return fmt.Errorf("line %d: outline entry must be a document id or a mapping", value.Line)
	}
}

// DecodeYAMLList decodes a sequence of declarations. Null elements become empty
// declarations so Build reports them instead of yaml.v3 dropping them.
func DecodeYAMLList(node *yaml.Node) ([]Decl, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list of outline entries", node.Line)
	}
	out := make([]Decl, 0, len(node.Content))
	for _, elem := range node.Content {
		var d Decl
		if !isNull(elem) {
			if err := elem.Decode(&d); err != nil {
				return nil, err
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// UnmarshalTOML implements toml.Unmarshaler with the same shorthand as UnmarshalYAML.
func (d *Decl) UnmarshalTOML(data any) error {
	decl, err := declFromTOML(data)
	if err != nil {
		return err
	}
	*d = decl
	return nil
}

func declFromTOML(data any) (Decl, error) {
	switch v := data.(type) {
	case string:
		return Decl{Type: TypeDoc, ID: v}, nil
	case map[string]any:
		var d Decl
		var err error
		if d.Type, err = tomlString(v, "type"); err != nil {
			return Decl{}, err
		}
		if d.ID, err = tomlString(v, "id"); err != nil {
			return Decl{}, err
		}
		if d.Label, err = tomlString(v, "label"); err != nil {
			return Decl{}, err
		}
		if raw, ok := v["collapsed"]; ok {
			b, isBool := raw.(bool)
			if !isBool {
				return Decl{}, fmt.Errorf("collapsed must be a boolean, got %T", raw)
			}
			d.Collapsed = &b
		}
		if raw, ok := v["items"]; ok {
			items, err := declsFromTOML(raw)
			if err != nil {
				return Decl{}, err
			}
			d.Items = &items
		}
		return d, nil
	default:
		return Decl{}, fmt.Errorf("outline entry must be a document id or a table, got %T", data)
	}
}

func declsFromTOML(data any) ([]Decl, error) {
	var elems []any
	switch v := data.(type) {
	case []any:
		elems = v
	case []map[string]any:
		elems = make([]any, len(v))
		for i := range v {
			elems[i] = v[i]
		}
	default:
		return nil, fmt.Errorf("items must be an array, got %T", data)
	}
	out := make([]Decl, 0, len(elems))
	for i, e := range elems {
		d, err := declFromTOML(e)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func tomlString(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}
	return s, nil
}
