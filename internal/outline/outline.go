// Package outline loads sidebar outline files into navigation declarations.
//
// An outline file maps sidebar names to declaration lists, in the spirit of a
// Docusaurus sidebars file:
//
//	docs:
//	  - intro
//	  - type: category
//	    label: Tutorials
//	    items:
//	      - tutorials/getting_started/intro
//
// A file whose top level is a plain list declares a single sidebar named "docs".
// YAML and JSON files are decoded with yaml.v3, TOML files with BurntSushi/toml.
package outline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/navtree"
)

// DefaultSidebar is the sidebar name used for files whose top level is a list.
const DefaultSidebar = "docs"

// Format selects the decoder for an outline file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension. JSON is decoded as YAML.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", ferrors.ConfigError("unsupported outline file extension").
			WithContext("path", path).
			Build()
	}
}

// Sidebar is one named declaration list.
type Sidebar struct {
	Name  string
	Items []navtree.Decl
}

// File is a decoded outline file. Sidebars keep the order of the file.
type File struct {
	Path     string
	Sidebars []Sidebar
}

// Names returns the sidebar names in file order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Sidebars))
	for _, s := range f.Sidebars {
		names = append(names, s.Name)
	}
	return names
}

// Sidebar returns the named sidebar, or the first one when name is empty.
func (f *File) Sidebar(name string) (Sidebar, bool) {
	if name == "" {
		if len(f.Sidebars) == 0 {
			return Sidebar{}, false
		}
		return f.Sidebars[0], true
	}
	for _, s := range f.Sidebars {
		if s.Name == name {
			return s, true
		}
	}
	return Sidebar{}, false
}

// Build validates the named sidebar (or the first one) and returns its tree.
func (f *File) Build(name string) (*navtree.Tree, Sidebar, error) {
	sb, ok := f.Sidebar(name)
	if !ok {
		return nil, Sidebar{}, ferrors.NotFoundError("sidebar not found in outline").
			Fatal().
			WithContext("sidebar", name).
			WithContext("available", strings.Join(f.Names(), ",")).
			Build()
	}
	tree, err := navtree.Build(sb.Items)
	if err != nil {
		return nil, sb, fmt.Errorf("sidebar %q in %s: %w", sb.Name, f.Path, err)
	}
	return tree, sb, nil
}

// Load reads and decodes an outline file.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- outline path comes from the user's own configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.FileSystemError("failed to read outline").WithCause(err).
			WithContext("path", path).
			Build()
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Parse decodes outline content in the given format.
func Parse(data []byte, format Format) (*File, error) {
	var (
		sidebars []Sidebar
		err      error
	)
	switch format {
	case FormatYAML:
		sidebars, err = parseYAML(data)
	case FormatTOML:
		sidebars, err = parseTOML(data)
	default:
		return nil, ferrors.ConfigError("unsupported outline format").WithContext("format", string(format)).Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryOutline, "failed to decode outline").
			Fatal().
			WithContext("format", string(format)).
			Build()
	}
	if len(sidebars) == 0 {
		return nil, ferrors.OutlineError("outline declares no sidebars").Build()
	}
	return &File{Sidebars: sidebars}, nil
}

func parseYAML(data []byte) ([]Sidebar, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		items, err := navtree.DecodeYAMLList(root)
		if err != nil {
			return nil, err
		}
		return []Sidebar{{Name: DefaultSidebar, Items: items}}, nil
	case yaml.MappingNode:
		sidebars := make([]Sidebar, 0, len(root.Content)/2)
		seen := make(map[string]bool, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i], root.Content[i+1]
			if seen[key.Value] {
				return nil, fmt.Errorf("line %d: sidebar %q declared twice", key.Line, key.Value)
			}
			seen[key.Value] = true
			if value.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: sidebar %q must be a list", value.Line, key.Value)
			}
			items, err := navtree.DecodeYAMLList(value)
			if err != nil {
				return nil, err
			}
			sidebars = append(sidebars, Sidebar{Name: key.Value, Items: items})
		}
		return sidebars, nil
	default:
		return nil, fmt.Errorf("line %d: outline must be a list or a mapping of sidebars", root.Line)
	}
}

func parseTOML(data []byte) ([]Sidebar, error) {
	var raw map[string][]navtree.Decl
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
	if err != nil {
		return nil, err
	}

	sidebars := make([]Sidebar, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, key := range md.Keys() {
		if len(key) != 1 || seen[key[0]] {
			continue
		}
		name := key[0]
		seen[name] = true
		sidebars = append(sidebars, Sidebar{Name: name, Items: raw[name]})
	}
	return sidebars, nil
}
