// Package docs loads document bodies from the docs directory and checks them
// against a navigation tree.
package docs

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// DocFile is one Markdown or MDX document.
type DocFile struct {
	Path         string // path on disk
	RelativePath string // slash-separated, relative to the docs directory
	Section      string // directory part of RelativePath, "" at the root
	Name         string // file name without extension
	ID           string // section plus front matter id or Name
	Meta         frontmatter.Meta
	Body         []byte
	BodyLine     int
}

// Set is the documents of a docs directory keyed by id.
type Set struct {
	Dir    string
	byID   map[string]*DocFile
	byPath map[string]*DocFile
	order  []string
}

// Len returns the number of documents.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Get returns the document with the given id.
func (s *Set) Get(id string) (*DocFile, bool) {
	if s == nil {
		return nil, false
	}
	d, ok := s.byID[id]
	return d, ok
}

// ByPath returns the document at a slash-separated path relative to the docs directory.
func (s *Set) ByPath(rel string) (*DocFile, bool) {
	if s == nil {
		return nil, false
	}
	d, ok := s.byPath[rel]
	return d, ok
}

// IDs returns all document ids in walk order (lexical by path).
func (s *Set) IDs() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// Load walks dir and reads every .md and .mdx file. Hidden files and files or
// directories starting with "_" (partials) are skipped. Two files claiming the
// same id is a validation error.
func Load(dir string) (*Set, error) {
	set := &Set{Dir: dir, byID: map[string]*DocFile{}, byPath: map[string]*DocFile{}}

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isDocFile(name) {
			return nil
		}

		doc, err := readDocFile(dir, p)
		if err != nil {
			return err
		}
		if prev, dup := set.byID[doc.ID]; dup {
			return ferrors.ValidationError("two documents declare the same id").
				WithContext("doc_id", doc.ID).
				WithContext("first", prev.RelativePath).
				WithContext("second", doc.RelativePath).
				Build()
		}
		set.byID[doc.ID] = doc
		set.byPath[doc.RelativePath] = doc
		set.order = append(set.order, doc.ID)
		slog.Debug("Discovered document", logfields.DocID(doc.ID), logfields.File(doc.RelativePath))
		return nil
	})
	if err != nil {
		if ferrors.IsClassified(err) {
			return nil, err
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.FileSystemError("docs directory not found").WithCause(err).
				WithContext("path", dir).
				Build()
		}
		return nil, ferrors.FileSystemError("failed to walk docs directory").WithCause(err).
			WithContext("path", dir).
			Build()
	}

	slog.Debug("Documents loaded", logfields.Path(dir), logfields.Count(set.Len()))
	return set, nil
}

func readDocFile(root, p string) (*DocFile, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return nil, ferrors.InternalError("invalid relative path").WithCause(err).Build()
	}
	rel = filepath.ToSlash(rel)

	content, err := os.ReadFile(p)
	if err != nil {
		return nil, ferrors.FileSystemError("failed to read document").WithCause(err).
			WithContext("path", p).
			Build()
	}
	parsed, err := frontmatter.Parse(content)
	if err != nil {
		return nil, ferrors.MarkdownError("invalid front matter").WithCause(err).
			WithContext("file", rel).
			Build()
	}

	section := path.Dir(rel)
	if section == "." {
		section = ""
	}
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))

	local := name
	if id := strings.TrimSpace(parsed.Meta.ID); id != "" {
		local = id
	}

	return &DocFile{
		Path:         p,
		RelativePath: rel,
		Section:      section,
		Name:         name,
		ID:           path.Join(section, local),
		Meta:         parsed.Meta,
		Body:         parsed.Body,
		BodyLine:     parsed.BodyLine,
	}, nil
}

func isDocFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx":
		return true
	default:
		return false
	}
}
