package docs

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navtree"
)

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func fixtureDocs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeDoc(t, root, "intro.md", "# Welcome\n\nStart with the [tutorial](/docs/tutorials/getting_started/intro).\n")
	writeDoc(t, root, "tutorials/getting_started/intro.md", "# Getting started\n\nBack to [home](../../intro.md#top).\n")
	writeDoc(t, root, "guides/connect.mdx", "---\n"+
		"id: connect_to_data\n"+
		"title: Connect to data\n"+
		"---\n"+
		"import Prerequisites from '../_prerequisites.jsx'\n"+
		"\n"+
		"<Prerequisites>\n"+
		"\n"+
		"Configured a data source\n"+
		"\n"+
		"</Prerequisites>\n"+
		"\n"+
		"See [missing](/docs/guides/nope), [external](https://example.com), [blog](/blog/post)\n"+
		"and [a sibling](./absent.md).\n")
	writeDoc(t, root, "orphan.md", "Nobody links here.\n")
	writeDoc(t, root, "_partial.md", "partial\n")
	writeDoc(t, root, ".hidden.md", "hidden\n")
	writeDoc(t, root, "_drafts/draft.md", "draft\n")
	writeDoc(t, root, "img/diagram.png", "png")
	return root
}

func fixtureTree(t *testing.T) *navtree.Tree {
	t.Helper()
	tree, err := navtree.Build([]navtree.Decl{
		navtree.Doc("intro", ""),
		navtree.Group("Tutorials", navtree.Doc("tutorials/getting_started/intro", "")),
		navtree.Group("Guides",
			navtree.Doc("guides/connect_to_data", "Connect"),
			navtree.Doc("guides/not_written", ""),
		),
	})
	require.NoError(t, err)
	return tree
}

func TestLoad(t *testing.T) {
	set, err := Load(fixtureDocs(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"guides/connect_to_data",
		"intro",
		"orphan",
		"tutorials/getting_started/intro",
	}, set.IDs())

	doc, ok := set.Get("guides/connect_to_data")
	require.True(t, ok)
	assert.Equal(t, "guides/connect.mdx", doc.RelativePath)
	assert.Equal(t, "guides", doc.Section)
	assert.Equal(t, "connect", doc.Name)
	assert.Equal(t, "Connect to data", doc.Meta.Title)
	assert.Equal(t, 5, doc.BodyLine)

	byPath, ok := set.ByPath("guides/connect.mdx")
	require.True(t, ok)
	assert.Same(t, doc, byPath)

	_, ok = set.Get("_partial")
	assert.False(t, ok)
}

func TestLoad_DuplicateID(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "a.md", "---\nid: same\n---\n")
	writeDoc(t, root, "same.md", "body\n")

	_, err := Load(root)
	require.Error(t, err)
	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryValidation, ce.Category())
	id, _ := ce.Context().GetString("doc_id")
	assert.Equal(t, "same", id)
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestLoad_BadFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "broken.md", "---\ntitle: never closed\n")

	_, err := Load(root)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryMarkdown))
}

type brokenRefRecorder struct {
	metrics.NoopRecorder
	kinds map[string]int
}

func (r *brokenRefRecorder) IncBrokenReference(kind string) { r.kinds[kind]++ }

func TestCheck(t *testing.T) {
	set, err := Load(fixtureDocs(t))
	require.NoError(t, err)

	var logs bytes.Buffer
	rec := &brokenRefRecorder{kinds: map[string]int{}}
	checker := Checker{Recorder: rec, Logger: slog.New(slog.NewTextHandler(&logs, nil))}

	rep := checker.Check(context.Background(), fixtureTree(t), set)

	assert.Equal(t, 4, rep.Leaves)
	assert.Equal(t, 4, rep.Docs)

	assert.Equal(t, 1, rep.Count(IssueMissingBody))
	assert.Equal(t, 2, rep.Count(IssueBrokenLink))
	assert.Equal(t, 1, rep.Count(IssueMalformedPrerequisites))
	assert.Equal(t, 1, rep.Count(IssueUnlisted))
	assert.Equal(t, 4, rep.Warnings())

	var targets []string
	for _, is := range rep.Issues {
		switch is.Kind {
		case IssueMissingBody:
			assert.Equal(t, "guides/not_written", is.DocID)
			assert.Equal(t, "Guides / Not Written", is.Detail)
		case IssueBrokenLink:
			assert.Equal(t, "guides/connect_to_data", is.DocID)
			targets = append(targets, is.Target)
		case IssueMalformedPrerequisites:
			assert.Equal(t, "guides/connect.mdx", is.File)
			assert.Equal(t, 7, is.Line)
		case IssueUnlisted:
			assert.Equal(t, "orphan", is.DocID)
		}
	}
	assert.Equal(t, []string{"/docs/guides/nope", "./absent.md"}, targets)

	assert.Equal(t, map[string]int{
		string(IssueMissingBody):            1,
		string(IssueBrokenLink):             2,
		string(IssueMalformedPrerequisites): 1,
	}, rec.kinds)

	out := logs.String()
	assert.Contains(t, out, "kind=broken_link")
	assert.NotContains(t, out, "Document not in sidebar", "unlisted documents log at debug")
}

func TestCheck_Clean(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "intro.md", "<Prerequisites>\n- Read the [intro](./intro.md)\n</Prerequisites>\n")
	set, err := Load(root)
	require.NoError(t, err)

	tree, err := navtree.Build([]navtree.Decl{navtree.Doc("intro", "")})
	require.NoError(t, err)

	rep := Checker{}.Check(context.Background(), tree, set)
	assert.Empty(t, rep.Issues)
	assert.Equal(t, 1, rep.Leaves)
}
