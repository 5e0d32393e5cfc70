package navtree

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func sampleOutline() []Decl {
	return []Decl{
		Doc("intro", "Introduction"),
		Group("Tutorials",
			Group("Getting started",
				Doc("tutorials/getting_started/intro", ""),
				Doc("tutorials/getting_started/initialize_a_data_context", ""),
			),
		).WithCollapsed(false),
		Group("How-to guides",
			Group("Setup", Doc("guides/setup/installation", "Installation")),
			Group("Connecting to your data"),
			Doc("guides/miscellaneous/how_to_use_the_cli", ""),
		),
		Doc("changelog", ""),
	}
}

func collect(t *Tree) []Entry {
	return slices.Collect(t.Flatten())
}

func TestBuild_PreservesAuthoredOrder(t *testing.T) {
	tree, err := Build(sampleOutline())
	require.NoError(t, err)
	require.Equal(t, 4, tree.Len())

	entries := collect(tree)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.Doc.ID())
	}
	assert.Equal(t, []string{
		"intro",
		"tutorials/getting_started/intro",
		"tutorials/getting_started/initialize_a_data_context",
		"guides/setup/installation",
		"guides/miscellaneous/how_to_use_the_cli",
		"changelog",
	}, ids)

	assert.Empty(t, entries[0].Path)
	assert.Equal(t, []string{"Tutorials", "Getting started"}, entries[1].Path)
	assert.Equal(t, []string{"How-to guides", "Setup"}, entries[3].Path)
	assert.Equal(t, []string{"How-to guides"}, entries[4].Path)
}

func TestBuild_NoImplicitSorting(t *testing.T) {
	tree, err := Build([]Decl{Doc("zeta", ""), Doc("alpha", ""), Doc("mid", "")})
	require.NoError(t, err)

	var ids []string
	for e := range tree.Flatten() {
		ids = append(ids, e.Doc.ID())
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ids)
}

func TestBuild_DuplicateIdentifierAcrossSubtrees(t *testing.T) {
	outline := []Decl{
		Group("Tutorials", Doc("tutorials/intro", "")),
		Group("Guides",
			Group("Setup", Doc("guides/setup", "")),
			Group("Again", Doc("tutorials/intro", "Intro again")),
		),
	}

	tree, err := Build(outline)
	require.Error(t, err)
	require.Nil(t, tree)

	var dup *DuplicateIdentifierError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "tutorials/intro", dup.ID)
	assert.Equal(t, "[0] Tutorials > [0] tutorials/intro", dup.First.String())
	assert.Equal(t, "[1] Guides > [1] Again > [0] tutorials/intro", dup.Second.String())

	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryOutline))
	assert.Equal(t, ferrors.SeverityFatal, ferrors.GetSeverity(err))
}

func TestBuild_DuplicateIdentifierIgnoresSurroundingWhitespace(t *testing.T) {
	_, err := Build([]Decl{Doc("intro", ""), Doc(" intro ", "")})

	var dup *DuplicateIdentifierError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "intro", dup.ID)
}

func TestBuild_MalformedNodes(t *testing.T) {
	empty := []Decl{}
	tests := []struct {
		name   string
		decl   Decl
		reason string
	}{
		{"category without items", Decl{Type: TypeCategory, Label: "Guides"}, "requires an items list"},
		{"category without label", Decl{Type: TypeCategory, Items: &empty}, "non-empty label"},
		{"category with blank label", Decl{Type: TypeCategory, Label: "   ", Items: &empty}, "non-empty label"},
		{"category with id", Decl{Type: TypeCategory, Label: "Guides", ID: "guides", Items: &empty}, "cannot reference"},
		{"doc without id", Decl{Type: TypeDoc, Label: "Intro"}, "non-empty id"},
		{"doc with items", Decl{Type: TypeDoc, ID: "intro", Items: &empty}, "cannot declare items"},
		{"unknown type", Decl{Type: "link", ID: "https://example.com"}, `unsupported entry type "link"`},
		{"nothing declared", Decl{Label: "Orphan"}, "neither id nor items"},
		{"ambiguous shape", Decl{ID: "intro", Items: &empty}, "both id and items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outline := []Decl{Doc("ok", ""), Group("Wrapper", tt.decl)}

			_, err := Build(outline)
			require.Error(t, err)

			var bad *MalformedNodeError
			require.True(t, errors.As(err, &bad))
			assert.Contains(t, bad.Reason, tt.reason)
			require.Len(t, bad.Path, 2)
			assert.Equal(t, 1, bad.Path[0].Index)
			assert.Equal(t, "Wrapper", bad.Path[0].Name)
			assert.Equal(t, 0, bad.Path[1].Index)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryOutline))
		})
	}
}

func TestBuild_TypeInference(t *testing.T) {
	items := []Decl{{ID: "nested"}}
	tree, err := Build([]Decl{{ID: "plain"}, {Label: "Inferred", Items: &items}})
	require.NoError(t, err)

	nodes := tree.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, KindDoc, nodes[0].Kind())
	assert.Equal(t, KindCategory, nodes[1].Kind())
}

func TestBuild_EmptyCategorySurvives(t *testing.T) {
	tree, err := Build([]Decl{
		Group("Under construction"),
		Group("Guides", Group("Coming soon"), Doc("guides/one", "")),
	})
	require.NoError(t, err)

	nodes := tree.Nodes()
	placeholder, ok := nodes[0].(*Category)
	require.True(t, ok)
	assert.Equal(t, "Under construction", placeholder.Label())
	assert.Zero(t, placeholder.Len())
	assert.Empty(t, placeholder.Items())

	entries := collect(tree)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Guides"}, entries[0].Path)

	stats := tree.Stats()
	assert.Equal(t, Stats{Docs: 1, Categories: 3, EmptyCategories: 2, MaxDepth: 2}, stats)
}

func TestBuild_EmptyOutline(t *testing.T) {
	tree, err := Build(nil)
	require.NoError(t, err)
	assert.Zero(t, tree.Len())
	assert.Empty(t, collect(tree))
}

func TestBuild_DeepNestingHasNoLimit(t *testing.T) {
	const depth = 64
	decl := Doc("deep/leaf", "")
	for i := depth - 1; i >= 0; i-- {
		decl = Group("Level", decl)
	}

	tree, err := Build([]Decl{decl})
	require.NoError(t, err)

	entry, ok := tree.Resolve("deep/leaf")
	require.True(t, ok)
	assert.Len(t, entry.Path, depth)
	assert.Equal(t, depth+1, tree.Stats().MaxDepth)
}

func TestBuild_CollapsedFlag(t *testing.T) {
	tree, err := Build([]Decl{
		Group("Default"),
		Group("Closed").WithCollapsed(true),
		Group("Open").WithCollapsed(false),
	})
	require.NoError(t, err)

	nodes := tree.Nodes()
	collapsed, set := nodes[0].(*Category).Collapsed()
	assert.False(t, set)
	assert.False(t, collapsed)

	collapsed, set = nodes[1].(*Category).Collapsed()
	assert.True(t, set)
	assert.True(t, collapsed)

	collapsed, set = nodes[2].(*Category).Collapsed()
	assert.True(t, set)
	assert.False(t, collapsed)
}

func TestBuild_DoesNotAliasInput(t *testing.T) {
	outline := []Decl{Group("Guides", Doc("a", ""))}
	tree, err := Build(outline)
	require.NoError(t, err)

	(*outline[0].Items)[0].ID = "mutated"

	_, ok := tree.Resolve("a")
	assert.True(t, ok)
}
