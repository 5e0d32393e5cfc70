package navtree

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_RoundTripsEveryFlattenedEntry(t *testing.T) {
	tree, err := Build(sampleOutline())
	require.NoError(t, err)

	for e := range tree.Flatten() {
		got, ok := tree.Resolve(e.Doc.ID())
		require.True(t, ok, "resolve %s", e.Doc.ID())
		assert.Equal(t, e, got)
	}
}

func TestResolve_NotFound(t *testing.T) {
	tree, err := Build(sampleOutline())
	require.NoError(t, err)

	for _, id := range []string{"missing", "", "   ", "Tutorials"} {
		_, ok := tree.Resolve(id)
		assert.False(t, ok, "id %q", id)
	}

	var nilTree *Tree
	_, ok := nilTree.Resolve("intro")
	assert.False(t, ok)
}

func TestResolve_ReturnsBreadcrumb(t *testing.T) {
	tree, err := Build(sampleOutline())
	require.NoError(t, err)

	e, ok := tree.Resolve("guides/setup/installation")
	require.True(t, ok)
	assert.Equal(t, "How-to guides / Setup / Installation", e.Breadcrumb())

	e, ok = tree.Resolve("tutorials/getting_started/initialize_a_data_context")
	require.True(t, ok)
	assert.Equal(t, "Tutorials / Getting started / Initialize A Data Context", e.Breadcrumb())
}

func TestFlatten_IsRestartableAndIdempotent(t *testing.T) {
	tree, err := Build(sampleOutline())
	require.NoError(t, err)

	seq := tree.Flatten()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Len(t, first, 6)
	assert.Equal(t, first, second)

	// Mutating a consumed entry must not leak into later iterations.
	first[1].Path[0] = "changed"
	third := slices.Collect(tree.Flatten())
	assert.Equal(t, second, third)
}

func TestFlatten_EarlyStop(t *testing.T) {
	tree, err := Build(sampleOutline())
	require.NoError(t, err)

	var seen []string
	for e := range tree.Flatten() {
		seen = append(seen, e.Doc.ID())
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"intro", "tutorials/getting_started/intro"}, seen)
}

func TestFlatten_OneEntryPerLeaf(t *testing.T) {
	outline := sampleOutline()
	tree, err := Build(outline)
	require.NoError(t, err)

	var leaves func([]Decl) int
	leaves = func(ds []Decl) int {
		n := 0
		for _, d := range ds {
			if d.Items != nil {
				n += leaves(*d.Items)
				continue
			}
			n++
		}
		return n
	}

	assert.Len(t, slices.Collect(tree.Flatten()), leaves(outline))
	assert.Equal(t, leaves(outline), tree.Stats().Docs)
}

func TestTree_AccessorsReturnCopies(t *testing.T) {
	tree, err := Build(sampleOutline())
	require.NoError(t, err)

	nodes := tree.Nodes()
	nodes[0] = nil
	assert.NotNil(t, tree.Nodes()[0])

	cat := tree.Nodes()[1].(*Category)
	items := cat.Items()
	items[0] = DocRef{id: "intruder"}
	assert.Equal(t, KindCategory, cat.Items()[0].Kind())
}

func TestTree_All(t *testing.T) {
	tree, err := Build([]Decl{Group("A", Doc("a1", ""), Group("B")), Doc("top", "")})
	require.NoError(t, err)

	type visit struct {
		path string
		kind Kind
	}
	var visits []visit
	for path, n := range tree.All() {
		label := ""
		switch v := n.(type) {
		case DocRef:
			label = v.ID()
		case *Category:
			label = v.Label()
		}
		visits = append(visits, visit{path: joinPath(path, label), kind: n.Kind()})
	}

	assert.Equal(t, []visit{
		{"A", KindCategory},
		{"A/a1", KindDoc},
		{"A/B", KindCategory},
		{"top", KindDoc},
	}, visits)
}

func TestTree_Walk(t *testing.T) {
	tree, err := Build([]Decl{Group("A", Doc("a1", ""), Group("B")), Doc("top", "")})
	require.NoError(t, err)

	var depths []int
	tree.Walk(func(depth int, _ Node) bool {
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []int{0, 1, 1, 0}, depths)

	visited := 0
	tree.Walk(func(int, Node) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

func joinPath(path []string, last string) string {
	out := ""
	for _, p := range append(path, last) {
		if out != "" {
			out += "/"
		}
		out += p
	}
	return out
}

func TestTree_OutlineRoundTrip(t *testing.T) {
	tree, err := Build(sampleOutline())
	require.NoError(t, err)

	rebuilt, err := Build(tree.Outline())
	require.NoError(t, err)

	assert.Equal(t, tree.Outline(), rebuilt.Outline())
	assert.Equal(t, slices.Collect(tree.Flatten()), slices.Collect(rebuilt.Flatten()))
}

func TestDocRef_DisplayLabel(t *testing.T) {
	tests := []struct {
		id, label, want string
	}{
		{"intro", "", "Intro"},
		{"guides/connecting_to_your_data/how-to-add-a-datasource", "", "How To Add A Datasource"},
		{"guides/setup", "Set things up", "Set things up"},
		{"api__reference", "", "Api Reference"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, DocRef{id: tt.id, label: tt.label}.DisplayLabel())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "doc", KindDoc.String())
	assert.Equal(t, "category", KindCategory.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
