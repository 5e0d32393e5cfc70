package prereq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBlocks(t *testing.T) {
	body := []byte("# Connect to data\n\n" +
		"<Prerequisites>\n\n- Configured a data source\n- Created a data set\n\n</Prerequisites>\n\n" +
		"Some prose.\n\n" +
		"<Prerequisites />\n")

	found := FindBlocks(body)
	require.Len(t, found, 2)

	assert.Equal(t, 3, found[0].Line)
	require.NotNil(t, found[0].Content)
	block := Merge(context.Background(), DefaultItems(), ParseContent(found[0].Content))
	assert.Equal(t, []string{
		"Completed the Getting Started Tutorial",
		"Configured a data source",
		"Created a data set",
	}, block.Plain())

	assert.Equal(t, 12, found[1].Line)
	assert.Nil(t, found[1].Content)
	assert.Nil(t, ParseContent(found[1].Content))
}

func TestFindBlocks_DedentsNestedContent(t *testing.T) {
	body := []byte("<div>\n  <Prerequisites>\n      - one\n      - two\n  </Prerequisites>\n</div>\n")

	found := FindBlocks(body)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].Line)
	assert.Equal(t, "\n- one\n- two\n  ", string(found[0].Content))

	block := Merge(context.Background(), nil, ParseContent(found[0].Content))
	require.False(t, block.Degraded)
	assert.Equal(t, []string{"one", "two"}, block.Plain())
}

func TestFindBlocks_None(t *testing.T) {
	assert.Empty(t, FindBlocks([]byte("# Title\n\nNo boxes here.\n")))
	assert.Empty(t, FindBlocks(nil))
}
