package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type format string

const (
	formatText format = "text"
	formatJSON format = "json"
)

func newFormatNormalizer() *Normalizer[format] {
	return NewNormalizer("format", map[string]format{
		"text": formatText,
		"JSON": formatJSON,
	}, formatText)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newFormatNormalizer()

	tests := []struct {
		name  string
		input string
		want  format
	}{
		{"exact", "text", formatText},
		{"upper", "JSON", formatJSON},
		{"spaces", "  json ", formatJSON},
		{"unknown falls back", "yaml", formatText},
		{"empty falls back", "", formatText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Parse(t *testing.T) {
	n := newFormatNormalizer()

	v, err := n.Parse(" Json")
	require.NoError(t, err)
	assert.Equal(t, formatJSON, v)

	v, err = n.Parse("")
	require.NoError(t, err)
	assert.Equal(t, formatText, v)

	_, err = n.Parse("yaml")
	require.Error(t, err)
	assert.Equal(t, `invalid format "yaml", valid options: json, text`, err.Error())
}

func TestNormalizer_ValidKeysIsCopy(t *testing.T) {
	n := newFormatNormalizer()
	keys := n.ValidKeys()
	assert.Equal(t, []string{"json", "text"}, keys)

	keys[0] = "changed"
	assert.Equal(t, []string{"json", "text"}, n.ValidKeys())
}
