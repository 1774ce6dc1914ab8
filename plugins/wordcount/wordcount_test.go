package wordcount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/medit/internal/plugin/plugintest"
	"github.com/bethropolis/medit/internal/types"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Stats
	}{
		{"empty", "", Stats{}},
		{"single line", "hello, world", Stats{Lines: 1, Words: 2, Chars: 12}},
		{"multi line", "one two\nthree", Stats{Lines: 2, Words: 3, Chars: 13}},
		{"graphemes", "🇩🇪 café", Stats{Lines: 1, Words: 1, Chars: 6}},
		{"punctuation only", " -- ", Stats{Lines: 1, Words: 0, Chars: 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Count(tc.text))
		})
	}
}

func TestWCCommand(t *testing.T) {
	api := plugintest.New()
	require.NoError(t, New().Initialize(api))

	assert.Error(t, api.Run("wc"), "no active view")

	v := api.OpenText("alpha beta\ngamma")
	require.NoError(t, api.Run("wc"))
	assert.Equal(t, "Lines: 2, Words: 3, Chars: 16 (document)", api.LastStatus())

	v.Selection().Set([]types.Region{{Anchor: 0, Active: 5}, {Anchor: 11, Active: 16}, types.Cursor(7)})
	require.NoError(t, api.Run("wc"))
	assert.Equal(t, "Lines: 2, Words: 2, Chars: 10 (2 regions)", api.LastStatus())
}
