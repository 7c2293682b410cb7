package heuristics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	tables := Default()

	require.NotNil(t, tables)
	assert.Equal(t, 5, tables.MaxTags)
	assert.Equal(t, "Abstract", tables.DefaultTag)
	assert.Len(t, tables.ApostropheRepairs, 31)
	assert.Equal(t, "family", tables.TagRules[0].Keyword)
	assert.Same(t, tables, Default(), "tables should be parsed once")
}

func TestTables_Predicates(t *testing.T) {
	tables := Default()

	assert.True(t, tables.IsJunkStart("@@font"))
	assert.True(t, tables.IsJunkStart("[1]"))
	assert.False(t, tables.IsJunkStart("Autumn"))
	assert.False(t, tables.IsJunkStart(""))

	assert.True(t, tables.IsTrailer("Microsoft Works Word Processor"))
	assert.True(t, tables.IsTrailer("Times New Roman Arial"))
	assert.True(t, tables.IsTrailer("abcd"))
	assert.False(t, tables.IsTrailer("abcde"))
	assert.False(t, tables.IsTrailer("Abcd"))

	assert.True(t, tables.IsSignature("charlie"))
	assert.True(t, tables.IsSignature("CRS"))
	assert.False(t, tables.IsSignature("Charlie Brown"))

	assert.True(t, tables.IsFragment("I"))
	assert.True(t, tables.IsFragment("to"))
	assert.False(t, tables.IsFragment("so,"))
	assert.False(t, tables.IsFragment("a."))
	assert.False(t, tables.IsFragment("the"))
	assert.False(t, tables.IsFragment(""))

	assert.True(t, tables.StartsWithSuffix("ve known sorrow"))
	assert.True(t, tables.StartsWithSuffix("t"))
	assert.True(t, tables.StartsWithSuffix("ll, then"))
	assert.False(t, tables.StartsWithSuffix("very"))
	assert.False(t, tables.StartsWithSuffix("Ve known"))
}

func TestTables_RepairApostrophes(t *testing.T) {
	tables := Default()

	tests := []struct {
		in   string
		want string
	}{
		{in: "I dont know", want: "I don't know"},
		{in: "Ive seen whats coming", want: "I've seen what's coming"},
		{in: "abandonts the cause", want: "abandonts the cause"},
		{in: "Dont stop", want: "Dont stop"},
		{in: "shes sure hes gone", want: "she's sure he's gone"},
		{in: "already fixed: don't", want: "already fixed: don't"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tables.RepairApostrophes(tt.in))
		})
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "No signature names",
			yaml:    "contraction_suffixes: [ve]\nmax_tags: 5\ndefault_tag: X\nfragment_max_runes: 2\n",
			wantErr: ErrNoSignatureNames,
		},
		{
			name:    "No default tag",
			yaml:    "signature_names: [A]\ncontraction_suffixes: [ve]\nmax_tags: 5\nfragment_max_runes: 2\n",
			wantErr: ErrNoDefaultTag,
		},
		{
			name:    "Zero max tags",
			yaml:    "signature_names: [A]\ncontraction_suffixes: [ve]\ndefault_tag: X\nfragment_max_runes: 2\n",
			wantErr: ErrInvalidMaxTags,
		},
		{
			name: "Empty tag rule",
			yaml: "signature_names: [A]\ncontraction_suffixes: [ve]\nmax_tags: 5\ndefault_tag: X\nfragment_max_runes: 2\n" +
				"tag_rules:\n  - { keyword: war, tags: [] }\n",
			wantErr: ErrEmptyTagRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("signature_names: [A]\nsignatures: [B]\n"))
	require.Error(t, err)
}

func TestLoad_BadTrailerPattern(t *testing.T) {
	_, err := Load(strings.NewReader(
		"signature_names: [A]\ncontraction_suffixes: [ve]\nmax_tags: 5\ndefault_tag: X\nfragment_max_runes: 2\n" +
			"trailer_patterns: [\"[unclosed\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailer_patterns")
}
