package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

func fruit() []Option {
	return []Option{
		{Label: "Apple", Value: "apple"},
		{Label: "Pineapple", Value: "pineapple"},
		{Label: "Grape", Value: "grape"},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Apple", "apple"},
		{"  Crème Brûlée ", "creme brulee"},
		{"ÉCLAIR", "eclair"},
		{"Straße", "strasse"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestMatchEmptyQueryReturnsAllInOrder(t *testing.T) {
	opts := fruit()
	got := Match("   ", opts)
	assert.Equal(t, labels(opts), labels(got))

	got[0].Label = "mutated"
	assert.Equal(t, "Apple", opts[0].Label, "result must not alias the input")
}

func TestMatchPrefixBeforeContains(t *testing.T) {
	got := Match("ap", fruit())
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, []string{"Apple", "Pineapple"}, labels(got)[:2])
	// Grape contains "ap" as a substring, so it trails in the contains tier.
	assert.Equal(t, []string{"Apple", "Pineapple", "Grape"}, labels(got))
}

func TestMatchStableWithinTier(t *testing.T) {
	opts := []Option{
		{Label: "Red Wine"}, {Label: "Wine Red"}, {Label: "Rosé"}, {Label: "Rouge"},
	}
	assert.Equal(t, []string{"Red Wine", "Rosé", "Rouge"}, labels(Match("r", opts))[:3])
	assert.Equal(t, []string{"Rosé"}, labels(Match("rose", opts)))
}

func TestMatchIsSubsequence(t *testing.T) {
	opts := []Option{
		{Label: "Color"}, {Label: "Size"}, {Label: "Colour scheme"}, {Label: "Material"}, {Label: "Collar"},
	}
	for _, q := range []string{"", "c", "col", "e", "zz", "size color", "oa"} {
		got := Matcher{Fuzzy: true}.Match(q, opts)
		seen := map[string]bool{}
		for _, o := range got {
			assert.False(t, seen[o.Label], "duplicate %q for %q", o.Label, q)
			seen[o.Label] = true
			assert.Contains(t, labels(opts), o.Label, "fabricated %q for %q", o.Label, q)
		}
	}
}

func TestMatchAllWordsFallback(t *testing.T) {
	opts := []Option{{Label: "New Zealand", Value: "NZ"}, {Label: "Netherlands", Value: "NL"}}
	assert.Equal(t, []string{"New Zealand"}, labels(Match("Zealand New", opts)))
	assert.Empty(t, Match("Qzzz", opts))
}

func TestMatchFuzzyTier(t *testing.T) {
	opts := []Option{{Label: "Material"}, {Label: "Color"}}
	assert.Empty(t, Match("mtrl", opts))
	assert.Equal(t, []string{"Material"}, labels(Matcher{Fuzzy: true}.Match("mtrl", opts)))
}

func TestFindExactMatchBy(t *testing.T) {
	opts := []Option{{Label: "New Zealand", Value: "NZ"}, {Label: "Niger", Value: "NE"}}

	got, ok := FindExactMatchBy(FieldValue, "nz", opts)
	require.True(t, ok)
	assert.Equal(t, "New Zealand", got.Label)

	got, ok = FindExactMatchBy(FieldLabel, "new zealand", opts)
	require.True(t, ok)
	assert.Equal(t, "NZ", got.Value)

	_, ok = FindExactMatchBy(FieldLabel, "NZ", opts)
	assert.False(t, ok)

	_, ok = FindExactMatchBy(FieldValue, "", opts)
	assert.False(t, ok)
}

func TestFindBestMatchSkipsDisabled(t *testing.T) {
	opts := []Option{
		{Label: "Size", Value: "attr-1", Disabled: true},
		{Label: "Size (EU)", Value: "attr-2"},
	}
	got, ok := FindBestMatch("size", opts)
	require.True(t, ok)
	assert.Equal(t, "attr-2", got.Value)

	_, ok = FindBestMatch("", opts)
	assert.False(t, ok)
}

func TestCacheReusesResult(t *testing.T) {
	opts := fruit()
	var c Cache

	first := c.Match("ap", opts)
	second := c.Match("ap", opts)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0])

	replaced := append([]Option(nil), opts[:1]...)
	third := c.Match("ap", replaced)
	assert.Equal(t, []string{"Apple"}, labels(third))

	c.Reset()
	assert.Equal(t, labels(Match("gr", opts)), labels(c.Match("gr", opts)))
}
