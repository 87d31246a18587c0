package formatter

import (
	"testing"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"b":1,"a":{"d":[3,{"z":true,"y":null}],"c":"x"},"e":[]}`

func mustParse(t *testing.T, text string) models.Value {
	t.Helper()
	v, err := parser.ParseString(text)
	require.NoError(t, err)
	return v
}

func TestFormat_Indent(t *testing.T) {
	v := mustParse(t, `{"a":[1,2],"b":{}}`)

	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {}\n}", Format(v, Options{Indent: 2}))
	assert.Equal(t, "{\n    \"a\": [\n        1,\n        2\n    ],\n    \"b\": {}\n}", Format(v, Options{Indent: 4}))
	assert.Equal(t, `{"a":[1,2],"b":{}}`, Format(v, Options{Indent: 0}))
}

func TestFormat_SortKeys(t *testing.T) {
	v := mustParse(t, sample)

	got := Format(v, Options{Indent: 2, SortKeys: true})
	sorted := mustParse(t, got)

	assert.Equal(t, []string{"a", "b", "e"}, sorted.Keys())
	a, _ := sorted.Get("a")
	assert.Equal(t, []string{"c", "d"}, a.Keys())
	d, _ := a.Get("d")
	inner, _ := d.Index(1)
	assert.Equal(t, []string{"y", "z"}, inner.Keys())

	first, _ := d.Index(0)
	assert.Equal(t, float64(3), first.Float(), "array order is untouched")
}

func TestFormat_SortKeysMatchesSortedTree(t *testing.T) {
	v := mustParse(t, sample)

	for _, indent := range []int{0, 2, 4} {
		sorted := Format(v, Options{Indent: indent, SortKeys: true})
		assert.Equal(t, Format(SortKeys(v), Options{Indent: indent}), sorted, "indent %d", indent)
	}
	assert.Equal(t, `{"a":{"c":"x","d":[3,{"y":null,"z":true}]},"b":1,"e":[]}`, Format(v, Options{SortKeys: true}))
}

func TestSortKeys_DoesNotMutateInput(t *testing.T) {
	v := mustParse(t, sample)
	_ = SortKeys(v)
	assert.Equal(t, []string{"b", "a", "e"}, v.Keys())
}

func TestMinify(t *testing.T) {
	v := mustParse(t, "{\n  \"a\" : [ 1 , \"x y\" ],\n  \"b\" : null\n}")
	assert.Equal(t, `{"a":[1,"x y"],"b":null}`, Minify(v))
}

func TestFormatText_Metadata(t *testing.T) {
	input := `{"a":1}`

	res, err := FormatText(input, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"a\": 1\n}", res.Formatted)
	assert.Equal(t, 7, res.InputBytes)
	assert.Equal(t, 12, res.OutputBytes)
	assert.InDelta(t, 12.0/7.0, res.Ratio, 1e-9)
	assert.InDelta(t, (1-12.0/7.0)*100, res.SavedPercent, 1e-9)
}

func TestMinifyText_Metadata(t *testing.T) {
	input := "{ \"a\": 1 }"

	res, err := MinifyText(input)
	require.NoError(t, err)

	assert.Equal(t, `{"a":1}`, res.Formatted)
	assert.Equal(t, 10, res.InputBytes)
	assert.Equal(t, 7, res.OutputBytes)
	assert.InDelta(t, 0.7, res.Ratio, 1e-9)
	assert.InDelta(t, 30.0, res.SavedPercent, 1e-9)
}

func TestFormatText_Errors(t *testing.T) {
	_, err := FormatText(`{"a":1}`, Options{Indent: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidIndent)

	_, err = FormatText(`{"a":}`, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidJSON)

	_, err = MinifyText("   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestNewFormatter(t *testing.T) {
	for _, indent := range []int{2, 4, 8} {
		f, err := NewFormatter(Options{Indent: indent})
		require.NoError(t, err)
		assert.NotNil(t, f)
	}
	for _, indent := range []int{-1, 0, 1, 3, 16} {
		_, err := NewFormatter(Options{Indent: indent})
		assert.Error(t, err, "indent %d", indent)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		sample,
		`[]`,
		`"plain"`,
		`[1.5,-2e-7,1e21,0,true,false,null]`,
		`{"nested":{"deep":{"deeper":[[[]]]}},"unicode":"café 😀","esc":"a\"b\\c\n"}`,
	}

	for _, input := range inputs {
		original := mustParse(t, input)
		for _, opts := range []Options{{Indent: 2}, {Indent: 4}, {Indent: 8}, {Indent: 2, SortKeys: true}} {
			res, err := FormatText(input, opts)
			require.NoError(t, err)

			again := mustParse(t, res.Formatted)
			assert.True(t, models.Equal(original, again), "%s with %+v", input, opts)
			if !opts.SortKeys {
				assert.True(t, models.Identical(original, again), "key order survives: %s", input)
			}
		}
	}
}

func TestMinify_Idempotent(t *testing.T) {
	for _, input := range []string{sample, "[ 1, [ 2, [ 3 ] ] ]", `{"s":"<&>"}`} {
		once, err := MinifyText(input)
		require.NoError(t, err)
		twice, err := MinifyText(once.Formatted)
		require.NoError(t, err)
		assert.Equal(t, once.Formatted, twice.Formatted)
	}
}
