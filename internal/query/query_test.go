package query

import (
	"testing"

	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeJSON = `{
	"store": {
		"book": [
			{"title": "A", "price": 10, "tags": ["x", "y"]},
			{"title": "B", "price": 20},
			{"price": 30}
		],
		"bicycle": {"color": "red", "price": 99},
		"first name": "Ann"
	}
}`

func texts(values []models.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func TestEvaluate(t *testing.T) {
	root, err := parser.ParseString(storeJSON)
	require.NoError(t, err)

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"wildcard then property", "$.store.book[*].title", []string{`"A"`, `"B"`}},
		{"without dollar", "store.book[1].price", []string{"20"}},
		{"trailing dot wildcard on object", "$.store.bicycle.*", []string{`"red"`, "99"}},
		{"dot wildcard on array", "$.store.book.*.price", []string{"10", "20", "30"}},
		{"nested wildcards", "$.store.book[*].tags[*]", []string{`"x"`, `"y"`}},
		{"index out of range", "$.store.book[7]", []string{}},
		{"index on object is dropped", "$.store.bicycle[0]", []string{}},
		{"property on array is dropped", "$.store.book.title", []string{}},
		{"missing key", "$.store.car", []string{}},
		{"quoted key", "$.store['first name']", []string{`"Ann"`}},
		{"wildcard over scalar is dropped", "$.store.bicycle.color[*]", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(Evaluate(root, tt.expr)))
		})
	}
}

func TestEvaluate_RootExpressions(t *testing.T) {
	root := models.ArrayValue(models.NumberValue(1), models.NumberValue(2))

	for _, expr := range []string{"", "$", "  $  ", "$."} {
		got := Evaluate(root, expr)
		require.Len(t, got, 1, "expr %q", expr)
		assert.True(t, models.Identical(root, got[0]))
	}

	assert.Equal(t, []string{"1", "2"}, texts(Evaluate(root, "[*]")))
	assert.Equal(t, []string{"2"}, texts(Evaluate(root, "$[1]")))
}

func TestEvaluate_NumericKeysOnObjects(t *testing.T) {
	root, err := parser.ParseString(`{"0": "zero", "-1": "neg"}`)
	require.NoError(t, err)

	assert.Empty(t, Evaluate(root, "$[0]"), "numeric tokens only index arrays")
	assert.Equal(t, []string{`"neg"`}, texts(Evaluate(root, "$[-1]")), "non-numeric tokens are property lookups")
}

func TestSelect_Paths(t *testing.T) {
	root, err := parser.ParseString(storeJSON)
	require.NoError(t, err)

	matches := Select(root, "$.store.book[*].title")
	require.Len(t, matches, 2)
	assert.Equal(t, "$.store.book[0].title", matches[0].Path)
	assert.Equal(t, "$.store.book[1].title", matches[1].Path)

	matches = Select(root, "$.store.*")
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = m.Path
	}
	assert.Equal(t, []string{"$.store.book", "$.store.bicycle", "$.store['first name']"}, paths)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"$.a.b", []string{"a", "b"}},
		{"$..a", []string{"a"}},
		{"a[0][1]", []string{"a", "0", "1"}},
		{"$[*].x", []string{"*", "x"}},
		{"$", nil},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got := Tokenize(tt.expr)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
