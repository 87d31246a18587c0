package analyzer

import (
	"strings"
	"testing"

	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_SimpleObject(t *testing.T) {
	root, err := parser.ParseString(`{"name": "John Doe", "age": 30, "is_student": false, "score": 99.5, "nick": null}`)
	require.NoError(t, err)

	stats := NewAnalyzer().Analyze(root)

	assert.Equal(t, models.Statistics{
		MaxDepth: 1,
		Objects:  1,
		Strings:  1,
		Numbers:  2,
		Booleans: 1,
		Nulls:    1,
		Keys:     5,
	}, stats)
}

func TestAnalyze_NestedStructure(t *testing.T) {
	root, err := parser.ParseString(`{
		"user": {
			"profile": {"tags": ["a", "b"], "address": {"city": "X"}},
			"ids": [1, [2, 3]]
		}
	}`)
	require.NoError(t, err)

	stats := Analyze(root)

	assert.Equal(t, 4, stats.Objects)
	assert.Equal(t, 3, stats.Arrays)
	assert.Equal(t, 3, stats.Strings)
	assert.Equal(t, 3, stats.Numbers)
	assert.Equal(t, 6, stats.Keys, "user, profile, ids, tags, address, city")
	// root(0) -> user(1) -> profile(2) -> address(3) -> "X"(4)
	assert.Equal(t, 4, stats.MaxDepth)
}

func TestAnalyze_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		value models.Value
		want  models.Statistics
	}{
		{"null", models.Null(), models.Statistics{Nulls: 1}},
		{"string", models.StringValue("x"), models.Statistics{Strings: 1}},
		{"empty object", models.ObjectValue(), models.Statistics{Objects: 1}},
		{"empty array", models.ArrayValue(), models.Statistics{Arrays: 1}},
		{"array of bools", models.ArrayValue(models.BoolValue(true), models.BoolValue(false)), models.Statistics{Arrays: 1, Booleans: 2, MaxDepth: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.value))
		})
	}
}

func TestAnalyzer_ReusableAcrossCalls(t *testing.T) {
	a := NewAnalyzer()
	first := a.Analyze(models.ArrayValue(models.NumberValue(1)))
	second := a.Analyze(models.StringValue("x"))

	assert.Equal(t, 1, first.Numbers)
	assert.Equal(t, models.Statistics{Strings: 1}, second, "counts must reset between calls")
}

func TestAnalyze_DeepDocument(t *testing.T) {
	const depth = 500
	text := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	root, err := parser.ParseString(text)
	require.NoError(t, err)

	stats := Analyze(root)
	assert.Equal(t, depth, stats.Arrays)
	assert.Equal(t, depth-1, stats.MaxDepth)
}
