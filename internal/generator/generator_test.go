package generator

import (
	"testing"

	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) models.Value {
	t.Helper()
	v, err := parser.ParseString(text)
	require.NoError(t, err)
	return v
}

func TestGenerateInterface_Object(t *testing.T) {
	input := `{
		"id": 1,
		"name": "Ann",
		"tags": ["a", "b"],
		"address": {"city": "Oslo"},
		"items": [{"n": 1}, {"n": 2}],
		"mixed": [1, "x", 2],
		"empty": [],
		"nothing": null,
		"first name": true
	}`

	got := NewGenerator().GenerateInterface(mustParse(t, input), "")

	expected := `interface Root {
  id: number;
  name: string;
  tags: string[];
  address: {
    city: string;
  };
  items: {
    n: number;
  }[];
  mixed: (number | string)[];
  empty: any[];
  nothing: null;
  "first name": boolean;
}`
	assert.Equal(t, expected, got)
}

func TestGenerateInterface_NonObjectRoot(t *testing.T) {
	g := NewGenerator()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string", `"x"`, "type Root = string;"},
		{"array of numbers", `[1,2]`, "type Root = number[];"},
		{"empty array", `[]`, "type Root = any[];"},
		{"nested arrays", `[[1],[2,3]]`, "type Root = number[][];"},
		{"array of objects", `[{"a":true}]`, "type Root = {\n  a: boolean;\n}[];"},
		{"null", `null`, "type Root = null;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.GenerateInterface(mustParse(t, tt.input), "Root"))
		})
	}
}

func TestGenerateInterface_EmptyObject(t *testing.T) {
	got := NewGenerator().GenerateInterface(mustParse(t, `{"meta":{}}`), "Config")
	assert.Equal(t, "interface Config {\n  meta: {};\n}", got)

	assert.Equal(t, "interface Root {}", NewGenerator().GenerateInterface(mustParse(t, `{}`), "Root"))
}

func TestGenerateInterface_ObjectsWithDifferentShapes(t *testing.T) {
	got := NewGenerator().GenerateInterface(mustParse(t, `{"xs":[{"a":1},{"b":"x"}]}`), "Root")

	expected := `interface Root {
  xs: ({
    a: number;
  } | {
    b: string;
  })[];
}`
	assert.Equal(t, expected, got)
}

func TestInterfaceName(t *testing.T) {
	tests := map[string]string{
		"":             "Root",
		"   ":          "Root",
		"user":         "User",
		"user profile": "UserProfile",
		"api_response": "ApiResponse",
		"order-item":   "OrderItem",
		"2nd":          "_2Nd",
		"Already":      "Already",
	}

	for input, want := range tests {
		assert.Equal(t, want, InterfaceName(input), "input %q", input)
	}
}
