package converter

import (
	"bytes"
	"strings"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/models"
	"gopkg.in/yaml.v3"
)

// ToYAML renders v as block-style YAML indented two spaces per level.
// Object key order is preserved.
func ToYAML(v models.Value) (string, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(YAMLNode(v)); err != nil {
		return "", errors.NewConversionError("failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return "", errors.NewConversionError("failed to encode YAML", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// YAMLNode builds the yaml.v3 node tree for v. Strings carry an explicit
// !!str tag so the encoder quotes values like "true" or "10" that would
// otherwise read back as another type.
func YAMLNode(v models.Value) *yaml.Node {
	switch v.Kind() {
	case models.NullKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case models.BoolKind:
		value := "false"
		if v.Bool() {
			value = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: value}
	case models.NumberKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: models.FormatNumber(v.Float())}
	case models.StringKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text()}
	case models.ArrayKind:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			node.Content = append(node.Content, YAMLNode(item))
		}
		return node
	default:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			node.Content = append(node.Content, key, YAMLNode(m.Value))
		}
		return node
	}
}
