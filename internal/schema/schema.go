// Package schema infers a JSON Schema describing a sample document
package schema

import (
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/mcncl/jsonkit/internal/models"
)

// Draft07 is the dialect identifier attached to inferred documents.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// Type is a JSON Schema primitive type name.
type Type string

const (
	TypeAny     Type = ""
	TypeNull    Type = "null"
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeString  Type = "string"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Format is a string format annotation.
type Format string

const (
	FormatNone     Format = ""
	FormatDateTime Format = "date-time"
	FormatEmail    Format = "email"
	FormatURI      Format = "uri"
	FormatUUID     Format = "uuid"
)

// Regex patterns for string formats
var (
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:?\d{2})?$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Property is one named entry of an object schema.
type Property struct {
	Name   string
	Schema *Node
}

// Node describes the values found at one position of a sample document.
// A Node with TypeAny and nothing else set accepts anything; it is what an
// empty array's items become. When OneOf is set the node is a union and
// Type is TypeAny.
type Node struct {
	Type       Type
	Format     Format
	Properties []Property
	Required   []string
	Items      *Node
	OneOf      []*Node
}

// Document is the top-level inferred schema, tagged with its dialect.
type Document struct {
	Dialect string
	Root    *Node
}

// InferOptions switches on inference beyond the default formats.
type InferOptions struct {
	// DetectUUID tags canonical UUID strings with format "uuid" when no
	// other format matches.
	DetectUUID bool
}

// Infer derives a schema document from a sample value.
func Infer(v models.Value) *Document {
	return InferWithOptions(v, InferOptions{})
}

// InferWithOptions is Infer with optional format detection enabled.
func InferWithOptions(v models.Value, opts InferOptions) *Document {
	return &Document{Dialect: Draft07, Root: opts.node(v)}
}

// InferNode derives the schema of a single value with the default options.
func InferNode(v models.Value) *Node {
	return InferOptions{}.node(v)
}

func (o InferOptions) node(v models.Value) *Node {
	switch v.Kind() {
	case models.NullKind:
		return &Node{Type: TypeNull}
	case models.BoolKind:
		return &Node{Type: TypeBoolean}
	case models.NumberKind:
		return inferNumber(v.Float())
	case models.StringKind:
		return &Node{Type: TypeString, Format: o.format(v.Text())}
	case models.ArrayKind:
		return o.array(v.Items())
	case models.ObjectKind:
		return o.object(v.Members())
	default:
		return &Node{}
	}
}

func inferNumber(n float64) *Node {
	if !math.IsInf(n, 0) && n == math.Trunc(n) {
		return &Node{Type: TypeInteger}
	}
	return &Node{Type: TypeNumber}
}

// DetectFormat returns the first matching format, checked in the order
// date-time, email, uri.
func DetectFormat(s string) Format {
	switch {
	case dateTimeRegex.MatchString(s):
		return FormatDateTime
	case emailRegex.MatchString(s):
		return FormatEmail
	case strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://"):
		return FormatURI
	default:
		return FormatNone
	}
}

func (o InferOptions) format(s string) Format {
	f := DetectFormat(s)
	if f == FormatNone && o.DetectUUID && isCanonicalUUID(s) {
		return FormatUUID
	}
	return f
}

// uuid.Parse also accepts braced, URN and unhyphenated forms; only the
// 36-character hyphenated form counts here.
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func (o InferOptions) array(items []models.Value) *Node {
	if len(items) == 0 {
		return &Node{Type: TypeArray, Items: &Node{}}
	}

	distinct := make([]*Node, 0, 1)
	for _, item := range items {
		n := o.node(item)
		if !containsNode(distinct, n) {
			distinct = append(distinct, n)
		}
	}

	if len(distinct) == 1 {
		return &Node{Type: TypeArray, Items: distinct[0]}
	}
	return &Node{Type: TypeArray, Items: &Node{OneOf: distinct}}
}

func containsNode(nodes []*Node, n *Node) bool {
	for _, existing := range nodes {
		if existing.Equal(n) {
			return true
		}
	}
	return false
}

// Every observed key is listed as required; a single sample cannot tell
// optional keys apart.
func (o InferOptions) object(members []models.Member) *Node {
	node := &Node{
		Type:       TypeObject,
		Properties: make([]Property, 0, len(members)),
		Required:   make([]string, 0, len(members)),
	}
	for _, m := range members {
		node.Properties = append(node.Properties, Property{Name: m.Key, Schema: o.node(m.Value)})
		node.Required = append(node.Required, m.Key)
	}
	return node
}

// Property returns the schema of a named property.
func (n *Node) Property(name string) (*Node, bool) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Equal reports whether two nodes describe the same structure. Property
// and required-key order are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Type != other.Type || n.Format != other.Format {
		return false
	}
	if len(n.Properties) != len(other.Properties) || len(n.Required) != len(other.Required) || len(n.OneOf) != len(other.OneOf) {
		return false
	}
	for _, p := range n.Properties {
		o, ok := other.Property(p.Name)
		if !ok || !p.Schema.Equal(o) {
			return false
		}
	}
	required := make(map[string]struct{}, len(other.Required))
	for _, r := range other.Required {
		required[r] = struct{}{}
	}
	for _, r := range n.Required {
		if _, ok := required[r]; !ok {
			return false
		}
	}
	for i := range n.OneOf {
		if !n.OneOf[i].Equal(other.OneOf[i]) {
			return false
		}
	}
	return n.Items.Equal(other.Items)
}
