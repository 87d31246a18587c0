// Package generator derives TypeScript-style interface declarations from
// sample JSON documents.
package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonkit/internal/models"
)

// DefaultInterfaceName is used when no name is given.
const DefaultInterfaceName = "Root"

// Type keywords
const (
	typeString  = "string"
	typeNumber  = "number"
	typeBoolean = "boolean"
	typeNull    = "null"
	typeAny     = "any"
)

// Generator is responsible for generating interface declarations from documents
type Generator struct {
	indent string
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{indent: "  "}
}

// GenerateInterface declares name as the type of v. An object root becomes
// an interface; any other root becomes a type alias.
func (g *Generator) GenerateInterface(v models.Value, name string) string {
	var buf bytes.Buffer
	name = InterfaceName(name)

	if v.IsObject() {
		buf.WriteString(fmt.Sprintf("interface %s %s", name, g.typeOf(v, 0)))
	} else {
		buf.WriteString(fmt.Sprintf("type %s = %s;", name, g.typeOf(v, 0)))
	}

	return buf.String()
}

// InterfaceName converts name to PascalCase, falling back to
// DefaultInterfaceName when nothing usable remains.
func InterfaceName(name string) string {
	name = strcase.ToCamel(name)
	if name == "" {
		return DefaultInterfaceName
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "_" + name
	}
	return name
}

func (g *Generator) typeOf(v models.Value, depth int) string {
	switch v.Kind() {
	case models.StringKind:
		return typeString
	case models.NumberKind:
		return typeNumber
	case models.BoolKind:
		return typeBoolean
	case models.NullKind:
		return typeNull
	case models.ArrayKind:
		return g.arrayType(v.Items(), depth)
	case models.ObjectKind:
		return g.objectType(v.Members(), depth)
	default:
		return typeAny
	}
}

func (g *Generator) objectType(members []models.Member, depth int) string {
	if len(members) == 0 {
		return "{}"
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for _, m := range members {
		buf.WriteString(strings.Repeat(g.indent, depth+1))
		buf.WriteString(propertyName(m.Key))
		buf.WriteString(": ")
		buf.WriteString(g.typeOf(m.Value, depth+1))
		buf.WriteString(";\n")
	}
	buf.WriteString(strings.Repeat(g.indent, depth))
	buf.WriteString("}")
	return buf.String()
}

// arrayType is T[] when every element has the same type and (A | B)[]
// otherwise, with members in the order first seen.
func (g *Generator) arrayType(items []models.Value, depth int) string {
	if len(items) == 0 {
		return typeAny + "[]"
	}

	distinct := make([]string, 0, 1)
	seen := make(map[string]struct{})
	for _, item := range items {
		t := g.typeOf(item, depth)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		distinct = append(distinct, t)
	}

	if len(distinct) == 1 {
		return distinct[0] + "[]"
	}
	return "(" + strings.Join(distinct, " | ") + ")[]"
}

func propertyName(key string) string {
	if isIdentifier(key) {
		return key
	}
	return models.QuoteString(key)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
