// Package query evaluates a small JSONPath subset against a document.
//
// Supported syntax:
//
//	$               the root (optional, stripped)
//	.name           object property
//	[0]             array element
//	[*] or .*       every array element or every object property value
//	['name']        quoted property, same as .name
//
// Filters, slices and recursive descent are not supported. Evaluation never
// fails: candidates a token does not apply to are dropped, so an expression
// that matches nothing yields an empty result.
package query

import (
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

// Wildcard is the token that expands to every child.
const Wildcard = "*"

// Match is one value selected by an expression together with its
// normalized path, e.g. $.store.book[0].title.
type Match struct {
	Path  string       `json:"path"`
	Value models.Value `json:"value"`
}

// Evaluate returns the values matched by expr, in the order produced.
func Evaluate(root models.Value, expr string) []models.Value {
	matches := Select(root, expr)
	values := make([]models.Value, len(matches))
	for i, m := range matches {
		values[i] = m.Value
	}
	return values
}

// Select is Evaluate with the normalized path of each match.
func Select(root models.Value, expr string) []Match {
	working := []Match{{Path: "$", Value: root}}
	for _, token := range Tokenize(expr) {
		working = step(working, token)
		if len(working) == 0 {
			break
		}
	}
	return working
}

// Tokenize splits an expression on '.', '[' and ']', discarding empty
// tokens and a leading '$'.
func Tokenize(expr string) []string {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimPrefix(expr, "$")
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return r == '.' || r == '[' || r == ']'
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func step(working []Match, token string) []Match {
	next := make([]Match, 0, len(working))

	if token == Wildcard {
		for _, c := range working {
			switch c.Value.Kind() {
			case models.ArrayKind:
				for i, item := range c.Value.Items() {
					next = append(next, Match{Path: indexPath(c.Path, i), Value: item})
				}
			case models.ObjectKind:
				for _, m := range c.Value.Members() {
					next = append(next, Match{Path: propertyPath(c.Path, m.Key), Value: m.Value})
				}
			}
		}
		return next
	}

	if index, ok := parseIndex(token); ok {
		for _, c := range working {
			if item, found := c.Value.Index(index); found {
				next = append(next, Match{Path: indexPath(c.Path, index), Value: item})
			}
		}
		return next
	}

	key := unquote(token)
	for _, c := range working {
		if v, found := c.Value.Get(key); found {
			next = append(next, Match{Path: propertyPath(c.Path, key), Value: v})
		}
	}
	return next
}

// parseIndex accepts only unsigned decimal integers.
func parseIndex(token string) (int, bool) {
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

func unquote(token string) string {
	if len(token) >= 2 {
		first, last := token[0], token[len(token)-1]
		if (first == '\'' || first == '"') && first == last {
			return token[1 : len(token)-1]
		}
	}
	return token
}

func indexPath(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

func propertyPath(base, key string) string {
	if isIdentifier(key) {
		return base + "." + key
	}
	return base + "['" + strings.ReplaceAll(key, "'", `\'`) + "']"
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
