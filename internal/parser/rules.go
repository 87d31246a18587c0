package parser

import (
	"regexp"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

// Rule maps a recognizable mistake in a failed document to a suggestion.
// Rules are independent: every rule whose Match returns true contributes its
// suggestion, in table order.
type Rule struct {
	Name       string
	Suggestion string
	Match      func(src Source) bool
}

// Source is what a Rule inspects: the raw text, the same text with the
// contents of double-quoted strings removed, and the class of the error.
// Only the unquoted-key and comment rules look at Unquoted.
type Source struct {
	Text     string
	Unquoted string
	Class    models.ErrorClass
}

var (
	unquotedKeyRegex   = regexp.MustCompile(`\w+:`)
	trailingCommaRegex = regexp.MustCompile(`,\s*[}\]]`)
)

// Rules is the ordered suggestion table used by Validate.
var Rules = []Rule{
	{
		Name:       "single-quotes",
		Suggestion: "Use double quotes instead of single quotes for strings",
		Match: func(src Source) bool {
			return strings.ContainsRune(src.Text, '\'')
		},
	},
	{
		Name:       "unquoted-keys",
		Suggestion: "Wrap property names in double quotes",
		Match: func(src Source) bool {
			return unquotedKeyRegex.MatchString(src.Unquoted)
		},
	},
	{
		Name:       "trailing-commas",
		Suggestion: "Remove trailing commas",
		Match: func(src Source) bool {
			return trailingCommaRegex.MatchString(src.Text)
		},
	},
	{
		Name:       "unterminated-string",
		Suggestion: "Check for missing closing quotes",
		Match: func(src Source) bool {
			return src.Class == models.ErrorClassUnterminatedString
		},
	},
	{
		Name:       "expected-token",
		Suggestion: "Check for missing brackets, braces, or commas",
		Match: func(src Source) bool {
			return src.Class == models.ErrorClassExpectedToken
		},
	},
	{
		Name:       "comments",
		Suggestion: "Remove comments; JSON does not support them",
		Match: func(src Source) bool {
			return strings.Contains(src.Unquoted, "//") || strings.Contains(src.Unquoted, "/*")
		},
	},
}

// Suggest runs the rule table against a failed document.
func Suggest(text string, class models.ErrorClass) []string {
	src := Source{Text: text, Unquoted: stripStrings(text), Class: class}
	suggestions := make([]string, 0, 2)
	for _, rule := range Rules {
		if rule.Match(src) {
			suggestions = append(suggestions, rule.Suggestion)
		}
	}
	return suggestions
}

// stripStrings empties every double-quoted string literal so that rules only
// look at the document's structure. An unterminated literal swallows the rest
// of the text.
func stripStrings(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	inString := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !inString {
			sb.WriteByte(c)
			if c == '"' {
				inString = true
			}
			continue
		}
		switch c {
		case '\\':
			i++
		case '"':
			sb.WriteByte(c)
			inString = false
		}
	}
	return sb.String()
}
