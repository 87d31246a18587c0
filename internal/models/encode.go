package models

import (
	"math"
	"sort"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// AppendJSON appends the JSON encoding of v to dst. An empty indent produces
// compact output with no whitespace between tokens; otherwise every array
// element and object member starts on its own line, indented by one copy of
// indent per nesting level. When sortKeys is set, object members are written
// in lexicographic key order at every depth.
func AppendJSON(dst []byte, v Value, indent string, sortKeys bool) []byte {
	e := encoder{indent: indent, sortKeys: sortKeys}
	return e.appendValue(dst, v, 0)
}

// MarshalJSON implements json.Marshaler with compact, order-preserving output.
func (v Value) MarshalJSON() ([]byte, error) {
	return AppendJSON(nil, v, "", false), nil
}

// String returns the compact JSON text of v.
func (v Value) String() string {
	return string(AppendJSON(nil, v, "", false))
}

type encoder struct {
	indent   string
	sortKeys bool
}

func (e encoder) appendValue(dst []byte, v Value, depth int) []byte {
	switch v.kind {
	case NullKind:
		return append(dst, "null"...)
	case BoolKind:
		return strconv.AppendBool(dst, v.b)
	case NumberKind:
		return append(dst, FormatNumber(v.n)...)
	case StringKind:
		return append(dst, QuoteString(v.s)...)
	case ArrayKind:
		if len(v.arr) == 0 {
			return append(dst, "[]"...)
		}
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.newline(dst, depth+1)
			dst = e.appendValue(dst, item, depth+1)
		}
		dst = e.newline(dst, depth)
		return append(dst, ']')
	case ObjectKind:
		if len(v.obj.members) == 0 {
			return append(dst, "{}"...)
		}
		members := v.obj.members
		if e.sortKeys {
			members = SortedMembers(members)
		}
		dst = append(dst, '{')
		for i, m := range members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.newline(dst, depth+1)
			dst = append(dst, QuoteString(m.Key)...)
			dst = append(dst, ':')
			if e.indent != "" {
				dst = append(dst, ' ')
			}
			dst = e.appendValue(dst, m.Value, depth+1)
		}
		dst = e.newline(dst, depth)
		return append(dst, '}')
	}
	return dst
}

func (e encoder) newline(dst []byte, depth int) []byte {
	if e.indent == "" {
		return dst
	}
	dst = append(dst, '\n')
	for i := 0; i < depth; i++ {
		dst = append(dst, e.indent...)
	}
	return dst
}

// SortedMembers returns a copy of members in lexicographic key order.
func SortedMembers(members []Member) []Member {
	sorted := make([]Member, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}

// FormatNumber renders a number the way JSON serializers in browsers do:
// plain decimal notation for magnitudes in [1e-6, 1e21) and exponent
// notation outside that range.
func FormatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "null"
	}
	if n == 0 {
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	s := strconv.FormatFloat(n, 'e', -1, 64)
	// Go writes a two-digit exponent ("1e-07"); JSON text conventionally doesn't.
	if mant, exp, ok := strings.Cut(s, "e"); ok {
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		s = mant + "e" + sign + digits
	}
	return s
}

// QuoteString returns s as a JSON string literal. HTML characters are left
// unescaped.
func QuoteString(s string) string {
	b, err := gojson.MarshalWithOption(s, gojson.DisableHTMLEscape())
	if err != nil {
		return strconv.Quote(s)
	}
	return string(b)
}
