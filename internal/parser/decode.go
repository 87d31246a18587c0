package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mcncl/jsonkit/internal/models"
)

// SyntaxError describes where and why strict decoding stopped. Offset is a
// byte offset into the source text.
type SyntaxError struct {
	Class  models.ErrorClass
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string { return e.Msg }

// MaxDepth is the deepest nesting of arrays and objects the decoder accepts.
const MaxDepth = 10000

// decoder is a strict RFC 8259 recursive-descent decoder that keeps object
// key order and reports classified errors with byte offsets.
type decoder struct {
	src   string
	pos   int
	depth int
}

func decode(src string) (models.Value, *SyntaxError) {
	d := &decoder{src: src}
	d.skipWhitespace()
	v, err := d.value()
	if err != nil {
		return models.Value{}, err
	}
	d.skipWhitespace()
	if d.pos < len(d.src) {
		return models.Value{}, d.fail(models.ErrorClassTrailingData, "Unexpected non-whitespace character after JSON")
	}
	return v, nil
}

func (d *decoder) fail(class models.ErrorClass, msg string) *SyntaxError {
	return &SyntaxError{Class: class, Msg: msg, Offset: d.pos}
}

func (d *decoder) eof() bool { return d.pos >= len(d.src) }

func (d *decoder) skipWhitespace() {
	for d.pos < len(d.src) {
		switch d.src[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

func (d *decoder) unexpectedToken() *SyntaxError {
	r, _ := utf8.DecodeRuneInString(d.src[d.pos:])
	return d.fail(models.ErrorClassUnexpectedToken, fmt.Sprintf("Unexpected token '%c'", r))
}

func (d *decoder) value() (models.Value, *SyntaxError) {
	if d.eof() {
		return models.Value{}, d.fail(models.ErrorClassUnexpectedEnd, "Unexpected end of JSON input")
	}
	switch c := d.src[d.pos]; {
	case c == '{', c == '[':
		d.depth++
		defer func() { d.depth-- }()
		if d.depth > MaxDepth {
			return models.Value{}, d.fail(models.ErrorClassTooDeep, fmt.Sprintf("Maximum nesting depth of %d exceeded", MaxDepth))
		}
		if c == '{' {
			return d.object()
		}
		return d.array()
	case c == '"':
		s, err := d.str()
		if err != nil {
			return models.Value{}, err
		}
		return models.StringValue(s), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return d.number()
	case c == 't':
		return d.literal("true", models.BoolValue(true))
	case c == 'f':
		return d.literal("false", models.BoolValue(false))
	case c == 'n':
		return d.literal("null", models.Null())
	default:
		return models.Value{}, d.unexpectedToken()
	}
}

func (d *decoder) literal(word string, v models.Value) (models.Value, *SyntaxError) {
	for i := 0; i < len(word); i++ {
		if d.eof() {
			return models.Value{}, d.fail(models.ErrorClassUnexpectedEnd, "Unexpected end of JSON input")
		}
		if d.src[d.pos] != word[i] {
			return models.Value{}, d.unexpectedToken()
		}
		d.pos++
	}
	return v, nil
}

func (d *decoder) object() (models.Value, *SyntaxError) {
	d.pos++ // '{'
	b := models.NewObjectBuilder(4)
	d.skipWhitespace()
	if !d.eof() && d.src[d.pos] == '}' {
		d.pos++
		return b.Build(), nil
	}
	first := true
	for {
		if d.eof() {
			return models.Value{}, d.fail(models.ErrorClassExpectedToken, "Expected property name or '}'")
		}
		if d.src[d.pos] != '"' {
			if first {
				return models.Value{}, d.fail(models.ErrorClassExpectedToken, "Expected property name or '}'")
			}
			return models.Value{}, d.fail(models.ErrorClassExpectedToken, "Expected double-quoted property name")
		}
		key, err := d.str()
		if err != nil {
			return models.Value{}, err
		}
		d.skipWhitespace()
		if d.eof() || d.src[d.pos] != ':' {
			return models.Value{}, d.fail(models.ErrorClassExpectedToken, "Expected ':' after property name")
		}
		d.pos++
		d.skipWhitespace()
		v, err := d.value()
		if err != nil {
			return models.Value{}, err
		}
		b.Set(key, v)
		d.skipWhitespace()
		if d.eof() {
			return models.Value{}, d.fail(models.ErrorClassExpectedToken, "Expected ',' or '}' after property value")
		}
		switch d.src[d.pos] {
		case ',':
			d.pos++
			d.skipWhitespace()
			first = false
		case '}':
			d.pos++
			return b.Build(), nil
		default:
			return models.Value{}, d.fail(models.ErrorClassExpectedToken, "Expected ',' or '}' after property value")
		}
	}
}

func (d *decoder) array() (models.Value, *SyntaxError) {
	d.pos++ // '['
	var items []models.Value
	d.skipWhitespace()
	if !d.eof() && d.src[d.pos] == ']' {
		d.pos++
		return models.ArrayValue(), nil
	}
	for {
		v, err := d.value()
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, v)
		d.skipWhitespace()
		if d.eof() {
			return models.Value{}, d.fail(models.ErrorClassExpectedToken, "Expected ',' or ']' after array element")
		}
		switch d.src[d.pos] {
		case ',':
			d.pos++
			d.skipWhitespace()
		case ']':
			d.pos++
			return models.ArrayValue(items...), nil
		default:
			return models.Value{}, d.fail(models.ErrorClassExpectedToken, "Expected ',' or ']' after array element")
		}
	}
}

func (d *decoder) number() (models.Value, *SyntaxError) {
	start := d.pos
	if d.src[d.pos] == '-' {
		d.pos++
		if d.eof() || !isDigit(d.src[d.pos]) {
			return models.Value{}, d.fail(models.ErrorClassInvalidNumber, "No number after minus sign")
		}
	}
	if d.src[d.pos] == '0' {
		d.pos++
		if !d.eof() && isDigit(d.src[d.pos]) {
			return models.Value{}, d.fail(models.ErrorClassInvalidNumber, "Unexpected number after leading zero")
		}
	} else {
		d.digits()
	}
	if !d.eof() && d.src[d.pos] == '.' {
		d.pos++
		if d.eof() || !isDigit(d.src[d.pos]) {
			return models.Value{}, d.fail(models.ErrorClassInvalidNumber, "Unterminated fractional number")
		}
		d.digits()
	}
	if !d.eof() && (d.src[d.pos] == 'e' || d.src[d.pos] == 'E') {
		d.pos++
		if !d.eof() && (d.src[d.pos] == '+' || d.src[d.pos] == '-') {
			d.pos++
		}
		if d.eof() || !isDigit(d.src[d.pos]) {
			return models.Value{}, d.fail(models.ErrorClassInvalidNumber, "Exponent part is missing a number")
		}
		d.digits()
	}
	// ParseFloat reports ErrRange for magnitudes beyond float64 and still
	// returns the nearest value (±Inf or 0), which is what we keep.
	f, _ := strconv.ParseFloat(d.src[start:d.pos], 64)
	return models.NumberValue(f), nil
}

func (d *decoder) digits() {
	for d.pos < len(d.src) && isDigit(d.src[d.pos]) {
		d.pos++
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (d *decoder) str() (string, *SyntaxError) {
	d.pos++ // opening quote
	start := d.pos
	// Fast path: no escapes.
	for d.pos < len(d.src) {
		c := d.src[d.pos]
		if c == '"' {
			s := d.src[start:d.pos]
			d.pos++
			return s, nil
		}
		if c == '\\' {
			break
		}
		if c < 0x20 {
			return "", d.fail(models.ErrorClassControlCharacter, "Bad control character in string literal")
		}
		d.pos++
	}

	var sb strings.Builder
	sb.WriteString(d.src[start:d.pos])
	for d.pos < len(d.src) {
		c := d.src[d.pos]
		switch {
		case c == '"':
			d.pos++
			return sb.String(), nil
		case c < 0x20:
			return "", d.fail(models.ErrorClassControlCharacter, "Bad control character in string literal")
		case c == '\\':
			if err := d.escape(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteByte(c)
			d.pos++
		}
	}
	return "", d.fail(models.ErrorClassUnterminatedString, "Unterminated string in JSON")
}

func (d *decoder) escape(sb *strings.Builder) *SyntaxError {
	d.pos++ // backslash
	if d.eof() {
		return d.fail(models.ErrorClassUnterminatedString, "Unterminated string in JSON")
	}
	c := d.src[d.pos]
	switch c {
	case '"', '\\', '/':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := d.hex4(d.pos + 1)
		if err != nil {
			return err
		}
		d.pos += 4
		if utf16.IsSurrogate(r) {
			if d.pos+6 < len(d.src) && d.src[d.pos+1] == '\\' && d.src[d.pos+2] == 'u' {
				if r2, err := d.hex4(d.pos + 3); err == nil {
					if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
						sb.WriteRune(dec)
						d.pos += 7
						return nil
					}
				}
			}
			r = utf8.RuneError
		}
		sb.WriteRune(r)
	default:
		return d.fail(models.ErrorClassInvalidEscape, "Bad escaped character in JSON")
	}
	d.pos++
	return nil
}

func (d *decoder) hex4(at int) (rune, *SyntaxError) {
	if at+4 > len(d.src) {
		d.pos = len(d.src)
		return 0, d.fail(models.ErrorClassUnterminatedString, "Unterminated string in JSON")
	}
	n, err := strconv.ParseUint(d.src[at:at+4], 16, 32)
	if err != nil {
		d.pos = at
		return 0, d.fail(models.ErrorClassInvalidEscape, "Bad Unicode escape in JSON")
	}
	return rune(n), nil
}
