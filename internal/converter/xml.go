package converter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"unicode"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/models"
)

const (
	// DefaultXMLRoot names the wrapping element when none is given.
	DefaultXMLRoot = "root"
	// xmlItem names the elements of arrays that have no key of their own.
	xmlItem = "item"
)

// ToXML renders v as an indented XML document wrapped in a root element.
// Object members become child elements named after their keys, an array
// member becomes one repeated element per item, and scalars become text
// content. Keys that are not valid element names are converted to
// snake_case and prefixed with an underscore if they still do not qualify.
func ToXML(v models.Value, root string) (string, error) {
	if root == "" {
		root = DefaultXMLRoot
	}
	if !ValidElementName(root) {
		return "", errors.NewConversionError(fmt.Sprintf("invalid XML root element name %q", root), errors.ErrUnsupportedShape)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := writeElement(enc, root, v); err != nil {
		return "", errors.NewConversionError("failed to encode XML", err)
	}
	if err := enc.Flush(); err != nil {
		return "", errors.NewConversionError("failed to encode XML", err)
	}
	return buf.String(), nil
}

func writeElement(enc *xml.Encoder, name string, v models.Value) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	switch v.Kind() {
	case models.ObjectKind:
		for _, m := range v.Members() {
			if err := writeMember(enc, ElementName(m.Key), m.Value); err != nil {
				return err
			}
		}
	case models.ArrayKind:
		for _, item := range v.Items() {
			if err := writeElement(enc, xmlItem, item); err != nil {
				return err
			}
		}
	default:
		if text := scalarText(v); text != "" {
			if err := enc.EncodeToken(xml.CharData(text)); err != nil {
				return err
			}
		}
	}

	return enc.EncodeToken(start.End())
}

// writeMember repeats the element once per item when the member is an array.
func writeMember(enc *xml.Encoder, name string, v models.Value) error {
	if !v.IsArray() {
		return writeElement(enc, name, v)
	}
	for _, item := range v.Items() {
		if err := writeElement(enc, name, item); err != nil {
			return err
		}
	}
	return nil
}

func scalarText(v models.Value) string {
	switch v.Kind() {
	case models.BoolKind:
		return strconv.FormatBool(v.Bool())
	case models.NumberKind:
		return models.FormatNumber(v.Float())
	case models.StringKind:
		return v.Text()
	default:
		return ""
	}
}

// ElementName turns a JSON key into a usable XML element name.
func ElementName(key string) string {
	if ValidElementName(key) {
		return key
	}
	name := strcase.ToSnake(key)
	if !ValidElementName(name) {
		name = "_" + name
	}
	if !ValidElementName(name) {
		return xmlItem
	}
	return name
}

// ValidElementName reports whether s is a valid XML element name without a
// namespace prefix.
func ValidElementName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
