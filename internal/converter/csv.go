// Package converter renders JSON documents as CSV, XML and YAML text.
package converter

import (
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

// UnsupportedCSVMessage is returned in place of CSV text when the document
// is neither a non-empty array of objects nor a single object.
const UnsupportedCSVMessage = "CSV conversion requires a non-empty array of objects or a single object"

// csvCell is one field of a CSV record. Quoted forces quoting even when the
// text itself would not need it.
type csvCell struct {
	Text   string
	Quoted bool
}

// ToCSV renders v as CSV. For an array of objects the header row holds the
// keys of the first element; keys that appear only in later elements are
// not given a column. A plain object becomes one key,value row per member.
// Nested objects and arrays are written as quoted compact JSON. Other cells
// are quoted only when they contain the delimiter, a quote or a line break.
// The returned flag is false, and the text is an explanation, when v has an
// unsupported shape.
func ToCSV(v models.Value, delimiter rune) (string, bool) {
	if !ValidDelimiter(delimiter) {
		delimiter = ','
	}

	var records [][]csvCell

	switch v.Kind() {
	case models.ArrayKind:
		items := v.Items()
		if len(items) == 0 {
			return UnsupportedCSVMessage, false
		}
		for _, item := range items {
			if !item.IsObject() {
				return UnsupportedCSVMessage, false
			}
		}
		keys := items[0].Keys()
		records = make([][]csvCell, 0, len(items)+1)
		header := make([]csvCell, len(keys))
		for i, key := range keys {
			header[i] = csvCell{Text: key}
		}
		records = append(records, header)
		for _, item := range items {
			row := make([]csvCell, len(keys))
			for i, key := range keys {
				if cell, ok := item.Get(key); ok {
					row[i] = newCell(cell)
				}
			}
			records = append(records, row)
		}
	case models.ObjectKind:
		records = make([][]csvCell, 0, v.Len()+1)
		records = append(records, []csvCell{{Text: "key"}, {Text: "value"}})
		for _, m := range v.Members() {
			records = append(records, []csvCell{{Text: m.Key}, newCell(m.Value)})
		}
	default:
		return UnsupportedCSVMessage, false
	}

	var sb strings.Builder
	for i, record := range records {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, cell := range record {
			if j > 0 {
				sb.WriteRune(delimiter)
			}
			writeField(&sb, cell, delimiter)
		}
	}
	return sb.String(), true
}

func newCell(v models.Value) csvCell {
	return csvCell{Text: CellText(v), Quoted: v.IsArray() || v.IsObject()}
}

func writeField(sb *strings.Builder, cell csvCell, delimiter rune) {
	if !cell.Quoted && !strings.ContainsRune(cell.Text, delimiter) && !strings.ContainsAny(cell.Text, "\"\r\n") {
		sb.WriteString(cell.Text)
		return
	}
	sb.WriteByte('"')
	sb.WriteString(strings.ReplaceAll(cell.Text, `"`, `""`))
	sb.WriteByte('"')
}

// ValidDelimiter reports whether r can separate CSV fields.
func ValidDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != 0xFFFD
}

// CellText is the text of a single CSV cell. Null becomes an empty cell.
func CellText(v models.Value) string {
	switch v.Kind() {
	case models.NullKind:
		return ""
	case models.BoolKind:
		return strconv.FormatBool(v.Bool())
	case models.NumberKind:
		return models.FormatNumber(v.Float())
	case models.StringKind:
		return v.Text()
	default:
		return v.String()
	}
}
