// Package parser validates JSON text and turns it into the ordered value model,
// reporting failures as diagnostics with positions and fix suggestions.
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/models"
)

const (
	emptyInputMessage    = "Empty input"
	emptyInputSuggestion = "Enter some JSON data to validate"
)

// Validate parses text strictly and reports the outcome. It never fails: a
// malformed document yields a Diagnostic with Valid set to false.
func Validate(text string) models.Diagnostic {
	if strings.TrimSpace(text) == "" {
		return models.Diagnostic{
			Message:     emptyInputMessage,
			Class:       models.ErrorClassEmpty,
			Suggestions: []string{emptyInputSuggestion},
		}
	}

	value, err := decode(text)
	if err == nil {
		return models.Diagnostic{
			Valid:       true,
			Value:       models.Ptr(value),
			Suggestions: []string{},
		}
	}

	line, column, offset := Position(text, err.Offset)
	return models.Diagnostic{
		Message:     fmt.Sprintf("%s at position %d", err.Msg, offset),
		Line:        line,
		Column:      column,
		Offset:      offset,
		Class:       err.Class,
		Suggestions: Suggest(text, err.Class),
	}
}

// Position converts a byte offset into a 1-based line and column and a
// 0-based character offset. Columns and the character offset count runes.
func Position(text string, byteOffset int) (line, column, offset int) {
	if byteOffset > len(text) {
		byteOffset = len(text)
	}
	prefix := text[:byteOffset]
	line = strings.Count(prefix, "\n") + 1
	lastNewline := strings.LastIndexByte(prefix, '\n')
	column = utf8.RuneCountInString(prefix[lastNewline+1:]) + 1
	offset = utf8.RuneCountInString(prefix)
	return line, column, offset
}

// ParseString parses JSON from a string, converting an invalid diagnostic
// into an error.
func ParseString(jsonString string) (models.Value, error) {
	diag := Validate(jsonString)
	if diag.Valid {
		return *diag.Value, nil
	}
	if diag.Class == models.ErrorClassEmpty {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return models.Value{}, errors.NewParsingError(
		fmt.Sprintf("%s (line %d, column %d)", diag.Message, diag.Line, diag.Column),
		errors.ErrInvalidJSON,
	)
}

// ParseBytes parses JSON from a byte slice.
func ParseBytes(data []byte) (models.Value, error) {
	return ParseString(string(data))
}

// Parse reads all of reader and parses it as one JSON document.
func Parse(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ReadFile loads a file for validation, mapping filesystem failures onto
// input errors.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return string(data), nil
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	text, err := ReadFile(filePath)
	if err != nil {
		return models.Value{}, err
	}
	return ParseString(text)
}
