package models

// ErrorClass categorizes why a document failed to parse.
type ErrorClass string

const (
	ErrorClassNone               ErrorClass = ""
	ErrorClassEmpty              ErrorClass = "empty"
	ErrorClassUnexpectedEnd      ErrorClass = "unexpected_end"
	ErrorClassUnterminatedString ErrorClass = "unterminated_string"
	ErrorClassExpectedToken      ErrorClass = "expected_token"
	ErrorClassUnexpectedToken    ErrorClass = "unexpected_token"
	ErrorClassInvalidNumber      ErrorClass = "invalid_number"
	ErrorClassInvalidEscape      ErrorClass = "invalid_escape"
	ErrorClassControlCharacter   ErrorClass = "control_character"
	ErrorClassTrailingData       ErrorClass = "trailing_data"
	ErrorClassTooDeep            ErrorClass = "too_deep"
)

// Diagnostic is the outcome of validating one JSON text. When Valid is true
// Value is set; otherwise Message and, for syntax errors, the 1-based Line
// and Column of the failure are set.
type Diagnostic struct {
	Valid       bool       `json:"valid"`
	Value       *Value     `json:"value,omitempty"`
	Message     string     `json:"message,omitempty"`
	Line        int        `json:"line,omitempty"`
	Column      int        `json:"column,omitempty"`
	Offset      int        `json:"-"`
	Class       ErrorClass `json:"errorClass,omitempty"`
	Suggestions []string   `json:"suggestions"`
}

// Statistics are aggregate counts over every value of a document.
type Statistics struct {
	MaxDepth int `json:"maxDepth"`
	Objects  int `json:"objects"`
	Arrays   int `json:"arrays"`
	Strings  int `json:"strings"`
	Numbers  int `json:"numbers"`
	Booleans int `json:"booleans"`
	Nulls    int `json:"nulls"`
	Keys     int `json:"keys"`
}

// ChangeKind is the kind of a DiffEntry.
type ChangeKind string

const (
	Added    ChangeKind = "Added"
	Removed  ChangeKind = "Removed"
	Modified ChangeKind = "Modified"
)

// DiffEntry records one difference between two documents at a dotted path.
type DiffEntry struct {
	Kind     ChangeKind `json:"kind"`
	Path     string     `json:"path"`
	OldValue *Value     `json:"oldValue,omitempty"`
	NewValue *Value     `json:"newValue,omitempty"`
}

// Ptr returns a pointer to a copy of v, for the optional Value fields of
// report records.
func Ptr(v Value) *Value {
	return &v
}
