package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Error kinds. Every *Error unwraps to exactly one of them.
var (
	// ErrMalformedAnnotation reports a builder annotation whose tokens do not
	// match `each=Ident`.
	ErrMalformedAnnotation = errors.New("malformed annotation")
	// ErrUnsupportedShape reports a record or field the generator cannot
	// express (non-struct types, generic records, optional repeated fields).
	ErrUnsupportedShape = errors.New("unsupported shape")
	// ErrNameCollision reports two generated identifiers with the same name.
	ErrNameCollision = errors.New("name collision")
)

// Error is a definition-time failure tied to a record and, usually, a field.
type Error struct {
	Kind        error
	Record      string
	Field       string
	Pos         token.Position
	Message     string
	Suggestions []string
}

// Errorf creates an *Error of the given kind.
func Errorf(kind error, record, field string, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Record:  record,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// At sets the source position and returns e.
func (e *Error) At(pos token.Position) *Error {
	e.Pos = pos
	return e
}

// Suggest appends "did you mean" candidates and returns e.
func (e *Error) Suggest(candidates ...string) *Error {
	e.Suggestions = append(e.Suggestions, candidates...)
	return e
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.Kind }

// Error implements the error interface. The position is prepended when known.
func (e *Error) Error() string {
	var sb strings.Builder

	if e.Pos.IsValid() {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}

	if s := subject(e.Record, e.Field); s != "" {
		sb.WriteString(s)
		sb.WriteString(": ")
	}

	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	}

	if e.Message != "" {
		if e.Kind != nil {
			sb.WriteString(": ")
		}

		sb.WriteString(e.Message)
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString(" (did you mean ")
		sb.WriteString(strings.Join(quoteAll(e.Suggestions), " or "))
		sb.WriteString("?)")
	}

	return sb.String()
}

// Diagnostic converts the error to an error-severity Diagnostic.
func (e *Error) Diagnostic() Diagnostic {
	return Diagnostic{
		Severity:    DiagnosticError,
		Code:        CodeFor(e.Kind),
		Message:     e.Message,
		Record:      e.Record,
		Field:       e.Field,
		Suggestions: e.Suggestions,
	}
}

// CodeFor maps an error kind to its diagnostic code.
func CodeFor(kind error) string {
	switch {
	case errors.Is(kind, ErrMalformedAnnotation):
		return CodeMalformedAnnotation
	case errors.Is(kind, ErrUnsupportedShape):
		return CodeUnsupportedShape
	case errors.Is(kind, ErrNameCollision):
		return CodeNameCollision
	default:
		return ""
	}
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = "`" + s + "`"
	}

	return out
}
