package contentline

import (
	"errors"
	"fmt"
)

// ErrKind identifies the class of an engine failure.
type ErrKind uint8

const (
	ErrUnknown ErrKind = iota

	// Unfolder
	ErrMalformedLine

	// Lexer
	ErrUnterminatedQuote
	ErrMissingValueSeparator
	ErrInvalidParameterName
	ErrInvalidPropertyName

	// Registry / codecs
	ErrUnknownType
	ErrEscape
	ErrValueFormat
	ErrFieldCount

	// Assembler
	ErrUnbalancedStructure
	ErrUnterminatedComponent

	// Engine configuration
	ErrConfiguration
)

// String returns the error kind name.
func (k ErrKind) String() string {
	switch k {
	case ErrMalformedLine:
		return "malformed line"
	case ErrUnterminatedQuote:
		return "unterminated quote"
	case ErrMissingValueSeparator:
		return "missing value separator"
	case ErrInvalidParameterName:
		return "invalid parameter name"
	case ErrInvalidPropertyName:
		return "invalid property name"
	case ErrUnknownType:
		return "unknown type"
	case ErrEscape:
		return "escape error"
	case ErrValueFormat:
		return "value format error"
	case ErrFieldCount:
		return "field count error"
	case ErrUnbalancedStructure:
		return "unbalanced structure"
	case ErrUnterminatedComponent:
		return "unterminated component"
	case ErrConfiguration:
		return "configuration error"
	default:
		return "unknown error"
	}
}

// Span is a source location covering one logical line, which may have been
// assembled from several physical lines. Column is a 1-based byte offset
// into the unfolded text; zero means unknown.
type Span struct {
	StartLine int
	EndLine   int
	Column    int
}

// String returns the span as "line N[-M][:col]".
func (s Span) String() string {
	if s.StartLine == 0 {
		return "unknown location"
	}
	out := fmt.Sprintf("line %d", s.StartLine)
	if s.EndLine > s.StartLine {
		out = fmt.Sprintf("lines %d-%d", s.StartLine, s.EndLine)
	}
	if s.Column > 0 {
		out = fmt.Sprintf("%s:%d", out, s.Column)
	}
	return out
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Error is the engine's failure value. Kind is machine-readable; Span
// locates the failure in the input where one applies.
type Error struct {
	Kind    ErrKind
	Message string
	Span    Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Span)
}

// Is matches any *Error of the same kind, so callers can test
// errors.Is(err, &Error{Kind: ErrValueFormat}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf extracts the ErrKind from err, or ErrUnknown if err is not an
// engine error.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrUnknown
}

func newError(kind ErrKind, span Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// withSpan attaches a span to an engine error that does not carry one yet.
// Codecs report kind and message; the pipeline knows the line.
func withSpan(err error, span Span) error {
	var e *Error
	if errors.As(err, &e) && e.Span.IsZero() {
		e.Span = span
	}
	return err
}
