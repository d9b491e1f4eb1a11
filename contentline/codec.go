package contentline

import (
	"strings"
)

// Codec pairs the parse and encode functions for one value type
// identifier. Implementations must be stateless or read-only after
// construction so a registry can be shared across concurrent parses.
type Codec interface {
	// TypeID returns the identifier this codec is registered under.
	TypeID() string

	// Parse coerces raw value text into a typed Value.
	Parse(raw string, params Parameters) (Value, error)

	// Encode renders a typed Value back into raw value text.
	Encode(v Value, params Parameters) (string, error)
}

// ============================================================
// Text escaping (RFC 6350 §3.4)
// ============================================================

// escapeText backslash-escapes the characters that are structural in
// value text: backslash, newline, comma and semicolon.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "\\\n,;") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case ',':
			sb.WriteString(`\,`)
		case ';':
			sb.WriteString(`\;`)
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// unescapeText reverses escapeText. A trailing unescaped backslash or an
// unknown escape sequence fails with ErrEscape.
func unescapeText(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", newError(ErrEscape, Span{}, "trailing backslash in %q", s)
		}
		i++
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
		case 'n', 'N':
			sb.WriteByte('\n')
		case ',':
			sb.WriteByte(',')
		case ';':
			sb.WriteByte(';')
		default:
			return "", newError(ErrEscape, Span{}, "unknown escape sequence %q in %q", s[i-1:i+1], s)
		}
	}
	return sb.String(), nil
}

// splitUnescaped splits s on every occurrence of sep that is not preceded
// by a backslash escape. The separators themselves may be escaped per
// escapeText, so a backslash always shields the following byte.
func splitUnescaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // shielded byte
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
