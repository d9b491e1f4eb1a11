package contentline

import (
	"strings"
)

// Lexed is one lexed content line: group and name identifiers, the ordered
// parameter list, and the raw (still escaped) value text. Line is the
// originating logical line, kept for diagnostics.
type Lexed struct {
	Group  string
	Name   string
	Params Parameters
	Value  string
	Line   LogicalLine
}

// lexer scans one logical line. Positions are byte offsets; columns in
// reported spans are 1-based.
type lexer struct {
	src  string
	pos  int
	line LogicalLine
}

// Lex splits a logical line into (group, name, parameters, raw value).
//
// Grammar, left to right: an optional dotted group prefix, the property
// name, zero or more ";name=value(,value)*" parameter segments, a ":"
// separator, then the raw value to end of line. Parameter values
// containing ',', ';', ':' or '"' must be double-quoted; inside quotes
// backslash escapes the quote and itself.
func Lex(line LogicalLine) (Lexed, error) {
	lx := &lexer{src: line.Text, line: line}
	return lx.run()
}

func (lx *lexer) run() (Lexed, error) {
	out := Lexed{Line: lx.line}

	ident := lx.scanIdent()
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' {
		if ident == "" {
			return out, lx.errf(ErrInvalidPropertyName, 1, "empty group name")
		}
		out.Group = ident
		lx.pos++
		ident = lx.scanIdent()
	}
	if ident == "" {
		return out, lx.errf(ErrInvalidPropertyName, lx.pos+1, "missing property name")
	}
	out.Name = ident

	for lx.pos < len(lx.src) && lx.src[lx.pos] == ';' {
		lx.pos++
		param, err := lx.scanParam()
		if err != nil {
			return out, err
		}
		out.Params = append(out.Params, param)
	}

	if lx.pos >= len(lx.src) || lx.src[lx.pos] != ':' {
		return out, lx.errf(ErrMissingValueSeparator, lx.pos+1, "expected ':' before end of line")
	}
	lx.pos++
	out.Value = lx.src[lx.pos:]
	return out, nil
}

func (lx *lexer) scanParam() (Parameter, error) {
	start := lx.pos
	name := lx.scanIdent()
	if name == "" {
		return Parameter{}, lx.errf(ErrInvalidParameterName, start+1, "missing parameter name")
	}
	if lx.pos >= len(lx.src) || lx.src[lx.pos] != '=' {
		return Parameter{}, lx.errf(ErrInvalidParameterName, lx.pos+1, "parameter %q missing '='", name)
	}
	lx.pos++

	param := Parameter{Name: name}
	for {
		value, err := lx.scanParamValue()
		if err != nil {
			return Parameter{}, err
		}
		param.Values = append(param.Values, value)
		if lx.pos < len(lx.src) && lx.src[lx.pos] == ',' {
			lx.pos++
			continue
		}
		return param, nil
	}
}

func (lx *lexer) scanParamValue() (string, error) {
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '"' {
		return lx.scanQuoted()
	}
	start := lx.pos
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ',', ';', ':':
			return lx.src[start:lx.pos], nil
		}
		lx.pos++
	}
	return lx.src[start:], nil
}

func (lx *lexer) scanQuoted() (string, error) {
	open := lx.pos
	lx.pos++ // opening quote
	var sb strings.Builder
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch c {
		case '"':
			lx.pos++
			return sb.String(), nil
		case '\\':
			if lx.pos+1 < len(lx.src) {
				next := lx.src[lx.pos+1]
				if next == '"' || next == '\\' {
					sb.WriteByte(next)
					lx.pos += 2
					continue
				}
			}
			sb.WriteByte(c)
			lx.pos++
		default:
			sb.WriteByte(c)
			lx.pos++
		}
	}
	return "", lx.errf(ErrUnterminatedQuote, open+1, "parameter value quote never closed")
}

// scanIdent scans an identifier: letters, digits and '-'.
func (lx *lexer) scanIdent() string {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentByte(lx.src[lx.pos]) {
		lx.pos++
	}
	return lx.src[start:lx.pos]
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}

func (lx *lexer) errf(kind ErrKind, column int, format string, args ...any) *Error {
	span := lx.line.Span()
	span.Column = column
	return newError(kind, span, format, args...)
}

// ============================================================
// Inverse
// ============================================================

// Unlex rebuilds a logical line's text from its lexed parts. Parameter
// values are quoted only when they contain a reserved character
// (minimal-quoting); quoted and unquoted forms re-parse identically.
func Unlex(lx Lexed) string {
	var sb strings.Builder
	if lx.Group != "" {
		sb.WriteString(lx.Group)
		sb.WriteByte('.')
	}
	sb.WriteString(lx.Name)
	for _, p := range lx.Params {
		sb.WriteByte(';')
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		for i, v := range p.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeParamValue(&sb, v)
		}
	}
	sb.WriteByte(':')
	sb.WriteString(lx.Value)
	return sb.String()
}

func writeParamValue(sb *strings.Builder, v string) {
	if !strings.ContainsAny(v, ",;:\"\\") {
		sb.WriteString(v)
		return
	}
	sb.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if v[i] == '"' || v[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(v[i])
	}
	sb.WriteByte('"')
}
