package contentline

import (
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Built-in type identifiers. Formats may register additional identifiers
// and remap per-property defaults; see Registry.
const (
	TypeText          = "text"
	TypeInteger       = "integer"
	TypeFloat         = "float"
	TypeBoolean       = "boolean"
	TypeDate          = "date"
	TypeTime          = "time"
	TypeDateTime      = "date-time"
	TypeTimestamp     = "timestamp"
	TypeDateAndOrTime = "date-and-or-time"
	TypeDuration      = "duration"
	TypeURI           = "uri"
	TypeBinary        = "binary"
	TypeLanguageTag   = "language-tag"
	TypeUTCOffset     = "utc-offset"
	TypeTextList      = "text-list"
)

func kindError(want string, got Kind) *Error {
	return newError(ErrValueFormat, Span{}, "cannot encode %s value as %s", got, want)
}

// ============================================================
// Text
// ============================================================

type textCodec struct{}

func (textCodec) TypeID() string { return TypeText }

func (textCodec) Parse(raw string, _ Parameters) (Value, error) {
	s, err := unescapeText(raw)
	if err != nil {
		return Value{}, err
	}
	return Text(s), nil
}

func (textCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindText {
		return "", kindError(TypeText, v.Kind())
	}
	return escapeText(v.Text()), nil
}

// ============================================================
// Integer
// ============================================================

type integerCodec struct{}

func (integerCodec) TypeID() string { return TypeInteger }

func (integerCodec) Parse(raw string, _ Parameters) (Value, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Value{}, newError(ErrValueFormat, Span{}, "invalid integer %q", raw)
	}
	return Integer(n), nil
}

func (integerCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindInteger {
		return "", kindError(TypeInteger, v.Kind())
	}
	return strconv.FormatInt(v.Integer(), 10), nil
}

// ============================================================
// Float
// ============================================================

type floatCodec struct{}

func (floatCodec) TypeID() string { return TypeFloat }

func (floatCodec) Parse(raw string, _ Parameters) (Value, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, newError(ErrValueFormat, Span{}, "invalid float %q", raw)
	}
	return Float(f), nil
}

func (floatCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindFloat {
		return "", kindError(TypeFloat, v.Kind())
	}
	// Shortest decimal form that parses back exactly; no exponent, which
	// the content-line float grammar does not allow.
	return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
}

// ============================================================
// Boolean
// ============================================================

type booleanCodec struct{}

func (booleanCodec) TypeID() string { return TypeBoolean }

func (booleanCodec) Parse(raw string, _ Parameters) (Value, error) {
	switch strings.ToUpper(raw) {
	case "TRUE":
		return Boolean(true), nil
	case "FALSE":
		return Boolean(false), nil
	}
	return Value{}, newError(ErrValueFormat, Span{}, "invalid boolean %q", raw)
}

func (booleanCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindBoolean {
		return "", kindError(TypeBoolean, v.Kind())
	}
	if v.Boolean() {
		return "TRUE", nil
	}
	return "FALSE", nil
}

// ============================================================
// URI
// ============================================================

type uriCodec struct{}

func (uriCodec) TypeID() string { return TypeURI }

func (uriCodec) Parse(raw string, _ Parameters) (Value, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return Value{}, newError(ErrValueFormat, Span{}, "invalid URI %q", raw)
	}
	return URI(raw), nil
}

func (uriCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindURI {
		return "", kindError(TypeURI, v.Kind())
	}
	return v.Text(), nil
}

// ============================================================
// Binary
// ============================================================

type binaryCodec struct{}

func (binaryCodec) TypeID() string { return TypeBinary }

func (binaryCodec) Parse(raw string, _ Parameters) (Value, error) {
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return Value{}, newError(ErrValueFormat, Span{}, "invalid base64 %q", raw)
	}
	return Binary(b), nil
}

func (binaryCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindBinary {
		return "", kindError(TypeBinary, v.Kind())
	}
	return base64.StdEncoding.EncodeToString(v.Binary()), nil
}

// ============================================================
// Language tag (RFC 5646)
// ============================================================

type languageTagCodec struct{}

func (languageTagCodec) TypeID() string { return TypeLanguageTag }

func (languageTagCodec) Parse(raw string, _ Parameters) (Value, error) {
	if _, err := language.Parse(raw); err != nil {
		return Value{}, newError(ErrValueFormat, Span{}, "invalid language tag %q", raw)
	}
	// The tag text is kept verbatim; canonicalization would break
	// byte-exact round-trips.
	return LanguageTag(raw), nil
}

func (languageTagCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindLanguageTag {
		return "", kindError(TypeLanguageTag, v.Kind())
	}
	return v.Text(), nil
}

// ============================================================
// UTC offset
// ============================================================

// utcOffsetCodec validates ±hh[mm] designators. The value is kept as
// text: offsets appear as property values only in formats that treat
// them interchangeably with text (vCard TZ).
type utcOffsetCodec struct{}

func (utcOffsetCodec) TypeID() string { return TypeUTCOffset }

func (utcOffsetCodec) Parse(raw string, _ Parameters) (Value, error) {
	if _, ok := parseZone(raw); !ok || raw == "Z" {
		return Value{}, newError(ErrValueFormat, Span{}, "invalid UTC offset %q", raw)
	}
	return Text(raw), nil
}

func (utcOffsetCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindText {
		return "", kindError(TypeUTCOffset, v.Kind())
	}
	return v.Text(), nil
}

// ============================================================
// Text list
// ============================================================

type textListCodec struct{}

func (textListCodec) TypeID() string { return TypeTextList }

func (textListCodec) Parse(raw string, _ Parameters) (Value, error) {
	parts := splitUnescaped(raw, ',')
	elems := make([]Value, 0, len(parts))
	for _, p := range parts {
		s, err := unescapeText(p)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, Text(s))
	}
	return List(elems...), nil
}

func (textListCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindList {
		return "", kindError(TypeTextList, v.Kind())
	}
	parts := make([]string, 0, len(v.List()))
	for _, e := range v.List() {
		if e.Kind() != KindText {
			return "", kindError(TypeTextList, e.Kind())
		}
		parts = append(parts, escapeText(e.Text()))
	}
	return strings.Join(parts, ","), nil
}

// ============================================================
// Structured (compound)
// ============================================================

// StructuredCodec splits and joins compound values on unescaped
// semicolons into a fixed, ordered field set. Field names and arity are
// declared at construction. When ListFields is set each field holds a
// list of comma-separated text values instead of a single text value.
//
// Parsing accepts between MinFields and len(FieldNames) fields; anything
// else fails with ErrFieldCount. Missing trailing fields stay absent, so
// encoding reproduces the input exactly.
type StructuredCodec struct {
	ID         string
	FieldNames []string
	MinFields  int
	ListFields bool
}

// NewStructuredCodec creates a strict compound codec: the parsed field
// count must equal len(fieldNames).
func NewStructuredCodec(id string, fieldNames []string, listFields bool) *StructuredCodec {
	return &StructuredCodec{
		ID:         id,
		FieldNames: fieldNames,
		MinFields:  len(fieldNames),
		ListFields: listFields,
	}
}

// TypeID returns the codec's type identifier.
func (c *StructuredCodec) TypeID() string { return c.ID }

// Parse splits raw on unescaped semicolons into named fields.
func (c *StructuredCodec) Parse(raw string, _ Parameters) (Value, error) {
	parts := splitUnescaped(raw, ';')
	if len(parts) > len(c.FieldNames) || len(parts) < c.MinFields {
		return Value{}, newError(ErrFieldCount, Span{},
			"%s has %d fields, want %d-%d", c.ID, len(parts), c.MinFields, len(c.FieldNames))
	}
	fields := make([]Field, 0, len(parts))
	for i, p := range parts {
		var fv Value
		if c.ListFields {
			items := splitUnescaped(p, ',')
			elems := make([]Value, 0, len(items))
			for _, item := range items {
				s, err := unescapeText(item)
				if err != nil {
					return Value{}, err
				}
				elems = append(elems, Text(s))
			}
			fv = List(elems...)
		} else {
			s, err := unescapeText(p)
			if err != nil {
				return Value{}, err
			}
			fv = Text(s)
		}
		fields = append(fields, Field{Name: c.FieldNames[i], Value: fv})
	}
	return Structured(fields...), nil
}

// Encode joins the fields present, in declared order, on semicolons.
func (c *StructuredCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindStructured {
		return "", kindError(c.ID, v.Kind())
	}
	fields := v.Fields()
	if len(fields) > len(c.FieldNames) || len(fields) < c.MinFields {
		return "", newError(ErrFieldCount, Span{},
			"%s has %d fields, want %d-%d", c.ID, len(fields), c.MinFields, len(c.FieldNames))
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f.Value.Kind() {
		case KindText:
			parts = append(parts, escapeText(f.Value.Text()))
		case KindList:
			if !c.ListFields {
				return "", kindError(c.ID, f.Value.Kind())
			}
			items := make([]string, 0, len(f.Value.List()))
			for _, e := range f.Value.List() {
				if e.Kind() != KindText {
					return "", kindError(c.ID, e.Kind())
				}
				items = append(items, escapeText(e.Text()))
			}
			parts = append(parts, strings.Join(items, ","))
		default:
			return "", kindError(c.ID, f.Value.Kind())
		}
	}
	return strings.Join(parts, ";"), nil
}
