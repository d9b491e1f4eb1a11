package contentline

import (
	"time"
)

// Kind represents content-line value types.
type Kind uint8

const (
	KindText Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindDate
	KindTime
	KindDateTime
	KindDuration
	KindURI
	KindBinary
	KindLanguageTag
	KindList
	KindStructured // compound value: fixed, codec-defined field order
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "date-time"
	case KindDuration:
		return "duration"
	case KindURI:
		return "uri"
	case KindBinary:
		return "binary"
	case KindLanguageTag:
		return "language-tag"
	case KindList:
		return "list"
	case KindStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Date is a complete calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// UTCOffset is a time-of-day zone designator. Zulu marks the "Z"
// designator; otherwise Minutes is the signed offset east of UTC.
type UTCOffset struct {
	Minutes int
	Zulu    bool
}

// Time is a time of day. Offset is nil for floating local time.
type Time struct {
	Hour   int
	Minute int
	Second int
	Offset *UTCOffset
}

// DateTime is a combined calendar date and time of day.
type DateTime struct {
	Date Date
	Time Time
}

// Field is one named member of a structured (compound) value.
type Field struct {
	Name  string
	Value Value
}

// Value is a typed content-line value.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind). Text, URI and
	// language-tag share the string slot.
	str      string
	integer  int64
	float    float64
	boolean  bool
	date     Date
	tod      Time
	datetime DateTime
	duration time.Duration
	binary   []byte

	// Container values
	list   []Value
	fields []Field
}

// ============================================================
// Constructors
// ============================================================

// Text creates a text value.
func Text(s string) Value {
	return Value{kind: KindText, str: s}
}

// Integer creates an integer value.
func Integer(n int64) Value {
	return Value{kind: KindInteger, integer: n}
}

// Float creates a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, float: f}
}

// Boolean creates a boolean value.
func Boolean(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// DateValue creates a calendar-date value.
func DateValue(d Date) Value {
	return Value{kind: KindDate, date: d}
}

// TimeValue creates a time-of-day value.
func TimeValue(t Time) Value {
	return Value{kind: KindTime, tod: t}
}

// DateTimeValue creates a combined date-time value.
func DateTimeValue(dt DateTime) Value {
	return Value{kind: KindDateTime, datetime: dt}
}

// DurationValue creates a duration value.
func DurationValue(d time.Duration) Value {
	return Value{kind: KindDuration, duration: d}
}

// URI creates a URI value. The text is kept verbatim.
func URI(s string) Value {
	return Value{kind: KindURI, str: s}
}

// Binary creates a binary value.
func Binary(b []byte) Value {
	return Value{kind: KindBinary, binary: b}
}

// LanguageTag creates an RFC 5646 language-tag value. The tag text is kept
// verbatim.
func LanguageTag(s string) Value {
	return Value{kind: KindLanguageTag, str: s}
}

// List creates an ordered list value.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: elems}
}

// Structured creates a compound value with the given ordered fields.
func Structured(fields ...Field) Value {
	return Value{kind: KindStructured, fields: fields}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Text returns the text content for text, URI and language-tag values.
func (v Value) Text() string { return v.str }

// Integer returns the integer content.
func (v Value) Integer() int64 { return v.integer }

// Float returns the float content.
func (v Value) Float() float64 { return v.float }

// Boolean returns the boolean content.
func (v Value) Boolean() bool { return v.boolean }

// Date returns the calendar-date content.
func (v Value) Date() Date { return v.date }

// Time returns the time-of-day content.
func (v Value) Time() Time { return v.tod }

// DateTime returns the date-time content.
func (v Value) DateTime() DateTime { return v.datetime }

// Duration returns the duration content.
func (v Value) Duration() time.Duration { return v.duration }

// Binary returns the binary content. The slice is not copied.
func (v Value) Binary() []byte { return v.binary }

// List returns the element list. The slice is not copied.
func (v Value) List() []Value { return v.list }

// Fields returns the structured fields. The slice is not copied.
func (v Value) Fields() []Field { return v.fields }

// ============================================================
// Equality
// ============================================================

// Equal reports deep structural equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText, KindURI, KindLanguageTag:
		return v.str == o.str
	case KindInteger:
		return v.integer == o.integer
	case KindFloat:
		return v.float == o.float
	case KindBoolean:
		return v.boolean == o.boolean
	case KindDate:
		return v.date == o.date
	case KindTime:
		return timeEqual(v.tod, o.tod)
	case KindDateTime:
		return v.datetime.Date == o.datetime.Date && timeEqual(v.datetime.Time, o.datetime.Time)
	case KindDuration:
		return v.duration == o.duration
	case KindBinary:
		if len(v.binary) != len(o.binary) {
			return false
		}
		for i := range v.binary {
			if v.binary[i] != o.binary[i] {
				return false
			}
		}
		return true
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindStructured:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Name != o.fields[i].Name || !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func timeEqual(a, b Time) bool {
	if a.Hour != b.Hour || a.Minute != b.Minute || a.Second != b.Second {
		return false
	}
	if (a.Offset == nil) != (b.Offset == nil) {
		return false
	}
	if a.Offset != nil && *a.Offset != *b.Offset {
		return false
	}
	return true
}
