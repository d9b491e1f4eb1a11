package contentline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The date and time codecs accept the strict complete forms of the
// ISO 8601 subset used by the line-oriented formats: calendar dates in
// basic (YYYYMMDD) or extended (YYYY-MM-DD) form, times of day as HH,
// HHMM, HHMMSS or their colon-separated extended forms, with an optional
// trailing "Z" or ±hh[[:]mm] designator. Canonical encoding is always the
// basic form, which is what RFC 6350 content lines carry.

// ============================================================
// Parsing helpers
// ============================================================

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func parseDate(raw string) (Date, error) {
	var y, m, d int
	switch {
	case len(raw) == 8 && allDigits(raw):
		y, _ = strconv.Atoi(raw[:4])
		m, _ = strconv.Atoi(raw[4:6])
		d, _ = strconv.Atoi(raw[6:8])
	case len(raw) == 10 && raw[4] == '-' && raw[7] == '-' &&
		allDigits(raw[:4]) && allDigits(raw[5:7]) && allDigits(raw[8:]):
		y, _ = strconv.Atoi(raw[:4])
		m, _ = strconv.Atoi(raw[5:7])
		d, _ = strconv.Atoi(raw[8:])
	default:
		return Date{}, newError(ErrValueFormat, Span{}, "invalid date %q", raw)
	}
	// Reject impossible dates by checking that time.Date does not
	// normalize the components away.
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return Date{}, newError(ErrValueFormat, Span{}, "impossible date %q", raw)
	}
	return Date{Year: y, Month: m, Day: d}, nil
}

// parseZone parses a complete zone designator: "Z" or ±hh, ±hhmm, ±hh:mm.
func parseZone(s string) (*UTCOffset, bool) {
	if s == "Z" {
		return &UTCOffset{Zulu: true}, true
	}
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return nil, false
	}
	rest := strings.Replace(s[1:], ":", "", 1)
	var h, m int
	switch {
	case len(rest) == 2 && allDigits(rest):
		h, _ = strconv.Atoi(rest)
	case len(rest) == 4 && allDigits(rest):
		h, _ = strconv.Atoi(rest[:2])
		m, _ = strconv.Atoi(rest[2:])
	default:
		return nil, false
	}
	if h > 23 || m > 59 {
		return nil, false
	}
	minutes := h*60 + m
	if s[0] == '-' {
		minutes = -minutes
	}
	return &UTCOffset{Minutes: minutes}, true
}

// splitZone removes a trailing zone designator from a time string.
func splitZone(raw string) (string, *UTCOffset, error) {
	if i := strings.IndexAny(raw, "Z+-"); i >= 0 {
		off, ok := parseZone(raw[i:])
		if !ok {
			return "", nil, newError(ErrValueFormat, Span{}, "invalid zone designator %q", raw[i:])
		}
		return raw[:i], off, nil
	}
	return raw, nil, nil
}

func parseTime(raw string) (Time, error) {
	body, off, err := splitZone(raw)
	if err != nil {
		return Time{}, err
	}
	body = strings.ReplaceAll(body, ":", "")
	var h, m, s int
	switch {
	case len(body) == 2 && allDigits(body):
		h, _ = strconv.Atoi(body)
	case len(body) == 4 && allDigits(body):
		h, _ = strconv.Atoi(body[:2])
		m, _ = strconv.Atoi(body[2:])
	case len(body) == 6 && allDigits(body):
		h, _ = strconv.Atoi(body[:2])
		m, _ = strconv.Atoi(body[2:4])
		s, _ = strconv.Atoi(body[4:])
	default:
		return Time{}, newError(ErrValueFormat, Span{}, "invalid time %q", raw)
	}
	if h > 23 || m > 59 || s > 60 {
		return Time{}, newError(ErrValueFormat, Span{}, "impossible time %q", raw)
	}
	return Time{Hour: h, Minute: m, Second: s, Offset: off}, nil
}

func parseDateTime(raw string) (DateTime, error) {
	i := strings.IndexByte(raw, 'T')
	if i < 0 {
		return DateTime{}, newError(ErrValueFormat, Span{}, "invalid date-time %q", raw)
	}
	d, err := parseDate(raw[:i])
	if err != nil {
		return DateTime{}, err
	}
	t, err := parseTime(raw[i+1:])
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{Date: d, Time: t}, nil
}

// ============================================================
// Encoding helpers (canonical basic form)
// ============================================================

func encodeDate(d Date) string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

func encodeZone(off *UTCOffset) string {
	if off == nil {
		return ""
	}
	if off.Zulu {
		return "Z"
	}
	minutes := off.Minutes
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%s%02d", sign, minutes/60)
	}
	return fmt.Sprintf("%s%02d%02d", sign, minutes/60, minutes%60)
}

func encodeTime(t Time) string {
	return fmt.Sprintf("%02d%02d%02d%s", t.Hour, t.Minute, t.Second, encodeZone(t.Offset))
}

func encodeDateTime(dt DateTime) string {
	return encodeDate(dt.Date) + "T" + encodeTime(dt.Time)
}

// ============================================================
// Codecs
// ============================================================

type dateCodec struct{}

func (dateCodec) TypeID() string { return TypeDate }

func (dateCodec) Parse(raw string, _ Parameters) (Value, error) {
	d, err := parseDate(raw)
	if err != nil {
		return Value{}, err
	}
	return DateValue(d), nil
}

func (dateCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindDate {
		return "", kindError(TypeDate, v.Kind())
	}
	return encodeDate(v.Date()), nil
}

type timeCodec struct{}

func (timeCodec) TypeID() string { return TypeTime }

func (timeCodec) Parse(raw string, _ Parameters) (Value, error) {
	t, err := parseTime(raw)
	if err != nil {
		return Value{}, err
	}
	return TimeValue(t), nil
}

func (timeCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindTime {
		return "", kindError(TypeTime, v.Kind())
	}
	return encodeTime(v.Time()), nil
}

// dateTimeCodec serves both "date-time" and "timestamp": a timestamp is a
// complete date-time, and both encode identically in canonical form.
type dateTimeCodec struct {
	id string
}

func (c dateTimeCodec) TypeID() string { return c.id }

func (c dateTimeCodec) Parse(raw string, _ Parameters) (Value, error) {
	dt, err := parseDateTime(raw)
	if err != nil {
		return Value{}, err
	}
	return DateTimeValue(dt), nil
}

func (c dateTimeCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindDateTime {
		return "", kindError(c.id, v.Kind())
	}
	return encodeDateTime(v.DateTime()), nil
}

// dateAndOrTimeCodec is the union form used by vCard BDAY/ANNIVERSARY:
// a date-time, a date, or a standalone time introduced by "T". It is the
// one built-in codec whose parsed kind depends on the input shape.
type dateAndOrTimeCodec struct{}

func (dateAndOrTimeCodec) TypeID() string { return TypeDateAndOrTime }

func (dateAndOrTimeCodec) Parse(raw string, params Parameters) (Value, error) {
	switch {
	case strings.HasPrefix(raw, "T"):
		t, err := parseTime(raw[1:])
		if err != nil {
			return Value{}, err
		}
		return TimeValue(t), nil
	case strings.ContainsRune(raw, 'T'):
		return dateTimeCodec{id: TypeDateAndOrTime}.Parse(raw, params)
	default:
		return dateCodec{}.Parse(raw, params)
	}
}

func (dateAndOrTimeCodec) Encode(v Value, _ Parameters) (string, error) {
	switch v.Kind() {
	case KindDate:
		return encodeDate(v.Date()), nil
	case KindTime:
		return "T" + encodeTime(v.Time()), nil
	case KindDateTime:
		return encodeDateTime(v.DateTime()), nil
	}
	return "", kindError(TypeDateAndOrTime, v.Kind())
}

// ============================================================
// Duration
// ============================================================

// durationCodec handles the PnW / PnDTnHnMnS duration subset (no years
// or months, whose length is calendar-dependent).
type durationCodec struct{}

func (durationCodec) TypeID() string { return TypeDuration }

func (durationCodec) Parse(raw string, _ Parameters) (Value, error) {
	s := raw
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") {
		return Value{}, newError(ErrValueFormat, Span{}, "invalid duration %q", raw)
	}
	s = s[1:]

	var total time.Duration
	inTime := false
	seen := false
	for len(s) > 0 {
		if s[0] == 'T' {
			if inTime {
				return Value{}, newError(ErrValueFormat, Span{}, "invalid duration %q", raw)
			}
			inTime = true
			s = s[1:]
			continue
		}
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == 0 || i == len(s) {
			return Value{}, newError(ErrValueFormat, Span{}, "invalid duration %q", raw)
		}
		n, _ := strconv.Atoi(s[:i])
		unit := s[i]
		s = s[i+1:]
		seen = true
		switch {
		case unit == 'W' && !inTime:
			total += time.Duration(n) * 7 * 24 * time.Hour
		case unit == 'D' && !inTime:
			total += time.Duration(n) * 24 * time.Hour
		case unit == 'H' && inTime:
			total += time.Duration(n) * time.Hour
		case unit == 'M' && inTime:
			total += time.Duration(n) * time.Minute
		case unit == 'S' && inTime:
			total += time.Duration(n) * time.Second
		default:
			return Value{}, newError(ErrValueFormat, Span{}, "invalid duration designator %q in %q", string(unit), raw)
		}
	}
	if !seen {
		return Value{}, newError(ErrValueFormat, Span{}, "empty duration %q", raw)
	}
	if neg {
		total = -total
	}
	return DurationValue(total), nil
}

func (durationCodec) Encode(v Value, _ Parameters) (string, error) {
	if v.Kind() != KindDuration {
		return "", kindError(TypeDuration, v.Kind())
	}
	d := v.Duration()
	var sb strings.Builder
	if d < 0 {
		sb.WriteByte('-')
		d = -d
	}
	sb.WriteByte('P')
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	if days > 0 {
		fmt.Fprintf(&sb, "%dD", days)
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 || m > 0 || s > 0 || days == 0 {
		sb.WriteByte('T')
		if h > 0 {
			fmt.Fprintf(&sb, "%dH", h)
		}
		if m > 0 {
			fmt.Fprintf(&sb, "%dM", m)
		}
		if s > 0 || (h == 0 && m == 0 && days == 0) {
			fmt.Fprintf(&sb, "%dS", s)
		}
	}
	return sb.String(), nil
}
