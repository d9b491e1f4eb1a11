package contentline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *Registry {
	return NewRegistry("test")
}

// ============================================================
// Text escaping
// ============================================================

func TestEscaping_Inverse(t *testing.T) {
	texts := []string{
		"plain",
		"comma, semicolon; backslash \\",
		"line\nbreak",
		"",
		"\\n literal backslash-n",
		";;;,,,",
	}
	for _, s := range texts {
		back, err := unescapeText(escapeText(s))
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestEscaping_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"trailing backslash", `abc\`},
		{"unknown escape", `ab\qcd`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unescapeText(tt.in)
			require.Error(t, err)
			assert.Equal(t, ErrEscape, KindOf(err))
		})
	}
}

func TestEscaping_UppercaseN(t *testing.T) {
	s, err := unescapeText(`a\Nb`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", s)
}

// ============================================================
// Scalar codecs
// ============================================================

func TestScalarCodecs_ParseEncode(t *testing.T) {
	tests := []struct {
		typeID string
		raw    string
		want   Value
		out    string // expected re-encode; "" means same as raw
	}{
		{TypeText, `John\, Doe`, Text("John, Doe"), ""},
		{TypeInteger, "42", Integer(42), ""},
		{TypeInteger, "-7", Integer(-7), ""},
		{TypeFloat, "3.14", Float(3.14), ""},
		{TypeBoolean, "TRUE", Boolean(true), ""},
		{TypeBoolean, "false", Boolean(false), "FALSE"},
		{TypeURI, "https://example.com/x", URI("https://example.com/x"), ""},
		{TypeBinary, "aGVsbG8=", Binary([]byte("hello")), ""},
		{TypeLanguageTag, "en-US", LanguageTag("en-US"), ""},
		{TypeUTCOffset, "-0500", Text("-0500"), ""},
		{TypeDuration, "PT1H30M", DurationValue(90 * time.Minute), ""},
		{TypeDuration, "P1DT12H", DurationValue(36 * time.Hour), ""},
		{TypeDuration, "-PT5S", DurationValue(-5 * time.Second), ""},
	}

	reg := testRegistry()
	for _, tt := range tests {
		t.Run(tt.typeID+"/"+tt.raw, func(t *testing.T) {
			v, err := reg.ParseValue(tt.typeID, tt.raw, nil)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(v), "parsed %v, want %v", v, tt.want)

			raw, err := reg.EncodeValue(tt.typeID, v, nil)
			require.NoError(t, err)
			want := tt.out
			if want == "" {
				want = tt.raw
			}
			assert.Equal(t, want, raw)
		})
	}
}

func TestScalarCodecs_ValueFormatErrors(t *testing.T) {
	tests := []struct {
		typeID string
		raw    string
	}{
		{TypeInteger, "fortytwo"},
		{TypeFloat, "1.2.3"},
		{TypeBoolean, "yes"},
		{TypeURI, "no scheme here"},
		{TypeBinary, "!!not base64!!"},
		{TypeLanguageTag, "not_a_tag!"},
		{TypeUTCOffset, "Z"},
		{TypeUTCOffset, "0500"},
		{TypeDuration, "P"},
		{TypeDuration, "PT"},
		{TypeDuration, "P1Y"},
		{TypeDuration, "soon"},
	}

	reg := testRegistry()
	for _, tt := range tests {
		t.Run(tt.typeID+"/"+tt.raw, func(t *testing.T) {
			_, err := reg.ParseValue(tt.typeID, tt.raw, nil)
			require.Error(t, err)
			assert.Equal(t, ErrValueFormat, KindOf(err))
		})
	}
}

func TestCodecs_KindMismatchOnEncode(t *testing.T) {
	reg := testRegistry()
	_, err := reg.EncodeValue(TypeInteger, Text("nope"), nil)
	require.Error(t, err)
	assert.Equal(t, ErrValueFormat, KindOf(err))
}

// ============================================================
// List codec
// ============================================================

func TestTextListCodec(t *testing.T) {
	reg := testRegistry()

	v, err := reg.ParseValue(TypeTextList, `swimming,reading\, a lot,chess`, nil)
	require.NoError(t, err)
	require.Equal(t, KindList, v.Kind())
	require.Len(t, v.List(), 3)
	assert.Equal(t, "reading, a lot", v.List()[1].Text())

	raw, err := reg.EncodeValue(TypeTextList, v, nil)
	require.NoError(t, err)
	assert.Equal(t, `swimming,reading\, a lot,chess`, raw)
}

// ============================================================
// Structured codec
// ============================================================

func nameCodec() *StructuredCodec {
	return NewStructuredCodec("x-name", []string{"family", "given", "additional", "prefixes", "suffixes"}, true)
}

func TestStructuredCodec_ParseEncode(t *testing.T) {
	c := nameCodec()

	v, err := c.Parse(`Stevenson;John;Philip,Paul;Dr.;Jr.`, nil)
	require.NoError(t, err)
	require.Equal(t, KindStructured, v.Kind())
	fields := v.Fields()
	require.Len(t, fields, 5)
	assert.Equal(t, "family", fields[0].Name)
	assert.Equal(t, "Stevenson", fields[0].Value.List()[0].Text())
	require.Len(t, fields[2].Value.List(), 2)
	assert.Equal(t, "Paul", fields[2].Value.List()[1].Text())

	raw, err := c.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, `Stevenson;John;Philip,Paul;Dr.;Jr.`, raw)
}

func TestStructuredCodec_FieldCount(t *testing.T) {
	c := nameCodec()

	for _, raw := range []string{"Doe;John", "a;b;c;d;e;f"} {
		_, err := c.Parse(raw, nil)
		require.Error(t, err, "raw %q", raw)
		assert.Equal(t, ErrFieldCount, KindOf(err))
	}
}

func TestStructuredCodec_OptionalTrailingFields(t *testing.T) {
	c := &StructuredCodec{ID: "x-gender", FieldNames: []string{"sex", "identity"}, MinFields: 1}

	v, err := c.Parse("M", nil)
	require.NoError(t, err)
	require.Len(t, v.Fields(), 1)

	raw, err := c.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, "M", raw)

	v2, err := c.Parse("M;boy", nil)
	require.NoError(t, err)
	require.Len(t, v2.Fields(), 2)
	assert.Equal(t, "boy", v2.Fields()[1].Value.Text())
}

func TestStructuredCodec_EscapedSemicolons(t *testing.T) {
	c := &StructuredCodec{ID: "x-pair", FieldNames: []string{"a", "b"}, MinFields: 2}

	v, err := c.Parse(`left\;still left;right`, nil)
	require.NoError(t, err)
	assert.Equal(t, "left;still left", v.Fields()[0].Value.Text())

	raw, err := c.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, `left\;still left;right`, raw)
}
