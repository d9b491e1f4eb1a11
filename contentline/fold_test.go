package contentline

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Unfolder Tests
// ============================================================

func TestUnfolder_Basic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"crlf", "FN:John\r\nN:Doe;John\r\n", []string{"FN:John", "N:Doe;John"}},
		{"lf", "FN:John\nN:Doe;John\n", []string{"FN:John", "N:Doe;John"}},
		{"bare cr", "FN:John\rN:Doe;John\r", []string{"FN:John", "N:Doe;John"}},
		{"no final terminator", "FN:John", []string{"FN:John"}},
		{"space continuation", "FN:Jo\r\n hn\r\n", []string{"FN:John"}},
		{"tab continuation", "FN:Jo\r\n\thn\r\n", []string{"FN:John"}},
		{"multi continuation", "FN:J\r\n o\r\n h\r\n n\r\n", []string{"FN:John"}},
		{"blank lines skipped", "FN:John\r\n\r\nN:Doe\r\n", []string{"FN:John", "N:Doe"}},
		{"only one ws char removed", "FN:A\r\n  B\r\n", []string{"FN:A B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := NewUnfolder(strings.NewReader(tt.input)).All()
			require.NoError(t, err)
			texts := make([]string, len(lines))
			for i, l := range lines {
				texts[i] = l.Text
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

func TestUnfolder_SourceSpans(t *testing.T) {
	input := "FN:John\r\nNOTE:part one\r\n part two\r\n part three\r\nEND:VCARD\r\n"
	lines, err := NewUnfolder(strings.NewReader(input)).All()
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, Span{StartLine: 1, EndLine: 1}, lines[0].Span())
	assert.Equal(t, Span{StartLine: 2, EndLine: 4}, lines[1].Span())
	assert.Equal(t, "NOTE:part onepart twopart three", lines[1].Text)
	assert.Equal(t, Span{StartLine: 5, EndLine: 5}, lines[2].Span())
}

func TestUnfolder_StrayContinuation(t *testing.T) {
	_, err := NewUnfolder(strings.NewReader(" leading continuation\r\n")).All()
	require.Error(t, err)
	assert.Equal(t, ErrMalformedLine, KindOf(err))
}

func TestUnfolder_SinglePass(t *testing.T) {
	u := NewUnfolder(strings.NewReader("FN:John\r\n"))
	_, err := u.Next()
	require.NoError(t, err)
	_, err = u.Next()
	assert.Equal(t, io.EOF, err)
	_, err = u.Next()
	assert.Equal(t, io.EOF, err)
}

// ============================================================
// Folder Tests
// ============================================================

func TestFold_WidthBound(t *testing.T) {
	// A 90-octet logical line folded at 75 yields two physical lines,
	// the second starting with a single space.
	text := "NOTE:" + strings.Repeat("x", 85)
	require.Equal(t, 90, len(text))

	lines, err := Fold(text, 75)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 75, len(lines[0]))
	assert.Equal(t, " ", lines[1][:1])
	assert.Equal(t, 16, len(lines[1]))
}

func TestFold_NeverSplitsCodepoints(t *testing.T) {
	text := strings.Repeat("é", 50) // 2 octets each
	lines, err := Fold(text, 75)
	require.NoError(t, err)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 75)
		assert.True(t, strings.HasPrefix(l, " ") || l == lines[0])
		trimmed := strings.TrimPrefix(l, " ")
		assert.Equal(t, strings.Repeat("é", len(trimmed)/2), trimmed, "split inside a codepoint")
	}
}

func TestFold_ConfigurationError(t *testing.T) {
	for _, w := range []int{1, 0, -5} {
		_, err := Fold("anything", w)
		require.Error(t, err)
		assert.Equal(t, ErrConfiguration, KindOf(err))
	}
}

func TestFold_UnfoldInverse(t *testing.T) {
	texts := []string{
		"FN:John Doe",
		"NOTE:" + strings.Repeat("abc ", 60),
		"NOTE:" + strings.Repeat("日本語", 40),
		strings.Repeat("x", 75),
		strings.Repeat("x", 76),
	}
	for _, text := range texts {
		for _, width := range []int{5, 20, 75, 200} {
			folded, err := Fold(text, width)
			require.NoError(t, err)
			for _, l := range folded {
				assert.LessOrEqual(t, len(l), width)
			}
			lines, err := NewUnfolder(strings.NewReader(strings.Join(folded, "\r\n") + "\r\n")).All()
			require.NoError(t, err)
			require.Len(t, lines, 1)
			assert.Equal(t, text, lines[0].Text, "width %d", width)
		}
	}
}
