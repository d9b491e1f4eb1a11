package contentline

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultFoldWidth is the maximum content octets per physical line used
// when no width is configured (RFC 6350 §3.2, excluding the line ending).
const DefaultFoldWidth = 75

// LogicalLine is one unfolded property line together with the physical
// line range it was assembled from.
type LogicalLine struct {
	Text      string
	StartLine int
	EndLine   int
}

// Span returns the line's source span.
func (l LogicalLine) Span() Span {
	return Span{StartLine: l.StartLine, EndLine: l.EndLine}
}

// Unfolder produces logical lines from a folded text stream. It makes a
// single forward pass over the reader with one physical line of lookahead
// and is not restartable.
//
// A physical line beginning with a single space or tab continues the
// previous logical line; the one leading whitespace character is removed
// and the remainder appended verbatim. CRLF, LF and bare CR terminators
// are all accepted and normalized away. Blank physical lines terminate
// the current logical line and are otherwise skipped.
type Unfolder struct {
	r       *bufio.Reader
	lineNum int
	done    bool

	// lookahead physical line
	peeked   bool
	peekText string
	peekNum  int
	peekErr  error
}

// NewUnfolder creates an Unfolder over r.
func NewUnfolder(r io.Reader) *Unfolder {
	return &Unfolder{r: bufio.NewReader(r)}
}

// Next returns the next logical line. It returns io.EOF when the stream
// is exhausted, and *Error with kind ErrMalformedLine on a continuation
// line that has nothing to continue.
func (u *Unfolder) Next() (LogicalLine, error) {
	if u.done {
		return LogicalLine{}, io.EOF
	}

	var (
		sb      strings.Builder
		started bool
		start   int
		end     int
	)
	for {
		text, num, err := u.peekPhysical()
		if err == io.EOF {
			if started {
				return LogicalLine{Text: sb.String(), StartLine: start, EndLine: end}, nil
			}
			u.done = true
			return LogicalLine{}, io.EOF
		}
		if err != nil {
			u.done = true
			return LogicalLine{}, err
		}

		if text == "" {
			u.consumePhysical()
			if started {
				return LogicalLine{Text: sb.String(), StartLine: start, EndLine: end}, nil
			}
			continue
		}

		if text[0] == ' ' || text[0] == '\t' {
			if !started {
				u.done = true
				return LogicalLine{}, newError(ErrMalformedLine, Span{StartLine: num, EndLine: num},
					"continuation line with no preceding content line")
			}
			u.consumePhysical()
			sb.WriteString(text[1:])
			end = num
			continue
		}

		if started {
			// Next logical line begins here; leave it for the next call.
			return LogicalLine{Text: sb.String(), StartLine: start, EndLine: end}, nil
		}
		u.consumePhysical()
		sb.WriteString(text)
		started = true
		start, end = num, num
	}
}

// All collects every remaining logical line.
func (u *Unfolder) All() ([]LogicalLine, error) {
	var lines []LogicalLine
	for {
		line, err := u.Next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}

func (u *Unfolder) peekPhysical() (string, int, error) {
	if !u.peeked {
		u.peekText, u.peekNum, u.peekErr = u.readPhysical()
		u.peeked = true
	}
	return u.peekText, u.peekNum, u.peekErr
}

func (u *Unfolder) consumePhysical() {
	u.peeked = false
}

// readPhysical reads one physical line, accepting CRLF, LF and bare CR.
func (u *Unfolder) readPhysical() (string, int, error) {
	var sb strings.Builder
	read := false
	for {
		b, err := u.r.ReadByte()
		if err == io.EOF {
			if !read {
				return "", 0, io.EOF
			}
			u.lineNum++
			return sb.String(), u.lineNum, nil
		}
		if err != nil {
			return "", 0, err
		}
		read = true
		switch b {
		case '\n':
			u.lineNum++
			return sb.String(), u.lineNum, nil
		case '\r':
			if next, err := u.r.ReadByte(); err == nil && next != '\n' {
				u.r.UnreadByte()
			}
			u.lineNum++
			return sb.String(), u.lineNum, nil
		default:
			sb.WriteByte(b)
		}
	}
}

// Fold splits a logical line's text into physical lines of at most width
// content octets each, never splitting inside a multi-byte codepoint.
// Continuation lines begin with a single space that counts toward the
// width. Line terminators are not included; the encoder joins the result
// with CRLF. Widths <= 1 are rejected with ErrConfiguration.
//
// Progress is guaranteed by always placing at least one codepoint per
// line, so a width smaller than 1+utf8.UTFMax can exceed the bound on
// pathological input.
func Fold(text string, width int) ([]string, error) {
	if width <= 1 {
		return nil, newError(ErrConfiguration, Span{}, "fold width %d, must be greater than 1", width)
	}
	if len(text) <= width {
		return []string{text}, nil
	}

	var lines []string
	avail := width
	var sb strings.Builder
	for _, r := range text {
		n := utf8.RuneLen(r)
		if sb.Len() > 0 && sb.Len()+n > avail {
			lines = append(lines, sb.String())
			sb.Reset()
			sb.WriteByte(' ')
			avail = width
		}
		sb.WriteRune(r)
	}
	lines = append(lines, sb.String())
	return lines, nil
}
