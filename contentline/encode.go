package contentline

import (
	"io"
	"strings"
)

// EncodeOptions configures the encoder.
type EncodeOptions struct {
	// FoldWidth is the maximum content octets per physical line,
	// excluding the CRLF terminator. Values <= 1 are rejected.
	FoldWidth int
}

// DefaultEncodeOptions returns the RFC 6350 defaults.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{FoldWidth: DefaultFoldWidth}
}

// Encode serializes a component tree to folded content-line text with the
// default options. Encoding the same tree twice yields byte-identical
// output.
func Encode(c *Component, reg *Registry) (string, error) {
	return EncodeWithOptions(c, reg, DefaultEncodeOptions())
}

// EncodeWithOptions serializes a component tree with explicit options.
// Encoding is fail-fast: the first value that its codec cannot render
// aborts the encode and no partial text is returned.
func EncodeWithOptions(c *Component, reg *Registry, opts EncodeOptions) (string, error) {
	if opts.FoldWidth <= 1 {
		return "", newError(ErrConfiguration, Span{}, "fold width %d, must be greater than 1", opts.FoldWidth)
	}
	if reg == nil {
		reg = NewRegistry("generic")
	}
	e := &encoder{reg: reg, opts: opts}
	if err := e.component(c); err != nil {
		return "", err
	}
	return e.sb.String(), nil
}

// EncodeTo writes the serialized tree to w.
func EncodeTo(w io.Writer, c *Component, reg *Registry, opts EncodeOptions) error {
	text, err := EncodeWithOptions(c, reg, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

type encoder struct {
	sb   strings.Builder
	reg  *Registry
	opts EncodeOptions
}

// component walks the tree in document order: BEGIN line, properties in
// stored order, nested components, END line. A synthetic unnamed root
// emits only its children.
func (e *encoder) component(c *Component) error {
	named := c.Name != ""
	if named {
		if err := e.line("BEGIN:" + c.Name); err != nil {
			return err
		}
	}
	for _, p := range c.Properties {
		if err := e.property(p); err != nil {
			return err
		}
	}
	for _, child := range c.Children {
		if err := e.component(child); err != nil {
			return err
		}
	}
	if named {
		return e.line("END:" + c.Name)
	}
	return nil
}

func (e *encoder) property(p *Property) error {
	raw, err := EncodeProperty(p, e.reg)
	if err != nil {
		return err
	}
	return e.line(raw)
}

// line folds one logical line and writes its physical lines.
func (e *encoder) line(text string) error {
	lines, err := Fold(text, e.opts.FoldWidth)
	if err != nil {
		return err
	}
	for _, l := range lines {
		e.sb.WriteString(l)
		e.sb.WriteString("\r\n")
	}
	return nil
}

// EncodeProperty renders one property as unfolded logical-line text,
// resolving its value type exactly as the parser does so that a parsed
// property re-encodes through the same codec.
func EncodeProperty(p *Property, reg *Registry) (string, error) {
	typeID := reg.TypeFor(p.Name, p.Params)
	raw, err := reg.EncodeValue(typeID, p.Value, p.Params)
	if err != nil {
		return "", err
	}
	return Unlex(Lexed{
		Group:  strings.ToUpper(p.Group),
		Name:   strings.ToUpper(p.Name),
		Params: p.Params,
		Value:  raw,
	}), nil
}
