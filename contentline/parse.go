package contentline

import (
	"io"
	"strings"
)

// Parse reads a folded content-line stream and assembles the component
// tree, resolving value types through reg. A nil registry parses with the
// generic built-ins, every value defaulting to text.
//
// Parsing is fail-fast: the first malformed line, value or structure
// aborts the whole parse and no partial tree is returned.
func Parse(r io.Reader, reg *Registry) (*Component, error) {
	if reg == nil {
		reg = NewRegistry("generic")
	}
	u := NewUnfolder(r)
	a := newAssembler()
	for {
		line, err := u.Next()
		if err == io.EOF {
			return a.finish()
		}
		if err != nil {
			return nil, err
		}
		prop, err := ParseProperty(line, reg)
		if err != nil {
			return nil, err
		}
		if err := a.feed(prop, line.Span()); err != nil {
			return nil, err
		}
	}
}

// ParseString parses a complete document held in memory.
func ParseString(s string, reg *Registry) (*Component, error) {
	return Parse(strings.NewReader(s), reg)
}

// ParseProperty lexes one logical line and coerces its value through the
// registry's codec for the resolved type. Property, group and parameter
// names are case-folded to upper case.
func ParseProperty(line LogicalLine, reg *Registry) (*Property, error) {
	lx, err := Lex(line)
	if err != nil {
		return nil, err
	}
	prop := &Property{
		Group:  strings.ToUpper(lx.Group),
		Name:   strings.ToUpper(lx.Name),
		Params: foldParamNames(lx.Params),
	}

	typeID := reg.TypeFor(prop.Name, prop.Params)
	if prop.Name == NameBegin || prop.Name == NameEnd {
		// Structural markers always carry a bare text name.
		typeID = TypeText
	}
	value, err := reg.ParseValue(typeID, lx.Value, prop.Params)
	if err != nil {
		return nil, withSpan(err, line.Span())
	}
	prop.Value = value
	return prop, nil
}

func foldParamNames(ps Parameters) Parameters {
	for i := range ps {
		ps[i].Name = strings.ToUpper(ps[i].Name)
	}
	return ps
}
