package contentline

import (
	"strings"
)

// ParamValueType is the parameter that overrides a property's default
// value type (RFC 6350 §5.2).
const ParamValueType = "VALUE"

// Parameter is one property parameter: a case-insensitive name and an
// ordered, non-empty list of string values.
type Parameter struct {
	Name   string
	Values []string
}

// Value returns the parameter's first value.
func (p Parameter) Value() string {
	if len(p.Values) == 0 {
		return ""
	}
	return p.Values[0]
}

// Parameters is the ordered parameter list of a property. A name may
// repeat; repeats are preserved in order.
type Parameters []Parameter

// Get returns the first parameter with the given name, case-insensitively.
func (ps Parameters) Get(name string) (Parameter, bool) {
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Parameter{}, false
}

// Value returns the first value of the first parameter with the given
// name, or "" when absent.
func (ps Parameters) Value(name string) string {
	p, ok := ps.Get(name)
	if !ok {
		return ""
	}
	return p.Value()
}

// Values returns every value of every parameter with the given name, in
// order.
func (ps Parameters) Values(name string) []string {
	var out []string
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			out = append(out, p.Values...)
		}
	}
	return out
}

// Equal reports order-sensitive equality with case-folded names.
func (ps Parameters) Equal(o Parameters) bool {
	if len(ps) != len(o) {
		return false
	}
	for i := range ps {
		if !strings.EqualFold(ps[i].Name, o[i].Name) {
			return false
		}
		if len(ps[i].Values) != len(o[i].Values) {
			return false
		}
		for j := range ps[i].Values {
			if ps[i].Values[j] != o[i].Values[j] {
				return false
			}
		}
	}
	return true
}

// Property is one parsed content line: name, optional group prefix, the
// ordered parameter list, and the typed value.
type Property struct {
	Group  string
	Name   string
	Params Parameters
	Value  Value
}

// NewProperty creates a property with an upper-cased name.
func NewProperty(name string, value Value, params ...Parameter) *Property {
	return &Property{Name: strings.ToUpper(name), Params: params, Value: value}
}

// Equal reports structural equality with case-folded names and groups.
func (p *Property) Equal(o *Property) bool {
	if p == nil || o == nil {
		return p == o
	}
	return strings.EqualFold(p.Group, o.Group) &&
		strings.EqualFold(p.Name, o.Name) &&
		p.Params.Equal(o.Params) &&
		p.Value.Equal(o.Value)
}

// Component is a named grouping of properties, possibly nested. The root
// component owns the whole parsed object graph; the parent pointer exists
// for diagnostics only.
type Component struct {
	Name       string
	Properties []*Property
	Children   []*Component

	parent *Component
}

// NewComponent creates an empty component with an upper-cased name.
func NewComponent(name string) *Component {
	return &Component{Name: strings.ToUpper(name)}
}

// Parent returns the enclosing component, or nil at the root.
func (c *Component) Parent() *Component { return c.parent }

// AddProperty appends a property.
func (c *Component) AddProperty(p *Property) {
	c.Properties = append(c.Properties, p)
}

// AddChild appends a nested component and sets its parent pointer.
func (c *Component) AddChild(child *Component) {
	child.parent = c
	c.Children = append(c.Children, child)
}

// First returns the first property with the given name, or nil.
func (c *Component) First(name string) *Property {
	for _, p := range c.Properties {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// Named returns every property with the given name, in document order.
func (c *Component) Named(name string) []*Property {
	var out []*Property
	for _, p := range c.Properties {
		if strings.EqualFold(p.Name, name) {
			out = append(out, p)
		}
	}
	return out
}

// Equal reports deep structural equality: name, properties in order,
// children in order. Names compare case-folded.
func (c *Component) Equal(o *Component) bool {
	if c == nil || o == nil {
		return c == o
	}
	if !strings.EqualFold(c.Name, o.Name) {
		return false
	}
	if len(c.Properties) != len(o.Properties) || len(c.Children) != len(o.Children) {
		return false
	}
	for i := range c.Properties {
		if !c.Properties[i].Equal(o.Properties[i]) {
			return false
		}
	}
	for i := range c.Children {
		if !c.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
