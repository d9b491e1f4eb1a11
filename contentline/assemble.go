package contentline

import (
	"strings"
)

// Structural property names marking component boundaries.
const (
	NameBegin = "BEGIN"
	NameEnd   = "END"
)

// assembler groups a property sequence into a component tree with an
// explicit stack of open components. The stack keeps nesting depth off
// the call stack and makes balance failures a local condition.
type assembler struct {
	root  *Component
	stack []*Component
}

func newAssembler() *assembler {
	root := &Component{}
	return &assembler{root: root, stack: []*Component{root}}
}

func (a *assembler) top() *Component {
	return a.stack[len(a.stack)-1]
}

// feed routes one property: BEGIN pushes a component, END pops with a
// name check, anything else appends to the open component.
func (a *assembler) feed(p *Property, span Span) error {
	switch p.Name {
	case NameBegin:
		child := NewComponent(p.Value.Text())
		a.top().AddChild(child)
		a.stack = append(a.stack, child)
		return nil
	case NameEnd:
		if len(a.stack) == 1 {
			return newError(ErrUnbalancedStructure, span, "END:%s with no open component", p.Value.Text())
		}
		name := strings.ToUpper(p.Value.Text())
		if name != a.top().Name {
			return newError(ErrUnbalancedStructure, span, "END:%s does not close %s", name, a.top().Name)
		}
		a.stack = a.stack[:len(a.stack)-1]
		return nil
	default:
		a.top().AddProperty(p)
		return nil
	}
}

// finish checks the terminal condition and returns the tree. A stream
// holding exactly one top-level component yields that component; several
// yield a synthetic unnamed root holding them all.
func (a *assembler) finish() (*Component, error) {
	if len(a.stack) > 1 {
		return nil, newError(ErrUnterminatedComponent, Span{},
			"component %s still open at end of input", a.top().Name)
	}
	if len(a.root.Properties) == 0 && len(a.root.Children) == 1 {
		child := a.root.Children[0]
		child.parent = nil
		return child, nil
	}
	return a.root, nil
}

// Assemble groups an already-parsed property sequence into a component
// tree. BEGIN and END properties delimit components; all other properties
// attach to the innermost open component.
func Assemble(props []*Property) (*Component, error) {
	a := newAssembler()
	for _, p := range props {
		if err := a.feed(p, Span{}); err != nil {
			return nil, err
		}
	}
	return a.finish()
}
