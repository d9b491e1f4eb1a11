package contentline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beginProp(name string) *Property { return NewProperty(NameBegin, Text(name)) }
func endProp(name string) *Property   { return NewProperty(NameEnd, Text(name)) }

func TestAssemble_SingleComponent(t *testing.T) {
	root, err := Assemble([]*Property{
		beginProp("VCARD"),
		NewProperty("FN", Text("John Doe")),
		endProp("VCARD"),
	})
	require.NoError(t, err)
	assert.Equal(t, "VCARD", root.Name)
	require.Len(t, root.Properties, 1)
	assert.Equal(t, "FN", root.Properties[0].Name)
	assert.Nil(t, root.Parent())
}

func TestAssemble_Nesting(t *testing.T) {
	root, err := Assemble([]*Property{
		beginProp("VCALENDAR"),
		NewProperty("PRODID", Text("-//test//EN")),
		beginProp("VEVENT"),
		NewProperty("SUMMARY", Text("standup")),
		beginProp("VALARM"),
		endProp("VALARM"),
		endProp("VEVENT"),
		endProp("VCALENDAR"),
	})
	require.NoError(t, err)
	assert.Equal(t, "VCALENDAR", root.Name)
	require.Len(t, root.Children, 1)
	event := root.Children[0]
	assert.Equal(t, "VEVENT", event.Name)
	assert.Same(t, root, event.Parent())
	require.Len(t, event.Children, 1)
	assert.Equal(t, "VALARM", event.Children[0].Name)
}

func TestAssemble_MultipleTopLevel(t *testing.T) {
	root, err := Assemble([]*Property{
		beginProp("VCARD"), endProp("VCARD"),
		beginProp("VCARD"), endProp("VCARD"),
	})
	require.NoError(t, err)
	assert.Equal(t, "", root.Name, "several top-level components sit under a synthetic root")
	assert.Len(t, root.Children, 2)
}

func TestAssemble_CaseInsensitiveEnd(t *testing.T) {
	root, err := Assemble([]*Property{
		beginProp("vcard"),
		endProp("VCARD"),
	})
	require.NoError(t, err)
	assert.Equal(t, "VCARD", root.Name)
}

func TestAssemble_StructureErrors(t *testing.T) {
	tests := []struct {
		name  string
		props []*Property
		kind  ErrKind
	}{
		{
			"mismatched end never closes the wrong component",
			[]*Property{beginProp("VCARD"), endProp("VEVENT")},
			ErrUnbalancedStructure,
		},
		{
			"end with nothing open",
			[]*Property{endProp("VCARD")},
			ErrUnbalancedStructure,
		},
		{
			"unterminated component",
			[]*Property{beginProp("VCARD"), NewProperty("FN", Text("x"))},
			ErrUnterminatedComponent,
		},
		{
			"inner component left open",
			[]*Property{beginProp("VCARD"), beginProp("VGROUP")},
			ErrUnterminatedComponent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(tt.props)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}
