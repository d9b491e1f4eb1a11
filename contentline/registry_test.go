package contentline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := testRegistry()
	_, err := reg.Resolve("x-nonesuch")
	require.Error(t, err)
	assert.Equal(t, ErrUnknownType, KindOf(err))
}

func TestRegistry_TypeResolutionOrder(t *testing.T) {
	reg := testRegistry()
	reg.SetPropertyDefault("BDAY", TypeDate)

	// Format-wide default.
	assert.Equal(t, TypeText, reg.TypeFor("NOTE", nil))

	// Per-property default.
	assert.Equal(t, TypeDate, reg.TypeFor("BDAY", nil))
	assert.Equal(t, TypeDate, reg.TypeFor("bday", nil), "property names are case-insensitive")

	// Explicit VALUE parameter overrides both.
	params := Parameters{{Name: "VALUE", Values: []string{"text"}}}
	assert.Equal(t, TypeText, reg.TypeFor("BDAY", params))
}

func TestRegistry_DeriveIsolation(t *testing.T) {
	base := testRegistry()
	base.SetPropertyDefault("N", "x-name")

	derived := base.Override("N", TypeText)
	assert.Equal(t, TypeText, derived.TypeFor("N", nil))
	assert.Equal(t, "x-name", base.TypeFor("N", nil), "Override must not touch the base registry")

	derived.Register(nameCodec())
	_, err := base.Resolve("x-name")
	require.Error(t, err, "codec registration on a derived registry must not leak into the base")
}

func TestRegistry_CustomCodec(t *testing.T) {
	reg := testRegistry()
	reg.Register(nameCodec())
	reg.SetPropertyDefault("N", "x-name")

	v, err := reg.ParseValue(reg.TypeFor("N", nil), "Doe;John;;;", nil)
	require.NoError(t, err)
	assert.Equal(t, KindStructured, v.Kind())
	assert.Len(t, v.Fields(), 5)
}
