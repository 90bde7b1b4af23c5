package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointerTo_CarriesLifetimeAndNullability(t *testing.T) {
	lt := LifetimeID(3)
	p := PointerTo(SimpleType("int32_t", "i32"), &lt, true)

	assert.Equal(t, MappedPointer, p.Kind)
	assert.True(t, p.Nullable)
	assert.Equal(t, &lt, p.Lifetime)
	assert.Equal(t, "int32_t*", p.CC.Name)
	assert.Equal(t, "i32", p.Target.Name)
}

func TestLValueReferenceTo_NeverNullable(t *testing.T) {
	r := LValueReferenceTo(SimpleType("int", "i32"), nil)
	assert.Equal(t, MappedLValueReference, r.Kind)
	assert.False(t, r.Nullable)
}

func TestAsConst_SetsOnlyCCSide(t *testing.T) {
	c := SimpleType("int", "i32").AsConst()
	assert.True(t, c.CC.IsConst)
	assert.False(t, c.Target.IsConst)
}

func TestWithDeclIds_SetsBothSides(t *testing.T) {
	m := SimpleType("Foo", "Foo").WithDeclIds(DeclID(42))
	assert.Equal(t, DeclID(42), *m.CC.DeclID)
	assert.Equal(t, DeclID(42), *m.Target.DeclID)
}

func TestUnqualifiedIdentifier_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Constructor())
	assert.NoError(t, err)
	assert.Equal(t, `"Constructor"`, string(b))

	b, err = json.Marshal(Identifier("frobnicate"))
	assert.NoError(t, err)
	assert.Equal(t, `"frobnicate"`, string(b))
}

func TestAccessSpecifier_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(AccessProtected)
	assert.NoError(t, err)
	assert.Equal(t, `"protected"`, string(b))
}
