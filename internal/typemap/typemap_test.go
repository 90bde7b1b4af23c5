package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
	"cxxbind/internal/lifetime"
)

type fakeResolver map[string]KnownDecl

func (f fakeResolver) LookupKnownType(name string) (KnownDecl, bool) {
	kd, ok := f[name]
	return kd, ok
}

func TestConvert_WellKnownTypeTakesPrecedence(t *testing.T) {
	m := New(fakeResolver{})
	mapped, err := m.Convert(cxxast.ParseQualType("size_t"), nil, true)
	require.NoError(t, err)
	assert.Equal(t, "usize", mapped.Target.Name)
}

func TestConvert_Builtins(t *testing.T) {
	m := New(fakeResolver{})

	mapped, err := m.Convert(cxxast.ParseQualType("int"), nil, true)
	require.NoError(t, err)
	assert.Equal(t, "i32", mapped.Target.Name)

	mapped, err = m.Convert(cxxast.ParseQualType("unsigned long long"), nil, true)
	require.NoError(t, err)
	assert.Equal(t, "u64", mapped.Target.Name)

	mapped, err = m.Convert(cxxast.ParseQualType("double"), nil, true)
	require.NoError(t, err)
	assert.Equal(t, "f64", mapped.Target.Name)
}

func TestConvert_PlainCharIsUnsupported(t *testing.T) {
	m := New(fakeResolver{})
	_, err := m.Convert(cxxast.ParseQualType("char"), nil, true)
	require.Error(t, err)
	var unsupported *UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestConvert_PointerPopsLifetime(t *testing.T) {
	m := New(fakeResolver{})
	stack := lifetime.NewStack(lifetime.TypeLifetimes{{Name: "a", ID: 7}})

	mapped, err := m.Convert(cxxast.ParseQualType("int *"), stack, false)
	require.NoError(t, err)
	assert.Equal(t, ir.MappedPointer, mapped.Kind)
	require.NotNil(t, mapped.Lifetime)
	assert.Equal(t, ir.LifetimeID(7), *mapped.Lifetime)
	assert.False(t, mapped.Nullable)
}

func TestConvert_LValueReferenceNeverNullable(t *testing.T) {
	m := New(fakeResolver{})
	mapped, err := m.Convert(cxxast.ParseQualType("int &"), nil, true)
	require.NoError(t, err)
	assert.False(t, mapped.Nullable)
}

func TestConvert_ConstAppliedAfterRecursion(t *testing.T) {
	m := New(fakeResolver{})
	mapped, err := m.Convert(cxxast.ParseQualType("const int"), nil, true)
	require.NoError(t, err)
	assert.True(t, mapped.CC.IsConst)
	assert.False(t, mapped.Target.IsConst)
}

func TestConvert_UnknownTagIsUnsupported(t *testing.T) {
	m := New(fakeResolver{})
	_, err := m.Convert(cxxast.ParseQualType("struct Foo"), nil, true)
	require.Error(t, err)
}

func TestConvert_KnownTagResolvesWithDeclID(t *testing.T) {
	m := New(fakeResolver{"Foo": {ID: 5, TranslatedName: "Foo"}})
	mapped, err := m.Convert(cxxast.ParseQualType("struct Foo"), nil, true)
	require.NoError(t, err)
	require.NotNil(t, mapped.Target.DeclID)
	assert.Equal(t, ir.DeclID(5), *mapped.Target.DeclID)
}
