package cxxast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQualType_Pointer(t *testing.T) {
	q := ParseQualType("int *")
	assert.Equal(t, KindPointer, q.Kind)
	assert.Equal(t, KindBuiltin, q.Pointee.Kind)
	assert.Equal(t, "int", q.Pointee.Name)
}

func TestParseQualType_ConstLeadingAndTrailing(t *testing.T) {
	assert.True(t, ParseQualType("const int").IsConst)
	assert.True(t, ParseQualType("int const").IsConst)
}

func TestParseQualType_LValueAndRValueReference(t *testing.T) {
	assert.Equal(t, KindLValueReference, ParseQualType("int &").Kind)
	assert.Equal(t, KindRValueReference, ParseQualType("int &&").Kind)
}

func TestParseQualType_TagKeywordsStripped(t *testing.T) {
	q := ParseQualType("struct Foo")
	assert.Equal(t, KindTag, q.Kind)
	assert.Equal(t, "Foo", q.Name)
}

func TestParseQualType_UnknownNameIsTypedef(t *testing.T) {
	q := ParseQualType("MyAlias")
	assert.Equal(t, KindTypedef, q.Kind)
}

func TestQualType_IsVoid(t *testing.T) {
	assert.True(t, ParseQualType("void").IsVoid())
	assert.False(t, ParseQualType("int").IsVoid())
}
