package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/ir"
)

func TestTranslateIdentifier_EmptyBecomesSynthesized(t *testing.T) {
	id, ok := TranslateIdentifier("", 2)
	require.True(t, ok)
	assert.Equal(t, "__param_2", id.Name)
}

func TestTranslateIdentifier_ValidPassesThrough(t *testing.T) {
	id, ok := TranslateIdentifier("count", 0)
	require.True(t, ok)
	assert.Equal(t, ir.Identifier("count"), id)
}

func TestTranslateIdentifier_InvalidIsRejected(t *testing.T) {
	_, ok := TranslateIdentifier("operator+", 0)
	assert.False(t, ok)
}

func TestTranslateFunctionName_CtorAndDtor(t *testing.T) {
	name, ok := TranslateFunctionName(true, false, "S", 0)
	require.True(t, ok)
	assert.Equal(t, ir.Constructor(), name)

	name, ok = TranslateFunctionName(false, true, "~S", 0)
	require.True(t, ok)
	assert.Equal(t, ir.Destructor(), name)
}

func TestTranslateFunctionName_OrdinaryDelegates(t *testing.T) {
	name, ok := TranslateFunctionName(false, false, "doStuff", 0)
	require.True(t, ok)
	assert.Equal(t, ir.Identifier("doStuff"), name)
}
