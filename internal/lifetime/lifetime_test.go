package lifetime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cxxbind/internal/ir"
)

func TestNoLifetimesOracle_AlwaysMisses(t *testing.T) {
	_, ok := NoLifetimesOracle{}.Lifetimes(ir.DeclID(1))
	assert.False(t, ok)
}

func TestStack_PopsOuterToInner(t *testing.T) {
	s := NewStack(TypeLifetimes{{Name: "a", ID: 1}, {Name: "b", ID: 2}})

	l, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, "a", l.Name)

	l, ok = s.Pop()
	assert.True(t, ok)
	assert.Equal(t, "b", l.Name)

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestStack_EmptyPop(t *testing.T) {
	s := NewStack(nil)
	_, ok := s.Pop()
	assert.False(t, ok)
}
