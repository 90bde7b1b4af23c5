package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
)

func TestOwningTarget_DirectMatch(t *testing.T) {
	sm := cxxast.NewSourceManager()
	file := sm.AddEntryFile("public/api.h")
	owner := NewOwnerResolver(sm, HeaderTargetMap{"public/api.h": "//foo:api"})

	got := owner.OwningTarget(cxxast.SourceLocation{File: file})
	assert.Equal(t, ir.TargetLabel("//foo:api"), got)
}

func TestOwningTarget_WalksIncludeStack(t *testing.T) {
	sm := cxxast.NewSourceManager()
	entry := sm.AddEntryFile("public/api.h")
	detail := sm.AddIncludedFile("detail/impl.h", entry)
	owner := NewOwnerResolver(sm, HeaderTargetMap{"public/api.h": "//foo:api"})

	got := owner.OwningTarget(cxxast.SourceLocation{File: detail})
	assert.Equal(t, ir.TargetLabel("//foo:api"), got)
}

func TestOwningTarget_SystemHeaderIsVirtualResourceDir(t *testing.T) {
	sm := cxxast.NewSourceManager()
	sys := sm.AddEntryFile("bits/stl_vector.h")
	owner := NewOwnerResolver(sm, HeaderTargetMap{})
	owner.MarkSystemHeader(sys)

	got := owner.OwningTarget(cxxast.SourceLocation{File: sys})
	assert.Equal(t, VirtualResourceDirTarget, got)
}

func TestOwningTarget_UnknownFallsBackToBuiltin(t *testing.T) {
	sm := cxxast.NewSourceManager()
	unknown := sm.AddEntryFile("nowhere.h")
	owner := NewOwnerResolver(sm, HeaderTargetMap{})

	got := owner.OwningTarget(cxxast.SourceLocation{File: unknown})
	assert.Equal(t, BuiltinTarget, got)
}

func TestIsFromCurrentTarget(t *testing.T) {
	sm := cxxast.NewSourceManager()
	file := sm.AddEntryFile("public/api.h")
	owner := NewOwnerResolver(sm, HeaderTargetMap{"public/api.h": "//foo:api"})

	assert.True(t, owner.IsFromCurrentTarget(cxxast.SourceLocation{File: file}, "//foo:api"))
	assert.False(t, owner.IsFromCurrentTarget(cxxast.SourceLocation{File: file}, "//foo:other"))
}
