package cxxast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceManager_IncludeStack(t *testing.T) {
	sm := NewSourceManager()
	entry := sm.AddEntryFile("./public/api.h")
	included := sm.AddIncludedFile("detail/impl.h", entry)

	stack := sm.IncludeStack(included)
	assert.Equal(t, []FileID{included, entry}, stack)
}

func TestSourceManager_AddEntryFile_Deduplicates(t *testing.T) {
	sm := NewSourceManager()
	a := sm.AddEntryFile("./x.h")
	b := sm.AddEntryFile("x.h")
	assert.Equal(t, a, b)
}

func TestSourceManager_Path_StripsLeadingDotSlash(t *testing.T) {
	sm := NewSourceManager()
	id := sm.AddEntryFile("./foo/bar.h")
	assert.Equal(t, "foo/bar.h", sm.Path(id))
}

func TestSourceRange_Less(t *testing.T) {
	a := SourceRange{Begin: SourceLocation{Line: 1}, End: SourceLocation{Line: 2}}
	b := SourceRange{Begin: SourceLocation{Line: 1}, End: SourceLocation{Line: 3}}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}
