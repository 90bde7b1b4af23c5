package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cxxbind/internal/cxxast"
)

func TestFreeComments_DropsDocCommentBegins(t *testing.T) {
	begin := cxxast.SourceLocation{Line: 1}
	comments := []cxxast.RawComment{
		{Text: "// doc", Range: cxxast.SourceRange{Begin: begin, End: begin}},
	}
	got := FreeComments(comments, []cxxast.SourceLocation{begin}, nil)
	assert.Empty(t, got)
}

func TestFreeComments_DropsCommentsInsideOccupiedRanges(t *testing.T) {
	comments := []cxxast.RawComment{
		{Text: "// inside", Range: cxxast.SourceRange{Begin: cxxast.SourceLocation{Line: 5}, End: cxxast.SourceLocation{Line: 5}}},
	}
	occupied := []cxxast.SourceRange{{Begin: cxxast.SourceLocation{Line: 1}, End: cxxast.SourceLocation{Line: 10}}}
	got := FreeComments(comments, nil, occupied)
	assert.Empty(t, got)
}

func TestFreeComments_KeepsUnrelatedComments(t *testing.T) {
	comments := []cxxast.RawComment{
		{Text: "// standalone note", Range: cxxast.SourceRange{Begin: cxxast.SourceLocation{Line: 20}, End: cxxast.SourceLocation{Line: 20}}},
	}
	got := FreeComments(comments, nil, nil)
	assert.Len(t, got, 1)
	assert.Equal(t, "standalone note", got[0].Text)
}
