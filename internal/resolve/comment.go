package resolve

import (
	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
)

// FreeComments implements spec.md §4.7's "Free-floating comments" rule:
// collect every raw comment in every entry header, drop any whose begin
// location coincides with an already-consumed doc comment or falls inside
// an imported declaration's source range, and turn what remains into
// Comment items.
func FreeComments(comments []cxxast.RawComment, docCommentBegins []cxxast.SourceLocation, occupied []cxxast.SourceRange) []ir.Comment {
	docSet := make(map[cxxast.SourceLocation]bool, len(docCommentBegins))
	for _, loc := range docCommentBegins {
		docSet[loc] = true
	}

	var out []ir.Comment
	for _, c := range comments {
		if docSet[c.Range.Begin] {
			continue
		}
		if withinAny(c.Range.Begin, occupied) {
			continue
		}
		text := cxxast.CleanCommentText(c.Text)
		if text == "" {
			continue
		}
		out = append(out, ir.Comment{Text: text})
	}
	return out
}

func withinAny(loc cxxast.SourceLocation, ranges []cxxast.SourceRange) bool {
	for _, r := range ranges {
		if loc == r.Begin {
			return true
		}
		if !locLess(loc, r.Begin) && locLess(loc, r.End) {
			return true
		}
	}
	return false
}

func locLess(a, b cxxast.SourceLocation) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}
